package core

// Deck maps opponent names to records, keeping insertion order
type Deck struct {
	names     []string
	opponents map[string]*Record
}

func NewDeck() *Deck {
	return &Deck{opponents: make(map[string]*Record)}
}

func (d *Deck) Len() int {
	return len(d.names)
}

// Names returns opponent names in insertion order
func (d *Deck) Names() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

func (d *Deck) Get(name string) (*Record, bool) {
	r, ok := d.opponents[name]
	return r, ok
}

func (d *Deck) Has(name string) bool {
	_, ok := d.opponents[name]
	return ok
}

// Set stores r under name. An existing name keeps its position.
func (d *Deck) Set(name string, r *Record) {
	if _, ok := d.opponents[name]; !ok {
		d.names = append(d.names, name)
	}
	d.opponents[name] = r
}

// Each calls fn for every opponent in insertion order
func (d *Deck) Each(fn func(name string, r *Record)) {
	for _, name := range d.names {
		fn(name, d.opponents[name])
	}
}

// Store maps deck names to decks, keeping insertion order
type Store struct {
	names []string
	decks map[string]*Deck
}

func NewStore() *Store {
	return &Store{decks: make(map[string]*Deck)}
}

func (s *Store) Len() int {
	return len(s.names)
}

// Names returns deck names in insertion order
func (s *Store) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

func (s *Store) Get(name string) (*Deck, bool) {
	d, ok := s.decks[name]
	return d, ok
}

// Set stores d under name. An existing name keeps its position and loses
// its previous contents.
func (s *Store) Set(name string, d *Deck) {
	if _, ok := s.decks[name]; !ok {
		s.names = append(s.names, name)
	}
	s.decks[name] = d
}

// Each calls fn for every deck in insertion order
func (s *Store) Each(fn func(name string, d *Deck)) {
	for _, name := range s.names {
		fn(name, s.decks[name])
	}
}
