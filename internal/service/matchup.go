package service

import (
	"fmt"

	"matchups/internal/core"
	"matchups/internal/stats"
	"matchups/internal/storage"
)

// Decks returns a fresh index table of deck names
func (s *Service) Decks() core.View {
	return core.NewView(s.store.Names())
}

// DeckCount returns the number of decks in the store
func (s *Service) DeckCount() int {
	return s.store.Len()
}

// AddDeck inserts an empty deck. An existing deck of the same name is
// replaced by an empty one.
func (s *Service) AddDeck(name string) {
	s.store.Set(name, core.NewDeck())
	s.record(storage.KindDeck, name, "", "", 0)
}

func (s *Service) deck(name string) (*core.Deck, error) {
	d, ok := s.store.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrDeckNotFound, name)
	}
	return d, nil
}

// Opponents returns a fresh index table of the deck's opponents that pass f
func (s *Service) Opponents(deck string, f core.Filter) (core.View, error) {
	d, err := s.deck(deck)
	if err != nil {
		return core.View{}, err
	}

	var names []string
	d.Each(func(name string, r *core.Record) {
		if f.Match(name, r) {
			names = append(names, name)
		}
	})
	return core.NewView(names), nil
}

// HasOpponent reports whether deck has faced opponent
func (s *Service) HasOpponent(deck, opponent string) bool {
	d, ok := s.store.Get(deck)
	return ok && d.Has(opponent)
}

// AddOpponent inserts a zeroed record for opponent
func (s *Service) AddOpponent(deck, opponent, speed string) error {
	if opponent == "" {
		return core.ErrEmptyName
	}
	d, err := s.deck(deck)
	if err != nil {
		return err
	}
	if d.Has(opponent) {
		return fmt.Errorf("%w: %s", core.ErrOpponentExists, opponent)
	}

	d.Set(opponent, core.NewRecord(speed))
	s.record(storage.KindOpponent, deck, opponent, speed, 0)
	return nil
}

// Record returns a copy of the deck's record against opponent
func (s *Service) Record(deck, opponent string) (core.Record, error) {
	r, err := s.lookup(deck, opponent)
	if err != nil {
		return core.Record{}, err
	}
	return *r, nil
}

func (s *Service) lookup(deck, opponent string) (*core.Record, error) {
	d, err := s.deck(deck)
	if err != nil {
		return nil, err
	}
	r, ok := d.Get(opponent)
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrOpponentNotFound, opponent)
	}
	return r, nil
}

// AddResults adds n games of the given result. Negative n subtracts.
func (s *Service) AddResults(deck, opponent string, result core.Result, n int) (core.Record, error) {
	r, err := s.lookup(deck, opponent)
	if err != nil {
		return core.Record{}, err
	}

	r.Add(result, n)
	s.record(result.String(), deck, opponent, r.Speed, n)
	return *r, nil
}

// Summary adds up the deck's records for the given opponents
func (s *Service) Summary(deck string, opponents []string) (stats.Summary, error) {
	d, err := s.deck(deck)
	if err != nil {
		return stats.Summary{}, err
	}

	records := make([]core.Record, 0, len(opponents))
	for _, name := range opponents {
		r, ok := d.Get(name)
		if !ok {
			return stats.Summary{}, fmt.Errorf("%w: %s", core.ErrOpponentNotFound, name)
		}
		records = append(records, *r)
	}
	return stats.Sum(records...), nil
}
