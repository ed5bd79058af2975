package core

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry is one line of a menu listing
type Entry struct {
	Index string
	Name  string
}

// View is the index table a menu displays. It is built fresh for every
// render; indices are not stable identifiers.
type View struct {
	names []string
}

func NewView(names []string) View {
	return View{names: names}
}

func (v View) Len() int {
	return len(v.names)
}

func (v View) Names() []string {
	return v.names
}

// Entries returns the listing with indices "0", "1", ... in order
func (v View) Entries() []Entry {
	entries := make([]Entry, len(v.names))
	for i, name := range v.names {
		entries[i] = Entry{Index: strconv.Itoa(i), Name: name}
	}
	return entries
}

// Lookup resolves an index string exactly as displayed. "01" or " 1" do not
// match "1".
func (v View) Lookup(index string) (string, bool) {
	i, err := strconv.Atoi(index)
	if err != nil || i < 0 || i >= len(v.names) || strconv.Itoa(i) != index {
		return "", false
	}
	return v.names[i], true
}

type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterName
	FilterSpeed
)

func (k FilterKind) String() string {
	switch k {
	case FilterName:
		return "name"
	case FilterSpeed:
		return "speed"
	default:
		return "none"
	}
}

// Filter restricts which opponents a view shows. The zero value shows all.
type Filter struct {
	Kind  FilterKind
	Value string
}

// NameFilter matches opponents whose name contains value, ignoring case
func NameFilter(value string) Filter {
	return Filter{Kind: FilterName, Value: value}
}

// SpeedFilter matches opponents whose speed equals value, ignoring case
func SpeedFilter(value string) Filter {
	return Filter{Kind: FilterSpeed, Value: value}
}

func (f Filter) Match(name string, r *Record) bool {
	switch f.Kind {
	case FilterName:
		return strings.Contains(lower(name), lower(f.Value))
	case FilterSpeed:
		return r != nil && lower(r.Speed) == lower(f.Value)
	default:
		return true
	}
}

func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
