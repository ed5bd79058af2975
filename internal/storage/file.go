package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf16"

	"matchups/internal/core"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// FileStore reads and writes the matchup store as a single JSON object:
// deck -> opponent -> {"wins", "losses", "draws", "speed"}
type FileStore struct {
	path   string
	pretty bool
}

func NewFileStore(path string, pretty bool) *FileStore {
	return &FileStore{path: path, pretty: pretty}
}

func (f *FileStore) Path() string {
	return f.path
}

// Load reads the whole store. A missing or malformed file is an error.
func (f *FileStore) Load() (*core.Store, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", f.path, err)
	}
	store, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", f.path, err)
	}
	return store, nil
}

// Save overwrites the file with the whole store. The new content is written
// to a temporary file in the same directory and renamed into place.
func (f *FileStore) Save(store *core.Store) error {
	data := Encode(store)
	if f.pretty {
		data = pretty.Pretty(data)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), "."+filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set mode on %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", f.path, err)
	}
	return nil
}

// Decode parses a store, keeping deck and opponent order as found in the
// document. A repeated key keeps its first position and its last value.
func Decode(data []byte) (*core.Store, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("invalid JSON")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("top level must be an object of decks")
	}

	store := core.NewStore()
	var err error
	root.ForEach(func(deckKey, deckVal gjson.Result) bool {
		deckName := deckKey.String()
		if !deckVal.IsObject() {
			err = fmt.Errorf("deck %q must be an object of opponents", deckName)
			return false
		}

		deck := core.NewDeck()
		deckVal.ForEach(func(oppKey, oppVal gjson.Result) bool {
			oppName := oppKey.String()
			if !oppVal.IsObject() {
				err = fmt.Errorf("opponent %q of deck %q must be an object", oppName, deckName)
				return false
			}
			var rec core.Record
			if uerr := json.Unmarshal([]byte(oppVal.Raw), &rec); uerr != nil {
				err = fmt.Errorf("opponent %q of deck %q: %w", oppName, deckName, uerr)
				return false
			}
			deck.Set(oppName, &rec)
			return true
		})
		if err != nil {
			return false
		}

		store.Set(deckName, deck)
		return true
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// Encode renders the store compactly with ", " and ": " separators, in
// store order.
func Encode(store *core.Store) []byte {
	var buf bytes.Buffer

	buf.WriteByte('{')
	first := true
	store.Each(func(deckName string, deck *core.Deck) {
		if !first {
			buf.WriteString(", ")
		}
		first = false
		writeString(&buf, deckName)
		buf.WriteString(": {")

		firstOpp := true
		deck.Each(func(oppName string, rec *core.Record) {
			if !firstOpp {
				buf.WriteString(", ")
			}
			firstOpp = false
			writeString(&buf, oppName)
			buf.WriteString(": ")
			writeRecord(&buf, rec)
		})
		buf.WriteByte('}')
	})
	buf.WriteByte('}')

	return buf.Bytes()
}

// writeString quotes s as ASCII-only JSON. Every non-ASCII rune becomes a
// \uXXXX escape (surrogate pairs above the BMP); HTML characters are left
// alone. Existing data files are written this way.
func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		default:
			switch {
			case r < 0x20 || (r >= 0x7f && r <= 0xffff):
				fmt.Fprintf(buf, `\u%04x`, r)
			case r > 0xffff:
				r1, r2 := utf16.EncodeRune(r)
				fmt.Fprintf(buf, `\u%04x\u%04x`, r1, r2)
			default:
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}

func writeRecord(buf *bytes.Buffer, r *core.Record) {
	fmt.Fprintf(buf, `{"wins": %d, "losses": %d, "draws": %d, "speed": `, r.Wins, r.Losses, r.Draws)
	writeString(buf, r.Speed)
	buf.WriteByte('}')
}
