package service

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"matchups/internal/core"
	"matchups/internal/stats"
	"matchups/internal/storage"
)

const fixture = `{"Tempo Rogue": {"Zoo Warlock": {"wins": 4, "losses": 2, "draws": 0, "speed": "Aggro"}, "Azure Drake Mage": {"wins": 1, "losses": 1, "draws": 1, "speed": "Control"}, "Big Priest": {"wins": 0, "losses": 3, "draws": 0, "speed": "control"}, "Pirate Warrior": {"wins": 2, "losses": 0, "draws": 0, "speed": "AGGRO"}}, "Quest Druid": {}}`

func newTestService(t *testing.T, data string) (*Service, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "matchups.json")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	svc, err := New(storage.NewFileStore(path, false), nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, path
}

func TestNewFailsOnBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matchups.json")
	if _, err := New(storage.NewFileStore(path, false), nil); err == nil {
		t.Fatal("expected error for missing file")
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(storage.NewFileStore(path, false), nil); err == nil {
		t.Fatal("expected error for malformed file")
	}
}

func TestAddDeckResetsExisting(t *testing.T) {
	svc, _ := newTestService(t, fixture)

	view, err := svc.Opponents("Tempo Rogue", core.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if view.Len() != 4 {
		t.Fatalf("expected 4 opponents before reset, got %d", view.Len())
	}

	svc.AddDeck("Tempo Rogue")

	view, err = svc.Opponents("Tempo Rogue", core.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if view.Len() != 0 {
		t.Fatalf("expected re-added deck to be empty, got %v", view.Names())
	}
	if got, want := svc.Decks().Names(), []string{"Tempo Rogue", "Quest Druid"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("decks = %v, want %v", got, want)
	}
}

func TestOpponentFilters(t *testing.T) {
	svc, _ := newTestService(t, fixture)

	tests := []struct {
		name   string
		filter core.Filter
		want   []string
	}{
		{"no filter", core.Filter{}, []string{"Zoo Warlock", "Azure Drake Mage", "Big Priest", "Pirate Warrior"}},
		{"name zu", core.NameFilter("zu"), []string{"Azure Drake Mage"}},
		{"name upper", core.NameFilter("WAR"), []string{"Zoo Warlock", "Pirate Warrior"}},
		{"speed aggro", core.SpeedFilter("aggro"), []string{"Zoo Warlock", "Pirate Warrior"}},
		{"speed control", core.SpeedFilter("Control"), []string{"Azure Drake Mage", "Big Priest"}},
		{"speed unknown", core.SpeedFilter("Combo"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := svc.Opponents("Tempo Rogue", tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			if got := view.Names(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("names = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilteredIndexZero(t *testing.T) {
	svc, _ := newTestService(t, fixture)

	view, err := svc.Opponents("Tempo Rogue", core.SpeedFilter("control"))
	if err != nil {
		t.Fatal(err)
	}
	name, ok := view.Lookup("0")
	if !ok || name != "Azure Drake Mage" {
		t.Fatalf("index 0 = %q (%v), want Azure Drake Mage", name, ok)
	}
	if _, ok := view.Lookup("2"); ok {
		t.Fatal("index 2 should not exist in the filtered view")
	}
}

func TestAddOpponent(t *testing.T) {
	svc, _ := newTestService(t, fixture)

	if err := svc.AddOpponent("Quest Druid", "Odd Paladin", "Aggro"); err != nil {
		t.Fatalf("add opponent: %v", err)
	}
	rec, err := svc.Record("Quest Druid", "Odd Paladin")
	if err != nil {
		t.Fatal(err)
	}
	if want := (core.Record{Speed: "Aggro"}); rec != want {
		t.Fatalf("record = %+v, want %+v", rec, want)
	}

	if err := svc.AddOpponent("Quest Druid", "Odd Paladin", "Control"); !errors.Is(err, core.ErrOpponentExists) {
		t.Fatalf("expected ErrOpponentExists, got %v", err)
	}
	if err := svc.AddOpponent("Quest Druid", "", "Control"); !errors.Is(err, core.ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if err := svc.AddOpponent("Nope", "Odd Paladin", "Aggro"); !errors.Is(err, core.ErrDeckNotFound) {
		t.Fatalf("expected ErrDeckNotFound, got %v", err)
	}

	rec, _ = svc.Record("Quest Druid", "Odd Paladin")
	if rec.Speed != "Aggro" {
		t.Fatalf("duplicate add must not change the record, speed = %q", rec.Speed)
	}
}

func TestAddResults(t *testing.T) {
	svc, _ := newTestService(t, fixture)

	rec, err := svc.AddResults("Tempo Rogue", "Big Priest", core.ResultWin, 2)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Wins != 2 || rec.Losses != 3 {
		t.Fatalf("unexpected record %+v", rec)
	}

	rec, err = svc.AddResults("Tempo Rogue", "Big Priest", core.ResultLoss, -1)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Losses != 2 {
		t.Fatalf("negative add should subtract, losses = %d", rec.Losses)
	}

	if _, err := svc.AddResults("Tempo Rogue", "Nobody", core.ResultDraw, 1); !errors.Is(err, core.ErrOpponentNotFound) {
		t.Fatalf("expected ErrOpponentNotFound, got %v", err)
	}
}

func TestSummary(t *testing.T) {
	svc, _ := newTestService(t, fixture)

	view, err := svc.Opponents("Tempo Rogue", core.SpeedFilter("aggro"))
	if err != nil {
		t.Fatal(err)
	}
	sum, err := svc.Summary("Tempo Rogue", view.Names())
	if err != nil {
		t.Fatal(err)
	}
	if want := (stats.Summary{Wins: 6, Losses: 2}); sum != want {
		t.Fatalf("summary = %+v, want %+v", sum, want)
	}

	empty, err := svc.Summary("Quest Druid", nil)
	if err != nil {
		t.Fatal(err)
	}
	if empty.Total() != 0 {
		t.Fatalf("expected empty summary, got %+v", empty)
	}
}

func TestReadsDoNotMutate(t *testing.T) {
	svc, path := newTestService(t, fixture)

	for _, f := range []core.Filter{{}, core.NameFilter("zu"), core.SpeedFilter("aggro")} {
		view, err := svc.Opponents("Tempo Rogue", f)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := svc.Summary("Tempo Rogue", view.Names()); err != nil {
			t.Fatal(err)
		}
		for _, name := range view.Names() {
			if _, err := svc.Record("Tempo Rogue", name); err != nil {
				t.Fatal(err)
			}
		}
	}

	if err := svc.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != fixture {
		t.Fatalf("read-only session changed the file\n got: %s\nwant: %s", data, fixture)
	}
}

func TestJournalRecordsChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "matchups.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	journalPath := filepath.Join(dir, "journal.db")
	journal, err := storage.NewJournal(journalPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := journal.InitDB(); err != nil {
		t.Fatal(err)
	}

	svc, err := New(storage.NewFileStore(path, false), journal)
	if err != nil {
		t.Fatal(err)
	}
	svc.AddDeck("Midrange Good Stuff")
	if err := svc.AddOpponent("Midrange Good Stuff", "RDW", "Aggro"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddResults("Midrange Good Stuff", "RDW", core.ResultWin, 3); err != nil {
		t.Fatal(err)
	}
	if err := svc.Save(); err != nil {
		t.Fatal(err)
	}
	if err := svc.Close(); err != nil {
		t.Fatal(err)
	}
	if got := svc.GetJournalHealth(); got != "ok" {
		t.Fatalf("journal health = %q, want ok", got)
	}

	reopened, err := storage.NewJournal(journalPath)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()

	entries, err := reopened.QueryEntries(storage.EntryQuery{SessionID: svc.SessionID()})
	if err != nil {
		t.Fatal(err)
	}
	var kinds []string
	for _, e := range entries {
		kinds = append(kinds, e.Kind)
	}
	want := []string{storage.KindDeck, storage.KindOpponent, storage.KindWins, storage.KindSave}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("journal kinds = %v, want %v", kinds, want)
	}
}
