package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openJournal(t *testing.T, path string) *Journal {
	t.Helper()
	j, err := NewJournal(path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	if err := j.InitDB(); err != nil {
		t.Fatalf("init journal: %v", err)
	}
	return j
}

func TestJournalRecordAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j := openJournal(t, path)

	sessionID := uuid.New().String()
	now := time.Now().UTC()
	if err := j.RecordSession(SessionRecord{SessionID: sessionID, DataPath: "matchups.json", StartTimeUTC: now}); err != nil {
		t.Fatalf("record session: %v", err)
	}

	entries := []EntryRecord{
		{Kind: KindDeck, Deck: "Midrange Good Stuff"},
		{Kind: KindOpponent, Deck: "Midrange Good Stuff", Opponent: "RDW", Speed: "Aggro"},
		{Kind: KindWins, Deck: "Midrange Good Stuff", Opponent: "RDW", Speed: "Aggro", Amount: 3},
		{Kind: KindLosses, Deck: "Zoo", Opponent: "Mech Mage", Speed: "Midrange", Amount: 1},
	}
	for i, e := range entries {
		e.EntryID = uuid.New().String()
		e.SessionID = sessionID
		e.EntryTimeUTC = now.Add(time.Duration(i) * time.Millisecond)
		if err := j.RecordEntry(e); err != nil {
			t.Fatalf("record entry %d: %v", i, err)
		}
	}

	if err := j.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !j.IsHealthy() {
		t.Fatal("expected journal to stay healthy")
	}

	j = openJournal(t, path)
	defer j.Close()

	all, err := j.QueryEntries(EntryQuery{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != len(entries) {
		t.Fatalf("expected %d entries, got %d", len(entries), len(all))
	}
	if all[2].Kind != KindWins || all[2].Amount != 3 {
		t.Fatalf("unexpected third entry %+v", all[2])
	}

	zoo, err := j.QueryEntries(EntryQuery{Deck: "Zoo"})
	if err != nil {
		t.Fatalf("query deck: %v", err)
	}
	if len(zoo) != 1 || zoo[0].Opponent != "Mech Mage" {
		t.Fatalf("unexpected deck query result %+v", zoo)
	}

	rdw, err := j.QueryEntries(EntryQuery{SessionID: sessionID, Deck: "*", Opponent: "RDW"})
	if err != nil {
		t.Fatalf("query opponent: %v", err)
	}
	if len(rdw) != 2 {
		t.Fatalf("expected 2 RDW entries, got %d", len(rdw))
	}
}

func TestJournalRejectsInvalidEntry(t *testing.T) {
	j := openJournal(t, filepath.Join(t.TempDir(), "journal.db"))
	defer j.Close()

	tests := []struct {
		name  string
		entry EntryRecord
	}{
		{"missing ids", EntryRecord{Kind: KindWins, EntryTimeUTC: time.Now()}},
		{"bad kind", EntryRecord{
			EntryID:      uuid.New().String(),
			SessionID:    uuid.New().String(),
			Kind:         "ties",
			EntryTimeUTC: time.Now(),
		}},
		{"missing time", EntryRecord{
			EntryID:   uuid.New().String(),
			SessionID: uuid.New().String(),
			Kind:      KindSave,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := j.RecordEntry(tt.entry); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestJournalDegradesOnWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j := openJournal(t, path)

	// No session row: the foreign key rejects the entry
	err := j.RecordEntry(EntryRecord{
		EntryID:      uuid.New().String(),
		SessionID:    uuid.New().String(),
		Kind:         KindSave,
		EntryTimeUTC: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("record entry: %v", err)
	}

	if err := j.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if j.IsHealthy() {
		t.Fatal("expected journal to degrade after a failed write")
	}
}

func TestJournalDeleteDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j := openJournal(t, path)

	if err := j.DeleteDB(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected journal file to be removed, stat err = %v", err)
	}
}
