package service

import (
	"log"
	"time"

	"matchups/internal/core"
	"matchups/internal/storage"

	"github.com/google/uuid"
)

// Service owns the matchup store for one session. The store is loaded once
// and written back only by Save.
type Service struct {
	store     *core.Store
	files     *storage.FileStore
	journal   *storage.Journal // nil if journaling disabled
	sessionID string
}

// New loads the store from files. journal may be nil.
func New(files *storage.FileStore, journal *storage.Journal) (*Service, error) {
	store, err := files.Load()
	if err != nil {
		return nil, err
	}

	s := &Service{
		store:     store,
		files:     files,
		journal:   journal,
		sessionID: uuid.New().String(),
	}

	if s.journal != nil {
		err := s.journal.RecordSession(storage.SessionRecord{
			SessionID:    s.sessionID,
			DataPath:     files.Path(),
			StartTimeUTC: time.Now().UTC(),
		})
		if err != nil {
			log.Printf("Journal: %v", err)
		}
	}

	return s, nil
}

// SessionID identifies this session in the journal
func (s *Service) SessionID() string {
	return s.sessionID
}

// Save overwrites the data file with the whole store
func (s *Service) Save() error {
	if err := s.files.Save(s.store); err != nil {
		return err
	}
	s.record(storage.KindSave, "", "", "", 0)
	return nil
}

// GetJournalHealth returns the journal component status
func (s *Service) GetJournalHealth() string {
	if s.journal == nil {
		return "disabled"
	}
	if s.journal.IsHealthy() {
		return "ok"
	}
	return "degraded"
}

// Close releases the journal. It does not save the store.
func (s *Service) Close() error {
	if s.journal != nil {
		return s.journal.Close()
	}
	return nil
}

func (s *Service) record(kind, deck, opponent, speed string, amount int) {
	if s.journal == nil {
		return
	}
	err := s.journal.RecordEntry(storage.EntryRecord{
		EntryID:      uuid.New().String(),
		SessionID:    s.sessionID,
		Kind:         kind,
		Deck:         deck,
		Opponent:     opponent,
		Speed:        speed,
		Amount:       amount,
		EntryTimeUTC: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("Journal: %v", err)
	}
}
