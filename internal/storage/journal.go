package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	_ "github.com/mattn/go-sqlite3"
)

const (
	journalQueueSize     = 256
	journalDrainDeadline = 2 * time.Second
)

var validate = validator.New()

// Journal appends an audit trail of matchup changes to SQLite with async
// writes. A failing journal degrades silently and never blocks the caller.
type Journal struct {
	db           *sql.DB
	path         string
	writeChan    chan func(*sql.Tx) error
	healthStatus atomic.Bool
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

// NewJournal opens the journal database file and starts its writer
func NewJournal(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// A single connection serializes the writer and the admin queries
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	j := &Journal{
		db:        db,
		path:      path,
		writeChan: make(chan func(*sql.Tx) error, journalQueueSize),
		ctx:       ctx,
		cancel:    cancel,
	}
	j.healthStatus.Store(true)

	j.wg.Add(1)
	go j.writerLoop()

	return j, nil
}

func (j *Journal) writerLoop() {
	defer j.wg.Done()

	for {
		select {
		case <-j.ctx.Done():
			// Drain what is already queued
			deadline := time.After(journalDrainDeadline)
			for {
				select {
				case fn := <-j.writeChan:
					if j.healthStatus.Load() {
						j.executeWrite(fn)
					}
				case <-deadline:
					return
				default:
					return
				}
			}

		case fn := <-j.writeChan:
			if !j.healthStatus.Load() {
				continue
			}
			j.executeWrite(fn)
		}
	}
}

func (j *Journal) executeWrite(fn func(*sql.Tx) error) {
	tx, err := j.db.Begin()
	if err != nil {
		log.Printf("Journal degraded: failed to begin transaction: %v", err)
		j.healthStatus.Store(false)
		return
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		log.Printf("Journal degraded: write operation failed: %v", err)
		j.healthStatus.Store(false)
		return
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Journal degraded: failed to commit: %v", err)
		j.healthStatus.Store(false)
	}
}

func (j *Journal) enqueue(what string, fn func(*sql.Tx) error) {
	select {
	case j.writeChan <- fn:
	default:
		log.Printf("Journal write queue full, dropping %s", what)
	}
}

// RecordSession asynchronously records the start of a session
func (j *Journal) RecordSession(record SessionRecord) error {
	if err := validate.Struct(record); err != nil {
		return fmt.Errorf("invalid session record: %w", err)
	}
	if !j.healthStatus.Load() {
		return nil
	}

	j.enqueue("session record", func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO sessions (session_id, data_path, start_time_utc) VALUES (?, ?, ?)`,
			record.SessionID, record.DataPath, record.StartTimeUTC,
		)
		return err
	})
	return nil
}

// RecordEntry asynchronously appends one change to the journal
func (j *Journal) RecordEntry(record EntryRecord) error {
	if err := validate.Struct(record); err != nil {
		return fmt.Errorf("invalid journal entry: %w", err)
	}
	if !j.healthStatus.Load() {
		return nil
	}

	j.enqueue(record.Kind+" entry", func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO entries (
				entry_id, session_id, kind, deck, opponent, speed, amount, entry_time_utc
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			record.EntryID, record.SessionID, record.Kind,
			record.Deck, record.Opponent, record.Speed, record.Amount,
			record.EntryTimeUTC,
		)
		return err
	})
	return nil
}

// IsHealthy reports whether writes are still being applied
func (j *Journal) IsHealthy() bool {
	return j.healthStatus.Load()
}

// Close drains queued writes and closes the database
func (j *Journal) Close() error {
	j.cancel()

	done := make(chan struct{})
	go func() {
		j.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(journalDrainDeadline + time.Second):
		log.Printf("Warning: journal writer shutdown timeout, some entries may be lost")
	}

	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// InitDB creates the journal schema
func (j *Journal) InitDB() error {
	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return tx.Commit()
}

// DeleteDB closes the journal and removes its file
func (j *Journal) DeleteDB() error {
	if err := j.Close(); err != nil {
		return fmt.Errorf("failed to close journal: %w", err)
	}

	if err := os.Remove(j.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete journal file: %w", err)
	}

	return nil
}

// EntryQuery filters QueryEntries. Empty or "*" fields match everything.
type EntryQuery struct {
	SessionID string
	Deck      string
	Opponent  string
}

// QueryEntries returns journal entries oldest first
func (j *Journal) QueryEntries(q EntryQuery) ([]EntryRecord, error) {
	query := `SELECT
		entry_id, session_id, kind, deck, opponent, speed, amount, entry_time_utc
	FROM entries WHERE 1=1`

	var args []interface{}

	if q.SessionID != "" && q.SessionID != "*" {
		query += " AND session_id = ?"
		args = append(args, q.SessionID)
	}
	if q.Deck != "" && q.Deck != "*" {
		query += " AND deck = ?"
		args = append(args, q.Deck)
	}
	if q.Opponent != "" && q.Opponent != "*" {
		query += " AND opponent = ?"
		args = append(args, q.Opponent)
	}

	query += " ORDER BY entry_time_utc ASC, rowid ASC"

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var entries []EntryRecord
	for rows.Next() {
		var e EntryRecord
		err := rows.Scan(
			&e.EntryID, &e.SessionID, &e.Kind,
			&e.Deck, &e.Opponent, &e.Speed, &e.Amount,
			&e.EntryTimeUTC,
		)
		if err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration failed: %w", err)
	}

	return entries, nil
}
