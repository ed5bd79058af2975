package storage

import "time"

// Journal entry kinds
const (
	KindDeck     = "deck"
	KindOpponent = "opponent"
	KindWins     = "wins"
	KindLosses   = "losses"
	KindDraws    = "draws"
	KindSave     = "save"
)

// SessionRecord represents a row in the sessions table
type SessionRecord struct {
	SessionID    string    `db:"session_id" validate:"required,uuid"`
	DataPath     string    `db:"data_path" validate:"required"`
	StartTimeUTC time.Time `db:"start_time_utc" validate:"required"`
}

// EntryRecord represents a row in the entries table
type EntryRecord struct {
	EntryID      string    `db:"entry_id" validate:"required,uuid"`
	SessionID    string    `db:"session_id" validate:"required,uuid"`
	Kind         string    `db:"kind" validate:"required,oneof=deck opponent wins losses draws save"`
	Deck         string    `db:"deck"`
	Opponent     string    `db:"opponent"`
	Speed        string    `db:"speed"`
	Amount       int       `db:"amount"`
	EntryTimeUTC time.Time `db:"entry_time_utc" validate:"required"`
}

// Schema defines the SQLite journal structure
const Schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id TEXT PRIMARY KEY,
	data_path TEXT NOT NULL,
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS entries (
	entry_id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	kind TEXT NOT NULL CHECK(kind IN ('deck', 'opponent', 'wins', 'losses', 'draws', 'save')),
	deck TEXT NOT NULL DEFAULT '',
	opponent TEXT NOT NULL DEFAULT '',
	speed TEXT NOT NULL DEFAULT '',
	amount INTEGER NOT NULL DEFAULT 0,
	entry_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_entries_session_id ON entries(session_id);
CREATE INDEX IF NOT EXISTS idx_entries_deck_opponent ON entries(deck, opponent);
`
