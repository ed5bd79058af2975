package transport

import (
	"matchups/internal/cli"
	"matchups/internal/core"
	"matchups/internal/stats"
)

// Matchups is the store a session controller drives, independent of the
// medium the user talks through
type Matchups interface {
	Decks() core.View
	AddDeck(name string)
	Opponents(deck string, f core.Filter) (core.View, error)
	HasOpponent(deck, opponent string) bool
	AddOpponent(deck, opponent, speed string) error
	Record(deck, opponent string) (core.Record, error)
	AddResults(deck, opponent string, result core.Result, n int) (core.Record, error)
	Summary(deck string, opponents []string) (stats.Summary, error)
	Save() error
}

// View abstracts display and input operations
type View interface {
	ShowMenu(m cli.Menu) (string, error)
	Ask(prompt string) (string, error)
	ShowMessage(msg string)
	ShowError(msg string)
	ShowWelcome()
	ShowGoodbye()
}
