// Package cli is the non-interactive journal admin: matchups db ...
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"matchups/internal/core"
	"matchups/internal/storage"
)

// Run is the entry point for the CLI mini-app
func Run(args []string) error {
	return run(args, os.Stdout)
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("subcommand required: init, delete, or query")
	}

	switch args[0] {
	case "init":
		return runInit(args[1:], out)
	case "delete":
		return runDelete(args[1:], out)
	case "query":
		return runQuery(args[1:], out)
	default:
		return fmt.Errorf("unknown subcommand: %s", args[0])
	}
}

func runInit(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	path := fs.String("path", "", "Journal file path (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("journal path required")
	}

	journal, err := storage.NewJournal(*path)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer journal.Close()

	if err := journal.InitDB(); err != nil {
		return fmt.Errorf("failed to initialize journal: %w", err)
	}

	fmt.Fprintf(out, "Journal initialized at: %s\n", *path)
	return nil
}

func runDelete(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	path := fs.String("path", "", "Journal file path (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("journal path required")
	}

	journal, err := storage.NewJournal(*path)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}

	if err := journal.DeleteDB(); err != nil {
		return fmt.Errorf("failed to delete journal: %w", err)
	}

	fmt.Fprintf(out, "Journal deleted: %s\n", *path)
	return nil
}

func runQuery(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	path := fs.String("path", "", "Journal file path (required)")
	deck := fs.String("deck", "", "Deck name to filter (optional, * for all)")
	opponent := fs.String("opponent", "", "Opponent name to filter (optional, * for all)")
	session := fs.String("session", "", "Session ID to filter (optional, * for all)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *path == "" {
		return fmt.Errorf("journal path required")
	}
	if _, err := os.Stat(*path); err != nil {
		return fmt.Errorf("journal not found: %w", err)
	}

	journal, err := storage.NewJournal(*path)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer journal.Close()

	entries, err := journal.QueryEntries(storage.EntryQuery{
		SessionID: *session,
		Deck:      *deck,
		Opponent:  *opponent,
	})
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No entries found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Time\tSession\tKind\tDeck\tOpponent\tSpeed\tAmount")
	fmt.Fprintln(w, strings.Repeat("-", 80))

	for _, e := range entries {
		amount := ""
		if _, ok := core.ParseResult(e.Kind); ok {
			amount = fmt.Sprintf("%+d", e.Amount)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.EntryTimeUTC.Format("2006-01-02 15:04:05"),
			e.SessionID[:8]+"...",
			e.Kind,
			e.Deck,
			e.Opponent,
			e.Speed,
			amount,
		)
	}
	w.Flush()

	fmt.Fprintf(out, "\nFound %d entr%s\n", len(entries), plural(len(entries)))
	return nil
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
