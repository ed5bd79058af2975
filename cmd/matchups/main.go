// Package main runs the interactive matchup tracker.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"matchups/cmd/matchups/cli"
	view "matchups/internal/cli"
	"matchups/internal/config"
	"matchups/internal/service"
	"matchups/internal/storage"
	clitransport "matchups/internal/transport/cli"
)

func main() {
	// Check for CLI journal commands
	if len(os.Args) > 1 && os.Args[1] == "db" {
		if err := cli.Run(os.Args[2:]); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var (
		dataPath    = flag.String("data", "", "Path to the matchup JSON file (default: data/matchups.json beside the executable)")
		configPath  = flag.String("config", "", "Path to a TOML config file (default: matchups.toml beside the data file)")
		journalPath = flag.String("journal", "", "Path to SQLite result journal (disabled if empty)")
		theme       = flag.String("theme", "", "Color theme: off, color")
		pretty      = flag.Bool("pretty", false, "Write the data file indented")
		lock        = flag.Bool("lock", false, "Refuse to start while another session holds the data file")
		debug       = flag.Bool("debug", false, "Log source file and line")
	)
	flag.Parse()

	cfg, err := loadConfig(*dataPath, *configPath)
	if err != nil {
		return err
	}

	// Flags win over file and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "data":
			cfg.DataPath = *dataPath
		case "journal":
			cfg.JournalPath = *journalPath
		case "theme":
			cfg.Theme = *theme
		case "pretty":
			cfg.Pretty = *pretty
		case "debug":
			cfg.Debug = *debug
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	log.SetPrefix("matchups: ")
	if cfg.Debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	if *lock {
		cleanup, err := lockDataFile(cfg.DataPath)
		if err != nil {
			return fmt.Errorf("failed to lock data file: %w", err)
		}
		defer cleanup()
	}

	var journal *storage.Journal
	if cfg.JournalPath != "" {
		journal, err = storage.NewJournal(cfg.JournalPath)
		if err != nil {
			return fmt.Errorf("failed to open journal: %w", err)
		}
		if err := journal.InitDB(); err != nil {
			journal.Close()
			return fmt.Errorf("failed to initialize journal schema: %w", err)
		}
		log.Printf("Journal enabled at: %s", cfg.JournalPath)
	}

	svc, err := service.New(storage.NewFileStore(cfg.DataPath, cfg.Pretty), journal)
	if err != nil {
		if journal != nil {
			journal.Close()
		}
		return fmt.Errorf("failed to load %s: %w", cfg.DataPath, err)
	}
	if cfg.Debug {
		log.Printf("Loaded %d deck(s) from %s (session %s, journal %s)",
			svc.DeckCount(), cfg.DataPath, svc.SessionID(), svc.GetJournalHealth())
	}
	defer func() {
		if err := svc.Close(); err != nil {
			log.Printf("Warning: failed to close journal cleanly: %v", err)
		}
	}()

	v, closeInput, err := newView(cfg.HistoryFile)
	if err != nil {
		return err
	}
	defer closeInput()
	if err := v.SetTheme(view.ColorTheme(cfg.Theme)); err != nil {
		return err
	}

	err = clitransport.New(svc, v).Run()
	if errors.Is(err, clitransport.ErrInputClosed) {
		log.Printf("%v", err)
		return nil
	}
	return err
}

// loadConfig layers defaults, the TOML file and MATCHUPS_* variables
func loadConfig(dataFlag, configFlag string) (*config.Config, error) {
	dataPath := dataFlag
	if dataPath == "" {
		dataPath = os.Getenv("MATCHUPS_DATA")
	}
	if dataPath == "" {
		p, err := config.DefaultDataPath()
		if err != nil {
			return nil, err
		}
		dataPath = p
	}

	path := configFlag
	if path == "" {
		path = config.Path(dataPath)
	}

	cfg, err := config.Load(path, config.DefaultConfig(dataPath))
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newView picks readline on a terminal and a plain scanner otherwise
func newView(historyFile string) (*view.CLI, func(), error) {
	if !view.IsTerminal(os.Stdin) {
		return view.New(os.Stdin, os.Stdout), func() {}, nil
	}

	rl, err := view.NewReadlineReader(historyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to start line editor: %w", err)
	}
	return view.NewWithReader(rl, os.Stdout), func() { rl.Close() }, nil
}
