package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	base := DefaultConfig("/tmp/data/matchups.json")
	cfg, err := Load(filepath.Join(t.TempDir(), FileName), base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *cfg != *base {
		t.Fatalf("cfg = %+v, want %+v", *cfg, *base)
	}
	if cfg == base {
		t.Fatal("load must return a copy")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	content := `journal_path = "/var/lib/matchups/journal.db"
theme = "color"
pretty = true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path, DefaultConfig("/tmp/data/matchups.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DataPath != "/tmp/data/matchups.json" {
		t.Errorf("data path = %q, default should survive", cfg.DataPath)
	}
	if cfg.JournalPath != "/var/lib/matchups/journal.db" || cfg.Theme != "color" || !cfg.Pretty {
		t.Errorf("unexpected config: %+v", *cfg)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("theme = \n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, DefaultConfig("x.json")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MATCHUPS_DATA", "/srv/matchups.json")
	t.Setenv("MATCHUPS_THEME", "color")
	t.Setenv("MATCHUPS_DEBUG", "true")

	cfg := DefaultConfig("default.json")
	cfg.JournalPath = "from-file.db"
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("apply env: %v", err)
	}

	if cfg.DataPath != "/srv/matchups.json" || cfg.Theme != "color" || !cfg.Debug {
		t.Errorf("env not applied: %+v", *cfg)
	}
	if cfg.JournalPath != "from-file.db" {
		t.Errorf("unset variable overwrote journal path: %q", cfg.JournalPath)
	}
}

func TestApplyEnvBadBool(t *testing.T) {
	t.Setenv("MATCHUPS_PRETTY", "sometimes")
	if err := DefaultConfig("x.json").ApplyEnv(); err == nil {
		t.Fatal("expected error for malformed bool")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"color", func(c *Config) { c.Theme = "color" }, ""},
		{"missing data path", func(c *Config) { c.DataPath = "" }, "DataPath"},
		{"unknown theme", func(c *Config) { c.Theme = "neon" }, "Theme"},
		{"empty theme", func(c *Config) { c.Theme = "" }, "Theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("matchups.json")
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

func TestPath(t *testing.T) {
	if got := Path(filepath.Join("a", "b", "matchups.json")); got != filepath.Join("a", "b", FileName) {
		t.Fatalf("path = %q", got)
	}
}
