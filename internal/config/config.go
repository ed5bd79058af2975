package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// FileName is looked up next to the data file when no -config is given
const FileName = "matchups.toml"

// Config represents the application configuration.
type Config struct {
	DataPath    string `toml:"data_path" env:"MATCHUPS_DATA" validate:"required"`
	JournalPath string `toml:"journal_path" env:"MATCHUPS_JOURNAL"`
	Theme       string `toml:"theme" env:"MATCHUPS_THEME" validate:"oneof=off color"`
	Pretty      bool   `toml:"pretty" env:"MATCHUPS_PRETTY"`
	Debug       bool   `toml:"debug" env:"MATCHUPS_DEBUG"`
	HistoryFile string `toml:"history_file" env:"MATCHUPS_HISTORY"`
}

var validate = validator.New()

// DefaultConfig returns the default configuration for a data file.
func DefaultConfig(dataPath string) *Config {
	return &Config{
		DataPath: dataPath,
		Theme:    "off",
	}
}

// DefaultDataPath is data/matchups.json beside the running executable
func DefaultDataPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), "data", "matchups.json"), nil
}

// Path returns the config file that belongs to a data file.
func Path(dataPath string) string {
	return filepath.Join(filepath.Dir(dataPath), FileName)
}

// Load reads a TOML file over base. A missing file leaves base untouched.
func Load(path string, base *Config) (*Config, error) {
	cfg := *base

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}
	return &cfg, nil
}

// ApplyEnv overrides fields whose MATCHUPS_* variable is set.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %q (value %q)", fe.Field(), fe.Tag(), fmt.Sprint(fe.Value()))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
