package config

// Optional YAML config file. CLI flags always win over file values, which in
// turn win over built-in defaults, so the file is applied to cfg before
// ParseFlags runs. Search order: --config, $RENUM_CONFIG, then
// ~/.config/renum/config.yaml.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML schema of the optional config file. All fields are
// optional; zero values leave the corresponding Config field untouched.
type FileConfig struct {
	Defaults struct {
		Prefix      string `yaml:"prefix"`      // Interactive-mode default prefix.
		Strategy    string `yaml:"strategy"`    // Default duplicate strategy.
		StartNumber int    `yaml:"startNumber"` // Interactive-mode start number.
	} `yaml:"defaults"`
	Ledger struct {
		Filename string `yaml:"filename"` // Per-directory ledger filename.
	} `yaml:"ledger"`
	Logging struct {
		File  string `yaml:"file"`  // Append-only action log path.
		Color string `yaml:"color"` // auto | always | never.
	} `yaml:"logging"`
}

// DefaultConfigPath returns the conventional config file location, or "" when
// the user home directory cannot be determined.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "renum", "config.yaml")
}

// LoadFile reads the config file (explicit path, $RENUM_CONFIG, or the
// default location) and applies it to cfg. A missing file is only an error
// when the path was given explicitly.
func LoadFile(cfg *Config, explicit string) error {
	path := explicit
	required := explicit != ""
	if path == "" {
		path = os.Getenv("RENUM_CONFIG")
		required = path != ""
	}
	if path == "" {
		path = DefaultConfigPath()
	}
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return applyFileConfig(cfg, &fc)
}

// applyFileConfig copies non-zero file values into cfg.
func applyFileConfig(cfg *Config, fc *FileConfig) error {
	if fc.Defaults.Prefix != "" {
		cfg.DefaultPrefix = fc.Defaults.Prefix
	}
	if fc.Defaults.Strategy != "" {
		st, err := ParseStrategy(fc.Defaults.Strategy)
		if err != nil {
			return err
		}
		cfg.Strategy = st
	}
	if fc.Defaults.StartNumber > 0 {
		cfg.StartNumber = fc.Defaults.StartNumber
	}
	if fc.Ledger.Filename != "" {
		cfg.LedgerName = fc.Ledger.Filename
	}
	if fc.Logging.File != "" {
		cfg.LogFile = fc.Logging.File
	}
	if fc.Logging.Color != "" {
		switch ColorMode(fc.Logging.Color) {
		case ColorAuto, ColorAlways, ColorNever:
			cfg.ColorMode = ColorMode(fc.Logging.Color)
		default:
			return fmt.Errorf("invalid color mode %q in config file", fc.Logging.Color)
		}
	}
	return nil
}
