// Package config holds runtime configuration: defaults, the optional YAML
// config file, CLI flag parsing, and validation.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// --- Enum types for validated string fields ---

// Strategy selects how a destination-name collision is resolved.
type Strategy string

const (
	StrategySkip      Strategy = "skip"      // Leave the source file untouched.
	StrategySuffix    Strategy = "suffix"    // Probe name_1, name_2, … until free.
	StrategyBackup    Strategy = "backup"    // Displace the occupant into .rename_backups.
	StrategyOverwrite Strategy = "overwrite" // Displace into .rename_backups/overwritten.
	StrategyAsk       Strategy = "ask"       // Ask the operator per conflict (default).
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. It is populated by [DefaultConfig],
// optionally overlaid by [LoadFile], and then mutated by [ParseFlags] before
// being passed (by pointer) to packages that need it.
type Config struct {
	// Target directory (positional argument).
	Dir string

	// Rename parameters.
	Prefix       string // File prefix; empty selects all-digit stems in range mode.
	CurrentStart int    // Start of the current numeric range (inclusive).
	CurrentEnd   int    // End of the current numeric range (inclusive).
	NewStart     int    // First number of the new sequence.
	Strategy     Strategy

	// Interactive mode defaults.
	DefaultPrefix string // Prefix offered when none is given per folder. Default: "File".
	StartNumber   int    // Starting number for interactive mode. Default: 1.

	// Mode selection.
	All       bool // Interactive rename across the directory tree (-a).
	Rollback  bool // Revert the last recorded transaction (-r).
	CheckOnly bool // Run diagnostics and exit (--check).

	// Behavior flags.
	DryRun    bool // Preview only; perform no renames.
	AssumeYes bool // Answer yes to all confirmations (--yes).

	// Ledger persistence.
	LedgerName string // Filename of the per-directory ledger. Default: "backup_mapping.json".

	// Display and logging.
	Verbose   bool
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional append-only action log path.

	// Raw flag captures parsed after flag.Parse (empty means "not set").
	CurrentStartRaw string
	CurrentEndRaw   string
	NewStartRaw     string

	// Config file path (--config); empty means search default locations.
	ConfigFile string
}

// DefaultConfig returns a Config with the built-in defaults. Used as the
// base before [LoadFile] and [ParseFlags] apply overrides.
func DefaultConfig() Config {
	return Config{
		Strategy:      StrategyAsk,
		DefaultPrefix: "File",
		StartNumber:   1,
		LedgerName:    "backup_mapping.json",
		ColorMode:     ColorAuto,
	}
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}

// ParseStrategy converts a user-supplied string into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case StrategySkip:
		return StrategySkip, nil
	case StrategySuffix:
		return StrategySuffix, nil
	case StrategyBackup:
		return StrategyBackup, nil
	case StrategyOverwrite:
		return StrategyOverwrite, nil
	case StrategyAsk:
		return StrategyAsk, nil
	}
	return "", fmt.Errorf("invalid duplicate strategy %q (use skip, suffix, backup, overwrite or ask)", s)
}

// Validate checks enum fields and mode-specific argument requirements.
// Range parameters are required only for the default range-rename mode;
// rollback, interactive, and check modes ignore them.
func (c *Config) Validate() error {
	switch c.Strategy {
	case StrategySkip, StrategySuffix, StrategyBackup, StrategyOverwrite, StrategyAsk:
		// valid
	default:
		return errors.New("invalid duplicate strategy (use skip, suffix, backup, overwrite or ask)")
	}

	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use auto, always or never)")
	}

	if c.LedgerName == "" || strings.ContainsRune(c.LedgerName, '/') {
		return fmt.Errorf("invalid ledger filename %q", c.LedgerName)
	}

	if c.CheckOnly {
		return nil
	}
	if c.Dir == "" {
		return errors.New("need a target directory")
	}
	if c.Rollback || c.All {
		return nil
	}

	var missing []string
	if c.CurrentStartRaw == "" {
		missing = append(missing, "-cs/--current-start")
	}
	if c.CurrentEndRaw == "" {
		missing = append(missing, "-ce/--current-end")
	}
	if c.NewStartRaw == "" {
		missing = append(missing, "-ns/--new-start")
	}
	if len(missing) > 0 {
		return fmt.Errorf("the following arguments are required: %s", strings.Join(missing, ", "))
	}
	if c.CurrentEnd < c.CurrentStart {
		return fmt.Errorf("current range is empty (%d > %d)", c.CurrentStart, c.CurrentEnd)
	}
	return nil
}
