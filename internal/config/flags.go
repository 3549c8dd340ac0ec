package config

// This file implements CLI flag parsing and help text.
// Flags are grouped into rename parameters, modes, behavior, and display.
// Numeric range flags are captured as strings so "not set" is distinguishable
// from zero; Validate reports the missing ones by name.

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ParseFlags parses os.Args into cfg. On --help or --version it prints and exits.
// On error it returns non-nil (e.g. unknown flag, bad range value).
func ParseFlags(cfg *Config, version string) error {
	fs := flag.NewFlagSet("renum", flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs, version) }

	var util utilityFlags

	defineRenameFlags(fs, cfg)
	defineModeFlags(fs, cfg)
	defineBehaviorFlags(fs, cfg, &util)
	defineDisplayFlags(fs, cfg, &util)
	defineUtilityFlags(fs, &util)

	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	applyUtilityFlags(cfg, &util)

	if util.showHelp {
		printUsage(fs, version)
		os.Exit(0)
	}
	if util.showVersion {
		fmt.Fprintln(os.Stdout, "renum v"+version)
		os.Exit(0)
	}

	if err := parsePositionalArgs(fs, cfg); err != nil {
		return err
	}
	return parseRangeFlags(cfg)
}

// utilityFlags holds boolean flags applied after Parse. These either invert a
// default (noColor -> ColorMode=never) or trigger exit (showHelp, showVersion).
type utilityFlags struct {
	forceColor  bool
	noColor     bool
	showVersion bool
	showHelp    bool
}

// defineRenameFlags registers -p/--prefix, -cs/-ce/-ns, and -ds/--duplicate-strategy.
func defineRenameFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Prefix, "prefix", cfg.Prefix, "File prefix (optional)")
	fs.StringVar(&cfg.Prefix, "p", cfg.Prefix, "Same as --prefix")
	fs.StringVar(&cfg.CurrentStartRaw, "current-start", "", "Start of current numeric range")
	fs.StringVar(&cfg.CurrentStartRaw, "cs", "", "Same as --current-start")
	fs.StringVar(&cfg.CurrentEndRaw, "current-end", "", "End of current numeric range")
	fs.StringVar(&cfg.CurrentEndRaw, "ce", "", "Same as --current-end")
	fs.StringVar(&cfg.NewStartRaw, "new-start", "", "New start point for renumbering")
	fs.StringVar(&cfg.NewStartRaw, "ns", "", "Same as --new-start")
	fs.Var(&strategyValue{&cfg.Strategy}, "duplicate-strategy", "Duplicate handling: skip | suffix | backup | overwrite | ask")
	fs.Var(&strategyValue{&cfg.Strategy}, "ds", "Same as --duplicate-strategy")
}

// defineModeFlags registers -a/--all, -r/--rollback, -c/--check.
func defineModeFlags(fs *flag.FlagSet, cfg *Config) {
	fs.BoolVar(&cfg.All, "all", false, "Interactive rename across directory tree")
	fs.BoolVar(&cfg.All, "a", false, "Same as --all")
	fs.BoolVar(&cfg.Rollback, "rollback", false, "Revert the last rename transaction")
	fs.BoolVar(&cfg.Rollback, "r", false, "Same as --rollback")
	fs.BoolVar(&cfg.CheckOnly, "check", false, "Run directory diagnostics and exit")
	fs.BoolVar(&cfg.CheckOnly, "c", false, "Same as --check")
}

// defineBehaviorFlags registers dry-run, yes, ledger, and config-file flags.
func defineBehaviorFlags(fs *flag.FlagSet, cfg *Config, u *utilityFlags) {
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; rename nothing")
	fs.BoolVar(&cfg.DryRun, "d", false, "Same as --dry-run")
	fs.BoolVar(&cfg.AssumeYes, "yes", false, "Assume yes for all confirmations")
	fs.BoolVar(&cfg.AssumeYes, "y", false, "Same as --yes")
	fs.StringVar(&cfg.LedgerName, "ledger", cfg.LedgerName, "Ledger filename inside the target directory")
	fs.StringVar(&cfg.ConfigFile, "config", "", "Path to YAML config file")
}

// defineDisplayFlags registers --color, --no-color, verbose, --log.
func defineDisplayFlags(fs *flag.FlagSet, cfg *Config, u *utilityFlags) {
	fs.BoolVar(&u.forceColor, "color", false, "Force colored output")
	fs.BoolVar(&u.noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Same as --verbose")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "Append action log to file")
	fs.StringVar(&cfg.LogFile, "l", cfg.LogFile, "Same as --log")
}

// defineUtilityFlags registers --version and --help (exit after printing).
func defineUtilityFlags(fs *flag.FlagSet, u *utilityFlags) {
	fs.BoolVar(&u.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&u.showVersion, "V", false, "Same as --version")
	fs.BoolVar(&u.showHelp, "help", false, "Show this help and exit")
	fs.BoolVar(&u.showHelp, "h", false, "Same as --help")
}

// applyUtilityFlags copies color override flags into cfg.
func applyUtilityFlags(cfg *Config, u *utilityFlags) {
	if u.noColor {
		cfg.ColorMode = ColorNever
	} else if u.forceColor {
		cfg.ColorMode = ColorAlways
	}
}

// parsePositionalArgs sets Dir from the single positional arg when not in CheckOnly mode.
func parsePositionalArgs(fs *flag.FlagSet, cfg *Config) error {
	args := fs.Args()
	switch len(args) {
	case 0:
		if cfg.CheckOnly {
			return nil
		}
		return fmt.Errorf("need a target directory")
	case 1:
		cfg.Dir = NormalizeDirArg(args[0])
		return nil
	default:
		return fmt.Errorf("too many arguments (need exactly one directory)")
	}
}

// parseRangeFlags converts captured range strings into ints. Empty captures
// are left alone; Validate decides whether they were required.
func parseRangeFlags(cfg *Config) error {
	var err error
	if cfg.CurrentStartRaw != "" {
		if cfg.CurrentStart, err = parseInt(cfg.CurrentStartRaw, "current-start"); err != nil {
			return err
		}
	}
	if cfg.CurrentEndRaw != "" {
		if cfg.CurrentEnd, err = parseInt(cfg.CurrentEndRaw, "current-end"); err != nil {
			return err
		}
	}
	if cfg.NewStartRaw != "" {
		if cfg.NewStart, err = parseInt(cfg.NewStartRaw, "new-start"); err != nil {
			return err
		}
		if cfg.All {
			cfg.StartNumber = cfg.NewStart
		}
	}
	return nil
}

// parseInt parses a string as an integer for range flags; returns a clear error on failure.
func parseInt(s, name string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number (got %q)", name, s)
	}
	return n, nil
}

// printUsage writes the help text to stderr. Column-aligned for readability.
func printUsage(fs *flag.FlagSet, version string) {
	const col1 = 30 // width of "  -x, --long-name <arg>  "
	lines := []struct {
		flags string
		desc  string
	}{
		{"", "Renum v" + version + " — batch file renaming with rollback"},
		{"", ""},
		{"  renum [OPTIONS] <directory>", ""},
		{"", ""},
		{"Rename", ""},
		{"  -p, --prefix <name>", "File prefix (optional)"},
		{"  -cs, --current-start <n>", "Start of current numeric range"},
		{"  -ce, --current-end <n>", "End of current numeric range"},
		{"  -ns, --new-start <n>", "New start point for renumbering"},
		{"  -ds, --duplicate-strategy", "skip | suffix | backup | overwrite | ask (default: ask)"},
		{"", ""},
		{"Modes", ""},
		{"  -a, --all", "Interactive rename across directory tree"},
		{"  -r, --rollback", "Revert the last rename transaction"},
		{"  -c, --check", "Directory diagnostics (permissions, pending ledger)"},
		{"", ""},
		{"Behavior", ""},
		{"  -d, --dry-run", "Preview only; rename nothing"},
		{"  -y, --yes", "Assume yes for all confirmations"},
		{"  --ledger <name>", "Ledger filename (default: backup_mapping.json)"},
		{"  --config <path>", "YAML config file"},
		{"", ""},
		{"Display", ""},
		{"  --color", "Force colored output"},
		{"  --no-color", "Disable colored output"},
		{"  -v, --verbose", "Verbose output"},
		{"  -l, --log <path>", "Append action log to file"},
		{"", ""},
		{"Utility", ""},
		{"  -V, --version", "Print version and exit"},
		{"  -h, --help", "Show this help and exit"},
		{"", ""},
		{"Examples", ""},
		{"  renum -p Evidence -cs 1 -ce 3 -ns 5 /case/photos", ""},
		{"  renum -a -p Photo -ns 10 /images", ""},
		{"  renum -r /case/photos", ""},
	}

	for _, l := range lines {
		if l.flags == "" && l.desc == "" {
			fmt.Fprintln(os.Stderr)
			continue
		}
		if l.desc == "" {
			fmt.Fprintln(os.Stderr, l.flags)
			continue
		}
		if l.flags == "" {
			fmt.Fprintln(os.Stderr, l.desc)
			continue
		}
		padding := col1 - len(l.flags)
		if padding < 1 {
			padding = 1
		}
		fmt.Fprintf(os.Stderr, "%s%*s%s\n", l.flags, padding, "", l.desc)
	}
}

// flag.Value adapter so the Strategy enum works with flag.Var.

type strategyValue struct{ p *Strategy }

func (v *strategyValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v *strategyValue) Set(s string) error {
	st, err := ParseStrategy(s)
	if err != nil {
		return err
	}
	*v.p = st
	return nil
}
