// Command renum is the CLI entrypoint for the Renum batch renamer.
//
// It loads the optional config file, parses flags, validates configuration,
// and dispatches to one of four modes: directory diagnostics (--check),
// rollback of the last transaction (-r), interactive rename across the
// directory tree (-a), or the default range renumbering.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/backmassage/renum/internal/batch"
	"github.com/backmassage/renum/internal/check"
	"github.com/backmassage/renum/internal/config"
	"github.com/backmassage/renum/internal/display"
	"github.com/backmassage/renum/internal/fsops"
	"github.com/backmassage/renum/internal/ledger"
	"github.com/backmassage/renum/internal/logging"
	"github.com/backmassage/renum/internal/prompt"
	"github.com/backmassage/renum/internal/rollback"
)

// version and commit are injected at build time via -ldflags.
// When built with plain "go build" (no make), these retain their defaults.
var (
	version = "2.0.0"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap — the logger doesn't exist yet, so errors go
	// directly to stderr via fmt. File config is applied before flags so
	// flags win over the file, which wins over defaults.
	cfg := config.DefaultConfig()
	if err := config.LoadFile(&cfg, configPathFromArgs(os.Args[1:])); err != nil {
		fmt.Fprintf(os.Stderr, "renum: %v\n", err)
		return 1
	}
	if err := config.ParseFlags(&cfg, version); err != nil {
		fmt.Fprintf(os.Stderr, "renum: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "renum: %v\n", err)
		return 1
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "renum: %v\n", err)
		return 1
	}
	defer log.Close()

	// Phase 2: Logger available — all output goes through log from here on.
	display.PrintBanner()

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return 1
		}
		return 0
	}

	log.Info("=== Renum v%s (%s) ===", version, commit)
	log.Action("Command: %s", strings.Join(os.Args[1:], " "))
	if cfg.DryRun {
		log.Warn("DRY RUN — no files will be renamed")
	}

	// Phase 3: Signal handling — cancel context on SIGINT/SIGTERM so a
	// transaction stops between files and still persists its ledger.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, finishing current file…")
		cancel()
	}()

	var decider prompt.Decider = prompt.Terminal{}
	if cfg.AssumeYes {
		decider = prompt.AutoYes{Next: decider}
	}

	// Phase 4: Dispatch to the requested transaction.
	switch {
	case cfg.Rollback:
		return runRollback(ctx, &cfg, log, decider)
	case cfg.All:
		return runRename(ctx, &cfg, log, decider, (*batch.Runner).RenameAll)
	default:
		return runRename(ctx, &cfg, log, decider, (*batch.Runner).RenameRange)
	}
}

func runRollback(ctx context.Context, cfg *config.Config, log *logging.Logger, decider prompt.Decider) int {
	r := &rollback.Runner{Cfg: cfg, Log: log, FS: fsops.New(), Decider: decider}
	stats, err := r.Run(ctx)
	if err != nil {
		if errors.Is(err, ledger.ErrNoLedger) {
			log.Error("No rollback ledger found in %s; nothing to revert", cfg.Dir)
		} else {
			log.Error("%v", err)
		}
		return 1
	}
	if stats.Failed > 0 {
		return 1
	}
	return 0
}

func runRename(ctx context.Context, cfg *config.Config, log *logging.Logger, decider prompt.Decider,
	mode func(*batch.Runner, context.Context) (batch.RunStats, error)) int {
	r := &batch.Runner{Cfg: cfg, Log: log, FS: fsops.New(), Decider: decider}
	stats, err := mode(r, ctx)
	if err != nil {
		if errors.Is(err, batch.ErrCancelled) || errors.Is(err, prompt.ErrAborted) {
			log.Warn("Operation cancelled")
			return 1
		}
		log.Error("%v", err)
		return 1
	}
	if stats.Failed > 0 {
		return 1
	}
	return 0
}

// configPathFromArgs pre-scans the raw arguments for --config so the file can
// be loaded before the full flag parse (flags must override file values).
func configPathFromArgs(args []string) string {
	for i, a := range args {
		switch {
		case a == "--config" || a == "-config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		case strings.HasPrefix(a, "-config="):
			return strings.TrimPrefix(a, "-config=")
		}
	}
	return ""
}
