package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/backmassage/renum/internal/config"
	"github.com/backmassage/renum/internal/display"
	"github.com/backmassage/renum/internal/fsops"
	"github.com/backmassage/renum/internal/ledger"
	"github.com/backmassage/renum/internal/logging"
	"github.com/backmassage/renum/internal/naming"
	"github.com/backmassage/renum/internal/prompt"
	"github.com/backmassage/renum/internal/resolve"
)

// Fatal preflight conditions. These abort the transaction before any
// mutation.
var (
	ErrEmptyDirectory = errors.New("directory is empty")
	ErrNotWritable    = errors.New("no write permission in directory")
	ErrCancelled      = errors.New("operation cancelled")
)

// Runner holds the collaborators of a rename transaction. One Runner serves
// one transaction; the ledger it writes is created fresh per run.
type Runner struct {
	Cfg     *config.Config
	Log     *logging.Logger
	FS      fsops.FS
	Decider prompt.Decider
}

// RenameRange renumbers the files of cfg.Dir whose numeric stem lies in
// [CurrentStart, CurrentEnd], assigning new numbers starting at NewStart.
// Execution order is descending by stem so overlapping old and new ranges
// never collide with a not-yet-processed source. The recorded ledger is
// persisted when at least one operation was performed.
func (r *Runner) RenameRange(ctx context.Context) (RunStats, error) {
	var stats RunStats
	cfg := r.Cfg

	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		return stats, err
	}
	if _, err := r.FS.Stat(dir); err != nil {
		return stats, fmt.Errorf("directory %s does not exist", dir)
	}
	if !fsops.DirWritable(dir) {
		return stats, fmt.Errorf("%w: %s", ErrNotWritable, dir)
	}

	names, err := fsops.ListFiles(dir)
	if err != nil {
		return stats, err
	}
	if len(names) == 0 {
		return stats, fmt.Errorf("%w: %s", ErrEmptyDirectory, dir)
	}

	cands := selectRange(names, cfg.Prefix, cfg.CurrentStart, cfg.CurrentEnd)
	stats.Found = len(cands)
	stats.Missing = missingNumbers(names, cfg.Prefix, cfg.CurrentStart, cfg.CurrentEnd)

	r.logHeader(dir, &stats)

	if len(stats.Missing) > 0 {
		r.Log.Warn("Missing in range: %s", formatMissing(cfg.Prefix, stats.Missing))
		ok, err := r.Decider.Confirm("Continue renaming the available files?")
		if err != nil {
			return stats, err
		}
		if !ok {
			r.Log.Action("Operation cancelled by user (missing files).")
			return stats, ErrCancelled
		}
	}

	if stats.Found == 0 {
		r.Log.Warn("No files matched the range; nothing to do")
		return stats, nil
	}

	display.PrintPreview(previewPairs(cfg.Prefix, cfg.NewStart, cands))

	if cfg.DryRun {
		r.Log.Success("[DRY] Would rename %d file(s)", stats.Found)
		return stats, nil
	}

	// A dry run never writes the ledger, so the guard only applies to real
	// transactions.
	if err := r.guardPendingLedger(dir); err != nil {
		return stats, err
	}

	ok, err := r.Decider.Confirm("Proceed with renaming?")
	if err != nil {
		return stats, err
	}
	if !ok {
		r.Log.Action("Operation cancelled by user.")
		return stats, ErrCancelled
	}

	ldg := ledger.New()
	resolver := &resolve.Resolver{
		FS:       r.FS,
		Ledger:   ldg,
		Strategy: cfg.Strategy,
		Decider:  r.Decider,
	}

	// Highest stem first: when shifting up (newStart above currentStart) the
	// destination of file i can be the source name of file i+1, which has
	// already moved out of the way by the time we get there. Shifting down
	// still hits not-yet-processed sources; those conflicts fall to the
	// duplicate strategy like any other occupied destination.
	for i := len(cands) - 1; i >= 0; i-- {
		if ctx.Err() != nil {
			r.Log.Warn("Interrupted")
			break
		}
		r.renameOne(ctx, resolver, dir, cands[i].Name, cfg.Prefix, cfg.NewStart+i, &stats)
	}

	if err := r.finish(ldg, dir, &stats); err != nil {
		return stats, err
	}
	return stats, nil
}

// renameOne moves a single file through the conflict resolver and updates
// counters. Per-file failures are logged and counted, never fatal.
func (r *Runner) renameOne(ctx context.Context, resolver *resolve.Resolver, dir, name, prefix string, target int, stats *RunStats) {
	_, ext := naming.SplitExt(name)
	newName := naming.TargetName(prefix, target, ext)
	src := filepath.Join(dir, name)
	dst := filepath.Join(dir, newName)

	result, err := resolver.Resolve(ctx, src, dst)
	switch {
	case err != nil:
		r.Log.Error("Cannot rename %s: %v", name, err)
		stats.Failed++
	case result == src:
		r.Log.Warn("[SKIP] %s (destination already exists)", name)
		stats.Skipped++
	default:
		r.Log.Info("[RENAMED] %s -> %s", name, filepath.Base(result))
		r.Log.Action("Renamed: %s -> %s", name, filepath.Base(result))
		stats.Renamed++
	}
}

// guardPendingLedger refuses to silently destroy the rollback capability of
// an earlier transaction: when a ledger file already exists the operator must
// explicitly agree to discard it.
func (r *Runner) guardPendingLedger(dir string) error {
	path := ledger.Path(dir, r.Cfg.LedgerName)
	if !ledger.Exists(path) {
		return nil
	}
	r.Log.Warn("A rollback ledger from a previous transaction exists and will be overwritten")
	ok, err := r.Decider.Confirm("Discard the previous rollback ledger and continue?")
	if err != nil {
		return err
	}
	if !ok {
		r.Log.Action("Operation cancelled by user (pending ledger).")
		return ErrCancelled
	}
	return nil
}

// finish persists the ledger when anything was recorded and prints the run
// summary.
func (r *Runner) finish(ldg *ledger.Ledger, dir string, stats *RunStats) error {
	if ldg.Len() > 0 {
		path := ledger.Path(dir, r.Cfg.LedgerName)
		if err := ldg.Save(path); err != nil {
			return fmt.Errorf("renames done but ledger not saved (rollback unavailable): %w", err)
		}
		stats.LedgerSaved = true
	}

	if stats.Renamed == 0 && stats.Failed == 0 {
		r.Log.Info("No files were renamed")
		r.Log.Action("No files were renamed.")
		return nil
	}

	rollback := "no"
	if stats.LedgerSaved {
		rollback = "yes (use -r flag)"
	}
	display.PrintSummary("Operation completed", [][2]string{
		{"Files renamed", fmt.Sprintf("%d", stats.Renamed)},
		{"Files skipped", fmt.Sprintf("%d", stats.Skipped)},
		{"Files failed", fmt.Sprintf("%d", stats.Failed)},
		{"Rollback available", rollback},
	})
	r.Log.Action("Renaming completed. Files renamed: %d, skipped: %d, failed: %d",
		stats.Renamed, stats.Skipped, stats.Failed)
	return nil
}

func (r *Runner) logHeader(dir string, stats *RunStats) {
	cfg := r.Cfg
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "(no prefix)"
	}
	r.Log.Info("Directory: %s", dir)
	r.Log.Info("Range: %s%d to %s%d, renumbering from %d",
		cfg.Prefix, cfg.CurrentStart, cfg.Prefix, cfg.CurrentEnd, cfg.NewStart)
	r.Log.Info("Prefix: %s | Strategy: %s | Files found in range: %d", prefix, cfg.Strategy, stats.Found)
}

// previewPairs builds the old → new preview rows in ascending stem order.
func previewPairs(prefix string, newStart int, cands []candidate) []display.RenamePair {
	pairs := make([]display.RenamePair, len(cands))
	for i, c := range cands {
		_, ext := naming.SplitExt(c.Name)
		pairs[i] = display.RenamePair{
			Old: c.Name,
			New: naming.TargetName(prefix, newStart+i, ext),
		}
	}
	return pairs
}

func formatMissing(prefix string, missing []int) string {
	parts := make([]string, len(missing))
	for i, n := range missing {
		parts[i] = fmt.Sprintf("%s%d", prefix, n)
	}
	return strings.Join(parts, ", ")
}
