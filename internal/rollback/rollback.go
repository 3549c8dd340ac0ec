// Package rollback restores the state recorded by the last rename
// transaction: it replays the persisted ledger in reverse, inverting each
// operation, restores displaced files from the backup layout, prunes emptied
// backup directories, and finally deletes the single-use ledger file.
package rollback

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/backmassage/renum/internal/config"
	"github.com/backmassage/renum/internal/display"
	"github.com/backmassage/renum/internal/fsops"
	"github.com/backmassage/renum/internal/ledger"
	"github.com/backmassage/renum/internal/logging"
	"github.com/backmassage/renum/internal/prompt"
	"github.com/backmassage/renum/internal/resolve"
)

// ErrEmptyLedger is returned when the ledger file holds no operations.
var ErrEmptyLedger = errors.New("the ledger is empty; there is nothing to revert")

// ErrNotWritable mirrors the rename-side preflight condition.
var ErrNotWritable = errors.New("no write permission in directory")

// Stats tracks the outcome of one rollback run.
type Stats struct {
	Total         int // Operations recorded in the ledger.
	Successful    int
	Failed        int
	LedgerRemoved bool
}

// Runner holds the collaborators of a rollback transaction.
type Runner struct {
	Cfg     *config.Config
	Log     *logging.Logger
	FS      fsops.FS
	Decider prompt.Decider
}

// Run reverts the last recorded transaction in cfg.Dir. Failures on
// individual entries are counted and do not halt the remaining entries; the
// ledger file is removed once the reverse replay completes, since it is
// single-use either way.
func (r *Runner) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	dir, err := filepath.Abs(r.Cfg.Dir)
	if err != nil {
		return stats, err
	}
	if _, err := r.FS.Stat(dir); err != nil {
		return stats, fmt.Errorf("directory %s does not exist", dir)
	}
	if !fsops.DirWritable(dir) {
		return stats, fmt.Errorf("%w: %s", ErrNotWritable, dir)
	}

	path := ledger.Path(dir, r.Cfg.LedgerName)
	ldg, err := ledger.Load(path)
	if err != nil {
		return stats, err
	}
	if ldg.Len() == 0 {
		return stats, ErrEmptyLedger
	}
	stats.Total = ldg.Len()

	r.Log.Info("Rollback of transaction %s", ldg.TransactionID)
	r.Log.Info("Operations to revert: %d (recorded %s)", ldg.Len(), ldg.Timestamp.Format("2006-01-02 15:04:05"))
	r.Log.Action("Command: rollback %s", dir)

	ok, err := r.Decider.Confirm("Proceed with rollback?")
	if err != nil {
		return stats, err
	}
	if !ok {
		r.Log.Action("Rollback cancelled by user.")
		return stats, errors.New("rollback cancelled")
	}

	// Undo most-recent-first so chained renames unwind in the right order.
	for i := ldg.Len() - 1; i >= 0; i-- {
		if ctx.Err() != nil {
			r.Log.Warn("Interrupted")
			break
		}
		r.revertOne(ctx, ldg.Operations[i], &stats)
	}

	r.pruneBackupDirs(dir, ldg)

	// The ledger describes exactly one rollback; partial failures do not make
	// it reusable, so it is removed regardless.
	if err := ledger.Delete(path); err != nil {
		r.Log.Error("Cannot remove ledger file: %v", err)
	} else {
		stats.LedgerRemoved = true
	}

	display.PrintSummary("Rollback completed", [][2]string{
		{"Successful rollbacks", fmt.Sprintf("%d", stats.Successful)},
		{"Failed rollbacks", fmt.Sprintf("%d", stats.Failed)},
		{"Ledger removed", yesNo(stats.LedgerRemoved)},
	})
	r.Log.Action("Rollback completed. Success: %d, Failed: %d", stats.Successful, stats.Failed)
	return stats, nil
}

// revertOne inverts a single recorded operation, best-effort.
func (r *Runner) revertOne(ctx context.Context, op ledger.Operation, stats *Stats) {
	newBase := filepath.Base(op.NewPath)
	oldBase := filepath.Base(op.OldPath)

	switch op.Type {
	case ledger.OpRename:
		if !fsops.Exists(r.FS, op.NewPath) {
			r.Log.Warn("[SKIP] File not found: %s", newBase)
			stats.Failed++
			return
		}
		if err := r.FS.Rename(ctx, op.NewPath, op.OldPath); err != nil {
			r.Log.Error("Failed to revert %s: %v", newBase, err)
			stats.Failed++
			return
		}
		r.Log.Info("[OK] Reverted: %s -> %s", newBase, oldBase)
		stats.Successful++

	case ledger.OpBackup, ledger.OpOverwrite:
		if fsops.Exists(r.FS, op.NewPath) {
			if err := r.FS.Rename(ctx, op.NewPath, op.OldPath); err != nil {
				r.Log.Error("Failed to revert %s: %v", newBase, err)
				stats.Failed++
				return
			}
			r.Log.Info("[OK] Reverted: %s -> %s", newBase, oldBase)
		}
		if op.BackupPath != "" && fsops.Exists(r.FS, op.BackupPath) {
			if err := r.FS.Rename(ctx, op.BackupPath, op.NewPath); err != nil {
				r.Log.Error("Failed to restore %s from backup: %v", newBase, err)
				stats.Failed++
				return
			}
			r.Log.Info("[OK] Restored from backup: %s", newBase)
		}
		stats.Successful++

	default:
		r.Log.Error("Unknown operation type %q in ledger", op.Type)
		stats.Failed++
	}
}

// pruneBackupDirs removes the now-empty reserved backup directories. The
// interactive variant can scatter them across subfolders, so every directory
// that received a displaced file is pruned, plus the conventional one under
// the transaction root. Failure to prune is not an error.
func (r *Runner) pruneBackupDirs(dir string, ldg *ledger.Ledger) {
	roots := map[string]bool{filepath.Join(dir, resolve.BackupDirName): true}
	for _, op := range ldg.Operations {
		if op.BackupPath == "" {
			continue
		}
		root := filepath.Dir(op.BackupPath)
		if filepath.Base(root) == resolve.OverwrittenDirName {
			root = filepath.Dir(root)
		}
		roots[root] = true
	}
	for root := range roots {
		if fsops.PruneEmptyDirs(root) {
			r.Log.Debug(r.Cfg.Verbose, "Removed empty backup dir: %s", root)
		}
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
