// Package resolve implements duplicate-conflict resolution for a single
// rename: given a source file and its desired destination, it either renames
// directly or applies the configured strategy (skip, suffix, backup,
// overwrite, or ask) when the destination name is occupied. Every performed
// mutation is recorded in the transaction ledger; skipped files leave no
// record.
package resolve

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/backmassage/renum/internal/config"
	"github.com/backmassage/renum/internal/fsops"
	"github.com/backmassage/renum/internal/ledger"
	"github.com/backmassage/renum/internal/naming"
	"github.com/backmassage/renum/internal/prompt"
)

// Reserved on-disk layout for displaced files, relative to the destination's
// directory.
const (
	BackupDirName      = ".rename_backups"
	OverwrittenDirName = "overwritten"
	backupSuffix       = ".backup"
	overwrittenSuffix  = ".overwritten"
)

// Resolver applies one conflict strategy across a transaction, accumulating
// performed operations into the shared ledger.
type Resolver struct {
	FS       fsops.FS
	Ledger   *ledger.Ledger
	Strategy config.Strategy
	Decider  prompt.Decider // Consulted only under StrategyAsk.
}

// Resolve moves src to dst, handling an occupied destination per the
// configured strategy. It returns the path the file actually ended up at:
// dst (or a suffix variant) on success, or src unchanged when the file was
// skipped. Callers detect "not renamed" by comparing the result to src.
func (r *Resolver) Resolve(ctx context.Context, src, dst string) (string, error) {
	// Unoccupied destination: plain rename.
	if !fsops.Exists(r.FS, dst) {
		if err := r.FS.Rename(ctx, src, dst); err != nil {
			return src, err
		}
		r.record(ledger.OpRename, src, dst, "")
		return dst, nil
	}

	// Same underlying file (e.g. the name is already correct): nothing to do
	// and nothing to roll back.
	if r.FS.SameFile(src, dst) {
		return dst, nil
	}

	strategy := r.Strategy
	if strategy == config.StrategyAsk {
		choice, err := r.Decider.ChooseConflict(filepath.Base(dst))
		if err != nil {
			return src, err
		}
		strategy = strategyFor(choice)
	}

	switch strategy {
	case config.StrategySkip:
		return src, nil
	case config.StrategySuffix:
		return r.resolveSuffix(ctx, src, dst)
	case config.StrategyBackup:
		return r.resolveDisplace(ctx, src, dst, ledger.OpBackup)
	case config.StrategyOverwrite:
		return r.resolveDisplace(ctx, src, dst, ledger.OpOverwrite)
	}
	return src, fmt.Errorf("unhandled strategy %q", strategy)
}

// resolveSuffix probes name_1, name_2, … until a free name is found, then
// renames src to it.
func (r *Resolver) resolveSuffix(ctx context.Context, src, dst string) (string, error) {
	dir := filepath.Dir(dst)
	base := filepath.Base(dst)
	for k := 1; ; k++ {
		candidate := filepath.Join(dir, naming.SuffixCandidate(base, k))
		if fsops.Exists(r.FS, candidate) {
			continue
		}
		if err := r.FS.Rename(ctx, src, candidate); err != nil {
			return src, err
		}
		r.record(ledger.OpRename, src, candidate, "")
		return candidate, nil
	}
}

// resolveDisplace moves the current occupant of dst into the reserved backup
// location and then renames src into the vacated name. backup and overwrite
// differ only in sub-path and ledger tag; both keep the displaced file so the
// transaction stays fully reversible.
func (r *Resolver) resolveDisplace(ctx context.Context, src, dst string, op ledger.OpType) (string, error) {
	backupPath, err := r.displace(ctx, dst, op)
	if err != nil {
		return src, err
	}
	if err := r.FS.Rename(ctx, src, dst); err != nil {
		return src, err
	}
	r.record(op, src, dst, backupPath)
	return dst, nil
}

// displace moves the file at dst into the backup layout and returns where it
// went.
func (r *Resolver) displace(ctx context.Context, dst string, op ledger.OpType) (string, error) {
	backupDir := filepath.Join(filepath.Dir(dst), BackupDirName)
	suffix := backupSuffix
	if op == ledger.OpOverwrite {
		backupDir = filepath.Join(backupDir, OverwrittenDirName)
		suffix = overwrittenSuffix
	}
	if err := r.FS.MkdirAll(backupDir); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s.%s%s", filepath.Base(dst), backupTimestamp(time.Now()), suffix)
	backupPath := filepath.Join(backupDir, name)
	if err := r.FS.Rename(ctx, dst, backupPath); err != nil {
		return "", err
	}
	return backupPath, nil
}

func (r *Resolver) record(op ledger.OpType, src, dst, backupPath string) {
	r.Ledger.Append(ledger.Operation{
		OldPath:    src,
		NewPath:    dst,
		Type:       op,
		BackupPath: backupPath,
		Timestamp:  time.Now(),
	})
}

// backupTimestamp formats t with microsecond resolution so displaced files
// with the same name never collide inside the backup directory.
func backupTimestamp(t time.Time) string {
	return fmt.Sprintf("%s_%06d", t.Format("20060102_150405"), t.Nanosecond()/1000)
}

func strategyFor(c prompt.ConflictChoice) config.Strategy {
	switch c {
	case prompt.ChoiceSuffix:
		return config.StrategySuffix
	case prompt.ChoiceBackup:
		return config.StrategyBackup
	case prompt.ChoiceOverwrite:
		return config.StrategyOverwrite
	default:
		return config.StrategySkip
	}
}
