package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/backmassage/renum/internal/display"
	"github.com/backmassage/renum/internal/fsops"
	"github.com/backmassage/renum/internal/ledger"
	"github.com/backmassage/renum/internal/naming"
	"github.com/backmassage/renum/internal/prompt"
	"github.com/backmassage/renum/internal/resolve"
)

// RenameAll is the interactive variant: every file of a folder is renumbered
// (no range filter), the operator chooses prefix and start number per folder,
// and processing descends into chosen subfolders one level at a time. All
// folders accumulate into a single ledger so one rollback undoes the whole
// session.
func (r *Runner) RenameAll(ctx context.Context) (RunStats, error) {
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

	if !cfg.DryRun {
		if err := r.guardPendingLedger(dir); err != nil {
			return stats, err
		}
	}

	r.Log.Info("Interactive rename mode")
	r.Log.Info("Base directory: %s", dir)

	ldg := ledger.New()
	resolver := &resolve.Resolver{
		FS:       r.FS,
		Ledger:   ldg,
		Strategy: cfg.Strategy,
		Decider:  r.Decider,
	}

	rootPrefix := cfg.Prefix
	if rootPrefix == "" {
		rootPrefix = cfg.DefaultPrefix
	}
	if err := r.processFolder(ctx, resolver, dir, dir, rootPrefix, cfg.StartNumber, &stats); err != nil {
		// Persist whatever was already done before surfacing the error, so a
		// half-finished session stays reversible.
		if ferr := r.finish(ldg, dir, &stats); ferr != nil {
			r.Log.Error("%v", ferr)
		}
		return stats, err
	}

	if err := r.finish(ldg, dir, &stats); err != nil {
		return stats, err
	}
	return stats, nil
}

// processFolder applies the per-folder rename primitive to path and then
// offers its subfolders. base is the session root, used for relative display.
func (r *Runner) processFolder(ctx context.Context, resolver *resolve.Resolver, base, path, prefix string, start int, stats *RunStats) error {
	files, err := r.folderCandidates(path)
	if err != nil {
		return err
	}

	if len(files) > 0 {
		rel, _ := filepath.Rel(base, path)
		if rel == "." {
			rel = "(main folder)"
		}
		r.Log.Info("Processing: %s (%d files)", rel, len(files))

		prefix, start, err = r.folderSettings(prefix, start)
		if err != nil {
			return err
		}

		if err := r.renameFolderFiles(ctx, resolver, path, files, prefix, start, stats); err != nil {
			return err
		}
	}

	return r.offerSubfolders(ctx, resolver, base, path, stats)
}

// folderSettings asks the operator for the prefix and start number to use in
// the current folder. An empty prefix always asks; a preset one offers the
// chance to change it.
func (r *Runner) folderSettings(prefix string, start int) (string, int, error) {
	if prefix == "" {
		p, err := r.Decider.AskString("Enter prefix for this folder", r.Cfg.DefaultPrefix)
		if err != nil {
			return "", 0, err
		}
		prefix = p
	} else {
		change, err := r.Decider.Confirm(fmt.Sprintf("Set a new prefix? (current: %q)", prefix))
		if err != nil {
			return "", 0, err
		}
		if change {
			p, err := r.Decider.AskString("Enter new prefix", r.Cfg.DefaultPrefix)
			if err != nil {
				return "", 0, err
			}
			prefix = p
		}
	}

	change, err := r.Decider.Confirm(fmt.Sprintf("Change the start numbering? (current: %d)", start))
	if err != nil {
		return "", 0, err
	}
	if change {
		n, err := r.Decider.AskInt("Start numbering from", start)
		if err != nil {
			return "", 0, err
		}
		start = n
	}
	return prefix, start, nil
}

// renameFolderFiles renumbers every candidate in ascending name order.
// Unlike the range transaction there is no descending trick here; conflicts
// with not-yet-processed files fall to the duplicate strategy.
func (r *Runner) renameFolderFiles(ctx context.Context, resolver *resolve.Resolver, dir string, files []string, prefix string, start int, stats *RunStats) error {
	pairs := make([]display.RenamePair, len(files))
	for i, f := range files {
		_, ext := naming.SplitExt(f)
		pairs[i] = display.RenamePair{Old: f, New: naming.TargetName(prefix, start+i, ext)}
	}
	display.PrintPreview(pairs)

	if r.Cfg.DryRun {
		r.Log.Success("[DRY] Would rename %d file(s)", len(files))
		return nil
	}

	stats.Found += len(files)
	for i, f := range files {
		if ctx.Err() != nil {
			r.Log.Warn("Interrupted")
			return ctx.Err()
		}
		r.renameOne(ctx, resolver, dir, f, prefix, start+i, stats)
	}
	return nil
}

// offerSubfolders lists the non-hidden subfolders that contain files and lets
// the operator pick which to process next, each starting with a fresh
// prefix/number conversation.
func (r *Runner) offerSubfolders(ctx context.Context, resolver *resolve.Resolver, base, path string, stats *RunStats) error {
	dirs, err := fsops.ListDirs(path)
	if err != nil {
		return err
	}

	var folders []prompt.Folder
	for _, d := range dirs {
		if strings.HasPrefix(d, ".") {
			continue
		}
		sub := filepath.Join(path, d)
		files, err := r.folderCandidates(sub)
		if err != nil || len(files) == 0 {
			continue
		}
		folders = append(folders, prompt.Folder{Name: d, Path: sub, FileCount: len(files)})
	}
	if len(folders) == 0 {
		return nil
	}

	r.Log.Info("Found %d subfolder(s) with files", len(folders))
	descend, err := r.Decider.Confirm("Rename files in these subfolders?")
	if err != nil {
		return err
	}
	if !descend {
		return nil
	}

	chosen, err := r.Decider.SelectFolders(folders)
	if err != nil {
		return err
	}
	for _, f := range chosen {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := r.processFolder(ctx, resolver, base, f.Path, "", 1, stats); err != nil {
			return err
		}
	}
	return nil
}

// folderCandidates lists the regular files of dir eligible for interactive
// renaming. The ledger file and hidden files are never candidates; renaming
// the ledger out from under the transaction would break rollback.
func (r *Runner) folderCandidates(dir string) ([]string, error) {
	names, err := fsops.ListFiles(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, n := range names {
		if n == r.Cfg.LedgerName || strings.HasPrefix(n, ".") {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
