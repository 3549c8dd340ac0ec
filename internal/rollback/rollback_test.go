package rollback

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/renum/internal/batch"
	"github.com/backmassage/renum/internal/config"
	"github.com/backmassage/renum/internal/fsops"
	"github.com/backmassage/renum/internal/ledger"
	"github.com/backmassage/renum/internal/logging"
	"github.com/backmassage/renum/internal/prompt"
	"github.com/backmassage/renum/internal/resolve"
)

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func read(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("reading %s: %v", name, err)
	}
	return string(data)
}

func exists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

func newRunner(t *testing.T, cfg *config.Config, d prompt.Decider) *Runner {
	t.Helper()
	cfg.ColorMode = config.ColorNever
	log, err := logging.NewLogger(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return &Runner{Cfg: cfg, Log: log, FS: fsops.New(), Decider: d}
}

// renameRange runs a real forward transaction so rollback tests exercise the
// exact ledger the rename side writes.
func renameRange(t *testing.T, cfg *config.Config, strategy config.Strategy, cs, ce, ns int) {
	t.Helper()
	fwd := *cfg
	fwd.CurrentStart = cs
	fwd.CurrentEnd = ce
	fwd.NewStart = ns
	fwd.Strategy = strategy
	log, err := logging.NewLogger(&fwd)
	if err != nil {
		t.Fatal(err)
	}
	r := &batch.Runner{Cfg: &fwd, Log: log, FS: fsops.New(), Decider: prompt.AutoYes{Next: &prompt.Script{}}}
	if _, err := r.RenameRange(context.Background()); err != nil {
		t.Fatalf("forward rename: %v", err)
	}
}

func baseConfig(dir string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Dir = dir
	cfg.Prefix = "Note"
	cfg.ColorMode = config.ColorNever
	return &cfg
}

func TestRun_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Note1.txt", "one")
	write(t, dir, "Note2.txt", "two")

	cfg := baseConfig(dir)
	renameRange(t, cfg, config.StrategySkip, 1, 2, 5)
	if !exists(dir, "Note5.txt") || !exists(dir, "Note6.txt") {
		t.Fatal("forward rename did not run")
	}

	r := newRunner(t, cfg, &prompt.Script{Confirms: []bool{true}})
	stats, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Successful != 2 || stats.Failed != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if read(t, dir, "Note1.txt") != "one" || read(t, dir, "Note2.txt") != "two" {
		t.Error("original names and contents not restored")
	}
	if exists(dir, "Note5.txt") || exists(dir, "Note6.txt") {
		t.Error("renamed files still present after rollback")
	}
	if !stats.LedgerRemoved || ledger.Exists(ledger.Path(dir, cfg.LedgerName)) {
		t.Error("ledger file must be removed after rollback")
	}
}

func TestRun_ShiftDownRoundTrip(t *testing.T) {
	// Shifting a range down chains a displacement into the renames (Note3
	// evicts the real Note2 before Note2's content moves on). Reverse replay
	// must unwind the chain and restore both files.
	dir := t.TempDir()
	write(t, dir, "Note2.txt", "two")
	write(t, dir, "Note3.txt", "three")

	cfg := baseConfig(dir)
	renameRange(t, cfg, config.StrategyBackup, 2, 3, 1)
	if read(t, dir, "Note1.txt") != "three" {
		t.Fatal("forward shift-down did not run")
	}

	r := newRunner(t, cfg, &prompt.Script{Confirms: []bool{true}})
	stats, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Failed != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if read(t, dir, "Note2.txt") != "two" || read(t, dir, "Note3.txt") != "three" {
		t.Error("original names and contents not restored")
	}
	if exists(dir, "Note1.txt") {
		t.Error("shifted file still present after rollback")
	}
	if exists(dir, resolve.BackupDirName) {
		t.Error("emptied backup directory must be pruned")
	}
}

func TestRun_RestoresBackedUpOccupant(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Note1.txt", "mine")
	write(t, dir, "Note5.txt", "occupant")

	cfg := baseConfig(dir)
	renameRange(t, cfg, config.StrategyBackup, 1, 1, 5)
	if read(t, dir, "Note5.txt") != "mine" {
		t.Fatal("forward backup rename did not run")
	}

	r := newRunner(t, cfg, &prompt.Script{Confirms: []bool{true}})
	stats, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Failed != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if read(t, dir, "Note1.txt") != "mine" {
		t.Error("renamed file not moved back")
	}
	if read(t, dir, "Note5.txt") != "occupant" {
		t.Error("displaced occupant not restored")
	}
	if exists(dir, resolve.BackupDirName) {
		t.Error("emptied backup directory must be pruned")
	}
}

func TestRun_RestoresOverwrittenOccupant(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Note1.txt", "mine")
	write(t, dir, "Note5.txt", "occupant")

	cfg := baseConfig(dir)
	renameRange(t, cfg, config.StrategyOverwrite, 1, 1, 5)

	r := newRunner(t, cfg, &prompt.Script{Confirms: []bool{true}})
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if read(t, dir, "Note1.txt") != "mine" || read(t, dir, "Note5.txt") != "occupant" {
		t.Error("overwrite rollback did not restore both files")
	}
	if exists(dir, resolve.BackupDirName) {
		t.Error("backup tree including overwritten/ must be pruned")
	}
}

func TestRun_MissingFileCountedNotFatal(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Note5.txt", "five")

	ldg := ledger.New()
	ldg.Append(ledger.Operation{
		OldPath: filepath.Join(dir, "Note1.txt"),
		NewPath: filepath.Join(dir, "Note5.txt"),
		Type:    ledger.OpRename,
	})
	ldg.Append(ledger.Operation{
		OldPath: filepath.Join(dir, "Note2.txt"),
		NewPath: filepath.Join(dir, "Note6.txt"), // deleted since the rename
		Type:    ledger.OpRename,
	})
	if err := ldg.Save(ledger.Path(dir, "backup_mapping.json")); err != nil {
		t.Fatal(err)
	}

	cfg := baseConfig(dir)
	r := newRunner(t, cfg, &prompt.Script{Confirms: []bool{true}})
	stats, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Successful != 1 || stats.Failed != 1 {
		t.Errorf("stats = %+v, want 1 success and 1 failure", stats)
	}
	if !exists(dir, "Note1.txt") {
		t.Error("surviving entry must still be reverted")
	}
	if ledger.Exists(ledger.Path(dir, cfg.LedgerName)) {
		t.Error("ledger is single-use and must be removed despite failures")
	}
}

func TestRun_EmptyLedger(t *testing.T) {
	dir := t.TempDir()
	if err := ledger.New().Save(ledger.Path(dir, "backup_mapping.json")); err != nil {
		t.Fatal(err)
	}

	r := newRunner(t, baseConfig(dir), &prompt.Script{})
	_, err := r.Run(context.Background())
	if !errors.Is(err, ErrEmptyLedger) {
		t.Fatalf("err = %v, want ErrEmptyLedger", err)
	}
}

func TestRun_NoLedger(t *testing.T) {
	r := newRunner(t, baseConfig(t.TempDir()), &prompt.Script{})
	_, err := r.Run(context.Background())
	if !errors.Is(err, ledger.ErrNoLedger) {
		t.Fatalf("err = %v, want ErrNoLedger", err)
	}
}

func TestRun_Declined(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "Note1.txt", "one")

	cfg := baseConfig(dir)
	renameRange(t, cfg, config.StrategySkip, 1, 1, 5)

	r := newRunner(t, cfg, &prompt.Script{Confirms: []bool{false}})
	if _, err := r.Run(context.Background()); err == nil {
		t.Fatal("declined rollback must return an error")
	}
	if !exists(dir, "Note5.txt") {
		t.Error("declined rollback must not touch files")
	}
	if !ledger.Exists(ledger.Path(dir, cfg.LedgerName)) {
		t.Error("declined rollback must keep the ledger")
	}
}
