package resolve

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/backmassage/renum/internal/config"
	"github.com/backmassage/renum/internal/fsops"
	"github.com/backmassage/renum/internal/ledger"
	"github.com/backmassage/renum/internal/prompt"
)

func newResolver(strategy config.Strategy, dec prompt.Decider) *Resolver {
	return &Resolver{
		FS:       fsops.New(),
		Ledger:   ledger.New(),
		Strategy: strategy,
		Decider:  dec,
	}
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func read(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestResolve_NoConflictIsPlainRename(t *testing.T) {
	// Without a conflicting destination every strategy behaves identically.
	strategies := []config.Strategy{
		config.StrategySkip, config.StrategySuffix,
		config.StrategyBackup, config.StrategyOverwrite, config.StrategyAsk,
	}
	for _, st := range strategies {
		t.Run(string(st), func(t *testing.T) {
			dir := t.TempDir()
			src := write(t, dir, "Photo1.jpg", "one")
			dst := filepath.Join(dir, "Photo5.jpg")

			r := newResolver(st, &prompt.Script{})
			got, err := r.Resolve(context.Background(), src, dst)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got != dst {
				t.Errorf("result = %q, want %q", got, dst)
			}
			if read(t, dst) != "one" {
				t.Error("content changed during rename")
			}
			if r.Ledger.Len() != 1 || r.Ledger.Operations[0].Type != ledger.OpRename {
				t.Errorf("ledger = %+v, want one rename record", r.Ledger.Operations)
			}
		})
	}
}

func TestResolve_SameFileIsNoOp(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "Photo1.jpg", "one")

	r := newResolver(config.StrategyBackup, nil)
	got, err := r.Resolve(context.Background(), src, src)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != src {
		t.Errorf("result = %q, want %q", got, src)
	}
	if r.Ledger.Len() != 0 {
		t.Error("same-file case must not be recorded")
	}
}

func TestResolve_Skip(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "Photo1.jpg", "one")
	dst := write(t, dir, "Photo5.jpg", "occupied")

	r := newResolver(config.StrategySkip, nil)
	got, err := r.Resolve(context.Background(), src, dst)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != src {
		t.Errorf("skip should return the source path unchanged, got %q", got)
	}
	if read(t, src) != "one" || read(t, dst) != "occupied" {
		t.Error("skip must not touch either file")
	}
	if r.Ledger.Len() != 0 {
		t.Error("skip must not be recorded")
	}
}

func TestResolve_SuffixChoosesFirstFree(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "source.jpg", "new")
	write(t, dir, "name.jpg", "k0")
	write(t, dir, "name_1.jpg", "k1")
	write(t, dir, "name_2.jpg", "k2")

	r := newResolver(config.StrategySuffix, nil)
	got, err := r.Resolve(context.Background(), src, filepath.Join(dir, "name.jpg"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := filepath.Join(dir, "name_3.jpg")
	if got != want {
		t.Errorf("result = %q, want %q", got, want)
	}
	if read(t, want) != "new" {
		t.Error("suffixed file has wrong content")
	}
	if r.Ledger.Len() != 1 || r.Ledger.Operations[0].NewPath != want {
		t.Errorf("ledger should record the actual chosen destination: %+v", r.Ledger.Operations)
	}
}

func TestResolve_Backup(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "Photo1.jpg", "incoming")
	dst := write(t, dir, "Photo5.jpg", "resident")

	r := newResolver(config.StrategyBackup, nil)
	got, err := r.Resolve(context.Background(), src, dst)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got != dst {
		t.Errorf("result = %q, want %q", got, dst)
	}
	if read(t, dst) != "incoming" {
		t.Error("destination should hold the renamed source")
	}

	if r.Ledger.Len() != 1 {
		t.Fatalf("ledger len = %d, want 1", r.Ledger.Len())
	}
	op := r.Ledger.Operations[0]
	if op.Type != ledger.OpBackup || op.BackupPath == "" {
		t.Fatalf("op = %+v, want backup with BackupPath", op)
	}
	if filepath.Dir(op.BackupPath) != filepath.Join(dir, BackupDirName) {
		t.Errorf("backup landed in %q", op.BackupPath)
	}
	base := filepath.Base(op.BackupPath)
	if !strings.HasPrefix(base, "Photo5.jpg.") || !strings.HasSuffix(base, ".backup") {
		t.Errorf("backup name = %q, want Photo5.jpg.<ts>.backup", base)
	}
	if read(t, op.BackupPath) != "resident" {
		t.Error("displaced file content lost")
	}
}

func TestResolve_Overwrite(t *testing.T) {
	dir := t.TempDir()
	src := write(t, dir, "Photo1.jpg", "incoming")
	dst := write(t, dir, "Photo5.jpg", "resident")

	r := newResolver(config.StrategyOverwrite, nil)
	if _, err := r.Resolve(context.Background(), src, dst); err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	op := r.Ledger.Operations[0]
	if op.Type != ledger.OpOverwrite {
		t.Fatalf("op type = %q, want overwrite", op.Type)
	}
	wantDir := filepath.Join(dir, BackupDirName, OverwrittenDirName)
	if filepath.Dir(op.BackupPath) != wantDir {
		t.Errorf("overwritten file landed in %q, want under %q", op.BackupPath, wantDir)
	}
	if !strings.HasSuffix(op.BackupPath, ".overwritten") {
		t.Errorf("overwritten backup name = %q", op.BackupPath)
	}
	if read(t, op.BackupPath) != "resident" {
		t.Error("overwrite must preserve the displaced file for rollback")
	}
}

func TestResolve_AskDispatchesChoice(t *testing.T) {
	tests := []struct {
		name   string
		choice prompt.ConflictChoice
		check  func(t *testing.T, dir, src, dst string, l *ledger.Ledger, got string)
	}{
		{"skip", prompt.ChoiceSkip, func(t *testing.T, dir, src, dst string, l *ledger.Ledger, got string) {
			if got != src || l.Len() != 0 {
				t.Errorf("got %q, ledger %d", got, l.Len())
			}
		}},
		{"suffix", prompt.ChoiceSuffix, func(t *testing.T, dir, src, dst string, l *ledger.Ledger, got string) {
			if got != filepath.Join(dir, "Photo5_1.jpg") {
				t.Errorf("got %q", got)
			}
		}},
		{"backup", prompt.ChoiceBackup, func(t *testing.T, dir, src, dst string, l *ledger.Ledger, got string) {
			if got != dst || l.Len() != 1 || l.Operations[0].Type != ledger.OpBackup {
				t.Errorf("got %q, ops %+v", got, l.Operations)
			}
		}},
		{"overwrite", prompt.ChoiceOverwrite, func(t *testing.T, dir, src, dst string, l *ledger.Ledger, got string) {
			if got != dst || l.Len() != 1 || l.Operations[0].Type != ledger.OpOverwrite {
				t.Errorf("got %q, ops %+v", got, l.Operations)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			src := write(t, dir, "Photo1.jpg", "incoming")
			dst := write(t, dir, "Photo5.jpg", "resident")

			script := &prompt.Script{Conflicts: []prompt.ConflictChoice{tt.choice}}
			r := newResolver(config.StrategyAsk, script)
			got, err := r.Resolve(context.Background(), src, dst)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			tt.check(t, dir, src, dst, r.Ledger, got)
		})
	}
}

func TestResolve_MissingSourcePropagatesError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "gone.jpg")
	dst := filepath.Join(dir, "target.jpg")

	r := newResolver(config.StrategyBackup, nil)
	got, err := r.Resolve(context.Background(), src, dst)
	if err == nil {
		t.Fatal("expected error for missing source")
	}
	if got != src {
		t.Errorf("failed resolve should return src, got %q", got)
	}
	if r.Ledger.Len() != 0 {
		t.Error("failed operation must not be recorded")
	}
}
