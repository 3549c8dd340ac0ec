package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/renum/internal/config"
)

func TestNewLogger_NoFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = ""
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	l.Info("test message")
	l.Action("invisible without a file sink")
}

func TestNewLogger_WithFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs.log")
	l, err := NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	l.Info("to file")
	l.Action("Command: renum -r /photos")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(cfg.LogFile)
	if !bytes.Contains(b, []byte("INFO")) || !bytes.Contains(b, []byte("to file")) {
		t.Errorf("log file content: %s", string(b))
	}
	if !bytes.Contains(b, []byte("Command: renum -r /photos")) {
		t.Errorf("action line missing from log file: %s", string(b))
	}
}

func TestLogFileAppends(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	cfg.LogFile = filepath.Join(dir, "logs.log")

	for _, msg := range []string{"first run", "second run"} {
		l, err := NewLogger(&cfg)
		if err != nil {
			t.Fatal(err)
		}
		l.Info("%s", msg)
		l.Close()
	}

	b, _ := os.ReadFile(cfg.LogFile)
	if !bytes.Contains(b, []byte("first run")) || !bytes.Contains(b, []byte("second run")) {
		t.Errorf("log file should accumulate across runs: %s", string(b))
	}
}
