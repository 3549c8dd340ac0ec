// Package check provides the --check diagnostics: target directory status,
// write permission, pending rollback ledger, and config file discovery.
package check

import (
	"os"
	"path/filepath"

	"github.com/backmassage/renum/internal/config"
	"github.com/backmassage/renum/internal/fsops"
	"github.com/backmassage/renum/internal/ledger"
	"github.com/backmassage/renum/internal/resolve"
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck prints diagnostics for the configured directory. Informational
// only; it does not stop on failure. Returns false when any check failed.
func RunCheck(cfg *config.Config, log Logger) bool {
	log.Info("=== Directory Check ===")

	ok := true
	if cfg.Dir == "" {
		checkConfigFile(cfg, log)
		log.Warn("No directory given; pass one to check permissions and ledger state")
		return ok
	}

	dir, err := filepath.Abs(cfg.Dir)
	if err != nil {
		log.Error("Cannot resolve %s: %v", cfg.Dir, err)
		return false
	}

	fi, err := os.Stat(dir)
	switch {
	case err != nil:
		log.Error("Directory does not exist: %s", dir)
		return false
	case !fi.IsDir():
		log.Error("Not a directory: %s", dir)
		return false
	default:
		log.Success("Directory exists: %s", dir)
	}

	if fsops.DirWritable(dir) {
		log.Success("Write permission: ok")
	} else {
		log.Error("Write permission: denied")
		ok = false
	}

	checkLedger(cfg, dir, log)
	checkBackups(dir, log)
	checkConfigFile(cfg, log)
	return ok
}

// checkLedger reports whether a pending rollback exists and whether its file
// parses.
func checkLedger(cfg *config.Config, dir string, log Logger) {
	path := ledger.Path(dir, cfg.LedgerName)
	if !ledger.Exists(path) {
		log.Info("Pending rollback: none")
		return
	}
	l, err := ledger.Load(path)
	if err != nil {
		log.Error("Ledger file present but unreadable: %v", err)
		return
	}
	log.Warn("Pending rollback: %d operation(s) from %s (transaction %s)",
		l.Len(), l.Timestamp.Format("2006-01-02 15:04:05"), l.TransactionID)
}

// checkBackups reports leftover displaced files under the reserved layout.
func checkBackups(dir string, log Logger) {
	root := filepath.Join(dir, resolve.BackupDirName)
	if _, err := os.Stat(root); err != nil {
		log.Info("Backup directory: none")
		return
	}
	count := 0
	filepath.Walk(root, func(path string, fi os.FileInfo, err error) error {
		if err == nil && fi.Mode().IsRegular() {
			count++
		}
		return nil
	})
	if count == 0 {
		log.Info("Backup directory: present, empty")
	} else {
		log.Warn("Backup directory: %d displaced file(s) kept for rollback", count)
	}
}

func checkConfigFile(cfg *config.Config, log Logger) {
	path := cfg.ConfigFile
	if path == "" {
		path = os.Getenv("RENUM_CONFIG")
	}
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if path == "" {
		log.Info("Config file: none")
		return
	}
	if _, err := os.Stat(path); err != nil {
		log.Info("Config file: not found (%s)", path)
		return
	}
	log.Success("Config file: %s", path)
}
