// Package ledger implements the durable operation ledger that drives
// rollback. A ledger is an ordered, append-only record of performed
// filesystem mutations, persisted as JSON in the target directory
// (backup_mapping.json by default) and deleted after a successful rollback.
//
// The on-disk format is version "2.0" with old_path / new_path /
// operation_type / backup_path fields.
package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FormatVersion is the ledger file format tag. Loading rejects files with a
// different major version.
const FormatVersion = "2.0"

// OpType tags a recorded mutation with how to invert it.
type OpType string

const (
	OpRename    OpType = "rename"    // Plain rename; invert by renaming back.
	OpBackup    OpType = "backup"    // Rename plus occupant displaced to BackupPath.
	OpOverwrite OpType = "overwrite" // Like backup, displaced under overwritten/.
)

// ErrNoLedger is returned by Load when no ledger file exists.
var ErrNoLedger = errors.New("no rollback ledger found")

// Operation is one durable record of a performed mutation. Paths are
// absolute, captured at execution time. BackupPath is set only for backup
// and overwrite operations.
type Operation struct {
	OldPath    string    `json:"old_path"`
	NewPath    string    `json:"new_path"`
	Type       OpType    `json:"operation_type"`
	BackupPath string    `json:"backup_path,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Ledger is the ordered sequence of operations of one transaction, in
// execution order. A new rename transaction overwrites any previous ledger
// file wholesale.
type Ledger struct {
	Version       string      `json:"version"`
	TransactionID string      `json:"transaction_id"`
	Timestamp     time.Time   `json:"timestamp"`
	Operations    []Operation `json:"operations"`
}

// New returns an empty ledger stamped with a fresh transaction ID.
func New() *Ledger {
	return &Ledger{
		Version:       FormatVersion,
		TransactionID: uuid.NewString(),
		Timestamp:     time.Now(),
	}
}

// Append records op as the next performed operation.
func (l *Ledger) Append(op Operation) {
	l.Operations = append(l.Operations, op)
}

// Len returns the number of recorded operations.
func (l *Ledger) Len() int { return len(l.Operations) }

// Path returns the ledger file location for a directory.
func Path(dir, name string) string {
	return filepath.Join(dir, name)
}

// Exists reports whether a ledger file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Save writes the ledger to path, replacing any existing file. The write goes
// through a temp file + rename so a crash mid-write cannot leave a truncated
// ledger behind.
func (l *Ledger) Save(path string) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".ledger-*")
	if err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing ledger: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("writing ledger: %w", err)
	}
	return nil
}

// Load reads and validates a ledger file. Returns ErrNoLedger when the file
// does not exist.
func Load(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNoLedger
		}
		return nil, fmt.Errorf("reading ledger: %w", err)
	}

	var l Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing ledger %s: %w", path, err)
	}
	if l.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported ledger version %q (want %s)", l.Version, FormatVersion)
	}
	return &l, nil
}

// Delete removes the ledger file. Missing files are not an error; the ledger
// is single-use and may already be gone.
func Delete(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
