// Package fsops is the filesystem seam used by the rename and rollback
// transactions. It wraps the handful of mutations the tool performs behind
// the FS interface so transaction logic stays testable, and adds retry on
// transient errors for the rename path.
package fsops

import (
	"context"
	"os"
)

// FS is the set of filesystem operations the transactions need.
type FS interface {
	Stat(path string) (os.FileInfo, error)
	Rename(ctx context.Context, oldPath, newPath string) error
	MkdirAll(path string) error
	Remove(path string) error
	SameFile(a, b string) bool
}

// OSFS is the concrete implementation of FS backed by the local OS
// filesystem.
type OSFS struct{}

// New returns a ready-to-use OSFS.
func New() *OSFS {
	return &OSFS{}
}

func (o *OSFS) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (o *OSFS) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

func (o *OSFS) Remove(path string) error {
	return os.Remove(path)
}

func (o *OSFS) Rename(ctx context.Context, oldPath, newPath string) error {
	return renameWithRetry(ctx, oldPath, newPath)
}

// SameFile reports whether a and b refer to the same underlying filesystem
// entry. False when either path cannot be stat'd.
func (o *OSFS) SameFile(a, b string) bool {
	fa, err := os.Stat(a)
	if err != nil {
		return false
	}
	fb, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(fa, fb)
}

// Exists reports whether path exists (any file type).
func Exists(fs FS, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}
