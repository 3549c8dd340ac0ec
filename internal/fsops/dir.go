package fsops

import (
	"os"
	"path/filepath"
	"sort"
)

// DirWritable reports whether new entries can be created in dir. It probes by
// creating and removing a temp file, which works uniformly across platforms
// and filesystems where permission bits alone would lie (e.g. read-only
// mounts, ACLs).
func DirWritable(dir string) bool {
	f, err := os.CreateTemp(dir, ".renum-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}

// PruneEmptyDirs removes root and its subdirectories bottom-up, keeping any
// directory that still contains files. Returns true when root itself was
// removed. Errors are swallowed; pruning is best-effort cleanup.
func PruneEmptyDirs(root string) bool {
	entries, err := os.ReadDir(root)
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.IsDir() {
			PruneEmptyDirs(filepath.Join(root, e.Name()))
		}
	}
	// Re-read after child pruning; rmdir only succeeds when empty.
	entries, err = os.ReadDir(root)
	if err != nil || len(entries) > 0 {
		return false
	}
	return os.Remove(root) == nil
}

// ListFiles returns the names of regular files directly inside dir, sorted
// lexicographically. Subdirectories are ignored.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ListDirs returns the names of subdirectories directly inside dir, sorted
// lexicographically.
func ListDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
