package naming

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// SplitExt splits a filename into stem and extension. The extension keeps its
// leading dot ("photo.jpg" → "photo", ".jpg"); names without a dot get an
// empty extension.
func SplitExt(name string) (stem, ext string) {
	ext = filepath.Ext(name)
	return strings.TrimSuffix(name, ext), ext
}

// TargetName builds the destination filename for sequence position n:
// prefix + n + ext. ext must include its leading dot, or be empty for
// extensionless sources.
func TargetName(prefix string, n int, ext string) string {
	return prefix + strconv.Itoa(n) + ext
}

// Stem extracts the numeric stem of name after stripping prefix: the
// all-digit run between the prefix and the first dot. ok is false when name
// does not start with prefix or the stem is not purely numeric. With an empty
// prefix this selects plain numbered files ("042.png" → 42).
func Stem(name, prefix string) (n int, ok bool) {
	if !strings.HasPrefix(name, prefix) {
		return 0, false
	}
	rest := name[len(prefix):]
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" || !allDigits(rest) {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SuffixCandidate returns the k-th collision-avoidance variant of name,
// inserting "_k" before the extension: ("photo.jpg", 2) → "photo_2.jpg".
func SuffixCandidate(name string, k int) string {
	stem, ext := SplitExt(name)
	return fmt.Sprintf("%s_%d%s", stem, k, ext)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
