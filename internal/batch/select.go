package batch

import (
	"sort"

	"github.com/backmassage/renum/internal/naming"
)

// candidate is one file matched by the range selection.
type candidate struct {
	Name string // Basename within the transaction directory.
	Stem int    // Parsed numeric stem.
}

// selectRange filters names to those whose numeric stem (after stripping
// prefix) lies in [start, end], returned in ascending stem order. With an
// empty prefix only all-digit stems match.
func selectRange(names []string, prefix string, start, end int) []candidate {
	var cands []candidate
	for _, name := range names {
		n, ok := naming.Stem(name, prefix)
		if !ok || n < start || n > end {
			continue
		}
		cands = append(cands, candidate{Name: name, Stem: n})
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].Stem < cands[j].Stem })
	return cands
}

// missingNumbers returns the numbers in [start, end] for which no file in
// names has a matching stem, in ascending order.
func missingNumbers(names []string, prefix string, start, end int) []int {
	present := make(map[int]bool)
	for _, name := range names {
		if n, ok := naming.Stem(name, prefix); ok {
			present[n] = true
		}
	}
	var missing []int
	for n := start; n <= end; n++ {
		if !present[n] {
			missing = append(missing, n)
		}
	}
	return missing
}
