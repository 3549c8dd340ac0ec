package batch

// RunStats tracks aggregate counters across one rename transaction.
type RunStats struct {
	Found       int   // Candidate files matched by the selection.
	Renamed     int   // Files that ended up under a new name.
	Skipped     int   // Files left untouched (skip strategy or same-file).
	Failed      int   // Files whose rename failed.
	Missing     []int // Numbers in the requested range with no matching file.
	LedgerSaved bool  // Whether a rollback ledger was persisted.
}
