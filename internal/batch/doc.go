// Package batch orchestrates rename transactions: selecting candidate files,
// detecting gaps in the numeric range, previewing and confirming the plan,
// executing renames in an order that avoids transient collisions, and
// persisting the operation ledger that makes the transaction reversible.
//
// Two entry points exist: [Runner.RenameRange] renumbers files whose numeric
// stem falls in a given range, and [Runner.RenameAll] is the interactive
// variant that applies the same per-folder primitive across a directory tree,
// one level at a time, accumulating everything into a single ledger.
package batch
