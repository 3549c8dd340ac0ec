// Package naming implements the naming policy for sequence renames: building
// target filenames from a prefix and sequence number, parsing the numeric
// stem out of existing filenames, and generating collision-suffix candidates.
//
// Everything in this package is a pure function over strings. Filesystem
// probing (does a candidate exist?) belongs to the resolve package.
package naming
