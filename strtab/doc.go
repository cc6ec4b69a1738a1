// Package strtab builds the string table of a decompressed NCS payload.
//
// The string region is a sequence of printable ASCII runs, mostly null
// terminated. Build extracts the runs, drops the ones that look like binary
// noise, and splits "packed" runs that hold several concatenated entry
// names:
//
//	tbl := strtab.Build(region, 0)
//	name, ok := tbl.Get(3)
//
// Indices follow extraction order and are never deduplicated; the record
// decoder resolves string indices positionally, IndexWidth bits at a time.
package strtab
