// Package decoder turns a decompressed NCS payload into a document.Table.
//
// A payload starts with a content header (see package content) that names
// the table, its dependency tables and its format code, followed by a string
// table and a bit-packed binary section. Decoder picks one of two
// strategies per table:
//
//   - Schema: records are read MSB-first from the binary section, one field
//     per format code character after the record name. Names are indexes
//     into the string table; an empty or "none" name ends the table.
//   - Differential: the string table itself is split into entries of a fixed
//     column count. Each entry name after the first is encoded against the
//     previous one.
//
// Tables whose entry section declares a fixed column count are decoded
// differentially unless WithStrategy forces a strategy.
//
// Bit level failures never fail a Decode call. The failing record is
// dropped, decoding stops, and the event is logged through the logger
// carried by the context (see package diag).
package decoder
