// Package content locates the sections of a decompressed NCS payload.
//
// A payload carries no offset table; its layout is recovered with byte
// pattern heuristics:
//
//	┌────────────────────────────────────────────────────────────┐
//	│ prefix (under 32 bytes)                                    │
//	│ 00 <type name> 00                                          │
//	│ <dependency table names> 00 ...                            │
//	│ <=03 <format code, "ab...">                                │
//	│ entry section (3 bytes: field count, string count)         │
//	│ string table: null-terminated strings                      │
//	│ control section: 01 00 XX YY (optional)                    │
//	│ inline category names ("none", "base", ...)                │
//	│ binary section: bit-packed records                         │
//	└────────────────────────────────────────────────────────────┘
//
// Locate finds all of them and returns a Header describing where each
// section starts.
package content
