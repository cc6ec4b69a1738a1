// Package document holds the decoded form of NCS payloads.
//
// A Document maps table names to Tables. A Table holds Records, a Record
// holds Entries, and each Entry may own DepEntries naming parts in another
// table:
//
//	Document
//	└── Table{Name, Deps}
//	    └── Record{Tags}
//	        └── Entry{Key, Value}
//	            └── DepEntry{DepTableName, DepIndex, Key, Value}
//
// Value is a closed variant (Null, Leaf, Array, Map, Ref) compared with
// Equal. It encodes to JSON and CBOR as a plain tree; a Ref encodes as
// {"$ref": target}.
//
// The Extract functions walk a Document and return the serial index data
// that parts and naming tools consume. They visit tables in name order, so
// their output is deterministic.
package document
