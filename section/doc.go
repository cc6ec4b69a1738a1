// Package section defines the fixed binary layouts of an NCS container.
//
// A container is a 16-byte little-endian outer header followed by a
// compressed region. When the outer header says the payload is compressed,
// the region starts with a big-endian inner header:
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Outer header (16 bytes, little-endian)                   │
//	│  u8 version | "NCS" | u32 compression_flag               │
//	│  u32 decompressed_size | u32 compressed_size             │
//	├──────────────────────────────────────────────────────────┤
//	│ Inner header (0x40 bytes, big-endian)                    │
//	│  0x00 u32 magic 0xb7756362                               │
//	│  0x08 u32 format_flags (0 = single block)                │
//	│  0x0c u32 block_count (multi-block only)                 │
//	├──────────────────────────────────────────────────────────┤
//	│ Block size table, block_count × u32 (multi-block only)   │
//	├──────────────────────────────────────────────────────────┤
//	│ Block payloads, concatenated                             │
//	└──────────────────────────────────────────────────────────┘
//
// Header and InnerHeader only describe the layout. Reconstructing the
// decompressed payload is the job of package blob.
package section
