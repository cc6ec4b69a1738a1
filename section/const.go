package section

const (
	// HeaderSize is the size of the outer container header.
	HeaderSize = 16
	// Version is the only supported outer header version.
	Version = 0x01

	// InnerHeaderSize is the fixed part of the inner header; single-block data
	// and the multi-block size table both start here.
	InnerHeaderSize = 0x40
	// InnerMagic is the big-endian word at offset 0 of a compressed region.
	InnerMagic uint32 = 0xb7756362

	innerFlagsOffset      = 0x08
	innerBlockCountOffset = 0x0c

	// BlockSize is the decompressed size of every block except the last.
	BlockSize = 256 * 1024

	// ManifestHeaderSize is the magic, a null byte and a u16 entry count.
	ManifestHeaderSize = 8
)

var (
	// Magic is the three bytes following the version byte.
	Magic = [3]byte{'N', 'C', 'S'}
	// ManifestMagic starts a manifest chunk.
	ManifestMagic = [5]byte{'_', 'N', 'C', 'S', '/'}
)
