package section

import (
	"github.com/arloliu/ncs/endian"
	"github.com/arloliu/ncs/errs"
)

// InnerHeader is the big-endian header at the start of a compressed region.
type InnerHeader struct {
	Magic       uint32
	FormatFlags uint32
	// BlockCount and BlockSizes are only meaningful for multi-block regions.
	BlockCount uint32
	BlockSizes []uint32
}

// ParseInnerHeader parses the inner header and, for multi-block regions, the
// block size table. It also checks that the blocks fit inside region.
func ParseInnerHeader(region []byte) (InnerHeader, error) {
	if len(region) < InnerHeaderSize {
		return InnerHeader{}, errs.NewDataTooShort(InnerHeaderSize, len(region))
	}

	engine := endian.GetInnerEngine()

	h := InnerHeader{
		Magic:       engine.Uint32(region[0:4]),
		FormatFlags: engine.Uint32(region[innerFlagsOffset : innerFlagsOffset+4]),
	}
	if h.Magic != InnerMagic {
		return InnerHeader{}, &errs.InvalidInnerMagicError{Got: h.Magic}
	}

	if !h.IsMultiBlock() {
		return h, nil
	}

	h.BlockCount = engine.Uint32(region[innerBlockCountOffset : innerBlockCountOffset+4])

	tableEnd := InnerHeaderSize + 4*int(h.BlockCount)
	if tableEnd > len(region) || tableEnd < InnerHeaderSize {
		return InnerHeader{}, errs.NewDataTooShort(tableEnd, len(region))
	}

	h.BlockSizes = make([]uint32, h.BlockCount)
	total := tableEnd
	for i := range h.BlockSizes {
		off := InnerHeaderSize + 4*i
		h.BlockSizes[i] = engine.Uint32(region[off : off+4])
		total += int(h.BlockSizes[i])
	}

	if total > len(region) {
		return InnerHeader{}, errs.NewDataTooShort(total, len(region))
	}

	return h, nil
}

// IsMultiBlock reports whether the region uses the block size table layout.
func (h InnerHeader) IsMultiBlock() bool {
	return h.FormatFlags != 0
}

// DataOffset is the offset of the first data byte within the region.
func (h InnerHeader) DataOffset() int {
	if !h.IsMultiBlock() {
		return InnerHeaderSize
	}

	return InnerHeaderSize + 4*len(h.BlockSizes)
}

// BlockTarget returns the decompressed size of block i for a payload of
// decompressedSize bytes: BlockSize for every block but the last, which gets
// the remainder. The remainder is negative when the table claims more data
// than decompressedSize allows.
func (h InnerHeader) BlockTarget(i int, decompressedSize int) int {
	if i < len(h.BlockSizes)-1 {
		return BlockSize
	}

	return decompressedSize - BlockSize*(len(h.BlockSizes)-1)
}

// Bytes serializes the inner header followed by the block size table.
func (h InnerHeader) Bytes() []byte {
	engine := endian.GetInnerEngine()

	b := make([]byte, InnerHeaderSize, InnerHeaderSize+4*len(h.BlockSizes))
	engine.PutUint32(b[0:4], h.Magic)
	engine.PutUint32(b[innerFlagsOffset:innerFlagsOffset+4], h.FormatFlags)
	if h.IsMultiBlock() {
		engine.PutUint32(b[innerBlockCountOffset:innerBlockCountOffset+4], uint32(len(h.BlockSizes))) //nolint: gosec
		for _, size := range h.BlockSizes {
			b = engine.AppendUint32(b, size)
		}
	}

	return b
}
