package section

import (
	"github.com/arloliu/ncs/endian"
	"github.com/arloliu/ncs/errs"
)

// Header is the 16-byte outer header of an NCS container.
type Header struct {
	// Version must be 1.
	Version uint8 // 1 byte, offset 0
	// CompressionFlag is zero when the payload is stored verbatim.
	CompressionFlag uint32 // 4 bytes, offset 4-7
	// DecompressedSize is the exact size of the reconstructed payload.
	DecompressedSize uint32 // 4 bytes, offset 8-11
	// CompressedSize is the size of the region following the header.
	CompressedSize uint32 // 4 bytes, offset 12-15
}

// ParseHeader parses the outer header at the start of data.
//
// Returns:
//   - *errs.DataTooShortError if data holds fewer than 16 bytes
//   - *errs.InvalidNcsMagicError if bytes 1..3 are not "NCS"
//   - errs.ErrInvalidVersion if the version byte is not 1
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if err := h.Parse(data); err != nil {
		return Header{}, err
	}

	return h, nil
}

// Parse parses the outer header from the first 16 bytes of data.
func (h *Header) Parse(data []byte) error {
	if len(data) < HeaderSize {
		return errs.NewDataTooShort(HeaderSize, len(data))
	}

	if data[1] != Magic[0] || data[2] != Magic[1] || data[3] != Magic[2] {
		return &errs.InvalidNcsMagicError{Got: [3]byte{data[1], data[2], data[3]}}
	}

	if data[0] != Version {
		return errs.ErrInvalidVersion
	}

	engine := endian.GetOuterEngine()

	h.Version = data[0]
	h.CompressionFlag = engine.Uint32(data[4:8])
	h.DecompressedSize = engine.Uint32(data[8:12])
	h.CompressedSize = engine.Uint32(data[12:16])

	return nil
}

// Bytes serializes the header.
func (h Header) Bytes() []byte {
	engine := endian.GetOuterEngine()

	b := make([]byte, 4, HeaderSize)
	b[0] = h.Version
	copy(b[1:4], Magic[:])
	b = engine.AppendUint32(b, h.CompressionFlag)
	b = engine.AppendUint32(b, h.DecompressedSize)
	b = engine.AppendUint32(b, h.CompressedSize)

	return b
}

// IsCompressed reports whether the region holds an inner header and blocks.
func (h Header) IsCompressed() bool {
	return h.CompressionFlag != 0
}

// TotalSize is the header plus the compressed region.
func (h Header) TotalSize() int {
	return HeaderSize + int(h.CompressedSize)
}
