package blob

import (
	"github.com/arloliu/ncs/section"
)

// IsNCS reports whether data starts with an NCS container: bytes 1..3 are
// "NCS" and the first byte is not the '_' of a manifest.
func IsNCS(data []byte) bool {
	if len(data) < 4 || data[0] == '_' {
		return false
	}

	return data[1] == section.Magic[0] && data[2] == section.Magic[1] && data[3] == section.Magic[2]
}

// Decompress reconstructs the payload of the container at the start of data.
//
// Parameters:
//   - data: container bytes, starting with the outer header
//   - opts: decoder options such as WithDecompressor
//
// Returns:
//   - []byte: exactly Header.DecompressedSize bytes
//   - error: header, inner header, block, or size errors from package errs
func Decompress(data []byte, opts ...DecoderOption) ([]byte, error) {
	decoder, err := NewDecoder(data, opts...)
	if err != nil {
		return nil, err
	}

	return decoder.Decode()
}
