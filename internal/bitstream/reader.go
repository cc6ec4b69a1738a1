// Package bitstream reads variable-width unsigned fields from a byte slice,
// most significant bit first.
package bitstream

import (
	"encoding/binary"
	"math/bits"
)

// Reader is an MSB-first bit cursor.
//
// Bits are consumed from the high bit of each byte downwards, so the first
// ReadBits(3) on 0b101xxxxx returns 5. A failed read consumes nothing.
type Reader struct {
	data     []byte
	bytePos  int    // next byte to load into bitBuf
	bitBuf   uint64 // pending bits, left-aligned
	bitCount int    // number of valid bits in bitBuf
}

// NewReader creates a Reader positioned at the first bit of data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the number of bits consumed so far.
func (r *Reader) Position() int {
	return r.bytePos*8 - r.bitCount
}

// Remaining returns the number of bits left.
func (r *Reader) Remaining() int {
	return len(r.data)*8 - r.Position()
}

// HasBits reports whether at least n bits remain.
func (r *Reader) HasBits(n int) bool {
	return r.Remaining() >= n
}

// ReadBit reads one bit.
func (r *Reader) ReadBit() (uint64, bool) {
	if r.bitCount == 0 && !r.fill() {
		return 0, false
	}

	bit := r.bitBuf >> 63
	r.bitBuf <<= 1
	r.bitCount--

	return bit, true
}

// ReadBits reads numBits (0..64) bits and returns them right-aligned.
// It returns false, consuming nothing, when fewer than numBits remain.
func (r *Reader) ReadBits(numBits int) (uint64, bool) {
	if numBits == 0 {
		return 0, true
	}
	if numBits < 0 || numBits > 64 || !r.HasBits(numBits) {
		return 0, false
	}

	if numBits <= r.bitCount {
		result := r.bitBuf >> (64 - numBits)
		r.bitBuf <<= numBits
		r.bitCount -= numBits

		return result, true
	}

	var result uint64
	for numBits > 0 {
		if r.bitCount == 0 {
			r.fill()
		}

		take := min(numBits, r.bitCount)
		chunk := r.bitBuf >> (64 - take)
		result = result<<take | chunk

		r.bitBuf <<= take
		r.bitCount -= take
		numBits -= take
	}

	return result, true
}

// ReadUint32 reads a 32-bit field.
func (r *Reader) ReadUint32() (uint32, bool) {
	v, ok := r.ReadBits(32)
	return uint32(v), ok //nolint: gosec
}

// fill loads up to 8 bytes, left-aligned, into an empty bit buffer.
func (r *Reader) fill() bool {
	if r.bytePos >= len(r.data) {
		return false
	}

	n := min(8, len(r.data)-r.bytePos)
	if n == 8 {
		r.bitBuf = binary.BigEndian.Uint64(r.data[r.bytePos : r.bytePos+8])
	} else {
		r.bitBuf = 0
		for i := 0; i < n; i++ {
			r.bitBuf = r.bitBuf<<8 | uint64(r.data[r.bytePos+i])
		}
		r.bitBuf <<= uint(8-n) * 8
	}
	r.bytePos += n
	r.bitCount = n * 8

	return true
}

// IndexWidth returns the number of bits needed to address count entries,
// ceil(log2(count)). Tables with fewer than two entries still use one bit.
func IndexWidth(count int) int {
	if count < 2 {
		return 1
	}

	return bits.Len(uint(count - 1))
}
