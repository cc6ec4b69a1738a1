// Package endian provides the byte order engines used to read NCS headers.
//
// An NCS container mixes byte orders: the 16-byte outer header is
// little-endian while the inner block header that follows it is big-endian.
// Callers pick the engine for the layer they are reading instead of calling
// encoding/binary directly, so a header parser states its byte order once:
//
//	outer := endian.GetOuterEngine()
//	size := outer.Uint32(data[8:12])
//
//	inner := endian.GetInnerEngine()
//	magic := inner.Uint32(region[0:4])
//
// All engines are immutable and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetOuterEngine returns the engine for the outer container header.
func GetOuterEngine() EndianEngine {
	return binary.LittleEndian
}

// GetInnerEngine returns the engine for the inner block header and block size table.
func GetInnerEngine() EndianEngine {
	return binary.BigEndian
}
