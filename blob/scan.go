package blob

import (
	"bytes"

	"github.com/arloliu/ncs/internal/collision"
	"github.com/arloliu/ncs/internal/hash"
	"github.com/arloliu/ncs/section"
)

// Payload is one container found by Scan.
type Payload struct {
	// Offset of the version byte within the scanned buffer.
	Offset int
	Header section.Header
	// Data is the container, header included, as a sub-slice of the scanned buffer.
	Data []byte
	// Fingerprint is the xxHash64 of Data.
	Fingerprint uint64
	// Digest is the BLAKE3-256 of Data.
	Digest [32]byte
}

// Decompress reconstructs the payload's content.
func (p Payload) Decompress(opts ...DecoderOption) ([]byte, error) {
	return Decompress(p.Data, opts...)
}

// Scan finds every container embedded in data, in offset order.
//
// A match of the "NCS" magic is skipped when:
//   - it has no version byte before it, or the version is not 1
//   - the byte before the version is '_' (a "_NCS/" manifest)
//   - the header plus compressed size runs past the end of data
func Scan(data []byte) []Payload {
	var payloads []Payload

	for pos := 0; ; {
		idx := bytes.Index(data[pos:], section.Magic[:])
		if idx < 0 {
			return payloads
		}
		match := pos + idx
		pos = match + 1

		if match == 0 {
			continue
		}
		start := match - 1
		if start > 0 && data[start-1] == '_' {
			continue
		}

		header, err := section.ParseHeader(data[start:])
		if err != nil {
			continue
		}
		if start+header.TotalSize() > len(data) {
			continue
		}

		container := data[start : start+header.TotalSize()]
		payloads = append(payloads, Payload{
			Offset:      start,
			Header:      header,
			Data:        container,
			Fingerprint: hash.Fingerprint(container),
			Digest:      hash.Digest(container),
		})
	}
}

// ScanUnique is Scan without repeated containers. The first occurrence of a
// container is kept; later byte-identical copies are dropped.
func ScanUnique(data []byte) []Payload {
	all := Scan(data)
	tracker := collision.NewTracker()

	unique := all[:0]
	for _, p := range all {
		if tracker.Track(p.Fingerprint, p.Data) {
			continue
		}
		unique = append(unique, p)
	}

	return unique
}
