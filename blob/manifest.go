package blob

import (
	"bytes"
	"strings"

	"github.com/arloliu/ncs/endian"
	"github.com/arloliu/ncs/errs"
	"github.com/arloliu/ncs/section"
)

var nexusDataPrefix = []byte("Nexus-Data-")

// Manifest lists the data store files of a package.
type Manifest struct {
	// EntryCount is the count declared in the manifest header. It may differ
	// from len(Entries).
	EntryCount uint16
	// Entries are the "Nexus-Data-*.ncs" file names found in the chunk.
	Entries []string
}

// IsManifest reports whether data starts with the "_NCS/" manifest magic.
func IsManifest(data []byte) bool {
	return len(data) >= len(section.ManifestMagic) && bytes.Equal(data[:len(section.ManifestMagic)], section.ManifestMagic[:])
}

// ParseManifest parses the manifest chunk at the start of data. Everything
// after the header is searched for file names.
//
// Returns:
//   - *errs.DataTooShortError if data holds fewer than 8 bytes
//   - *errs.InvalidManifestMagicError if data does not start with "_NCS/"
func ParseManifest(data []byte) (Manifest, error) {
	if len(data) < section.ManifestHeaderSize {
		return Manifest{}, errs.NewDataTooShort(section.ManifestHeaderSize, len(data))
	}

	if !IsManifest(data) {
		var got [5]byte
		copy(got[:], data)

		return Manifest{}, &errs.InvalidManifestMagicError{Got: got}
	}

	count := endian.GetOuterEngine().Uint16(data[6:8])

	return Manifest{
		EntryCount: count,
		Entries:    manifestEntries(data, int(count)),
	}, nil
}

// ManifestMatch is one manifest found by ScanManifests.
type ManifestMatch struct {
	Offset   int
	Manifest Manifest
}

// ScanManifests finds every manifest chunk embedded in data.
func ScanManifests(data []byte) []ManifestMatch {
	var matches []ManifestMatch

	for pos := 0; ; {
		idx := bytes.Index(data[pos:], section.ManifestMagic[:])
		if idx < 0 {
			return matches
		}
		offset := pos + idx
		pos = offset + 1

		manifest, err := ParseManifest(data[offset:])
		if err != nil {
			continue
		}
		matches = append(matches, ManifestMatch{Offset: offset, Manifest: manifest})
	}
}

func manifestEntries(data []byte, capacity int) []string {
	entries := make([]string, 0, min(capacity, 1024))

	for pos := 0; ; {
		idx := bytes.Index(data[pos:], nexusDataPrefix)
		if idx < 0 {
			return entries
		}
		start := pos + idx
		pos = start + 1

		if name, ok := manifestEntryAt(data[start:]); ok {
			entries = append(entries, name)
		}
	}
}

// manifestEntryAt reads the file name at the start of data. The name ends at
// the next null byte, or at the first non-printable byte when there is none.
// Every byte before the end must be printable.
func manifestEntryAt(data []byte) (string, bool) {
	end := bytes.IndexByte(data, 0)
	if end < 0 {
		end = len(data)
		for i, b := range data {
			if b < 0x20 || b > 0x7e {
				end = i
				break
			}
		}
	}

	if end < 5 {
		return "", false
	}

	for _, b := range data[:end] {
		if b < 0x20 || b > 0x7e {
			return "", false
		}
	}

	name := string(data[:end])
	if !strings.HasSuffix(name, ".ncs") {
		return "", false
	}

	return name, true
}
