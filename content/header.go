package content

import (
	"bytes"
	"fmt"

	"github.com/arloliu/ncs/errs"
	"github.com/arloliu/ncs/format"
)

const (
	// MinPayloadSize is the smallest payload that can hold a content header.
	MinPayloadSize = 20

	typeSearchStart   = 1
	typeSearchEnd     = 32
	formatSearchRange = 600
	formatCodeMaxLen  = 20
	stringSearchLimit = 512
	controlSize       = 4
)

// Header describes where the sections of a decompressed payload start.
// Offsets are relative to the start of the payload.
type Header struct {
	TypeOffset int
	TypeName   string
	// Deps are the names of the tables this table's records draw
	// dependency entries from.
	Deps []string

	FormatOffset int
	// FormatCode is the full wire code, including the leading 'a' of the
	// record name slot.
	FormatCode string

	EntrySectionOffset int
	EntryForm          format.EntryForm
	// FieldCount is the number of columns per entry, name included.
	FieldCount int
	// StringCount is the declared number of strings; negative when the entry
	// section does not declare it.
	StringCount int

	StringTableOffset int
	// ControlOffset is the control section offset; negative when absent.
	ControlOffset int
	BinaryOffset  int
}

// SchemaCode returns the format code without the record name slot: one
// character per schema field.
func (h *Header) SchemaCode() string {
	if len(h.FormatCode) == 0 {
		return ""
	}

	return h.FormatCode[1:]
}

// HasStringCount reports whether the entry section declared a string count.
func (h *Header) HasStringCount() bool {
	return h.StringCount >= 0
}

// HasControlSection reports whether a control section was found.
func (h *Header) HasControlSection() bool {
	return h.ControlOffset >= 0
}

// StringRegion returns the bytes of the string table: from its start to the
// control section, or to the binary section when there is none.
func (h *Header) StringRegion(data []byte) []byte {
	end := h.BinaryOffset
	if h.HasControlSection() {
		end = h.ControlOffset
	}
	end = max(min(end, len(data)), h.StringTableOffset)

	return data[h.StringTableOffset:end]
}

// InlineRegion returns the bytes between the control section and the binary
// section, where inline category names live. Empty when there is no control
// section.
func (h *Header) InlineRegion(data []byte) []byte {
	if !h.HasControlSection() {
		return nil
	}

	start := min(h.ControlOffset+controlSize, len(data))
	end := max(min(h.BinaryOffset, len(data)), start)

	return data[start:end]
}

// Binary returns the binary section.
func (h *Header) Binary(data []byte) []byte {
	return data[min(h.BinaryOffset, len(data)):]
}

// Locate finds the content header of a decompressed payload.
//
// Returns an error wrapping errs.ErrNoContentHeader when the payload is too
// short or has no recognizable type name, format code or string table.
func Locate(data []byte) (*Header, error) {
	if len(data) < MinPayloadSize {
		return nil, fmt.Errorf("%w: payload of %d bytes", errs.ErrNoContentHeader, len(data))
	}

	typeOffset, ok := findTypeStart(data)
	if !ok {
		return nil, fmt.Errorf("%w: no type name", errs.ErrNoContentHeader)
	}

	typeLen := bytes.IndexByte(data[typeOffset:], 0)
	if typeLen < 2 || !isIdentifier(data[typeOffset:typeOffset+typeLen]) {
		return nil, fmt.Errorf("%w: invalid type name at 0x%x", errs.ErrNoContentHeader, typeOffset)
	}
	typeEnd := typeOffset + typeLen

	formatOffset, ok := findFormatCode(data, typeEnd)
	if !ok {
		return nil, fmt.Errorf("%w: no format code after type %q", errs.ErrNoContentHeader, data[typeOffset:typeEnd])
	}
	code := readFormatCode(data, formatOffset)

	h := &Header{
		TypeOffset:         typeOffset,
		TypeName:           string(data[typeOffset:typeEnd]),
		Deps:               dependencyNames(data[typeEnd:formatOffset]),
		FormatOffset:       formatOffset,
		FormatCode:         code,
		EntrySectionOffset: formatOffset + len(code),
	}

	h.EntryForm, h.FieldCount, h.StringCount = ParseEntrySection(data, h.EntrySectionOffset)

	h.StringTableOffset, ok = FindStringTableStart(data, h.EntrySectionOffset)
	if !ok {
		return nil, fmt.Errorf("%w: no string table after 0x%x", errs.ErrNoContentHeader, h.EntrySectionOffset)
	}

	h.ControlOffset = FindControlSection(data, h.StringTableOffset)
	h.BinaryOffset = FindBinaryOffset(data, h.StringTableOffset, h.StringCount, h.ControlOffset)

	return h, nil
}

// findTypeStart finds the first letter within the prefix that follows a null
// byte.
func findTypeStart(data []byte) (int, bool) {
	for i := typeSearchStart; i < min(typeSearchEnd, len(data)); i++ {
		if data[i-1] == 0 && isLetter(data[i]) {
			return i, true
		}
	}

	return 0, false
}

// findFormatCode finds the first "ab" after the type name whose 4 bytes are
// letters and whose preceding byte is a null or small control byte.
func findFormatCode(data []byte, typeEnd int) (int, bool) {
	start := typeEnd + 3
	end := min(typeEnd+formatSearchRange, len(data))
	if start >= end {
		return 0, false
	}

	window := data[start:end]
	for off := 0; off < len(window); {
		idx := bytes.Index(window[off:], []byte("ab"))
		if idx < 0 {
			return 0, false
		}
		pos := start + off + idx
		off += idx + 1

		if pos+4 > len(data) || data[pos-1] > 3 {
			continue
		}
		if isLetter(data[pos]) && isLetter(data[pos+1]) && isLetter(data[pos+2]) && isLetter(data[pos+3]) {
			return pos, true
		}
	}

	return 0, false
}

// readFormatCode reads the letters of the format code at offset.
func readFormatCode(data []byte, offset int) string {
	end := offset
	for end < len(data) && end-offset < formatCodeMaxLen && isLetter(data[end]) {
		end++
	}

	return string(data[offset:end])
}

// dependencyNames collects the identifier runs between the type name and
// the format code.
func dependencyNames(between []byte) []string {
	var deps []string
	start := -1
	for i := 0; i <= len(between); i++ {
		if i < len(between) && isPrintable(between[i]) {
			if start < 0 {
				start = i
			}

			continue
		}
		if start >= 0 && i-start >= 2 && isIdentifier(between[start:i]) {
			deps = append(deps, string(between[start:i]))
		}
		start = -1
	}

	return deps
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isPrintable(c byte) bool {
	return c >= 0x20 && c <= 0x7e
}

func isIdentifier(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	for _, c := range b {
		if !isLetter(c) && !(c >= '0' && c <= '9') && c != '_' {
			return false
		}
	}

	return true
}
