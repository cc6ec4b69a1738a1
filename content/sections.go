package content

import (
	"bytes"

	"github.com/arloliu/ncs/format"
)

const (
	maxFieldCount    = 10
	fallbackWindow   = 8
	fieldMarkerLow   = 0xc0
	fieldMarkerHigh  = 0xcf
	entryMarker      = 0x01
	extendedMinCount = 0x10
)

// ParseEntrySection reads the three entry section bytes at offset.
//
// Returns the matched form, the number of columns per entry (name
// included), and the declared string count or -1 when the form does not
// declare one. A section that matches no form reports EntryDefault with one
// column.
func ParseEntrySection(data []byte, offset int) (format.EntryForm, int, int) {
	if offset < 0 || offset+3 > len(data) {
		return format.EntryDefault, 1, -1
	}

	b0, b1, b2 := data[offset], data[offset+1], data[offset+2]

	if b0 == entryMarker && b2 >= fieldMarkerLow && b2 <= fieldMarkerHigh {
		if fc := int(b2 & 0x0f); fc >= 1 && fc <= maxFieldCount {
			return format.EntrySimple, fc, int(b1)
		}
	}

	if b0 >= extendedMinCount && b1 >= 2 && b1 <= maxFieldCount && b2 == entryMarker {
		return format.EntryExtended, int(b1), int(b0)
	}

	if b0 == entryMarker && b1 >= 1 && b1 <= maxFieldCount && b2 < fieldMarkerLow {
		return format.EntryDirect, int(b1), -1
	}

	for i := offset; i < min(offset+fallbackWindow, len(data)); i++ {
		if data[i] >= fieldMarkerLow && data[i] <= fieldMarkerHigh {
			if fc := int(data[i] & 0x0f); fc >= 1 && fc <= maxFieldCount {
				return format.EntryFallback, fc, -1
			}
		}
	}

	return format.EntryDefault, 1, -1
}

// FindStringTableStart finds the first string after the entry section: a
// letter, '/' or '_' starting a printable run of at least two bytes that
// ends in a null byte. The search covers at most half the payload and never
// more than 512 bytes.
func FindStringTableStart(data []byte, after int) (int, bool) {
	if after < 0 || after >= len(data) {
		return 0, false
	}

	limit := min(len(data)/2, stringSearchLimit, len(data)-after)
	for i := after; i < after+limit; i++ {
		c := data[i]
		if !isLetter(c) && c != '/' && c != '_' {
			continue
		}

		j := i
		for j < len(data) && isPrintable(data[j]) {
			j++
		}
		if j > i+1 && j < len(data) && data[j] == 0 {
			return i, true
		}
	}

	return 0, false
}

// FindControlSection finds the control section that ends the string table,
// or returns -1.
//
// The section is 01 00 XX YY immediately before the "none" category name,
// or XX 00 YY with 0 < XX < 0x30. Without a "none" name, the first
// 01 00 XX YY followed by "none", "base" or a lowercase identifier is used.
func FindControlSection(data []byte, after int) int {
	if after < 0 || after >= len(data) {
		return -1
	}

	if idx := bytes.Index(data[after:], []byte("none\x00")); idx >= 0 {
		nonePos := after + idx
		if p := nonePos - 4; p >= 0 && data[p] == entryMarker && data[p+1] == 0x00 {
			return p
		}
		if p := nonePos - 3; p >= 0 && data[p+1] == 0x00 && data[p] > 0 && data[p] < 0x30 {
			return p
		}
	}

	for pos := after; pos+3 < len(data); pos++ {
		if data[pos] != entryMarker || data[pos+1] != 0x00 {
			continue
		}
		count, mode := data[pos+2], data[pos+3]
		if count == 0 || (mode < 0x06 && mode != 0x00) {
			continue
		}

		next := pos + 4
		if next >= len(data) {
			continue
		}
		rest := data[next:]
		if bytes.HasPrefix(rest, []byte("none")) || bytes.HasPrefix(rest, []byte("base")) ||
			(isLetter(rest[0]) && len(rest) > 1 && rest[1] >= 'a' && rest[1] <= 'z') {
			return pos
		}
	}

	return -1
}

// FindBinaryOffset finds where the bit-packed records start.
//
// With a declared string count, the binary section follows that many
// null-terminated strings. Otherwise it follows the last printable
// null-terminated string after the control section, or after the string
// table start when there is no control section.
func FindBinaryOffset(data []byte, stringStart, stringCount, controlOffset int) int {
	if stringStart >= len(data) {
		return len(data)
	}

	if stringCount == 0 {
		return stringStart
	}

	if stringCount > 0 {
		pos := stringStart
		for counted := 0; pos < len(data); {
			end := bytes.IndexByte(data[pos:], 0)
			if end < 0 {
				return len(data)
			}
			pos += end + 1
			counted++
			if counted >= stringCount {
				return pos
			}
		}

		return pos
	}

	pos := stringStart
	if controlOffset >= 0 {
		pos = min(controlOffset+controlSize, len(data))
	}

	for pos < len(data) {
		end := bytes.IndexByte(data[pos:], 0)
		if end < 0 {
			break
		}
		if !allPrintable(data[pos : pos+end]) {
			break
		}
		pos += end + 1
	}

	return pos
}

func allPrintable(b []byte) bool {
	for _, c := range b {
		if !isPrintable(c) {
			return false
		}
	}

	return true
}
