package decoder

import (
	"strings"
)

var abbreviations = []struct {
	short, full string
}{
	{"ID_A_", "ID_Achievement_"},
	{"ID_M_", "ID_Manufacturer_"},
	{"ID_W_", "ID_Weapon_"},
	{"ID_I_", "ID_Item_"},
	{"ID_P_", "ID_Part_"},
	{"ID_R_", "ID_Rarity_"},
}

// ExpandAbbreviations expands a known abbreviated name prefix, such as
// "ID_A_" to "ID_Achievement_".
func ExpandAbbreviations(s string) string {
	for _, a := range abbreviations {
		if rest, ok := strings.CutPrefix(s, a.short); ok {
			return a.full + rest
		}
	}

	return s
}

// DecodeDifferentialName applies an encoded entry name to the previous
// entry's full name.
//
// Leading digits replace the trailing digits of the first number in base.
// The rest replaces the segment after that number, keeping one middle
// segment when the replacement has no underscore of its own:
//
//	DecodeDifferentialName("1airship", "ID_Achievement_10_worldevents_colosseum")
//	    // "ID_Achievement_11_worldevents_airship"
//	DecodeDifferentialName("24_missions_side", "ID_Achievement_10_worldevents_colosseum")
//	    // "ID_Achievement_24_missions_side"
//
// Encoded names that look complete (ID_, /Script/ or /Game/ prefixes, a
// "_def" marker, or a leading capital) replace base outright.
func DecodeDifferentialName(encoded, base string) string {
	if encoded == "" {
		return base
	}
	if looksComplete(encoded) {
		return ExpandAbbreviations(encoded)
	}

	digits := leadingDigits(encoded)
	if digits == 0 {
		if isUpper(encoded[0]) {
			return ExpandAbbreviations(encoded)
		}
		if last := strings.LastIndexByte(base, '_'); last >= 0 {
			return base[:last+1] + encoded
		}

		return base + "_" + encoded
	}

	newDigits := encoded[:digits]
	suffix := strings.TrimLeft(encoded[digits:], "_")

	start, end, ok := firstNumber(base)
	if !ok {
		return base + encoded
	}

	number := base[start:end]
	number = number[:max(len(number)-digits, 0)] + newDigits
	prefix := base[:start] + number
	after := base[end:]

	if strings.Contains(suffix, "_") {
		return prefix + "_" + suffix
	}
	if rest, ok := strings.CutPrefix(after, "_"); ok {
		if mid := strings.IndexByte(rest, '_'); mid >= 0 {
			return prefix + "_" + rest[:mid] + "_" + suffix
		}
	}
	if suffix != "" {
		return prefix + "_" + suffix
	}

	return prefix
}

// SplitPackedValue splits a string slot that carries a field value followed
// by the next entry's encoded name, such as "1224_missions_side" into "12"
// and "24_missions_side".
//
// The value is one to three leading digits; the name must keep one or two
// leading digits followed by '_' or a letter. A two-digit value is
// preferred, then the name with fewer digits.
func SplitPackedValue(s string) (value, name string, ok bool) {
	digits := leadingDigits(s)
	if digits < 2 {
		return "", "", false
	}

	best := -1
	bestScore := 0
	for pos := 1; pos < min(digits, 4); pos++ {
		rest := s[pos:]
		nd := leadingDigits(rest)
		if nd < 1 || nd > 2 || nd >= len(rest) {
			continue
		}
		if c := rest[nd]; c != '_' && !isLetter(c) {
			continue
		}

		score := nd + 10
		if pos == 2 {
			score = nd
		}
		if best < 0 || score < bestScore {
			best, bestScore = pos, score
		}
	}

	if best < 0 {
		return "", "", false
	}

	return s[:best], s[best:], true
}

// isGarbageEntry reports whether an entry name looks like binary data read
// as text.
func isGarbageEntry(name string) bool {
	if len(name) < 3 {
		return true
	}
	for i := 0; i < len(name); i++ {
		if name[i] >= 0x80 {
			return true
		}
	}
	if c := name[0]; !isLetter(c) && c != '_' && c != '/' {
		return true
	}

	return strings.ContainsAny(name, `&,!@#%()"`)
}

// isMetadata reports whether s is a metadata string rather than an entry
// name or value.
func isMetadata(s string) bool {
	switch s {
	case "none", "basegame", "base":
		return true
	default:
		return strings.HasPrefix(s, "cor")
	}
}

// isPoolEntryName reports whether s starts an item pool entry.
func isPoolEntryName(s string) bool {
	if strings.HasPrefix(s, "IPL_") {
		return len(s) > len("IPL_")
	}
	if strings.HasPrefix(s, "Preset_") || strings.HasPrefix(s, "Table_") {
		return true
	}
	if strings.HasPrefix(s, "/Script/") || strings.HasPrefix(s, "/Game/") {
		return strings.Contains(s, "Pool") || strings.Contains(s, "Loot")
	}

	return false
}

func looksComplete(s string) bool {
	return strings.HasPrefix(s, "ID_") ||
		strings.HasPrefix(s, "/Script/") ||
		strings.HasPrefix(s, "/Game/") ||
		strings.Contains(s, "_def")
}

func firstNumber(s string) (start, end int, ok bool) {
	start = strings.IndexFunc(s, func(r rune) bool { return r >= '0' && r <= '9' })
	if start < 0 {
		return 0, 0, false
	}

	return start, start + leadingDigits(s[start:]), true
}

func leadingDigits(s string) int {
	n := 0
	for n < len(s) && isDigit(s[n]) {
		n++
	}

	return n
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isUpper(c byte) bool  { return c >= 'A' && c <= 'Z' }
func isLetter(c byte) bool { return isUpper(c) || (c >= 'a' && c <= 'z') }
