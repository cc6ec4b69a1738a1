package decoder

import (
	"strconv"
	"strings"
)

// UnpackedKind identifies the type of an Unpacked value.
type UnpackedKind uint8

const (
	UnpackedString UnpackedKind = 0x0
	UnpackedInt    UnpackedKind = 0x1
	UnpackedFloat  UnpackedKind = 0x2
	UnpackedBool   UnpackedKind = 0x3
)

// Unpacked is one value recovered from a packed string.
type Unpacked struct {
	Kind  UnpackedKind
	Int   int64
	Float float64
	Bool  bool
	Str   string
}

func (u Unpacked) String() string {
	switch u.Kind {
	case UnpackedInt:
		return strconv.FormatInt(u.Int, 10)
	case UnpackedFloat:
		return strconv.FormatFloat(u.Float, 'g', -1, 64)
	case UnpackedBool:
		return strconv.FormatBool(u.Bool)
	default:
		return u.Str
	}
}

// Unpack splits a string that concatenates a numeric value with a word or a
// boolean:
//
//	"1airship"        -> 1, "airship"
//	"0.175128Session" -> 0.175128, "Session"
//	"5true"           -> 5, true
//	"simple"          -> "simple"
//
// packed reports whether anything other than the original string came out.
// Plain integers and floats unpack to a single number and are not packed.
func Unpack(s string) (values []Unpacked, packed bool) {
	if s == "" {
		return nil, false
	}

	if leadingDigits(s) == len(s) {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return []Unpacked{{Kind: UnpackedInt, Int: n}}, false
		}
	}

	if strings.Contains(s, ".") && strings.Trim(s, "0123456789.-") == "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return []Unpacked{{Kind: UnpackedFloat, Float: f}}, false
		}
	}

	rest := s
	if end, ok := floatPrefix(rest); ok && end < len(rest) {
		if f, err := strconv.ParseFloat(rest[:end], 64); err == nil {
			values = append(values, Unpacked{Kind: UnpackedFloat, Float: f})
			rest = rest[end:]
		}
	}

	if len(values) == 0 {
		if end := leadingDigits(rest); end > 0 && end < len(rest) {
			if n, err := strconv.ParseInt(rest[:end], 10, 64); err == nil {
				values = append(values, Unpacked{Kind: UnpackedInt, Int: n})
				rest = rest[end:]
			}
		}
	}

	switch {
	case strings.EqualFold(rest, "true"):
		values = append(values, Unpacked{Kind: UnpackedBool, Bool: true})
		rest = ""
	case strings.EqualFold(rest, "false"):
		values = append(values, Unpacked{Kind: UnpackedBool, Bool: false})
		rest = ""
	}

	if rest != "" {
		values = append(values, Unpacked{Kind: UnpackedString, Str: rest})
	}

	packed = len(values) > 1 ||
		(len(values) == 1 && (values[0].Kind != UnpackedString || values[0].Str != s))

	return values, packed
}

// floatPrefix returns the length of a leading decimal with a fraction, such
// as "-0.5" or "12.", or false when s does not start with one.
func floatPrefix(s string) (int, bool) {
	pos := 0
	if strings.HasPrefix(s, "-") {
		pos++
	}

	digits := leadingDigits(s[pos:])
	pos += digits

	if pos >= len(s) || s[pos] != '.' {
		return 0, false
	}
	pos++

	fraction := leadingDigits(s[pos:])
	pos += fraction

	if digits+fraction == 0 {
		return 0, false
	}

	return pos, true
}
