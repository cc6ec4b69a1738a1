package strtab

import "strings"

// shortAllowList holds the short runs accepted regardless of case.
var shortAllowList = map[string]struct{}{
	"id": {}, "min": {}, "max": {}, "key": {}, "map": {}, "set": {}, "get": {},
	"new": {}, "old": {}, "add": {}, "sub": {}, "div": {}, "mul": {}, "mod": {},
	"int": {}, "str": {}, "vec": {}, "ptr": {}, "ref": {}, "val": {}, "nil": {},
	"null": {}, "end": {}, "all": {}, "any": {}, "one": {}, "two": {}, "pad": {},
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isLower(c byte) bool { return c >= 'a' && c <= 'z' }
func isUpper(c byte) bool { return c >= 'A' && c <= 'Z' }
func isLetter(c byte) bool {
	return isLower(c) || isUpper(c)
}

// isPrintable reports whether c belongs to a string run.
func isPrintable(c byte) bool {
	return c >= 0x20 && c <= 0x7e
}

func isNoise(c byte) bool {
	switch c {
	case '!', '@', '#', '%', '^', '&', '*', '(', ')', '"', '`':
		return true
	default:
		return false
	}
}

// IsValid reports whether s passes the quality filter applied to every
// extracted run.
//
// A run is rejected when:
//   - it is shorter than 2 bytes, unless it is all digits
//   - it contains noise punctuation: ! @ # % ^ & * ( ) " `
//   - it has a leading or trailing space, or two spaces in a row
//   - it has no letters and is not made of digits, '.' and '-'
//   - it is at most 3 bytes and not made of letters, digits and '_', or it
//     mixes upper and lower case without being on the short allow-list
//   - it has more than 3 underscores and more than one per two letters
func IsValid(s string) bool {
	if s == "" {
		return false
	}

	allDigits := true
	letters, underscores := 0, 0
	hasLower, hasUpper := false, false
	numeric := true
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isPrintable(c) || isNoise(c) {
			return false
		}
		if !isDigit(c) {
			allDigits = false
		}
		switch {
		case isLower(c):
			letters++
			hasLower = true
		case isUpper(c):
			letters++
			hasUpper = true
		case c == '_':
			underscores++
		}
		if !isDigit(c) && c != '.' && c != '-' {
			numeric = false
		}
	}

	if allDigits {
		return true
	}
	if len(s) < 2 {
		return false
	}
	if letters == 0 && !numeric {
		return false
	}
	if s[0] == ' ' || s[len(s)-1] == ' ' || strings.Contains(s, "  ") {
		return false
	}

	if len(s) <= 3 {
		for i := 0; i < len(s); i++ {
			c := s[i]
			if !isLetter(c) && !isDigit(c) && c != '_' {
				return false
			}
		}
		if hasLower && hasUpper {
			if _, ok := shortAllowList[strings.ToLower(s)]; !ok {
				return false
			}
		}
	}

	if underscores > 3 && underscores > letters/2 {
		return false
	}

	return true
}
