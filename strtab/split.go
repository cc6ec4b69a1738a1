package strtab

import "strings"

// packedMinLen is the length a run must exceed before it is checked for
// packed entry names.
const packedMinLen = 20

// packedMarkers start a new entry name inside a packed run.
var packedMarkers = []string{"IPL_", "IPL", "Table_", "Preset_", "/Script/", "/Game/"}

// IsPacked reports whether s looks like several entry names concatenated.
func IsPacked(s string) bool {
	if len(s) <= packedMinLen {
		return false
	}

	for _, marker := range packedMarkers {
		if strings.Contains(s, marker) {
			return true
		}
	}

	return false
}

// SplitPacked splits s before every marker that is not at its start. Each
// fragment is validated on its own and invalid ones are dropped; a fragment
// starting with '_' is given back its "IPL" prefix. When no fragment
// survives, s is returned unchanged.
func SplitPacked(s string) []string {
	var parts []string

	remaining := s
	for remaining != "" {
		split := -1
		for _, marker := range packedMarkers {
			if pos := strings.Index(remaining[1:], marker); pos >= 0 && (split < 0 || pos+1 < split) {
				split = pos + 1
			}
		}

		part := remaining
		if split > 0 {
			part = remaining[:split]
		}
		if IsValid(part) {
			parts = append(parts, normalizeEntryName(part))
		}

		if split < 0 {
			break
		}
		remaining = remaining[split:]
	}

	if len(parts) == 0 {
		return []string{s}
	}

	return parts
}

func normalizeEntryName(s string) string {
	if len(s) > 1 && s[0] == '_' {
		return "IPL" + s
	}

	return s
}
