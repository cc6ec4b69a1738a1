package strtab

// Build extracts the string table from region.
//
// Runs of printable ASCII end at a null byte, or at any other byte once at
// least two printable bytes are buffered; a shorter run interrupted by a
// non-printable byte is discarded. Every run goes through IsValid and packed
// runs are split. Extraction stops after maxCount valid runs; maxCount <= 0
// means no limit.
func Build(region []byte, maxCount int) *Table {
	b := NewBuilder(64)
	runs := 0

	limited := func() bool {
		return maxCount > 0 && runs >= maxCount
	}
	flush := func(run []byte) {
		if b.Add(string(run)) {
			runs++
		}
	}

	var run []byte
	for _, c := range region {
		if limited() {
			return b.Table()
		}

		switch {
		case c == 0:
			if len(run) > 0 {
				flush(run)
			}
			run = run[:0]
		case isPrintable(c):
			run = append(run, c)
		case len(run) >= 2:
			flush(run)
			run = run[:0]
		default:
			run = run[:0]
		}
	}

	if len(run) > 0 && !limited() {
		flush(run)
	}

	return b.Table()
}

// InlineNames extracts the category names stored after the control section.
// data runs from the first byte after the control section to the binary
// offset.
//
// Scanning stops at the first entry data marker (two non-zero bytes followed
// by two zero bytes) or at the start of a field abbreviation, a run
// containing '.' or '!'. Only runs of at least two lowercase letters and
// digits are kept.
func InlineNames(data []byte) []string {
	end := len(data)
	for i := 0; i+3 < len(data); i++ {
		if data[i] != 0 && data[i+1] != 0 && data[i+2] == 0 && data[i+3] == 0 {
			end = i
			break
		}
		if data[i] == '.' || data[i] == '!' {
			j := i
			for j > 0 && data[j-1] != 0 {
				j--
			}
			end = j

			break
		}
	}

	var names []string
	var run []byte
	keep := func() {
		if isCategoryName(run) {
			names = append(names, string(run))
		}
		run = run[:0]
	}

	for _, c := range data[:end] {
		switch {
		case c == 0:
			keep()
		case isPrintable(c):
			run = append(run, c)
		default:
			run = run[:0]
		}
	}
	keep()

	return names
}

func isCategoryName(run []byte) bool {
	if len(run) < 2 {
		return false
	}
	for _, c := range run {
		if !isLower(c) && !isDigit(c) {
			return false
		}
	}

	return true
}
