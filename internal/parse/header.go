package parse

// headerScanLimit caps the header search; vendor preambles are long but not
// unbounded.
const headerScanLimit = 400

// minHeaderTokens is the least number of columns a header can define while
// still covering A/B/M/N.
const minHeaderTokens = 4

// LocateHeader scans the first lines of a file for the row that defines
// columns. A candidate needs at least four tokens and is accepted when
// either the following line (and the one after it, if present) looks
// numeric, or at least three of its tokens are electrode-role synonyms.
// The first accepted candidate wins. Returns the line index and true, or
// -1 and false when the file appears headerless.
func LocateHeader(lines []string) (int, bool) {
	limit := len(lines)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}

	for i := 0; i < limit; i++ {
		toks := Tokenize(lines[i])
		if len(toks) < minHeaderTokens {
			continue
		}
		// A line that itself looks numeric is a data row, not a header;
		// headerless files must fall through to the generic parser.
		if LooksNumericRow(toks) {
			continue
		}

		if i+1 < len(lines) && LooksNumericRow(Tokenize(lines[i+1])) {
			if i+2 >= len(lines) || LooksNumericRow(Tokenize(lines[i+2])) {
				return i, true
			}
		}

		if CountElectrodeSynonyms(toks) >= 3 {
			return i, true
		}
	}
	return -1, false
}
