package parse

import (
	"github.com/ertools/surveyflow/internal/survey"
)

// FindNumericBlock scans for the first window of at least two consecutive
// lines that both look numeric; that index marks the start of the data
// block in a headerless file. Returns -1 when no such window exists.
func FindNumericBlock(lines []string) int {
	for i := 0; i+1 < len(lines); i++ {
		if LooksNumericRow(Tokenize(lines[i])) && LooksNumericRow(Tokenize(lines[i+1])) {
			return i
		}
	}
	return -1
}

// ParseGeneric is the last-resort headerless parser. The text from the
// first consecutive-numeric window onward is read as a positional table
// using the detected separator, and the first four integer-like columns, in
// file order, become A, B, M, N.
func ParseGeneric(lines []string) (*survey.Table, error) {
	start := FindNumericBlock(lines)
	if start < 0 {
		return nil, survey.ErrNoNumericBlock
	}

	sep := DetectSeparator(lines[start])
	f := ParseFrame(lines[start:], sep, false)

	intLike := IntegerLikeColumns(f)
	if len(intLike) < 4 {
		return nil, &survey.AmbiguousElectrodeError{Resolved: 0, IntLike: len(intLike)}
	}
	for i, target := range []string{survey.ColA, survey.ColB, survey.ColM, survey.ColN} {
		f.Names[intLike[i]] = target
	}

	return TableFromFrame(f)
}
