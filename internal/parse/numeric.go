package parse

import (
	"regexp"
	"strconv"
)

// numberRE matches a plain decimal or exponential number with optional sign.
// Stricter than strconv.ParseFloat: no "inf", "nan", hex floats, or
// underscores, which keeps telemetry tokens out of gate arrays.
var numberRE = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?$`)

// IsNumber reports whether tok is a pure decimal/exponential number.
func IsNumber(tok string) bool {
	return numberRE.MatchString(tok)
}

// minNumericTokens is how many float-parsable tokens a line needs before it
// "looks like" a data row.
const minNumericTokens = 4

// LooksNumericRow reports whether a tokenized line looks like a data row:
// at least four tokens parse as floats, signed and exponential forms
// included.
func LooksNumericRow(toks []string) bool {
	hits := 0
	for _, t := range toks {
		if _, err := strconv.ParseFloat(t, 64); err == nil {
			hits++
			if hits >= minNumericTokens {
				return true
			}
		}
	}
	return false
}
