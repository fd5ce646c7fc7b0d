package parse

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// intLikeThreshold: a column qualifies as index-like when at least this
// fraction of its non-missing values sit on integers.
const intLikeThreshold = 0.90

// Rounding tolerance for "is this float really an integer". Mirrors the
// usual absolute-plus-relative closeness test.
const (
	intAbsTol = 1e-8
	intRelTol = 1e-5
)

func closeToInt(v float64) bool {
	r := math.Round(v)
	return math.Abs(v-r) <= intAbsTol+intRelTol*math.Abs(r)
}

// IsIntegerLike statistically decides whether a coerced column holds
// index-like integers: the mean of the integer indicator over non-missing
// values must reach the 90% threshold. Columns with no convertible values
// never qualify.
func IsIntegerLike(vals []float64) bool {
	indicator := make([]float64, 0, len(vals))
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if closeToInt(v) {
			indicator = append(indicator, 1)
		} else {
			indicator = append(indicator, 0)
		}
	}
	if len(indicator) == 0 {
		return false
	}
	return stat.Mean(indicator, nil) >= intLikeThreshold
}

// IntegerLikeColumns returns the positions of integer-like columns in file
// order. The headerless path assigns the first four of these to A, B, M, N.
func IntegerLikeColumns(f *Frame) []int {
	var out []int
	for i := range f.Cols {
		if IsIntegerLike(f.NumericAt(i)) {
			out = append(out, i)
		}
	}
	return out
}
