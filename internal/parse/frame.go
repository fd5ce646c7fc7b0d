package parse

import (
	"math"
	"strconv"
	"strings"
)

// Frame is the intermediate column-oriented table the tabular parsers build
// before canonical readings exist. Cells stay raw strings until coercion so
// nothing is lost between stages; missing cells are empty strings.
type Frame struct {
	Names []string
	Cols  [][]string
}

// ParseFrame parses lines into a frame using the given separator. When
// hasHeader is true the first line supplies column names; otherwise columns
// get positional names "c0", "c1", ... Short rows are padded with empty
// cells, long rows extend the frame.
func ParseFrame(lines []string, sep Separator, hasHeader bool) *Frame {
	f := &Frame{}
	start := 0
	if hasHeader && len(lines) > 0 {
		f.Names = SplitFields(lines[0], sep)
		start = 1
	}

	for _, ln := range lines[start:] {
		fields := SplitFields(ln, sep)
		for len(f.Cols) < len(fields) {
			f.Cols = append(f.Cols, make([]string, rowsIn(f)))
		}
		for c := range f.Cols {
			cell := ""
			if c < len(fields) {
				cell = fields[c]
			}
			f.Cols[c] = append(f.Cols[c], cell)
		}
	}

	// Square up: a header wider than the data gets empty columns, data wider
	// than the header gets positional names.
	for len(f.Cols) < len(f.Names) {
		f.Cols = append(f.Cols, make([]string, rowsIn(f)))
	}
	for len(f.Names) < len(f.Cols) {
		f.Names = append(f.Names, "c"+strconv.Itoa(len(f.Names)))
	}
	return f
}

func rowsIn(f *Frame) int {
	if len(f.Cols) == 0 {
		return 0
	}
	return len(f.Cols[0])
}

// NRows returns the number of data rows in the frame.
func (f *Frame) NRows() int { return rowsIn(f) }

// Index returns the position of the named column, or -1.
func (f *Frame) Index(name string) int {
	for i, n := range f.Names {
		if n == name {
			return i
		}
	}
	return -1
}

// Has reports whether the frame carries the named column.
func (f *Frame) Has(name string) bool { return f.Index(name) >= 0 }

// Numeric coerces the named column to floats. Non-convertible cells become
// NaN (missing) rather than errors; absent columns return nil.
func (f *Frame) Numeric(name string) []float64 {
	i := f.Index(name)
	if i < 0 {
		return nil
	}
	return coerceFloats(f.Cols[i])
}

// NumericAt coerces the column at position i to floats.
func (f *Frame) NumericAt(i int) []float64 {
	if i < 0 || i >= len(f.Cols) {
		return nil
	}
	return coerceFloats(f.Cols[i])
}

func coerceFloats(cells []string) []float64 {
	out := make([]float64, len(cells))
	for j, cell := range cells {
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			out[j] = math.NaN()
			continue
		}
		out[j] = v
	}
	return out
}

// Rename gives column i the canonical name, refusing to shadow an existing
// column that already carries it.
func (f *Frame) Rename(i int, name string) bool {
	if i < 0 || i >= len(f.Names) || f.Has(name) {
		return false
	}
	f.Names[i] = name
	return true
}
