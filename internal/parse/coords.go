package parse

import (
	"strconv"

	"github.com/ertools/surveyflow/internal/survey"
)

// Fixed token offsets of the AGI coordinate-table line layout:
//
//	... <rhoa> ... <k> <label> Ax Ay Az Bx By Bz Mx My Mz Nx Ny Nz [IP...]
const (
	coordRhoaOffset  = 4
	coordKOffset     = 7
	coordXYZStart    = 9  // Ax; four consecutive XYZ triples follow
	coordMinTokens   = 21 // up through Nz
	coordTripleWidth = 3
)

type coordReading struct {
	rhoa, k    float64
	a, b, m, n survey.Coordinate
}

// ParseCoordinateTable handles the survey variant that encodes electrode
// topology as absolute XYZ positions per reading. Only lines whose first
// token is numeric are considered; lines too short for the fixed offsets or
// with unparsable fields are silently skipped — that is the tolerant
// degrade, not an error. The parser fails only when no line in the whole
// file matches.
func ParseCoordinateTable(lines []string) (*survey.Table, error) {
	var rows []coordReading
	var coords []survey.Coordinate

	for _, ln := range lines {
		toks := Tokenize(ln)
		if len(toks) < coordMinTokens || !IsNumber(toks[0]) {
			continue
		}
		row, ok := parseCoordLine(toks)
		if !ok {
			continue
		}
		rows = append(rows, row)
		coords = append(coords, row.a, row.b, row.m, row.n)
	}

	if len(rows) == 0 {
		return nil, survey.ErrNoCoordinateRows
	}

	// Topology falls out of the geometry: distinct positions sorted by
	// (x,y,z) become the 1-based electrode indices.
	idx := survey.IndexCoordinates(coords)

	t := &survey.Table{Readings: make([]survey.Reading, 0, len(rows))}
	for _, row := range rows {
		t.Readings = append(t.Readings, survey.Reading{
			A:    idx[row.a],
			B:    idx[row.b],
			M:    idx[row.m],
			N:    idx[row.n],
			Rhoa: survey.Float64(row.rhoa),
			K:    survey.Float64(row.k),
		})
	}
	return t, nil
}

func parseCoordLine(toks []string) (coordReading, bool) {
	var row coordReading
	var err error

	if row.rhoa, err = strconv.ParseFloat(toks[coordRhoaOffset], 64); err != nil {
		return row, false
	}
	if row.k, err = strconv.ParseFloat(toks[coordKOffset], 64); err != nil {
		return row, false
	}

	triples := [4]*survey.Coordinate{&row.a, &row.b, &row.m, &row.n}
	for ti, c := range triples {
		base := coordXYZStart + ti*coordTripleWidth
		if c.X, err = strconv.ParseFloat(toks[base], 64); err != nil {
			return row, false
		}
		if c.Y, err = strconv.ParseFloat(toks[base+1], 64); err != nil {
			return row, false
		}
		if c.Z, err = strconv.ParseFloat(toks[base+2], 64); err != nil {
			return row, false
		}
	}
	return row, true
}
