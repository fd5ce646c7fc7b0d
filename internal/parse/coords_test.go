package parse

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ertools/surveyflow/internal/survey"
)

// coordLine builds a fixed-offset coordinate-table line:
// tok4 = rhoa, tok7 = k, toks 9..20 = A/B/M/N XYZ triples.
func coordLine(rhoa, k string, xyz ...string) string {
	toks := []string{"1", "0", "0", "0", rhoa, "0", "0", k, "R1"}
	toks = append(toks, xyz...)
	line := ""
	for i, t := range toks {
		if i > 0 {
			line += " "
		}
		line += t
	}
	return line
}

func TestParseCoordinateTable_IndexFromSortedCoordinates(t *testing.T) {
	// A at x=0, B at x=3, M at x=1, N at x=2: sorting the distinct
	// coordinates lexicographically yields A=1, B=4, M=2, N=3.
	line := coordLine("120.5", "6.283",
		"0", "0", "0",
		"3", "0", "0",
		"1", "0", "0",
		"2", "0", "0")

	tbl, err := ParseCoordinateTable([]string{line})
	require.NoError(t, err)
	require.Len(t, tbl.Readings, 1)

	r := tbl.Readings[0]
	assert.Equal(t, 1, r.A)
	assert.Equal(t, 4, r.B)
	assert.Equal(t, 2, r.M)
	assert.Equal(t, 3, r.N)
	require.NotNil(t, r.Rhoa)
	assert.Equal(t, 120.5, *r.Rhoa)
	require.NotNil(t, r.K)
	assert.Equal(t, 6.283, *r.K)
}

func TestParseCoordinateTable_SharedCoordinatesShareIndices(t *testing.T) {
	// Two readings referencing overlapping positions; identical coordinate
	// tuples must receive identical indices regardless of encounter order.
	lines := []string{
		coordLine("100", "6.28",
			"3", "0", "0",
			"0", "0", "0",
			"1", "0", "0",
			"2", "0", "0"),
		coordLine("110", "6.28",
			"0", "0", "0",
			"4", "0", "0",
			"2", "0", "0",
			"1", "0", "0"),
	}
	tbl, err := ParseCoordinateTable(lines)
	require.NoError(t, err)
	require.Len(t, tbl.Readings, 2)

	// Distinct coordinates: x = 0,1,2,3,4 -> indices 1..5.
	assert.Equal(t, 4, tbl.Readings[0].A)
	assert.Equal(t, 1, tbl.Readings[0].B)
	assert.Equal(t, 2, tbl.Readings[0].M)
	assert.Equal(t, 3, tbl.Readings[0].N)

	assert.Equal(t, 1, tbl.Readings[1].A)
	assert.Equal(t, 5, tbl.Readings[1].B)
	assert.Equal(t, 3, tbl.Readings[1].M)
	assert.Equal(t, 2, tbl.Readings[1].N)
}

func TestParseCoordinateTable_SkipsNonMatchingLines(t *testing.T) {
	lines := []string{
		"Advanced Geosciences Inc.",
		"Unit: meter",
		"1 2 3", // numeric start but far too short
		coordLine("99.5", "12.57",
			"0", "0", "0",
			"3", "0", "0",
			"1", "0", "0",
			"2", "0", "0"),
		coordLine("not-a-number", "12.57", // unparsable rhoa: skipped
			"0", "0", "0",
			"3", "0", "0",
			"1", "0", "0",
			"2", "0", "0"),
	}
	tbl, err := ParseCoordinateTable(lines)
	require.NoError(t, err)
	assert.Len(t, tbl.Readings, 1)
}

func TestParseCoordinateTable_NoMatchingLines(t *testing.T) {
	_, err := ParseCoordinateTable([]string{"no data here", "still nothing"})
	assert.True(t, errors.Is(err, survey.ErrNoCoordinateRows))
}
