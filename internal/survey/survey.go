// Package survey defines the canonical ERT/IP survey table: the single
// tabular schema every importer normalizes into and the only contract
// handed to the downstream mesh/inversion engine.
package survey

import (
	"fmt"
	"sort"
)

// Canonical column names. Electrode roles are the four-point measurement
// convention: A/B inject current, M/N measure potential.
const (
	ColA       = "A"
	ColB       = "B"
	ColM       = "M"
	ColN       = "N"
	ColCurrent = "CURRENT"
	ColDV      = "dV"
	ColK       = "k"
	ColRhoa    = "rhoa"
	ColErr     = "err"
)

// Reading is one row of the canonical table. Electrode indices are 1-based.
// Optional physical quantities are nil until parsed or derived; Err is
// guaranteed non-nil (and strictly positive) after normalization.
type Reading struct {
	A, B, M, N int

	Current *float64 // injected current
	DV      *float64 // measured potential difference
	K       *float64 // geometric factor
	Rhoa    *float64 // apparent resistivity
	Err     *float64 // relative error fraction

	// IPGates holds per-gate chargeability values when the source file
	// carried an induced-polarization block for this reading.
	IPGates []float64
}

// Table is an ordered sequence of readings sharing one electrode count.
type Table struct {
	Readings []Reading
}

// NElectrodes returns the electrode count implied by the table: the maximum
// index appearing in any of the A/B/M/N roles.
func (t *Table) NElectrodes() int {
	max := 0
	for _, r := range t.Readings {
		for _, v := range [4]int{r.A, r.B, r.M, r.N} {
			if v > max {
				max = v
			}
		}
	}
	return max
}

// Column presence follows the source semantics: a column exists when any
// reading carries a value for it.

func (t *Table) HasCurrent() bool { return t.hasField(func(r *Reading) *float64 { return r.Current }) }
func (t *Table) HasDV() bool      { return t.hasField(func(r *Reading) *float64 { return r.DV }) }
func (t *Table) HasK() bool       { return t.hasField(func(r *Reading) *float64 { return r.K }) }
func (t *Table) HasRhoa() bool    { return t.hasField(func(r *Reading) *float64 { return r.Rhoa }) }
func (t *Table) HasErr() bool     { return t.hasField(func(r *Reading) *float64 { return r.Err }) }

func (t *Table) hasField(get func(*Reading) *float64) bool {
	for i := range t.Readings {
		if get(&t.Readings[i]) != nil {
			return true
		}
	}
	return false
}

// MaxGates returns the longest IP gate array across all readings, zero when
// the table carries no IP data.
func (t *Table) MaxGates() int {
	max := 0
	for i := range t.Readings {
		if n := len(t.Readings[i].IPGates); n > max {
			max = n
		}
	}
	return max
}

// Validate checks the schema invariant: electrode indices positive and
// within the electrode count, err strictly positive wherever present.
func (t *Table) Validate() error {
	if len(t.Readings) == 0 {
		return fmt.Errorf("survey table is empty")
	}
	n := t.NElectrodes()
	for i, r := range t.Readings {
		for _, v := range [4]int{r.A, r.B, r.M, r.N} {
			if v < 1 || v > n {
				return fmt.Errorf("reading %d: electrode index %d outside 1..%d", i, v, n)
			}
		}
		if r.Err != nil && *r.Err <= 0 {
			return fmt.Errorf("reading %d: err %g is not strictly positive", i, *r.Err)
		}
	}
	return nil
}

// Clone returns a deep copy so transformation stages can stay pure.
func (t *Table) Clone() *Table {
	out := &Table{Readings: make([]Reading, len(t.Readings))}
	copy(out.Readings, t.Readings)
	for i := range out.Readings {
		if g := out.Readings[i].IPGates; g != nil {
			cp := make([]float64, len(g))
			copy(cp, g)
			out.Readings[i].IPGates = cp
		}
		out.Readings[i].Current = clonePtr(out.Readings[i].Current)
		out.Readings[i].DV = clonePtr(out.Readings[i].DV)
		out.Readings[i].K = clonePtr(out.Readings[i].K)
		out.Readings[i].Rhoa = clonePtr(out.Readings[i].Rhoa)
		out.Readings[i].Err = clonePtr(out.Readings[i].Err)
	}
	return out
}

func clonePtr(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// ImportMeta records provenance for a normalized table: which importer
// stage produced it and which optional columns arrived populated.
type ImportMeta struct {
	Importer  string `json:"importer"`
	Source    string `json:"source"`
	NReadings int    `json:"n_readings"`
	HasK      bool   `json:"has_k"`
	HasRhoa   bool   `json:"has_rhoa"`
	HasErr    bool   `json:"has_err"`
}

// Coordinate is an absolute electrode position for survey variants that
// encode topology as geometry instead of integer indices.
type Coordinate struct {
	X, Y, Z float64
}

// IndexCoordinates assigns sequential 1-based indices to the distinct
// coordinates, ordered lexicographically by (x,y,z). Identical tuples always
// map to the same index regardless of encounter order, so the assignment is
// deterministic for a given file.
func IndexCoordinates(coords []Coordinate) map[Coordinate]int {
	seen := make(map[Coordinate]struct{}, len(coords))
	uniq := make([]Coordinate, 0, len(coords))
	for _, c := range coords {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		uniq = append(uniq, c)
	}
	sort.Slice(uniq, func(i, j int) bool {
		a, b := uniq[i], uniq[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	idx := make(map[Coordinate]int, len(uniq))
	for i, c := range uniq {
		idx[c] = i + 1
	}
	return idx
}

// Float64 returns a pointer to v. Convenience for building readings.
func Float64(v float64) *float64 { return &v }
