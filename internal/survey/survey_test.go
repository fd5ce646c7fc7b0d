package survey

import (
	"testing"
)

func TestNElectrodes(t *testing.T) {
	tbl := &Table{Readings: []Reading{
		{A: 1, B: 2, M: 3, N: 4},
		{A: 2, B: 7, M: 4, N: 5},
	}}
	if got := tbl.NElectrodes(); got != 7 {
		t.Errorf("NElectrodes = %d, want 7", got)
	}
}

func TestValidate(t *testing.T) {
	valid := &Table{Readings: []Reading{{A: 1, B: 2, M: 3, N: 4, Err: Float64(0.03)}}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid table rejected: %v", err)
	}

	empty := &Table{}
	if err := empty.Validate(); err == nil {
		t.Error("empty table must not validate")
	}

	zeroIdx := &Table{Readings: []Reading{{A: 0, B: 2, M: 3, N: 4}}}
	if err := zeroIdx.Validate(); err == nil {
		t.Error("zero electrode index must not validate")
	}

	badErr := &Table{Readings: []Reading{{A: 1, B: 2, M: 3, N: 4, Err: Float64(0)}}}
	if err := badErr.Validate(); err == nil {
		t.Error("non-positive err must not validate")
	}
}

func TestIndexCoordinates_SortedAssignment(t *testing.T) {
	coords := []Coordinate{
		{3, 0, 0}, {0, 0, 0}, {1, 0, 0}, {2, 0, 0},
	}
	idx := IndexCoordinates(coords)

	want := map[Coordinate]int{
		{0, 0, 0}: 1,
		{1, 0, 0}: 2,
		{2, 0, 0}: 3,
		{3, 0, 0}: 4,
	}
	for c, wi := range want {
		if idx[c] != wi {
			t.Errorf("index of %v = %d, want %d", c, idx[c], wi)
		}
	}
}

func TestIndexCoordinates_OrderIndependent(t *testing.T) {
	a := []Coordinate{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 0, 0}}
	b := []Coordinate{{1, 0, 0}, {0, 1, 0}, {0, 0, 0}, {0, 1, 0}}

	ia, ib := IndexCoordinates(a), IndexCoordinates(b)
	if len(ia) != 3 || len(ib) != 3 {
		t.Fatalf("expected 3 distinct coordinates, got %d and %d", len(ia), len(ib))
	}
	for c := range ia {
		if ia[c] != ib[c] {
			t.Errorf("coordinate %v: index %d vs %d depending on encounter order", c, ia[c], ib[c])
		}
	}
}

func TestIndexCoordinates_Bijection(t *testing.T) {
	coords := []Coordinate{
		{0, 0, 0}, {1, 2, 3}, {1, 2, 0}, {0, 0, 0}, {-1, 5, 2},
	}
	idx := IndexCoordinates(coords)

	seen := map[int]bool{}
	for _, i := range idx {
		if seen[i] {
			t.Errorf("index %d assigned twice", i)
		}
		seen[i] = true
	}
	for i := 1; i <= len(idx); i++ {
		if !seen[i] {
			t.Errorf("index %d missing from assignment", i)
		}
	}
}

func TestClone_Independent(t *testing.T) {
	tbl := &Table{Readings: []Reading{
		{A: 1, B: 2, M: 3, N: 4, Rhoa: Float64(10), IPGates: []float64{1, 2}},
	}}
	cp := tbl.Clone()
	*cp.Readings[0].Rhoa = 99
	cp.Readings[0].IPGates[0] = 99

	if *tbl.Readings[0].Rhoa != 10 {
		t.Error("Clone shares rhoa pointer with original")
	}
	if tbl.Readings[0].IPGates[0] != 1 {
		t.Error("Clone shares gate slice with original")
	}
}
