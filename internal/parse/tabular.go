package parse

import (
	"math"

	"github.com/ertools/surveyflow/internal/survey"
)

// ParseTabular is the header-aware text path: locate a header row, resolve
// vendor spellings onto the canonical schema, coerce, and build the table.
// When no header can be located the headerless generic parser takes over.
func ParseTabular(lines []string) (*survey.Table, error) {
	hdr, ok := LocateHeader(lines)
	if !ok {
		return ParseGeneric(lines)
	}

	sep := DetectSeparator(lines[hdr])
	f := ParseFrame(lines[hdr:], sep, true)
	ResolveColumns(f)

	var missing, tried []string
	for _, target := range []string{survey.ColA, survey.ColB, survey.ColM, survey.ColN} {
		if !f.Has(target) {
			missing = append(missing, target)
			tried = append(tried, AliasesFor(target)...)
		}
	}
	if len(missing) > 0 {
		return nil, &survey.MissingColumnsError{Missing: missing, Tried: tried}
	}

	return TableFromFrame(f)
}

// TableFromFrame converts a frame whose A/B/M/N columns are resolved into a
// canonical table. Rows with unconvertible electrode cells are dropped;
// zero-based files are shifted to the 1-based convention. The potential
// difference is recovered from a VM/VN electrode-voltage pair when no dV
// column survived resolution.
func TableFromFrame(f *Frame) (*survey.Table, error) {
	a := f.Numeric(survey.ColA)
	b := f.Numeric(survey.ColB)
	m := f.Numeric(survey.ColM)
	n := f.Numeric(survey.ColN)

	current := f.Numeric(survey.ColCurrent)
	dv := f.Numeric(survey.ColDV)
	if dv == nil {
		dv = voltagePairDifference(f)
	}
	k := f.Numeric(survey.ColK)
	rhoa := f.Numeric(survey.ColRhoa)
	errCol := f.Numeric(survey.ColErr)

	t := &survey.Table{}
	minIdx := math.MaxInt
	for row := 0; row < f.NRows(); row++ {
		av, bv, mv, nv := a[row], b[row], m[row], n[row]
		if math.IsNaN(av) || math.IsNaN(bv) || math.IsNaN(mv) || math.IsNaN(nv) {
			continue
		}
		rd := survey.Reading{
			A: int(math.Round(av)),
			B: int(math.Round(bv)),
			M: int(math.Round(mv)),
			N: int(math.Round(nv)),
		}
		rd.Current = optAt(current, row)
		rd.DV = optAt(dv, row)
		rd.K = optAt(k, row)
		rd.Rhoa = optAt(rhoa, row)
		rd.Err = optAt(errCol, row)
		for _, v := range [4]int{rd.A, rd.B, rd.M, rd.N} {
			if v < minIdx {
				minIdx = v
			}
		}
		t.Readings = append(t.Readings, rd)
	}

	if len(t.Readings) == 0 {
		return nil, survey.ErrNoNumericBlock
	}

	// Native containers index electrodes from zero; the canonical schema is
	// 1-based.
	if minIdx == 0 {
		for i := range t.Readings {
			t.Readings[i].A++
			t.Readings[i].B++
			t.Readings[i].M++
			t.Readings[i].N++
		}
	}
	return t, nil
}

func optAt(col []float64, row int) *float64 {
	if col == nil || row >= len(col) || math.IsNaN(col[row]) {
		return nil
	}
	v := col[row]
	return &v
}

// voltagePairDifference derives dV = VM - VN when the export reports the
// two potential-electrode voltages instead of their difference.
func voltagePairDifference(f *Frame) []float64 {
	vm := numericByNorm(f, "VM")
	vn := numericByNorm(f, "VN")
	if vm == nil || vn == nil {
		return nil
	}
	out := make([]float64, len(vm))
	for i := range vm {
		if i < len(vn) {
			out[i] = vm[i] - vn[i]
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

func numericByNorm(f *Frame, norm string) []float64 {
	for i, name := range f.Names {
		if Normalize(name) == norm {
			return f.NumericAt(i)
		}
	}
	return nil
}
