package survey

import (
	"gonum.org/v1/gonum/floats"
)

// Summary is the inspection view of a canonical table: row/electrode counts
// and per-column ranges. Optional ranges are nil when the column is absent.
type Summary struct {
	NReadings   int `json:"n_readings"`
	NElectrodes int `json:"n_electrodes"`

	AMin int `json:"a_min"`
	AMax int `json:"a_max"`
	BMin int `json:"b_min"`
	BMax int `json:"b_max"`
	MMin int `json:"m_min"`
	MMax int `json:"m_max"`
	NMin int `json:"n_min"`
	NMax int `json:"n_max"`

	CurrentMin *float64 `json:"current_min,omitempty"`
	CurrentMax *float64 `json:"current_max,omitempty"`
	DVMin      *float64 `json:"dv_min,omitempty"`
	DVMax      *float64 `json:"dv_max,omitempty"`
	RhoaMin    *float64 `json:"rhoa_min,omitempty"`
	RhoaMax    *float64 `json:"rhoa_max,omitempty"`

	HasK   bool `json:"has_k"`
	HasErr bool `json:"has_err"`
}

// Summarize computes the inspection summary for a table.
func Summarize(t *Table) Summary {
	s := Summary{
		NReadings:   len(t.Readings),
		NElectrodes: t.NElectrodes(),
		HasK:        t.HasK(),
		HasErr:      t.HasErr(),
	}
	if len(t.Readings) == 0 {
		return s
	}

	s.AMin, s.AMax = intRange(t, func(r *Reading) int { return r.A })
	s.BMin, s.BMax = intRange(t, func(r *Reading) int { return r.B })
	s.MMin, s.MMax = intRange(t, func(r *Reading) int { return r.M })
	s.NMin, s.NMax = intRange(t, func(r *Reading) int { return r.N })

	s.CurrentMin, s.CurrentMax = floatRange(t, func(r *Reading) *float64 { return r.Current })
	s.DVMin, s.DVMax = floatRange(t, func(r *Reading) *float64 { return r.DV })
	s.RhoaMin, s.RhoaMax = floatRange(t, func(r *Reading) *float64 { return r.Rhoa })
	return s
}

func intRange(t *Table, get func(*Reading) int) (min, max int) {
	min = get(&t.Readings[0])
	max = min
	for i := range t.Readings {
		v := get(&t.Readings[i])
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func floatRange(t *Table, get func(*Reading) *float64) (min, max *float64) {
	var vals []float64
	for i := range t.Readings {
		if p := get(&t.Readings[i]); p != nil {
			vals = append(vals, *p)
		}
	}
	if len(vals) == 0 {
		return nil, nil
	}
	lo, hi := floats.Min(vals), floats.Max(vals)
	return &lo, &hi
}
