// Package derive fills the derivable columns of a canonical survey table:
// geometric factor, apparent resistivity, and measurement error. It is the
// last pure transformation before the table is handed to the inversion
// collaborator, and it guarantees the all-or-nothing schema invariant.
package derive

import (
	"math"

	"github.com/ertools/surveyflow/internal/config"
	"github.com/ertools/surveyflow/internal/survey"
)

// Computer applies the derived-field fallbacks using configured defaults.
type Computer struct {
	cfg config.Pipeline
}

// New returns a Computer over the given pipeline defaults.
func New(cfg config.Pipeline) Computer {
	return Computer{cfg: cfg}
}

// Normalize returns a copy of the table with rhoa and err guaranteed
// present. Fallback order:
//
//  1. rhoa absent, dV and CURRENT present: derive k (flat-surface in-line
//     approximation from electrode positions) where absent, then
//     rhoa = k · dV / CURRENT.
//  2. err absent: the configured default relative error. Either way err is
//     floored so it stays strictly positive.
//
// When rhoa is absent and cannot be derived, the failure names the missing
// fields; a partially-valid table is never returned.
func (c Computer) Normalize(t *survey.Table) (*survey.Table, error) {
	out := t.Clone()

	if !out.HasRhoa() {
		if err := c.deriveRhoa(out); err != nil {
			return nil, err
		}
	}

	for i := range out.Readings {
		r := &out.Readings[i]
		e := c.cfg.RelErr
		if r.Err != nil {
			e = *r.Err
		}
		if e < c.cfg.ErrFloor {
			e = c.cfg.ErrFloor
		}
		r.Err = &e
	}
	return out, nil
}

func (c Computer) deriveRhoa(t *survey.Table) error {
	if !t.HasDV() || !t.HasCurrent() {
		missing := []string{survey.ColRhoa}
		if !t.HasDV() {
			missing = append(missing, survey.ColDV)
		}
		if !t.HasCurrent() {
			missing = append(missing, survey.ColCurrent)
		}
		return &survey.MissingColumnsError{Missing: missing}
	}

	hasK := t.HasK()
	for i := range t.Readings {
		r := &t.Readings[i]
		if r.DV == nil || r.Current == nil {
			continue
		}
		if !hasK {
			k := c.GeometricFactor(r.A, r.B, r.M, r.N)
			r.K = &k
		}
		if r.K == nil {
			continue
		}
		rhoa := *r.K * *r.DV / *r.Current
		r.Rhoa = &rhoa
	}

	if !t.HasRhoa() {
		return &survey.MissingColumnsError{Missing: []string{survey.ColRhoa}}
	}
	return nil
}

// GeometricFactor approximates k for an in-line four-point spread on a flat
// surface:
//
//	k = G / (1/AM − 1/AN − 1/BM + 1/BN)
//
// where G is the configured factor (2π by default) and electrode x
// positions come from the index times the configured spacing. Pairwise
// distances are floored before reciprocation and the denominator is floored
// sign-preserving, so degenerate geometries yield a finite, non-zero k
// instead of a division singularity.
func (c Computer) GeometricFactor(a, b, m, n int) float64 {
	xa := float64(a) * c.cfg.ElectrodeSpacing
	xb := float64(b) * c.cfg.ElectrodeSpacing
	xm := float64(m) * c.cfg.ElectrodeSpacing
	xn := float64(n) * c.cfg.ElectrodeSpacing

	inv := func(x, y float64) float64 {
		d := math.Abs(x - y)
		if d < c.cfg.DistanceEpsilon {
			d = c.cfg.DistanceEpsilon
		}
		return 1 / d
	}

	den := inv(xa, xm) - inv(xa, xn) - inv(xb, xm) + inv(xb, xn)
	if math.Abs(den) < c.cfg.DistanceEpsilon {
		den = math.Copysign(c.cfg.DistanceEpsilon, den)
	}
	return c.cfg.GeomFactor / den
}
