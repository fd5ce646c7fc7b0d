// Package config holds the overridable defaults of the ingestion pipeline.
// The geometric-factor and error-fraction defaults are conventions rather
// than physically derived values, so they are configuration, not constants.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Pipeline carries the tunable defaults used during normalization.
type Pipeline struct {
	// GeomFactor is the numerator of the flat-surface in-line geometric
	// factor approximation (and the historical fallback value 2π).
	GeomFactor float64

	// RelErr is the relative error fraction assumed when the file carries
	// no error column.
	RelErr float64

	// ErrFloor keeps the error column strictly positive; the downstream
	// inversion collaborator rejects zero or negative uncertainties.
	ErrFloor float64

	// DistanceEpsilon floors pairwise electrode distances and the geometric
	// factor denominator before reciprocation so degenerate geometries
	// stay finite.
	DistanceEpsilon float64

	// ElectrodeSpacing converts electrode indices to x positions when the
	// file provides no geometry.
	ElectrodeSpacing float64
}

// Default returns the stock pipeline defaults.
func Default() Pipeline {
	return Pipeline{
		GeomFactor:       2 * math.Pi,
		RelErr:           0.03,
		ErrFloor:         1e-6,
		DistanceEpsilon:  1e-12,
		ElectrodeSpacing: 1.0,
	}
}

// Overrides is the JSON shape of a pipeline config file. Fields omitted from
// the file retain their default values, so partial configs are safe.
type Overrides struct {
	GeomFactor       *float64 `json:"geom_factor,omitempty"`
	RelErr           *float64 `json:"rel_err,omitempty"`
	ErrFloor         *float64 `json:"err_floor,omitempty"`
	DistanceEpsilon  *float64 `json:"distance_epsilon,omitempty"`
	ElectrodeSpacing *float64 `json:"electrode_spacing,omitempty"`
}

// Apply copies the set fields of o onto p.
func (o *Overrides) Apply(p *Pipeline) {
	if o.GeomFactor != nil {
		p.GeomFactor = *o.GeomFactor
	}
	if o.RelErr != nil {
		p.RelErr = *o.RelErr
	}
	if o.ErrFloor != nil {
		p.ErrFloor = *o.ErrFloor
	}
	if o.DistanceEpsilon != nil {
		p.DistanceEpsilon = *o.DistanceEpsilon
	}
	if o.ElectrodeSpacing != nil {
		p.ElectrodeSpacing = *o.ElectrodeSpacing
	}
}

// Load reads a JSON overrides file and applies it over the defaults.
func Load(path string) (Pipeline, error) {
	p := Default()

	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return p, fmt.Errorf("config file must have .json extension, got %q", ext)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return p, fmt.Errorf("failed to read config file: %w", err)
	}

	var o Overrides
	if err := json.Unmarshal(data, &o); err != nil {
		return p, fmt.Errorf("failed to parse config file: %w", err)
	}
	o.Apply(&p)

	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// Validate rejects values the pipeline cannot work with.
func (p *Pipeline) Validate() error {
	if p.RelErr <= 0 {
		return fmt.Errorf("rel_err must be strictly positive, got %g", p.RelErr)
	}
	if p.ErrFloor <= 0 {
		return fmt.Errorf("err_floor must be strictly positive, got %g", p.ErrFloor)
	}
	if p.DistanceEpsilon <= 0 {
		return fmt.Errorf("distance_epsilon must be strictly positive, got %g", p.DistanceEpsilon)
	}
	if p.ElectrodeSpacing <= 0 {
		return fmt.Errorf("electrode_spacing must be strictly positive, got %g", p.ElectrodeSpacing)
	}
	return nil
}
