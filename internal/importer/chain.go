// Package importer orchestrates the fallback chain that turns raw survey
// export bytes into one canonical table: external native importers first,
// then the internal coordinate-table and tabular parsers, in fixed order,
// first adequate result wins.
package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ertools/surveyflow/internal/config"
	"github.com/ertools/surveyflow/internal/derive"
	"github.com/ertools/surveyflow/internal/ipgate"
	"github.com/ertools/surveyflow/internal/monitoring"
	"github.com/ertools/surveyflow/internal/parse"
	"github.com/ertools/surveyflow/internal/survey"
)

// NativeImporter is the narrow adapter over an external import library:
// attempt to read the file, return a survey table or fail. Keeping the
// bindings behind this interface keeps the chain testable without them.
type NativeImporter interface {
	// Name identifies the importer in provenance metadata and aggregated
	// error messages.
	Name() string

	// Import parses raw file bytes. hint is the lower-cased filename
	// extension including the dot, or empty when unknown.
	Import(raw []byte, hint string) (*survey.Table, error)
}

// Stage names of the internal parsers, recorded as provenance.
const (
	StageCoordinateTable = "agi-stg-coords"
	StageFallbackTable   = "fallback-table"
)

// StageError is one stage's failure, retained for aggregation.
type StageError struct {
	Stage string
	Err   error
}

// AllStagesError reports that every import stage failed, carrying the
// ordered per-stage failures. Callers are never shown a single stage's
// error in isolation when others were also attempted.
type AllStagesError struct {
	Stages []StageError
}

func (e *AllStagesError) Error() string {
	parts := make([]string, len(e.Stages))
	for i, s := range e.Stages {
		parts[i] = fmt.Sprintf("%s: %v", s.Stage, s.Err)
	}
	return "all import stages failed: " + strings.Join(parts, " / ")
}

// Unwrap exposes the per-stage errors to errors.Is and errors.As.
func (e *AllStagesError) Unwrap() []error {
	errs := make([]error, len(e.Stages))
	for i, s := range e.Stages {
		errs[i] = s.Err
	}
	return errs
}

// Result is a successfully ingested survey: the normalized canonical table,
// provenance metadata, and any induced-polarization data found alongside.
type Result struct {
	Table *survey.Table
	Meta  survey.ImportMeta

	// IP is nil when the file carries no IP marker at all; that outcome is
	// deliberately distinct from an empty result.
	IP *ipgate.Result

	// Failures holds the stages that were attempted and failed before the
	// winning one, in order, for provenance recording.
	Failures []StageError
}

// Chain runs the fixed fallback order over one input buffer.
type Chain struct {
	cfg    config.Pipeline
	native []NativeImporter
}

// NewChain builds a chain over the given defaults and native importer
// adapters. The adapters run first, in the order given.
func NewChain(cfg config.Pipeline, native ...NativeImporter) *Chain {
	return &Chain{cfg: cfg, native: native}
}

// Import attempts each stage in order and returns the first adequate
// result, normalized and augmented with IP gate data. If every stage fails
// the error is an *AllStagesError listing each stage's failure.
func (c *Chain) Import(raw []byte, filename string) (*Result, error) {
	hint := strings.ToLower(filepath.Ext(filename))
	lines := parse.Lines(raw)

	type stage struct {
		name string
		run  func() (*survey.Table, error)
	}
	var stages []stage
	for _, ni := range c.native {
		ni := ni
		stages = append(stages, stage{ni.Name(), func() (*survey.Table, error) {
			return ni.Import(raw, hint)
		}})
	}
	stages = append(stages,
		stage{StageCoordinateTable, func() (*survey.Table, error) { return parse.ParseCoordinateTable(lines) }},
		stage{StageFallbackTable, func() (*survey.Table, error) { return parse.ParseTabular(lines) }},
	)

	var table *survey.Table
	var producer string
	var failures []StageError
	for _, s := range stages {
		t, err := s.run()
		if err == nil && (t == nil || len(t.Readings) == 0) {
			err = fmt.Errorf("importer returned an empty table")
		}
		if err == nil {
			err = t.Validate()
		}
		if err != nil {
			failures = append(failures, StageError{Stage: s.name, Err: err})
			continue
		}
		table, producer = t, s.name
		break
	}
	if table == nil {
		return nil, &AllStagesError{Stages: failures}
	}
	if len(failures) > 0 {
		monitoring.Logf("import: %s succeeded after %d failed stage(s)", producer, len(failures))
	}

	normalized, err := derive.New(c.cfg).Normalize(table)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Table:    normalized,
		Failures: failures,
		Meta: survey.ImportMeta{
			Importer:  producer,
			Source:    sourceKind(hint),
			NReadings: len(normalized.Readings),
			HasK:      normalized.HasK(),
			HasRhoa:   normalized.HasRhoa(),
			HasErr:    normalized.HasErr(),
		},
	}

	// IP extraction is independent of which stage produced the table.
	if ip := ipgate.Extract(raw); ip != nil {
		res.IP = ip
		if ip.NReadings == len(res.Table.Readings) {
			for i := range res.Table.Readings {
				res.Table.Readings[i].IPGates = ip.Gates[i]
			}
		}
	}
	return res, nil
}

func sourceKind(hint string) string {
	switch hint {
	case ".stg", ".srt", ".urf":
		return strings.TrimPrefix(hint, ".")
	case "":
		return "unknown"
	default:
		return strings.TrimPrefix(hint, ".")
	}
}
