// Package surveyflow ingests ERT/IP survey export files of inconsistent
// vendor formatting into one canonical tabular schema. Raw bytes go through
// a fixed fallback chain of importers and parsers; the winning table is
// normalized, stored content-addressed, and returned with provenance.
package surveyflow

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ertools/surveyflow/internal/config"
	"github.com/ertools/surveyflow/internal/importer"
	"github.com/ertools/surveyflow/internal/ipgate"
	"github.com/ertools/surveyflow/internal/monitoring"
	"github.com/ertools/surveyflow/internal/store"
	"github.com/ertools/surveyflow/internal/survey"
)

// Re-exported so embedding programs can use the pipeline without reaching
// into internal packages.
type (
	// Table is the canonical survey table.
	Table = survey.Table
	// Reading is one four-point measurement row.
	Reading = survey.Reading
	// Summary is the inspection view of a table.
	Summary = survey.Summary
	// ImportMeta records which importer produced a table and what it holds.
	ImportMeta = survey.ImportMeta
	// IPResult is extracted induced-polarization data.
	IPResult = ipgate.Result
	// NativeImporter adapts an external import library into the chain.
	NativeImporter = importer.NativeImporter
	// Config holds the overridable pipeline defaults.
	Config = config.Pipeline
)

// DefaultConfig returns the pipeline defaults.
func DefaultConfig() Config { return config.Default() }

// LoadConfig reads defaults with partial overrides from a JSON file.
func LoadConfig(path string) (Config, error) { return config.Load(path) }

// Import runs the fallback chain over raw file bytes without touching any
// store. filename supplies the extension hint and may be empty.
func Import(cfg Config, raw []byte, filename string, native ...NativeImporter) (*importer.Result, error) {
	return importer.NewChain(cfg, native...).Import(raw, filename)
}

// Pipeline couples the import chain with the boundary store: every ingested
// file is deduplicated by content, its canonical table persisted immutably,
// and each import attempt recorded as a provenance event.
type Pipeline struct {
	cfg   Config
	chain *importer.Chain
	store *store.Store
}

// Open opens (creating if necessary) the store at dbPath and returns a
// pipeline over it. Native importer adapters run first, in the order given.
func Open(dbPath string, cfg Config, native ...NativeImporter) (*Pipeline, error) {
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open survey store: %w", err)
	}
	return &Pipeline{cfg: cfg, chain: importer.NewChain(cfg, native...), store: s}, nil
}

// Close releases the underlying store.
func (p *Pipeline) Close() error { return p.store.Close() }

// IngestResult is the outcome of ingesting one file.
type IngestResult struct {
	FileID  string     `json:"file_id"`
	Reused  bool       `json:"reused"`
	Table   *Table     `json:"-"`
	Meta    ImportMeta `json:"meta"`
	Summary Summary    `json:"summary"`

	// IP is nil when the file carried no induced-polarization data.
	IP *IPResult `json:"ip,omitempty"`
}

// Ingest stores raw file bytes, runs the import chain, and persists the
// canonical table. Re-ingesting identical bytes returns the stored result
// without re-parsing. When every stage fails, the failures are recorded as
// provenance events and the returned error lists each stage's message.
func (p *Pipeline) Ingest(raw []byte, filename string) (*IngestResult, error) {
	ext := filepath.Ext(filename)
	fileID, existed, err := p.store.PutUpload(raw, ext)
	if err != nil {
		return nil, err
	}
	if existed {
		if res, err := p.Lookup(fileID); err == nil {
			res.Reused = true
			return res, nil
		}
		// Upload row exists but no table: a previous ingest failed. Retry.
	}

	res, err := p.chain.Import(raw, filename)
	if err != nil {
		p.recordFailures(fileID, err)
		return nil, err
	}
	for _, f := range res.Failures {
		if _, evErr := p.store.RecordImportEvent(fileID, f.Stage, f.Err); evErr != nil {
			return nil, evErr
		}
	}
	if _, err := p.store.RecordImportEvent(fileID, res.Meta.Importer, nil); err != nil {
		return nil, err
	}
	if err := p.store.PutTable(fileID, res.Table, res.Meta); err != nil {
		return nil, err
	}
	if res.IP != nil {
		if err := p.store.PutIPResult(fileID, res.IP); err != nil {
			return nil, err
		}
	}

	return &IngestResult{
		FileID:  fileID,
		Table:   res.Table,
		Meta:    res.Meta,
		Summary: survey.Summarize(res.Table),
		IP:      res.IP,
	}, nil
}

// Lookup loads a previously ingested file by its content id.
func (p *Pipeline) Lookup(fileID string) (*IngestResult, error) {
	t, meta, err := p.store.GetTable(fileID)
	if err != nil {
		return nil, err
	}
	ip, err := p.store.GetIPResult(fileID)
	if err != nil {
		return nil, err
	}
	return &IngestResult{
		FileID:  fileID,
		Table:   t,
		Meta:    meta,
		Summary: survey.Summarize(t),
		IP:      ip,
	}, nil
}

// History returns the recorded import attempts for a file, oldest first.
func (p *Pipeline) History(fileID string) ([]store.ImportEvent, error) {
	return p.store.ImportEvents(fileID)
}

// FileID computes the content-addressed identity of raw file bytes.
func FileID(raw []byte) string { return survey.FileID(raw) }

// recordFailures persists the per-stage failures of a lost import. The
// ingest error itself is what the caller acts on; the event log is advisory
// here, so recording problems are logged rather than returned.
func (p *Pipeline) recordFailures(fileID string, err error) {
	var all *importer.AllStagesError
	if !errors.As(err, &all) {
		return
	}
	for _, f := range all.Stages {
		if _, evErr := p.store.RecordImportEvent(fileID, f.Stage, f.Err); evErr != nil {
			monitoring.Logf("ingest %s: could not record %s failure: %v", fileID, f.Stage, evErr)
		}
	}
}
