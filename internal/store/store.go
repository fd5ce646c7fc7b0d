// Package store is the boundary persistence layer of the ingestion
// pipeline: content-addressed raw uploads, the immutable canonical table
// derived from each, import provenance events, and IP extraction results.
// Everything upstream of this package is a pure transformation; this is
// where the results land.
package store

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/ertools/surveyflow/internal/ipgate"
	"github.com/ertools/surveyflow/internal/monitoring"
	"github.com/ertools/surveyflow/internal/survey"
)

// Store wraps the SQLite database holding uploads and derived artifacts.
type Store struct {
	*sql.DB
}

// Open opens (creating if necessary) the store at path and brings the
// schema up to date.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &Store{db}
	if err := s.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// PutUpload stores raw survey bytes under their content-addressed id and
// returns it. Re-uploading identical bytes is a no-op: existed reports
// whether the content was already present.
func (s *Store) PutUpload(raw []byte, ext string) (fileID string, existed bool, err error) {
	fileID = survey.FileID(raw)
	ext = strings.ToLower(ext)

	res, err := s.Exec(`INSERT OR IGNORE INTO uploads (file_id, ext, raw) VALUES (?, ?, ?)`,
		fileID, ext, raw)
	if err != nil {
		return "", false, fmt.Errorf("store upload %s: %w", fileID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return "", false, err
	}
	if n == 0 {
		return fileID, true, nil
	}
	monitoring.Logf("store: new upload %s (%d bytes)", fileID, len(raw))
	return fileID, false, nil
}

// GetUpload returns the raw bytes and extension of a stored upload.
func (s *Store) GetUpload(fileID string) ([]byte, string, error) {
	var raw []byte
	var ext string
	err := s.QueryRow(`SELECT raw, ext FROM uploads WHERE file_id = ?`, fileID).Scan(&raw, &ext)
	if err == sql.ErrNoRows {
		return nil, "", fmt.Errorf("upload %s not found", fileID)
	}
	if err != nil {
		return nil, "", err
	}
	return raw, ext, nil
}

// PutTable stores the canonical table for an upload. The table is
// content-derived and treated as immutable: once written under a file_id it
// is never replaced, so storing again is a no-op.
func (s *Store) PutTable(fileID string, t *survey.Table, meta survey.ImportMeta) error {
	var buf bytes.Buffer
	if err := survey.WriteCSV(&buf, t); err != nil {
		return fmt.Errorf("serialize table %s: %w", fileID, err)
	}

	_, err := s.Exec(`INSERT OR IGNORE INTO survey_tables
		(file_id, importer, source, n_readings, has_k, has_rhoa, has_err, csv)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		fileID, meta.Importer, meta.Source, meta.NReadings,
		meta.HasK, meta.HasRhoa, meta.HasErr, buf.String())
	if err != nil {
		return fmt.Errorf("store table %s: %w", fileID, err)
	}
	return nil
}

// GetTable loads the canonical table and its provenance for an upload.
func (s *Store) GetTable(fileID string) (*survey.Table, survey.ImportMeta, error) {
	var meta survey.ImportMeta
	var csvText string
	err := s.QueryRow(`SELECT importer, source, n_readings, has_k, has_rhoa, has_err, csv
		FROM survey_tables WHERE file_id = ?`, fileID).
		Scan(&meta.Importer, &meta.Source, &meta.NReadings, &meta.HasK, &meta.HasRhoa, &meta.HasErr, &csvText)
	if err == sql.ErrNoRows {
		return nil, meta, fmt.Errorf("canonical table for %s not found", fileID)
	}
	if err != nil {
		return nil, meta, err
	}
	t, err := survey.ReadCSV(strings.NewReader(csvText))
	if err != nil {
		return nil, meta, fmt.Errorf("decode stored table %s: %w", fileID, err)
	}
	return t, meta, nil
}

// ImportEvent is one recorded import attempt outcome.
type ImportEvent struct {
	EventID   string
	FileID    string
	Stage     string
	OK        bool
	Detail    string
	CreatedAt time.Time
}

// RecordImportEvent logs an import attempt for a file. stageErr nil marks
// success; otherwise its message is retained as the event detail.
func (s *Store) RecordImportEvent(fileID, stage string, stageErr error) (string, error) {
	eventID := uuid.NewString()
	detail := ""
	ok := true
	if stageErr != nil {
		ok = false
		detail = stageErr.Error()
	}
	_, err := s.Exec(`INSERT INTO import_events (event_id, file_id, stage, ok, detail) VALUES (?, ?, ?, ?, ?)`,
		eventID, fileID, stage, ok, detail)
	if err != nil {
		return "", fmt.Errorf("record import event: %w", err)
	}
	return eventID, nil
}

// ImportEvents returns the recorded attempts for a file, oldest first.
func (s *Store) ImportEvents(fileID string) ([]ImportEvent, error) {
	rows, err := s.Query(`SELECT event_id, file_id, stage, ok, detail, created_at
		FROM import_events WHERE file_id = ? ORDER BY rowid`, fileID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ImportEvent
	for rows.Next() {
		var ev ImportEvent
		if err := rows.Scan(&ev.EventID, &ev.FileID, &ev.Stage, &ev.OK, &ev.Detail, &ev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// PutIPResult stores the extracted IP data for an upload, immutable like
// the canonical table.
func (s *Store) PutIPResult(fileID string, r *ipgate.Result) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("serialize ip result %s: %w", fileID, err)
	}
	_, err = s.Exec(`INSERT OR IGNORE INTO ip_results (file_id, payload) VALUES (?, ?)`,
		fileID, string(payload))
	if err != nil {
		return fmt.Errorf("store ip result %s: %w", fileID, err)
	}
	return nil
}

// GetIPResult loads stored IP data. Returns nil with no error when the
// upload had no IP data recorded, preserving the "no IP data" outcome.
func (s *Store) GetIPResult(fileID string) (*ipgate.Result, error) {
	var payload string
	err := s.QueryRow(`SELECT payload FROM ip_results WHERE file_id = ?`, fileID).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var r ipgate.Result
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("decode ip result %s: %w", fileID, err)
	}
	return &r, nil
}
