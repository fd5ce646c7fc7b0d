package survey

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ipColPrefix names induced-polarization gate columns ip_1..ip_n in the
// canonical interchange CSV.
const ipColPrefix = "ip_"

// WriteCSV serializes the canonical table. Optional columns are emitted only
// when present; blank cells mark per-reading absences (ragged IP gates).
// Floats are written with the shortest representation that round-trips
// exactly.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)

	header := []string{ColA, ColB, ColM, ColN}
	hasCurrent, hasDV := t.HasCurrent(), t.HasDV()
	hasK, hasRhoa, hasErr := t.HasK(), t.HasRhoa(), t.HasErr()
	if hasCurrent {
		header = append(header, ColCurrent)
	}
	if hasDV {
		header = append(header, ColDV)
	}
	if hasK {
		header = append(header, ColK)
	}
	if hasRhoa {
		header = append(header, ColRhoa)
	}
	if hasErr {
		header = append(header, ColErr)
	}
	nGates := t.MaxGates()
	for i := 1; i <= nGates; i++ {
		header = append(header, fmt.Sprintf("%s%d", ipColPrefix, i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	rec := make([]string, 0, len(header))
	for i := range t.Readings {
		r := &t.Readings[i]
		rec = rec[:0]
		rec = append(rec, strconv.Itoa(r.A), strconv.Itoa(r.B), strconv.Itoa(r.M), strconv.Itoa(r.N))
		if hasCurrent {
			rec = append(rec, formatOpt(r.Current))
		}
		if hasDV {
			rec = append(rec, formatOpt(r.DV))
		}
		if hasK {
			rec = append(rec, formatOpt(r.K))
		}
		if hasRhoa {
			rec = append(rec, formatOpt(r.Rhoa))
		}
		if hasErr {
			rec = append(rec, formatOpt(r.Err))
		}
		for g := 0; g < nGates; g++ {
			if g < len(r.IPGates) {
				rec = append(rec, strconv.FormatFloat(r.IPGates[g], 'g', -1, 64))
			} else {
				rec = append(rec, "")
			}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatOpt(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'g', -1, 64)
}

// ReadCSV parses a table previously written by WriteCSV.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read canonical csv: %w", err)
	}
	if len(records) < 1 {
		return nil, fmt.Errorf("canonical csv is empty")
	}

	header := records[0]
	col := make(map[string]int, len(header))
	var gateCols []int
	for i, name := range header {
		if strings.HasPrefix(name, ipColPrefix) {
			gateCols = append(gateCols, i)
			continue
		}
		col[name] = i
	}
	for _, required := range []string{ColA, ColB, ColM, ColN} {
		if _, ok := col[required]; !ok {
			return nil, &MissingColumnsError{Missing: []string{required}}
		}
	}

	t := &Table{Readings: make([]Reading, 0, len(records)-1)}
	for line, rec := range records[1:] {
		var rd Reading
		var err error
		if rd.A, err = intCell(rec, col[ColA]); err != nil {
			return nil, fmt.Errorf("row %d column A: %w", line+1, err)
		}
		if rd.B, err = intCell(rec, col[ColB]); err != nil {
			return nil, fmt.Errorf("row %d column B: %w", line+1, err)
		}
		if rd.M, err = intCell(rec, col[ColM]); err != nil {
			return nil, fmt.Errorf("row %d column M: %w", line+1, err)
		}
		if rd.N, err = intCell(rec, col[ColN]); err != nil {
			return nil, fmt.Errorf("row %d column N: %w", line+1, err)
		}
		rd.Current = floatCell(rec, col, ColCurrent)
		rd.DV = floatCell(rec, col, ColDV)
		rd.K = floatCell(rec, col, ColK)
		rd.Rhoa = floatCell(rec, col, ColRhoa)
		rd.Err = floatCell(rec, col, ColErr)
		for _, gi := range gateCols {
			if gi >= len(rec) || rec[gi] == "" {
				break
			}
			v, perr := strconv.ParseFloat(rec[gi], 64)
			if perr != nil {
				return nil, fmt.Errorf("row %d gate column: %w", line+1, perr)
			}
			rd.IPGates = append(rd.IPGates, v)
		}
		t.Readings = append(t.Readings, rd)
	}
	return t, nil
}

func intCell(rec []string, i int) (int, error) {
	if i >= len(rec) {
		return 0, fmt.Errorf("short record")
	}
	return strconv.Atoi(rec[i])
}

func floatCell(rec []string, col map[string]int, name string) *float64 {
	i, ok := col[name]
	if !ok || i >= len(rec) || rec[i] == "" {
		return nil
	}
	v, err := strconv.ParseFloat(rec[i], 64)
	if err != nil {
		return nil
	}
	return &v
}
