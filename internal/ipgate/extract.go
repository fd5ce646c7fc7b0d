// Package ipgate extracts time-domain induced-polarization gate blocks from
// raw survey export lines. It runs independently of the tabular parsers:
// every line is scanned, not just the ones already classified as ERT data
// rows, because vendors append the IP block to otherwise unparseable lines.
package ipgate

import (
	"strconv"
	"strings"

	"github.com/ertools/surveyflow/internal/parse"
)

// Result aggregates the IP data recovered from one file. Gates is ragged:
// readings may carry different gate counts. Totals is aligned with Gates;
// an entry is nil when that reading had no IPSUM token. A file with no IP
// marker at all yields a nil Result, which is a distinct outcome from a
// marker with zero valid gates.
type Result struct {
	Mode      string      `json:"mode"` // time-domain
	GateMS    *float64    `json:"gate_ms"`
	Tau       *float64    `json:"tau"`
	NReadings int         `json:"n_readings"`
	NGatesMax int         `json:"n_gates_max"`
	Gates     [][]float64 `json:"gates"`
	Totals    []*float64  `json:"total"`
}

const (
	ipMarker    = "IP"
	ipsumMarker = "IPSUM"
)

// Extract scans raw file bytes for per-reading IP gate blocks:
//
//	... IP: <gate_ms> <tau> <g1> ... <gN> [IPSUM=<total>] [telemetry...]
//
// Gate width and time constant are optional leading numerics; the gate run
// ends at the first IPSUM token, non-numeric token, or telemetry marker
// (a token containing '=' that is not itself a number). Readings whose gate
// run comes up empty are dropped. Returns nil when no line carries an IP
// marker.
func Extract(raw []byte) *Result {
	var (
		gates  [][]float64
		totals []*float64
		gateMS *float64
		tau    *float64
		sawIP  bool
	)

	for _, line := range parse.Lines(raw) {
		s := strings.TrimSpace(line)
		if strings.HasPrefix(s, "#") {
			continue
		}
		toks := parse.Tokenize(s)

		ipIdx := -1
		for i, t := range toks {
			if strings.HasPrefix(strings.ToUpper(t), ipMarker) {
				ipIdx = i
				break
			}
		}
		if ipIdx < 0 {
			continue
		}
		sawIP = true
		rest := toks[ipIdx+1:]

		gms := leadingNumber(rest, 0)
		tc := leadingNumber(rest, 1)

		var vals []float64
		for _, t := range skip(rest, 2) {
			if strings.HasPrefix(strings.ToUpper(t), ipsumMarker) {
				break
			}
			if !parse.IsNumber(t) {
				break
			}
			v, _ := strconv.ParseFloat(t, 64)
			vals = append(vals, v)
		}

		if len(vals) == 0 {
			continue
		}
		gates = append(gates, vals)
		totals = append(totals, ipsumTotal(rest))
		if gateMS == nil {
			gateMS = gms
		}
		if tau == nil {
			tau = tc
		}
	}

	if !sawIP || len(gates) == 0 {
		return nil
	}

	// Cosmetic zeros mean "not recorded".
	if gateMS != nil && *gateMS == 0 {
		gateMS = nil
	}
	if tau != nil && *tau == 0 {
		tau = nil
	}

	maxGates := 0
	for _, g := range gates {
		if len(g) > maxGates {
			maxGates = len(g)
		}
	}
	return &Result{
		Mode:      "TD",
		GateMS:    gateMS,
		Tau:       tau,
		NReadings: len(gates),
		NGatesMax: maxGates,
		Gates:     gates,
		Totals:    totals,
	}
}

// ipsumTotal reads the IPSUM value either from an inline KEY=VALUE suffix
// or, failing that, from the token following the marker.
func ipsumTotal(rest []string) *float64 {
	for i, t := range rest {
		if !strings.HasPrefix(strings.ToUpper(t), ipsumMarker) {
			continue
		}
		if eq := strings.IndexByte(t, '='); eq >= 0 {
			if v, err := strconv.ParseFloat(t[eq+1:], 64); err == nil {
				return &v
			}
			return nil
		}
		if i+1 < len(rest) && parse.IsNumber(rest[i+1]) {
			v, _ := strconv.ParseFloat(rest[i+1], 64)
			return &v
		}
		return nil
	}
	return nil
}

func leadingNumber(rest []string, i int) *float64 {
	if i >= len(rest) || !parse.IsNumber(rest[i]) {
		return nil
	}
	v, _ := strconv.ParseFloat(rest[i], 64)
	return &v
}

func skip(toks []string, n int) []string {
	if len(toks) <= n {
		return nil
	}
	return toks[n:]
}
