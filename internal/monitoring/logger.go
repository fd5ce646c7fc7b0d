// Package monitoring is the seam between the ingestion pipeline and its
// host program's logging. The pipeline packages emit a handful of boundary
// diagnostics (new uploads, late-stage import successes); a host that wants
// them elsewhere than stderr, or not at all, swaps the sink here.
package monitoring

import "log"

// nop discards a diagnostic line.
func nop(string, ...interface{}) {}

// Logf emits one pipeline diagnostic line. Defaults to log.Printf.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger redirects pipeline diagnostics to f. A nil f mutes them.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		f = nop
	}
	Logf = f
}
