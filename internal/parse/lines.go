// Package parse recovers structured electrode-topology and measurement data
// from vendor survey export files. Every parser in this package is a pure
// function over an immutable line slice: separator detection, header
// location, synonym resolution, integer-likeness inference, the fixed-offset
// coordinate-table layout, and the headerless generic fallback.
package parse

import (
	"regexp"
	"strings"
)

// Lines splits raw upload bytes into trimmed, non-blank lines. Vendor
// exports arrive in assorted single-byte encodings; the byte content of the
// numeric fields is ASCII either way, so decoding is tolerant: a UTF-8 BOM
// and stray NUL bytes are stripped rather than rejected.
func Lines(raw []byte) []string {
	text := string(raw)
	text = strings.ReplaceAll(text, "\uFEFF", "")
	text = strings.ReplaceAll(text, "\x00", "")

	var out []string
	for _, ln := range strings.Split(text, "\n") {
		ln = strings.TrimRight(ln, "\r")
		if strings.TrimSpace(ln) != "" {
			out = append(out, ln)
		}
	}
	return out
}

var tokenSplitRE = regexp.MustCompile(`[,\s;]+`)

// Tokenize splits a line on any run of commas, semicolons, or whitespace,
// dropping empty tokens. This is the separator-agnostic tokenizer used by
// the row classifier, the coordinate-table parser, and the IP extractor.
func Tokenize(line string) []string {
	var out []string
	for _, t := range tokenSplitRE.Split(strings.TrimSpace(line), -1) {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
