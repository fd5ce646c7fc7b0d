package survey

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoNumericBlock is returned by the headerless fallback when no window of
// consecutive numeric-looking lines exists anywhere in the file.
var ErrNoNumericBlock = errors.New("could not locate a numeric data block")

// ErrNoCoordinateRows is returned by the coordinate-table parser when no
// line in the file matches the fixed-offset layout.
var ErrNoCoordinateRows = errors.New("no coordinate-table rows matched")

// MissingColumnsError reports required fields that remained absent after all
// parsing and derivation. Tried lists the header spellings that were
// attempted, retained for diagnostics.
type MissingColumnsError struct {
	Missing []string
	Tried   []string
}

func (e *MissingColumnsError) Error() string {
	msg := "missing required columns: " + strings.Join(e.Missing, ", ")
	if len(e.Tried) > 0 {
		msg += " (tried: " + strings.Join(e.Tried, ", ") + ")"
	}
	return msg
}

// AmbiguousElectrodeError reports that neither header synonyms nor
// positional integer-likeness could pin down the four electrode columns.
type AmbiguousElectrodeError struct {
	Resolved int // electrode roles matched by header synonyms
	IntLike  int // integer-like columns found positionally
}

func (e *AmbiguousElectrodeError) Error() string {
	return fmt.Sprintf("cannot infer A/B/M/N: %d roles resolved by header, %d integer-like columns (need 4)",
		e.Resolved, e.IntLike)
}
