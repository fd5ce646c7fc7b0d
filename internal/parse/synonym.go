package parse

import (
	"regexp"
	"strings"

	"github.com/ertools/surveyflow/internal/survey"
)

// Vendor exports spell header names every way imaginable. The alias sets
// below cover the spellings observed across SuperSting and related AGI
// export variants; Normalize collapses punctuation and case before lookup.

var electrodeAliases = map[string][]string{
	survey.ColA: {"ELECA", "ELECTRODEA", "TX1", "C1", "I1", "SA", "A1", "E1"},
	survey.ColB: {"ELECB", "ELECTRODEB", "TX2", "C2", "I2", "SB", "B1", "E2"},
	survey.ColM: {"ELECM", "ELECTRODEM", "RX1", "P1", "V1", "PA", "M1", "E3"},
	survey.ColN: {"ELECN", "ELECTRODEN", "RX2", "P2", "V2", "PB", "N1", "E4"},
}

var valueAliases = map[string][]string{
	survey.ColK:       {"K", "GEOM", "GEOMFAC", "GEOMETRICFACTOR", "GFACTOR"},
	survey.ColRhoa:    {"RHOA", "APPRES", "RESAPP", "APPARENTRES", "APPARENTRESISTIVITY", "RES", "RESISTIVITY"},
	survey.ColErr:     {"ERR", "ERROR", "STD", "STDEV", "STDDEV", "PERROR", "RELERR"},
	survey.ColDV:      {"DV", "DVOLT", "DELTAV", "U", "V", "VOLT", "VOLTS", "VOLTAGE"},
	survey.ColCurrent: {"I", "CUR", "CURR", "CURRENT", "AMP", "AMPS", "MA"},
}

// electrodeTargets fixes resolution order: electrode roles before value
// columns, so e.g. "V1" binds to M before "V" could bind to dV.
var electrodeTargets = []string{survey.ColA, survey.ColB, survey.ColM, survey.ColN}

var valueTargets = []string{survey.ColCurrent, survey.ColDV, survey.ColK, survey.ColRhoa, survey.ColErr}

var normStripRE = regexp.MustCompile(`[\s.\-_/()\[\]#]+`)

// Normalize collapses a header spelling for alias lookup: strip whitespace
// and separator punctuation, upper-case the rest.
func Normalize(s string) string {
	return strings.ToUpper(normStripRE.ReplaceAllString(s, ""))
}

// AliasesFor lists every spelling that resolves to the canonical target,
// the exact name first. Used both for resolution and for diagnostics when
// resolution fails.
func AliasesFor(target string) []string {
	out := []string{Normalize(target)}
	if al, ok := electrodeAliases[target]; ok {
		out = append(out, al...)
	}
	if al, ok := valueAliases[target]; ok {
		for _, a := range al {
			if a != Normalize(target) {
				out = append(out, a)
			}
		}
	}
	return out
}

// ResolveHeaderToken resolves a single header spelling to its canonical
// column name. Precedence: exact canonical match, then alias-set
// membership. Returns false when the spelling matches nothing.
func ResolveHeaderToken(tok string) (string, bool) {
	norm := Normalize(tok)
	for _, tgt := range electrodeTargets {
		for _, a := range AliasesFor(tgt) {
			if norm == a {
				return tgt, true
			}
		}
	}
	for _, tgt := range valueTargets {
		for _, a := range AliasesFor(tgt) {
			if norm == a {
				return tgt, true
			}
		}
	}
	return "", false
}

// permissiveRE matches headers like "A(1)" or "B-#": the target letter
// followed by a non-word separator.
func permissiveRE(target string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(target) + `\W`)
}

// ResolveColumns renames frame columns to their canonical names. For each
// target: exact canonical-name match first, then alias-set membership, and
// for the electrode roles a final permissive prefix pattern. An existing
// canonical column is never overwritten.
func ResolveColumns(f *Frame) {
	normIndex := make(map[string]int, len(f.Names))
	for i := len(f.Names) - 1; i >= 0; i-- {
		normIndex[Normalize(f.Names[i])] = i
	}

	resolve := func(target string, permissive bool) {
		if f.Has(target) {
			return
		}
		for _, alias := range AliasesFor(target) {
			if i, ok := normIndex[alias]; ok && f.Rename(i, target) {
				return
			}
		}
		if !permissive {
			return
		}
		re := permissiveRE(target)
		for i, name := range f.Names {
			if re.MatchString(name) && f.Rename(i, target) {
				return
			}
		}
	}

	for _, tgt := range electrodeTargets {
		resolve(tgt, true)
	}
	for _, tgt := range valueTargets {
		resolve(tgt, false)
	}
}

// CountElectrodeSynonyms reports how many of the four electrode roles are
// represented among the given header tokens. Header location uses this to
// accept a line on synonym evidence alone.
func CountElectrodeSynonyms(toks []string) int {
	found := make(map[string]bool, 4)
	for _, t := range toks {
		if tgt, ok := resolveElectrode(t); ok {
			found[tgt] = true
		}
	}
	return len(found)
}

func resolveElectrode(tok string) (string, bool) {
	norm := Normalize(tok)
	for _, tgt := range electrodeTargets {
		for _, a := range AliasesFor(tgt) {
			if norm == a {
				return tgt, true
			}
		}
	}
	return "", false
}
