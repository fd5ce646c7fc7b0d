package parse

import "strings"

// Separator identifies the field delimiter of a tabular survey file.
// SepWhitespace means "any run of spaces or tabs".
type Separator string

const (
	SepComma      Separator = ","
	SepSemicolon  Separator = ";"
	SepTab        Separator = "\t"
	SepWhitespace Separator = ""
)

// DetectSeparator infers the delimiter of a line: the first of comma,
// semicolon, tab (in that priority order) occurring at least three times
// wins; otherwise fields are taken to be whitespace-separated.
func DetectSeparator(line string) Separator {
	for _, sep := range []Separator{SepComma, SepSemicolon, SepTab} {
		if strings.Count(line, string(sep)) >= 3 {
			return sep
		}
	}
	return SepWhitespace
}

// SplitFields splits a line using a detected separator. For explicit
// delimiters, empty cells are preserved (they mark missing values); for
// whitespace separation there is no such thing as an empty cell.
func SplitFields(line string, sep Separator) []string {
	if sep == SepWhitespace {
		return strings.Fields(line)
	}
	fields := strings.Split(line, string(sep))
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}
