package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectSeparator(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Separator
	}{
		{"comma dominated", "1,2,3,4,0.5", SepComma},
		{"semicolon dominated", "1;2;3;4;0.5", SepSemicolon},
		{"tab dominated", "1\t2\t3\t4\t0.5", SepTab},
		{"whitespace", "1 2 3 4 0.5", SepWhitespace},
		{"too few commas", "1,2 3 4 5", SepWhitespace},
		{"comma beats semicolon", "a,b;c,d;e,f;g", SepComma},
		{"empty line", "", SepWhitespace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSeparator(tt.line))
		})
	}
}

func TestSplitFields(t *testing.T) {
	t.Run("explicit separator preserves empty cells", func(t *testing.T) {
		got := SplitFields("1,,3,4", SepComma)
		assert.Equal(t, []string{"1", "", "3", "4"}, got)
	})

	t.Run("explicit separator trims cell padding", func(t *testing.T) {
		got := SplitFields(" 1 ; 2 ;3", SepSemicolon)
		assert.Equal(t, []string{"1", "2", "3"}, got)
	})

	t.Run("whitespace collapses runs", func(t *testing.T) {
		got := SplitFields("  1   2\t3  ", SepWhitespace)
		assert.Equal(t, []string{"1", "2", "3"}, got)
	})
}

func TestTokenizeMixedSeparators(t *testing.T) {
	got := Tokenize(" 1, 2;3\t4  5 ")
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, got)

	assert.Nil(t, Tokenize("   "))
}
