package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines_StripsBOMAndNULs(t *testing.T) {
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("A B M N\n1 2\x003 4\n")...)

	lines := Lines(raw)
	require.Len(t, lines, 2)
	assert.Equal(t, "A B M N", lines[0], "leading byte-order mark must not survive into the first line")
	assert.Equal(t, "1 23 4", lines[1])
}

func TestLines_DropsBlankAndCarriageReturns(t *testing.T) {
	lines := Lines([]byte("one\r\n\r\n   \ntwo\r\n"))
	assert.Equal(t, []string{"one", "two"}, lines)
}

func TestTokenize(t *testing.T) {
	cases := []struct {
		line string
		want []string
	}{
		{"1, 2;3\t4", []string{"1", "2", "3", "4"}},
		{"  a   b  ", []string{"a", "b"}},
		{"", nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Tokenize(tc.line), "line %q", tc.line)
	}
}
