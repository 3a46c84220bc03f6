package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coregx/rure/flags"
)

func TestStripVerbose(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"plain", "abc", "abc"},
		{"spaces", "a b  c", "abc"},
		{"tabs and newlines", "a\tb\nc\r", "abc"},
		{"comment", "abc # trailing comment", "abc"},
		{"comment then next line", "a # one\nb # two\nc", "abc"},
		{"escaped space", `a\ b`, `a\ b`},
		{"escaped hash", `a\#b`, `a\#b`},
		{"class keeps space", "[a b]", "[a b]"},
		{"class keeps hash", "[#] x", "[#]x"},
		{"negated class", "[^ ] x", "[^ ]x"},
		{"bracket first in class", "[] ] x", "[] ]x"},
		{"negated bracket first", "[^] ] x", "[^] ]x"},
		{"posix class", "[[:alpha:] ] x", "[[:alpha:] ]x"},
		{"escaped bracket in class", `[\] ] x`, `[\] ]x`},
		{"trailing backslash", `a\`, `a\`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripVerbose(tt.pattern))
		})
	}
}

// Patterns compiled with IgnoreWhitespace behave like their stripped form.
func TestIgnoreWhitespaceEquivalence(t *testing.T) {
	tests := []struct {
		verbose string
		plain   string
	}{
		{"a b c", "abc"},
		{"(\\w+) \\s* = \\s* (\\d+)  # key = value", `(\w+)\s*=\s*(\d+)`},
		{"[ ]+ x", "[ ]+x"},
		{"a\\ b", "a b"},
	}
	haystacks := []string{"abc", "key = 42", "a b", "   x", "xyz", ""}

	for _, tt := range tests {
		t.Run(tt.plain, func(t *testing.T) {
			v, err := Compile(tt.verbose, flags.Default|flags.IgnoreWhitespace, DefaultConfig())
			require.NoError(t, err)
			p, err := Compile(tt.plain, flags.Default, DefaultConfig())
			require.NoError(t, err)

			for _, h := range haystacks {
				vs, ve, vok := v.FindAt([]byte(h), 0)
				ps, pe, pok := p.FindAt([]byte(h), 0)
				assert.Equal(t, []any{ps, pe, pok}, []any{vs, ve, vok}, "haystack %q", h)
			}
		})
	}
}
