package literal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func lit(s string, complete bool) Literal {
	return NewLiteral([]byte(s), complete)
}

func TestSeqMinimize(t *testing.T) {
	seq := NewSeq(lit("foobar", true), lit("foo", true), lit("bar", true), lit("foo", true))
	seq.Minimize()

	assert.Equal(t, 2, seq.Len())
	assert.Equal(t, lit("bar", true), seq.Get(0))
	assert.Equal(t, lit("foo", false), seq.Get(1), "absorbing foobar makes foo inexact")

	var empty *Seq
	empty.Minimize()
	assert.True(t, empty.IsEmpty())
}

func TestSeqLongestCommonPrefix(t *testing.T) {
	tests := []struct {
		name string
		seq  *Seq
		want string
	}{
		{"shared", NewSeq(lit("hello", true), lit("help", true), lit("hero", true)), "he"},
		{"disjoint", NewSeq(lit("abc", true), lit("def", true)), ""},
		{"single", NewSeq(lit("abc", true)), "abc"},
		{"empty", NewSeq(), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(tt.seq.LongestCommonPrefix()))
		})
	}
}

func TestSeqAccessors(t *testing.T) {
	seq := NewSeq(lit("ab", true), lit("cdef", false))
	assert.Equal(t, 2, seq.MinLen())
	assert.Equal(t, 4, seq.MaxLen())
	assert.False(t, seq.AllComplete())
	assert.Equal(t, [][]byte{[]byte("ab"), []byte("cdef")}, seq.Literals())
	assert.Equal(t, "literal{ab, complete=true}", seq.Get(0).String())
	assert.Equal(t, 4, seq.Get(1).Len())

	empty := NewSeq()
	assert.Zero(t, empty.MinLen())
	assert.Zero(t, empty.MaxLen())
	assert.False(t, empty.AllComplete())
	assert.Nil(t, empty.Literals())
}
