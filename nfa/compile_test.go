package nfa

import (
	"regexp/syntax"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanMatchEmpty(t *testing.T) {
	tests := []struct {
		pattern string
		want    bool
	}{
		{`a`, false},
		{`a*`, true},
		{`a?`, true},
		{`a+`, false},
		{`(a*)+`, true},
		{`a{0,2}`, true},
		{`a{2}`, false},
		{`a|b*`, true},
		{`a|b`, false},
		{`a*b*`, true},
		{`a*b`, false},
		{`^$`, true},
		{`\b`, true},
		{``, true},
		{`[a-z]`, false},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re, err := syntax.Parse(tt.pattern, syntax.Perl)
			require.NoError(t, err)
			assert.Equal(t, tt.want, canMatchEmpty(re))
		})
	}
}

// A star over a sub-pattern that matches empty must still record the
// sub-pattern's groups on an empty iteration.
func TestEmptyStarCaptures(t *testing.T) {
	tests := []struct {
		pattern  string
		haystack string
		want     []int
	}{
		{`(a*)*`, "b", []int{0, 0, 0, 0}},
		{`(a*)*`, "", []int{0, 0, 0, 0}},
		{`(a*)+`, "b", []int{0, 0, 0, 0}},
		{`(a?)*`, "b", []int{0, 0, 0, 0}},
		{`(a*)*?`, "b", []int{0, 0, -1, -1}},
		{`x(a*)*y`, "xy", []int{0, 2, 1, 1}},
		{`(a)*`, "b", []int{0, 0, -1, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.haystack, func(t *testing.T) {
			nfa := mustCompile(t, tt.pattern)
			assert.Equal(t, tt.want, pikeFind(t, nfa, tt.haystack, 0, false))

			slots := make([]int, nfa.SlotCount())
			bt := NewBoundedBacktracker(nfa, 0)
			require.True(t, bt.Search(NewBacktrackerState(), []byte(tt.haystack), 0, false, slots))
			assert.Equal(t, tt.want, slots)
		})
	}
}

func TestClassTrie(t *testing.T) {
	t.Run("shared prefix", func(t *testing.T) {
		var trie classTrie
		require.True(t, trie.insert([]byteRange{{0xC3, 0xC3}, {0x89, 0x89}}))
		require.True(t, trie.insert([]byteRange{{0xC3, 0xC3}, {0xA9, 0xA9}}))
		require.True(t, trie.insert([]byteRange{{'a', 'a'}}))
		require.Len(t, trie.roots, 2)
		assert.Equal(t, byte('a'), trie.roots[0].lo)
		assert.Len(t, trie.roots[1].children, 2)
	})
	t.Run("partial overlap", func(t *testing.T) {
		var trie classTrie
		require.True(t, trie.insert([]byteRange{{0x80, 0xC3}}))
		assert.False(t, trie.insert([]byteRange{{0xC3, 0xC3}, {0xA9, 0xA9}}))
	})
	t.Run("prefix of another", func(t *testing.T) {
		var trie classTrie
		require.True(t, trie.insert([]byteRange{{0xC3, 0xC3}}))
		assert.False(t, trie.insert([]byteRange{{0xC3, 0xC3}, {0xA9, 0xA9}}))
	})
}

func TestUnicodeClassIsCompact(t *testing.T) {
	nfa := mustCompile(t, `\w`)
	assert.Less(t, nfa.States(), 2000, "continuation byte tails should be shared")

	got := pikeFind(t, nfa, "!ж", 0, false)
	require.NotNil(t, got)
	assert.Equal(t, []int{1, 3}, got[:2])
}

func TestSplitByteClass(t *testing.T) {
	tests := []struct {
		name       string
		ranges     []rune
		wantSingle []Transition
		wantWide   [][2]rune
	}{
		{
			name:       "ascii",
			ranges:     []rune{'a', 'c'},
			wantSingle: []Transition{{Lo: 'a', Hi: 'c'}},
		},
		{
			name:       "wide member",
			ranges:     []rune{'a', 'a', 0x2603, 0x2603},
			wantSingle: []Transition{{Lo: 'a', Hi: 'a'}},
			wantWide:   [][2]rune{{0x2603, 0x2603}},
		},
		{
			name:       "raw bytes",
			ranges:     []rune{rawByteMin, rawByteMin + 1},
			wantSingle: []Transition{{Lo: 0x80, Hi: 0x81}},
		},
		{
			name:       "everything",
			ranges:     []rune{0, 0x10FFFF},
			wantSingle: []Transition{{Lo: 0, Hi: 0x7F}, {Lo: 0x80, Hi: 0xFF}},
		},
		{
			name:       "all but one raw byte",
			ranges:     []rune{0, RawByteBase + 0xE8, RawByteBase + 0xEA, 0x10FFFF},
			wantSingle: []Transition{{Lo: 0, Hi: 0x7F}, {Lo: 0x80, Hi: 0xE8}, {Lo: 0xEA, Hi: 0xFF}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			single, wide := splitByteClass(tt.ranges)
			assert.Equal(t, tt.wantSingle, single)
			assert.Equal(t, tt.wantWide, wide)
		})
	}
}

func TestUnicodeWordBoundaryLook(t *testing.T) {
	h := []byte("aé b\xff")
	tests := []struct {
		look Look
		pos  int
		want bool
	}{
		{LookWordBoundaryUnicode, 0, true},
		{LookWordBoundaryUnicode, 1, false},
		{LookWordBoundaryUnicode, 3, true},
		{LookNoWordBoundaryUnicode, 1, true},
		{LookWordBoundary, 1, true},
		{LookWordBoundaryUnicode, 5, true},
		{LookWordBoundaryUnicode, 6, false},
		{LookNoWordBoundaryUnicode, 6, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.look.Matches(h, tt.pos), "%s at %d", tt.look, tt.pos)
	}
	assert.Equal(t, "WordBoundaryUnicode", LookWordBoundaryUnicode.String())
	assert.Equal(t, "NoWordBoundaryUnicode", LookNoWordBoundaryUnicode.String())
}
