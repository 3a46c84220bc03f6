package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/coregx/rure/literal"
)

// ahoCorasickPrefilter searches for many literals at once with an
// Aho-Corasick automaton.
//
// The automaton reports some occurrence, not necessarily the leftmost one.
// No occurrence can start before (end of the reported one) - (longest
// literal), so that bound is returned as the candidate. The caller verifies
// candidates one position at a time, which visits the leftmost occurrence
// before any later one.
type ahoCorasickPrefilter struct {
	auto     *ahocorasick.Automaton
	maxLen   int
	patterns int
	heap     int
}

// newAhoCorasickPrefilter returns nil when the automaton cannot be built.
func newAhoCorasickPrefilter(seq *literal.Seq) Prefilter {
	builder := ahocorasick.NewBuilder()
	heap := 0
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		builder.AddPattern(lit.Bytes)
		heap += len(lit.Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{
		auto:     auto,
		maxLen:   seq.MaxLen(),
		patterns: seq.Len(),
		heap:     heap,
	}
}

// Find implements Prefilter.Find.
func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	m := p.auto.Find(haystack, start)
	if m == nil {
		return -1
	}
	pos := m.End - p.maxLen
	if pos < start {
		pos = start
	}
	return pos
}

// IsComplete implements Prefilter.IsComplete.
func (p *ahoCorasickPrefilter) IsComplete() bool {
	return false
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *ahoCorasickPrefilter) LiteralLen() int {
	return 0
}

// HeapBytes implements Prefilter.HeapBytes. It counts the pattern bytes; the
// automaton does not report its own size.
func (p *ahoCorasickPrefilter) HeapBytes() int {
	return p.heap
}

func (p *ahoCorasickPrefilter) String() string {
	return "aho-corasick"
}
