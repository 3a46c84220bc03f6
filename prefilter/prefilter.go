// Package prefilter provides fast candidate filtering for regex search using
// extracted literal sequences.
//
// A prefilter quickly skips positions in the haystack that cannot start a
// match. The search engine runs an anchored NFA search only at the candidate
// positions a prefilter reports.
//
// The builder selects a strategy from the extracted prefix literals:
//   - Single byte → memchr
//   - Single substring (or a long shared prefix) → memmem
//   - Two or three distinct first bytes → memchr2/memchr3
//   - Anything else → Aho-Corasick automaton
//
// Example usage:
//
//	n, _ := nfa.NewDefaultCompiler().Compile("(hello|world)")
//	prefixes := literal.New(literal.DefaultConfig()).ExtractPrefixes(n)
//	pf := prefilter.NewBuilder(prefixes).Build()
//	pos := pf.Find([]byte("foo hello bar world baz"), 0)
//	// pos == 4 (position of "hello")
package prefilter

import (
	"github.com/coregx/rure/literal"
	"github.com/coregx/rure/simd"
)

// Prefilter is used to quickly find candidate match positions before running
// the full regex engine.
type Prefilter interface {
	// Find returns a candidate position at or after start, or -1 when no
	// match can begin at or after start. Every position in [start, result)
	// is guaranteed not to begin a match; the result itself must be
	// verified with the full engine.
	Find(haystack []byte, start int) int

	// IsComplete returns true if a prefilter hit at a candidate is already a
	// full match of length LiteralLen().
	IsComplete() bool

	// LiteralLen returns the length of the literal when IsComplete() is
	// true, 0 otherwise.
	LiteralLen() int

	// HeapBytes returns the number of bytes of heap memory used by this prefilter.
	HeapBytes() int

	// String names the strategy for logging.
	String() string
}

// Builder constructs the best prefilter from extracted prefix literals.
type Builder struct {
	prefixes  *literal.Seq
	minLitLen int
}

// NewBuilder creates a new prefilter builder from extracted prefix literals.
// A nil or empty sequence builds no prefilter.
func NewBuilder(prefixes *literal.Seq) *Builder {
	return &Builder{prefixes: prefixes, minLitLen: 1}
}

// WithMinLiteralLen rejects literal sets whose shortest literal is shorter
// than n bytes.
func (b *Builder) WithMinLiteralLen(n int) *Builder {
	b.minLitLen = n
	return b
}

// Build constructs the best prefilter for the given literals.
// Returns nil if no effective prefilter can be built.
func (b *Builder) Build() Prefilter {
	seq := b.prefixes
	if seq.IsEmpty() || seq.MinLen() < b.minLitLen || seq.MinLen() == 0 {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 1 {
			return newMemchrPrefilter(lit.Bytes[0], lit.Complete)
		}
		return newMemmemPrefilter(lit.Bytes, lit.Complete)
	}

	// A shared prefix of at least two bytes is as selective as the set.
	if lcp := seq.LongestCommonPrefix(); len(lcp) >= 2 {
		return newMemmemPrefilter(lcp, false)
	}

	if first := firstBytes(seq); len(first) <= 3 {
		return newByteSetPrefilter(first)
	}

	if pf := newAhoCorasickPrefilter(seq); pf != nil {
		return pf
	}
	return nil
}

// firstBytes returns the distinct first bytes of the literals in order of
// first appearance.
func firstBytes(seq *literal.Seq) []byte {
	var seen [256]bool
	var out []byte
	for i := 0; i < seq.Len(); i++ {
		b := seq.Get(i).Bytes[0]
		if !seen[b] {
			seen[b] = true
			out = append(out, b)
		}
	}
	return out
}

// memchrPrefilter wraps simd.Memchr as a Prefilter.
//
// Example patterns:
//
//	/a.*/         → search for 'a'
//	/[a]b?/       → search for 'a'
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func newMemchrPrefilter(needle byte, complete bool) Prefilter {
	return &memchrPrefilter{
		needle:   needle,
		complete: complete,
	}
}

// Find implements Prefilter.Find using simd.Memchr.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memchr(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memchrPrefilter) HeapBytes() int {
	return 0
}

func (p *memchrPrefilter) String() string {
	return "memchr"
}

// memmemPrefilter wraps simd.Memmem as a Prefilter.
//
// Example patterns:
//
//	/hello/       → search for "hello"
//	/foo|foobar/  → after minimization → search for "foo"
//	/abc[0-9]/    → shared prefix "abc"
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

// newMemmemPrefilter copies needle to prevent aliasing.
func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	needleCopy := make([]byte, len(needle))
	copy(needleCopy, needle)

	return &memmemPrefilter{
		needle:   needleCopy,
		complete: complete,
	}
}

// Find implements Prefilter.Find using simd.Memmem.
func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := simd.Memmem(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *memmemPrefilter) HeapBytes() int {
	return len(p.needle)
}

func (p *memmemPrefilter) String() string {
	return "memmem"
}

// byteSetPrefilter finds the first occurrence of any of two or three bytes
// with simd.Memchr2 / simd.Memchr3.
//
// Example patterns:
//
//	/foo|bar/     → search for 'f' or 'b'
//	/(?i)x[0-9]/  → search for 'x' or 'X'
type byteSetPrefilter struct {
	bytes []byte
}

func newByteSetPrefilter(set []byte) Prefilter {
	switch len(set) {
	case 1:
		return newMemchrPrefilter(set[0], false)
	default:
		b := make([]byte, len(set))
		copy(b, set)
		return &byteSetPrefilter{bytes: b}
	}
}

// Find implements Prefilter.Find using simd.Memchr2 or simd.Memchr3.
func (p *byteSetPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	var idx int
	if len(p.bytes) == 2 {
		idx = simd.Memchr2(haystack[start:], p.bytes[0], p.bytes[1])
	} else {
		idx = simd.Memchr3(haystack[start:], p.bytes[0], p.bytes[1], p.bytes[2])
	}
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *byteSetPrefilter) IsComplete() bool {
	return false
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *byteSetPrefilter) LiteralLen() int {
	return 0
}

// HeapBytes implements Prefilter.HeapBytes.
func (p *byteSetPrefilter) HeapBytes() int {
	return len(p.bytes)
}

func (p *byteSetPrefilter) String() string {
	if len(p.bytes) == 2 {
		return "memchr2"
	}
	return "memchr3"
}
