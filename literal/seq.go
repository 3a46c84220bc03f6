// Package literal extracts literal byte sequences from compiled NFAs.
//
// The primary use case is prefilter optimization: if every match of a pattern
// must begin with one of a small set of literals, a fast substring search for
// those literals can skip text that cannot start a match before the NFA
// engines run.
//
// Key concepts:
//   - A Literal is a concrete byte sequence that every match through some
//     path of the pattern begins with
//   - A Seq is a set of alternative literals (e.g., from alternations like /foo|bar/)
package literal

import (
	"bytes"
	"sort"
)

// Literal represents a literal byte sequence extracted from a regex pattern.
// The Complete flag indicates whether this literal is itself a complete match
// (true) or just a prefix of potential matches (false).
//
// Example:
//   - Pattern /hello/ → Literal{[]byte("hello"), true}
//   - Pattern /hello.*world/ → Literal{[]byte("hello"), false}
type Literal struct {
	// Bytes contains the actual literal byte sequence.
	Bytes []byte

	// Complete indicates whether this literal represents the entire match.
	Complete bool
}

// NewLiteral creates a new Literal from the given byte sequence and completeness flag.
func NewLiteral(b []byte, complete bool) Literal {
	return Literal{
		Bytes:    b,
		Complete: complete,
	}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a string representation of the literal for debugging purposes.
// Format: "literal{bytes, complete=true/false}"
func (l Literal) String() string {
	complete := "false"
	if l.Complete {
		complete = "true"
	}
	return "literal{" + string(l.Bytes) + ", complete=" + complete + "}"
}

// Seq represents a set of alternative literals. A nil or empty Seq means no
// useful literals exist.
type Seq struct {
	literals []Literal
}

// NewSeq creates a new sequence from the given literals.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{
		literals: lits,
	}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.literals)
}

// Get returns the literal at the specified index.
// Panics if index is out of bounds.
func (s *Seq) Get(i int) Literal {
	return s.literals[i]
}

// IsEmpty returns true if the sequence has no literals.
func (s *Seq) IsEmpty() bool {
	return s == nil || len(s.literals) == 0
}

// Literals returns the byte sequences of all literals.
func (s *Seq) Literals() [][]byte {
	if s.IsEmpty() {
		return nil
	}
	out := make([][]byte, len(s.literals))
	for i, lit := range s.literals {
		out[i] = lit.Bytes
	}
	return out
}

// AllComplete reports whether every literal is a complete match.
func (s *Seq) AllComplete() bool {
	if s.IsEmpty() {
		return false
	}
	for _, lit := range s.literals {
		if !lit.Complete {
			return false
		}
	}
	return true
}

// MinLen returns the length of the shortest literal, or 0 for an empty sequence.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	n := s.literals[0].Len()
	for _, lit := range s.literals[1:] {
		if lit.Len() < n {
			n = lit.Len()
		}
	}
	return n
}

// MaxLen returns the length of the longest literal.
func (s *Seq) MaxLen() int {
	n := 0
	for i := 0; i < s.Len(); i++ {
		if l := s.literals[i].Len(); l > n {
			n = l
		}
	}
	return n
}

// Minimize removes redundant literals from the sequence.
//
// For prefix matching, a literal L is redundant if a shorter literal S is a
// prefix of L: any text starting with L also starts with S. A kept literal
// loses its Complete flag when it absorbed a longer one.
//
// Example:
//
//	seq := literal.NewSeq(
//	    literal.NewLiteral([]byte("foo"), true),
//	    literal.NewLiteral([]byte("foobar"), true),
//	)
//	seq.Minimize()
//	fmt.Println(seq.Len()) // Output: 1 (only "foo" remains)
func (s *Seq) Minimize() {
	if s.IsEmpty() {
		return
	}

	// Shortest first, then bytewise, for a deterministic order
	sort.Slice(s.literals, func(i, j int) bool {
		a, b := s.literals[i].Bytes, s.literals[j].Bytes
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return bytes.Compare(a, b) < 0
	})

	kept := make([]Literal, 0, len(s.literals))
	for _, current := range s.literals {
		redundant := false
		for j := range kept {
			if bytes.HasPrefix(current.Bytes, kept[j].Bytes) {
				if len(current.Bytes) > len(kept[j].Bytes) || !current.Complete {
					kept[j].Complete = false
				}
				redundant = true
				break
			}
		}
		if !redundant {
			kept = append(kept, current)
		}
	}

	s.literals = kept
}

// LongestCommonPrefix returns the longest common prefix of all literals in the sequence.
// If the sequence is empty or has no common prefix, returns an empty slice.
//
// Example:
//
//	["hello", "help", "hero"] -> "he"
func (s *Seq) LongestCommonPrefix() []byte {
	if s.IsEmpty() {
		return []byte{}
	}

	prefix := s.literals[0].Bytes
	for i := 1; i < len(s.literals); i++ {
		prefix = commonPrefix(prefix, s.literals[i].Bytes)
		if len(prefix) == 0 {
			return []byte{}
		}
	}

	result := make([]byte, len(prefix))
	copy(result, prefix)
	return result
}

// commonPrefix returns the longest common prefix of a and b.
func commonPrefix(a, b []byte) []byte {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	for i := 0; i < minLen; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}

	return a[:minLen]
}
