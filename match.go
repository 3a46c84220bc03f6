package rure

import "fmt"

// Match is a half-open byte span [Start, End) of a haystack.
type Match struct {
	Start int
	End   int
}

// Len returns the length of the span in bytes.
func (m Match) Len() int {
	return m.End - m.Start
}

// IsEmpty reports whether the match is zero-width.
func (m Match) IsEmpty() bool {
	return m.Start == m.End
}

// Bytes returns the matched text. haystack must be the buffer the match
// was found in.
func (m Match) Bytes(haystack []byte) []byte {
	return haystack[m.Start:m.End:m.End]
}

func (m Match) String() string {
	return fmt.Sprintf("[%d, %d)", m.Start, m.End)
}
