// Package flags defines the compile-time flag set of a pattern and the fixed
// token table used to build it from strings.
package flags

import (
	"errors"
	"fmt"
	"strings"
)

// Set is a bit set of compile flags.
type Set uint8

const (
	// CaseInsensitive makes literals and classes match regardless of case.
	CaseInsensitive Set = 1 << iota
	// MultiLine makes ^ and $ match at line boundaries.
	MultiLine
	// DotNewline makes . match \n.
	DotNewline
	// SwapGreed makes quantifiers lazy by default and ? suffixes greedy.
	SwapGreed
	// IgnoreWhitespace ignores whitespace and #-comments in the pattern.
	IgnoreWhitespace
	// Unicode matches codepoints instead of bytes.
	Unicode

	// Default is the flag set used when no tokens are given.
	Default = Unicode

	all = CaseInsensitive | MultiLine | DotNewline | SwapGreed | IgnoreWhitespace | Unicode
)

// Token table, in bit order. The names are the host-facing spelling.
var table = [...]struct {
	token string
	flag  Set
}{
	{"CASEI", CaseInsensitive},
	{"MULTI", MultiLine},
	{"DOTNL", DotNewline},
	{"SWAP_GREED", SwapGreed},
	{"SPACE", IgnoreWhitespace},
	{"UNICODE", Unicode},
}

var (
	// ErrInvalidFlag reports a token outside the flag table.
	ErrInvalidFlag = errors.New("invalid flag")

	// ErrDuplicateFlag reports a token given twice in one Parse call.
	ErrDuplicateFlag = errors.New("duplicate flag")
)

// Error reports a rejected flag token.
type Error struct {
	Token string
	Err   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%v: %q", e.Err, e.Token)
}

// Unwrap returns ErrInvalidFlag or ErrDuplicateFlag.
func (e *Error) Unwrap() error {
	return e.Err
}

// Tokens returns every recognized token in bit order.
func Tokens() []string {
	out := make([]string, len(table))
	for i, e := range table {
		out[i] = e.token
	}
	return out
}

// Lookup returns the flag for token. Matching ignores ASCII case.
func Lookup(token string) (Set, bool) {
	for _, e := range table {
		if strings.EqualFold(e.token, token) {
			return e.flag, true
		}
	}
	return 0, false
}

// Parse builds a flag set from tokens. No tokens yields Default; otherwise
// the result holds exactly the named flags, so Unicode must be listed to stay
// on.
func Parse(tokens ...string) (Set, error) {
	if len(tokens) == 0 {
		return Default, nil
	}
	var s Set
	for _, tok := range tokens {
		f, ok := Lookup(tok)
		if !ok {
			return 0, &Error{Token: tok, Err: ErrInvalidFlag}
		}
		if s&f != 0 {
			return 0, &Error{Token: tok, Err: ErrDuplicateFlag}
		}
		s |= f
	}
	return s, nil
}

// Has reports whether every flag in f is set.
func (s Set) Has(f Set) bool {
	return s&f == f
}

// Valid reports whether s only contains known flags.
func (s Set) Valid() bool {
	return s&^all == 0
}

// Tokens returns the tokens of the flags in s, in bit order.
func (s Set) Tokens() []string {
	var out []string
	for _, e := range table {
		if s&e.flag != 0 {
			out = append(out, e.token)
		}
	}
	return out
}

// String joins the tokens of s with '|'.
func (s Set) String() string {
	if s == 0 {
		return "0"
	}
	return strings.Join(s.Tokens(), "|")
}
