// Package rure provides a finite-automaton regular expression engine.
//
// Patterns are compiled once with a flag set and can then be searched from
// any number of goroutines. Every search runs in time linear in the haystack
// (for a fixed pattern), so untrusted patterns and inputs cannot trigger
// catastrophic backtracking.
//
// Matching follows leftmost-first semantics, like Perl and Go's regexp
// package: the match that starts earliest wins, and among matches starting
// at the same offset the pattern's branch priority decides.
//
// Basic usage:
//
//	re, err := rure.Compile(`(?P<y>\d{4})-(?P<m>\d{2})`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	caps := re.NewCaptures()
//	if re.FindCaptures([]byte("due 2024-05"), caps) {
//	    fmt.Println(caps.String(1)) // "2024"
//	}
//
// Flags are given as tokens:
//
//	re, err := rure.Compile(`abc`, "CASEI", "UNICODE")
//
// The recognized tokens are CASEI, MULTI, DOTNL, SWAP_GREED, SPACE and
// UNICODE (see FlagTokens). With no tokens, only UNICODE is set; any tokens
// replace that default, so list UNICODE explicitly to keep it.
//
// Offsets are 0-based byte offsets. Methods ending in At start searching at
// a byte offset but let assertions such as ^ and \b look at the bytes before
// it; an offset outside [0, len(haystack)] is reported as ErrOutOfRange.
package rure

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/coregx/rure/flags"
	"github.com/coregx/rure/meta"
)

// Regex represents a compiled regular expression.
//
// A Regex is immutable and safe to use concurrently from multiple goroutines.
// Captures and Iter values derived from it are not; each belongs to a single
// caller.
//
// Example:
//
//	re := rure.MustCompile(`a+`)
//	m, ok := re.Find([]byte("baaab"))
//	// m == Match{Start: 1, End: 4}, ok == true
type Regex struct {
	engine *meta.Engine
	names  map[string]int
}

// Compile compiles a pattern with the flags named by tokens.
//
// Tokens are matched case-insensitively against FlagTokens. An unknown token
// fails with ErrInvalidFlag and a repeated one with ErrDuplicateFlag, both
// wrapped in a *FlagError. No tokens selects DefaultFlags.
//
// Example:
//
//	re, err := rure.Compile(`ABC`, "CASEI")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string, tokens ...string) (*Regex, error) {
	f, err := flags.Parse(tokens...)
	if err != nil {
		return nil, err
	}
	return CompileFlags(pattern, f)
}

// CompileFlags compiles a pattern with an explicit flag set.
func CompileFlags(pattern string, f Flags) (*Regex, error) {
	return CompileWithConfig(pattern, f, DefaultConfig())
}

// CompileWithConfig compiles a pattern with custom limits and engine
// selection.
//
// Example:
//
//	config := rure.DefaultConfig()
//	config.MaxStates = 10_000 // Reject oversized patterns
//	re, err := rure.CompileWithConfig(`\w{1000}`, rure.DefaultFlags, config)
func CompileWithConfig(pattern string, f Flags, config Config) (*Regex, error) {
	engine, err := meta.Compile(pattern, f, config)
	if err != nil {
		return nil, wrapCompileError(pattern, err)
	}

	re := &Regex{
		engine: engine,
		names:  make(map[string]int),
	}
	for i, name := range engine.SubexpNames() {
		if name == "" {
			continue
		}
		if _, dup := re.names[name]; !dup {
			re.names[name] = i
		}
	}
	return re, nil
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
//
// Example:
//
//	var dateRegex = rure.MustCompile(`\d{4}-\d{2}-\d{2}`)
func MustCompile(pattern string, tokens ...string) *Regex {
	re, err := Compile(pattern, tokens...)
	if err != nil {
		panic("rure: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// wrapCompileError converts an engine error into the package's error types.
func wrapCompileError(pattern string, err error) error {
	var ce *meta.CompileError
	if !errors.As(err, &ce) {
		return err
	}
	var fe *FlagError
	if errors.As(ce.Err, &fe) {
		return fe
	}
	return &CompileError{Pattern: pattern, Msg: ce.Message(), Err: ce.Err}
}

// String returns the source text used to compile the regular expression.
func (re *Regex) String() string {
	return re.engine.Pattern()
}

// Flags returns the flag set the pattern was compiled with.
func (re *Regex) Flags() Flags {
	return re.engine.Flags()
}

// NumCaptures returns the number of capture groups, including group 0 for
// the whole match.
func (re *Regex) NumCaptures() int {
	return re.engine.NumCaptures()
}

// CaptureNames returns the names of the capture groups, indexed by group
// number. Group 0 and unnamed groups have empty names.
func (re *Regex) CaptureNames() []string {
	return re.engine.SubexpNames()
}

// CaptureIndex returns the index of the group with the given name.
// The lookup is exact and case-sensitive. If several groups share a name,
// the first one wins.
func (re *Regex) CaptureIndex(name string) (int, bool) {
	i, ok := re.names[name]
	return i, ok
}

// checkStart returns ErrOutOfRange unless 0 <= start <= len(haystack).
func checkStart(haystack []byte, start int) error {
	if start < 0 || start > len(haystack) {
		return fmt.Errorf("%w: start %d, haystack length %d", ErrOutOfRange, start, len(haystack))
	}
	return nil
}

// IsMatch reports whether the haystack contains a match of the pattern.
func (re *Regex) IsMatch(haystack []byte) bool {
	return re.engine.IsMatchAt(haystack, 0)
}

// IsMatchString is like IsMatch for a string haystack.
func (re *Regex) IsMatchString(s string) bool {
	return re.IsMatch([]byte(s))
}

// IsMatchAt reports whether a match begins at or after start.
func (re *Regex) IsMatchAt(haystack []byte, start int) (bool, error) {
	if err := checkStart(haystack, start); err != nil {
		return false, err
	}
	return re.engine.IsMatchAt(haystack, start), nil
}

// Find returns the leftmost-first match in haystack.
func (re *Regex) Find(haystack []byte) (Match, bool) {
	s, e, ok := re.engine.FindAt(haystack, 0)
	if !ok {
		return Match{}, false
	}
	return Match{Start: s, End: e}, true
}

// FindString is like Find for a string haystack.
func (re *Regex) FindString(s string) (Match, bool) {
	return re.Find([]byte(s))
}

// FindAt returns the leftmost-first match beginning at or after start.
// The returned offsets are relative to the whole haystack.
func (re *Regex) FindAt(haystack []byte, start int) (Match, bool, error) {
	if err := checkStart(haystack, start); err != nil {
		return Match{}, false, err
	}
	s, e, ok := re.engine.FindAt(haystack, start)
	if !ok {
		return Match{}, false, nil
	}
	return Match{Start: s, End: e}, true, nil
}

// FindCaptures finds the leftmost-first match and records every group in
// caps. It reports whether a match was found.
func (re *Regex) FindCaptures(haystack []byte, caps *Captures) bool {
	ok, _ := re.FindCapturesAt(haystack, 0, caps)
	return ok
}

// FindCapturesAt is like FindCaptures but starts searching at start.
//
// caps is reset for this Regex if it was created by another one. When no
// match is found every group in caps is left unset. A nil caps only reports
// whether a match exists.
func (re *Regex) FindCapturesAt(haystack []byte, start int, caps *Captures) (bool, error) {
	if err := checkStart(haystack, start); err != nil {
		return false, err
	}
	if caps == nil {
		return re.engine.IsMatchAt(haystack, start), nil
	}
	caps.bind(re)
	if !re.engine.FindCapturesAt(haystack, start, caps.slots) {
		caps.clear()
		return false, nil
	}
	caps.haystack = haystack
	return true, nil
}

// FindAll returns up to n successive non-overlapping matches, or all of them
// when n < 0. Empty matches follow the Iter rules.
func (re *Regex) FindAll(haystack []byte, n int) []Match {
	var out []Match
	it := re.Iter(haystack)
	for n < 0 || len(out) < n {
		m, ok := it.Next()
		if !ok {
			break
		}
		out = append(out, m)
	}
	return out
}

// FindAllCaptures is like FindAll but records every group of each match.
func (re *Regex) FindAllCaptures(haystack []byte, n int) []*Captures {
	var out []*Captures
	it := re.Iter(haystack)
	for n < 0 || len(out) < n {
		caps := re.NewCaptures()
		if !it.NextCaptures(caps) {
			break
		}
		out = append(out, caps)
	}
	return out
}

// step returns the width of the codepoint at haystack[at], or 1 in byte
// mode and for invalid UTF-8.
func (re *Regex) step(haystack []byte, at int) int {
	if !re.engine.IsUTF8() {
		return 1
	}
	_, size := utf8.DecodeRune(haystack[at:])
	return size
}
