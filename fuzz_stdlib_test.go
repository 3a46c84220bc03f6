// Fuzz tests comparing rure against the standard library regexp package.
//
// With the default flags a pattern means the same thing to both, except that
// \d, \s, \w and \b are Unicode aware here and ASCII in regexp, and that \s
// also matches \v here. Inputs where that shows are skipped, as is invalid
// UTF-8, which regexp reads as U+FFFD.
//
// Run with:
//
//	go test -fuzz=FuzzFindStdlib -fuzztime=30s
//	go test -fuzz=FuzzFindCapturesStdlib -fuzztime=30s
package rure

import (
	"errors"
	"reflect"
	"regexp"
	"testing"
	"unicode/utf8"

	"github.com/coregx/rure/nfa"
)

var seedPatterns = []string{
	// Literals
	`hello`,
	`foo`,
	`café`,

	// Character classes
	`\d+`,
	`\D`,
	`\w+`,
	`\W`,
	`\s+`,
	`\S`,
	`[a-z]+`,
	`[^a-z]`,
	`[a-zA-Z0-9]`,
	`[[:alpha:]]+`,

	// Anchors
	`^hello`,
	`world$`,
	`\bhello\b`,
	`(?m)^\w+$`,

	// Quantifiers
	`a*`,
	`a+?`,
	`a{2,5}`,
	`a??`,

	// Alternation and groups
	`foo|bar|baz`,
	`(a|b)`,
	`(?P<name>a)`,
	`(a*)*`,
	`(a*)+b`,

	// Complex patterns
	`\d{3}-\d{4}`,
	`[a-z]+@[a-z]+\.[a-z]+`,
	`.*\.txt$`,

	// Empty and edge cases
	``,
	`.`,
	`.*`,
	`^$`,

	// Unicode
	`[日本語]+`,
	`\p{L}+`,
	`(?i)straße`,

	// Escapes
	`\a\f\n\r\t\v`,
	`\\.`,
	`\x{65e5}`,
}

var seedInputs = []string{
	"",
	"a",
	"hello",
	"hello world",
	"foo bar baz",
	"abc123def",
	"555-1234",
	"user@example.com",
	"file.txt",
	"日本語",
	"café crème",
	"STRASSE",
	"hello\nworld",
	"  spaces  ",
	"aaabbb",
	"ababab",
	"\n\n\n",
}

var seedCapturePatterns = []string{
	`(a)`,
	`(a)(b)`,
	`(.*)`,
	`(\d+)`,
	`(\w+)@(\w+)`,
	`^(.+)-(\d+)$`,
	`(([a-z]+)(\d+))`,
	`(?P<first>\w+)\s+(?P<second>\w+)`,
	`(a)*`,
	`(a)+`,
	`((a|b)*)`,
	`(a*)*`,
	`(a*)+`,
	`(a?)*`,
	`x(a*)*y`,
	`(é|e)(\w*)`,
}

// perlClassEscape finds the escapes whose meaning differs from regexp on
// non-ASCII input.
var perlClassEscape = regexp.MustCompile(`\\[dDwWsSbB]`)

// hasPerlClassDifference reports whether input can tell the Unicode Perl
// classes apart from the ASCII ones regexp uses.
func hasPerlClassDifference(pattern, input string) bool {
	if !perlClassEscape.MatchString(pattern) {
		return false
	}
	for i := 0; i < len(input); i++ {
		if input[i] >= utf8.RuneSelf || input[i] == '\v' {
			return true
		}
	}
	return false
}

// compileForFuzz compiles pattern, or returns nil when it exceeds a compile
// limit that regexp does not share.
func compileForFuzz(t *testing.T, pattern string) *Regex {
	t.Helper()
	re, err := Compile(pattern)
	if errors.Is(err, nfa.ErrTooManyStates) || errors.Is(err, nfa.ErrTooComplex) {
		return nil
	}
	if err != nil {
		t.Fatalf("failed to compile %q, which regexp accepts: %v", pattern, err)
	}
	return re
}

func FuzzFindStdlib(f *testing.F) {
	for _, p := range seedPatterns {
		for _, in := range seedInputs {
			f.Add(p, in)
		}
	}

	f.Fuzz(func(t *testing.T, pattern, input string) {
		if !utf8.ValidString(input) || hasPerlClassDifference(pattern, input) {
			return
		}
		stdRe, err := regexp.Compile(pattern)
		if err != nil {
			return
		}
		re := compileForFuzz(t, pattern)
		if re == nil {
			return
		}

		want := stdRe.FindStringIndex(input)
		var got []int
		if m, ok := re.Find([]byte(input)); ok {
			got = []int{m.Start, m.End}
		}
		if !reflect.DeepEqual(want, got) {
			t.Errorf("Find(%q, %q):\n  stdlib: %v\n  rure:   %v", pattern, input, want, got)
		}
		if re.IsMatch([]byte(input)) != (want != nil) {
			t.Errorf("IsMatch(%q, %q): stdlib reports %v", pattern, input, want != nil)
		}
	})
}

func FuzzFindCapturesStdlib(f *testing.F) {
	for _, p := range append(seedCapturePatterns, seedPatterns...) {
		for _, in := range seedInputs {
			f.Add(p, in)
		}
	}

	f.Fuzz(func(t *testing.T, pattern, input string) {
		if !utf8.ValidString(input) || hasPerlClassDifference(pattern, input) {
			return
		}
		stdRe, err := regexp.Compile(pattern)
		if err != nil {
			return
		}
		re := compileForFuzz(t, pattern)
		if re == nil {
			return
		}

		want := stdRe.FindStringSubmatchIndex(input)
		caps := re.NewCaptures()
		var got []int
		if re.FindCaptures([]byte(input), caps) {
			got = capsSlots(caps)
		}
		if !reflect.DeepEqual(want, got) {
			t.Errorf("FindCaptures(%q, %q):\n  stdlib: %v\n  rure:   %v", pattern, input, want, got)
		}

		for i, name := range stdRe.SubexpNames() {
			if name == "" || got == nil {
				continue
			}
			m, ok := caps.Name(name)
			if ok != (want[2*i] >= 0) || (ok && m != (Match{Start: want[2*i], End: want[2*i+1]})) {
				t.Errorf("Name(%q) on %q with %q: got %v %v", name, input, pattern, m, ok)
			}
		}
	})
}
