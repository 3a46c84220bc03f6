package onepass

import (
	"errors"
	"strings"
	"testing"

	"github.com/coregx/rure/nfa"
)

// compilePattern is a helper to compile a regex pattern to NFA
func compilePattern(t *testing.T, pattern string) *nfa.NFA {
	t.Helper()
	n, err := nfa.NewDefaultCompiler().Compile(pattern)
	if err != nil {
		t.Fatalf("failed to compile pattern %q: %v", pattern, err)
	}
	return n
}

func buildDFA(t *testing.T, pattern string) *DFA {
	t.Helper()
	d, err := Build(compilePattern(t, pattern), DefaultMaxStates)
	if err != nil {
		t.Fatalf("expected pattern %q to be one-pass, got error: %v", pattern, err)
	}
	return d
}

// One-pass patterns (should build successfully)
var onePassPatterns = []string{
	`a`, `abc`, `a*b`, `a+b`, `a?b`, `[a-z]+`, `(\d+)-(\d+)`,
	`([a-z]+)\s+([a-z]+)`, `x*yx*`, `a(b|c)d`, `(?P<key>\w+)=(?P<val>\d*);`,
	`^abc$`, `\bfoo\b`, `(?m)^\w+$`, `a|b`, `(a)|b`, `a*?b`, `(?i)k`, ``,
	`(a+)(b+)?`, `(ab){2}c`, `[^,]*,`,
}

// Non-one-pass patterns (should return ErrNotOnePass)
var notOnePassPatterns = []string{
	`a*a`, `(.*) (.*)`, `(.*)x`, `(a|ab)(c|bcd)`, `(a*)*`, `\w+\d`,
}

var onePassHaystacks = []string{
	"", "a", "b", "ab", "aab", "abc", "abcd", "abd", "acd", "xyyx", "xxyx",
	"123-456", "12-", "hello world", "key=42;", "key=;", "foo bar",
	"foo", "line\nnext", "aabbb", "ababc", "ababab", "x,y", "K", "K",
}

func TestBuildOnePass(t *testing.T) {
	for _, pattern := range onePassPatterns {
		t.Run(pattern, func(t *testing.T) {
			d := buildDFA(t, pattern)
			if d.States() < 2 {
				t.Errorf("States() = %d, want at least the dead and start states", d.States())
			}
			if d.NumCaptures() != compilePattern(t, pattern).CaptureCount() {
				t.Errorf("NumCaptures() = %d", d.NumCaptures())
			}
		})
	}
}

func TestBuildNotOnePass(t *testing.T) {
	for _, pattern := range notOnePassPatterns {
		t.Run(pattern, func(t *testing.T) {
			d, err := Build(compilePattern(t, pattern), DefaultMaxStates)
			if !errors.Is(err, ErrNotOnePass) {
				t.Errorf("expected ErrNotOnePass, got: %v", err)
			}
			if d != nil {
				t.Error("Build returned non-nil DFA with error")
			}
		})
	}
}

// TestCaptureGroupLimit verifies the uint32 slot mask boundary.
// With 16 groups (group 0 + 15 explicit) we have 32 slots fitting in uint32.
// With 17 groups (group 0 + 16 explicit) we have 34 slots overflowing uint32.
func TestCaptureGroupLimit(t *testing.T) {
	n := compilePattern(t, `(a)(b)(c)(d)(e)(f)(g)(h)(i)(j)(k)(l)(m)(n)(o)`)
	d, err := Build(n, DefaultMaxStates)
	if err != nil {
		t.Fatalf("16 capture groups should be within limit, got %v", err)
	}
	slots := make([]int, n.SlotCount())
	if !d.SearchAt(d.NewCache(), []byte("abcdefghijklmno"), 0, slots) {
		t.Fatal("expected match for input 'abcdefghijklmno'")
	}
	if slots[30] != 14 || slots[31] != 15 {
		t.Errorf("group 15 = [%d, %d], want [14, 15]", slots[30], slots[31])
	}

	_, err = Build(compilePattern(t, `(a)(b)(c)(d)(e)(f)(g)(h)(i)(j)(k)(l)(m)(n)(o)(p)`), DefaultMaxStates)
	if !errors.Is(err, ErrTooManyCaptures) {
		t.Errorf("expected ErrTooManyCaptures, got: %v", err)
	}
}

func TestStateLimit(t *testing.T) {
	_, err := Build(compilePattern(t, strings.Repeat("a", 20)), 5)
	if !errors.Is(err, ErrTooManyStates) {
		t.Errorf("expected ErrTooManyStates, got: %v", err)
	}
}

// The one-pass DFA must agree with an anchored PikeVM search on every
// start offset, slots included.
func TestSearchAtAgreesWithPikeVM(t *testing.T) {
	for _, pattern := range onePassPatterns {
		t.Run(pattern, func(t *testing.T) {
			n := compilePattern(t, pattern)
			d, err := Build(n, DefaultMaxStates)
			if err != nil {
				t.Fatal(err)
			}
			cache := d.NewCache()
			vm := nfa.NewPikeVM(n)
			vmState := nfa.NewPikeVMState(n)

			for _, h := range onePassHaystacks {
				for start := 0; start <= len(h); start++ {
					want := make([]int, n.SlotCount())
					wantOK := vm.Search(vmState, []byte(h), start, true, want)

					got := make([]int, n.SlotCount())
					gotOK := d.SearchAt(cache, []byte(h), start, got)
					if gotOK != wantOK {
						t.Fatalf("haystack %q start %d: SearchAt = %v, PikeVM = %v", h, start, gotOK, wantOK)
					}
					if !wantOK {
						continue
					}
					for i := range want {
						if got[i] != want[i] {
							t.Fatalf("haystack %q start %d: slots = %v, want %v", h, start, got, want)
						}
					}
				}
			}
		})
	}
}

func TestSearchAtCaptures(t *testing.T) {
	tests := []struct {
		pattern string
		input   string
		start   int
		want    []int
	}{
		{`(\d+)-(\d+)`, "123-456", 0, []int{0, 7, 0, 3, 4, 7}},
		{`(\d+)-(\d+)`, "x12-3", 1, []int{1, 5, 1, 3, 4, 5}},
		{`(a+)(b+)?`, "aac", 0, []int{0, 2, 0, 2, -1, -1}},
		{`([a-z]+)\s+([a-z]+)`, "hello   world!", 0, []int{0, 13, 0, 5, 8, 13}},
		{`(a)|b`, "b", 0, []int{0, 1, -1, -1}},
		{``, "abc", 2, []int{2, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.input, func(t *testing.T) {
			d := buildDFA(t, tt.pattern)
			slots := make([]int, len(tt.want))
			if !d.SearchAt(d.NewCache(), []byte(tt.input), tt.start, slots) {
				t.Fatal("no match")
			}
			for i := range tt.want {
				if slots[i] != tt.want[i] {
					t.Fatalf("slots = %v, want %v", slots, tt.want)
				}
			}
		})
	}
}

func TestSearchAtExistenceAndRange(t *testing.T) {
	d := buildDFA(t, `ab`)
	cache := d.NewCache()

	if !d.SearchAt(cache, []byte("xab"), 1, nil) {
		t.Error("expected a match at 1")
	}
	if d.SearchAt(cache, []byte("xab"), 0, nil) {
		t.Error("search is anchored; no match may begin at 0")
	}
	for _, start := range []int{-1, 4} {
		if d.SearchAt(cache, []byte("xab"), start, nil) {
			t.Errorf("start %d out of range reported a match", start)
		}
	}
}

func TestSearchAtShortSlots(t *testing.T) {
	d := buildDFA(t, `(a)(b)`)
	slots := []int{-1, -1}
	if !d.SearchAt(d.NewCache(), []byte("ab"), 0, slots) {
		t.Fatal("no match")
	}
	if slots[0] != 0 || slots[1] != 2 {
		t.Errorf("slots = %v, want [0 2]", slots)
	}
}
