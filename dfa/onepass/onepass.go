// Package onepass implements a one-pass DFA for patterns that have no
// ambiguity in their matching paths.
//
// A pattern is "one-pass" when at each input byte during an anchored match,
// there is at most one possible path through the automaton. Such a pattern
// resolves its capture groups in a single forward scan with one table lookup
// per byte, where the PikeVM has to track a thread per NFA state.
//
// Limitations:
//   - Only supports anchored searches
//   - Maximum 16 capture groups including group 0 (32 slots)
//   - Not all patterns are one-pass (e.g., `a*a`, `(.*)x` are NOT one-pass)
//
// Example one-pass patterns:
//   - `(\d+)-(\d+)`           - Digit groups separated by dash
//   - `([a-z]+)\s+([a-z]+)`   - Word pairs
//   - `x*yx*`                 - Unambiguous repetition
//
// Example non-one-pass patterns:
//   - `a*a`                   - Ambiguous: extend a* or final a?
//   - `(.*) (.*)`             - Where does first group end?
//   - `(a|ab)(c|bcd)`         - Does the first group end after a?
package onepass

import (
	"errors"

	"github.com/coregx/rure/nfa"
)

var (
	// ErrNotOnePass is returned when a pattern is not one-pass.
	ErrNotOnePass = errors.New("pattern is not one-pass")

	// ErrTooManyCaptures is returned when a pattern has more than 16 capture
	// groups including group 0.
	ErrTooManyCaptures = errors.New("too many capture groups (max 16)")

	// ErrTooManyStates is returned when the DFA would exceed its state limit.
	ErrTooManyStates = errors.New("one-pass DFA exceeds its state limit")
)

// StateID is a DFA state identifier (21 bits max = 2M states).
type StateID uint32

// DFA is a one-pass deterministic finite automaton.
//
// The transition table is organized as:
//
//	table[stateID << stride2 + byteClass] → Transition
//
// where 1<<stride2 is the next power of 2 >= the alphabet length. State 0 is
// the dead state; its row is all zero.
type DFA struct {
	nfa *nfa.NFA

	table   []Transition
	classes *nfa.ByteClasses
	stride2 uint

	start StateID

	// matchEps[sid] holds the epsilons from sid's root to the match state;
	// it is only meaningful when isMatch[sid] is set.
	isMatch  []bool
	matchEps []Epsilons
}

// Cache holds per-search capture positions.
//
// This is allocated once and reused across searches to avoid allocations.
type Cache struct {
	slots []int
}

// NewCache creates a cache sized for d.
func (d *DFA) NewCache() *Cache {
	return &Cache{slots: make([]int, d.nfa.SlotCount())}
}

// NumCaptures returns the number of capture groups including group 0.
func (d *DFA) NumCaptures() int {
	return d.nfa.CaptureCount()
}

// States returns the number of DFA states, the dead state included.
func (d *DFA) States() int {
	return len(d.isMatch)
}

// transition retrieves the transition for the given state and input byte.
func (d *DFA) transition(sid StateID, b byte) Transition {
	return d.table[int(sid)<<d.stride2+int(d.classes.Get(b))]
}

// SearchAt runs an anchored search for a match beginning exactly at start
// and reports whether one was found. On success slots receives the
// positions of the leading len(slots)/2 groups, like the NFA executors fill
// them; a nil slots turns the search into an existence test.
//
// Assertions see the bytes before start, so `\b` and `^` behave as in an
// unanchored search that reached start.
//
// Example:
//
//	d, _ := onepass.Build(n, onepass.DefaultMaxStates)
//	cache := d.NewCache()
//	slots := make([]int, n.SlotCount())
//	if d.SearchAt(cache, input, 0, slots) {
//	    group1 := input[slots[2]:slots[3]]
//	}
func (d *DFA) SearchAt(cache *Cache, haystack []byte, start int, slots []int) bool {
	if start < 0 || start > len(haystack) {
		return false
	}
	current := cache.slots
	for i := range current {
		current[i] = -1
	}

	matched := false
	sid := d.start
	for at := start; at < len(haystack); at++ {
		trans := d.transition(sid, haystack[at])
		if d.isMatch[sid] && d.matchAt(sid, haystack, at, current, slots) {
			matched = true
			if trans.IsMatchWins() {
				return true
			}
		}

		eps := trans.Epsilons()
		if trans.IsDead() || !eps.LooksHold(haystack, at) {
			return matched
		}
		eps.UpdateSlots(current, at)
		sid = trans.NextState()
	}
	if d.isMatch[sid] && d.matchAt(sid, haystack, len(haystack), current, slots) {
		matched = true
	}
	return matched
}

// matchAt records the match of state sid at position at if its assertions
// hold there.
func (d *DFA) matchAt(sid StateID, haystack []byte, at int, current, slots []int) bool {
	eps := d.matchEps[sid]
	if !eps.LooksHold(haystack, at) {
		return false
	}
	n := copy(slots, current)
	eps.UpdateSlots(slots[:n], at)
	return true
}
