package meta

import (
	"github.com/coregx/rure/dfa/lazy"
	"github.com/coregx/rure/dfa/onepass"
	"github.com/coregx/rure/flags"
	"github.com/coregx/rure/nfa"
	"github.com/coregx/rure/prefilter"
)

// Engine is the compiled, immutable form of a pattern.
//
// The Engine owns the NFA, its executors, the optional prefilter and the
// strategy that combines them. Scratch memory is drawn from a pool, so one
// Engine may be searched from many goroutines at once.
//
// Every search method takes a start offset. Matching begins at start, but
// assertions such as ^ and \b see the bytes before it. Callers validate
// 0 <= start <= len(haystack); out of range offsets report no match.
//
// Example:
//
//	engine, _ := meta.Compile(`(\w+)@(\w+)\.com`, flags.Default, meta.DefaultConfig())
//	start, end, ok := engine.FindAt([]byte("mail user@example.com"), 0)
type Engine struct {
	pattern  string
	flags    flags.Set
	nfa      *nfa.NFA
	pikevm   *nfa.PikeVM
	bt       *nfa.BoundedBacktracker // nil when disabled
	dfa      *lazy.DFA               // nil when disabled or unsupported
	onepass  *onepass.DFA            // nil when disabled or not one-pass
	pf       prefilter.Prefilter     // nil when no prefilter applies
	strategy Strategy
	config   Config

	statePool *searchStatePool
}

func newEngine(pattern string, f flags.Set, n *nfa.NFA, pf prefilter.Prefilter, dfa *lazy.DFA, op *onepass.DFA, strategy Strategy, config Config) *Engine {
	e := &Engine{
		pattern:  pattern,
		flags:    f,
		nfa:      n,
		pikevm:   nfa.NewPikeVM(n),
		dfa:      dfa,
		onepass:  op,
		pf:       pf,
		strategy: strategy,
		config:   config,
	}
	if config.EnableBacktracker {
		e.bt = nfa.NewBoundedBacktracker(n, config.MaxBacktrackVisited)
	}
	e.statePool = newSearchStatePool(n, dfa, op, prefilter.DefaultTrackerConfig())
	return e
}

func (e *Engine) getSearchState() *SearchState {
	return e.statePool.get()
}

func (e *Engine) putSearchState(state *SearchState) {
	e.statePool.put(state)
}

// Pattern returns the pattern source as given to Compile.
func (e *Engine) Pattern() string {
	return e.pattern
}

// Flags returns the flag set the pattern was compiled with.
func (e *Engine) Flags() flags.Set {
	return e.flags
}

// NFA returns the compiled automaton.
func (e *Engine) NFA() *nfa.NFA {
	return e.nfa
}

// Strategy returns the search strategy chosen at compile time.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Prefilter returns the prefilter, or nil if the pattern has none.
func (e *Engine) Prefilter() prefilter.Prefilter {
	return e.pf
}

// NumCaptures returns the number of capture groups including group 0.
func (e *Engine) NumCaptures() int {
	return e.nfa.CaptureCount()
}

// SlotCount returns the length of the slot slice FindCapturesAt fills.
func (e *Engine) SlotCount() int {
	return e.nfa.SlotCount()
}

// SubexpNames returns the capture group names indexed by group number.
// Group 0 and unnamed groups have empty names.
func (e *Engine) SubexpNames() []string {
	return e.nfa.SubexpNames()
}

// HasDFA reports whether match existence tests run on the lazy DFA.
func (e *Engine) HasDFA() bool {
	return e.dfa != nil
}

// HasOnePass reports whether anchored searches run on the one-pass DFA.
func (e *Engine) HasOnePass() bool {
	return e.onepass != nil
}

// IsUTF8 reports whether the pattern was compiled in Unicode mode.
func (e *Engine) IsUTF8() bool {
	return e.nfa.IsUTF8()
}

// IsMatchAt reports whether a match begins at or after start.
func (e *Engine) IsMatchAt(haystack []byte, start int) bool {
	if start < 0 || start > len(haystack) {
		return false
	}
	state := e.getSearchState()
	defer e.putSearchState(state)
	// Prefilter candidates already skip most of the haystack.
	if e.dfa != nil && e.strategy != UsePrefilter {
		if ok, err := e.dfa.IsMatchAt(state.dfaCache, haystack, start); err == nil {
			return ok
		}
	}
	return e.search(state, haystack, start, nil)
}

// FindAt returns the bounds of the leftmost-first match beginning at or
// after start.
func (e *Engine) FindAt(haystack []byte, start int) (int, int, bool) {
	if start < 0 || start > len(haystack) {
		return -1, -1, false
	}
	state := e.getSearchState()
	defer e.putSearchState(state)
	if !e.search(state, haystack, start, state.bounds) {
		return -1, -1, false
	}
	return state.bounds[0], state.bounds[1], true
}

// FindCapturesAt searches like FindAt and fills slots with the positions
// of every group: slots[2k] and slots[2k+1] bound group k, -1 marks a group
// that did not participate. slots should have SlotCount() elements; a
// shorter slice records only its leading slots, and a nil slice makes this
// an existence check. slots is only written when a match is found.
func (e *Engine) FindCapturesAt(haystack []byte, start int, slots []int) bool {
	if start < 0 || start > len(haystack) {
		return false
	}
	state := e.getSearchState()
	defer e.putSearchState(state)
	return e.search(state, haystack, start, slots)
}

func (e *Engine) search(state *SearchState, haystack []byte, start int, slots []int) bool {
	switch e.strategy {
	case UseAnchoredStart:
		if start > 0 {
			return false
		}
		return e.searchCore(state, haystack, start, true, slots)
	case UsePrefilter:
		return e.searchPrefilter(state, haystack, start, slots)
	default:
		return e.searchCore(state, haystack, start, false, slots)
	}
}

// searchCore runs an executor over haystack[start:]. Anchored searches go to
// the one-pass DFA when the pattern has one; otherwise the backtracker is
// preferred when the span fits its visited budget.
func (e *Engine) searchCore(state *SearchState, haystack []byte, start int, anchored bool, slots []int) bool {
	if anchored && e.onepass != nil {
		return e.onepass.SearchAt(state.onepassCache, haystack, start, slots)
	}
	if e.bt != nil && e.bt.CanHandle(len(haystack)-start) {
		return e.bt.Search(state.backtracker, haystack, start, anchored, slots)
	}
	return e.pikevm.Search(state.pikevm, haystack, start, anchored, slots)
}

// searchPrefilter verifies prefilter candidates in order with anchored
// searches. Every position between candidates is known not to begin a
// match, so the first verified candidate is the leftmost match.
func (e *Engine) searchPrefilter(state *SearchState, haystack []byte, start int, slots []int) bool {
	tracker := state.tracker
	tracker.Reset()

	for at := start; at <= len(haystack); {
		if !tracker.IsActive() {
			return e.searchCore(state, haystack, at, false, slots)
		}
		pos := e.pf.Find(haystack, at)
		if pos < 0 {
			return false
		}
		tracker.Candidate(pos - at)

		// A complete literal is the whole match; only group 0 can be filled.
		if e.pf.IsComplete() && len(slots) <= 2 {
			bounds := [2]int{pos, pos + e.pf.LiteralLen()}
			copy(slots, bounds[:])
			return true
		}
		if e.verify(state, haystack, pos, slots) {
			return true
		}
		at = pos + 1
	}
	return false
}

// verify runs an anchored search at a prefilter candidate. The backtracker
// would clear its visited set per candidate, so the PikeVM stands in when
// there is no one-pass DFA.
func (e *Engine) verify(state *SearchState, haystack []byte, pos int, slots []int) bool {
	if e.onepass != nil {
		return e.onepass.SearchAt(state.onepassCache, haystack, pos, slots)
	}
	return e.pikevm.Search(state.pikevm, haystack, pos, true, slots)
}
