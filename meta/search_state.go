package meta

import (
	"sync"

	"github.com/coregx/rure/dfa/lazy"
	"github.com/coregx/rure/dfa/onepass"
	"github.com/coregx/rure/nfa"
	"github.com/coregx/rure/prefilter"
)

// SearchState holds per-search mutable state for thread-safe concurrent searches.
// This struct should be obtained from a sync.Pool to enable safe concurrent usage
// of the same compiled Engine from multiple goroutines.
//
// Usage pattern:
//
//	state := engine.getSearchState()
//	defer engine.putSearchState(state)
//	// use state for search operations
//
// The SearchState itself is NOT thread-safe.
type SearchState struct {
	// pikevm holds the PikeVM thread lists, sized for the NFA.
	pikevm *nfa.PikeVMState

	// dfaCache holds lazily built DFA states; nil when the engine has no DFA.
	// States survive across searches, so a pooled SearchState warms up.
	dfaCache *lazy.Cache

	// onepassCache holds capture positions for the one-pass DFA; nil when
	// the engine has none.
	onepassCache *onepass.Cache

	// backtracker holds the visited bit vector; it grows on demand.
	backtracker *nfa.BacktrackerState

	// tracker measures prefilter effectiveness for one search.
	tracker *prefilter.Tracker

	// bounds receives the overall match span for FindAt.
	bounds []int
}

func newSearchState(n *nfa.NFA, dfa *lazy.DFA, op *onepass.DFA, trackerConfig prefilter.TrackerConfig) *SearchState {
	s := &SearchState{
		pikevm:      nfa.NewPikeVMState(n),
		backtracker: nfa.NewBacktrackerState(),
		tracker:     prefilter.NewTracker(trackerConfig),
		bounds:      make([]int, 2),
	}
	if dfa != nil {
		s.dfaCache = dfa.NewCache()
	}
	if op != nil {
		s.onepassCache = op.NewCache()
	}
	return s
}

// reset prepares the SearchState for reuse.
// PikeVM and backtracker state is reset by the executors when a search begins.
func (s *SearchState) reset() {
	s.tracker.Reset()
	s.bounds[0], s.bounds[1] = -1, -1
}

// searchStatePool manages a pool of SearchState instances for thread-safe reuse.
type searchStatePool struct {
	pool sync.Pool
}

func newSearchStatePool(n *nfa.NFA, dfa *lazy.DFA, op *onepass.DFA, trackerConfig prefilter.TrackerConfig) *searchStatePool {
	p := &searchStatePool{}
	p.pool = sync.Pool{
		New: func() any {
			return newSearchState(n, dfa, op, trackerConfig)
		},
	}
	return p
}

func (p *searchStatePool) get() *SearchState {
	return p.pool.Get().(*SearchState)
}

func (p *searchStatePool) put(state *SearchState) {
	if state == nil {
		return
	}
	state.reset()
	p.pool.Put(state)
}
