// Package lazy implements a lazily determinized DFA for match existence
// tests.
//
// A DFA state stands for the set of NFA states a PikeVM would hold at one
// position, without priorities or capture slots. States and transitions are
// computed the first time a search needs them and kept in a Cache, so the
// common case runs one map lookup per input byte. Transitions are keyed by
// the NFA's byte classes.
//
// The DFA answers only "is there a match": it stops at the first accepting
// state. Finding leftmost-first bounds and captures is left to the NFA
// engines.
package lazy

import "github.com/coregx/rure/nfa"

// DFA is an immutable lazy DFA over one NFA.
//
// Thread safety: DFA may be shared. Each goroutine must search with its
// own Cache.
type DFA struct {
	nfa     *nfa.NFA
	config  Config
	classes *nfa.ByteClasses

	// anchored DFAs never restart the NFA after the first position.
	anchored bool
}

// NFA returns the underlying automaton.
func (d *DFA) NFA() *nfa.NFA {
	return d.nfa
}

// IsAnchored reports whether matches may only begin at offset 0.
func (d *DFA) IsAnchored() bool {
	return d.anchored
}

// IsMatchAt reports whether a match begins at or after start.
//
// It returns ErrCacheFull or ErrStateLimitExceeded when the search cannot
// finish within the configured limits; the caller should then use an NFA
// engine instead.
//
// Example:
//
//	d, _ := lazy.New(n, lazy.DefaultConfig())
//	cache := d.NewCache()
//	ok, err := d.IsMatchAt(cache, []byte("test foo123 end"), 0)
func (d *DFA) IsMatchAt(c *Cache, haystack []byte, start int) (bool, error) {
	if start < 0 || start > len(haystack) {
		return false, nil
	}
	if d.anchored && start > 0 {
		return false, nil
	}
	c.resetSearch()

	cur, err := d.startState(c, start == 0)
	if err != nil || cur == nil {
		return false, err
	}
	for at := start; ; at++ {
		if cur.isMatch {
			return true, nil
		}
		if at == len(haystack) {
			return d.acceptsAtEnd(c, cur.nfaStates, at == 0), nil
		}

		b := haystack[at]
		if id, ok := cur.transitions[d.classes.Get(b)]; ok {
			if id == DeadState {
				return false, nil
			}
			cur = c.state(id)
			continue
		}
		next, err := d.determinize(c, cur, b)
		if err != nil {
			return false, err
		}
		if next == nil {
			return false, nil
		}
		cur = next
	}
}

// startState returns the start state of the current cache generation. \A
// holds only for searches starting at offset 0.
func (d *DFA) startState(c *Cache, atStart bool) (*State, error) {
	i := 0
	if atStart {
		i = 1
	}
	if c.start[i] != nil {
		return c.start[i], nil
	}
	set := d.closure(c, []nfa.StateID{d.nfa.Start()}, atStart, false)
	if len(set) == 0 {
		return nil, nil
	}
	s, err := d.intern(c, set)
	if err != nil {
		return nil, err
	}
	c.start[i] = s
	return s, nil
}

// determinize computes and caches the transition of current on the class
// of byte b. It returns nil for the dead state.
func (d *DFA) determinize(c *Cache, current *State, b byte) (*State, error) {
	class := d.classes.Get(b)
	set := d.move(c, current.nfaStates, b)
	if len(set) == 0 {
		current.transitions[class] = DeadState
		return nil, nil
	}

	generation := c.clearCount
	next, err := d.intern(c, set)
	if err != nil {
		return nil, err
	}
	// A cleared cache no longer holds current, so its transitions would
	// name states of the old generation.
	if c.clearCount == generation {
		current.transitions[class] = next.id
	}
	return next, nil
}

// intern returns the cached state for set, creating it if needed. A full
// cache is cleared while the clear budget lasts.
func (d *DFA) intern(c *Cache, set []nfa.StateID) (*State, error) {
	if len(set) > d.config.DeterminizationLimit {
		return nil, ErrStateLimitExceeded
	}
	key := stateKey(set)
	if s, ok := c.lookup(key); ok {
		return s, nil
	}
	isMatch := d.containsMatchState(set)
	if s, ok := c.insert(key, set, isMatch); ok {
		return s, nil
	}
	if c.clearCount >= d.config.MaxCacheClears {
		return nil, ErrCacheFull
	}
	c.clearKeepMemory()
	s, _ := c.insert(key, set, isMatch)
	return s, nil
}
