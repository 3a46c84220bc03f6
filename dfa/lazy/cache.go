package lazy

import (
	"github.com/coregx/rure/internal/conv"
	"github.com/coregx/rure/internal/sparse"
	"github.com/coregx/rure/nfa"
)

// Cache holds the DFA states built so far by searches of one DFA.
//
// A Cache is mutable and must not be shared between goroutines; pool one per
// searching goroutine. States are never evicted individually. When the cache
// reaches its capacity it is cleared entirely and the search continues,
// rebuilding states on demand, until the per-search clear budget is spent.
type Cache struct {
	states []*State
	index  map[string]StateID

	// start holds the start states of the current generation, for searches
	// beginning mid-haystack and at offset 0. Unbuilt entries are nil.
	start [2]*State

	maxStates  int
	clearCount int

	// scratch for closures
	set   *sparse.SparseSet
	stack []nfa.StateID

	// Statistics for cache performance tuning
	hits   uint64
	misses uint64
}

// NewCache creates an empty cache sized for d.
func (d *DFA) NewCache() *Cache {
	return &Cache{
		index:     make(map[string]StateID),
		maxStates: d.config.MaxStates,
		set:       sparse.NewSparseSet(conv.IntToUint32(d.nfa.States())),
		stack:     make([]nfa.StateID, 0, 16),
	}
}

// lookup returns the state for a sorted NFA state set, if cached.
func (c *Cache) lookup(key string) (*State, bool) {
	id, ok := c.index[key]
	if !ok {
		return nil, false
	}
	c.hits++
	return c.states[id], true
}

// insert adds a state and reports false when the cache is full.
func (c *Cache) insert(key string, nfaStates []nfa.StateID, isMatch bool) (*State, bool) {
	if len(c.states) >= c.maxStates {
		return nil, false
	}
	c.misses++
	s := newState(StateID(conv.IntToUint32(len(c.states))), nfaStates, isMatch)
	c.states = append(c.states, s)
	c.index[key] = s.id
	return s, true
}

// state returns the state with the given ID.
func (c *Cache) state(id StateID) *State {
	return c.states[id]
}

// clearKeepMemory drops every state but keeps allocated memory. States
// obtained earlier stay readable but are no longer reachable from the cache.
func (c *Cache) clearKeepMemory() {
	for i := range c.states {
		c.states[i] = nil
	}
	c.states = c.states[:0]
	clear(c.index)
	c.start = [2]*State{}
	c.clearCount++
}

// resetSearch gives the next search a fresh clear budget.
func (c *Cache) resetSearch() {
	c.clearCount = 0
}

// Size returns the current number of states in the cache
func (c *Cache) Size() int {
	return len(c.states)
}

// ClearCount returns how many times the cache was cleared during the last
// search.
func (c *Cache) ClearCount() int {
	return c.clearCount
}

// Stats returns cache hit/miss statistics.
// Hit rate = hits / (hits + misses)
func (c *Cache) Stats() (hits, misses uint64, hitRate float64) {
	total := c.hits + c.misses
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}
	return c.hits, c.misses, hitRate
}
