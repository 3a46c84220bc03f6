package lazy

import (
	"testing"

	"github.com/coregx/rure/nfa"
)

func TestNewCache(t *testing.T) {
	tests := []struct {
		name      string
		maxStates int
	}{
		{name: "small cache", maxStates: 10},
		{name: "medium cache", maxStates: 1000},
		{name: "large cache", maxStates: 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDFA(t, `a+b`, DefaultConfig().WithMaxStates(tt.maxStates))
			c := d.NewCache()
			if c == nil {
				t.Fatal("NewCache returned nil")
			}
			if c.Size() != 0 {
				t.Errorf("NewCache.Size() = %d, want 0", c.Size())
			}
			if c.ClearCount() != 0 {
				t.Errorf("NewCache.ClearCount() = %d, want 0", c.ClearCount())
			}

			hits, misses, hitRate := c.Stats()
			if hits != 0 || misses != 0 || hitRate != 0 {
				t.Errorf("NewCache.Stats() = (%d, %d, %f), want (0, 0, 0)", hits, misses, hitRate)
			}
		})
	}
}

func TestCacheInsertAndLookup(t *testing.T) {
	d := newDFA(t, `abc`, DefaultConfig().WithMaxStates(2))
	c := d.NewCache()

	set := []nfa.StateID{1, 2, 3}
	key := stateKey(set)
	s, ok := c.insert(key, set, true)
	if !ok {
		t.Fatal("insert into empty cache failed")
	}
	if s.ID() != 0 || !s.IsMatch() {
		t.Errorf("inserted state = %v, want ID 0 and match", s)
	}

	got, ok := c.lookup(key)
	if !ok || got != s {
		t.Fatalf("lookup(%q) = %v, %v; want inserted state", key, got, ok)
	}
	if c.state(s.ID()) != s {
		t.Error("state(ID) does not return the inserted state")
	}

	if _, ok := c.lookup(stateKey([]nfa.StateID{1, 2})); ok {
		t.Error("lookup of an unknown set succeeded")
	}

	if _, ok := c.insert(stateKey([]nfa.StateID{4}), []nfa.StateID{4}, false); !ok {
		t.Fatal("second insert failed")
	}
	if _, ok := c.insert(stateKey([]nfa.StateID{5}), []nfa.StateID{5}, false); ok {
		t.Error("insert into a full cache succeeded")
	}
}

func TestCacheClearKeepMemory(t *testing.T) {
	d := newDFA(t, `abc`, DefaultConfig())
	c := d.NewCache()

	if _, err := d.IsMatchAt(c, []byte("abc"), 0); err != nil {
		t.Fatal(err)
	}
	old := c.states[0]
	c.clearKeepMemory()

	if c.Size() != 0 {
		t.Errorf("Size() after clear = %d, want 0", c.Size())
	}
	if c.ClearCount() != 1 {
		t.Errorf("ClearCount() after clear = %d, want 1", c.ClearCount())
	}
	if c.start[0] != nil || c.start[1] != nil {
		t.Error("start states survived a clear")
	}
	if old.NFAStates() == nil {
		t.Error("states obtained before the clear must stay readable")
	}

	c.resetSearch()
	if c.ClearCount() != 0 {
		t.Errorf("ClearCount() after reset = %d, want 0", c.ClearCount())
	}
}

func TestStateKey(t *testing.T) {
	tests := []struct {
		name string
		a, b []nfa.StateID
		same bool
	}{
		{"equal", []nfa.StateID{1, 2}, []nfa.StateID{1, 2}, true},
		{"different", []nfa.StateID{1, 2}, []nfa.StateID{1, 3}, false},
		{"prefix", []nfa.StateID{1}, []nfa.StateID{1, 0}, false},
		{"empty", nil, []nfa.StateID{}, true},
		{"large ids", []nfa.StateID{256}, []nfa.StateID{1, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stateKey(tt.a) == stateKey(tt.b); got != tt.same {
				t.Errorf("stateKey(%v) == stateKey(%v) is %v, want %v", tt.a, tt.b, got, tt.same)
			}
		})
	}
}

func TestStateTransitions(t *testing.T) {
	d := newDFA(t, `ab`, DefaultConfig())
	c := d.NewCache()

	if _, err := d.IsMatchAt(c, []byte("ab"), 0); err != nil {
		t.Fatal(err)
	}
	start := c.start[1]
	if start == nil {
		t.Fatal("start state not cached")
	}
	classes := d.NFA().ByteClasses()
	next, ok := start.Transition(classes.Get('a'))
	if !ok || next == DeadState {
		t.Fatalf("start.Transition('a') = %v, %v", next, ok)
	}
	if _, ok := start.Transition(classes.Get('z')); ok {
		t.Error("transition on an unseen byte is cached")
	}
	if start.TransitionCount() != 1 {
		t.Errorf("TransitionCount() = %d, want 1", start.TransitionCount())
	}
}
