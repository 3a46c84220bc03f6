package lazy

import (
	"github.com/coregx/rure/nfa"
)

// Builder constructs a Lazy DFA from an NFA.
//
// The builder only validates; determinization happens lazily during search.
type Builder struct {
	nfa    *nfa.NFA
	config Config
}

// NewBuilder creates a new DFA builder for the given NFA
func NewBuilder(n *nfa.NFA, config Config) *Builder {
	return &Builder{
		nfa:    n,
		config: config,
	}
}

// Build returns a DFA ready for searching.
//
// Returns an error if the configuration is invalid, or ErrUnsupported when
// the NFA contains line or word assertions. Only \A and \z are supported:
// DFA states carry no record of the bytes around the current position.
func (b *Builder) Build() (*DFA, error) {
	if err := b.config.Validate(); err != nil {
		return nil, err
	}
	for sid := 0; sid < b.nfa.States(); sid++ {
		s := b.nfa.State(nfa.StateID(sid))
		if s.Kind() != nfa.StateLook {
			continue
		}
		if look, _ := s.Look(); look != nfa.LookStartText && look != nfa.LookEndText {
			return nil, ErrUnsupported
		}
	}
	return &DFA{
		nfa:      b.nfa,
		config:   b.config,
		classes:  b.nfa.ByteClasses(),
		anchored: b.nfa.IsStartAnchored(),
	}, nil
}

// New builds a DFA for n with the given configuration.
func New(n *nfa.NFA, config Config) (*DFA, error) {
	return NewBuilder(n, config).Build()
}

// closure returns the sorted set of consuming and match states reachable
// from seeds through epsilon transitions. Capture states are zero-width and
// only followed. \A is followed only when atStart is set. Unless atEnd is
// set, \z states are kept in the set and resolved at the end of the haystack.
func (d *DFA) closure(c *Cache, seeds []nfa.StateID, atStart, atEnd bool) []nfa.StateID {
	c.set.Clear()
	stack := c.stack[:0]
	for i := len(seeds) - 1; i >= 0; i-- {
		stack = append(stack, seeds[i])
	}

	var out []nfa.StateID
	for len(stack) > 0 {
		sid := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !c.set.Insert(uint32(sid)) {
			continue
		}

		s := d.nfa.State(sid)
		switch s.Kind() {
		case nfa.StateByteRange, nfa.StateSparse, nfa.StateMatch:
			out = append(out, sid)
		case nfa.StateSplit:
			left, right := s.Split()
			stack = append(stack, right, left)
		case nfa.StateEpsilon:
			stack = append(stack, s.Epsilon())
		case nfa.StateCapture:
			_, next := s.Capture()
			stack = append(stack, next)
		case nfa.StateLook:
			look, next := s.Look()
			switch look {
			case nfa.LookStartText:
				if atStart {
					stack = append(stack, next)
				}
			case nfa.LookEndText:
				if atEnd {
					stack = append(stack, next)
				} else {
					out = append(out, sid)
				}
			}
		}
	}
	c.stack = stack

	sortStateIDs(out)
	return out
}

// move computes the closure of the states reached from set on byte b. An
// unanchored DFA also restarts the NFA at the next position.
func (d *DFA) move(c *Cache, set []nfa.StateID, b byte) []nfa.StateID {
	seeds := make([]nfa.StateID, 0, len(set)+1)
	for _, sid := range set {
		if next := d.nfa.State(sid).Step(b); next != nfa.InvalidState {
			seeds = append(seeds, next)
		}
	}
	if !d.anchored {
		seeds = append(seeds, d.nfa.Start())
	}
	return d.closure(c, seeds, false, false)
}

// acceptsAtEnd reports whether set reaches the match state once the \z
// assertions it holds are satisfied.
func (d *DFA) acceptsAtEnd(c *Cache, set []nfa.StateID, atStart bool) bool {
	var pending []nfa.StateID
	for _, sid := range set {
		if d.nfa.State(sid).Kind() == nfa.StateLook {
			pending = append(pending, sid)
		}
	}
	if len(pending) == 0 {
		return false
	}
	return d.containsMatchState(d.closure(c, pending, atStart, true))
}

// containsMatchState reports whether set holds the NFA match state.
func (d *DFA) containsMatchState(set []nfa.StateID) bool {
	for _, sid := range set {
		if d.nfa.State(sid).Kind() == nfa.StateMatch {
			return true
		}
	}
	return false
}
