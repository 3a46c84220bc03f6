package nfa

import (
	"fmt"
)

// Builder constructs NFAs incrementally using a low-level API.
// This provides full control over NFA construction and is used by the Compiler.
type Builder struct {
	states []State
	start  StateID
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states: make([]State, 0, capacity),
		start:  InvalidState,
	}
}

func (b *Builder) add(s State) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, s)
	return id
}

// AddMatch adds a match (accepting) state and returns its ID
func (b *Builder) AddMatch() StateID {
	return b.add(State{kind: StateMatch})
}

// AddByteRange adds a state that transitions on a single byte or byte range [lo, hi].
// For a single byte, set lo == hi.
func (b *Builder) AddByteRange(lo, hi byte, next StateID) StateID {
	return b.add(State{kind: StateByteRange, lo: lo, hi: hi, next: next})
}

// AddSparse adds a state with multiple byte range transitions (character class).
// Transitions must be sorted and non-overlapping. The slice is copied.
func (b *Builder) AddSparse(transitions []Transition) StateID {
	trans := make([]Transition, len(transitions))
	copy(trans, transitions)
	return b.add(State{kind: StateSparse, transitions: trans})
}

// AddSplit adds a state with epsilon transitions to two states.
// Paths through left are preferred over paths through right.
func (b *Builder) AddSplit(left, right StateID) StateID {
	return b.add(State{kind: StateSplit, left: left, right: right})
}

// AddEpsilon adds an epsilon transition state
func (b *Builder) AddEpsilon(next StateID) StateID {
	return b.add(State{kind: StateEpsilon, next: next})
}

// AddFail adds a state that never matches
func (b *Builder) AddFail() StateID {
	return b.add(State{kind: StateFail})
}

// AddCapture adds a state recording the position of a group boundary.
func (b *Builder) AddCapture(group uint32, isStart bool, next StateID) StateID {
	slot := group * 2
	if !isStart {
		slot++
	}
	return b.add(State{kind: StateCapture, slot: slot, next: next})
}

// AddLook adds a zero-width assertion state.
func (b *Builder) AddLook(look Look, next StateID) StateID {
	return b.add(State{kind: StateLook, look: look, next: next})
}

// Patch updates a state's target. This is used during compilation to handle
// forward references (e.g., loops, alternations).
// This only works for states with a single 'next' target.
func (b *Builder) Patch(stateID, target StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{
			Message: "state ID out of bounds",
			StateID: stateID,
		}
	}

	s := &b.states[stateID]
	switch s.kind {
	case StateByteRange, StateEpsilon, StateCapture, StateLook:
		s.next = target
		return nil
	default:
		return &BuildError{
			Message: fmt.Sprintf("cannot patch state of kind %s", s.kind),
			StateID: stateID,
		}
	}
}

// PatchSplit updates the left and right targets of a Split state
func (b *Builder) PatchSplit(stateID StateID, left, right StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{
			Message: "state ID out of bounds",
			StateID: stateID,
		}
	}

	s := &b.states[stateID]
	if s.kind != StateSplit {
		return &BuildError{
			Message: fmt.Sprintf("expected Split state, got %s", s.kind),
			StateID: stateID,
		}
	}

	s.left = left
	s.right = right
	return nil
}

// SetStart sets the starting state for the NFA
func (b *Builder) SetStart(start StateID) {
	b.start = start
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

// Validate checks that the NFA is well-formed:
// the start state is set and every reference points to an existing state.
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{Message: "start state out of bounds", StateID: b.start}
	}

	n := StateID(len(b.states))
	for i := range b.states {
		id := StateID(i)
		s := &b.states[i]
		switch s.kind {
		case StateByteRange, StateEpsilon, StateCapture, StateLook:
			if s.next >= n {
				return &BuildError{Message: fmt.Sprintf("invalid next state %d", s.next), StateID: id}
			}
		case StateSplit:
			if s.left >= n || s.right >= n {
				return &BuildError{
					Message: fmt.Sprintf("invalid split targets %d, %d", s.left, s.right),
					StateID: id,
				}
			}
		case StateSparse:
			for j, t := range s.transitions {
				if t.Next >= n {
					return &BuildError{
						Message: fmt.Sprintf("invalid transition %d target %d", j, t.Next),
						StateID: id,
					}
				}
			}
		}
	}

	return nil
}

// Build finalizes and returns the constructed NFA.
func (b *Builder) Build(opts ...BuildOption) (*NFA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	nfa := &NFA{
		states:       b.states,
		start:        b.start,
		utf8:         true,
		captureNames: []string{""},
		classes:      b.byteClasses(),
	}
	for _, opt := range opts {
		opt(nfa)
	}
	return nfa, nil
}

func (b *Builder) byteClasses() ByteClasses {
	var set ByteClassSet
	for i := range b.states {
		s := &b.states[i]
		switch s.kind {
		case StateByteRange:
			set.SetRange(s.lo, s.hi)
		case StateSparse:
			for _, t := range s.transitions {
				set.SetRange(t.Lo, t.Hi)
			}
		}
	}
	return set.ByteClasses()
}

// BuildOption is a functional option for configuring the built NFA
type BuildOption func(*NFA)

// WithStartAnchored marks the NFA as only matching at offset 0
func WithStartAnchored(anchored bool) BuildOption {
	return func(n *NFA) {
		n.startAnchored = anchored
	}
}

// WithUTF8 sets whether the NFA matches UTF-8 encoded codepoints
func WithUTF8(utf8 bool) BuildOption {
	return func(n *NFA) {
		n.utf8 = utf8
	}
}

// WithCaptureNames sets the names of capture groups in the NFA.
// Index 0 should be "" (entire match), named groups have their names, unnamed groups are "".
func WithCaptureNames(names []string) BuildOption {
	return func(n *NFA) {
		if len(names) > 0 {
			n.captureNames = make([]string, len(names))
			copy(n.captureNames, names)
		}
	}
}
