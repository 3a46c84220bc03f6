package lazy

import (
	"fmt"

	"github.com/coregx/rure/nfa"
)

// StateID identifies a DFA state within one Cache.
type StateID uint32

// Special state constants
const (
	// InvalidState marks a transition that has not been computed yet.
	InvalidState StateID = 0xFFFFFFFF

	// DeadState represents a dead/failure state with no outgoing transitions.
	// Once in this state, the DFA can never match.
	DeadState StateID = 0xFFFFFFFE
)

// State represents a DFA state with its transitions.
//
// A DFA state stands for a set of NFA states: the consuming states and the
// match state reachable through epsilon transitions. Transitions are filled
// in lazily, one input byte at a time.
type State struct {
	id StateID

	// transitions maps a byte class to the next state ID
	transitions map[byte]StateID

	// isMatch indicates if this is an accepting state
	isMatch bool

	// nfaStates is sorted and duplicate-free.
	nfaStates []nfa.StateID
}

func newState(id StateID, nfaStates []nfa.StateID, isMatch bool) *State {
	return &State{
		id:          id,
		transitions: make(map[byte]StateID, 16),
		isMatch:     isMatch,
		nfaStates:   nfaStates,
	}
}

// ID returns the state's identifier
func (s *State) ID() StateID {
	return s.id
}

// IsMatch returns true if this is an accepting state
func (s *State) IsMatch() bool {
	return s.isMatch
}

// NFAStates returns the NFA states represented by this DFA state
func (s *State) NFAStates() []nfa.StateID {
	return s.nfaStates
}

// Transition returns the cached next state for a byte class.
func (s *State) Transition(class byte) (StateID, bool) {
	next, ok := s.transitions[class]
	return next, ok
}

// TransitionCount returns the number of cached transitions
func (s *State) TransitionCount() int {
	return len(s.transitions)
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	return fmt.Sprintf("DFAState(id=%d, isMatch=%v, transitions=%d, nfaStates=%v)",
		s.id, s.isMatch, len(s.transitions), s.nfaStates)
}

// stateKey encodes a sorted NFA state set exactly, four bytes per state.
func stateKey(nfaStates []nfa.StateID) string {
	buf := make([]byte, 0, 4*len(nfaStates))
	for _, sid := range nfaStates {
		buf = append(buf, byte(sid), byte(sid>>8), byte(sid>>16), byte(sid>>24))
	}
	return string(buf)
}

// sortStateIDs performs insertion sort on NFA state IDs.
// State sets are small and mostly ordered already.
func sortStateIDs(states []nfa.StateID) {
	for i := 1; i < len(states); i++ {
		key := states[i]
		j := i - 1
		for j >= 0 && states[j] > key {
			states[j+1] = states[j]
			j--
		}
		states[j+1] = key
	}
}
