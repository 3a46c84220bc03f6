package nfa

import (
	"fmt"
)

// StateID uniquely identifies an NFA state.
type StateID uint32

// InvalidState represents an unset or unpatched state reference.
const InvalidState StateID = 0xFFFFFFFF

// StateKind identifies the type of NFA state and determines which transitions are valid.
type StateKind uint8

const (
	// StateMatch is the accepting state.
	StateMatch StateKind = iota

	// StateByteRange consumes one byte in [lo, hi].
	StateByteRange

	// StateSparse consumes one byte from a set of disjoint ranges, each with
	// its own target.
	StateSparse

	// StateSplit is an epsilon transition to two states. The left target has
	// priority over the right one.
	StateSplit

	// StateEpsilon is an epsilon transition to one state.
	StateEpsilon

	// StateCapture records the current position into a capture slot.
	StateCapture

	// StateLook is a zero-width assertion.
	StateLook

	// StateFail has no transitions.
	StateFail
)

// String returns a human-readable representation of the StateKind
func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateByteRange:
		return "ByteRange"
	case StateSparse:
		return "Sparse"
	case StateSplit:
		return "Split"
	case StateEpsilon:
		return "Epsilon"
	case StateCapture:
		return "Capture"
	case StateLook:
		return "Look"
	case StateFail:
		return "Fail"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// State is a single NFA state. Its kind determines which fields are valid.
type State struct {
	kind StateKind

	// ByteRange
	lo, hi byte
	next   StateID // ByteRange, Epsilon, Capture, Look

	// Sparse
	transitions []Transition

	// Split
	left, right StateID

	// Capture: slot 2*group is the group start, 2*group+1 its end
	slot uint32

	// Look
	look Look
}

// Transition is one byte range of a Sparse state.
type Transition struct {
	Lo   byte    // inclusive lower bound
	Hi   byte    // inclusive upper bound
	Next StateID // target state
}

// Kind returns the state's type
func (s *State) Kind() StateKind {
	return s.kind
}

// ByteRange returns the range and target of a ByteRange state.
func (s *State) ByteRange() (lo, hi byte, next StateID) {
	if s.kind == StateByteRange {
		return s.lo, s.hi, s.next
	}
	return 0, 0, InvalidState
}

// Transitions returns the transitions of a Sparse state.
func (s *State) Transitions() []Transition {
	if s.kind == StateSparse {
		return s.transitions
	}
	return nil
}

// Split returns the prioritized targets of a Split state.
func (s *State) Split() (left, right StateID) {
	if s.kind == StateSplit {
		return s.left, s.right
	}
	return InvalidState, InvalidState
}

// Epsilon returns the target of an Epsilon state.
func (s *State) Epsilon() StateID {
	if s.kind == StateEpsilon {
		return s.next
	}
	return InvalidState
}

// Capture returns the slot and target of a Capture state.
func (s *State) Capture() (slot uint32, next StateID) {
	if s.kind == StateCapture {
		return s.slot, s.next
	}
	return 0, InvalidState
}

// Look returns the assertion and target of a Look state.
func (s *State) Look() (Look, StateID) {
	if s.kind == StateLook {
		return s.look, s.next
	}
	return 0, InvalidState
}

// Step returns the target for byte b, or InvalidState if b is rejected.
// Only meaningful for ByteRange and Sparse states.
func (s *State) Step(b byte) StateID {
	switch s.kind {
	case StateByteRange:
		if s.lo <= b && b <= s.hi {
			return s.next
		}
	case StateSparse:
		for _, t := range s.transitions {
			if b < t.Lo {
				break
			}
			if b <= t.Hi {
				return t.Next
			}
		}
	}
	return InvalidState
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	switch s.kind {
	case StateMatch:
		return "Match"
	case StateByteRange:
		if s.lo == s.hi {
			return fmt.Sprintf("ByteRange %q -> %d", s.lo, s.next)
		}
		return fmt.Sprintf("ByteRange [%q-%q] -> %d", s.lo, s.hi, s.next)
	case StateSparse:
		return fmt.Sprintf("Sparse %d transitions", len(s.transitions))
	case StateSplit:
		return fmt.Sprintf("Split -> [%d, %d]", s.left, s.right)
	case StateEpsilon:
		return fmt.Sprintf("Epsilon -> %d", s.next)
	case StateCapture:
		return fmt.Sprintf("Capture slot %d -> %d", s.slot, s.next)
	case StateLook:
		return fmt.Sprintf("Look %s -> %d", s.look, s.next)
	default:
		return s.kind.String()
	}
}

// NFA is a compiled Thompson NFA.
//
// Every NFA brackets the pattern with the capture states of group 0, so the
// overall match span is recorded in slots 0 and 1 like any other group.
// An NFA is immutable after Build and safe for concurrent use.
type NFA struct {
	states []State
	start  StateID

	// startAnchored is set when every match must begin at offset 0 (\A).
	startAnchored bool

	// utf8 is set when classes were compiled to UTF-8 sequences.
	utf8 bool

	// classes partitions bytes by the transitions that distinguish them.
	classes ByteClasses

	// captureNames has one entry per group; index 0 (the whole match) and
	// unnamed groups are "".
	captureNames []string
}

// Start returns the start state.
func (n *NFA) Start() StateID {
	return n.start
}

// State returns the state with the given ID, or nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// States returns the total number of states.
func (n *NFA) States() int {
	return len(n.states)
}

// IsStartAnchored reports whether matches can only begin at offset 0.
func (n *NFA) IsStartAnchored() bool {
	return n.startAnchored
}

// ByteClasses returns the byte equivalence classes of the NFA's
// transitions.
func (n *NFA) ByteClasses() *ByteClasses {
	return &n.classes
}

// IsUTF8 reports whether the NFA matches UTF-8 encoded codepoints.
func (n *NFA) IsUTF8() bool {
	return n.utf8
}

// CaptureCount returns the number of groups including group 0.
func (n *NFA) CaptureCount() int {
	return len(n.captureNames)
}

// SlotCount returns the number of capture slots (two per group).
func (n *NFA) SlotCount() int {
	return 2 * len(n.captureNames)
}

// SubexpNames returns a copy of the group names.
//
// Example:
//
//	pattern: `(?P<year>\d+)-(\d+)-(?P<day>\d+)`
//	returns: ["", "year", "", "day"]
func (n *NFA) SubexpNames() []string {
	names := make([]string, len(n.captureNames))
	copy(names, n.captureNames)
	return names
}

// String returns a human-readable summary of the NFA
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d, captures: %d, utf8: %v}",
		len(n.states), n.start, len(n.captureNames), n.utf8)
}
