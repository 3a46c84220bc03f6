package nfa

import (
	"github.com/coregx/rure/internal/conv"
	"github.com/coregx/rure/internal/sparse"
)

// PikeVM implements the Pike VM algorithm for NFA execution.
// It simulates the NFA by maintaining a priority-ordered list of threads, one
// per NFA state, and advancing all of them in lock step over the haystack.
// Search time is O(len(haystack) * states).
//
// Threads are kept in priority order: a thread spawned by the preferred
// branch of a Split precedes the threads of the other branch, and threads
// started at earlier offsets precede later ones. When a thread reaches the
// match state, all lower-priority threads are dropped. This yields
// leftmost-first (Perl) semantics.
//
// Thread safety: PikeVM is immutable after creation. Mutable search state
// lives in PikeVMState, which must not be shared between goroutines.
type PikeVM struct {
	nfa *NFA
}

// PikeVMState holds mutable per-search state for PikeVM.
// This struct should be pooled (via sync.Pool) for concurrent usage.
type PikeVMState struct {
	curr, next threadList

	// stack drives the epsilon closure without recursion.
	stack []frame

	// scratch holds the slots of the path being explored during a closure.
	scratch []int
}

// threadList is an ordered set of NFA states with their capture slots.
type threadList struct {
	set   *sparse.SparseSet
	slots *SlotTable
}

// frameKind distinguishes exploration from undo records on the closure stack.
type frameKind uint8

const (
	frameExplore frameKind = iota
	frameRestore
)

// frame is a unit of work on the epsilon-closure or backtracking stack.
type frame struct {
	kind frameKind
	sid  StateID
	at   int // position (explore) or previous slot value (restore)
	slot uint32
}

// NewPikeVM creates a new PikeVM for the given NFA
func NewPikeVM(nfa *NFA) *PikeVM {
	return &PikeVM{nfa: nfa}
}

// NFA returns the underlying automaton.
func (p *PikeVM) NFA() *NFA {
	return p.nfa
}

// NewPikeVMState allocates search state sized for nfa.
func NewPikeVMState(nfa *NFA) *PikeVMState {
	n := conv.IntToUint32(nfa.States())
	return &PikeVMState{
		curr: threadList{
			set:   sparse.NewSparseSet(n),
			slots: NewSlotTable(nfa.States(), nfa.SlotCount()),
		},
		next: threadList{
			set:   sparse.NewSparseSet(n),
			slots: NewSlotTable(nfa.States(), nfa.SlotCount()),
		},
		stack:   make([]frame, 0, 16),
		scratch: make([]int, nfa.SlotCount()),
	}
}

// IsMatch reports whether the NFA matches anywhere in haystack[start:].
// Look-around assertions see the whole haystack.
func (p *PikeVM) IsMatch(state *PikeVMState, haystack []byte, start int) bool {
	return p.Search(state, haystack, start, false, nil)
}

// Search runs the NFA over haystack beginning at start.
//
// slots receives the positions of the winning match: slots 0 and 1 are its
// bounds, slots 2k and 2k+1 those of group k (-1 when the group did not
// participate). Only len(slots) slots are tracked, so a nil slice turns the
// search into a pure existence test that stops at the first match state.
//
// When anchored is true, only matches beginning exactly at start are found.
// It reports whether a match was found; slots are only written on success.
func (p *PikeVM) Search(state *PikeVMState, haystack []byte, start int, anchored bool, slots []int) bool {
	if start < 0 || start > len(haystack) {
		return false
	}
	if p.nfa.startAnchored && start > 0 {
		return false
	}
	anchored = anchored || p.nfa.startAnchored

	nslots := len(slots)
	if nslots > p.nfa.SlotCount() {
		nslots = p.nfa.SlotCount()
		slots = slots[:nslots]
	}
	curr, next := &state.curr, &state.next
	curr.reset(nslots)
	next.reset(nslots)

	matched := false
	for at := start; ; at++ {
		// Seed a new thread at this offset with the lowest priority, unless
		// a match was already found (it would start further right).
		if !matched && (!anchored || at == start) {
			for i := 0; i < nslots; i++ {
				state.scratch[i] = -1
			}
			p.closure(state, curr, haystack, at, p.nfa.start, state.scratch[:nslots])
		}
		if curr.set.Len() == 0 {
			if matched || anchored || at >= len(haystack) {
				break
			}
			continue
		}

		if p.step(curr, next, state, haystack, at, slots) {
			matched = true
			if nslots == 0 {
				return true
			}
		}

		curr, next = next, curr
		next.reset(nslots)
		if at >= len(haystack) {
			break
		}
	}
	return matched
}

// step processes every thread in curr at position at. Threads that consume
// haystack[at] spawn closures into next. On reaching the match state the
// thread's slots are copied out and lower-priority threads are cut.
func (p *PikeVM) step(curr, next *threadList, state *PikeVMState, haystack []byte, at int, slots []int) bool {
	for _, v := range curr.set.Values() {
		sid := StateID(v)
		s := &p.nfa.states[sid]
		switch s.kind {
		case StateMatch:
			copy(slots, curr.slots.ForState(sid))
			return true
		case StateByteRange, StateSparse:
			if at >= len(haystack) {
				continue
			}
			target := s.Step(haystack[at])
			if target == InvalidState {
				continue
			}
			threadSlots := curr.slots.ForState(sid)
			copy(state.scratch, threadSlots)
			p.closure(state, next, haystack, at+1, target, state.scratch[:len(threadSlots)])
		}
	}
	return false
}

// closure adds sid and every state reachable from it via epsilon transitions
// to list, in priority order. scratch carries the capture slots of the path
// and is restored to its entry value on return.
func (p *PikeVM) closure(state *PikeVMState, list *threadList, haystack []byte, at int, sid StateID, scratch []int) {
	stack := append(state.stack[:0], frame{kind: frameExplore, sid: sid})
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.kind == frameRestore {
			scratch[f.slot] = f.at
			continue
		}

		sid := f.sid
	explore:
		for {
			if !list.set.Insert(uint32(sid)) {
				break
			}
			s := &p.nfa.states[sid]
			switch s.kind {
			case StateMatch, StateByteRange, StateSparse:
				copy(list.slots.ForState(sid), scratch)
				break explore
			case StateEpsilon:
				sid = s.next
			case StateSplit:
				stack = append(stack, frame{kind: frameExplore, sid: s.right})
				sid = s.left
			case StateCapture:
				if int(s.slot) < len(scratch) {
					stack = append(stack, frame{kind: frameRestore, slot: s.slot, at: scratch[s.slot]})
					scratch[s.slot] = at
				}
				sid = s.next
			case StateLook:
				if !checkLook(s.look, haystack, at) {
					break explore
				}
				sid = s.next
			default:
				break explore
			}
		}
	}
	state.stack = stack
}

func (l *threadList) reset(nslots int) {
	l.set.Clear()
	l.slots.SetActiveSlots(nslots)
}
