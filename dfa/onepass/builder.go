package onepass

import (
	"github.com/coregx/rure/internal/conv"
	"github.com/coregx/rure/internal/sparse"
	"github.com/coregx/rure/nfa"
)

// DefaultMaxStates bounds the DFA for Build callers without a limit of
// their own.
const DefaultMaxStates = 4096

// builder constructs a one-pass DFA from an NFA.
//
// Each DFA state stands for one NFA state, its root: the start state or the
// target of a byte transition. A state's row is filled by walking the
// epsilon closure of its root in priority order.
type builder struct {
	nfa       *nfa.NFA
	classes   *nfa.ByteClasses
	stride2   uint
	maxStates int

	table    []Transition
	isMatch  []bool
	matchEps []Epsilons
	roots    []nfa.StateID
	nfaToDFA map[nfa.StateID]StateID

	// Working state for the closure walk
	seen  *sparse.SparseSet
	stack []stackEntry
}

// stackEntry is an NFA state on the closure stack with the epsilons
// accumulated on the way to it.
type stackEntry struct {
	sid nfa.StateID
	eps Epsilons
}

// Build attempts to build a one-pass DFA from the given NFA.
// Returns (nil, ErrNotOnePass) if the pattern is not one-pass,
// ErrTooManyCaptures if it has more than 16 groups and ErrTooManyStates if
// the DFA would need more than maxStates states.
func Build(n *nfa.NFA, maxStates int) (*DFA, error) {
	if n.SlotCount() > MaxSlots {
		return nil, ErrTooManyCaptures
	}
	if maxStates <= 0 || maxStates > int(MaxStateID) {
		maxStates = int(MaxStateID)
	}

	classes := n.ByteClasses()
	stride := nextPowerOf2(classes.AlphabetLen())
	b := &builder{
		nfa:       n,
		classes:   classes,
		stride2:   log2(stride),
		maxStates: maxStates,
		nfaToDFA:  make(map[nfa.StateID]StateID),
		seen:      sparse.NewSparseSet(conv.IntToUint32(n.States())),
		stack:     make([]stackEntry, 0, 16),
	}

	// Dead state: a row of zero transitions.
	b.addRow(nfa.InvalidState)

	start, err := b.stateFor(n.Start())
	if err != nil {
		return nil, err
	}
	// roots grows while rows are compiled.
	for sid := 1; sid < len(b.roots); sid++ {
		if err := b.compileState(StateID(conv.IntToUint32(sid))); err != nil {
			return nil, err
		}
	}

	return &DFA{
		nfa:      n,
		table:    b.table,
		classes:  classes,
		stride2:  b.stride2,
		start:    start,
		isMatch:  b.isMatch,
		matchEps: b.matchEps,
	}, nil
}

func (b *builder) addRow(root nfa.StateID) StateID {
	sid := StateID(conv.IntToUint32(len(b.roots)))
	b.roots = append(b.roots, root)
	b.table = append(b.table, make([]Transition, 1<<b.stride2)...)
	b.isMatch = append(b.isMatch, false)
	b.matchEps = append(b.matchEps, 0)
	return sid
}

// stateFor returns the DFA state rooted at an NFA state, adding it to the
// worklist the first time.
func (b *builder) stateFor(root nfa.StateID) (StateID, error) {
	if sid, ok := b.nfaToDFA[root]; ok {
		return sid, nil
	}
	if len(b.roots)-1 >= b.maxStates {
		return DeadState, ErrTooManyStates
	}
	sid := b.addRow(root)
	b.nfaToDFA[root] = sid
	return sid, nil
}

// compileState fills the row of sid from the epsilon closure of its root.
//
// The pattern is not one-pass when the closure reaches an NFA state twice,
// reaches the match state twice, or leads one byte class to two different
// transitions.
func (b *builder) compileState(sid StateID) error {
	b.seen.Clear()
	b.stack = b.stack[:0]
	if err := b.push(b.roots[sid], 0); err != nil {
		return err
	}

	matched := false
	for len(b.stack) > 0 {
		entry := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]

		state := b.nfa.State(entry.sid)
		switch state.Kind() {
		case nfa.StateByteRange:
			lo, hi, next := state.ByteRange()
			if err := b.addTransitions(sid, lo, hi, next, matched, entry.eps); err != nil {
				return err
			}

		case nfa.StateSparse:
			for _, t := range state.Transitions() {
				if err := b.addTransitions(sid, t.Lo, t.Hi, t.Next, matched, entry.eps); err != nil {
					return err
				}
			}

		case nfa.StateMatch:
			if matched {
				return ErrNotOnePass
			}
			matched = true
			b.isMatch[sid] = true
			b.matchEps[sid] = entry.eps

		case nfa.StateSplit:
			// Left has priority, so it is popped first.
			left, right := state.Split()
			if err := b.push(right, entry.eps); err != nil {
				return err
			}
			if err := b.push(left, entry.eps); err != nil {
				return err
			}

		case nfa.StateEpsilon:
			if err := b.push(state.Epsilon(), entry.eps); err != nil {
				return err
			}

		case nfa.StateCapture:
			slot, next := state.Capture()
			if err := b.push(next, entry.eps.WithSlot(slot)); err != nil {
				return err
			}

		case nfa.StateLook:
			look, next := state.Look()
			if err := b.push(next, entry.eps.WithLook(look)); err != nil {
				return err
			}
		}
	}
	return nil
}

// push adds an NFA state to the closure stack. A second epsilon path to the
// same state makes the pattern ambiguous.
func (b *builder) push(sid nfa.StateID, eps Epsilons) error {
	if !b.seen.Insert(uint32(sid)) {
		return ErrNotOnePass
	}
	b.stack = append(b.stack, stackEntry{sid: sid, eps: eps})
	return nil
}

// addTransitions sets the transitions of sid for every class in [lo, hi].
func (b *builder) addTransitions(sid StateID, lo, hi byte, next nfa.StateID, matchWins bool, eps Epsilons) error {
	target, err := b.stateFor(next)
	if err != nil {
		return err
	}
	trans := NewTransition(target, matchWins, eps)
	row := int(sid) << b.stride2
	for by := int(lo); by <= int(hi); by++ {
		class := b.classes.Get(byte(by))
		if by > int(lo) && class == b.classes.Get(byte(by-1)) {
			continue
		}
		idx := row + int(class)
		switch old := b.table[idx]; {
		case old.IsDead():
			b.table[idx] = trans
		case old != trans:
			return ErrNotOnePass
		}
	}
	return nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// log2 returns the base-2 logarithm of n (must be power of 2).
func log2(n int) uint {
	var k uint
	for n > 1 {
		n >>= 1
		k++
	}
	return k
}
