package onepass

import "github.com/coregx/rure/nfa"

// Epsilons records what happens on the zero-width path to a consuming or
// match state: the capture slots to save and the assertions that must hold.
//
// Bit layout:
//   - Bits 32-41: look-around assertions, one bit per nfa.Look
//   - Bits 0-31: slot update mask (one bit per slot)
type Epsilons uint64

const (
	lookShift = 32
	lookBits  = 10
	lookMask  = ((1 << lookBits) - 1) << lookShift
	slotMask  = 0xFFFFFFFF

	// MaxSlots is the number of slots an Epsilons value can address.
	MaxSlots = 32
)

// WithSlot returns e with slot added to the save set.
func (e Epsilons) WithSlot(slot uint32) Epsilons {
	return e | Epsilons(1)<<slot
}

// WithLook returns e with look added to the required assertions.
func (e Epsilons) WithLook(look nfa.Look) Epsilons {
	return e | Epsilons(1)<<(lookShift+uint(look)-1)
}

// SlotMask returns the 32-bit slot update mask.
func (e Epsilons) SlotMask() uint32 {
	//nolint:gosec // G115: masked to 32 bits
	return uint32(e & slotMask)
}

// Looks returns the assertion bits.
func (e Epsilons) Looks() uint16 {
	//nolint:gosec // G115: look-around is 10 bits max
	return uint16((e & lookMask) >> lookShift)
}

// LooksHold reports whether every required assertion holds at pos.
func (e Epsilons) LooksHold(haystack []byte, pos int) bool {
	looks := e.Looks()
	for look := nfa.Look(1); looks != 0; look++ {
		if looks&1 != 0 && !look.Matches(haystack, pos) {
			return false
		}
		looks >>= 1
	}
	return true
}

// UpdateSlots sets slots[i] = pos for every slot i in the mask.
func (e Epsilons) UpdateSlots(slots []int, pos int) {
	mask := e.SlotMask()
	for i := 0; mask != 0 && i < len(slots); i++ {
		if mask&1 != 0 {
			slots[i] = pos
		}
		mask >>= 1
	}
}

// Transition encodes a DFA transition and its epsilons in 64 bits.
//
// Bit layout (from high to low):
//   - Bits 43-63 (21 bits): Next StateID (max 2M states)
//   - Bit 42 (1 bit): MatchWins flag for leftmost-first semantics
//   - Bits 0-41: Epsilons applied before the byte is consumed
//
// A single uint64 lookup per input byte yields everything the search needs.
type Transition uint64

const (
	stateIDBits  = 21
	stateIDShift = 64 - stateIDBits // 43
	stateIDMask  = (1 << stateIDBits) - 1

	matchWinsShift = 42
	matchWinsMask  = uint64(1) << matchWinsShift

	epsilonsMask = 1<<matchWinsShift - 1

	// DeadState represents a dead/fail state (no valid transition)
	DeadState StateID = 0

	// MaxStateID is the maximum valid state ID (21 bits)
	MaxStateID StateID = (1 << stateIDBits) - 1
)

// NewTransition creates a transition to next. matchWins marks a transition
// that has lower priority than a match of the state it leaves.
func NewTransition(next StateID, matchWins bool, eps Epsilons) Transition {
	t := Transition(next) << stateIDShift
	if matchWins {
		t |= Transition(matchWinsMask)
	}
	return t | Transition(eps)&epsilonsMask
}

// NextState extracts the next state ID from the transition.
func (t Transition) NextState() StateID {
	//nolint:gosec // G115: masked value is within StateID range (21 bits max), safe conversion
	return StateID((t >> stateIDShift) & stateIDMask)
}

// IsDead returns true if this transition leads to a dead state.
func (t Transition) IsDead() bool {
	return t.NextState() == DeadState
}

// IsMatchWins reports whether a match in the current state beats taking
// this transition.
func (t Transition) IsMatchWins() bool {
	return (t & Transition(matchWinsMask)) != 0
}

// Epsilons returns the slot updates and assertions of the transition.
func (t Transition) Epsilons() Epsilons {
	return Epsilons(t) & epsilonsMask
}
