package onepass

import (
	"testing"

	"github.com/coregx/rure/nfa"
)

func TestTransitionCreationAndAccessors(t *testing.T) {
	tests := []struct {
		name      string
		next      StateID
		matchWins bool
		slots     uint32
	}{
		{name: "dead state", next: DeadState, matchWins: false, slots: 0},
		{name: "match wins all slots", next: 1, matchWins: true, slots: 0xFFFFFFFF},
		{name: "max state ID", next: MaxStateID, matchWins: false, slots: 0x00000001},
		{name: "mid state match some slots", next: 42, matchWins: true, slots: 0x00000F0F},
		{name: "single slot bit 31", next: 5, matchWins: false, slots: 0x80000000},
		{name: "alternating bits", next: 100, matchWins: true, slots: 0xAAAAAAAA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var eps Epsilons
			for i := uint32(0); i < 32; i++ {
				if tt.slots&(1<<i) != 0 {
					eps = eps.WithSlot(i)
				}
			}
			trans := NewTransition(tt.next, tt.matchWins, eps)

			if got := trans.NextState(); got != tt.next {
				t.Errorf("NextState() = %d, want %d", got, tt.next)
			}
			if got := trans.IsMatchWins(); got != tt.matchWins {
				t.Errorf("IsMatchWins() = %v, want %v", got, tt.matchWins)
			}
			if got := trans.Epsilons().SlotMask(); got != tt.slots {
				t.Errorf("SlotMask() = %#x, want %#x", got, tt.slots)
			}
			if got := trans.IsDead(); got != (tt.next == DeadState) {
				t.Errorf("IsDead() = %v", got)
			}
		})
	}
}

func TestEpsilonsLooks(t *testing.T) {
	eps := Epsilons(0).WithLook(nfa.LookStartText).WithLook(nfa.LookNoWordBoundary).WithSlot(3)
	if got := eps.Looks(); got != 0b100001 {
		t.Errorf("Looks() = %#b, want 0b100001", got)
	}
	if got := eps.SlotMask(); got != 1<<3 {
		t.Errorf("SlotMask() = %#x, want 0x8", got)
	}

	trans := NewTransition(7, true, eps)
	if trans.Epsilons() != eps {
		t.Errorf("Epsilons() = %#x, want %#x", trans.Epsilons(), eps)
	}
	if trans.NextState() != 7 || !trans.IsMatchWins() {
		t.Errorf("epsilons clobbered the state or flag: %#x", uint64(trans))
	}
}

func TestEpsilonsLooksHold(t *testing.T) {
	tests := []struct {
		name     string
		looks    []nfa.Look
		haystack string
		pos      int
		want     bool
	}{
		{"none", nil, "abc", 1, true},
		{"start text at 0", []nfa.Look{nfa.LookStartText}, "abc", 0, true},
		{"start text at 1", []nfa.Look{nfa.LookStartText}, "abc", 1, false},
		{"end text", []nfa.Look{nfa.LookEndText}, "abc", 3, true},
		{"word boundary", []nfa.Look{nfa.LookWordBoundary}, "a b", 1, true},
		{"both must hold", []nfa.Look{nfa.LookStartLine, nfa.LookWordBoundary}, "x\nab", 2, true},
		{"one fails", []nfa.Look{nfa.LookStartLine, nfa.LookNoWordBoundary}, "x\nab", 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var eps Epsilons
			for _, look := range tt.looks {
				eps = eps.WithLook(look)
			}
			if got := eps.LooksHold([]byte(tt.haystack), tt.pos); got != tt.want {
				t.Errorf("LooksHold(%q, %d) = %v, want %v", tt.haystack, tt.pos, got, tt.want)
			}
		})
	}
}

func TestEpsilonsUpdateSlots(t *testing.T) {
	eps := Epsilons(0).WithSlot(0).WithSlot(3).WithSlot(5)

	slots := []int{-1, -1, -1, -1}
	eps.UpdateSlots(slots, 9)
	want := []int{9, -1, -1, 9}
	for i := range want {
		if slots[i] != want[i] {
			t.Fatalf("slots = %v, want %v", slots, want)
		}
	}

	// Slots past the end of the slice are ignored.
	eps.UpdateSlots(nil, 1)
}

func TestNextPowerOf2(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 1}, {1, 1}, {2, 2}, {3, 4}, {5, 8}, {64, 64}, {65, 128}, {256, 256},
	}
	for _, tt := range tests {
		if got := nextPowerOf2(tt.n); got != tt.want {
			t.Errorf("nextPowerOf2(%d) = %d, want %d", tt.n, got, tt.want)
		}
		if got := log2(tt.want); 1<<got != tt.want {
			t.Errorf("log2(%d) = %d", tt.want, got)
		}
	}
}
