package nfa

// SlotTable is a 2D table (flattened to 1D) storing capture slot values per NFA state.
//
// Each state owns a row of slots. Dynamic sizing lets a search track 0 slots
// (IsMatch), 2 slots (Find) or every slot (Captures) with the same table.
//
// Memory layout: table[stateID * slotsPerState + slotIndex]
type SlotTable struct {
	// table holds the slot values; -1 means "not set"
	table []int

	// slotsPerState is the stride: 2 * NFA.CaptureCount().
	slotsPerState int

	// activeSlots is the number of slots in use for the current search.
	activeSlots int
}

// NewSlotTable creates a table for numStates states with slotsPerState slots each.
// All slots start unset.
func NewSlotTable(numStates, slotsPerState int) *SlotTable {
	st := &SlotTable{
		slotsPerState: slotsPerState,
		activeSlots:   slotsPerState,
	}
	if numStates > 0 && slotsPerState > 0 {
		st.table = make([]int, numStates*slotsPerState)
		st.Reset()
	}
	return st
}

// ForState returns the active slots of sid. Modifying the returned slice
// modifies the table.
func (st *SlotTable) ForState(sid StateID) []int {
	if st.table == nil || st.activeSlots == 0 {
		return nil
	}
	i := int(sid) * st.slotsPerState
	return st.table[i : i+st.activeSlots]
}

// SetActiveSlots sets the number of slots tracked per state, clamped to
// [0, slotsPerState].
func (st *SlotTable) SetActiveSlots(n int) {
	if n < 0 {
		n = 0
	}
	if n > st.slotsPerState {
		n = st.slotsPerState
	}
	st.activeSlots = n
}

// ActiveSlots returns the current number of active slots.
func (st *SlotTable) ActiveSlots() int {
	return st.activeSlots
}

// Reset clears all slots to -1 (unset).
func (st *SlotTable) Reset() {
	for i := range st.table {
		st.table[i] = -1
	}
}
