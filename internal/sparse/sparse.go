// Package sparse provides a sparse set of NFA state IDs.
//
// The set supports O(1) insert, membership and clear while keeping insertion
// order in a dense array, which the PikeVM relies on: thread priority is the
// order in which states are first reached.
package sparse

// SparseSet is a set of uint32 values drawn from [0, capacity).
type SparseSet struct {
	sparse []uint32 // value -> index in dense
	dense  []uint32 // values in insertion order
}

// NewSparseSet creates a set that can hold values in [0, capacity).
func NewSparseSet(capacity uint32) *SparseSet {
	return &SparseSet{
		sparse: make([]uint32, capacity),
		dense:  make([]uint32, 0, capacity),
	}
}

// Insert adds value and reports whether it was newly added.
// Panics if value >= Capacity().
func (s *SparseSet) Insert(value uint32) bool {
	if s.Contains(value) {
		return false
	}
	//nolint:gosec // G115: len(dense) < capacity which fits in uint32
	s.sparse[value] = uint32(len(s.dense))
	s.dense = append(s.dense, value)
	return true
}

// Contains reports whether value is in the set.
func (s *SparseSet) Contains(value uint32) bool {
	if uint64(value) >= uint64(len(s.sparse)) {
		return false
	}
	idx := s.sparse[value]
	return uint64(idx) < uint64(len(s.dense)) && s.dense[idx] == value
}

// Clear removes all values in O(1).
func (s *SparseSet) Clear() {
	s.dense = s.dense[:0]
}

// Len returns the number of values in the set.
func (s *SparseSet) Len() int {
	return len(s.dense)
}

// Capacity returns the exclusive upper bound of storable values.
func (s *SparseSet) Capacity() int {
	return len(s.sparse)
}

// Values returns the values in insertion order.
// The slice is valid until the next mutation.
func (s *SparseSet) Values() []uint32 {
	return s.dense
}
