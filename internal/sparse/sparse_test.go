package sparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSparseSetInsertOrder(t *testing.T) {
	s := NewSparseSet(16)
	require.True(t, s.Insert(5))
	require.True(t, s.Insert(2))
	require.False(t, s.Insert(5), "duplicate insert must report false")
	require.True(t, s.Insert(9))

	assert.Equal(t, []uint32{5, 2, 9}, s.Values())
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains(2))
	assert.False(t, s.Contains(3))
	assert.False(t, s.Contains(100), "out of range values are never members")
}

func TestSparseSetClear(t *testing.T) {
	s := NewSparseSet(8)
	s.Insert(1)
	s.Insert(7)
	s.Clear()

	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains(1))
	assert.False(t, s.Contains(7))

	// stale sparse entries must not leak back in after a clear
	assert.True(t, s.Insert(7))
	assert.Equal(t, []uint32{7}, s.Values())
	assert.Equal(t, 8, s.Capacity())
}
