package conv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToUint32(t *testing.T) {
	assert.Equal(t, uint32(0), IntToUint32(0))
	assert.Equal(t, uint32(42), IntToUint32(42))
	assert.Panics(t, func() { IntToUint32(-1) })
}

func TestUint32ToInt(t *testing.T) {
	assert.Equal(t, 7, Uint32ToInt(7))
	assert.Equal(t, 0, Uint32ToInt(0))
}
