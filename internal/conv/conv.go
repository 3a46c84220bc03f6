// Package conv provides checked integer narrowing for automaton indices.
//
// The compiler bounds the number of NFA states and capture slots well below
// the uint32 range, so an overflow here is a programming error and panics.
package conv

import "math"

// IntToUint32 converts n to uint32.
// Panics if n < 0 or n > math.MaxUint32.
func IntToUint32(n int) uint32 {
	// uint comparison keeps this correct on 32-bit platforms
	if n < 0 || uint(n) > math.MaxUint32 {
		panic("integer overflow: int value out of uint32 range")
	}
	return uint32(n)
}

// Uint32ToInt converts v to int.
// Panics on 32-bit platforms when v does not fit.
func Uint32ToInt(v uint32) int {
	if uint64(v) > uint64(math.MaxInt) {
		panic("integer overflow: uint32 value out of int range")
	}
	return int(v)
}
