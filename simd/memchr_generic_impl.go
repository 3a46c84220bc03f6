// Package simd provides the byte search primitives used by prefilters.
//
// Memchr dispatches on CPU features (golang.org/x/sys/cpu) between the
// runtime's vectorized IndexByte and a portable SWAR (SIMD within a register)
// loop that compares eight bytes per step. Memmem is built on Memchr using a
// rare-byte heuristic.
package simd

import (
	"encoding/binary"
	"math/bits"
)

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// broadcast replicates b into every byte of a uint64.
func broadcast(b byte) uint64 {
	return uint64(b) * lo8
}

// zeroBytes marks the high bit of every zero byte in v. Bits above the first
// zero byte may be false positives, so only the lowest set bit is meaningful.
func zeroBytes(v uint64) uint64 {
	return (v - lo8) & ^v & hi8
}

func memchrGeneric(haystack []byte, needle byte) int {
	n := len(haystack)
	mask := broadcast(needle)
	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk ^ mask); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < n; i++ {
		if haystack[i] == needle {
			return i
		}
	}
	return -1
}

func memchr2Generic(haystack []byte, needle1, needle2 byte) int {
	n := len(haystack)
	m1, m2 := broadcast(needle1), broadcast(needle2)
	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk^m1) | zeroBytes(chunk^m2); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < n; i++ {
		if c := haystack[i]; c == needle1 || c == needle2 {
			return i
		}
	}
	return -1
}

func memchr3Generic(haystack []byte, needle1, needle2, needle3 byte) int {
	n := len(haystack)
	m1, m2, m3 := broadcast(needle1), broadcast(needle2), broadcast(needle3)
	i := 0
	for ; i+8 <= n; i += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[i:])
		if z := zeroBytes(chunk^m1) | zeroBytes(chunk^m2) | zeroBytes(chunk^m3); z != 0 {
			return i + bits.TrailingZeros64(z)/8
		}
	}
	for ; i < n; i++ {
		if c := haystack[i]; c == needle1 || c == needle2 || c == needle3 {
			return i
		}
	}
	return -1
}
