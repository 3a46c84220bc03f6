//go:build amd64

package simd

import (
	"bytes"

	"golang.org/x/sys/cpu"
)

// hasAVX2 gates the runtime's vectorized IndexByte. On CPUs without AVX2 the
// runtime falls back to SSE2, which loses to SWAR on short haystacks.
var hasAVX2 = cpu.X86.HasAVX2

// vectorThreshold is the haystack length from which the vectorized path pays
// for its setup cost.
const vectorThreshold = 32

// Memchr returns the index of the first instance of needle in haystack,
// or -1 if needle is not present.
//
// Equivalent to bytes.IndexByte.
func Memchr(haystack []byte, needle byte) int {
	if hasAVX2 && len(haystack) >= vectorThreshold {
		return bytes.IndexByte(haystack, needle)
	}
	return memchrGeneric(haystack, needle)
}

// Memchr2 returns the index of the first byte equal to needle1 or needle2,
// or -1 if neither is present.
func Memchr2(haystack []byte, needle1, needle2 byte) int {
	return memchr2Generic(haystack, needle1, needle2)
}

// Memchr3 returns the index of the first byte equal to any of the three
// needles, or -1 if none is present.
func Memchr3(haystack []byte, needle1, needle2, needle3 byte) int {
	return memchr3Generic(haystack, needle1, needle2, needle3)
}
