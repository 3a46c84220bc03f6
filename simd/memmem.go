package simd

import "bytes"

// Memmem returns the index of the first instance of needle in haystack,
// or -1 if needle is not present. An empty needle matches at 0.
//
// The search looks for the rarest byte of needle with Memchr and verifies the
// full needle around each hit.
func Memmem(haystack, needle []byte) int {
	switch {
	case len(needle) == 0:
		return 0
	case len(needle) > len(haystack):
		return -1
	case len(needle) == 1:
		return Memchr(haystack, needle[0])
	}

	rare, rareIdx := RarestByte(needle)
	last := len(haystack) - len(needle) // last valid needle start
	from := rareIdx
	for from < len(haystack) {
		hit := Memchr(haystack[from:], rare)
		if hit < 0 {
			return -1
		}
		start := from + hit - rareIdx
		if start > last {
			return -1
		}
		if bytes.Equal(haystack[start:start+len(needle)], needle) {
			return start
		}
		from += hit + 1
	}
	return -1
}
