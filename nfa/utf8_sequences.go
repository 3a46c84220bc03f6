package nfa

import "unicode/utf8"

// byteRange is an inclusive range of bytes at one position of a UTF-8 sequence.
type byteRange struct {
	lo, hi byte
}

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
)

// utf8Sequences splits the codepoint range [lo, hi] into sequences of byte
// ranges such that a byte string matches one of the sequences exactly when it
// is the UTF-8 encoding of a codepoint in the range. Surrogates are skipped.
// Sequences are returned in ascending codepoint order.
//
// Example:
//
//	[U+0080, U+07FF] -> [C2-DF][80-BF]
//	[U+0000, U+00FF] -> [00-7F], [C2-C3][80-BF]
func utf8Sequences(lo, hi rune) [][]byteRange {
	if lo > hi {
		return nil
	}
	if hi > utf8.MaxRune {
		hi = utf8.MaxRune
	}

	var out [][]byteRange
	var stack [][2]rune
	push := func(s, e rune) {
		if s <= surrogateMax && e >= surrogateMin {
			// Upper part first so the lower part is popped first.
			if e > surrogateMax {
				stack = append(stack, [2]rune{surrogateMax + 1, e})
			}
			if s < surrogateMin {
				stack = append(stack, [2]rune{s, surrogateMin - 1})
			}
			return
		}
		stack = append(stack, [2]rune{s, e})
	}
	push(lo, hi)

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s, e := top[0], top[1]

	split:
		for {
			// Ranges must not straddle an encoded-length boundary.
			for _, max := range [...]rune{0x7F, 0x7FF, 0xFFFF} {
				if s <= max && max < e {
					stack = append(stack, [2]rune{max + 1, e})
					e = max
					continue split
				}
			}
			if e <= 0x7F {
				out = append(out, []byteRange{{byte(s), byte(e)}})
				break
			}
			// Each continuation position must span a full 6-bit block
			// unless all higher positions are fixed.
			for i := uint(1); i < 4; i++ {
				m := rune(1)<<(6*i) - 1
				if s&^m != e&^m {
					if s&m != 0 {
						stack = append(stack, [2]rune{(s | m) + 1, e})
						e = s | m
						continue split
					}
					if e&m != m {
						stack = append(stack, [2]rune{e &^ m, e})
						e = (e &^ m) - 1
						continue split
					}
				}
			}

			var sb, eb [utf8.UTFMax]byte
			n := utf8.EncodeRune(sb[:], s)
			utf8.EncodeRune(eb[:], e)
			seq := make([]byteRange, n)
			for i := 0; i < n; i++ {
				seq[i] = byteRange{sb[i], eb[i]}
			}
			out = append(out, seq)
			break
		}
	}
	return out
}
