package nfa

import (
	"fmt"
	"strconv"
	"strings"
)

// RawByteBase offsets the codepoints that stand for raw bytes in byte mode.
// MarkRawBytes maps an escaped byte value b in [0x80, 0xFF] to RawByteBase+b,
// a private use codepoint that a byte mode compile turns back into the single
// byte b. In UTF-8 mode these codepoints are ordinary characters.
const RawByteBase = 0x10FF00

const (
	rawByteMin = RawByteBase + 0x80
	rawByteMax = RawByteBase + 0xFF
)

func isRawByte(r rune) bool {
	return r >= rawByteMin && r <= rawByteMax
}

// MarkRawBytes rewrites hex and octal escapes of bytes 0x80-0xFF as raw byte
// codepoints, so a byte mode compile matches the byte itself rather than the
// UTF-8 encoding of U+0080..U+00FF. Text between \Q and \E is left alone, as
// is anything the parser would reject.
//
// Example:
//
//	MarkRawBytes(`caf\xe9`)  // `caf\x{10FFE9}`
//	MarkRawBytes(`[\x80-\xff]`) // `[\x{10FF80}-\x{10FFFF}]`
func MarkRawBytes(pattern string) string {
	if !strings.Contains(pattern, `\`) {
		return pattern
	}

	var b strings.Builder
	b.Grow(len(pattern))
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '\\' || i+1 == len(pattern) {
			b.WriteByte(c)
			continue
		}

		rest := pattern[i+1:]
		switch e := rest[0]; {
		case e == 'Q':
			end := strings.Index(rest, `\E`)
			if end < 0 {
				b.WriteString(pattern[i:])
				return b.String()
			}
			b.WriteString(pattern[i : i+end+3])
			i += end + 2
			continue
		case e == 'x':
			if v, n, ok := hexEscape(rest[1:]); ok && v >= 0x80 && v <= 0xFF {
				writeRawByte(&b, v)
				i += 1 + n
				continue
			}
		case e >= '0' && e <= '7':
			if v, n, ok := octalEscape(rest); ok && v >= 0x80 {
				writeRawByte(&b, v)
				i += n
				continue
			}
		}
		b.WriteByte(c)
		b.WriteByte(rest[0])
		i++
	}
	return b.String()
}

func writeRawByte(b *strings.Builder, v int) {
	fmt.Fprintf(b, `\x{%X}`, RawByteBase+v)
}

// hexEscape parses the digits after \x: either exactly two hex digits or a
// braced hex number. n is the number of bytes consumed.
func hexEscape(s string) (v, n int, ok bool) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 || end > 9 {
			return 0, 0, false
		}
		x, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil {
			return 0, 0, false
		}
		return int(x), end + 1, true
	}
	if len(s) < 2 {
		return 0, 0, false
	}
	x, err := strconv.ParseUint(s[:2], 16, 8)
	if err != nil {
		return 0, 0, false
	}
	return int(x), 2, true
}

// octalEscape parses up to three octal digits. A lone \1-\7 is a
// backreference, which the parser rejects, so it is not an escape here.
func octalEscape(s string) (v, n int, ok bool) {
	if s[0] != '0' && (len(s) < 2 || s[1] < '0' || s[1] > '7') {
		return 0, 0, false
	}
	for n < 3 && n < len(s) && s[n] >= '0' && s[n] <= '7' {
		v = v*8 + int(s[n]-'0')
		n++
	}
	return v, n, true
}
