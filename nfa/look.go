package nfa

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Look is a zero-width assertion kind.
type Look uint8

const (
	// LookStartText is \A: only at offset 0.
	LookStartText Look = iota + 1
	// LookEndText is \z: only at the end of the haystack.
	LookEndText
	// LookStartLine is multi-line ^: at offset 0 or after '\n'.
	LookStartLine
	// LookEndLine is multi-line $: at the end or before '\n'.
	LookEndLine
	// LookWordBoundary is \b over ASCII word characters.
	LookWordBoundary
	// LookNoWordBoundary is \B over ASCII word characters.
	LookNoWordBoundary
	// LookWordBoundaryUnicode is \b over Unicode word characters.
	LookWordBoundaryUnicode
	// LookNoWordBoundaryUnicode is \B over Unicode word characters.
	LookNoWordBoundaryUnicode
)

func (l Look) String() string {
	switch l {
	case LookStartText:
		return "StartText"
	case LookEndText:
		return "EndText"
	case LookStartLine:
		return "StartLine"
	case LookEndLine:
		return "EndLine"
	case LookWordBoundary:
		return "WordBoundary"
	case LookNoWordBoundary:
		return "NoWordBoundary"
	case LookWordBoundaryUnicode:
		return "WordBoundaryUnicode"
	case LookNoWordBoundaryUnicode:
		return "NoWordBoundaryUnicode"
	default:
		return fmt.Sprintf("Look(%d)", uint8(l))
	}
}

// isWordByte reports whether b is an ASCII word character [0-9A-Za-z_].
func isWordByte(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_'
}

// isWordRune reports whether r is a Unicode word character: a letter, mark,
// decimal digit or connector punctuation.
func isWordRune(r rune) bool {
	if r < utf8.RuneSelf {
		return isWordByte(byte(r))
	}
	return unicode.IsLetter(r) || unicode.IsMark(r) ||
		unicode.Is(unicode.Nd, r) || unicode.Is(unicode.Pc, r)
}

// wordBefore and wordAfter decode the codepoint on each side of pos. Invalid
// UTF-8 is not a word character.
func wordBefore(haystack []byte, pos int) bool {
	if pos == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRune(haystack[:pos])
	return r != utf8.RuneError && isWordRune(r)
}

func wordAfter(haystack []byte, pos int) bool {
	if pos >= len(haystack) {
		return false
	}
	r, _ := utf8.DecodeRune(haystack[pos:])
	return r != utf8.RuneError && isWordRune(r)
}

// checkLook reports whether look holds at pos. Bytes on both sides of pos are
// consulted, including those before a search's start offset.
func checkLook(look Look, haystack []byte, pos int) bool {
	switch look {
	case LookStartText:
		return pos == 0
	case LookEndText:
		return pos == len(haystack)
	case LookStartLine:
		return pos == 0 || haystack[pos-1] == '\n'
	case LookEndLine:
		return pos == len(haystack) || haystack[pos] == '\n'
	case LookWordBoundary, LookNoWordBoundary:
		before := pos > 0 && isWordByte(haystack[pos-1])
		after := pos < len(haystack) && isWordByte(haystack[pos])
		return (before != after) == (look == LookWordBoundary)
	case LookWordBoundaryUnicode, LookNoWordBoundaryUnicode:
		before := wordBefore(haystack, pos)
		after := wordAfter(haystack, pos)
		return (before != after) == (look == LookWordBoundaryUnicode)
	}
	return false
}

// Matches reports whether the assertion holds at pos in haystack.
func (l Look) Matches(haystack []byte, pos int) bool {
	return checkLook(l, haystack, pos)
}
