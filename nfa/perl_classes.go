package nfa

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// Unicode bodies of \w and \s. A negated Perl class cannot be nested inside
// a bracketed class, so \W and \S there are spelled out as complement ranges.
const (
	wordBody  = `\p{L}\p{M}\p{Nd}\p{Pc}`
	spaceBody = `\t-\r\x{85}\p{Z}`
)

var (
	notWordBody  = complementBody(tableRanges(unicode.L, unicode.M, unicode.Nd, unicode.Pc))
	notSpaceBody = complementBody(tableRanges(unicode.White_Space))
)

// ExpandPerlClasses rewrites \d, \s, \w and their negations into Unicode
// classes. The parser only knows their ASCII forms. Escapes inside \Q...\E
// and POSIX classes such as [[:word:]] are left alone.
//
// Example:
//
//	ExpandPerlClasses(`\d+`)   // `\p{Nd}+`
//	ExpandPerlClasses(`[\w-]`) // `[\p{L}\p{M}\p{Nd}\p{Pc}-]`
func ExpandPerlClasses(pattern string) string {
	if !strings.Contains(pattern, `\`) {
		return pattern
	}

	var b strings.Builder
	b.Grow(len(pattern))
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			e := pattern[i+1]
			if e == 'Q' && !inClass {
				end := strings.Index(pattern[i+2:], `\E`)
				if end < 0 {
					b.WriteString(pattern[i:])
					return b.String()
				}
				b.WriteString(pattern[i : i+end+4])
				i += end + 3
				continue
			}
			if rep, ok := unicodePerlClass(e, inClass); ok {
				b.WriteString(rep)
			} else {
				b.WriteByte(c)
				b.WriteByte(e)
			}
			i++
		case inClass:
			b.WriteByte(c)
			switch {
			case c == '[' && strings.HasPrefix(pattern[i+1:], ":"):
				if end := strings.Index(pattern[i+1:], ":]"); end >= 0 {
					b.WriteString(pattern[i+1 : i+3+end])
					i += 2 + end
				}
			case c == ']':
				inClass = false
			}
		case c == '[':
			inClass = true
			b.WriteByte(c)
			if i+1 < len(pattern) && pattern[i+1] == '^' {
				i++
				b.WriteByte('^')
			}
			if i+1 < len(pattern) && pattern[i+1] == ']' {
				i++
				b.WriteByte(']')
			}
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func unicodePerlClass(e byte, inClass bool) (string, bool) {
	switch e {
	case 'd':
		return `\p{Nd}`, true
	case 'D':
		return `\P{Nd}`, true
	case 'w':
		if inClass {
			return wordBody, true
		}
		return "[" + wordBody + "]", true
	case 'W':
		if inClass {
			return notWordBody, true
		}
		return "[^" + wordBody + "]", true
	case 's':
		if inClass {
			return spaceBody, true
		}
		return "[" + spaceBody + "]", true
	case 'S':
		if inClass {
			return notSpaceBody, true
		}
		return "[^" + spaceBody + "]", true
	}
	return "", false
}

// tableRanges merges the ranges of tables into sorted, disjoint lo/hi pairs.
func tableRanges(tables ...*unicode.RangeTable) [][2]rune {
	var rs [][2]rune
	add := func(lo, hi, stride rune) {
		if stride == 1 {
			rs = append(rs, [2]rune{lo, hi})
			return
		}
		for r := lo; r <= hi; r += stride {
			rs = append(rs, [2]rune{r, r})
		}
	}
	for _, t := range tables {
		for _, r := range t.R16 {
			add(rune(r.Lo), rune(r.Hi), rune(r.Stride))
		}
		for _, r := range t.R32 {
			add(rune(r.Lo), rune(r.Hi), rune(r.Stride))
		}
	}
	sort.Slice(rs, func(i, j int) bool { return rs[i][0] < rs[j][0] })

	var merged [][2]rune
	for _, r := range rs {
		if n := len(merged); n > 0 && r[0] <= merged[n-1][1]+1 {
			merged[n-1][1] = max(merged[n-1][1], r[1])
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// complementBody spells out the ranges missing from rs as class members.
func complementBody(rs [][2]rune) string {
	var b strings.Builder
	next := rune(0)
	for _, r := range rs {
		if r[0] > next {
			writeClassRange(&b, next, r[0]-1)
		}
		next = r[1] + 1
	}
	if next <= unicode.MaxRune {
		writeClassRange(&b, next, unicode.MaxRune)
	}
	return b.String()
}

func writeClassRange(b *strings.Builder, lo, hi rune) {
	if lo == hi {
		fmt.Fprintf(b, `\x{%X}`, lo)
		return
	}
	fmt.Fprintf(b, `\x{%X}-\x{%X}`, lo, hi)
}
