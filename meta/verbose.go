package meta

import "strings"

// stripVerbose removes insignificant whitespace and comments from a pattern
// compiled with the ignore-whitespace flag.
//
// Outside character classes, ASCII whitespace is dropped and '#' starts a
// comment running to the end of the line. Escaped characters are copied with
// their backslash, so "\ " and "\#" stay literal. Inside a class everything
// is kept; a ']' directly after '[' or '[^' is a member, not the end.
func stripVerbose(pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern))

	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\':
			b.WriteByte(c)
			if i+1 < len(pattern) {
				i++
				b.WriteByte(pattern[i])
			}
		case inClass:
			b.WriteByte(c)
			switch {
			case c == '[' && strings.HasPrefix(pattern[i+1:], ":"):
				// [:alpha:] inside a class
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
		case c == '#':
			for i+1 < len(pattern) && pattern[i+1] != '\n' {
				i++
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
