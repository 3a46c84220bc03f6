package nfa

import "regexp/syntax"

// IsPatternStartAnchored reports whether every match of re must begin at the
// start of the text, i.e. every path through the pattern begins with \A
// (or ^ without multi-line mode).
func IsPatternStartAnchored(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpBeginText:
		return true

	case syntax.OpConcat:
		return len(re.Sub) > 0 && IsPatternStartAnchored(re.Sub[0])

	case syntax.OpCapture, syntax.OpPlus:
		return IsPatternStartAnchored(re.Sub[0])

	case syntax.OpRepeat:
		return re.Min > 0 && IsPatternStartAnchored(re.Sub[0])

	case syntax.OpAlternate:
		if len(re.Sub) == 0 {
			return false
		}
		for _, sub := range re.Sub {
			if !IsPatternStartAnchored(sub) {
				return false
			}
		}
		return true
	}
	return false
}
