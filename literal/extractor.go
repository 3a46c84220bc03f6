package literal

import (
	"sort"

	"github.com/coregx/rure/nfa"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex patterns:
//   - MaxLiterals: prevents memory bloat from alternations like (a|b|c|d|...)
//   - MaxLiteralLen: bounds the work per literal
//   - MaxClassSize: prevents expanding large character classes like [a-z]
type ExtractorConfig struct {
	// MaxLiterals limits the maximum number of literals to extract.
	// Default: 64.
	MaxLiterals int

	// MaxLiteralLen limits the maximum length of each extracted literal.
	// Longer prefixes are truncated. Default: 16.
	MaxLiteralLen int

	// MaxClassSize limits the number of bytes a transition may accept and
	// still be expanded. Classes like [abc] are expanded to "a", "b", "c";
	// [a-z] (26 bytes) ends the literal. Default: 10.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 16,
		MaxClassSize:  10,
	}
}

// Extractor extracts prefix literals from compiled NFAs.
//
// It walks the automaton breadth first, one byte per round, following every
// path from the start state. Zero-width states (captures, assertions, splits)
// are passed through, so assertions only make the result less precise, never
// wrong: every match of the NFA starts with one of the extracted literals.
//
// Examples:
//
//	"hello"         → ["hello"] (complete)
//	"(foo|bar)"     → ["bar", "foo"] (complete)
//	"[ab]test"      → ["atest", "btest"] (complete)
//	"hello.*world"  → ["hello"]
//	".*foo"         → [] (no prefix requirement)
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
// Zero limits fall back to the defaults.
func New(config ExtractorConfig) *Extractor {
	def := DefaultConfig()
	if config.MaxLiterals <= 0 {
		config.MaxLiterals = def.MaxLiterals
	}
	if config.MaxLiteralLen <= 0 {
		config.MaxLiteralLen = def.MaxLiteralLen
	}
	if config.MaxClassSize <= 0 {
		config.MaxClassSize = def.MaxClassSize
	}
	return &Extractor{config: config}
}

// ExtractPrefixes returns a minimized set of literals such that every match
// of n begins with one of them. An empty Seq means no such set exists within
// the configured limits, for example because the pattern can match the empty
// string or begins with a large class.
func (e *Extractor) ExtractPrefixes(n *nfa.NFA) *Seq {
	w := walker{nfa: n}

	var out []Literal
	frontier := map[string][]nfa.StateID{"": {n.Start()}}
	for len(frontier) > 0 {
		keys := sortedKeys(frontier)
		next := make(map[string][]nfa.StateID)
		var emitted []Literal
		for _, prefix := range keys {
			c := w.closure(frontier[prefix])
			switch {
			case c.match:
				emitted = append(emitted, NewLiteral([]byte(prefix), len(c.consuming) == 0))
				continue
			case len(c.consuming) == 0:
				// Dead path: nothing can match through it.
				continue
			case len(prefix) >= e.config.MaxLiteralLen:
				emitted = append(emitted, NewLiteral([]byte(prefix), false))
				continue
			}

			if !e.expandable(n, c.consuming) {
				emitted = append(emitted, NewLiteral([]byte(prefix), false))
				continue
			}
			for _, sid := range c.consuming {
				e.extend(n.State(sid), prefix, next)
			}
		}

		out = append(out, emitted...)
		if len(out)+len(next) > e.config.MaxLiterals {
			// Stop growing: every pending path keeps its current prefix.
			for _, prefix := range keys {
				if c := w.closure(frontier[prefix]); !c.match && len(c.consuming) > 0 {
					out = append(out, NewLiteral([]byte(prefix), false))
				}
			}
			out = dedupe(out)
			if len(out) > e.config.MaxLiterals {
				return NewSeq()
			}
			break
		}
		frontier = next
	}

	for _, lit := range out {
		if lit.Len() == 0 {
			return NewSeq()
		}
	}
	out = dedupe(out)
	if w.look {
		// Assertions were skipped, so no literal is known to match on its own.
		for i := range out {
			out[i].Complete = false
		}
	}
	seq := NewSeq(out...)
	seq.Minimize()
	return seq
}

// expandable reports whether every consuming state accepts few enough bytes
// to be expanded into individual literals.
func (e *Extractor) expandable(n *nfa.NFA, states []nfa.StateID) bool {
	for _, sid := range states {
		size := 0
		s := n.State(sid)
		switch s.Kind() {
		case nfa.StateByteRange:
			lo, hi, _ := s.ByteRange()
			size = int(hi) - int(lo) + 1
		case nfa.StateSparse:
			for _, t := range s.Transitions() {
				size += int(t.Hi) - int(t.Lo) + 1
			}
		}
		if size > e.config.MaxClassSize {
			return false
		}
	}
	return true
}

// extend appends every byte accepted by s to prefix and records the target.
func (e *Extractor) extend(s *nfa.State, prefix string, next map[string][]nfa.StateID) {
	add := func(lo, hi byte, target nfa.StateID) {
		for b := int(lo); b <= int(hi); b++ {
			key := prefix + string([]byte{byte(b)})
			next[key] = append(next[key], target)
		}
	}
	switch s.Kind() {
	case nfa.StateByteRange:
		lo, hi, target := s.ByteRange()
		add(lo, hi, target)
	case nfa.StateSparse:
		for _, t := range s.Transitions() {
			add(t.Lo, t.Hi, t.Next)
		}
	}
}

// walker computes epsilon closures over an NFA.
type walker struct {
	nfa *nfa.NFA

	// look is set once any closure passed through an assertion.
	look bool
}

type closureResult struct {
	consuming []nfa.StateID
	match     bool
}

func (w *walker) closure(starts []nfa.StateID) closureResult {
	var res closureResult
	seen := make(map[nfa.StateID]bool)
	stack := append([]nfa.StateID(nil), starts...)
	for len(stack) > 0 {
		sid := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[sid] {
			continue
		}
		seen[sid] = true

		s := w.nfa.State(sid)
		switch s.Kind() {
		case nfa.StateMatch:
			res.match = true
		case nfa.StateByteRange, nfa.StateSparse:
			res.consuming = append(res.consuming, sid)
		case nfa.StateEpsilon:
			stack = append(stack, s.Epsilon())
		case nfa.StateSplit:
			left, right := s.Split()
			stack = append(stack, right, left)
		case nfa.StateCapture:
			_, next := s.Capture()
			stack = append(stack, next)
		case nfa.StateLook:
			_, next := s.Look()
			w.look = true
			stack = append(stack, next)
		}
	}
	return res
}

func sortedKeys(m map[string][]nfa.StateID) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// dedupe removes duplicate byte strings; a duplicate is complete only if
// every copy is.
func dedupe(lits []Literal) []Literal {
	index := make(map[string]int, len(lits))
	out := lits[:0:0]
	for _, lit := range lits {
		if i, ok := index[string(lit.Bytes)]; ok {
			out[i].Complete = out[i].Complete && lit.Complete
			continue
		}
		index[string(lit.Bytes)] = len(out)
		out = append(out, lit)
	}
	return out
}
