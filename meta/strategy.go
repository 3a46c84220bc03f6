package meta

import (
	"github.com/coregx/rure/nfa"
	"github.com/coregx/rure/prefilter"
)

// Strategy represents the outer search loop chosen for a pattern.
//
// Every strategy finishes with one of the executors, chosen per call:
// the one-pass DFA for anchored searches when the pattern allows it, the
// bounded backtracker when enabled and the span fits its visited budget,
// the PikeVM otherwise. Match existence tests try the lazy DFA first.
type Strategy int

const (
	// UseNFA runs the PikeVM over the whole span.
	// Selected when the backtracker is disabled and no prefilter exists.
	UseNFA Strategy = iota

	// UseBoundedBacktracker runs the backtracker when the span fits and the
	// PikeVM otherwise.
	// Selected when no prefilter exists.
	UseBoundedBacktracker

	// UsePrefilter scans for prefix literal candidates and verifies each
	// with an anchored search. The prefilter is retired mid-search
	// when it produces candidates too densely.
	// Selected when the pattern has a usable set of prefix literals.
	UsePrefilter

	// UseAnchoredStart performs a single anchored attempt at offset 0.
	// Selected for patterns whose every match begins with \A.
	UseAnchoredStart
)

// String returns a human-readable representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case UseNFA:
		return "NFA"
	case UseBoundedBacktracker:
		return "BoundedBacktracker"
	case UsePrefilter:
		return "Prefilter"
	case UseAnchoredStart:
		return "AnchoredStart"
	default:
		return "Unknown"
	}
}

// selectStrategy chooses the strategy from the compiled artifacts.
func selectStrategy(n *nfa.NFA, pf prefilter.Prefilter, config Config) Strategy {
	switch {
	case n.IsStartAnchored():
		return UseAnchoredStart
	case pf != nil:
		return UsePrefilter
	case config.EnableBacktracker:
		return UseBoundedBacktracker
	default:
		return UseNFA
	}
}
