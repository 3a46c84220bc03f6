// Package nfa provides a Thompson NFA (Non-deterministic Finite Automaton)
// implementation for regex matching.
//
// The NFA is compiled from regexp/syntax.Regexp patterns and executed by two
// engines that agree on leftmost-first semantics: a PikeVM that runs in
// time linear in the haystack, and a bounded backtracker that is faster on
// small inputs.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrTooComplex indicates the pattern nests deeper than the compiler allows
	ErrTooComplex = errors.New("pattern too complex")

	// ErrTooManyStates indicates the compiled NFA exceeds the configured state limit
	ErrTooManyStates = errors.New("compiled pattern exceeds state limit")

	// ErrUnsupported indicates a syntax node the compiler cannot translate
	ErrUnsupported = errors.New("unsupported regex construct")
)

// BuildError represents an error during NFA construction via the Builder API
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}
