package rure

import (
	"errors"

	"github.com/coregx/rure/flags"
)

var (
	// ErrInvalidFlag reports a flag token outside FlagTokens.
	ErrInvalidFlag = flags.ErrInvalidFlag

	// ErrDuplicateFlag reports a flag token given twice.
	ErrDuplicateFlag = flags.ErrDuplicateFlag

	// ErrOutOfRange reports a start offset outside [0, len(haystack)].
	ErrOutOfRange = errors.New("rure: start offset out of range")
)

// FlagError reports a rejected flag token. Its Err field is ErrInvalidFlag
// or ErrDuplicateFlag.
type FlagError = flags.Error

// CompileError reports a pattern that failed to compile.
//
// Msg is the human-readable reason. Err is the underlying cause: a
// *syntax.Error for malformed patterns, nfa.ErrTooComplex or
// nfa.ErrTooManyStates for patterns exceeding a Config limit.
type CompileError struct {
	Pattern string
	Msg     string
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return e.Msg
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}
