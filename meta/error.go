package meta

import (
	"errors"
	"fmt"
	"regexp/syntax"
)

// CompileError represents a pattern compilation error.
type CompileError struct {
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	return fmt.Sprintf("rure: compiling %q: %s", e.Pattern, e.Message())
}

// Message returns the human-readable cause without the pattern prefix.
// For syntax errors this is the parser's description, e.g.
// "missing closing ): `(a`".
func (e *CompileError) Message() string {
	var se *syntax.Error
	if errors.As(e.Err, &se) {
		return se.Error()
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error
func (e *CompileError) Unwrap() error {
	return e.Err
}
