package lazy

import "fmt"

// ErrorKind classifies lazy DFA errors.
type ErrorKind uint8

const (
	// CacheFull: a search cleared its cache more often than allowed.
	CacheFull ErrorKind = iota

	// StateLimitExceeded: one DFA state would hold too many NFA states.
	StateLimitExceeded

	// InvalidConfig: Config.Validate failed.
	InvalidConfig

	// Unsupported: the NFA uses assertions the DFA cannot evaluate.
	Unsupported
)

var kindNames = [...]string{
	CacheFull:          "CacheFull",
	StateLimitExceeded: "StateLimitExceeded",
	InvalidConfig:      "InvalidConfig",
	Unsupported:        "Unsupported",
}

func (k ErrorKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(k))
}

// DFAError is the error type of the package. Two DFAErrors match under
// errors.Is when their kinds are equal, so callers compare against the
// sentinels below.
type DFAError struct {
	Kind    ErrorKind
	Message string

	// Field names the offending Config field for InvalidConfig.
	Field string
}

func (e *DFAError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("lazy DFA: %s: %s", e.Field, e.Message)
	}
	return "lazy DFA: " + e.Message
}

// Is reports whether target is a *DFAError of the same kind.
func (e *DFAError) Is(target error) bool {
	t, ok := target.(*DFAError)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is. ErrCacheFull and ErrStateLimitExceeded are
// returned by searches; the caller is expected to rerun the search on an
// NFA executor.
var (
	ErrCacheFull          = &DFAError{Kind: CacheFull, Message: "state cache cleared too often"}
	ErrStateLimitExceeded = &DFAError{Kind: StateLimitExceeded, Message: "determinization limit exceeded"}
	ErrInvalidConfig      = &DFAError{Kind: InvalidConfig, Message: "invalid configuration"}
	ErrUnsupported        = &DFAError{Kind: Unsupported, Message: "line and word assertions are not supported"}
)

func configError(field, msg string) error {
	return &DFAError{Kind: InvalidConfig, Field: field, Message: msg}
}
