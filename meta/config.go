// Package meta implements the engine orchestrator behind a compiled pattern.
//
// It turns a pattern and flag set into an immutable Engine: the pattern is
// preprocessed and parsed with regexp/syntax, compiled into a Thompson NFA,
// mined for prefix literals, and given a prefilter and a search strategy.
//
// The Engine coordinates five executors:
//   - Prefilter: fast literal-based candidate finding (optional)
//   - Lazy DFA: answers IsMatchAt without tracking positions (optional)
//   - One-pass DFA: anchored captures for unambiguous patterns (optional)
//   - BoundedBacktracker: fastest when states * input fits its visited budget
//   - PikeVM: always applicable, linear in the input
//
// The NFA executors implement leftmost-first semantics and agree on every
// result, so selection only affects speed. The lazy DFA only decides
// whether a match exists and hands over to them when its cache gives up.
package meta

import (
	"log"

	"github.com/coregx/rure/dfa/lazy"
	"github.com/coregx/rure/dfa/onepass"
)

// Config controls compilation limits and engine selection.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.EnablePrefilter = false // Always run the NFA engines directly
//	engine, err := meta.Compile(`\w+`, flags.Default, config)
type Config struct {
	// EnablePrefilter enables literal-based prefiltering.
	// Default: true
	EnablePrefilter bool

	// EnableDFA enables the lazy DFA for match existence tests.
	// Patterns with line or word assertions never use it.
	// Default: true
	EnableDFA bool

	// MaxDFAStates caps the number of cached DFA states per search state.
	// Default: 10,000
	MaxDFAStates int

	// MaxDFACacheClears is how often one search may clear a full DFA cache
	// before falling back to the NFA executors.
	// Default: 5
	MaxDFACacheClears int

	// DeterminizationLimit caps the NFA states in a single DFA state.
	// Default: 1,000
	DeterminizationLimit int

	// EnableOnePass enables the one-pass DFA for anchored searches of
	// patterns without ambiguous paths.
	// Default: true
	EnableOnePass bool

	// MaxOnePassStates caps the one-pass DFA; larger patterns use the NFA
	// executors.
	// Default: 4096
	MaxOnePassStates int

	// EnableBacktracker enables the bounded backtracker for small inputs.
	// When false, only the PikeVM runs.
	// Default: true
	EnableBacktracker bool

	// MaxBacktrackVisited is the backtracker's visited-set budget in bits.
	// Inputs with states * (len+1) above it use the PikeVM.
	// Default: 256 KiB * 8
	MaxBacktrackVisited int

	// MaxStates caps the size of the compiled NFA.
	// Default: 1 << 20
	MaxStates int

	// MaxRecursionDepth limits recursion during NFA compilation.
	// Default: 1000
	MaxRecursionDepth int

	// MaxLiterals limits the number of prefix literals extracted for prefiltering.
	// Default: 64
	MaxLiterals int

	// MaxLiteralLen truncates extracted prefix literals.
	// Default: 16
	MaxLiteralLen int

	// MaxClassSize is the largest byte class expanded into literals.
	// Default: 10
	MaxClassSize int

	// MinLiteralLen is the minimum length for prefilter literals.
	// Default: 1
	MinLiteralLen int

	// Logger receives one line per compile-time decision. nil is silent.
	Logger *log.Logger
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		EnablePrefilter:      true,
		EnableDFA:            true,
		MaxDFAStates:         10_000,
		MaxDFACacheClears:    5,
		DeterminizationLimit: 1_000,
		EnableOnePass:        true,
		MaxOnePassStates:     onepass.DefaultMaxStates,
		EnableBacktracker:    true,
		MaxBacktrackVisited:  256 * 1024 * 8,
		MaxStates:            1 << 20,
		MaxRecursionDepth:    1000,
		MaxLiterals:          64,
		MaxLiteralLen:        16,
		MaxClassSize:         10,
		MinLiteralLen:        1,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MaxDFAStates: 2 to 1,000,000 (when the DFA is enabled)
//   - MaxDFACacheClears: 0 to 1,000 (when the DFA is enabled)
//   - DeterminizationLimit: 1 to 100,000 (when the DFA is enabled)
//   - MaxOnePassStates: 1 to 1<<21 - 1 (when the one-pass DFA is enabled)
//   - MaxBacktrackVisited: 1 to 1<<30 (when the backtracker is enabled)
//   - MaxStates: 16 to 1<<24
//   - MaxRecursionDepth: 10 to 10,000
//   - MaxLiterals: 1 to 1,000
//   - MaxLiteralLen: 1 to 256
//   - MaxClassSize: 1 to 256
//   - MinLiteralLen: 1 to 64
func (c Config) Validate() error {
	if c.EnableDFA {
		if c.MaxDFAStates < 2 || c.MaxDFAStates > 1_000_000 {
			return &ConfigError{
				Field:   "MaxDFAStates",
				Message: "must be between 2 and 1,000,000",
			}
		}
		if c.MaxDFACacheClears < 0 || c.MaxDFACacheClears > 1_000 {
			return &ConfigError{
				Field:   "MaxDFACacheClears",
				Message: "must be between 0 and 1,000",
			}
		}
		if c.DeterminizationLimit < 1 || c.DeterminizationLimit > 100_000 {
			return &ConfigError{
				Field:   "DeterminizationLimit",
				Message: "must be between 1 and 100,000",
			}
		}
	}

	if c.EnableOnePass && (c.MaxOnePassStates < 1 || c.MaxOnePassStates > int(onepass.MaxStateID)) {
		return &ConfigError{
			Field:   "MaxOnePassStates",
			Message: "must be between 1 and 1<<21 - 1",
		}
	}

	if c.EnableBacktracker && (c.MaxBacktrackVisited < 1 || c.MaxBacktrackVisited > 1<<30) {
		return &ConfigError{
			Field:   "MaxBacktrackVisited",
			Message: "must be between 1 and 1<<30",
		}
	}

	if c.MaxStates < 16 || c.MaxStates > 1<<24 {
		return &ConfigError{
			Field:   "MaxStates",
			Message: "must be between 16 and 1<<24",
		}
	}

	if c.MaxRecursionDepth < 10 || c.MaxRecursionDepth > 10_000 {
		return &ConfigError{
			Field:   "MaxRecursionDepth",
			Message: "must be between 10 and 10,000",
		}
	}

	if c.EnablePrefilter {
		if c.MaxLiterals < 1 || c.MaxLiterals > 1_000 {
			return &ConfigError{
				Field:   "MaxLiterals",
				Message: "must be between 1 and 1,000",
			}
		}
		if c.MaxLiteralLen < 1 || c.MaxLiteralLen > 256 {
			return &ConfigError{
				Field:   "MaxLiteralLen",
				Message: "must be between 1 and 256",
			}
		}
		if c.MaxClassSize < 1 || c.MaxClassSize > 256 {
			return &ConfigError{
				Field:   "MaxClassSize",
				Message: "must be between 1 and 256",
			}
		}
		if c.MinLiteralLen < 1 || c.MinLiteralLen > 64 {
			return &ConfigError{
				Field:   "MinLiteralLen",
				Message: "must be between 1 and 64",
			}
		}
	}

	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "rure: invalid config: " + e.Field + ": " + e.Message
}

// dfaConfig returns the lazy DFA configuration derived from c.
func (c Config) dfaConfig() lazy.Config {
	return lazy.Config{
		MaxStates:            c.MaxDFAStates,
		MaxCacheClears:       c.MaxDFACacheClears,
		DeterminizationLimit: c.DeterminizationLimit,
	}
}

// logf writes a decision record when a logger is configured.
func (c Config) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Printf("[rure] "+format, args...)
	}
}
