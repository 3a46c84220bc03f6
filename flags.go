package rure

import (
	"github.com/coregx/rure/flags"
	"github.com/coregx/rure/meta"
)

// Flags is a set of compile flags.
type Flags = flags.Set

// Compile flags. Their tokens, in the same order, are listed by FlagTokens.
const (
	CaseInsensitive  = flags.CaseInsensitive  // CASEI
	MultiLine        = flags.MultiLine        // MULTI
	DotNewline       = flags.DotNewline       // DOTNL
	SwapGreed        = flags.SwapGreed        // SWAP_GREED
	IgnoreWhitespace = flags.IgnoreWhitespace // SPACE
	Unicode          = flags.Unicode          // UNICODE

	// DefaultFlags is used when Compile is given no tokens.
	DefaultFlags = flags.Default
)

// FlagTokens returns the recognized flag tokens.
func FlagTokens() []string {
	return flags.Tokens()
}

// ParseFlags builds a flag set from tokens with the same rules as Compile.
func ParseFlags(tokens ...string) (Flags, error) {
	return flags.Parse(tokens...)
}

// Config controls compilation limits and engine selection.
type Config = meta.Config

// DefaultConfig returns the configuration used by Compile.
func DefaultConfig() Config {
	return meta.DefaultConfig()
}
