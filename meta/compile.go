package meta

import (
	"fmt"
	"regexp/syntax"

	"github.com/coregx/rure/dfa/lazy"
	"github.com/coregx/rure/dfa/onepass"
	"github.com/coregx/rure/flags"
	"github.com/coregx/rure/literal"
	"github.com/coregx/rure/nfa"
	"github.com/coregx/rure/prefilter"
)

// Compile compiles a pattern with the given flags into an executable Engine.
//
// Steps:
//  1. Strip whitespace and comments (IgnoreWhitespace)
//  2. Parse pattern using regexp/syntax with the flags mapped onto syntax.Flags;
//     Unicode makes \d, \s and \w Unicode aware, byte mode marks \xNN escapes
//     of non-ASCII bytes as raw bytes
//  3. Compile to NFA (UTF-8 or byte mode, per Unicode)
//  4. Extract prefix literals and build a prefilter
//  5. Build the lazy and one-pass DFAs when the pattern allows them
//  6. Select strategy
//
// Returns an error if:
//   - Configuration is invalid (*ConfigError)
//   - Flags contain unknown bits (*CompileError wrapping flags.ErrInvalidFlag)
//   - Pattern syntax is invalid (*CompileError wrapping *syntax.Error)
//   - Pattern exceeds a compile limit (*CompileError wrapping
//     nfa.ErrTooComplex or nfa.ErrTooManyStates)
//
// Example:
//
//	engine, err := meta.Compile("hello.*world", flags.Default, meta.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string, f flags.Set, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if !f.Valid() {
		return nil, &CompileError{Pattern: pattern, Err: &flags.Error{Token: fmt.Sprintf("%#x", uint8(f)), Err: flags.ErrInvalidFlag}}
	}

	source := pattern
	if f.Has(flags.IgnoreWhitespace) {
		source = stripVerbose(pattern)
	}

	re, err := nfa.Parse(source, syntaxFlags(f), f.Has(flags.Unicode))
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return compileRegexp(pattern, re, f, config)
}

// syntaxFlags maps a flag set onto the parser flags.
// Perl syntax is the base: Perl classes, non-greedy operators and
// single-line anchors.
func syntaxFlags(f flags.Set) syntax.Flags {
	sf := syntax.Perl
	if f.Has(flags.CaseInsensitive) {
		sf |= syntax.FoldCase
	}
	if f.Has(flags.MultiLine) {
		sf &^= syntax.OneLine
	}
	if f.Has(flags.DotNewline) {
		sf |= syntax.DotNL
	}
	if f.Has(flags.SwapGreed) {
		sf |= syntax.NonGreedy
	}
	return sf
}

func compileRegexp(pattern string, re *syntax.Regexp, f flags.Set, config Config) (*Engine, error) {
	compiler := nfa.NewCompiler(nfa.CompilerConfig{
		UTF8:              f.Has(flags.Unicode),
		MaxStates:         config.MaxStates,
		MaxRecursionDepth: config.MaxRecursionDepth,
	})
	n, err := compiler.CompileRegexp(re)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	var pf prefilter.Prefilter
	if config.EnablePrefilter && !n.IsStartAnchored() {
		extractor := literal.New(literal.ExtractorConfig{
			MaxLiterals:   config.MaxLiterals,
			MaxLiteralLen: config.MaxLiteralLen,
			MaxClassSize:  config.MaxClassSize,
		})
		prefixes := extractor.ExtractPrefixes(n)
		pf = prefilter.NewBuilder(prefixes).WithMinLiteralLen(config.MinLiteralLen).Build()
		config.logf("pattern=%q literals=%d complete=%v", pattern, prefixes.Len(), prefixes.AllComplete())
	}

	var dfa *lazy.DFA
	if config.EnableDFA {
		// Unsupported assertions leave dfa nil; searches use the NFA.
		if d, err := lazy.New(n, config.dfaConfig()); err == nil {
			dfa = d
		}
	}

	var op *onepass.DFA
	if config.EnableOnePass {
		if d, err := onepass.Build(n, config.MaxOnePassStates); err == nil {
			op = d
		}
	}

	strategy := selectStrategy(n, pf, config)
	prefilterName := "none"
	if pf != nil {
		prefilterName = pf.String()
	}
	config.logf("pattern=%q flags=%s states=%d captures=%d strategy=%s prefilter=%s dfa=%v onepass=%v",
		pattern, f, n.States(), n.CaptureCount(), strategy, prefilterName, dfa != nil, op != nil)

	return newEngine(pattern, f, n, pf, dfa, op, strategy, config), nil
}
