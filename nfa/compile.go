package nfa

import (
	"fmt"
	"regexp/syntax"
	"sort"
	"unicode"
	"unicode/utf8"
)

// CompilerConfig configures NFA compilation behavior
type CompilerConfig struct {
	// UTF8 compiles classes, '.' and literals to UTF-8 byte sequences and
	// makes \b and \B use Unicode word characters.
	//
	// When false (byte mode), '.' and classes spanning all non-ASCII input
	// (negated classes, \W) match single bytes, the raw byte codepoints made by
	// MarkRawBytes match the byte they stand for, and \b is ASCII. Literals
	// and other class members still match their UTF-8 encoding.
	UTF8 bool

	// MaxStates limits the number of NFA states. Zero means no limit.
	MaxStates int

	// MaxRecursionDepth limits recursion during compilation to prevent stack overflow
	// Default: 1000
	MaxRecursionDepth int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{
		UTF8:              true,
		MaxStates:         1 << 20,
		MaxRecursionDepth: 1000,
	}
}

// Compiler compiles regexp/syntax.Regexp patterns into Thompson NFAs
type Compiler struct {
	config  CompilerConfig
	builder *Builder
	depth   int // current recursion depth
}

// NewCompiler creates a new NFA compiler with the given configuration
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = 1000
	}
	return &Compiler{
		config:  config,
		builder: NewBuilder(),
	}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile parses pattern with Perl syntax and compiles it into an NFA.
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	re, err := Parse(pattern, syntax.Perl, c.config.UTF8)
	if err != nil {
		return nil, err
	}
	return c.CompileRegexp(re)
}

// Parse parses pattern for the given mode. In UTF-8 mode the Perl classes
// \d, \s and \w are Unicode aware; in byte mode escapes of bytes 0x80-0xFF
// are marked as raw bytes. Syntax errors quote the pattern as written.
func Parse(pattern string, flags syntax.Flags, utf8Mode bool) (*syntax.Regexp, error) {
	var source string
	if utf8Mode {
		source = ExpandPerlClasses(pattern)
	} else {
		source = MarkRawBytes(pattern)
	}
	re, err := syntax.Parse(source, flags)
	if err != nil && source != pattern {
		if _, perr := syntax.Parse(pattern, flags); perr != nil {
			return nil, perr
		}
	}
	return re, err
}

// CompileRegexp compiles a parsed regular expression into an NFA. Trees
// parsed without Parse keep ASCII Perl classes and have no raw bytes.
//
// The pattern is wrapped in the capture states of group 0, so the overall
// match bounds land in slots 0 and 1.
func (c *Compiler) CompileRegexp(re *syntax.Regexp) (*NFA, error) {
	c.builder = NewBuilder()
	c.depth = 0

	re = re.Simplify()
	start, end, err := c.compile(re)
	if err != nil {
		return nil, err
	}

	match := c.builder.AddMatch()
	capEnd := c.builder.AddCapture(0, false, match)
	if err := c.builder.Patch(end, capEnd); err != nil {
		return nil, err
	}
	capStart := c.builder.AddCapture(0, true, start)
	c.builder.SetStart(capStart)
	if err := c.checkSize(); err != nil {
		return nil, err
	}

	return c.builder.Build(
		WithUTF8(c.config.UTF8),
		WithCaptureNames(re.CapNames()),
		WithStartAnchored(IsPatternStartAnchored(re)),
	)
}

func (c *Compiler) checkSize() error {
	if c.config.MaxStates > 0 && c.builder.States() > c.config.MaxStates {
		return fmt.Errorf("%w: more than %d states", ErrTooManyStates, c.config.MaxStates)
	}
	return nil
}

// compile returns the entry state of re and an exit state whose next target
// is still unpatched.
func (c *Compiler) compile(re *syntax.Regexp) (start, end StateID, err error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.config.MaxRecursionDepth {
		return InvalidState, InvalidState, ErrTooComplex
	}
	if err := c.checkSize(); err != nil {
		return InvalidState, InvalidState, err
	}

	switch re.Op {
	case syntax.OpNoMatch:
		return c.compileFail()
	case syntax.OpEmptyMatch:
		return c.compileEmpty()
	case syntax.OpLiteral:
		return c.compileLiteral(re.Rune, re.Flags&syntax.FoldCase != 0)
	case syntax.OpCharClass:
		return c.compileClass(re.Rune)
	case syntax.OpAnyCharNotNL:
		return c.compileClass([]rune{0, '\n' - 1, '\n' + 1, unicode.MaxRune})
	case syntax.OpAnyChar:
		return c.compileClass([]rune{0, unicode.MaxRune})
	case syntax.OpBeginLine:
		return c.compileLook(LookStartLine)
	case syntax.OpEndLine:
		return c.compileLook(LookEndLine)
	case syntax.OpBeginText:
		return c.compileLook(LookStartText)
	case syntax.OpEndText:
		return c.compileLook(LookEndText)
	case syntax.OpWordBoundary:
		if c.config.UTF8 {
			return c.compileLook(LookWordBoundaryUnicode)
		}
		return c.compileLook(LookWordBoundary)
	case syntax.OpNoWordBoundary:
		if c.config.UTF8 {
			return c.compileLook(LookNoWordBoundaryUnicode)
		}
		return c.compileLook(LookNoWordBoundary)
	case syntax.OpCapture:
		return c.compileCapture(re)
	case syntax.OpStar:
		return c.compileStar(re.Sub[0], re.Flags&syntax.NonGreedy != 0)
	case syntax.OpPlus:
		return c.compilePlus(re.Sub[0], re.Flags&syntax.NonGreedy != 0)
	case syntax.OpQuest:
		return c.compileQuest(re.Sub[0], re.Flags&syntax.NonGreedy != 0)
	case syntax.OpRepeat:
		// Simplify rewrites every repeat; this only triggers for trees built by hand.
		simple := re.Simplify()
		if simple.Op == syntax.OpRepeat {
			return InvalidState, InvalidState, fmt.Errorf("%w: %s", ErrUnsupported, re.Op)
		}
		return c.compile(simple)
	case syntax.OpConcat:
		return c.compileConcat(re.Sub)
	case syntax.OpAlternate:
		return c.compileAlternate(re.Sub)
	default:
		return InvalidState, InvalidState, fmt.Errorf("%w: %s", ErrUnsupported, re.Op)
	}
}

func (c *Compiler) compileEmpty() (start, end StateID, err error) {
	id := c.builder.AddEpsilon(InvalidState)
	return id, id, nil
}

func (c *Compiler) compileFail() (start, end StateID, err error) {
	return c.builder.AddFail(), c.builder.AddEpsilon(InvalidState), nil
}

func (c *Compiler) compileLook(look Look) (start, end StateID, err error) {
	id := c.builder.AddLook(look, InvalidState)
	return id, id, nil
}

// compileLiteral compiles a run of literal runes into a chain of states.
func (c *Compiler) compileLiteral(runes []rune, fold bool) (start, end StateID, err error) {
	if len(runes) == 0 {
		return c.compileEmpty()
	}

	start, end = InvalidState, InvalidState
	link := func(s, e StateID) error {
		if start == InvalidState {
			start, end = s, e
			return nil
		}
		if err := c.builder.Patch(end, s); err != nil {
			return err
		}
		end = e
		return nil
	}

	var buf [utf8.UTFMax]byte
	for _, r := range runes {
		if fold {
			s, e, err := c.compileClass(foldRanges(r))
			if err != nil {
				return InvalidState, InvalidState, err
			}
			if err := link(s, e); err != nil {
				return InvalidState, InvalidState, err
			}
			continue
		}

		var bytes []byte
		if !c.config.UTF8 && isRawByte(r) {
			buf[0] = byte(r - RawByteBase)
			bytes = buf[:1]
		} else {
			n := utf8.EncodeRune(buf[:], r)
			bytes = buf[:n]
		}
		for _, b := range bytes {
			id := c.builder.AddByteRange(b, b, InvalidState)
			if err := link(id, id); err != nil {
				return InvalidState, InvalidState, err
			}
		}
	}
	return start, end, nil
}

// compileClass compiles sorted, non-overlapping codepoint ranges given as
// lo/hi pairs.
func (c *Compiler) compileClass(ranges []rune) (start, end StateID, err error) {
	var single []Transition
	var wide [][2]rune
	if c.config.UTF8 {
		single, wide = splitUTF8Class(ranges)
	} else {
		single, wide = splitByteClass(ranges)
	}
	if len(single) == 0 && len(wide) == 0 {
		return c.compileFail()
	}

	end = c.builder.AddEpsilon(InvalidState)
	if trie, ok := buildClassTrie(single, wide); ok {
		return c.compileTrie(trie.roots, end, make(map[string]StateID)), end, nil
	}

	// Raw bytes that are also UTF-8 lead bytes; single bytes win.
	var alts []StateID
	switch len(single) {
	case 0:
	case 1:
		alts = append(alts, c.builder.AddByteRange(single[0].Lo, single[0].Hi, end))
	default:
		for i := range single {
			single[i].Next = end
		}
		alts = append(alts, c.builder.AddSparse(single))
	}
	for _, w := range wide {
		for _, seq := range utf8Sequences(w[0], w[1]) {
			next := end
			for i := len(seq) - 1; i >= 0; i-- {
				next = c.builder.AddByteRange(seq[i].lo, seq[i].hi, next)
			}
			alts = append(alts, next)
		}
	}
	return c.splitChain(alts), end, nil
}

// splitUTF8Class separates the ASCII part of a class, matched by single
// bytes, from the ranges that need multi-byte sequences.
func splitUTF8Class(ranges []rune) (single []Transition, wide [][2]rune) {
	for i := 0; i+1 < len(ranges); i += 2 {
		lo, hi := ranges[i], ranges[i+1]
		if lo < utf8.RuneSelf {
			h := min(hi, utf8.RuneSelf-1)
			single = append(single, Transition{Lo: byte(lo), Hi: byte(h)})
			lo = utf8.RuneSelf
		}
		if lo <= hi {
			wide = append(wide, [2]rune{lo, hi})
		}
	}
	return single, wide
}

// splitByteClass separates a byte mode class. ASCII members and raw byte
// codepoints are single bytes. A class spanning every raw byte or every
// non-ASCII codepoint ('.', negated classes) matches bytes only; otherwise
// non-ASCII members keep their UTF-8 encoding.
func splitByteClass(ranges []rune) (single []Transition, wide [][2]rune) {
	var raw []Transition
	rawCount, wideCount := 0, 0
	for i := 0; i+1 < len(ranges); i += 2 {
		lo, hi := ranges[i], ranges[i+1]
		if lo < utf8.RuneSelf {
			h := min(hi, utf8.RuneSelf-1)
			single = append(single, Transition{Lo: byte(lo), Hi: byte(h)})
			lo = utf8.RuneSelf
		}
		if lo <= hi && lo < rawByteMin {
			h := min(hi, rawByteMin-1)
			wide = append(wide, [2]rune{lo, h})
			wideCount += int(h - lo + 1)
			lo = rawByteMin
		}
		if lo <= hi {
			h := min(hi, rawByteMax)
			raw = append(raw, Transition{Lo: byte(lo - RawByteBase), Hi: byte(h - RawByteBase)})
			rawCount += int(h - lo + 1)
		}
	}
	single = append(single, raw...)
	if rawCount == rawByteMax-rawByteMin+1 || wideCount == rawByteMin-utf8.RuneSelf {
		wide = nil
	}
	return single, wide
}

// splitChain joins alternatives with Split states, preferring earlier ones.
func (c *Compiler) splitChain(alts []StateID) StateID {
	last := alts[len(alts)-1]
	for i := len(alts) - 2; i >= 0; i-- {
		last = c.builder.AddSplit(alts[i], last)
	}
	return last
}

func (c *Compiler) compileCapture(re *syntax.Regexp) (start, end StateID, err error) {
	subStart, subEnd, err := c.compile(re.Sub[0])
	if err != nil {
		return InvalidState, InvalidState, err
	}
	group := uint32(re.Cap)
	end = c.builder.AddCapture(group, false, InvalidState)
	if err := c.builder.Patch(subEnd, end); err != nil {
		return InvalidState, InvalidState, err
	}
	return c.builder.AddCapture(group, true, subStart), end, nil
}

func (c *Compiler) compileConcat(subs []*syntax.Regexp) (start, end StateID, err error) {
	if len(subs) == 0 {
		return c.compileEmpty()
	}
	start, end, err = c.compile(subs[0])
	if err != nil {
		return InvalidState, InvalidState, err
	}
	for _, sub := range subs[1:] {
		s, e, err := c.compile(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.builder.Patch(end, s); err != nil {
			return InvalidState, InvalidState, err
		}
		end = e
	}
	return start, end, nil
}

func (c *Compiler) compileAlternate(subs []*syntax.Regexp) (start, end StateID, err error) {
	if len(subs) == 0 {
		return c.compileFail()
	}
	join := c.builder.AddEpsilon(InvalidState)
	starts := make([]StateID, 0, len(subs))
	for _, sub := range subs {
		s, e, err := c.compile(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.builder.Patch(e, join); err != nil {
			return InvalidState, InvalidState, err
		}
		starts = append(starts, s)
	}
	return c.splitChain(starts), join, nil
}

// prefer orders a split so that the loop (or optional) body is tried first
// unless the repetition is non-greedy.
func (c *Compiler) prefer(split, body, skip StateID, lazy bool) error {
	if lazy {
		return c.builder.PatchSplit(split, skip, body)
	}
	return c.builder.PatchSplit(split, body, skip)
}

// compileStar compiles sub*. When sub can match empty, it is compiled as
// (sub+)? so that an empty iteration still records sub's captures, as in
// (a*)* against "b".
func (c *Compiler) compileStar(sub *syntax.Regexp, lazy bool) (start, end StateID, err error) {
	if canMatchEmpty(sub) {
		subStart, subEnd, err := c.compilePlus(sub, lazy)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		return c.optional(subStart, subEnd, lazy)
	}

	split := c.builder.AddSplit(InvalidState, InvalidState)
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	end = c.builder.AddEpsilon(InvalidState)
	if err := c.builder.Patch(subEnd, split); err != nil {
		return InvalidState, InvalidState, err
	}
	if err := c.prefer(split, subStart, end, lazy); err != nil {
		return InvalidState, InvalidState, err
	}
	return split, end, nil
}

func (c *Compiler) compilePlus(sub *syntax.Regexp, lazy bool) (start, end StateID, err error) {
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	split := c.builder.AddSplit(InvalidState, InvalidState)
	end = c.builder.AddEpsilon(InvalidState)
	if err := c.builder.Patch(subEnd, split); err != nil {
		return InvalidState, InvalidState, err
	}
	if err := c.prefer(split, subStart, end, lazy); err != nil {
		return InvalidState, InvalidState, err
	}
	return subStart, end, nil
}

func (c *Compiler) compileQuest(sub *syntax.Regexp, lazy bool) (start, end StateID, err error) {
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	return c.optional(subStart, subEnd, lazy)
}

// optional makes the compiled fragment [subStart, subEnd] skippable.
func (c *Compiler) optional(subStart, subEnd StateID, lazy bool) (start, end StateID, err error) {
	end = c.builder.AddEpsilon(InvalidState)
	if err := c.builder.Patch(subEnd, end); err != nil {
		return InvalidState, InvalidState, err
	}
	split := c.builder.AddSplit(InvalidState, InvalidState)
	if err := c.prefer(split, subStart, end, lazy); err != nil {
		return InvalidState, InvalidState, err
	}
	return split, end, nil
}

// canMatchEmpty reports whether re matches the empty string somewhere,
// ignoring whether its assertions hold.
func canMatchEmpty(re *syntax.Regexp) bool {
	switch re.Op {
	case syntax.OpEmptyMatch, syntax.OpStar, syntax.OpQuest,
		syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText,
		syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return true
	case syntax.OpLiteral:
		return len(re.Rune) == 0
	case syntax.OpCapture, syntax.OpPlus:
		return canMatchEmpty(re.Sub[0])
	case syntax.OpRepeat:
		return re.Min == 0 || canMatchEmpty(re.Sub[0])
	case syntax.OpConcat:
		for _, sub := range re.Sub {
			if !canMatchEmpty(sub) {
				return false
			}
		}
		return true
	case syntax.OpAlternate:
		for _, sub := range re.Sub {
			if canMatchEmpty(sub) {
				return true
			}
		}
		return false
	}
	return false
}

// foldRanges returns the simple case folding orbit of r as lo/hi pairs.
func foldRanges(r rune) []rune {
	orbit := []rune{r}
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		orbit = append(orbit, f)
	}
	sort.Slice(orbit, func(i, j int) bool { return orbit[i] < orbit[j] })

	ranges := make([]rune, 0, 2*len(orbit))
	for _, f := range orbit {
		if n := len(ranges); n > 0 && ranges[n-1]+1 == f {
			ranges[n-1] = f
			continue
		}
		ranges = append(ranges, f, f)
	}
	return ranges
}
