package rure

// Iter yields successive non-overlapping matches over one haystack.
//
// An Iter is Active until a search fails, then Exhausted for good. After a
// non-empty match the next search starts at its end. After an empty match at
// offset s the match is reported and the next search starts one codepoint
// later (one byte in byte mode or on invalid UTF-8), so patterns that match
// the empty string still make progress. An empty match at the end of the
// haystack exhausts the iterator.
//
// Example:
//
//	it := rure.MustCompile(`a*`).Iter([]byte("aab"))
//	for m, ok := it.Next(); ok; m, ok = it.Next() {
//	    fmt.Println(m) // [0, 2) [2, 2) [3, 3)
//	}
//
// An Iter must not be used from multiple goroutines at once.
type Iter struct {
	re       *Regex
	haystack []byte
	offset   int
	done     bool
}

// Iter returns an iterator over haystack starting at offset 0.
func (re *Regex) Iter(haystack []byte) *Iter {
	return &Iter{re: re, haystack: haystack}
}

// IterAt returns an iterator starting at start. Matches may still depend on
// the bytes before start through assertions.
func (re *Regex) IterAt(haystack []byte, start int) (*Iter, error) {
	if err := checkStart(haystack, start); err != nil {
		return nil, err
	}
	return &Iter{re: re, haystack: haystack, offset: start}, nil
}

// Next returns the next match. Once it reports false it always does.
func (it *Iter) Next() (Match, bool) {
	if it.done {
		return Match{}, false
	}
	s, e, ok := it.re.engine.FindAt(it.haystack, it.offset)
	if !ok {
		it.done = true
		return Match{}, false
	}
	m := Match{Start: s, End: e}
	it.advance(m)
	return m, true
}

// NextCaptures is like Next but records every group of the match in caps.
// When it reports false, every group in caps is unset. A nil caps advances
// the iterator like Next.
func (it *Iter) NextCaptures(caps *Captures) bool {
	if caps == nil {
		_, ok := it.Next()
		return ok
	}
	if it.done {
		caps.bind(it.re)
		caps.clear()
		return false
	}
	ok, err := it.re.FindCapturesAt(it.haystack, it.offset, caps)
	if err != nil || !ok {
		it.done = true
		return false
	}
	m, _ := caps.At(0)
	it.advance(m)
	return true
}

// Exhausted reports whether the iterator has finished.
func (it *Iter) Exhausted() bool {
	return it.done
}

// Offset returns the offset the next search starts at.
func (it *Iter) Offset() int {
	return it.offset
}

func (it *Iter) advance(m Match) {
	switch {
	case m.End > m.Start:
		it.offset = m.End
	case m.Start >= len(it.haystack):
		it.offset = len(it.haystack)
		it.done = true
	default:
		it.offset = m.Start + it.re.step(it.haystack, m.Start)
	}
}
