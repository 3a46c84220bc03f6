package rure

import "strconv"

// Captures records the span of every capture group of one match.
//
// Group 0 is the whole match. A group that did not take part in the match is
// unset, which is distinct from a zero-width span. A Captures value belongs
// to the Regex that created it and holds a reference to the haystack of the
// last successful search, so spans can be resolved to text.
//
// Captures is not safe for concurrent use.
type Captures struct {
	re       *Regex
	slots    []int
	haystack []byte
}

// NewCaptures returns an empty capture set sized for re.
func (re *Regex) NewCaptures() *Captures {
	c := &Captures{}
	c.bind(re)
	return c
}

// bind sizes c for re. A set already bound to re is left untouched.
func (c *Captures) bind(re *Regex) {
	if c.re == re && c.slots != nil {
		return
	}
	c.re = re
	c.slots = make([]int, re.engine.SlotCount())
	c.clear()
}

// clear marks every group unset.
func (c *Captures) clear() {
	for i := range c.slots {
		c.slots[i] = -1
	}
	c.haystack = nil
}

// Len returns the number of groups, including group 0.
func (c *Captures) Len() int {
	return len(c.slots) / 2
}

// At returns the span of group i. It reports false if i is out of range or
// the group is unset.
func (c *Captures) At(i int) (Match, bool) {
	if i < 0 || i >= c.Len() {
		return Match{}, false
	}
	s, e := c.slots[2*i], c.slots[2*i+1]
	if s < 0 || e < 0 {
		return Match{}, false
	}
	return Match{Start: s, End: e}, true
}

// Name returns the span of the group with the given name.
func (c *Captures) Name(name string) (Match, bool) {
	if c.re == nil {
		return Match{}, false
	}
	i, ok := c.re.CaptureIndex(name)
	if !ok {
		return Match{}, false
	}
	return c.At(i)
}

// Get returns the span of the group addressed by k.
//
// Example:
//
//	m, ok := caps.Get(rure.Name("year"))
//	m, ok = caps.Get(rure.Index(1))
func (c *Captures) Get(k Key) (Match, bool) {
	if k.named {
		return c.Name(k.name)
	}
	return c.At(k.index)
}

// Map returns every set group keyed by Index(i). Named groups are also keyed
// by Name(name). Unset groups are skipped.
func (c *Captures) Map() map[Key]Match {
	out := make(map[Key]Match, c.Len())
	var names []string
	if c.re != nil {
		names = c.re.CaptureNames()
	}
	for i := 0; i < c.Len(); i++ {
		m, ok := c.At(i)
		if !ok {
			continue
		}
		out[Index(i)] = m
		if i < len(names) && names[i] != "" {
			out[Name(names[i])] = m
		}
	}
	return out
}

// Bytes returns the text of group i, or nil if the group is unset.
func (c *Captures) Bytes(i int) []byte {
	m, ok := c.At(i)
	if !ok || c.haystack == nil {
		return nil
	}
	return m.Bytes(c.haystack)
}

// String returns the text of group i, or "" if the group is unset.
func (c *Captures) String(i int) string {
	return string(c.Bytes(i))
}

// Key addresses a capture group by number or by name.
// The zero Key is Index(0).
type Key struct {
	index int
	name  string
	named bool
}

// Index returns a Key addressing group i.
func Index(i int) Key {
	return Key{index: i}
}

// Name returns a Key addressing the group called name.
func Name(name string) Key {
	return Key{name: name, named: true}
}

// IsName reports whether k addresses a group by name.
func (k Key) IsName() bool {
	return k.named
}

// Index returns the group number of an Index key.
func (k Key) Index() (int, bool) {
	return k.index, !k.named
}

// Name returns the group name of a Name key.
func (k Key) Name() (string, bool) {
	return k.name, k.named
}

func (k Key) String() string {
	if k.named {
		return strconv.Quote(k.name)
	}
	return strconv.Itoa(k.index)
}
