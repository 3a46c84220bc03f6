package nfa

// classNode is one byte range of a class trie. A node without children ends
// a complete sequence.
type classNode struct {
	lo, hi   byte
	children []*classNode
}

// classTrie merges the byte sequences of a class so that sequences sharing a
// leading byte range share its state. Sibling ranges stay sorted and
// disjoint, which lets each level compile to a single Sparse state.
type classTrie struct {
	roots []*classNode
}

// insert adds seq to the trie. It reports false when seq overlaps a sibling
// range without being equal to it, or when one sequence would be a prefix of
// another; the caller then falls back to plain alternation.
func (t *classTrie) insert(seq []byteRange) bool {
	level := &t.roots
	for depth, r := range seq {
		last := depth == len(seq)-1
		var node *classNode
		at := len(*level)
		for i, n := range *level {
			if r.hi < n.lo {
				at = i
				break
			}
			if r.lo > n.hi {
				continue
			}
			if r.lo != n.lo || r.hi != n.hi {
				return false
			}
			node = n
			break
		}
		if node == nil {
			node = &classNode{lo: r.lo, hi: r.hi}
			*level = append(*level, nil)
			copy((*level)[at+1:], (*level)[at:])
			(*level)[at] = node
			if last {
				return true
			}
			level = &node.children
			continue
		}
		// An existing node: both must continue, or both must end.
		if last != (len(node.children) == 0) {
			return false
		}
		if last {
			return true
		}
		level = &node.children
	}
	return true
}

// buildClassTrie inserts single-byte transitions and the UTF-8 sequences of
// the wide ranges. ok is false when the sequences cannot share a trie.
func buildClassTrie(single []Transition, wide [][2]rune) (t *classTrie, ok bool) {
	t = &classTrie{}
	for _, s := range single {
		if !t.insert([]byteRange{{lo: s.Lo, hi: s.Hi}}) {
			return nil, false
		}
	}
	for _, w := range wide {
		for _, seq := range utf8Sequences(w[0], w[1]) {
			if !t.insert(seq) {
				return nil, false
			}
		}
	}
	return t, true
}

// compileTrie emits one state per distinct trie level, sharing end as the
// exit. Levels with identical transitions compile to the same state, so the
// common continuation byte tails of large Unicode classes are built once.
func (c *Compiler) compileTrie(nodes []*classNode, end StateID, seen map[string]StateID) StateID {
	trans := make([]Transition, len(nodes))
	key := make([]byte, 0, 6*len(nodes))
	for i, n := range nodes {
		next := end
		if len(n.children) > 0 {
			next = c.compileTrie(n.children, end, seen)
		}
		trans[i] = Transition{Lo: n.lo, Hi: n.hi, Next: next}
		key = append(key, n.lo, n.hi, byte(next>>24), byte(next>>16), byte(next>>8), byte(next))
	}
	if id, ok := seen[string(key)]; ok {
		return id
	}

	var id StateID
	if len(trans) == 1 {
		id = c.builder.AddByteRange(trans[0].Lo, trans[0].Hi, trans[0].Next)
	} else {
		id = c.builder.AddSparse(trans)
	}
	seen[string(key)] = id
	return id
}
