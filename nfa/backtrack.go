package nfa

// DefaultMaxVisited is the default visited-set budget in bits (256KB).
const DefaultMaxVisited = 256 * 1024 * 8

// BoundedBacktracker implements a bounded backtracking regex matcher.
// It uses a bit vector to track visited (state, position) pairs so that each
// pair is explored at most once, which keeps the worst case linear in
// states * haystack length. The bit vector caps the input size it accepts.
//
// Alternatives are tried in priority order, so the first match state reached
// is the leftmost-first match for the current start position, and the
// results agree with PikeVM.
//
// BoundedBacktracker is immutable; per-search memory lives in BacktrackerState.
type BoundedBacktracker struct {
	nfa *NFA

	// maxVisited limits memory usage (in bits)
	maxVisited int
}

// BacktrackerState holds mutable per-search state for BoundedBacktracker.
type BacktrackerState struct {
	// visited is a bit vector: bit (state * (spanLen+1) + pos-start).
	visited []uint64

	// spanLen and start describe the current search span
	spanLen int
	start   int

	stack []frame
}

// NewBoundedBacktracker creates a backtracker whose visited set may use up
// to maxVisited bits. A non-positive value selects DefaultMaxVisited.
func NewBoundedBacktracker(nfa *NFA, maxVisited int) *BoundedBacktracker {
	if maxVisited <= 0 {
		maxVisited = DefaultMaxVisited
	}
	return &BoundedBacktracker{
		nfa:        nfa,
		maxVisited: maxVisited,
	}
}

// NewBacktrackerState returns empty search state; it grows on demand.
func NewBacktrackerState() *BacktrackerState {
	return &BacktrackerState{stack: make([]frame, 0, 16)}
}

// CanHandle returns true if this engine can search a span of spanLen bytes
// without exceeding its visited budget.
func (b *BoundedBacktracker) CanHandle(spanLen int) bool {
	return b.nfa.States()*(spanLen+1) <= b.maxVisited
}

// MaxVisited returns the visited-set budget in bits.
func (b *BoundedBacktracker) MaxVisited() int {
	return b.maxVisited
}

// reset prepares state for a search over haystack[start:].
func (s *BacktrackerState) reset(numStates, start, haystackLen int) {
	s.start = start
	s.spanLen = haystackLen - start

	words := (numStates*(s.spanLen+1) + 63) / 64
	if cap(s.visited) >= words {
		s.visited = s.visited[:words]
		for i := range s.visited {
			s.visited[i] = 0
		}
	} else {
		s.visited = make([]uint64, words)
	}
}

// shouldVisit checks if (sid, pos) has been visited and marks it if not.
func (s *BacktrackerState) shouldVisit(sid StateID, pos int) bool {
	idx := int(sid)*(s.spanLen+1) + pos - s.start
	word := idx / 64
	bit := uint64(1) << (idx % 64)
	if s.visited[word]&bit != 0 {
		return false
	}
	s.visited[word] |= bit
	return true
}

// IsMatch reports whether the NFA matches anywhere in haystack[start:].
// The caller must check CanHandle(len(haystack)-start) first.
func (b *BoundedBacktracker) IsMatch(state *BacktrackerState, haystack []byte, start int) bool {
	return b.Search(state, haystack, start, false, nil)
}

// Search has the same contract as PikeVM.Search. The caller must check
// CanHandle(len(haystack)-start) first.
//
// Each start position is tried in order. The visited set is shared across
// start positions: a (state, position) pair that failed once fails again.
func (b *BoundedBacktracker) Search(state *BacktrackerState, haystack []byte, start int, anchored bool, slots []int) bool {
	if start < 0 || start > len(haystack) {
		return false
	}
	if b.nfa.startAnchored && start > 0 {
		return false
	}
	anchored = anchored || b.nfa.startAnchored
	if len(slots) > b.nfa.SlotCount() {
		slots = slots[:b.nfa.SlotCount()]
	}

	state.reset(b.nfa.States(), start, len(haystack))
	for at := start; at <= len(haystack); at++ {
		for i := range slots {
			slots[i] = -1
		}
		if b.backtrack(state, haystack, at, slots) {
			return true
		}
		if anchored {
			break
		}
	}
	return false
}

// backtrack explores the NFA depth first from the start state at position at.
// Capture writes are undone through restore frames when a path fails.
func (b *BoundedBacktracker) backtrack(state *BacktrackerState, haystack []byte, at int, slots []int) bool {
	stack := append(state.stack[:0], frame{kind: frameExplore, sid: b.nfa.start, at: at})
	defer func() { state.stack = stack[:0] }()

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.kind == frameRestore {
			slots[f.slot] = f.at
			continue
		}

		sid, pos := f.sid, f.at
	explore:
		for {
			if !state.shouldVisit(sid, pos) {
				break
			}
			s := &b.nfa.states[sid]
			switch s.kind {
			case StateMatch:
				return true
			case StateByteRange, StateSparse:
				if pos >= len(haystack) {
					break explore
				}
				next := s.Step(haystack[pos])
				if next == InvalidState {
					break explore
				}
				sid = next
				pos++
			case StateEpsilon:
				sid = s.next
			case StateSplit:
				stack = append(stack, frame{kind: frameExplore, sid: s.right, at: pos})
				sid = s.left
			case StateCapture:
				if int(s.slot) < len(slots) {
					stack = append(stack, frame{kind: frameRestore, slot: s.slot, at: slots[s.slot]})
					slots[s.slot] = pos
				}
				sid = s.next
			case StateLook:
				if !checkLook(s.look, haystack, pos) {
					break explore
				}
				sid = s.next
			default:
				break explore
			}
		}
	}
	return false
}
