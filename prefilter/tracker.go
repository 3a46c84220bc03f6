package prefilter

// Tracker measures how much a prefilter helps during one search.
//
// Every candidate reported by a prefilter costs an anchored verification.
// When candidates arrive densely (few bytes skipped per candidate) that cost
// exceeds the benefit, and the search is better served by running the NFA
// engine directly. The tracker retires the prefilter in that case.
//
// Algorithm:
//  1. Record each candidate and the number of bytes skipped to reach it
//  2. After a warmup of MinCandidates candidates, compare the average skip
//     against MinAvgSkip
//  3. Once retired, the prefilter stays off for the rest of the search
//
// Example usage:
//
//	tracker.Reset()
//	for at <= len(haystack) {
//	    if !tracker.IsActive() {
//	        return unanchoredSearch(haystack, at)
//	    }
//	    pos := pf.Find(haystack, at)
//	    if pos == -1 {
//	        return noMatch
//	    }
//	    tracker.Candidate(pos - at)
//	    if anchoredSearch(haystack, pos) {
//	        return match
//	    }
//	    at = pos + 1
//	}
type Tracker struct {
	config TrackerConfig

	candidates uint64
	skipped    uint64
	active     bool
}

// TrackerConfig holds configuration for the effectiveness tracker.
type TrackerConfig struct {
	// MinCandidates is the number of candidates observed before the tracker
	// may retire the prefilter. Zero disables retirement.
	// Default: 40
	MinCandidates uint64

	// MinAvgSkip is the minimum average number of bytes skipped per
	// candidate for the prefilter to stay active.
	// Default: 16
	MinAvgSkip uint64
}

// DefaultTrackerConfig returns the default tracker configuration.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		MinCandidates: 40,
		MinAvgSkip:    16,
	}
}

// NewTracker creates an active tracker.
func NewTracker(config TrackerConfig) *Tracker {
	return &Tracker{config: config, active: true}
}

// Candidate records a candidate reached after skipping skipped bytes.
func (t *Tracker) Candidate(skipped int) {
	if !t.active {
		return
	}
	t.candidates++
	if skipped > 0 {
		t.skipped += uint64(skipped)
	}
	if t.config.MinCandidates == 0 || t.candidates < t.config.MinCandidates {
		return
	}
	if t.skipped < t.config.MinAvgSkip*t.candidates {
		t.active = false
	}
}

// IsActive returns true if the prefilter is still being used.
func (t *Tracker) IsActive() bool {
	return t.active
}

// Stats returns the number of candidates and the average skip so far.
func (t *Tracker) Stats() (candidates uint64, avgSkip float64) {
	if t.candidates > 0 {
		avgSkip = float64(t.skipped) / float64(t.candidates)
	}
	return t.candidates, avgSkip
}

// Reset clears statistics and re-enables the prefilter for a new search.
func (t *Tracker) Reset() {
	t.candidates = 0
	t.skipped = 0
	t.active = true
}
