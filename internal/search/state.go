package search

import "sort"

// Phase is the lifecycle state of a search sweep.
type Phase int

const (
	PhaseInactive Phase = iota
	PhaseActive
	PhaseComplete
)

// LineMatch records that a line matched the search term, and how.
type LineMatch struct {
	Index      int
	HashHit    bool
	ContentHit bool
}

// state holds the mutable search results, guarded by the Search's own
// timedMutex (distinct from the store's lock, so a status read never waits
// on the store lock; it does wait while a sweep holds this one).
type state struct {
	phase          Phase
	term           string
	version        uint64
	matches        []LineMatch // ascending by Index
	selected       int
	hasSelected    bool
	matchStartHint int
	cursor         int
}

func newState() *state {
	return &state{}
}

func (s *state) reset() {
	*s = state{}
}

// tryInvalidate clears the match set and rewinds state when the store's
// version or the search term has changed since the last sweep, reporting
// whether it did so (the caller must also reset its scan cursor to 0).
func (s *state) tryInvalidate(version uint64, term string) bool {
	if s.version == version && s.term == term {
		return false
	}
	s.version = version
	s.term = term
	s.matches = nil
	s.selected = 0
	s.hasSelected = false
	s.phase = PhaseInactive
	s.cursor = 0
	return true
}

// pushMatch appends a line match, reporting whether it carried a hit.
func (s *state) pushMatch(m LineMatch) bool {
	if !m.HashHit && !m.ContentHit {
		return false
	}
	s.matches = append(s.matches, m)
	return true
}

func (s *state) setPhase(p Phase) { s.phase = p }

func (s *state) numberMatches() int { return len(s.matches) }

func (s *state) matchValue(i int) (LineMatch, bool) {
	if i < 0 || i >= len(s.matches) {
		return LineMatch{}, false
	}
	return s.matches[i], true
}

// matchValueForLine performs a binary search by line index (matches are
// stored in ascending index order).
func (s *state) matchValueForLine(index int) (LineMatch, bool) {
	i := sort.Search(len(s.matches), func(i int) bool { return s.matches[i].Index >= index })
	if i < len(s.matches) && s.matches[i].Index == index {
		return s.matches[i], true
	}
	return LineMatch{}, false
}

func (s *state) getSelected() (int, bool) { return s.selected, s.hasSelected }

func (s *state) setSelected(i int) {
	s.selected = i
	s.hasSelected = true
}

func (s *state) matchStartHintValue() int { return s.matchStartHint }

func (s *state) setMatchStartHint(i int) { s.matchStartHint = i }
