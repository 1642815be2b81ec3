package search

import (
	"strings"
	"time"

	"github.com/chatter/rit/internal/todo"
)

// lockBudget is the maximum time a sweep waits to acquire the store lock and
// the search state lock before giving up for this pass.
const lockBudget = 100 * time.Millisecond

// Result reports the outcome of one Search call.
type Result int

const (
	// ResultNone means no lock was acquired, or the sweep was interrupted
	// before finding a new match or reaching the end of the sheet.
	ResultNone Result = iota
	// ResultUpdated means at least one new match was appended this sweep
	// before it was interrupted short of the end of the sheet.
	ResultUpdated
	// ResultComplete means the sweep reached the end of the sheet.
	ResultComplete
)

// Searchable is implemented by Search; it is the interface the list module
// and the worker pool depend on, so tests can substitute a fake.
type Searchable interface {
	Reset()
	Search(interrupter Interrupter, term string) Result
	Next() (int, bool)
	Previous() (int, bool)
	SetSearchStartHint(hint int)
	CurrentMatch() (LineMatch, bool)
	MatchAtIndex(index int) (LineMatch, bool)
	CurrentResultSelected() (int, bool)
	TotalResults() int
	IsActive() bool
}

// Search runs an incremental, resumable search over a todo.Store shared
// with the UI thread. A store-wide lock and a dedicated state lock are each
// acquired with a bounded budget so a busy UI never blocks a search worker
// (or vice versa) for long.
type Search struct {
	storeLock *timedMutex
	store     *todo.Store

	stateLock *timedMutex
	state     *state
}

// New builds a Search over store, using storeLock to bound access to it.
// storeLock is shared with every other goroutine that touches store (the UI
// thread included); NewStoreLock below constructs one.
func New(store *todo.Store, storeLock *StoreLock) *Search {
	return &Search{
		storeLock: storeLock.mu,
		store:     store,
		stateLock: newTimedMutex(),
		state:     newState(),
	}
}

// StoreLock is a bounded-wait mutex shared by every goroutine that reads or
// mutates a todo.Store outside of the owning driver loop.
type StoreLock struct{ mu *timedMutex }

// NewStoreLock returns a fresh, unlocked StoreLock.
func NewStoreLock() *StoreLock { return &StoreLock{mu: newTimedMutex()} }

// Reset clears all search state (e.g. when the user cancels a search).
func (s *Search) Reset() {
	s.stateLock.lock()
	defer s.stateLock.unlock()
	s.state.reset()
}

// Search runs one incremental sweep for term, starting from the saved
// cursor, and returns how it ended. interrupter is polled between lines so
// a fresh keystroke can cut a long sweep short.
func (s *Search) Search(interrupter Interrupter, term string) Result {
	if !s.storeLock.tryLockFor(lockBudget) {
		return ResultNone
	}
	defer s.storeLock.unlock()

	if !s.stateLock.tryLockFor(lockBudget) {
		return ResultNone
	}
	defer s.stateLock.unlock()

	if s.state.tryInvalidate(s.store.Version(), term) {
		s.state.cursor = 0
	}

	s.state.setPhase(PhaseActive)

	hasMatches := false
	complete := false
	cursor := s.state.cursor

	for interrupter.ShouldContinue() {
		line := s.store.Line(cursor)
		if line == nil {
			complete = true
			break
		}

		hashHit := line.Action().AcceptsReference() && strings.HasPrefix(line.Hash(), term)
		contentHit := line.Action() != todo.ActionBreak && line.Action() != todo.ActionNoop &&
			strings.Contains(line.Content(), term)

		if s.state.pushMatch(LineMatch{Index: cursor, HashHit: hashHit, ContentHit: contentHit}) {
			hasMatches = true
		}

		cursor++
	}

	s.state.cursor = cursor

	switch {
	case complete:
		s.state.setPhase(PhaseComplete)
		return ResultComplete
	case hasMatches:
		return ResultUpdated
	default:
		return ResultNone
	}
}

// Next selects the next match after the current selection, wrapping to the
// first match. On first use after a start hint was set it seeks to the
// first match at or after the hint. It returns the newly selected match's
// line index.
func (s *Search) Next() (int, bool) {
	s.stateLock.lock()
	defer s.stateLock.unlock()

	if s.state.numberMatches() == 0 {
		return 0, false
	}

	var newSelected int
	if current, ok := s.state.getSelected(); ok {
		newSelected = current + 1
		if newSelected >= s.state.numberMatches() {
			newSelected = 0
		}
	} else {
		newSelected = firstAtOrAfter(s.state.matches, s.state.matchStartHintValue())
	}
	s.state.setSelected(newSelected)

	idx := s.state.matches[newSelected].Index
	s.state.setMatchStartHint(idx)
	return idx, true
}

// Previous is the mirror of Next, moving the selection backward with
// wrap-around.
func (s *Search) Previous() (int, bool) {
	s.stateLock.lock()
	defer s.stateLock.unlock()

	if s.state.numberMatches() == 0 {
		return 0, false
	}

	var newSelected int
	if current, ok := s.state.getSelected(); ok {
		if current == 0 {
			newSelected = s.state.numberMatches() - 1
		} else {
			newSelected = current - 1
		}
	} else {
		newSelected = lastAtOrBefore(s.state.matches, s.state.matchStartHintValue())
	}
	s.state.setSelected(newSelected)

	idx := s.state.matches[newSelected].Index
	s.state.setMatchStartHint(idx)
	return idx, true
}

func firstAtOrAfter(matches []LineMatch, hint int) int {
	for i, m := range matches {
		if m.Index >= hint {
			return i
		}
	}
	return 0
}

func lastAtOrBefore(matches []LineMatch, hint int) int {
	last := len(matches) - 1
	for i := len(matches) - 1; i >= 0; i-- {
		if matches[i].Index <= hint {
			return i
		}
	}
	return last
}

// SetSearchStartHint sets the line index used to pick the first result on
// the next Next()/Previous() call.
func (s *Search) SetSearchStartHint(hint int) {
	s.stateLock.lock()
	defer s.stateLock.unlock()
	s.state.setMatchStartHint(hint)
}

// CurrentMatch returns the currently selected match, if any.
func (s *Search) CurrentMatch() (LineMatch, bool) {
	s.stateLock.lock()
	defer s.stateLock.unlock()

	selected, ok := s.state.getSelected()
	if !ok {
		return LineMatch{}, false
	}
	return s.state.matchValue(selected)
}

// MatchAtIndex looks up the match for a given line index, if one exists.
func (s *Search) MatchAtIndex(index int) (LineMatch, bool) {
	s.stateLock.lock()
	defer s.stateLock.unlock()
	return s.state.matchValueForLine(index)
}

// CurrentResultSelected returns the index (within the match set) of the
// currently selected result, if any.
func (s *Search) CurrentResultSelected() (int, bool) {
	s.stateLock.lock()
	defer s.stateLock.unlock()
	return s.state.getSelected()
}

// TotalResults returns the number of matches found so far.
func (s *Search) TotalResults() int {
	s.stateLock.lock()
	defer s.stateLock.unlock()
	return s.state.numberMatches()
}

// IsActive reports whether a search sweep is in progress.
func (s *Search) IsActive() bool {
	s.stateLock.lock()
	defer s.stateLock.unlock()
	return s.state.phase == PhaseActive
}

var _ Searchable = (*Search)(nil)
