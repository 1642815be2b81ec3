package todo

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/chatter/rit/internal/logger"
)

// EditContext describes the mutation UpdateRange applies to a line range:
// any field left nil (Action, Content or Option) is left untouched on the
// affected lines.
type EditContext struct {
	Action  *Action
	Content *string
	Option  *string
}

// Store owns the ordered sheet, applies edits, and records the undo/redo
// journal. It corresponds to spec.md's TodoFile.
type Store struct {
	path    string
	lines   []Line
	isNoop  bool
	options Options
	version version
	history *history
	selected int

	log *logger.Logger
}

// NewStore constructs an empty store for the sheet at path.
func NewStore(path string, opts Options, log *logger.Logger) *Store {
	opts = opts.normalized()
	return &Store{
		path:    path,
		options: opts,
		history: newHistory(opts.UndoLimit),
		log:     log,
	}
}

// Path returns the on-disk path the store loads from / writes to.
func (s *Store) Path() string { return s.path }

// Len returns the number of lines currently in the sheet.
func (s *Store) Len() int { return len(s.lines) }

// IsNoop reports whether the sheet is the special empty "noop" sheet.
func (s *Store) IsNoop() bool { return s.isNoop }

// Version returns the store's monotonic mutation counter.
func (s *Store) Version() uint64 { return s.version.get() }

// Line returns a pointer to the line at index i, or nil if out of range.
// Callers must not retain the pointer across a mutation.
func (s *Store) Line(i int) *Line {
	if i < 0 || i >= len(s.lines) {
		return nil
	}
	return &s.lines[i]
}

// Lines returns the full line slice. Callers must not mutate it directly;
// use the Store's mutating methods so version/history stay consistent.
func (s *Store) Lines() []Line { return s.lines }

// SelectedLineIndex returns the currently selected index.
func (s *Store) SelectedLineIndex() int { return s.selected }

// SetSelectedLineIndex clamps idx to a valid index and returns the result.
func (s *Store) SetSelectedLineIndex(idx int) int {
	s.selected = s.clampIndex(idx)
	return s.selected
}

func (s *Store) clampIndex(idx int) int {
	if len(s.lines) == 0 {
		return 0
	}
	if idx >= len(s.lines) {
		return len(s.lines) - 1
	}
	if idx < 0 {
		return 0
	}
	return idx
}

// SetLines replaces the sheet's contents wholesale: recomputes IsNoop from
// the head line, drops any other noop lines, clamps the selection, and
// resets both the version counter and the history journal (anchoring a
// fresh Load sentinel, per spec.md's Design Notes open question).
func (s *Store) SetLines(lines []Line) {
	s.isNoop = len(lines) > 0 && lines[0].Action() == ActionNoop
	if s.isNoop {
		s.lines = nil
	} else {
		kept := make([]Line, 0, len(lines))
		for _, l := range lines {
			if l.Action() != ActionNoop {
				kept = append(kept, l)
			}
		}
		s.lines = kept
	}
	s.selected = s.clampIndex(s.selected)
	s.version.reset()
	s.history.reset()
}

// Load reads the sheet from Path(), skipping blank lines and comments.
func (s *Store) Load() error {
	f, err := os.Open(s.path)
	if err != nil {
		return &FileReadError{Path: s.path, Cause: CauseIO, Err: err}
	}
	defer f.Close()

	var lines []Line

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		raw := scanner.Text()
		if raw == "" || strings.HasPrefix(raw, s.options.CommentPrefix) {
			continue
		}
		line, perr := ParseLine(raw)
		if perr != nil {
			if s.log != nil {
				s.log.Warn("failed to parse todo line", "path", s.path, "line", raw, "err", perr)
			}
			return &FileReadError{Path: s.path, Cause: CauseParse, Err: perr}
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return &FileReadError{Path: s.path, Cause: CauseIO, Err: err}
	}

	s.SetLines(lines)
	if s.log != nil {
		s.log.Debug("loaded todo file", "path", s.path, "lines", len(s.lines), "noop", s.isNoop)
	}
	return nil
}

// Write serialises the sheet back to Path(). For each modified line, when
// LineChangedCommand is configured, an extra synthesised exec line is
// emitted immediately after it.
func (s *Store) Write() error {
	f, err := os.Create(s.path)
	if err != nil {
		return &FileWriteError{Path: s.path, Err: err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	if s.isNoop {
		fmt.Fprintln(w, "noop")
	} else {
		for i := range s.lines {
			line := &s.lines[i]
			fmt.Fprintln(w, line.ToText())
			if hook := s.changeHookLine(line); hook != "" {
				fmt.Fprintln(w, hook)
			}
		}
	}

	if err := w.Flush(); err != nil {
		return &FileWriteError{Path: s.path, Err: err}
	}
	if s.log != nil {
		s.log.Debug("wrote todo file", "path", s.path, "lines", len(s.lines))
	}
	return nil
}

// changeHookLine returns the synthesised exec line for a modified line, or
// "" if no hook is configured, the line wasn't modified, or the action
// carries no hook form (break/noop).
func (s *Store) changeHookLine(line *Line) string {
	if s.options.LineChangedCommand == "" || !line.IsModified() {
		return ""
	}

	action := line.Action()
	switch action {
	case ActionBreak, ActionNoop:
		return ""
	case ActionDrop, ActionFixup, ActionEdit, ActionPick, ActionReword, ActionSquash:
		return fmt.Sprintf("exec %s %q %q", s.options.LineChangedCommand, action.String(), line.Hash())
	case ActionExec, ActionLabel, ActionReset, ActionMerge, ActionUpdateRef:
		return fmt.Sprintf("exec %s %q %q %q", s.options.LineChangedCommand, action.String(), line.Original(), line.Content())
	default:
		return ""
	}
}

// AddLine inserts line at index (clamped to [0, len]) and records an Add
// history entry.
func (s *Store) AddLine(index int, line Line) {
	if index > len(s.lines) {
		index = len(s.lines)
	}
	if index < 0 {
		index = 0
	}

	s.lines = append(s.lines, Line{})
	copy(s.lines[index+1:], s.lines[index:])
	s.lines[index] = line

	s.version.increment()
	s.history.record(newAddItem(index, index))
}

// RemoveLines removes lines[start:end+1] (range normalised/clamped) and
// records a Remove history entry carrying the removed lines so undo can
// restore them exactly.
func (s *Store) RemoveLines(start, end int) {
	if len(s.lines) == 0 {
		return
	}
	start, end = normalizeRange(start, end, len(s.lines)-1)

	removed := removeRange(&s.lines, start, end)
	s.selected = s.clampIndex(start)

	s.version.increment()
	s.history.record(newRemoveItem(start, end, removed))
}

// UpdateRange applies ctx to every line in [start, end] (order-independent,
// clamped) and records a Modify history entry carrying the pre-image.
func (s *Store) UpdateRange(start, end int, ctx EditContext) {
	if len(s.lines) == 0 {
		return
	}
	start, end = normalizeRange(start, end, len(s.lines)-1)

	before := make([]Line, end-start+1)
	copy(before, s.lines[start:end+1])

	for i := start; i <= end; i++ {
		l := &s.lines[i]
		if ctx.Action != nil {
			l.SetAction(*ctx.Action)
		}
		if ctx.Content != nil {
			l.SetContent(*ctx.Content)
		}
		if ctx.Option != nil {
			l.SetOption(*ctx.Option)
		}
	}

	s.version.increment()
	s.history.record(newModifyItem(start, end, before))
}

// SwapRangeUp rotates the block [min(start,end), max(start,end)] one
// position toward index 0. Returns false (no-op) when the lower bound is
// already 0 or the list is empty.
func (s *Store) SwapRangeUp(start, end int) bool {
	if len(s.lines) == 0 {
		return false
	}
	start, end = normalizeRange(start, end, len(s.lines)-1)
	if start == 0 {
		return false
	}

	swapRangeUp(s.lines, start, end)
	s.version.increment()
	s.history.record(newSwapUpItem(start, end))
	return true
}

// SwapRangeDown rotates the block [min(start,end), max(start,end)] one
// position away from index 0. Returns false (no-op) when the upper bound
// is already the last index.
func (s *Store) SwapRangeDown(start, end int) bool {
	if len(s.lines) == 0 {
		return false
	}
	maxIndex := len(s.lines) - 1
	start, end = normalizeRange(start, end, maxIndex)
	if end == maxIndex {
		return false
	}

	swapRangeDown(s.lines, start, end)
	s.version.increment()
	s.history.record(newSwapDownItem(start, end))
	return true
}

// Range is an inclusive [Start, End] line index pair.
type Range struct {
	Start, End int
}

// Undo inverts the top journal entry in place and returns the affected
// range. ok is false if the journal is already at the Load sentinel (a
// no-op that leaves state untouched).
func (s *Store) Undo() (r Range, ok bool) {
	item, has := s.history.popUndo()
	if !has {
		return Range{}, false
	}

	inverted := s.applyInverse(item)
	s.history.pushRedo(inverted)
	s.version.increment()
	return Range{item.start, item.end}, true
}

// Redo inverts the top redo entry in place (re-inverting it back onto the
// undo stack) and returns the affected range.
func (s *Store) Redo() (r Range, ok bool) {
	item, has := s.history.popRedo()
	if !has {
		return Range{}, false
	}

	inverted := s.applyInverse(item)
	s.history.pushUndo(inverted)
	s.version.increment()
	return Range{item.start, item.end}, true
}

// applyInverse performs the mutation that reverses item and returns the
// HistoryItem that would reverse the reversal (i.e. the redo/undo
// counterpart), without touching the journal stacks itself.
func (s *Store) applyInverse(item HistoryItem) HistoryItem {
	switch item.kind {
	case opAdd:
		removed := removeRange(&s.lines, item.start, item.end)
		s.selected = s.clampIndex(item.start)
		return newRemoveItem(item.start, item.end, removed)

	case opRemove:
		insertRange(&s.lines, item.start, item.removedLines)
		s.selected = s.clampIndex(item.start)
		return newAddItem(item.start, item.start+len(item.removedLines)-1)

	case opModify:
		after := make([]Line, item.end-item.start+1)
		copy(after, s.lines[item.start:item.end+1])
		copy(s.lines[item.start:item.end+1], item.beforeLines)
		return newModifyItem(item.start, item.end, after)

	case opSwapUp:
		swapRangeDown(s.lines, item.start-1, item.end-1)
		return newSwapDownItem(item.start-1, item.end-1)

	case opSwapDown:
		swapRangeUp(s.lines, item.start+1, item.end+1)
		return newSwapUpItem(item.start+1, item.end+1)

	default:
		return item
	}
}
