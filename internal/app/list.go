package app

import (
	"strconv"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/chatter/rit/internal/config"
	"github.com/chatter/rit/internal/search"
	"github.com/chatter/rit/internal/todo"
	"github.com/chatter/rit/internal/view"
)

// listSubMode is List's own sub-mode, orthogonal to the driver's State.
type listSubMode int

const (
	subModeNormal listSubMode = iota
	subModeVisual
	subModeEditContent
)

// listEvent is List's semantic event set.
type listEvent struct {
	baseEvent
	kind listEventKind
	ch   rune
}

type listEventKind int

const (
	evMoveUp listEventKind = iota
	evMoveDown
	evMoveUpStep
	evMoveDownStep
	evMoveHome
	evMoveEnd
	evScrollLeft
	evScrollRight
	evSetAction
	evToggleBreak
	evEnterEdit
	evInsertLine
	evDuplicate
	evDelete
	evSwapUp
	evSwapDown
	evUndo
	evRedo
	evShowCommit
	evAbort
	evForceAbort
	evRebase
	evForceRebase
	evOpenInEditor
	evToggleVisual
	evSearchStart
	evSearchNext
	evSearchPrevious
	evHelp
	evEditType
	evEditBackspace
	evEditDelete
	evEditLeft
	evEditRight
	evEditHome
	evEditEnd
	evEditCommit
	evEditCancel
	evSearchType
	evSearchBackspace
	evSearchCommit
	evSearchCancel
	evHelpOverlayConsume
)

// ListModule is the primary instruction-sheet editor: normal mode, visual
// range selection, and in-place content editing.
type ListModule struct {
	store  *todo.Store
	search *search.Search
	keys   KeyMap
	cfg    config.Config

	mode   listSubMode
	anchor int // visual-mode anchor; only meaningful in subModeVisual

	editBuf    []rune
	editCursor int
	editPrefix string

	searchBarActive bool
	searchTerm      []rune

	helpOpen bool

	height int // last height passed to BuildViewData, used to size page steps
}

func newListModule(store *todo.Store, eng *search.Search, keys KeyMap, cfg config.Config) *ListModule {
	return &ListModule{store: store, search: eng, keys: keys, cfg: cfg}
}

func (l *ListModule) Activate(prev State) Results {
	var r Results
	r.Searchable(l.search)
	return r
}

func (l *ListModule) InputOptions() InputOption {
	return InputResize | InputHelp | InputUndoRedo | InputSearchStart | InputKeys
}

func (l *ListModule) selectedRange() (int, int) {
	sel := l.store.SelectedLineIndex()
	if l.mode != subModeVisual {
		return sel, sel
	}
	if l.anchor < sel {
		return l.anchor, sel
	}
	return sel, l.anchor
}

// ReadEvent is List's keymap translation layer: the help overlay claims
// every key first, then edit-mode passthrough, then search-bar
// passthrough, then the normal/visual keymap.
func (l *ListModule) ReadEvent(msg tea.Msg) Event {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}

	if l.helpOpen {
		return l.readHelpOverlayKey(km)
	}
	if l.mode == subModeEditContent {
		return l.readEditKey(km)
	}
	if l.searchBarActive {
		return l.readSearchBarKey(km)
	}
	return l.readNormalKey(km)
}

// readHelpOverlayKey claims every key while the help overlay is open: the
// help binding itself closes it, everything else is swallowed so it can't
// fall through to a list command underneath the overlay.
func (l *ListModule) readHelpOverlayKey(km tea.KeyMsg) Event {
	if key.Matches(km, l.keys.Help) || key.Matches(km, l.keys.Escape) {
		return listEvent{kind: evHelp}
	}
	return listEvent{kind: evHelpOverlayConsume}
}

func (l *ListModule) readEditKey(km tea.KeyMsg) Event {
	switch {
	case key.Matches(km, l.keys.Enter):
		return listEvent{kind: evEditCommit}
	case key.Matches(km, l.keys.Escape):
		return listEvent{kind: evEditCancel}
	}
	switch km.String() {
	case "backspace":
		return listEvent{kind: evEditBackspace}
	case "delete":
		return listEvent{kind: evEditDelete}
	case "left":
		return listEvent{kind: evEditLeft}
	case "right":
		return listEvent{kind: evEditRight}
	case "home":
		return listEvent{kind: evEditHome}
	case "end":
		return listEvent{kind: evEditEnd}
	}
	if r := printableRune(km); r != 0 {
		return listEvent{kind: evEditType, ch: r}
	}
	return nil
}

func (l *ListModule) readSearchBarKey(km tea.KeyMsg) Event {
	switch {
	case key.Matches(km, l.keys.Enter):
		return listEvent{kind: evSearchCommit}
	case key.Matches(km, l.keys.Escape):
		return listEvent{kind: evSearchCancel}
	case key.Matches(km, l.keys.MoveDown), key.Matches(km, l.keys.SearchNext):
		return listEvent{kind: evSearchNext}
	case key.Matches(km, l.keys.MoveUp), key.Matches(km, l.keys.SearchPrevious):
		return listEvent{kind: evSearchPrevious}
	}
	if km.String() == "backspace" {
		return listEvent{kind: evSearchBackspace}
	}
	if r := printableRune(km); r != 0 {
		return listEvent{kind: evSearchType, ch: r}
	}
	return nil
}

func (l *ListModule) readNormalKey(km tea.KeyMsg) Event {
	switch {
	case key.Matches(km, l.keys.MoveUp):
		return listEvent{kind: evMoveUp}
	case key.Matches(km, l.keys.MoveDown):
		return listEvent{kind: evMoveDown}
	case key.Matches(km, l.keys.MoveUpStep):
		return listEvent{kind: evMoveUpStep}
	case key.Matches(km, l.keys.MoveDownStep):
		return listEvent{kind: evMoveDownStep}
	case key.Matches(km, l.keys.MoveHome):
		return listEvent{kind: evMoveHome}
	case key.Matches(km, l.keys.MoveEnd):
		return listEvent{kind: evMoveEnd}
	case key.Matches(km, l.keys.Left):
		return listEvent{kind: evScrollLeft}
	case key.Matches(km, l.keys.Right):
		return listEvent{kind: evScrollRight}
	case key.Matches(km, l.keys.ToggleVisualMode):
		return listEvent{kind: evToggleVisual}
	case key.Matches(km, l.keys.ActionPick):
		return listEvent{kind: evSetAction, ch: 'p'}
	case key.Matches(km, l.keys.ActionReword):
		return listEvent{kind: evSetAction, ch: 'r'}
	case key.Matches(km, l.keys.ActionEdit):
		return listEvent{kind: evSetAction, ch: 'e'}
	case key.Matches(km, l.keys.ActionSquash):
		return listEvent{kind: evSetAction, ch: 's'}
	case key.Matches(km, l.keys.ActionFixup):
		return listEvent{kind: evSetAction, ch: 'f'}
	case key.Matches(km, l.keys.ActionDrop):
		return listEvent{kind: evSetAction, ch: 'd'}
	case key.Matches(km, l.keys.ActionBreak):
		return listEvent{kind: evToggleBreak}
	case key.Matches(km, l.keys.EditLine):
		return listEvent{kind: evEnterEdit}
	case key.Matches(km, l.keys.InsertLine):
		return listEvent{kind: evInsertLine}
	case key.Matches(km, l.keys.Duplicate):
		return listEvent{kind: evDuplicate}
	case key.Matches(km, l.keys.Delete):
		return listEvent{kind: evDelete}
	case key.Matches(km, l.keys.SwapUp):
		return listEvent{kind: evSwapUp}
	case key.Matches(km, l.keys.SwapDown):
		return listEvent{kind: evSwapDown}
	case key.Matches(km, l.keys.Undo):
		return listEvent{kind: evUndo}
	case key.Matches(km, l.keys.Redo):
		return listEvent{kind: evRedo}
	case key.Matches(km, l.keys.ShowCommit):
		return listEvent{kind: evShowCommit}
	case key.Matches(km, l.keys.Abort):
		return listEvent{kind: evAbort}
	case key.Matches(km, l.keys.ForceAbort):
		return listEvent{kind: evForceAbort}
	case key.Matches(km, l.keys.Rebase):
		return listEvent{kind: evRebase}
	case key.Matches(km, l.keys.ForceRebase):
		return listEvent{kind: evForceRebase}
	case key.Matches(km, l.keys.OpenInEditor):
		return listEvent{kind: evOpenInEditor}
	case key.Matches(km, l.keys.SearchStart):
		return listEvent{kind: evSearchStart}
	case key.Matches(km, l.keys.SearchNext):
		return listEvent{kind: evSearchNext}
	case key.Matches(km, l.keys.SearchPrevious):
		return listEvent{kind: evSearchPrevious}
	case key.Matches(km, l.keys.Help):
		return listEvent{kind: evHelp}
	}
	return nil
}

func printableRune(km tea.KeyMsg) rune {
	s := km.String()
	if len([]rune(s)) == 1 {
		return []rune(s)[0]
	}
	return 0
}

// HandleEvent executes a semantic event, routing visual-mode-unsafe
// commands away when in visual mode.
func (l *ListModule) HandleEvent(ev Event) Results {
	le, ok := ev.(listEvent)
	if !ok {
		return Results{}
	}

	if l.mode == subModeEditContent {
		return l.handleEditEvent(le)
	}
	if l.searchBarActive {
		return l.handleSearchBarEvent(le)
	}
	if l.mode == subModeVisual {
		switch le.kind {
		case evToggleBreak, evEnterEdit, evInsertLine, evDuplicate, evShowCommit:
			return Results{}
		}
	}

	switch le.kind {
	case evHelpOverlayConsume:
		// Claimed by the overlay while open; no list command runs.
	case evMoveUp:
		l.move(-1)
	case evMoveDown:
		l.move(1)
	case evMoveUpStep:
		l.move(-l.pageSize())
	case evMoveDownStep:
		l.move(l.pageSize())
	case evMoveHome:
		l.store.SetSelectedLineIndex(0)
		l.search.SetSearchStartHint(0)
	case evMoveEnd:
		l.store.SetSelectedLineIndex(l.store.Len() - 1)
		l.search.SetSearchStartHint(l.store.Len() - 1)
	case evToggleVisual:
		l.toggleVisual()
	case evSetAction:
		return l.applyAction(actionForKey(le.ch))
	case evToggleBreak:
		return l.toggleBreak()
	case evEnterEdit:
		return l.enterEditContent()
	case evInsertLine:
		var r Results
		r.ChangeState(StateInsert)
		return r
	case evDuplicate:
		l.duplicate()
	case evDelete:
		l.delete()
	case evSwapUp:
		l.swap(true)
	case evSwapDown:
		l.swap(false)
	case evUndo:
		return l.undo()
	case evRedo:
		return l.redo()
	case evShowCommit:
		return l.showCommit()
	case evAbort:
		var r Results
		r.ChangeState(StateConfirmAbort)
		return r
	case evForceAbort:
		var r Results
		r.Exit(ExitAbort)
		return r
	case evRebase:
		var r Results
		r.ChangeState(StateConfirmRebase)
		return r
	case evForceRebase:
		var r Results
		r.Exit(ExitGood)
		return r
	case evOpenInEditor:
		var r Results
		r.CancelSearch()
		r.ChangeState(StateExternalEditor)
		return r
	case evSearchStart:
		l.searchBarActive = true
		l.searchTerm = nil
	case evHelp:
		l.helpOpen = !l.helpOpen
	}
	return Results{}
}

// pageSize is half the last known terminal height, per spec.md §4.7's
// page-up/page-down definition. A page step is always at least 1.
func (l *ListModule) pageSize() int {
	n := l.height / 2
	if n < 1 {
		n = 1
	}
	return n
}

func (l *ListModule) move(delta int) {
	sel := l.store.SelectedLineIndex()
	next := l.store.SetSelectedLineIndex(sel + delta)
	l.search.SetSearchStartHint(next)
}

func (l *ListModule) toggleVisual() {
	if l.mode == subModeVisual {
		l.mode = subModeNormal
		return
	}
	l.mode = subModeVisual
	l.anchor = l.store.SelectedLineIndex()
}

func actionForKey(ch rune) todo.Action {
	switch ch {
	case 'p':
		return todo.ActionPick
	case 'r':
		return todo.ActionReword
	case 'e':
		return todo.ActionEdit
	case 's':
		return todo.ActionSquash
	case 'f':
		return todo.ActionFixup
	case 'd':
		return todo.ActionDrop
	}
	return todo.ActionPick
}

func (l *ListModule) applyAction(a todo.Action) Results {
	start, end := l.selectedRange()
	l.store.UpdateRange(start, end, todo.EditContext{Action: &a})
	if l.mode == subModeNormal && l.cfg.AutoSelectNext {
		l.move(1)
	}
	return Results{}
}

// toggleBreak implements the break insert/remove/no-op rule: a break line
// immediately below is a no-op, the selected line itself being a break
// removes it, otherwise a break is inserted below.
func (l *ListModule) toggleBreak() Results {
	sel := l.store.SelectedLineIndex()
	if ln := l.store.Line(sel); ln != nil && ln.Action() == todo.ActionBreak {
		l.store.RemoveLines(sel, sel)
		return Results{}
	}
	if sel+1 < l.store.Len() {
		if next := l.store.Line(sel + 1); next != nil && next.Action() == todo.ActionBreak {
			return Results{}
		}
	}
	l.store.AddLine(sel+1, todo.NewBreak())
	return Results{}
}

func (l *ListModule) enterEditContent() Results {
	sel := l.store.SelectedLineIndex()
	ln := l.store.Line(sel)
	if ln == nil || !ln.Action().IsEditable() {
		return Results{}
	}
	l.mode = subModeEditContent
	l.editBuf = []rune(ln.EditContent())
	l.editCursor = len(l.editBuf)
	return Results{}
}

func (l *ListModule) handleEditEvent(le listEvent) Results {
	switch le.kind {
	case evEditType:
		l.editBuf = append(l.editBuf[:l.editCursor], append([]rune{le.ch}, l.editBuf[l.editCursor:]...)...)
		l.editCursor++
	case evEditBackspace:
		if l.editCursor > 0 {
			l.editBuf = append(l.editBuf[:l.editCursor-1], l.editBuf[l.editCursor:]...)
			l.editCursor--
		}
	case evEditDelete:
		if l.editCursor < len(l.editBuf) {
			l.editBuf = append(l.editBuf[:l.editCursor], l.editBuf[l.editCursor+1:]...)
		}
	case evEditLeft:
		if l.editCursor > 0 {
			l.editCursor--
		}
	case evEditRight:
		if l.editCursor < len(l.editBuf) {
			l.editCursor++
		}
	case evEditHome:
		l.editCursor = 0
	case evEditEnd:
		l.editCursor = len(l.editBuf)
	case evEditCommit:
		sel := l.store.SelectedLineIndex()
		content := string(l.editBuf)
		l.store.UpdateRange(sel, sel, todo.EditContext{Content: &content})
		l.mode = subModeNormal
	case evEditCancel:
		l.mode = subModeNormal
	}
	return Results{}
}

func (l *ListModule) duplicate() {
	sel := l.store.SelectedLineIndex()
	ln := l.store.Line(sel)
	if ln == nil || !ln.Action().IsDuplicatable() {
		return
	}
	l.store.AddLine(sel+1, ln.Clone())
}

func (l *ListModule) delete() {
	start, end := l.selectedRange()
	l.store.RemoveLines(start, end)
	if l.mode == subModeVisual {
		l.mode = subModeNormal
	}
}

func (l *ListModule) swap(up bool) {
	start, end := l.selectedRange()
	var ok bool
	if up {
		ok = l.store.SwapRangeUp(start, end)
	} else {
		ok = l.store.SwapRangeDown(start, end)
	}
	if !ok {
		return
	}
	delta := -1
	if !up {
		delta = 1
	}
	if l.mode == subModeVisual {
		l.anchor += delta
	}
	l.store.SetSelectedLineIndex(l.store.SelectedLineIndex() + delta)
}

// undo/redo pop the module back into visual mode whenever the affected
// range has width > 0, matching the range-preserving undo contract.
func (l *ListModule) undo() Results {
	rng, ok := l.store.Undo()
	if !ok {
		return Results{}
	}
	l.afterHistoryOp(rng)
	return Results{}
}

func (l *ListModule) redo() Results {
	rng, ok := l.store.Redo()
	if !ok {
		return Results{}
	}
	l.afterHistoryOp(rng)
	return Results{}
}

func (l *ListModule) afterHistoryOp(rng todo.Range) {
	l.store.SetSelectedLineIndex(rng.Start)
	if rng.End > rng.Start {
		l.mode = subModeVisual
		l.anchor = rng.End
	} else {
		l.mode = subModeNormal
	}
}

func (l *ListModule) showCommit() Results {
	var r Results
	sel := l.store.SelectedLineIndex()
	ln := l.store.Line(sel)
	if ln == nil || ln.Hash() == "" {
		r.Fail(errNoValidCommit, StateList)
		return r
	}
	r.ChangeState(StateShowCommit)
	return r
}

func (l *ListModule) handleSearchBarEvent(le listEvent) Results {
	var r Results
	switch le.kind {
	case evSearchType:
		l.searchTerm = append(l.searchTerm, le.ch)
	case evSearchBackspace:
		if len(l.searchTerm) > 0 {
			l.searchTerm = l.searchTerm[:len(l.searchTerm)-1]
		}
	case evSearchCommit:
		l.searchBarActive = false
		r.StartSearch(string(l.searchTerm))
	case evSearchCancel:
		l.searchBarActive = false
		l.searchTerm = nil
		r.CancelSearch()
	case evSearchNext:
		if idx, ok := l.search.Next(); ok {
			l.store.SetSelectedLineIndex(idx)
		}
	case evSearchPrevious:
		if idx, ok := l.search.Previous(); ok {
			l.store.SetSelectedLineIndex(idx)
		}
	}
	return r
}

// BuildViewData renders the instruction sheet: one line per entry, a
// trailing search-bar line when active.
func (l *ListModule) BuildViewData(width, height int) view.Data {
	l.height = height
	start, end := l.selectedRange()
	body := make([]view.Line, l.store.Len())
	for i := 0; i < l.store.Len(); i++ {
		ln := l.store.Line(i)
		text := formatLine(ln, i, start, end, l.mode == subModeVisual)
		body[i] = view.Line{Text: text, Width: len([]rune(text))}
	}

	var trailing []view.Line
	if l.searchBarActive {
		trailing = []view.Line{{Text: "/" + string(l.searchTerm)}}
	} else if n := l.search.TotalResults(); n > 0 {
		trailing = []view.Line{{Text: searchStatusLine(l.search)}}
	}

	d := view.Data{
		Body:      body,
		Trailing:  trailing,
		Help:      l.helpOpen,
		EnsureSet: true,
		EnsureRow: l.store.SelectedLineIndex(),
	}
	return d
}

func formatLine(ln *todo.Line, idx, selStart, selEnd int, visual bool) string {
	if ln == nil {
		return ""
	}
	marker := "  "
	if visual && idx >= selStart && idx <= selEnd {
		marker = "> "
	} else if !visual && idx == selStart {
		marker = "> "
	}
	return marker + ln.ToText()
}

func searchStatusLine(s *search.Search) string {
	total := s.TotalResults()
	if total == 0 {
		return "No Results"
	}
	pos, _ := s.CurrentResultSelected()
	return "match " + strconv.Itoa(pos+1) + "/" + strconv.Itoa(total)
}
