package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/chatter/rit/internal/config"
	"github.com/chatter/rit/internal/logger"
	"github.com/chatter/rit/internal/search"
	"github.com/chatter/rit/internal/todo"
)

func newTestListModule(t *testing.T, lines []todo.Line, cfg config.Config) *ListModule {
	t.Helper()
	log, err := logger.New("")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	store := todo.NewStore(t.TempDir()+"/rebase-todo", todo.Options{}, log)
	store.SetLines(lines)
	storeLock := search.NewStoreLock()
	engine := search.New(store, storeLock)
	keys := NewKeyMap(cfg)
	return newListModule(store, engine, keys, cfg)
}

func threePicks() []todo.Line {
	return []todo.Line{
		todo.NewLine(todo.ActionPick, "aaa", "first", ""),
		todo.NewLine(todo.ActionPick, "bbb", "second", ""),
		todo.NewLine(todo.ActionPick, "ccc", "third", ""),
	}
}

func sendKey(t *testing.T, m *ListModule, letter string) Results {
	t.Helper()
	code := rune(letter[0])
	switch letter {
	case "up":
		code = tea.KeyUp
	case "down":
		code = tea.KeyDown
	}
	ev := m.ReadEvent(tea.KeyPressMsg(tea.Key{Code: code}))
	if ev == nil {
		t.Fatalf("key %q was not claimed by ReadEvent", letter)
	}
	return m.HandleEvent(ev)
}

func TestListModule_MoveDownAndUp(t *testing.T) {
	m := newTestListModule(t, threePicks(), config.Config{})

	sendKey(t, m, "down")
	if got := m.store.SelectedLineIndex(); got != 1 {
		t.Fatalf("after move down: selected = %d, want 1", got)
	}
	sendKey(t, m, "up")
	if got := m.store.SelectedLineIndex(); got != 0 {
		t.Fatalf("after move up: selected = %d, want 0", got)
	}
}

func TestListModule_MoveDoesNotOverrunBounds(t *testing.T) {
	m := newTestListModule(t, threePicks(), config.Config{})

	sendKey(t, m, "up") // already at 0, move up should clamp
	if got := m.store.SelectedLineIndex(); got != 0 {
		t.Fatalf("selected = %d, want 0", got)
	}

	sendKey(t, m, "down")
	sendKey(t, m, "down")
	sendKey(t, m, "down") // past the end, should clamp at 2
	if got := m.store.SelectedLineIndex(); got != 2 {
		t.Fatalf("selected = %d, want 2", got)
	}
}

func TestListModule_PageStepScalesWithHeight(t *testing.T) {
	lines := make([]todo.Line, 20)
	for i := range lines {
		lines[i] = todo.NewLine(todo.ActionPick, "aaa", "c", "")
	}
	m := newTestListModule(t, lines, config.Config{})

	m.BuildViewData(80, 10) // pageSize() == 5
	m.HandleEvent(listEvent{kind: evMoveDownStep})
	if got := m.store.SelectedLineIndex(); got != 5 {
		t.Fatalf("after one page-down step at height 10: selected = %d, want 5", got)
	}

	m.BuildViewData(80, 30) // pageSize() == 15
	m.HandleEvent(listEvent{kind: evMoveDownStep})
	if got := m.store.SelectedLineIndex(); got != 19 {
		t.Fatalf("after one page-down step at height 30: selected = %d, want 19 (clamped)", got)
	}
}

func TestListModule_ActionChangeAutoSelectNext(t *testing.T) {
	cfg := config.Config{AutoSelectNext: true}
	m := newTestListModule(t, threePicks(), cfg)

	sendKey(t, m, "d") // ActionDrop, default binding "d"
	if a := m.store.Line(0).Action(); a != todo.ActionDrop {
		t.Fatalf("line 0 action = %v, want drop", a)
	}
	if got := m.store.SelectedLineIndex(); got != 1 {
		t.Fatalf("auto-select-next: selected = %d, want 1", got)
	}
}

func TestListModule_ToggleBreakInsertsThenRemoves(t *testing.T) {
	m := newTestListModule(t, threePicks(), config.Config{})

	sendKey(t, m, "b")
	if m.store.Len() != 4 {
		t.Fatalf("after insert: len = %d, want 4", m.store.Len())
	}
	if m.store.Line(1).Action() != todo.ActionBreak {
		t.Fatalf("expected break at index 1, got %v", m.store.Line(1).Action())
	}

	sendKey(t, m, "down") // move onto the break line
	sendKey(t, m, "b")    // toggling break on a break line removes it
	if m.store.Len() != 3 {
		t.Fatalf("after remove: len = %d, want 3", m.store.Len())
	}
}

func TestListModule_HelpOverlayConsumesKeysAheadOfCommands(t *testing.T) {
	m := newTestListModule(t, threePicks(), config.Config{})

	sendKey(t, m, "?") // open help
	if !m.helpOpen {
		t.Fatal("expected helpOpen = true")
	}

	sendKey(t, m, "down") // would normally move down
	if got := m.store.SelectedLineIndex(); got != 0 {
		t.Fatalf("movement key leaked through the help overlay: selected = %d, want 0", got)
	}
	sendKey(t, m, "d") // would normally set action drop
	if m.store.Line(0).Action() != todo.ActionPick {
		t.Fatalf("action key leaked through the help overlay: action = %v, want pick", m.store.Line(0).Action())
	}

	sendKey(t, m, "?") // close help
	if m.helpOpen {
		t.Fatal("expected helpOpen = false after second toggle")
	}
	sendKey(t, m, "down") // now it should move normally
	if got := m.store.SelectedLineIndex(); got != 1 {
		t.Fatalf("selected = %d, want 1 after help closed", got)
	}
}

func TestListModule_DeleteCollapsesSelectionToStart(t *testing.T) {
	m := newTestListModule(t, threePicks(), config.Config{})
	m.store.SetSelectedLineIndex(1)

	sendKey(t, m, "D")
	if m.store.Len() != 2 {
		t.Fatalf("len = %d, want 2", m.store.Len())
	}
	if got := m.store.SelectedLineIndex(); got != 1 {
		t.Fatalf("selected = %d, want 1 (collapsed to start)", got)
	}
}

func TestListModule_DuplicateInsertsClonedLineBelow(t *testing.T) {
	m := newTestListModule(t, threePicks(), config.Config{})

	sendKey(t, m, "c")
	if m.store.Len() != 4 {
		t.Fatalf("len = %d, want 4", m.store.Len())
	}
	if m.store.Line(1).Hash() != m.store.Line(0).Hash() {
		t.Fatalf("duplicate did not copy hash")
	}
}

func TestListModule_SwapUpRotatesSelection(t *testing.T) {
	m := newTestListModule(t, threePicks(), config.Config{})
	m.store.SetSelectedLineIndex(1)

	sendKey(t, m, "K")
	if m.store.Line(0).Content() != "second" {
		t.Fatalf("line 0 content = %q, want second", m.store.Line(0).Content())
	}
}

func TestListModule_UndoRedoRoundTrip(t *testing.T) {
	m := newTestListModule(t, threePicks(), config.Config{})

	sendKey(t, m, "D")
	if m.store.Len() != 2 {
		t.Fatalf("len after delete = %d, want 2", m.store.Len())
	}

	sendKey(t, m, "u")
	if m.store.Len() != 3 {
		t.Fatalf("len after undo = %d, want 3", m.store.Len())
	}

	// Redo's default binding is "ctrl+r"; dispatch the semantic event
	// directly rather than reconstructing a modified KeyMsg.
	m.HandleEvent(listEvent{kind: evRedo})
	if m.store.Len() != 2 {
		t.Fatalf("len after redo = %d, want 2", m.store.Len())
	}
}

func TestListModule_ForceAbortExitsImmediately(t *testing.T) {
	m := newTestListModule(t, threePicks(), config.Config{})

	res := sendKey(t, m, "Q")
	var exited bool
	for _, a := range res.artifacts {
		if ea, ok := a.(exitArtifact); ok {
			exited = true
			if ea.code != ExitAbort {
				t.Fatalf("exit code = %v, want ExitAbort", ea.code)
			}
		}
	}
	if !exited {
		t.Fatal("expected an exitArtifact")
	}
}

func TestListModule_VisualModeRangeDelete(t *testing.T) {
	m := newTestListModule(t, threePicks(), config.Config{})

	sendKey(t, m, "v")
	sendKey(t, m, "down") // extend selection to [0,1]
	sendKey(t, m, "D")

	if m.store.Len() != 1 {
		t.Fatalf("len = %d, want 1", m.store.Len())
	}
	if m.store.Line(0).Content() != "third" {
		t.Fatalf("remaining line = %q, want third", m.store.Line(0).Content())
	}
}
