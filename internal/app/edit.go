package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/chatter/rit/internal/todo"
	"github.com/chatter/rit/internal/view"
)

type editEventKind int

const (
	edRune editEventKind = iota
	edBackspace
	edDelete
	edLeft
	edRight
	edHome
	edEnd
	edCommit
	edCancel
)

type editEvent struct {
	baseEvent
	kind editEventKind
	r    rune
}

// EditModule is a full-screen content editor for a single instruction-sheet
// line, reached as its own state transition (as distinct from List's
// in-place edit sub-mode, which covers the common single-keystroke case).
type EditModule struct {
	store *todo.Store
	keys  KeyMap

	index   int
	prefix  string
	content []rune
	cursor  int
}

func newEditModule(store *todo.Store, keys KeyMap) *EditModule {
	return &EditModule{store: store, keys: keys}
}

func (m *EditModule) Activate(prev State) Results {
	m.index = m.store.SelectedLineIndex()
	l := m.store.Line(m.index)
	if l == nil {
		var res Results
		return *res.ChangeState(StateList)
	}
	m.prefix = l.Action().String() + " "
	m.content = []rune(l.EditContent())
	m.cursor = len(m.content)
	return Results{}
}

func (m *EditModule) InputOptions() InputOption { return InputKeys }

func (m *EditModule) ReadEvent(msg tea.Msg) Event {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch km.String() {
	case "enter":
		return editEvent{kind: edCommit}
	case "esc":
		return editEvent{kind: edCancel}
	case "backspace":
		return editEvent{kind: edBackspace}
	case "delete":
		return editEvent{kind: edDelete}
	case "left":
		return editEvent{kind: edLeft}
	case "right":
		return editEvent{kind: edRight}
	case "home":
		return editEvent{kind: edHome}
	case "end":
		return editEvent{kind: edEnd}
	}
	if r := printableRune(km); r != 0 {
		return editEvent{kind: edRune, r: r}
	}
	return nil
}

func (m *EditModule) HandleEvent(ev Event) Results {
	e, ok := ev.(editEvent)
	if !ok {
		return Results{}
	}
	var res Results

	switch e.kind {
	case edCancel:
		return *res.ChangeState(StateList)
	case edCommit:
		content := string(m.content)
		m.store.UpdateRange(m.index, m.index, todo.EditContext{Content: &content})
		return *res.ChangeState(StateList)
	case edRune:
		m.content = append(m.content[:m.cursor], append([]rune{e.r}, m.content[m.cursor:]...)...)
		m.cursor++
	case edBackspace:
		if m.cursor > 0 {
			m.content = append(m.content[:m.cursor-1], m.content[m.cursor:]...)
			m.cursor--
		}
	case edDelete:
		if m.cursor < len(m.content) {
			m.content = append(m.content[:m.cursor], m.content[m.cursor+1:]...)
		}
	case edLeft:
		if m.cursor > 0 {
			m.cursor--
		}
	case edRight:
		if m.cursor < len(m.content) {
			m.cursor++
		}
	case edHome:
		m.cursor = 0
	case edEnd:
		m.cursor = len(m.content)
	}
	return res
}

func (m *EditModule) BuildViewData(width, height int) view.Data {
	text := m.prefix + string(m.content[:m.cursor]) + "│" + string(m.content[m.cursor:])
	return view.Data{
		Title: "Edit",
		Body:  []view.Line{{Text: text}},
	}
}
