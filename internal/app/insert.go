package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/chatter/rit/internal/todo"
	"github.com/chatter/rit/internal/view"
)

type insertEventKind int

const (
	insSelectAction insertEventKind = iota
	insRune
	insBackspace
	insDelete
	insLeft
	insRight
	insHome
	insEnd
	insCommit
	insCancel
)

type insertEvent struct {
	baseEvent
	kind   insertEventKind
	action todo.Action
	r      rune
}

// insertableActions are the line kinds Insert offers, keyed by the letter
// that selects them.
var insertableActions = []struct {
	key    rune
	action todo.Action
	label  string
}{
	{'x', todo.ActionExec, "exec <command>"},
	{'l', todo.ActionLabel, "label <name>"},
	{'t', todo.ActionReset, "reset <label>"},
	{'m', todo.ActionMerge, "merge <label>"},
	{'u', todo.ActionUpdateRef, "update-ref <ref>"},
	{'b', todo.ActionBreak, "break"},
}

// InsertModule builds a new instruction-sheet line below the current
// selection: first the action kind, then (for content-bearing actions) its
// free-form text.
type InsertModule struct {
	store *todo.Store
	keys  KeyMap

	selectingAction bool
	action          todo.Action
	content         []rune
	cursor          int
}

func newInsertModule(store *todo.Store, keys KeyMap) *InsertModule {
	return &InsertModule{store: store, keys: keys}
}

func (m *InsertModule) Activate(prev State) Results {
	m.selectingAction = true
	m.content = nil
	m.cursor = 0
	return Results{}
}

func (m *InsertModule) InputOptions() InputOption { return InputKeys }

func (m *InsertModule) ReadEvent(msg tea.Msg) Event {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if km.String() == "esc" {
		return insertEvent{kind: insCancel}
	}

	if m.selectingAction {
		for _, a := range insertableActions {
			if km.String() == string(a.key) {
				return insertEvent{kind: insSelectAction, action: a.action}
			}
		}
		return nil
	}

	switch km.String() {
	case "enter":
		return insertEvent{kind: insCommit}
	case "backspace":
		return insertEvent{kind: insBackspace}
	case "delete":
		return insertEvent{kind: insDelete}
	case "left":
		return insertEvent{kind: insLeft}
	case "right":
		return insertEvent{kind: insRight}
	case "home":
		return insertEvent{kind: insHome}
	case "end":
		return insertEvent{kind: insEnd}
	}
	if r := printableRune(km); r != 0 {
		return insertEvent{kind: insRune, r: r}
	}
	return nil
}

func (m *InsertModule) HandleEvent(ev Event) Results {
	e, ok := ev.(insertEvent)
	if !ok {
		return Results{}
	}
	var res Results

	switch e.kind {
	case insCancel:
		return *res.ChangeState(StateList)
	case insSelectAction:
		m.action = e.action
		if m.action == todo.ActionBreak {
			return m.commit(&res, "")
		}
		m.selectingAction = false
	case insRune:
		m.content = append(m.content[:m.cursor], append([]rune{e.r}, m.content[m.cursor:]...)...)
		m.cursor++
	case insBackspace:
		if m.cursor > 0 {
			m.content = append(m.content[:m.cursor-1], m.content[m.cursor:]...)
			m.cursor--
		}
	case insDelete:
		if m.cursor < len(m.content) {
			m.content = append(m.content[:m.cursor], m.content[m.cursor+1:]...)
		}
	case insLeft:
		if m.cursor > 0 {
			m.cursor--
		}
	case insRight:
		if m.cursor < len(m.content) {
			m.cursor++
		}
	case insHome:
		m.cursor = 0
	case insEnd:
		m.cursor = len(m.content)
	case insCommit:
		return m.commit(&res, string(m.content))
	}
	return res
}

func (m *InsertModule) commit(res *Results, content string) Results {
	line := todo.NewLine(m.action, "", content, "")
	idx := m.store.SelectedLineIndex() + 1
	m.store.AddLine(idx, line)
	m.store.SetSelectedLineIndex(idx)
	return *res.ChangeState(StateList)
}

func (m *InsertModule) BuildViewData(width, height int) view.Data {
	if m.selectingAction {
		var lines []view.Line
		lines = append(lines, view.Line{Text: "Insert which kind of line?"})
		lines = append(lines, view.Line{Text: ""})
		for _, a := range insertableActions {
			lines = append(lines, view.Line{Text: string(a.key) + ") " + a.label})
		}
		return view.Data{Title: "Insert", Body: lines}
	}

	text := string(m.content[:m.cursor]) + "│" + string(m.content[m.cursor:])
	return view.Data{
		Title: "Insert",
		Body:  []view.Line{{Text: m.action.String() + " " + text}},
	}
}
