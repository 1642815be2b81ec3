package app

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/chatter/rit/internal/view"
)

type confirmEventKind int

const (
	confirmYes confirmEventKind = iota
	confirmNo
)

type confirmEvent struct {
	baseEvent
	kind confirmEventKind
}

// ConfirmModule presents a yes/no prompt for aborting or running the
// rebase, keyed by the configured confirm-yes / confirm-no characters.
type ConfirmModule struct {
	keys    KeyMap
	isAbort bool
}

func newConfirmModule(keys KeyMap, isAbort bool) *ConfirmModule {
	return &ConfirmModule{keys: keys, isAbort: isAbort}
}

func (m *ConfirmModule) Activate(prev State) Results { return Results{} }

func (m *ConfirmModule) InputOptions() InputOption { return InputKeys | InputResize }

func (m *ConfirmModule) ReadEvent(msg tea.Msg) Event {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(km, m.keys.ConfirmYes):
		return confirmEvent{kind: confirmYes}
	case key.Matches(km, m.keys.ConfirmNo), key.Matches(km, m.keys.Escape):
		return confirmEvent{kind: confirmNo}
	}
	return nil
}

func (m *ConfirmModule) HandleEvent(ev Event) Results {
	e, ok := ev.(confirmEvent)
	if !ok {
		return Results{}
	}
	var res Results
	if e.kind == confirmNo {
		return *res.ChangeState(StateList)
	}
	if m.isAbort {
		return *res.Exit(ExitAbort)
	}
	return *res.Exit(ExitGood)
}

func (m *ConfirmModule) BuildViewData(width, height int) view.Data {
	prompt := "Rebase? (y/n)"
	if m.isAbort {
		prompt = "Abort rebase? (y/n)"
	}
	return view.Data{
		Title: "Confirm",
		Body:  []view.Line{{Text: prompt}},
	}
}
