package app

import (
	"errors"

	tea "charm.land/bubbletea/v2"

	"github.com/chatter/rit/internal/view"
)

// ErrorModule shows a message block for an error surfaced from anywhere in
// the driver, dismissed by any key back to returnState.
type ErrorModule struct {
	err         error
	returnState State
}

func newErrorModule(err error, returnState State) *ErrorModule {
	return &ErrorModule{err: err, returnState: returnState}
}

func (m *ErrorModule) Activate(prev State) Results { return Results{} }

func (m *ErrorModule) InputOptions() InputOption { return InputKeys }

func (m *ErrorModule) ReadEvent(msg tea.Msg) Event {
	if _, ok := msg.(tea.KeyMsg); ok {
		return baseEvent{}
	}
	return nil
}

func (m *ErrorModule) HandleEvent(ev Event) Results {
	var res Results
	return *res.ChangeState(m.returnState)
}

func (m *ErrorModule) BuildViewData(width, height int) view.Data {
	var lines []view.Line
	if m.err == nil {
		lines = append(lines, view.Line{Text: "an unknown error occurred"})
	} else {
		for err := m.err; err != nil; err = errors.Unwrap(err) {
			lines = append(lines, view.Line{Text: err.Error()})
		}
	}
	lines = append(lines, view.Line{Text: ""})
	lines = append(lines, view.Line{Text: "press any key to continue"})
	return view.Data{Title: "Error", Body: lines}
}
