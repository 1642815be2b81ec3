package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/chatter/rit/internal/view"
)

// WindowSizeErrorModule occupies the driver whenever the terminal is
// smaller than minTerminalWidth x minTerminalHeight; it has no input
// beyond quit, since there is no guarantee anything else would fit.
type WindowSizeErrorModule struct{}

func newWindowSizeErrorModule() *WindowSizeErrorModule { return &WindowSizeErrorModule{} }

func (m *WindowSizeErrorModule) Activate(prev State) Results { return Results{} }

func (m *WindowSizeErrorModule) InputOptions() InputOption { return InputKeys | InputResize }

func (m *WindowSizeErrorModule) ReadEvent(msg tea.Msg) Event {
	if km, ok := msg.(tea.KeyMsg); ok && (km.String() == "ctrl+c" || km.String() == "q") {
		return baseEvent{}
	}
	return nil
}

func (m *WindowSizeErrorModule) HandleEvent(ev Event) Results {
	var res Results
	return *res.Exit(ExitKill)
}

func (m *WindowSizeErrorModule) BuildViewData(width, height int) view.Data {
	return view.Data{
		Body: []view.Line{{Text: fmt.Sprintf("%s (%dx%d, need %dx%d)", errWindowTooSmall.Error(), width, height, minTerminalWidth, minTerminalHeight)}},
	}
}
