package app

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/chatter/rit/internal/config"
	"github.com/chatter/rit/internal/todo"
	"github.com/chatter/rit/internal/view"
)

type editorOutcome int

const (
	editorSuccess editorOutcome = iota
	editorSpawnFailed
	editorNonZero
	editorReloadFailed
	editorEmptyResult
)

type editorDoneMsg struct {
	outcome editorOutcome
	err     error
}

type eeOptionKind int

const (
	eeAbort eeOptionKind = iota
	eeEditFile
	eeRestoreAndAbort
	eeUndoAndEdit
	eeReedit
	eeUndoModificationsAndEdit
)

type eeEvent struct {
	baseEvent
	done   *editorDoneMsg
	option eeOptionKind
	chosen bool
}

// ExternalEditorModule writes the instruction sheet to disk, spawns the
// configured editor, and reloads the sheet on return.
type ExternalEditorModule struct {
	store *todo.Store
	cfg   config.Config
	keys  KeyMap

	captured []todo.Line // snapshot at activate time, for "restore and abort"/"undo and edit"

	lastOutcome editorOutcome
	lastErr     error
	prompting   bool // showing the failure/empty-result prompt rather than running
}

func newExternalEditorModule(store *todo.Store, cfg config.Config, keys KeyMap) *ExternalEditorModule {
	return &ExternalEditorModule{store: store, cfg: cfg, keys: keys}
}

func (m *ExternalEditorModule) Activate(prev State) Results {
	m.captured = append([]todo.Line(nil), m.store.Lines()...)
	m.prompting = false

	if err := m.store.Write(); err != nil {
		m.lastOutcome = editorSpawnFailed
		m.lastErr = err
		m.prompting = true
		return Results{}
	}

	if m.cfg.Editor == "" {
		m.lastOutcome = editorSpawnFailed
		m.lastErr = errEditorUnset
		m.prompting = true
		return Results{}
	}

	var res Results
	return *res.add(spawnEditorArtifact{path: m.store.Path(), editor: m.cfg.Editor})
}

func (m *ExternalEditorModule) InputOptions() InputOption { return InputKeys }

func (m *ExternalEditorModule) ReadEvent(msg tea.Msg) Event {
	switch msg := msg.(type) {
	case editorDoneMsg:
		return eeEvent{done: &msg}
	case tea.KeyMsg:
		if !m.prompting {
			return nil
		}
		switch msg.String() {
		case "1":
			return eeEvent{chosen: true, option: eeAbort}
		case "2":
			if m.lastOutcome == editorEmptyResult {
				return eeEvent{chosen: true, option: eeReedit}
			}
			return eeEvent{chosen: true, option: eeEditFile}
		case "3":
			if m.lastOutcome == editorEmptyResult {
				return eeEvent{chosen: true, option: eeUndoModificationsAndEdit}
			}
			return eeEvent{chosen: true, option: eeRestoreAndAbort}
		case "4":
			return eeEvent{chosen: true, option: eeUndoAndEdit}
		}
	}
	return nil
}

func (m *ExternalEditorModule) HandleEvent(ev Event) Results {
	e, ok := ev.(eeEvent)
	if !ok {
		return Results{}
	}
	var res Results

	if e.done != nil {
		d := *e.done
		if d.err != nil {
			m.lastOutcome = editorNonZero
			m.lastErr = d.err
			m.prompting = true
			return res
		}
		if err := m.store.Load(); err != nil {
			m.lastOutcome = editorReloadFailed
			m.lastErr = err
			m.prompting = true
			return res
		}
		if m.store.Len() == 0 || m.store.IsNoop() {
			m.lastOutcome = editorEmptyResult
			m.lastErr = errEditorEmpty
			m.prompting = true
			return res
		}
		return *res.ChangeState(StateList)
	}

	if !e.chosen {
		return res
	}
	switch e.option {
	case eeAbort:
		return *res.Exit(ExitAbort)
	case eeEditFile:
		return *res.ChangeState(StateExternalEditor)
	case eeRestoreAndAbort:
		m.store.SetLines(append([]todo.Line(nil), m.captured...))
		return *res.Exit(ExitAbort)
	case eeUndoAndEdit:
		m.store.SetLines(append([]todo.Line(nil), m.captured...))
		return *res.ChangeState(StateExternalEditor)
	case eeReedit:
		return *res.ChangeState(StateExternalEditor)
	case eeUndoModificationsAndEdit:
		m.store.SetLines(append([]todo.Line(nil), m.captured...))
		return *res.ChangeState(StateExternalEditor)
	}
	return res
}

func (m *ExternalEditorModule) BuildViewData(width, height int) view.Data {
	if !m.prompting {
		return view.Data{Title: "Editor", Body: []view.Line{{Text: "waiting for editor…"}}}
	}

	var lines []view.Line
	lines = append(lines, view.Line{Text: m.lastErr.Error()})
	lines = append(lines, view.Line{Text: ""})

	if m.lastOutcome == editorEmptyResult {
		lines = append(lines, view.Line{Text: "1) Abort"})
		lines = append(lines, view.Line{Text: "2) Re-edit"})
		lines = append(lines, view.Line{Text: "3) Undo modifications and edit"})
	} else {
		lines = append(lines, view.Line{Text: "1) Abort rebase"})
		lines = append(lines, view.Line{Text: "2) Edit rebase file"})
		lines = append(lines, view.Line{Text: "3) Restore and abort"})
		lines = append(lines, view.Line{Text: "4) Undo and edit"})
	}
	return view.Data{Title: "Editor failed", Body: lines}
}

// spawnEditorArtifact asks the driver to run the configured editor against
// path off the UI goroutine.
type spawnEditorArtifact struct {
	path   string
	editor string
}

func (spawnEditorArtifact) isArtifact() {}

// editorCommand tokenizes the configured editor string, substituting %
// with path (or appending path if no % token is present).
func editorCommand(editor, path string) (string, []string) {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return "", nil
	}
	substituted := false
	for i, f := range fields {
		if strings.Contains(f, "%") {
			fields[i] = strings.ReplaceAll(f, "%", path)
			substituted = true
		}
	}
	if !substituted {
		fields = append(fields, path)
	}
	return fields[0], fields[1:]
}
