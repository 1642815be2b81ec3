// Package app wires the instruction-sheet store, the search and diff
// workers, and the per-state modules into a single bubbletea program.
package app

import (
	"os/exec"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/alitto/pond"

	"github.com/chatter/rit/internal/config"
	"github.com/chatter/rit/internal/diff"
	"github.com/chatter/rit/internal/logger"
	"github.com/chatter/rit/internal/search"
	"github.com/chatter/rit/internal/todo"
	"github.com/chatter/rit/internal/ui"
	"github.com/chatter/rit/internal/ui/help"
	"github.com/chatter/rit/internal/view"
)

// pollInterval paces the driver's own housekeeping tick, standing in for
// the input-read timeout spec.md's concurrency model requires so worker
// completion can still cause a frame between keypresses.
const pollInterval = 100 * time.Millisecond

// Model is the bubbletea driver: store, workers, active module, view
// surface, and terminal exit bookkeeping.
type Model struct {
	store  *todo.Store
	keys   KeyMap
	cfg    config.Config
	log    *logger.Logger
	width  int
	height int

	storeLock *search.StoreLock
	searchEngine *search.Search
	searchCancel chan struct{}
	searchActive bool

	diffRepo   *diff.Repository
	diffLoader *diff.Loader

	pool *pond.WorkerPool

	state   State
	modules map[State]Module

	surface *view.Surface
	help    *help.StatusBar

	exitCode *ExitCode
	exitErr  error

	lastErr error
}

// New constructs the driver for the instruction sheet at path.
func New(path string, repo *diff.Repository, cfg config.Config, opts todo.Options, log *logger.Logger) Model {
	store := todo.NewStore(path, opts, log)
	storeLock := search.NewStoreLock()
	engine := search.New(store, storeLock)

	loader := diff.NewLoader(repo, diff.LoaderOptions{
		DetectRenames: cfg.DiffRenames != config.RenamesOff,
		DetectCopies:  cfg.DiffRenames == config.RenamesCopy || cfg.DiffRenames == config.RenamesCopies,
	})

	keys := NewKeyMap(cfg)
	m := Model{
		store:        store,
		keys:         keys,
		cfg:          cfg,
		log:          log,
		storeLock:    storeLock,
		searchEngine: engine,
		diffRepo:     repo,
		diffLoader:   loader,
		pool:         pond.New(2, 64),
		state:        StateList,
		surface:      view.NewSurface(),
		help:         help.NewStatusBar(""),
	}
	m.modules = map[State]Module{
		StateList: newListModule(store, engine, keys, cfg),
	}
	return m
}

// Init loads the instruction sheet and activates the initial module.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if err := m.store.Load(); err != nil {
		code := ExitFileReadError
		m.exitCode = &code
		m.exitErr = err
		return tea.Quit
	}
	cmds = append(cmds, m.activate(StateList, StateList)...)
	cmds = append(cmds, tickCmd())
	return tea.Batch(cmds...)
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// activate calls the target module's Activate hook and turns its returned
// Results into bubbletea commands.
func (m *Model) activate(to, from State) []tea.Cmd {
	m.state = to
	mod := m.moduleFor(to)
	res := mod.Activate(from)
	return m.apply(res)
}

func (m *Model) moduleFor(s State) Module {
	if mod, ok := m.modules[s]; ok {
		return mod
	}
	switch s {
	case StateShowCommit:
		m.modules[s] = newShowCommitModule(m.store, m.diffLoader, m.keys, m.cfg)
	case StateConfirmAbort:
		m.modules[s] = newConfirmModule(m.keys, true)
	case StateConfirmRebase:
		m.modules[s] = newConfirmModule(m.keys, false)
	case StateExternalEditor:
		m.modules[s] = newExternalEditorModule(m.store, m.cfg, m.keys)
	case StateInsert:
		m.modules[s] = newInsertModule(m.store, m.keys)
	case StateEdit:
		m.modules[s] = newEditModule(m.store, m.keys)
	case StateWindowSizeError:
		m.modules[s] = newWindowSizeErrorModule()
	case StateError:
		m.modules[s] = newErrorModule(m.lastErr, m.state)
	default:
		m.modules[s] = newListModule(m.store, m.searchEngine, m.keys, m.cfg)
	}
	return m.modules[s]
}

// Update is bubbletea's event loop entry point: translate, dispatch, apply
// artifacts, rebuild.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.height < minTerminalHeight || m.width < minTerminalWidth {
			cmds := m.activate(StateWindowSizeError, m.state)
			return m, tea.Batch(cmds...)
		}
		m.surface.SetSize(m.width, m.height)
		return m, nil

	case tea.QuitMsg:
		return m, tea.Quit

	case tickMsg:
		return m, tickCmd()

	case searchResultMsg:
		m.searchActive = false
		return m, nil
	}

	active := m.moduleFor(m.state)
	ev := active.ReadEvent(msg)
	if ev == nil {
		return m, nil
	}
	res := active.HandleEvent(ev)
	cmds := m.apply(res)
	return m, tea.Batch(cmds...)
}

// minTerminalWidth/minTerminalHeight are the smallest rectangle the list
// view can render one line plus chrome into.
const (
	minTerminalWidth  = 20
	minTerminalHeight = 4
)

// apply turns a Results bundle into driver-level effects and bubbletea
// commands, in order.
func (m *Model) apply(res Results) []tea.Cmd {
	var cmds []tea.Cmd
	for _, a := range res.artifacts {
		switch v := a.(type) {
		case changeStateArtifact:
			cmds = append(cmds, m.activate(v.to, m.state)...)
		case exitArtifact:
			code := v.code
			m.exitCode = &code
			cmds = append(cmds, tea.Quit)
		case errorArtifact:
			m.lastErr = v.err
			m.modules[StateError] = newErrorModule(v.err, v.returnState)
			cmds = append(cmds, m.activate(StateError, m.state)...)
		case searchTermArtifact:
			cmds = append(cmds, m.startSearch(v.term))
		case searchCancelArtifact:
			m.cancelSearch()
		case searchableArtifact:
			// handle already is m.searchEngine; nothing further to wire.
		case resizeArtifact:
			cmds = append(cmds, func() tea.Msg {
				return tea.WindowSizeMsg{Width: m.width, Height: m.height}
			})
		case diffLoadArtifact:
			cmds = append(cmds, m.loadDiff(v.rev))
		case spawnEditorArtifact:
			cmds = append(cmds, m.spawnEditor(v))
		}
	}
	return cmds
}

type searchResultMsg struct {
	result search.Result
}

// startSearch trips any previous interrupter, then submits a fresh search
// pass to the worker pool.
func (m *Model) startSearch(term string) tea.Cmd {
	m.cancelSearch()
	done := make(chan struct{})
	m.searchCancel = done
	m.searchActive = true

	out := make(chan search.Result, 1)
	interrupter := search.ChannelInterrupter{Done: done}
	m.pool.Submit(func() {
		out <- m.searchEngine.Search(interrupter, term)
	})
	return func() tea.Msg {
		return searchResultMsg{result: <-out}
	}
}

// diffResultMsg delivers a loaded commit diff (or its load error) back to
// whichever module requested it.
type diffResultMsg struct {
	diff *diff.CommitDiff
	err  error
}

// loadDiff submits rev to the worker pool and returns a command that blocks
// on the result without holding up the UI goroutine.
func (m *Model) loadDiff(rev string) tea.Cmd {
	out := make(chan diffResultMsg, 1)
	m.pool.Submit(func() {
		d, err := m.diffLoader.Load(rev, func(diff.Event) bool { return false })
		out <- diffResultMsg{diff: d, err: err}
	})
	return func() tea.Msg { return <-out }
}

// spawnEditor yields the terminal to the configured editor and resumes the
// program once it exits, reporting the outcome as an editorDoneMsg.
func (m *Model) spawnEditor(a spawnEditorArtifact) tea.Cmd {
	name, args := editorCommand(a.editor, a.path)
	if name == "" {
		return func() tea.Msg { return editorDoneMsg{outcome: editorSpawnFailed, err: errEditorUnset} }
	}
	cmd := exec.Command(name, args...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		if err != nil {
			return editorDoneMsg{outcome: editorNonZero, err: errEditorNonZero}
		}
		return editorDoneMsg{outcome: editorSuccess}
	})
}

func (m *Model) cancelSearch() {
	if m.searchCancel != nil {
		close(m.searchCancel)
		m.searchCancel = nil
	}
	m.searchActive = false
}

// View renders the active module through the view surface, composing the
// title row view.Surface reserves but never fills in itself, and the help
// status bar when the active module asks for it.
func (m Model) View() string {
	if m.exitCode != nil {
		return ""
	}
	mod := m.moduleFor(m.state)
	data := mod.BuildViewData(m.width, m.height)
	rendered := m.surface.Fit(data)

	body := view.Render(rendered, m.width)
	if rendered.TitleShown {
		body = ui.TitleStyle.Render(data.Title) + "\n" + body
	}
	if data.Help {
		m.help.SetBindings(statusBarBindings(m.keys))
		m.help.SetWidth(m.width)
		body += "\n" + m.help.View()
	}
	return body
}

// ExitCode reports the terminal status code once the program has quit, or
// nil if it is still running.
func (m Model) ExitCode() *ExitCode { return m.exitCode }

// Err reports the error that drove the last exit, if any.
func (m Model) Err() error { return m.exitErr }
