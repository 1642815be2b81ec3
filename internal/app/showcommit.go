package app

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/chatter/rit/internal/config"
	"github.com/chatter/rit/internal/diff"
	"github.com/chatter/rit/internal/todo"
	"github.com/chatter/rit/internal/view"
)

// scPane selects which half of ShowCommit is on screen.
type scPane int

const (
	scOverview scPane = iota
	scDiff
)

type scEventKind int

const (
	scMoveUp scEventKind = iota
	scMoveDown
	scPageUp
	scPageDown
	scHome
	scEnd
	scScrollLeft
	scScrollRight
	scToggleDiff
	scHelp
	scBack
	scDiffLoaded
)

type scEvent struct {
	baseEvent
	kind   scEventKind
	loaded *diff.CommitDiff
	err    error
}

// ShowCommitModule presents a selected commit's metadata and full diff,
// rendered from the most recent snapshot the diff worker has published.
type ShowCommitModule struct {
	store *todo.Store
	keys  KeyMap
	cfg   config.Config

	pane scPane
	rev  string

	loading  bool
	snapshot *diff.CommitDiff
	loadErr  error

	row, col int
	helpOpen bool
}

func newShowCommitModule(store *todo.Store, loader *diff.Loader, keys KeyMap, cfg config.Config) *ShowCommitModule {
	_ = loader // diff loading is routed through the driver's worker pool
	return &ShowCommitModule{store: store, keys: keys, cfg: cfg}
}

func (m *ShowCommitModule) Activate(prev State) Results {
	m.pane = scOverview
	m.row, m.col = 0, 0
	m.snapshot = nil
	m.loadErr = nil

	idx := m.store.SelectedLineIndex()
	l := m.store.Line(idx)
	if l == nil || l.Hash() == "" {
		var res Results
		return *res.Fail(errNoValidCommit, StateList)
	}
	m.rev = l.Hash()
	m.loading = true

	var res Results
	return *res.LoadDiff(m.rev)
}

func (m *ShowCommitModule) InputOptions() InputOption {
	return InputKeys | InputHelp | InputResize
}

func (m *ShowCommitModule) ReadEvent(msg tea.Msg) Event {
	switch msg := msg.(type) {
	case diffResultMsg:
		return scEvent{kind: scDiffLoaded, loaded: msg.diff, err: msg.err}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Help):
			return scEvent{kind: scHelp}
		case key.Matches(msg, m.keys.MoveUp):
			return scEvent{kind: scMoveUp}
		case key.Matches(msg, m.keys.MoveDown):
			return scEvent{kind: scMoveDown}
		case key.Matches(msg, m.keys.MoveUpStep):
			return scEvent{kind: scPageUp}
		case key.Matches(msg, m.keys.MoveDownStep):
			return scEvent{kind: scPageDown}
		case key.Matches(msg, m.keys.MoveHome):
			return scEvent{kind: scHome}
		case key.Matches(msg, m.keys.MoveEnd):
			return scEvent{kind: scEnd}
		case key.Matches(msg, m.keys.Left):
			return scEvent{kind: scScrollLeft}
		case key.Matches(msg, m.keys.Right):
			return scEvent{kind: scScrollRight}
		case key.Matches(msg, m.keys.ShowDiff):
			return scEvent{kind: scToggleDiff}
		default:
			return scEvent{kind: scBack}
		}
	}
	return nil
}

func (m *ShowCommitModule) HandleEvent(ev Event) Results {
	e, ok := ev.(scEvent)
	if !ok {
		return Results{}
	}
	var res Results

	switch e.kind {
	case scDiffLoaded:
		m.loading = false
		if e.err != nil {
			m.loadErr = e.err
			return res
		}
		m.snapshot = e.loaded
	case scHelp:
		m.helpOpen = !m.helpOpen
	case scMoveUp:
		if m.row > 0 {
			m.row--
		}
	case scMoveDown:
		m.row++
	case scPageUp:
		m.row -= 10
		if m.row < 0 {
			m.row = 0
		}
	case scPageDown:
		m.row += 10
	case scHome:
		m.row = 0
	case scEnd:
		m.row = 1 << 30
	case scScrollLeft:
		if m.col > 0 {
			m.col--
		}
	case scScrollRight:
		m.col++
	case scToggleDiff:
		if m.pane == scOverview {
			m.pane = scDiff
		} else {
			m.pane = scOverview
		}
		m.row, m.col = 0, 0
	case scBack:
		if m.helpOpen {
			m.helpOpen = false
			return res
		}
		if m.pane == scDiff {
			m.pane = scOverview
			m.row, m.col = 0, 0
			return res
		}
		return *res.ChangeState(StateList)
	}
	return res
}

// compactWidth is the column threshold at or below which ShowCommit shows
// the commit as its bare short hash and truncates the other field labels to
// single letters.
const compactWidth = 36

func (m *ShowCommitModule) BuildViewData(width, height int) view.Data {
	compact := width <= compactWidth

	data := view.Data{Title: "Commit", Help: m.helpOpen}

	switch {
	case m.loadErr != nil:
		data.Body = append(data.Body, view.Line{Text: "failed to load commit: " + m.loadErr.Error()})
		return data
	case m.loading || m.snapshot == nil:
		data.Body = append(data.Body, view.Line{Text: "loading…"})
		return data
	}

	if m.pane == scOverview {
		data.Body = m.overviewLines(compact)
	} else {
		data.Body = m.diffLines()
	}

	data.EnsureSet = true
	data.EnsureRow = m.row
	data.EnsureCol = m.col
	return data
}

func (m *ShowCommitModule) overviewLines(compact bool) []view.Line {
	s := m.snapshot
	var lines []view.Line

	commitLine := fmt.Sprintf("Commit: %s", s.CommitHash)
	parentLabel := "Parent:"
	if compact {
		commitLine, parentLabel = shortHash(s.CommitHash, compact), "P:"
	}
	lines = append(lines, view.Line{Text: commitLine})
	if s.ParentHash != "" {
		lines = append(lines, view.Line{Text: fmt.Sprintf("%s %s", parentLabel, shortHash(s.ParentHash, compact))})
	}

	var insertions, deletions int
	for _, f := range s.Files {
		for _, h := range f.Hunks {
			for _, dl := range h.Lines {
				switch dl.Origin {
				case diff.OriginAddition:
					insertions++
				case diff.OriginDeletion:
					deletions++
				}
			}
		}
	}
	summaryLabel := "Files changed:"
	if compact {
		summaryLabel = "F:"
	}
	lines = append(lines, view.Line{Text: fmt.Sprintf("%s %d (+%d -%d)", summaryLabel, len(s.Files), insertions, deletions)})
	lines = append(lines, view.Line{Text: ""})

	for _, f := range s.Files {
		status := f.Status.String()
		if compact {
			status = status[:1]
		}
		suffix := ""
		if f.Status == diff.StatusRenamed || f.Status == diff.StatusCopied {
			suffix = fmt.Sprintf(" (%d%%)", f.SimilarityPercent)
		}
		lines = append(lines, view.Line{Text: fmt.Sprintf("%-8s %s%s", status, f.Path(), suffix)})
	}
	return lines
}

func (m *ShowCommitModule) diffLines() []view.Line {
	var lines []view.Line
	for _, f := range m.snapshot.Files {
		lines = append(lines, view.Line{Text: "diff --git a/" + f.OldPath + " b/" + f.NewPath})
		if f.IsBinary {
			lines = append(lines, view.Line{Text: "Binary files differ"})
			continue
		}
		for _, h := range f.Hunks {
			lines = append(lines, view.Line{Text: h.Header})
			for _, dl := range h.Lines {
				prefix := " "
				switch dl.Origin {
				case diff.OriginAddition:
					prefix = "+"
				case diff.OriginDeletion:
					prefix = "-"
				}
				content := renderWhitespace(dl.Content, m.cfg.DiffShowWhitespace, m.cfg.DiffTabWidth, m.cfg.DiffTabSymbol, m.cfg.DiffSpaceSymbol)
				lines = append(lines, view.Line{Text: prefix + content, Pinned: 1})
			}
		}
	}
	return lines
}

func shortHash(hash string, compact bool) string {
	if !compact || len(hash) <= 8 {
		return hash
	}
	return hash[:8]
}

// renderWhitespace expands tabs and, depending on mode, marks leading and
// trailing runs of whitespace with the configured symbols.
func renderWhitespace(s string, mode config.DiffShowWhitespace, tabWidth int, tabSymbol, spaceSymbol string) string {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	runes := []rune(s)
	leadEnd := 0
	for leadEnd < len(runes) && (runes[leadEnd] == ' ' || runes[leadEnd] == '\t') {
		leadEnd++
	}
	trailStart := len(runes)
	for trailStart > leadEnd && (runes[trailStart-1] == ' ' || runes[trailStart-1] == '\t') {
		trailStart--
	}

	markLeading := mode&config.ShowWhitespaceLeading != 0
	markTrailing := mode&config.ShowWhitespaceTrailing != 0

	var b strings.Builder
	col := 0
	for i, r := range runes {
		marked := (i < leadEnd && markLeading) || (i >= trailStart && markTrailing)
		switch r {
		case '\t':
			width := tabWidth - col%tabWidth
			if marked {
				b.WriteString(tabSymbol)
				for k := 1; k < width; k++ {
					b.WriteRune(' ')
				}
			} else {
				for k := 0; k < width; k++ {
					b.WriteRune(' ')
				}
			}
			col += width
		case ' ':
			if marked {
				b.WriteString(spaceSymbol)
			} else {
				b.WriteRune(' ')
			}
			col++
		default:
			b.WriteRune(r)
			col++
		}
	}
	return b.String()
}
