package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/chatter/rit/internal/config"
	"github.com/chatter/rit/internal/logger"
	"github.com/chatter/rit/internal/todo"
)

func newTestEditModule(t *testing.T, lines []todo.Line) (*EditModule, *todo.Store) {
	t.Helper()
	log, err := logger.New("")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	store := todo.NewStore(t.TempDir()+"/rebase-todo", todo.Options{}, log)
	store.SetLines(lines)
	return newEditModule(store, NewKeyMap(config.Config{})), store
}

func execLine() []todo.Line {
	return []todo.Line{todo.NewLine(todo.ActionExec, "", "go build", "")}
}

func TestEditModule_CommitWritesContent(t *testing.T) {
	m, store := newTestEditModule(t, execLine())
	m.Activate(StateList)

	m.HandleEvent(m.ReadEvent(tea.KeyPressMsg(tea.Key{Code: tea.KeyBackspace})))
	for _, r := range " -v" {
		m.HandleEvent(m.ReadEvent(tea.KeyPressMsg(tea.Key{Code: r})))
	}
	res := m.HandleEvent(m.ReadEvent(tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})))

	if got := store.Line(0).Content(); got != "go buil -v" {
		t.Fatalf("content = %q, want %q", got, "go buil -v")
	}
	cs, ok := res.artifacts[0].(changeStateArtifact)
	if !ok || cs.to != StateList {
		t.Fatalf("expected ChangeState(StateList), got %#v", res.artifacts[0])
	}
}

func TestEditModule_EscapeDiscardsEdits(t *testing.T) {
	m, store := newTestEditModule(t, execLine())
	m.Activate(StateList)

	m.HandleEvent(m.ReadEvent(tea.KeyPressMsg(tea.Key{Code: 'x'})))
	m.HandleEvent(m.ReadEvent(tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})))

	if got := store.Line(0).Content(); got != "go build" {
		t.Fatalf("content = %q, want unchanged %q", got, "go build")
	}
}
