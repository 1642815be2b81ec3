package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/chatter/rit/internal/config"
	"github.com/chatter/rit/internal/logger"
	"github.com/chatter/rit/internal/todo"
)

func newTestInsertModule(t *testing.T, lines []todo.Line) (*InsertModule, *todo.Store) {
	t.Helper()
	log, err := logger.New("")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	store := todo.NewStore(t.TempDir()+"/rebase-todo", todo.Options{}, log)
	store.SetLines(lines)
	return newInsertModule(store, NewKeyMap(config.Config{})), store
}

func TestInsertModule_BreakCommitsImmediately(t *testing.T) {
	m, store := newTestInsertModule(t, threePicks())
	m.Activate(StateList)

	ev := m.ReadEvent(tea.KeyPressMsg(tea.Key{Code: 'b'}))
	if ev == nil {
		t.Fatal("expected 'b' to be claimed while selecting action")
	}
	res := m.HandleEvent(ev)

	if store.Len() != 4 || store.Line(1).Action() != todo.ActionBreak {
		t.Fatalf("expected a break inserted at index 1, got len=%d", store.Len())
	}
	cs, ok := res.artifacts[0].(changeStateArtifact)
	if !ok || cs.to != StateList {
		t.Fatalf("expected ChangeState(StateList), got %#v", res.artifacts[0])
	}
}

func TestInsertModule_ExecTypesContentThenCommits(t *testing.T) {
	m, store := newTestInsertModule(t, threePicks())
	m.Activate(StateList)

	m.HandleEvent(m.ReadEvent(tea.KeyPressMsg(tea.Key{Code: 'x'})))
	for _, r := range "go test" {
		m.HandleEvent(m.ReadEvent(tea.KeyPressMsg(tea.Key{Code: r})))
	}
	m.HandleEvent(m.ReadEvent(tea.KeyPressMsg(tea.Key{Code: tea.KeyEnter})))

	if store.Len() != 4 {
		t.Fatalf("len = %d, want 4", store.Len())
	}
	if ln := store.Line(1); ln.Action() != todo.ActionExec || ln.Content() != "go test" {
		t.Fatalf("inserted line = %v %q, want exec %q", ln.Action(), ln.Content(), "go test")
	}
}

func TestInsertModule_EscapeCancelsWithoutMutation(t *testing.T) {
	m, store := newTestInsertModule(t, threePicks())
	m.Activate(StateList)

	res := m.HandleEvent(m.ReadEvent(tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape})))

	if store.Len() != 3 {
		t.Fatalf("len = %d, want 3 (unchanged)", store.Len())
	}
	cs, ok := res.artifacts[0].(changeStateArtifact)
	if !ok || cs.to != StateList {
		t.Fatalf("expected ChangeState(StateList), got %#v", res.artifacts[0])
	}
}
