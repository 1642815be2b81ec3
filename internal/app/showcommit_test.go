package app

import (
	"testing"

	"github.com/chatter/rit/internal/config"
	"github.com/chatter/rit/internal/logger"
	"github.com/chatter/rit/internal/todo"
)

func TestShowCommitModule_ActivateFailsWithoutValidHash(t *testing.T) {
	log, err := logger.New("")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	store := todo.NewStore(t.TempDir()+"/rebase-todo", todo.Options{}, log)
	store.SetLines([]todo.Line{todo.NewLine(todo.ActionLabel, "", "start", "")})

	m := newShowCommitModule(store, nil, KeyMap{}, config.Config{})
	res := m.Activate(StateList)

	if len(res.artifacts) != 1 {
		t.Fatalf("expected 1 artifact, got %d", len(res.artifacts))
	}
	ea, ok := res.artifacts[0].(errorArtifact)
	if !ok || ea.returnState != StateList {
		t.Fatalf("expected errorArtifact returning to StateList, got %#v", res.artifacts[0])
	}
}

func TestShowCommitModule_ActivateRequestsDiffForValidHash(t *testing.T) {
	log, err := logger.New("")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	store := todo.NewStore(t.TempDir()+"/rebase-todo", todo.Options{}, log)
	store.SetLines([]todo.Line{todo.NewLine(todo.ActionPick, "abc123", "subject", "")})

	m := newShowCommitModule(store, nil, KeyMap{}, config.Config{})
	res := m.Activate(StateList)

	dl, ok := res.artifacts[0].(diffLoadArtifact)
	if !ok || dl.rev != "abc123" {
		t.Fatalf("expected diffLoadArtifact{rev: abc123}, got %#v", res.artifacts[0])
	}
}

func TestRenderWhitespace_MarksLeadingTabsAndSpaces(t *testing.T) {
	got := renderWhitespace("\t  x", config.ShowWhitespaceLeading, 4, "→", "·")
	want := "→   ··x"
	if got != want {
		t.Fatalf("renderWhitespace = %q, want %q", got, want)
	}
}

func TestRenderWhitespace_NoneModeLeavesPlainSpacing(t *testing.T) {
	got := renderWhitespace("\tx", config.ShowWhitespaceNone, 4, "→", "·")
	want := "    x"
	if got != want {
		t.Fatalf("renderWhitespace = %q, want %q", got, want)
	}
}

func TestRenderWhitespace_BothModeMarksTrailing(t *testing.T) {
	both := config.ShowWhitespaceTrailing | config.ShowWhitespaceLeading
	got := renderWhitespace("x  ", both, 4, "→", "·")
	want := "x··"
	if got != want {
		t.Fatalf("renderWhitespace = %q, want %q", got, want)
	}
}
