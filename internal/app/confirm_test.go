package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/chatter/rit/internal/config"
)

func TestConfirmModule_YesAbortsWithExitCode(t *testing.T) {
	m := newConfirmModule(NewKeyMap(config.Config{}), true)

	ev := m.ReadEvent(tea.KeyPressMsg(tea.Key{Code: 'y'}))
	if ev == nil {
		t.Fatal("expected 'y' to be claimed")
	}
	res := m.HandleEvent(ev)

	if len(res.artifacts) != 1 {
		t.Fatalf("expected 1 artifact, got %d", len(res.artifacts))
	}
	ea, ok := res.artifacts[0].(exitArtifact)
	if !ok || ea.code != ExitAbort {
		t.Fatalf("expected ExitAbort, got %#v", res.artifacts[0])
	}
}

func TestConfirmModule_NoReturnsToList(t *testing.T) {
	m := newConfirmModule(NewKeyMap(config.Config{}), false)

	ev := m.ReadEvent(tea.KeyPressMsg(tea.Key{Code: 'n'}))
	if ev == nil {
		t.Fatal("expected 'n' to be claimed")
	}
	res := m.HandleEvent(ev)

	cs, ok := res.artifacts[0].(changeStateArtifact)
	if !ok || cs.to != StateList {
		t.Fatalf("expected ChangeState(StateList), got %#v", res.artifacts[0])
	}
}

func TestConfirmModule_YesRunsRebase(t *testing.T) {
	m := newConfirmModule(NewKeyMap(config.Config{}), false)

	ev := m.ReadEvent(tea.KeyPressMsg(tea.Key{Code: 'y'}))
	res := m.HandleEvent(ev)

	ea, ok := res.artifacts[0].(exitArtifact)
	if !ok || ea.code != ExitGood {
		t.Fatalf("expected ExitGood, got %#v", res.artifacts[0])
	}
}
