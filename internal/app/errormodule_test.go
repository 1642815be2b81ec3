package app

import (
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func TestErrorModule_PrintsFullCauseChain(t *testing.T) {
	inner := errors.New("disk full")
	chained := &joinedErr{outer: errEditorNonZero, cause: inner}

	m := newErrorModule(chained, StateList)
	data := m.BuildViewData(80, 24)

	if len(data.Body) < 2 {
		t.Fatalf("expected at least 2 body lines for a chained error, got %d", len(data.Body))
	}
}

func TestErrorModule_AnyKeyReturnsToReturnState(t *testing.T) {
	m := newErrorModule(errEditorUnset, StateExternalEditor)

	ev := m.ReadEvent(tea.KeyPressMsg(tea.Key{Code: 'x'}))
	if ev == nil {
		t.Fatal("expected any key to be claimed")
	}
	res := m.HandleEvent(ev)

	cs, ok := res.artifacts[0].(changeStateArtifact)
	if !ok || cs.to != StateExternalEditor {
		t.Fatalf("expected ChangeState(StateExternalEditor), got %#v", res.artifacts[0])
	}
}

// joinedErr is a minimal two-level wrapped error fixture.
type joinedErr struct {
	outer error
	cause error
}

func (e *joinedErr) Error() string { return e.outer.Error() + ": " + e.cause.Error() }
func (e *joinedErr) Unwrap() error { return e.cause }
