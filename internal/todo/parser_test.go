package todo

import (
	"testing"

	"github.com/chatter/rit/internal/todo/testgen"
	"pgregory.net/rapid"
)

func TestParseLine_Break(t *testing.T) {
	l, err := ParseLine("break")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Action() != ActionBreak {
		t.Errorf("action = %v, want break", l.Action())
	}
	if l.Hash() != "" || l.Content() != "" {
		t.Error("break line should have no hash and no content")
	}
}

func TestParseLine_Noop(t *testing.T) {
	l, err := ParseLine("noop")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Action() != ActionNoop {
		t.Errorf("action = %v, want noop", l.Action())
	}
}

func TestParseLine_CommitLine(t *testing.T) {
	l, err := ParseLine("pick aaa111 add a thing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Action() != ActionPick || l.Hash() != "aaa111" || l.Content() != "add a thing" {
		t.Errorf("got action=%v hash=%q content=%q", l.Action(), l.Hash(), l.Content())
	}
}

func TestParseLine_ShortForm(t *testing.T) {
	l, err := ParseLine("p aaa111 add a thing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Action() != ActionPick {
		t.Errorf("action = %v, want pick", l.Action())
	}
}

func TestParseLine_FixupOption(t *testing.T) {
	for _, opt := range []string{"-C", "-c"} {
		l, err := ParseLine("fixup " + opt + " aaa111 subject")
		if err != nil {
			t.Fatalf("unexpected error for option %s: %v", opt, err)
		}
		if l.Option() != opt {
			t.Errorf("option = %q, want %q", l.Option(), opt)
		}
		if l.Hash() != "aaa111" || l.Content() != "subject" {
			t.Errorf("hash/content mis-parsed: hash=%q content=%q", l.Hash(), l.Content())
		}
	}
}

func TestParseLine_FixupNoOption(t *testing.T) {
	l, err := ParseLine("fixup aaa111 subject")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Option() != "" {
		t.Errorf("expected no option, got %q", l.Option())
	}
}

func TestParseLine_ExecLine(t *testing.T) {
	l, err := ParseLine("exec make test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Action() != ActionExec || l.Content() != "make test" {
		t.Errorf("got action=%v content=%q", l.Action(), l.Content())
	}
}

func TestParseLine_LabelLine(t *testing.T) {
	for _, kw := range []string{"label", "reset", "merge"} {
		l, err := ParseLine(kw + " some-name")
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", kw, err)
		}
		if l.Content() != "some-name" {
			t.Errorf("%s: content = %q, want some-name", kw, l.Content())
		}
	}
}

func TestParseLine_UpdateRef(t *testing.T) {
	l, err := ParseLine("update-ref refs/heads/feature")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.Action() != ActionUpdateRef {
		t.Errorf("action = %v, want update-ref", l.Action())
	}
	if l.Hash() != "refs/heads/feature" {
		t.Errorf("Hash() should alias to content for update-ref, got %q", l.Hash())
	}
}

func TestParseLine_InvalidAction(t *testing.T) {
	_, err := ParseLine("bogus aaa111 subject")
	var perr *ParseError
	if err == nil {
		t.Fatal("expected error")
	}
	if !asParseError(err, &perr) || perr.Reason != ReasonInvalidAction {
		t.Errorf("expected ReasonInvalidAction, got %v", err)
	}
}

func TestParseLine_MissingContent(t *testing.T) {
	_, err := ParseLine("exec")
	var perr *ParseError
	if !asParseError(err, &perr) || perr.Reason != ReasonMissingContent {
		t.Errorf("expected ReasonMissingContent, got %v", err)
	}
}

func TestParseLine_MissingHash(t *testing.T) {
	_, err := ParseLine("pick")
	var perr *ParseError
	if !asParseError(err, &perr) || perr.Reason != ReasonMissingHash {
		t.Errorf("expected ReasonMissingHash, got %v", err)
	}
}

func asParseError(err error, target **ParseError) bool {
	if pe, ok := err.(*ParseError); ok {
		*target = pe
		return true
	}
	return false
}

// TestParseLine_RoundTrip checks that any generated pick/reword/... line
// parses and re-serialises to the same text.
func TestParseLine_RoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		raw := testgen.PickLine().Draw(rt, "line")
		l, err := ParseLine(raw)
		if err != nil {
			rt.Fatalf("failed to parse generated line %q: %v", raw, err)
		}
		if l.ToText() != raw {
			rt.Fatalf("round trip mismatch: parsed %q, re-serialised %q", raw, l.ToText())
		}
	})
}
