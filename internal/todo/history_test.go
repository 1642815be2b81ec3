package todo

import "testing"

func sampleLines(n int) []Line {
	lines := make([]Line, n)
	for i := range lines {
		lines[i] = NewLine(ActionPick, "hash", "subject", "")
	}
	return lines
}

func TestHistory_PopUndoOnFreshJournalIsSentinel(t *testing.T) {
	h := newHistory(0)
	if _, ok := h.popUndo(); ok {
		t.Error("popUndo on a freshly reset journal should report the Load sentinel, not a real entry")
	}
}

func TestHistory_RecordThenUndoRoundTrips(t *testing.T) {
	h := newHistory(0)
	h.record(newAddItem(2, 2))

	item, ok := h.popUndo()
	if !ok {
		t.Fatal("expected a recorded entry to pop")
	}
	if item.kind != opAdd || item.start != 2 || item.end != 2 {
		t.Errorf("got %+v", item)
	}

	if _, ok := h.popUndo(); ok {
		t.Error("undo stack should be back at the Load sentinel")
	}
}

func TestHistory_RecordClearsRedo(t *testing.T) {
	h := newHistory(0)
	h.record(newAddItem(0, 0))
	h.pushRedo(newRemoveItem(0, 0, sampleLines(1)))

	if _, ok := h.popRedo(); !ok {
		t.Fatal("expected a redo entry before the next record")
	}

	h.pushRedo(newRemoveItem(0, 0, sampleLines(1)))
	h.record(newAddItem(1, 1))
	if _, ok := h.popRedo(); ok {
		t.Error("a new mutation should clear any pending redo chain")
	}
}

func TestHistory_BoundedEvictsOldestRealEntry(t *testing.T) {
	h := newHistory(2)
	h.record(newAddItem(0, 0))
	h.record(newAddItem(1, 1))
	h.record(newAddItem(2, 2))

	// Limit 2: the oldest real entry (start=0) should have been evicted,
	// keeping the Load sentinel plus the two most recent entries.
	var popped []int
	for {
		item, ok := h.popUndo()
		if !ok {
			break
		}
		popped = append(popped, item.start)
	}
	if len(popped) != 2 || popped[0] != 2 || popped[1] != 1 {
		t.Errorf("popped = %v, want [2 1]", popped)
	}
}

func TestStore_UndoPastLoadIsNoop(t *testing.T) {
	s := NewStore("/tmp/todo", Options{}, nil)
	s.SetLines(sampleLines(3))

	if _, ok := s.Undo(); ok {
		t.Error("Undo with nothing recorded since Load should report ok=false")
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (state must be untouched)", s.Len())
	}
}

func TestStore_UndoRedoAdd(t *testing.T) {
	s := NewStore("/tmp/todo", Options{}, nil)
	s.SetLines(sampleLines(3))
	before := s.Version()

	s.AddLine(1, NewLine(ActionDrop, "zzz", "dropped", ""))
	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", s.Len())
	}
	if s.Version() <= before {
		t.Error("AddLine must bump the version")
	}

	if _, ok := s.Undo(); !ok {
		t.Fatal("expected Undo to succeed")
	}
	if s.Len() != 3 {
		t.Errorf("after undo, Len() = %d, want 3", s.Len())
	}
	for i, l := range s.Lines() {
		if l.Hash() != "hash" || l.Content() != "subject" {
			t.Errorf("line %d not restored to original state: %+v", i, l)
		}
	}

	if _, ok := s.Redo(); !ok {
		t.Fatal("expected Redo to succeed")
	}
	if s.Len() != 4 || s.Line(1).Content() != "dropped" {
		t.Errorf("redo did not restore the added line: len=%d line1=%+v", s.Len(), s.Line(1))
	}
}

func TestStore_UndoRedoRemove(t *testing.T) {
	s := NewStore("/tmp/todo", Options{}, nil)
	lines := []Line{
		NewLine(ActionPick, "a", "one", ""),
		NewLine(ActionPick, "b", "two", ""),
		NewLine(ActionPick, "c", "three", ""),
	}
	s.SetLines(lines)

	s.RemoveLines(1, 1)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}

	if _, ok := s.Undo(); !ok {
		t.Fatal("expected Undo to succeed")
	}
	if s.Len() != 3 || s.Line(1).Content() != "two" {
		t.Fatalf("undo did not restore removed line: len=%d line1=%+v", s.Len(), s.Line(1))
	}

	if _, ok := s.Redo(); !ok {
		t.Fatal("expected Redo to succeed")
	}
	if s.Len() != 2 || s.Line(1).Content() != "three" {
		t.Errorf("redo did not re-remove the line: len=%d line1=%+v", s.Len(), s.Line(1))
	}
}

func TestStore_UndoRedoModify(t *testing.T) {
	s := NewStore("/tmp/todo", Options{}, nil)
	s.SetLines(sampleLines(3))

	newAction := ActionDrop
	newContent := "changed"
	s.UpdateRange(0, 1, EditContext{Action: &newAction, Content: &newContent})
	if s.Line(0).Action() != ActionDrop || s.Line(1).Action() != ActionDrop {
		t.Fatal("UpdateRange did not apply to both lines in range")
	}

	if _, ok := s.Undo(); !ok {
		t.Fatal("expected Undo to succeed")
	}
	if s.Line(0).Action() != ActionPick || s.Line(0).Content() != "subject" {
		t.Errorf("undo did not restore pre-image: %+v", s.Line(0))
	}

	if _, ok := s.Redo(); !ok {
		t.Fatal("expected Redo to succeed")
	}
	if s.Line(0).Action() != ActionDrop || s.Line(0).Content() != "changed" {
		t.Errorf("redo did not reapply the modification: %+v", s.Line(0))
	}
}

func TestStore_UndoRedoSwapUpAtTopBoundary(t *testing.T) {
	s := NewStore("/tmp/todo", Options{}, nil)
	lines := []Line{
		NewLine(ActionPick, "a", "one", ""),
		NewLine(ActionPick, "b", "two", ""),
		NewLine(ActionPick, "c", "three", ""),
	}
	s.SetLines(lines)

	if ok := s.SwapRangeUp(0, 0); ok {
		t.Fatal("SwapRangeUp at the top boundary (start=0) must be a no-op")
	}
	if s.Line(0).Content() != "one" {
		t.Errorf("lines must be untouched after a rejected swap, got %+v", s.Line(0))
	}

	if ok := s.SwapRangeUp(1, 2); !ok {
		t.Fatal("SwapRangeUp(1,2) should succeed")
	}
	if s.Line(0).Content() != "two" || s.Line(2).Content() != "one" {
		t.Fatalf("unexpected order after swap up: %q %q %q", s.Line(0).Content(), s.Line(1).Content(), s.Line(2).Content())
	}

	if _, ok := s.Undo(); !ok {
		t.Fatal("expected Undo to succeed")
	}
	if s.Line(0).Content() != "one" || s.Line(1).Content() != "two" || s.Line(2).Content() != "three" {
		t.Fatalf("undo did not restore original order: %q %q %q", s.Line(0).Content(), s.Line(1).Content(), s.Line(2).Content())
	}

	if _, ok := s.Redo(); !ok {
		t.Fatal("expected Redo to succeed")
	}
	if s.Line(0).Content() != "two" || s.Line(2).Content() != "one" {
		t.Fatalf("redo did not reapply the swap: %q %q %q", s.Line(0).Content(), s.Line(1).Content(), s.Line(2).Content())
	}
}

func TestStore_SwapRangeDownAtBottomBoundaryIsNoop(t *testing.T) {
	s := NewStore("/tmp/todo", Options{}, nil)
	s.SetLines(sampleLines(3))

	if ok := s.SwapRangeDown(2, 2); ok {
		t.Error("SwapRangeDown with end at the last index must be a no-op")
	}
}
