package todo

// operationKind tags a HistoryItem with the mutation it reverses.
type operationKind int

const (
	opLoad operationKind = iota
	opModify
	opAdd
	opRemove
	opSwapUp
	opSwapDown
)

// HistoryItem is one entry in the undo/redo journal. It carries enough data
// to invert itself without consulting adjacent entries.
type HistoryItem struct {
	kind         operationKind
	start, end   int
	beforeLines  []Line // Modify: pre-image of the affected range
	removedLines []Line // Remove: the lines that were extracted
}

func newLoadItem() HistoryItem { return HistoryItem{kind: opLoad} }

func newModifyItem(start, end int, before []Line) HistoryItem {
	return HistoryItem{kind: opModify, start: start, end: end, beforeLines: before}
}

func newAddItem(start, end int) HistoryItem {
	return HistoryItem{kind: opAdd, start: start, end: end}
}

func newRemoveItem(start, end int, removed []Line) HistoryItem {
	return HistoryItem{kind: opRemove, start: start, end: end, removedLines: removed}
}

func newSwapUpItem(start, end int) HistoryItem {
	return HistoryItem{kind: opSwapUp, start: start, end: end}
}

func newSwapDownItem(start, end int) HistoryItem {
	return HistoryItem{kind: opSwapDown, start: start, end: end}
}

// history is a bounded undo journal plus its redo counterpart.
type history struct {
	limit int
	undo  []HistoryItem
	redo  []HistoryItem
}

// newHistory returns a history anchored by the Load sentinel.
func newHistory(limit int) *history {
	h := &history{limit: limit}
	h.reset()
	return h
}

// reset clears both stacks and pushes a fresh Load sentinel, anchoring the
// journal the way a freshly loaded/set sheet does.
func (h *history) reset() {
	h.undo = []HistoryItem{newLoadItem()}
	h.redo = nil
}

// record pushes item onto the undo stack, evicting the oldest non-sentinel
// entry if it would exceed limit, and clears the redo stack (a new mutation
// invalidates any previously undone redo chain).
func (h *history) record(item HistoryItem) {
	h.undo = append(h.undo, item)
	if h.limit > 0 && len(h.undo)-1 > h.limit {
		// Keep the Load sentinel at index 0, drop the oldest real entry.
		h.undo = append(h.undo[:1], h.undo[2:]...)
	}
	h.redo = nil
}

// popUndo removes and returns the top of the undo stack, or (_, false) if
// only the Load sentinel remains.
func (h *history) popUndo() (HistoryItem, bool) {
	if len(h.undo) == 0 {
		return HistoryItem{}, false
	}
	top := h.undo[len(h.undo)-1]
	if top.kind == opLoad {
		return HistoryItem{}, false
	}
	h.undo = h.undo[:len(h.undo)-1]
	return top, true
}

// pushRedo pushes an inverted item onto the redo stack.
func (h *history) pushRedo(item HistoryItem) {
	h.redo = append(h.redo, item)
}

// popRedo removes and returns the top of the redo stack, or (_, false) if
// empty.
func (h *history) popRedo() (HistoryItem, bool) {
	if len(h.redo) == 0 {
		return HistoryItem{}, false
	}
	top := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	return top, true
}

// pushUndo pushes an inverted item back onto the undo stack (used by redo).
func (h *history) pushUndo(item HistoryItem) {
	h.undo = append(h.undo, item)
}
