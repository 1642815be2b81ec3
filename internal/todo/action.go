// Package todo holds the in-memory model of a rebase instruction sheet: the
// ordered list of lines, their parsing/serialisation, and the bounded
// undo/redo journal that backs every mutation.
package todo

// Action is the operation a single instruction-sheet line performs.
type Action int

// The full set of recognised actions, in the order the abbreviated spelling
// table in the external interface documents them.
const (
	ActionPick Action = iota
	ActionReword
	ActionEdit
	ActionSquash
	ActionFixup
	ActionDrop
	ActionExec
	ActionLabel
	ActionReset
	ActionMerge
	ActionUpdateRef
	ActionBreak
	ActionNoop
)

// actionInfo is the static metadata table for an Action, indexed by Action.
type actionInfo struct {
	long             string
	short            string
	acceptsReference bool
	isEditable       bool
	isDuplicatable   bool
}

var actionTable = map[Action]actionInfo{
	ActionPick:      {"pick", "p", true, false, true},
	ActionReword:    {"reword", "r", true, false, true},
	ActionEdit:      {"edit", "e", true, false, true},
	ActionSquash:    {"squash", "s", true, false, true},
	ActionFixup:     {"fixup", "f", true, false, true},
	ActionDrop:      {"drop", "d", true, false, true},
	ActionExec:      {"exec", "x", false, true, false},
	ActionLabel:     {"label", "l", false, true, false},
	ActionReset:     {"reset", "t", false, true, false},
	ActionMerge:     {"merge", "m", false, true, false},
	ActionUpdateRef: {"update-ref", "u", true, true, false},
	ActionBreak:     {"break", "b", false, false, false},
	ActionNoop:      {"noop", "", false, false, false},
}

// longToAction and shortToAction are the inverse lookup tables built once at
// init from actionTable, used by the line parser.
var (
	longToAction  = make(map[string]Action, len(actionTable))
	shortToAction = make(map[string]Action, len(actionTable))
)

func init() {
	for a, info := range actionTable {
		longToAction[info.long] = a
		if info.short != "" {
			shortToAction[info.short] = a
		}
	}
}

// String returns the default (long-form) textual representation of a.
func (a Action) String() string {
	if info, ok := actionTable[a]; ok {
		return info.long
	}
	return "unknown"
}

// AcceptsReference reports whether lines with this action carry a commit
// hash (the six commit-bearing actions plus update-ref).
func (a Action) AcceptsReference() bool {
	return actionTable[a].acceptsReference
}

// IsEditable reports whether the line's content can be edited in place
// (exec, label, reset, merge, update-ref).
func (a Action) IsEditable() bool {
	return actionTable[a].isEditable
}

// IsDuplicatable reports whether a line with this action may be duplicated
// (the six commit-bearing actions).
func (a Action) IsDuplicatable() bool {
	return actionTable[a].isDuplicatable
}

// ParseAction resolves a textual action token (long or one-letter short
// form) to an Action. Matching is case-sensitive, per the external grammar.
func ParseAction(s string) (Action, bool) {
	if a, ok := longToAction[s]; ok {
		return a, true
	}
	if a, ok := shortToAction[s]; ok {
		return a, true
	}
	return ActionNoop, false
}
