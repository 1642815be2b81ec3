package todo

// Line is a single instruction-sheet entry.
//
// The zero value is not a valid Line; always obtain one through NewLine or
// ParseLine.
type Line struct {
	action  Action
	hash    string
	content string
	option  string

	// shadow is a copy of the line's (action, hash, content, option) as it
	// stood at load time, used by IsModified to detect edits.
	shadow lineShadow

	// original holds the pre-edit content for label-class lines whose
	// content has been changed, so the write-time change-notification hook
	// can report both the old and new label.
	original *string
}

type lineShadow struct {
	action  Action
	hash    string
	content string
	option  string
}

// NewLine builds a Line directly from its parts (used by callers that
// construct lines programmatically, e.g. Insert/duplicate, rather than
// parsing text).
func NewLine(action Action, hash, content, option string) Line {
	l := Line{action: action, hash: hash, content: content, option: option}
	l.shadow = lineShadow{action: action, hash: hash, content: content, option: option}
	return l
}

// NewBreak returns a break line.
func NewBreak() Line {
	return NewLine(ActionBreak, "", "", "")
}

// NewNoop returns a noop line.
func NewNoop() Line {
	return NewLine(ActionNoop, "", "", "")
}

// Action returns the line's action.
func (l *Line) Action() Action { return l.action }

// Hash returns the line's commit hash, empty unless Action.AcceptsReference.
//
// update-ref is a commit-bearing action (AcceptsReference is true for it)
// but its on-disk form carries only a ref name in the content slot (see the
// grammar in the external interface); Hash aliases to Content for it so the
// search engine's "hash match" rule (spec'd uniformly over AcceptsReference)
// has something to match against.
func (l *Line) Hash() string {
	if l.action == ActionUpdateRef {
		return l.content
	}
	return l.hash
}

// Content returns the line's free-form content (subject, command, label…).
func (l *Line) Content() string { return l.content }

// Option returns the per-action option string (e.g. "-C"/"-c" on fixup).
func (l *Line) Option() string { return l.option }

// Original returns the pre-edit content for a label-class line whose content
// has been changed, or the current content if it has not.
func (l *Line) Original() string {
	if l.original != nil {
		return *l.original
	}
	return l.content
}

// EditContent returns the text the in-place content editor and the Edit
// module start from: the line's content, whatever its action.
func (l *Line) EditContent() string { return l.content }

// SetAction changes the line's action.
func (l *Line) SetAction(a Action) { l.action = a }

// SetOption toggles/sets the per-action option string.
func (l *Line) SetOption(opt string) { l.option = opt }

// SetContent updates the line's content. For label-class editable actions
// this also stashes the pre-edit value in original (first edit only, so a
// chain of edits still reports the value at load time as the "old" name).
func (l *Line) SetContent(content string) {
	if l.action.IsEditable() && l.content != content && l.original == nil {
		prev := l.content
		l.original = &prev
	}
	l.content = content
}

// IsModified reports whether the line differs from its load-time shadow.
func (l *Line) IsModified() bool {
	return l.action != l.shadow.action ||
		l.hash != l.shadow.hash ||
		l.content != l.shadow.content ||
		l.option != l.shadow.option
}

// Clone returns a deep copy of l, including a fresh shadow snapshot taken
// from the clone's current (post-edit) state — used when duplicating a line,
// which should start life unmodified.
func (l *Line) Clone() Line {
	clone := NewLine(l.action, l.hash, l.content, l.option)
	return clone
}

// ToText renders the line back to its on-disk textual form.
func (l *Line) ToText() string {
	info := actionTable[l.action]

	switch l.action {
	case ActionBreak, ActionNoop:
		return info.long
	case ActionExec:
		return "exec " + l.content
	case ActionLabel, ActionReset, ActionMerge:
		return info.long + " " + l.content
	case ActionUpdateRef:
		return "update-ref " + l.content
	default:
		// Commit-bearing actions: action [option] hash content
		s := info.long
		if l.option != "" {
			s += " " + l.option
		}
		s += " " + l.hash + " " + l.content
		return s
	}
}
