package todo

import (
	"strings"
	"unicode/utf8"
)

// ParseLine parses one instruction-sheet line (already stripped of any
// comment prefix / blank-line filtering, which is the Store's job). Leading
// and trailing whitespace is ignored.
//
// Grammar:
//
//	line        := break | noop | commit-line | label-line | exec-line
//	break       := "break"
//	noop        := "noop"
//	commit-line := action [" " option]? " " hash " " content
//	label-line  := ("label"|"reset"|"merge"|"update-ref") " " content
//	exec-line   := "exec " content
func ParseLine(raw string) (Line, error) {
	trimmed := strings.TrimSpace(raw)

	if !utf8.ValidString(trimmed) {
		return Line{}, &ParseError{Line: raw, Reason: ReasonInvalidUTF8}
	}

	fields := strings.Fields(trimmed)
	if len(fields) == 0 {
		return Line{}, &ParseError{Line: raw, Reason: ReasonInvalidAction}
	}

	action, ok := ParseAction(fields[0])
	if !ok {
		return Line{}, &ParseError{Line: raw, Reason: ReasonInvalidAction}
	}

	rest := strings.TrimSpace(strings.TrimPrefix(trimmed, fields[0]))

	switch action {
	case ActionBreak:
		return NewLine(ActionBreak, "", "", ""), nil
	case ActionNoop:
		return NewLine(ActionNoop, "", "", ""), nil
	case ActionExec:
		if rest == "" {
			return Line{}, &ParseError{Line: raw, Reason: ReasonMissingContent}
		}
		return NewLine(ActionExec, "", rest, ""), nil
	case ActionLabel, ActionReset, ActionMerge:
		if rest == "" {
			return Line{}, &ParseError{Line: raw, Reason: ReasonMissingContent}
		}
		return NewLine(action, "", rest, ""), nil
	case ActionUpdateRef:
		if rest == "" {
			return Line{}, &ParseError{Line: raw, Reason: ReasonMissingContent}
		}
		// Stored in content; Line.Hash() aliases to it for update-ref.
		return NewLine(ActionUpdateRef, "", rest, ""), nil
	default:
		return parseCommitLine(raw, action, rest)
	}
}

// parseCommitLine parses the remainder of a commit-bearing line:
// [option] hash content. Only fixup recognises an option token (-C/-c).
func parseCommitLine(raw string, action Action, rest string) (Line, error) {
	option := ""

	if action == ActionFixup {
		if opt, ok := cutOption(rest); ok {
			option = opt
			rest = strings.TrimSpace(strings.TrimPrefix(rest, opt))
		}
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return Line{}, &ParseError{Line: raw, Reason: ReasonMissingHash}
	}

	hash := fields[0]
	content := strings.TrimSpace(strings.TrimPrefix(rest, hash))
	if content == "" {
		return Line{}, &ParseError{Line: raw, Reason: ReasonMissingContent}
	}

	return NewLine(action, hash, content, option), nil
}

// cutOption reports whether rest begins with a recognised fixup option
// token.
func cutOption(rest string) (string, bool) {
	for _, opt := range []string{"-C", "-c"} {
		if rest == opt || strings.HasPrefix(rest, opt+" ") {
			return opt, true
		}
	}
	return "", false
}
