package app

import "errors"

// Sentinel errors surfaced through the Error module, naming the kinds
// spec.md's error-handling section enumerates that don't already carry a
// richer cause from todo/diff/config.
var (
	errNoValidCommit  = errors.New("no valid commit to show")
	errEditorUnset    = errors.New("no editor configured ($EDITOR, $VISUAL, or core.editor)")
	errEditorNonZero  = errors.New("external editor exited non-zero")
	errEditorEmpty    = errors.New("instruction sheet is empty or a no-op after editing")
	errWindowTooSmall = errors.New("terminal window is too small")
)
