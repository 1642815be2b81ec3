package todo

// defaultUndoLimit bounds the undo journal when the caller doesn't override
// it via Options.
const defaultUndoLimit = 5000

// defaultCommentPrefix is the line prefix that marks a comment on load.
const defaultCommentPrefix = "#"

// Options configures a Store's behaviour.
type Options struct {
	// UndoLimit bounds the number of real (non-sentinel) entries kept in
	// the undo journal. Zero means "use the default".
	UndoLimit int

	// CommentPrefix marks comment lines to skip on load. Empty means "use
	// the default prefix".
	CommentPrefix string

	// LineChangedCommand, if non-empty, is emitted as an extra `exec` line
	// after every modified line on Write.
	LineChangedCommand string
}

func (o Options) normalized() Options {
	if o.UndoLimit <= 0 {
		o.UndoLimit = defaultUndoLimit
	}
	if o.CommentPrefix == "" {
		o.CommentPrefix = defaultCommentPrefix
	}
	return o
}
