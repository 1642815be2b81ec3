package view

import "strings"

// Render joins a Rendered's lines into a single string, one per row,
// truncating/padding each line's text to width starting at the given
// horizontal scroll column (pinned segments are never scrolled past).
func Render(r Rendered, width int) string {
	rows := make([]string, len(r.Lines))
	for i, ln := range r.Lines {
		rows[i] = sliceLine(ln, r.Scroll.Col, width)
	}
	return strings.Join(rows, "\n")
}

// sliceLine applies horizontal scroll to one line, keeping its pinned
// prefix untouched and scrolling only the remainder.
func sliceLine(ln Line, col, width int) string {
	runes := []rune(ln.Text)
	pinned := ln.Pinned
	if pinned > len(runes) {
		pinned = len(runes)
	}
	prefix := runes[:pinned]
	rest := runes[pinned:]

	if col > len(rest) {
		col = len(rest)
	}
	rest = rest[col:]

	budget := width - pinned
	if budget < 0 {
		budget = 0
	}
	if len(rest) > budget {
		rest = rest[:budget]
	}

	return string(prefix) + string(rest)
}
