// Package view implements the band-allocation and scroll-clamping surface
// shared by every module's rendered output: a ViewData of leading/body/
// trailing line bands plus a per-view remembered scroll position.
package view

// Line is a single renderable row together with a display width used for
// horizontal-scroll clamping. Pinned is the width of a prefix segment (a
// gutter, a line number) that never scrolls out of view.
type Line struct {
	Text   string
	Width  int
	Pinned int
}

// Data is a nested, updatable structure holding three line bands, flags for
// title/help rendering, and an optional ensure-visible request.
type Data struct {
	Title string
	Help  bool

	Leading  []Line
	Body     []Line
	Trailing []Line

	// RetainScroll asks the view surface to keep the previous scroll
	// position across this module swap instead of resetting to (0, 0).
	RetainScroll bool

	// EnsureRow/EnsureCol, when EnsureSet is true, request that the
	// view surface adjust scroll so that row/col is visible.
	EnsureSet bool
	EnsureRow int
	EnsureCol int
}
