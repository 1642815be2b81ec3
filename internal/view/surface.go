package view

// Scroll is the remembered horizontal/vertical scroll offset for one view.
type Scroll struct {
	Row int
	Col int
}

// Surface holds per-module scroll state across module swaps and renders a
// Data into a fitted, clamped slice of lines plus scrollbar visibility.
type Surface struct {
	scroll Scroll
	width  int
	height int
}

// NewSurface returns a Surface with zeroed scroll.
func NewSurface() *Surface {
	return &Surface{}
}

// SetSize sets the available render rectangle.
func (s *Surface) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Reset zeroes the remembered scroll position. Fit does the same on its own
// whenever the Data it is given does not set RetainScroll.
func (s *Surface) Reset() {
	s.scroll = Scroll{}
}

// Rendered is the result of fitting a Data into the available rectangle.
type Rendered struct {
	Lines         []Line
	TitleShown    bool
	ShowScrollBar bool
	Scroll        Scroll
}

// Fit applies the band-allocation policy and scroll clamping described by
// the view surface's layout rules, returning the lines to draw this frame.
func (s *Surface) Fit(d Data) Rendered {
	if !d.RetainScroll {
		s.scroll = Scroll{}
	}

	h := s.height
	titleShown := d.Title != "" && h > 0
	if titleShown {
		h--
	}
	if h < 0 {
		h = 0
	}

	l := len(d.Leading)
	t := len(d.Trailing)
	b := len(d.Body)

	var body []Line
	var bodyRows int
	showLeading := true

	switch {
	case l+t+b <= h:
		body = d.Body
		bodyRows = b
	case l+t <= h:
		avail := h - l - t
		if d.EnsureSet {
			s.scroll.Row = ensureRowVisible(s.scroll.Row, d.EnsureRow, avail)
		}
		s.scroll.Row = clampRow(s.scroll.Row, len(d.Body), avail)
		body, bodyRows = sliceBody(d.Body, s.scroll.Row, avail)
	case t <= h:
		// Only trailing + as much body as remains fits; leading is cropped.
		avail := h - t
		if avail < 0 {
			avail = 0
		}
		if d.EnsureSet {
			s.scroll.Row = ensureRowVisible(s.scroll.Row, d.EnsureRow, avail)
		}
		s.scroll.Row = clampRow(s.scroll.Row, len(d.Body), avail)
		body, bodyRows = sliceBody(d.Body, s.scroll.Row, avail)
		showLeading = false
	default:
		// Not even all of trailing fits: show only the last h trailing lines.
		showLeading = false
		if t > h {
			d.Trailing = d.Trailing[t-h:]
		}
	}

	var out []Line
	if showLeading {
		out = append(out, d.Leading...)
	}
	out = append(out, body...)
	out = append(out, d.Trailing...)

	maxWidth := maxVisibleWidth(body)
	s.scroll.Col = clampCol(s.scroll.Col, maxWidth, s.width)
	if d.EnsureSet {
		s.scroll.Col = ensureColVisible(s.scroll.Col, d.EnsureCol, s.width)
	}

	return Rendered{
		Lines:         out,
		TitleShown:    titleShown,
		ShowScrollBar: b > bodyRows,
		Scroll:        s.scroll,
	}
}

// clampRow bounds a vertical scroll offset to [0, len-avail].
func clampRow(row, length, avail int) int {
	maxOffset := length - avail
	if maxOffset < 0 {
		maxOffset = 0
	}
	if row > maxOffset {
		row = maxOffset
	}
	if row < 0 {
		row = 0
	}
	return row
}

// sliceBody returns the body lines visible starting at an already-clamped
// row offset, and the row count actually shown.
func sliceBody(body []Line, row, avail int) ([]Line, int) {
	if avail <= 0 || len(body) == 0 {
		return nil, 0
	}
	end := row + avail
	if end > len(body) {
		end = len(body)
	}
	if row > end {
		row = end
	}
	return body[row:end], end - row
}

// ensureRowVisible pulls the scroll offset up if target sits above the
// current window, or down so target becomes the last visible row if it
// sits below — a no-op if target is already within [scroll, scroll+avail).
func ensureRowVisible(scroll, target, avail int) int {
	if target < scroll {
		return target
	}
	if avail > 0 && target >= scroll+avail {
		return target - avail + 1
	}
	return scroll
}

func maxVisibleWidth(lines []Line) int {
	max := 0
	for _, ln := range lines {
		scrollable := ln.Width - ln.Pinned
		if scrollable > max {
			max = scrollable
		}
	}
	return max
}

func clampCol(col, maxWidth, width int) int {
	limit := maxWidth - width
	if limit < 0 {
		limit = 0
	}
	if col > limit {
		col = limit
	}
	if col < 0 {
		col = 0
	}
	return col
}

func ensureColVisible(col, target, width int) int {
	if target < col {
		return target
	}
	if width > 0 && target >= col+width {
		return target - width + 1
	}
	return col
}
