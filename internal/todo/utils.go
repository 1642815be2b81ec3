package todo

// normalizeRange orders (start, end) and clamps both to [0, maxIndex].
func normalizeRange(start, end, maxIndex int) (int, int) {
	if start > end {
		start, end = end, start
	}
	if start > maxIndex {
		start = maxIndex
	}
	if end > maxIndex {
		end = maxIndex
	}
	if start < 0 {
		start = 0
	}
	if end < 0 {
		end = 0
	}
	return start, end
}

// swapRangeUp rotates lines[start:end+1] one position toward index 0,
// i.e. moves lines[start-1] to the end of the block and shifts the rest
// down by one.
func swapRangeUp(lines []Line, start, end int) {
	if start == 0 {
		return
	}
	above := lines[start-1]
	copy(lines[start-1:end], lines[start:end+1])
	lines[end] = above
}

// swapRangeDown is the mirror of swapRangeUp: rotates lines[start:end+1] one
// position away from index 0.
func swapRangeDown(lines []Line, start, end int) {
	if end >= len(lines)-1 {
		return
	}
	below := lines[end+1]
	copy(lines[start+1:end+2], lines[start:end+1])
	lines[start] = below
}

// removeRange deletes lines[start:end+1] in place and returns the removed
// slice (a fresh copy, independent of the backing array).
func removeRange(lines *[]Line, start, end int) []Line {
	removed := make([]Line, end-start+1)
	copy(removed, (*lines)[start:end+1])

	kept := make([]Line, 0, len(*lines)-len(removed))
	kept = append(kept, (*lines)[:start]...)
	kept = append(kept, (*lines)[end+1:]...)
	*lines = kept

	return removed
}

// insertRange re-inserts lines at index start (used to invert a Remove).
func insertRange(lines *[]Line, start int, removed []Line) {
	out := make([]Line, 0, len(*lines)+len(removed))
	out = append(out, (*lines)[:start]...)
	out = append(out, removed...)
	out = append(out, (*lines)[start:]...)
	*lines = out
}
