package diff

// go-git's Tree.Diff has no rename/copy post-processing step of its own (it
// only reports inserts, deletes and modifies), so similarity detection is
// hand-rolled here: a Jaccard index over each candidate's trigram shingle
// set, which is cheap to compute and good enough to rank "this delete is
// probably that add" without needing a full line-level diff per candidate
// pair.

// trigramSet returns the set of 3-byte shingles of s.
func trigramSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	if len(s) < 3 {
		if s != "" {
			set[s] = struct{}{}
		}
		return set
	}
	for i := 0; i+3 <= len(s); i++ {
		set[s[i:i+3]] = struct{}{}
	}
	return set
}

// jaccardPercent returns the Jaccard similarity of a and b as an integer
// percentage in [0, 100].
func jaccardPercent(a, b map[string]struct{}) int {
	if len(a) == 0 && len(b) == 0 {
		return 100
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	intersection := 0
	small, large := a, b
	if len(a) > len(b) {
		small, large = b, a
	}
	for k := range small {
		if _, ok := large[k]; ok {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	if union == 0 {
		return 100
	}
	return intersection * 100 / union
}

// similarityCandidate is a file whose content can serve as a rename/copy
// source.
type similarityCandidate struct {
	path     string
	shingles map[string]struct{}
	// fromUnmodified marks a candidate drawn from an unchanged file (a
	// possible copy source, never a rename source, since nothing was
	// deleted).
	fromUnmodified bool
}

// bestMatch returns the index of the candidate most similar to target's
// content, and its score, or ok=false if none clears renameLimit.
func bestMatch(target map[string]struct{}, candidates []similarityCandidate, renameLimit int) (index, score int, ok bool) {
	best := -1
	bestScore := -1
	for i, c := range candidates {
		score := jaccardPercent(target, c.shingles)
		if score >= renameLimit && score > bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 {
		return 0, 0, false
	}
	return best, bestScore, true
}
