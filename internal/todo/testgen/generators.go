// Package testgen provides rapid generators for instruction-sheet fixtures.
package testgen

import (
	"pgregory.net/rapid"
)

// Hash generates a short git-style commit hash.
func Hash() *rapid.Generator[string] {
	return rapid.StringMatching(`[0-9a-f]{7,40}`)
}

// Subject generates a short commit subject line (no newlines, no leading or
// trailing whitespace so round-trip serialisation is exact).
func Subject() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		n := rapid.IntRange(1, 5).Draw(t, "words")
		word := rapid.StringMatching(`[a-zA-Z][a-zA-Z0-9]{0,10}`)
		words := make([]string, n)
		for i := range words {
			words[i] = word.Draw(t, "word")
		}
		out := words[0]
		for _, w := range words[1:] {
			out += " " + w
		}
		return out
	})
}

// CommitAction generates one of the long-form spellings of the six
// commit-bearing actions (pick/reword/edit/squash/fixup/drop).
func CommitAction() *rapid.Generator[string] {
	return rapid.SampledFrom([]string{"pick", "reword", "edit", "squash", "fixup", "drop"})
}

// PickLine generates a valid "pick <hash> <subject>" style raw line using a
// random commit-bearing action.
func PickLine() *rapid.Generator[string] {
	return rapid.Custom(func(t *rapid.T) string {
		action := CommitAction().Draw(t, "action")
		hash := Hash().Draw(t, "hash")
		subject := Subject().Draw(t, "subject")
		return action + " " + hash + " " + subject
	})
}
