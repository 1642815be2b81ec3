package diff

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// ErrCancelled is returned by Loader.Load when the notifier requested
// cancellation; unlike DiffLoad it carries no repository error, and the
// caller's previously-published CommitDiff (if any) should be kept as-is.
var ErrCancelled = errors.New("diff load cancelled")

// Repository is a thin wrapper over a go-git repository handle.
type Repository struct {
	raw *git.Repository
}

// Open opens the repository at path (a working tree or a bare repo).
func Open(path string) (*Repository, error) {
	raw, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	return &Repository{raw: raw}, nil
}

// Wrap adapts an already-open go-git repository (tests use this with an
// in-memory repository).
func Wrap(raw *git.Repository) *Repository { return &Repository{raw: raw} }

func (r *Repository) resolveCommit(rev string) (*object.Commit, error) {
	hash, err := r.raw.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, err
	}
	return r.raw.CommitObject(*hash)
}

// LoaderOptions configures similarity detection for the full pass.
type LoaderOptions struct {
	DetectRenames        bool
	DetectCopies         bool
	CopiesFromUnmodified bool
	// RenameLimit is the minimum Jaccard similarity percentage (0-100) for
	// two files to be considered a rename/copy pair.
	RenameLimit int
	// ProgressInterval throttles QuickDiff/Diff notifications. Zero uses a
	// 25ms default, matching the external interface's minimum cadence.
	ProgressInterval time.Duration
}

func (o LoaderOptions) normalized() LoaderOptions {
	if o.RenameLimit <= 0 {
		o.RenameLimit = 50
	}
	if o.ProgressInterval <= 0 {
		o.ProgressInterval = 25 * time.Millisecond
	}
	return o
}

// Loader runs the two-phase commit diff described by Load.
type Loader struct {
	repo *Repository
	opts LoaderOptions
}

// NewLoader builds a Loader over repo.
func NewLoader(repo *Repository, opts LoaderOptions) *Loader {
	return &Loader{repo: repo, opts: opts.normalized()}
}

// Load resolves rev, diffs it against its first parent (second parents of a
// merge are ignored), and streams progress through notify. It returns the
// final CommitDiff, or (nil, ErrCancelled) if notify requested cancellation,
// or (nil, *DiffLoad) on any repository error.
func (l *Loader) Load(rev string, notify Notifier) (*CommitDiff, error) {
	commit, err := l.repo.resolveCommit(rev)
	if err != nil {
		return nil, &DiffLoad{Cause: CauseLoadCommit, Err: err}
	}

	var parent *object.Commit
	parentHash := ""
	if p, perr := commit.Parent(0); perr == nil {
		parent = p
		parentHash = p.Hash.String()
	} else if !errors.Is(perr, object.ErrParentNotFound) {
		return nil, &DiffLoad{Cause: CauseLoadParent, Err: perr}
	}

	result := &CommitDiff{CommitHash: commit.Hash.String(), ParentHash: parentHash}
	if notify(Event{Kind: EventNew}) {
		return nil, ErrCancelled
	}

	toTree, err := commit.Tree()
	if err != nil {
		return nil, &DiffLoad{Cause: CauseLoadTree, Err: err}
	}
	var fromTree *object.Tree
	if parent != nil {
		fromTree, err = parent.Tree()
		if err != nil {
			return nil, &DiffLoad{Cause: CauseLoadTree, Err: err}
		}
	}

	changes, err := changesForTrees(fromTree, toTree)
	if err != nil {
		return nil, &DiffLoad{Cause: CauseComputeDiff, Err: err}
	}

	// Quick pass: raw adds/deletes/modifies, no similarity detection.
	total := len(changes)
	if cancelled := l.streamProgress(EventQuickDiff, total, notify); cancelled {
		return nil, ErrCancelled
	}
	if notify(Event{Kind: EventCompleteQuickDiff}) {
		return nil, ErrCancelled
	}
	result.Files = toDeltas(changes)

	if !l.opts.DetectRenames && !l.opts.DetectCopies {
		if notify(Event{Kind: EventDiffComplete}) {
			return nil, ErrCancelled
		}
		return result, nil
	}

	var unmodified []similarityCandidate
	if l.opts.CopiesFromUnmodified && fromTree != nil {
		unmodified, err = unmodifiedCandidates(fromTree, toTree)
		if err != nil {
			return nil, &DiffLoad{Cause: CauseComputeDiff, Err: err}
		}
	}

	final := l.detectRenamesAndCopies(changes, unmodified)
	if cancelled := l.streamProgress(EventDiff, len(final), notify); cancelled {
		return nil, ErrCancelled
	}

	result.Files = toDeltas(final)
	if notify(Event{Kind: EventDiffComplete}) {
		return nil, ErrCancelled
	}
	return result, nil
}

// streamProgress emits kind notifications at the configured interval (at
// least at the final step), returning true if the notifier cancelled.
func (l *Loader) streamProgress(kind EventKind, total int, notify Notifier) bool {
	last := time.Time{}
	for i := 1; i <= total; i++ {
		if i == total || time.Since(last) >= l.opts.ProgressInterval {
			if notify(Event{Kind: kind, Done: i, Total: total}) {
				return true
			}
			last = time.Now()
		}
	}
	return false
}

// rawChange is the loader's internal working representation of one file
// difference, carrying the content needed for similarity scoring alongside
// the rendered hunks.
type rawChange struct {
	oldPath, newPath string
	oldMode, newMode string
	status           FileStatus
	isBinary         bool
	content          string // new content for Added, old content for Deleted
	similarity       int
	hunks            []Hunk
	consumed         bool // true once matched into a Renamed pair
}

func changesForTrees(fromTree, toTree *object.Tree) ([]rawChange, error) {
	if fromTree == nil {
		return rootChanges(toTree)
	}

	changes, err := fromTree.Diff(toTree)
	if err != nil {
		return nil, err
	}

	out := make([]rawChange, 0, len(changes))
	for _, ch := range changes {
		rc, err := rawChangeFrom(ch)
		if err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, nil
}

// rootChanges handles a commit with no parent: every blob in toTree is an
// addition, and its hunk is exactly its content (no line-level diff needed).
func rootChanges(toTree *object.Tree) ([]rawChange, error) {
	var out []rawChange
	err := toTree.Files().ForEach(func(f *object.File) error {
		isBinary, err := f.IsBinary()
		if err != nil {
			isBinary = true
		}
		var content string
		if !isBinary {
			content, _ = f.Contents()
		}
		out = append(out, rawChange{
			newPath:  f.Name,
			newMode:  f.Mode.String(),
			status:   StatusAdded,
			isBinary: isBinary,
			content:  content,
			hunks:    allAdditionsHunk(content),
		})
		return nil
	})
	return out, err
}

func rawChangeFrom(ch *object.Change) (rawChange, error) {
	action, err := ch.Action()
	if err != nil {
		return rawChange{}, err
	}

	from, to, err := ch.Files()
	if err != nil {
		return rawChange{}, err
	}

	rc := rawChange{}
	if from != nil {
		rc.oldPath = from.Name
		rc.oldMode = from.Mode.String()
	}
	if to != nil {
		rc.newPath = to.Name
		rc.newMode = to.Mode.String()
	}

	switch action {
	case merkletrie.Insert:
		rc.status = StatusAdded
	case merkletrie.Delete:
		rc.status = StatusDeleted
	default:
		rc.status = StatusModified
	}

	patch, err := ch.Patch()
	if err != nil {
		return rawChange{}, err
	}
	for _, fp := range patch.FilePatches() {
		if fp.IsBinary() {
			rc.isBinary = true
			continue
		}
		rc.hunks = append(rc.hunks, hunkFromChunks(fp.Chunks()))
	}

	switch rc.status {
	case StatusAdded:
		if to != nil && !rc.isBinary {
			rc.content, _ = to.Contents()
		}
	case StatusDeleted:
		if from != nil && !rc.isBinary {
			rc.content, _ = from.Contents()
		}
	}

	return rc, nil
}

func hunkFromChunks(chunks []object.Chunk) Hunk {
	var lines []DiffLine
	for _, c := range chunks {
		origin := OriginContext
		switch c.Type() {
		case object.Add:
			origin = OriginAddition
		case object.Delete:
			origin = OriginDeletion
		}
		for _, l := range splitLines(c.Content()) {
			lines = append(lines, DiffLine{Origin: origin, Content: l})
		}
	}
	return Hunk{Header: fmt.Sprintf("@@ %d lines @@", len(lines)), Lines: lines}
}

func allAdditionsHunk(content string) []Hunk {
	lines := splitLines(content)
	if len(lines) == 0 {
		return nil
	}
	dls := make([]DiffLine, len(lines))
	for i, l := range lines {
		dls[i] = DiffLine{Origin: OriginAddition, Content: l}
	}
	return []Hunk{{Header: fmt.Sprintf("@@ -0,0 +1,%d @@", len(lines)), Lines: dls}}
}

func splitLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}

// unmodifiedCandidates enumerates files present unchanged in both trees, for
// use as copy sources when CopiesFromUnmodified is set.
func unmodifiedCandidates(fromTree, toTree *object.Tree) ([]similarityCandidate, error) {
	var out []similarityCandidate
	err := fromTree.Files().ForEach(func(f *object.File) error {
		toFile, ferr := toTree.File(f.Name)
		if ferr != nil || toFile.Hash != f.Hash {
			return nil
		}
		isBinary, _ := f.IsBinary()
		if isBinary {
			return nil
		}
		content, cerr := f.Contents()
		if cerr != nil {
			return nil
		}
		out = append(out, similarityCandidate{path: f.Name, shingles: trigramSet(content), fromUnmodified: true})
		return nil
	})
	return out, err
}

// detectRenamesAndCopies matches each Added entry against Deleted entries
// (renames) and, if configured, unmodified entries (copies), mutating
// matched entries in place and marking consumed rename sources so they
// don't also surface as a standalone delete.
func (l *Loader) detectRenamesAndCopies(changes []rawChange, unmodified []similarityCandidate) []rawChange {
	deletedIdx := make([]int, 0)
	for i, c := range changes {
		if c.status == StatusDeleted && !c.isBinary {
			deletedIdx = append(deletedIdx, i)
		}
	}

	for addedI := range changes {
		if changes[addedI].status != StatusAdded || changes[addedI].isBinary {
			continue
		}
		target := trigramSet(changes[addedI].content)

		if l.opts.DetectRenames {
			candidates := make([]similarityCandidate, 0, len(deletedIdx))
			remaining := make([]int, 0, len(deletedIdx))
			for _, di := range deletedIdx {
				if changes[di].consumed {
					continue
				}
				candidates = append(candidates, similarityCandidate{
					path:     changes[di].oldPath,
					shingles: trigramSet(changes[di].content),
				})
				remaining = append(remaining, di)
			}
			if idx, score, ok := bestMatch(target, candidates, l.opts.RenameLimit); ok {
				di := remaining[idx]
				changes[addedI].status = StatusRenamed
				changes[addedI].oldPath = changes[di].oldPath
				changes[addedI].similarity = score
				changes[di].consumed = true
				continue
			}
		}

		if l.opts.DetectCopies && len(unmodified) > 0 {
			if idx, score, ok := bestMatch(target, unmodified, l.opts.RenameLimit); ok {
				changes[addedI].status = StatusCopied
				changes[addedI].oldPath = unmodified[idx].path
				changes[addedI].similarity = score
			}
		}
	}

	out := make([]rawChange, 0, len(changes))
	for _, c := range changes {
		if c.consumed {
			continue
		}
		out = append(out, c)
	}
	return out
}

func toDeltas(changes []rawChange) []Delta {
	out := make([]Delta, 0, len(changes))
	for _, c := range changes {
		out = append(out, Delta{
			OldPath:           c.oldPath,
			NewPath:           c.newPath,
			Status:            c.status,
			IsBinary:          c.isBinary,
			OldMode:           c.oldMode,
			NewMode:           c.newMode,
			SimilarityPercent: c.similarity,
			Hunks:             c.hunks,
		})
	}
	return out
}
