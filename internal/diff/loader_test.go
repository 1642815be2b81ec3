package diff

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

func newInMemoryRepo(t *testing.T) (*git.Repository, *git.Worktree) {
	t.Helper()
	repo, err := git.Init(memory.NewStorage(), memfs.New())
	if err != nil {
		t.Fatalf("git.Init: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	return repo, wt
}

var testWhen = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func writeFile(t *testing.T, wt *git.Worktree, path, content string) {
	t.Helper()
	f, err := wt.Filesystem.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	if _, err := f.Write([]byte(content)); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	f.Close()
	if _, err := wt.Add(path); err != nil {
		t.Fatalf("add %s: %v", path, err)
	}
}

func commit(t *testing.T, wt *git.Worktree, message string) string {
	t.Helper()
	sig := &object.Signature{Name: "tester", Email: "tester@example.com", When: testWhen}
	hash, err := wt.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	return hash.String()
}

func TestLoader_RootCommitIsAllAdditions(t *testing.T) {
	repo, wt := newInMemoryRepo(t)
	writeFile(t, wt, "a.txt", "hello\nworld\n")
	rootHash := commit(t, wt, "root")

	loader := NewLoader(Wrap(repo), LoaderOptions{})
	var events []Event
	result, err := loader.Load(rootHash, func(e Event) bool { events = append(events, e); return false })
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if result.ParentHash != "" {
		t.Errorf("ParentHash = %q, want empty for a root commit", result.ParentHash)
	}
	if len(result.Files) != 1 {
		t.Fatalf("Files = %d, want 1", len(result.Files))
	}
	f := result.Files[0]
	if f.Status != StatusAdded || f.NewPath != "a.txt" {
		t.Errorf("got %+v", f)
	}
	if len(f.Hunks) != 1 || len(f.Hunks[0].Lines) != 2 {
		t.Fatalf("expected one hunk of 2 added lines, got %+v", f.Hunks)
	}
	for _, l := range f.Hunks[0].Lines {
		if l.Origin != OriginAddition {
			t.Errorf("line origin = %v, want OriginAddition", l.Origin)
		}
	}

	var sawNew, sawComplete bool
	for _, e := range events {
		if e.Kind == EventNew {
			sawNew = true
		}
		if e.Kind == EventDiffComplete {
			sawComplete = true
		}
	}
	if !sawNew || !sawComplete {
		t.Errorf("expected EventNew and EventDiffComplete notifications, got %+v", events)
	}
}

func TestLoader_ModifiedFile(t *testing.T) {
	repo, wt := newInMemoryRepo(t)
	writeFile(t, wt, "a.txt", "line one\nline two\n")
	commit(t, wt, "root")

	writeFile(t, wt, "a.txt", "line one\nline two changed\n")
	second := commit(t, wt, "modify")

	loader := NewLoader(Wrap(repo), LoaderOptions{})
	result, err := loader.Load(second, func(Event) bool { return false })
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(result.Files) != 1 || result.Files[0].Status != StatusModified {
		t.Fatalf("got %+v", result.Files)
	}
}

func TestLoader_DetectsRename(t *testing.T) {
	repo, wt := newInMemoryRepo(t)
	body := "package main\n\nfunc main() {\n\tprintln(\"hello world, this stays the same\")\n}\n"
	writeFile(t, wt, "old.go", body)
	commit(t, wt, "root")

	if _, err := wt.Remove("old.go"); err != nil {
		t.Fatalf("wt.Remove: %v", err)
	}
	writeFile(t, wt, "new.go", body)
	second := commit(t, wt, "rename")

	loader := NewLoader(Wrap(repo), LoaderOptions{DetectRenames: true, RenameLimit: 50})
	result, err := loader.Load(second, func(Event) bool { return false })
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(result.Files) != 1 {
		t.Fatalf("expected the rename to collapse into one delta, got %+v", result.Files)
	}
	f := result.Files[0]
	if f.Status != StatusRenamed || f.OldPath != "old.go" || f.NewPath != "new.go" {
		t.Errorf("got %+v", f)
	}
	if f.SimilarityPercent < 50 {
		t.Errorf("SimilarityPercent = %d, want >= 50", f.SimilarityPercent)
	}
}

func TestLoader_WithoutRenameDetectionShowsAddAndDelete(t *testing.T) {
	repo, wt := newInMemoryRepo(t)
	body := "identical content across the rename\n"
	writeFile(t, wt, "old.go", body)
	commit(t, wt, "root")

	if _, err := wt.Remove("old.go"); err != nil {
		t.Fatalf("wt.Remove: %v", err)
	}
	writeFile(t, wt, "new.go", body)
	second := commit(t, wt, "rename")

	loader := NewLoader(Wrap(repo), LoaderOptions{})
	result, err := loader.Load(second, func(Event) bool { return false })
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(result.Files) != 2 {
		t.Fatalf("expected a separate add and delete, got %+v", result.Files)
	}
}

func TestLoader_CancellationReturnsErrCancelled(t *testing.T) {
	repo, wt := newInMemoryRepo(t)
	writeFile(t, wt, "a.txt", "content\n")
	rootHash := commit(t, wt, "root")

	loader := NewLoader(Wrap(repo), LoaderOptions{})
	_, err := loader.Load(rootHash, func(Event) bool { return true })
	if err != ErrCancelled {
		t.Errorf("Load() err = %v, want ErrCancelled", err)
	}
}

func TestLoader_UnresolvableRevisionWrapsDiffLoad(t *testing.T) {
	repo, _ := newInMemoryRepo(t)
	loader := NewLoader(Wrap(repo), LoaderOptions{})
	_, err := loader.Load("deadbeefdeadbeefdeadbeefdeadbeefdeadbeef", func(Event) bool { return false })
	if err == nil {
		t.Fatal("expected an error for an unresolvable revision")
	}
	if _, ok := err.(*DiffLoad); !ok {
		t.Errorf("err = %T, want *DiffLoad", err)
	}
}
