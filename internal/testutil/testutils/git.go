package testutils

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Repo is a local repository used as a clone source.
type Repo struct {
	t    *testing.T
	Dir  string
	repo *git.Repository
	wt   *git.Worktree
}

// InitRepo initializes a repository in a temporary directory named name.
func InitRepo(t *testing.T, name string) *Repo {
	t.Helper()
	dir := filepath.Join(t.TempDir(), name)
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to initialize git repo: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}
	return &Repo{t: t, Dir: dir, repo: repo, wt: wt}
}

// Commit writes the given files and commits them.
func (r *Repo) Commit(msg string, rels ...string) plumbing.Hash {
	r.t.Helper()
	WriteTree(r.t, r.Dir, rels...)
	for _, rel := range rels {
		if _, err := r.wt.Add(rel); err != nil {
			r.t.Fatalf("failed to stage %s: %v", rel, err)
		}
	}
	hash, err := r.wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	if err != nil {
		r.t.Fatalf("failed to commit: %v", err)
	}
	return hash
}

// Branch creates and checks out a new branch.
func (r *Repo) Branch(name string) {
	r.t.Helper()
	err := r.wt.Checkout(&git.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(name), Create: true})
	if err != nil {
		r.t.Fatalf("failed to create branch %s: %v", name, err)
	}
}

// Tag creates a lightweight tag at HEAD.
func (r *Repo) Tag(name string) {
	r.t.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("failed to resolve HEAD: %v", err)
	}
	if _, err := r.repo.CreateTag(name, head.Hash(), nil); err != nil {
		r.t.Fatalf("failed to create tag %s: %v", name, err)
	}
}
