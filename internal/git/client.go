package git

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/mapidoc/internal/logfields"
)

// Remote describes the repository to clone.
type Remote struct {
	URL string
	// Ref is a branch name or a full reference ("refs/tags/v1.0"). Empty
	// clones the default branch.
	Ref string
	// Depth > 0 requests a shallow clone.
	Depth    int
	Auth     *Auth
	Progress io.Writer
}

// Checkout is the result of a clone.
type Checkout struct {
	Path   string
	Commit string
}

// Client clones repositories below a workspace directory.
type Client struct {
	workspaceDir string
}

// NewClient creates a client that clones into workspaceDir.
func NewClient(workspaceDir string) *Client {
	return &Client{workspaceDir: workspaceDir}
}

// Clone clones r into a fresh directory of the workspace.
func (c *Client) Clone(ctx context.Context, r Remote) (Checkout, error) {
	if strings.TrimSpace(r.URL) == "" {
		return Checkout{}, ferrors.GitError("cannot clone repository").WithCause(ErrEmptyURL).Build()
	}
	auth, err := r.Auth.method()
	if err != nil {
		return Checkout{}, err
	}

	dest := filepath.Join(c.workspaceDir, RepoName(r.URL))
	if err := os.RemoveAll(dest); err != nil {
		return Checkout{}, ferrors.FileSystemError("failed to remove existing checkout").
			WithCause(err).
			WithContext("path", dest).
			Build()
	}

	opts := &git.CloneOptions{
		URL:      r.URL,
		Auth:     auth,
		Progress: r.Progress,
		Depth:    r.Depth,
		Tags:     git.NoTags,
	}
	if r.Ref != "" {
		opts.ReferenceName = referenceName(r.Ref)
		opts.SingleBranch = true
		if opts.ReferenceName.IsTag() {
			opts.Tags = git.AllTags
		}
	}

	slog.Debug("Cloning repository", logfields.URL(r.URL), logfields.Ref(r.Ref), logfields.Path(dest))
	repo, err := git.PlainCloneContext(ctx, dest, false, opts)
	if err != nil {
		return Checkout{}, ferrors.GitError("failed to clone repository").
			WithCause(err).
			WithContext("url", r.URL).
			WithContext("ref", r.Ref).
			Build()
	}

	co := Checkout{Path: dest}
	if head, err := repo.Head(); err == nil {
		co.Commit = head.Hash().String()
	}
	slog.Info("Repository cloned", logfields.URL(r.URL), slog.String("commit", shortHash(co.Commit)), logfields.Path(dest))
	return co, nil
}

func referenceName(ref string) plumbing.ReferenceName {
	if strings.HasPrefix(ref, "refs/") {
		return plumbing.ReferenceName(ref)
	}
	return plumbing.NewBranchReferenceName(ref)
}

// RepoName derives a directory name from a clone URL: the last path element
// without a ".git" suffix.
func RepoName(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Scheme != "" && u.Path != "" {
		p = u.Path
	} else if i := strings.LastIndex(rawURL, ":"); i > 0 && !strings.ContainsAny(rawURL[:i], `/\`) {
		// scp-like: git@host:org/repo.git
		p = rawURL[i+1:]
	}
	name := strings.TrimSuffix(path.Base(filepath.ToSlash(strings.TrimRight(p, `/\`))), ".git")
	if name == "" || name == "." || name == "/" {
		return "repo"
	}
	return name
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}
