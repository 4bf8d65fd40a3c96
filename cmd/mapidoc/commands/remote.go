package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/mapidoc/internal/git"
	"git.home.luguber.info/inful/mapidoc/internal/logfields"
	"git.home.luguber.info/inful/mapidoc/internal/metrics"
	"git.home.luguber.info/inful/mapidoc/internal/retry"
	"git.home.luguber.info/inful/mapidoc/internal/workspace"
)

// RemoteCmd implements the 'remote' command: clone a repository into an
// ephemeral workspace and generate from it.
type RemoteCmd struct {
	URL    string `arg:"" name:"url" help:"Git repository URL or local repository path"`
	Ref    string `help:"Branch name or full reference (refs/tags/v1.0) to check out"`
	Depth  int    `default:"1" help:"Clone depth; 0 clones the full history"`
	Subdir string `help:"Source directory inside the repository" default:"."`

	Token    string `env:"MAPIDOC_GIT_TOKEN" help:"Access token for HTTPS remotes"`
	Username string `env:"MAPIDOC_GIT_USERNAME" help:"Username for HTTPS basic authentication"`
	Password string `env:"MAPIDOC_GIT_PASSWORD" help:"Password for HTTPS basic authentication"`
	SSHKey   string `name:"ssh-key" env:"MAPIDOC_GIT_SSH_KEY" help:"Private key for SSH remotes"`

	Retries      int    `default:"2" env:"MAPIDOC_CLONE_RETRIES" help:"Retries after a failed clone"`
	RetryBackoff string `name:"retry-backoff" default:"linear" enum:"fixed,linear,exponential" help:"Backoff between clone retries (fixed, linear, exponential)"`

	Workspace string `name:"workspace" env:"MAPIDOC_WORKSPACE" help:"Base directory for temporary clones (default: system temp)"`
	Keep      bool   `name:"keep" help:"Keep the clone after generation"`

	OutputFlags
}

// Auth derives the git credentials from the flags. A token wins over
// username/password, which win over an SSH key.
func (c *RemoteCmd) Auth() *git.Auth {
	switch {
	case c.Token != "":
		return &git.Auth{Type: git.AuthToken, Token: c.Token}
	case c.Username != "" || c.Password != "":
		return &git.Auth{Type: git.AuthBasic, Username: c.Username, Password: c.Password}
	case c.SSHKey != "":
		return &git.Auth{Type: git.AuthSSH, KeyPath: c.SSHKey}
	default:
		return nil
	}
}

func (c *RemoteCmd) Run(g *Global, root *CLI) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	return RunRemote(ctx, NewGenerator(g, cfg, c.OutputFlags), c)
}

// RunRemote clones c.URL and runs gen on the requested subdirectory.
func RunRemote(ctx context.Context, gen *Generator, c *RemoteCmd) error {
	subdir := filepath.Clean(filepath.FromSlash(c.Subdir))
	if !filepath.IsLocal(subdir) {
		return ferrors.PathError("subdirectory must stay inside the repository").
			WithContext("subdir", c.Subdir).
			Build()
	}

	ws := workspace.NewManager(c.Workspace)
	if err := ws.Create(); err != nil {
		return err
	}
	if c.Keep {
		slog.Info("Keeping workspace", logfields.Path(ws.GetPath()))
	} else {
		defer func() {
			if err := ws.Cleanup(); err != nil {
				slog.Warn("Failed to cleanup workspace", logfields.Error(err))
			}
		}()
	}

	mode, err := retry.ParseBackoffMode(c.RetryBackoff)
	if err != nil {
		return err
	}
	policy := retry.NewPolicy(mode, 0, 0, c.Retries)

	client := git.NewClient(ws.GetPath())
	remote := git.Remote{URL: c.URL, Ref: c.Ref, Depth: c.Depth, Auth: c.Auth()}
	rec := gen.observer()
	var co git.Checkout
	cloneStart := time.Now()
	err = policy.Do(ctx, "clone", func(ctx context.Context) error {
		var cerr error
		co, cerr = client.Clone(ctx, remote)
		rec.IncCloneResult(cerr == nil)
		return cerr
	})
	rec.ObserveStageDuration(metrics.StageClone, time.Since(cloneStart))
	if err != nil {
		return err
	}

	_, err = gen.Run(ctx, filepath.Join(co.Path, subdir))
	return err
}
