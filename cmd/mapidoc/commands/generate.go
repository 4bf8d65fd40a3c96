package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/mapidoc/internal/config"
	"git.home.luguber.info/inful/mapidoc/internal/logfields"
	"git.home.luguber.info/inful/mapidoc/internal/watch"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct {
	Source string `arg:"" name:"source" help:"MATLAB source directory"`
	OutputFlags
	Watch bool `short:"w" help:"Regenerate when the source tree changes"`
}

func (c *GenerateCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	gen := NewGenerator(g, cfg, c.OutputFlags)

	if !c.Watch {
		_, err := gen.Run(context.Background(), c.Source)
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return RunWatch(ctx, gen, cfg, c.Source)
}

// RunWatch generates once and then regenerates on every debounced change
// until ctx is done. Runs after the first never prompt and skip the write
// when nothing changed.
func RunWatch(ctx context.Context, gen *Generator, cfg *config.Config, src string) error {
	if _, err := gen.Run(ctx, src); err != nil {
		return err
	}
	gen.Force = true
	gen.SkipUnchanged = true

	w, err := watch.New(src, watch.Options{Source: cfg.SourceOptions()})
	if err != nil {
		return err
	}
	fmt.Fprintf(gen.stdout(), "\nWatching %s for changes (Ctrl+C to stop)\n", src)
	slog.Info("Watching source tree", logfields.Path(src))

	return w.Run(ctx, func(ctx context.Context) error {
		_, err := gen.Run(ctx, src)
		return err
	})
}
