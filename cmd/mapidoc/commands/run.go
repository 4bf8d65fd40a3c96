package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/mapidoc/internal/config"
	"git.home.luguber.info/inful/mapidoc/internal/logfields"
	"git.home.luguber.info/inful/mapidoc/internal/metrics"
	"git.home.luguber.info/inful/mapidoc/internal/output"
	"git.home.luguber.info/inful/mapidoc/internal/plan"
	"git.home.luguber.info/inful/mapidoc/internal/rst"
	"git.home.luguber.info/inful/mapidoc/internal/source"
)

// Generator runs the discovery, planning and writing pipeline for one source
// tree. A Generator is reused across watch-mode runs.
type Generator struct {
	Config    *config.Config
	OutputDir string
	PageSize  int
	DryRun    bool
	Force     bool

	Stdout io.Writer
	Stdin  io.Reader

	// MetricsFile, when set, receives the Prometheus textfile after each run
	// that is not a dry run.
	MetricsFile string
	// SkipUnchanged suppresses the write when the plan digest equals the
	// previous run's.
	SkipUnchanged bool

	recorder   *metrics.PrometheusRecorder
	lastDigest string
}

// RunResult summarizes one generation run.
type RunResult struct {
	RunID      string
	Outcome    metrics.Outcome
	Digest     string
	Files      int
	Namespaces int
	Paths      []string
}

// NewGenerator builds a Generator from the loaded configuration and the
// shared output flags.
func NewGenerator(g *Global, cfg *config.Config, flags OutputFlags) *Generator {
	gen := &Generator{
		Config:      cfg,
		OutputDir:   ResolveOutputDir(flags.OutputDir, cfg),
		PageSize:    ResolvePageSize(flags.MaxFiles, cfg),
		DryRun:      flags.DryRun,
		Force:       flags.Force,
		Stdout:      g.Stdout,
		Stdin:       g.Stdin,
		MetricsFile: flags.MetricsFile,
	}
	if gen.MetricsFile != "" {
		gen.recorder = metrics.NewPrometheusRecorder(nil)
	}
	return gen
}

func (gen *Generator) observer() metrics.Recorder {
	if gen.recorder == nil {
		return metrics.NoopRecorder{}
	}
	return gen.recorder
}

func (gen *Generator) stdout() io.Writer {
	if gen.Stdout == nil {
		return io.Discard
	}
	return gen.Stdout
}

// Run generates the pages for the tree at src.
func (gen *Generator) Run(ctx context.Context, src string) (RunResult, error) {
	start := time.Now()
	res := RunResult{RunID: uuid.NewString()}
	log := slog.Default().With(logfields.RunID(res.RunID))

	err := gen.run(ctx, log, src, &res)
	if err != nil {
		res.Outcome = metrics.OutcomeFailed
	}

	elapsed := time.Since(start)
	rec := gen.observer()
	rec.ObserveRunDuration(elapsed)
	rec.IncRunOutcome(res.Outcome)
	if gen.recorder != nil && !gen.DryRun {
		if werr := gen.recorder.WriteTextfile(gen.MetricsFile); werr != nil {
			log.Warn("Failed to write metrics textfile", logfields.Path(gen.MetricsFile), logfields.Error(werr))
		}
	}
	log.Info("Generation finished",
		slog.String("outcome", string(res.Outcome)),
		logfields.Digest(res.Digest),
		logfields.DurationMS(float64(elapsed.Microseconds())/1000))
	return res, err
}

func (gen *Generator) run(ctx context.Context, log *slog.Logger, src string, res *RunResult) error {
	out := gen.stdout()
	rec := gen.observer()

	if err := source.CheckRoot(src); err != nil {
		return err
	}

	if !gen.DryRun && !gen.Force {
		nonEmpty, err := output.IsNonEmptyDir(gen.OutputDir)
		if err != nil {
			return err
		}
		if nonEmpty {
			in := gen.Stdin
			if in == nil {
				in = strings.NewReader("")
			}
			ok, err := output.Confirm(in, out, gen.OutputDir)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Aborted.")
				res.Outcome = metrics.OutcomeAborted
				return nil
			}
		}
	}

	fmt.Fprintf(out, "Scanning MATLAB files in: %s\n", src)
	planStart := time.Now()
	p, err := plan.Build(ctx, src, gen.planOptions())
	rec.ObserveStageDuration(metrics.StagePlan, time.Since(planStart))
	if err != nil {
		return err
	}
	res.Digest = p.Digest()
	res.Files = len(p.Files)
	res.Namespaces = p.Groups.Len()
	rec.SetFilesDiscovered(res.Files)
	rec.SetNamespaces(res.Namespaces)

	if p.Empty() {
		fmt.Fprintln(out, "Warning: No MATLAB files found!")
		res.Outcome = metrics.OutcomeEmpty
		return nil
	}
	rec.AddPagesRendered(len(p.Pages) + 1)

	fmt.Fprintf(out, "Found %d MATLAB file(s)\n", res.Files)
	fmt.Fprintf(out, "Organized into %d namespace(s)\n", res.Namespaces)
	log.Debug("Plan built",
		logfields.Files(res.Files),
		logfields.Pages(len(p.Pages)),
		logfields.Digest(res.Digest))

	if gen.SkipUnchanged && !gen.DryRun && res.Digest == gen.lastDigest {
		log.Info("Output unchanged; skipping write", logfields.Digest(res.Digest))
		res.Outcome = metrics.OutcomeSuccess
		return nil
	}

	w := &output.Writer{Dir: gen.OutputDir, DryRun: gen.DryRun, Out: out}
	writeStart := time.Now()
	written, err := w.Write(ctx, p)
	rec.ObserveStageDuration(metrics.StageWrite, time.Since(writeStart))
	if err != nil {
		return err
	}
	res.Paths = written.Paths

	if gen.DryRun {
		fmt.Fprintln(out, "\nDry run completed. No files were created.")
		res.Outcome = metrics.OutcomeDryRun
		return nil
	}
	rec.AddPagesWritten(len(written.Paths))
	gen.lastDigest = res.Digest
	fmt.Fprintf(out, "\nRST files generated in: %s\n", gen.OutputDir)
	fmt.Fprintln(out, "You can now run 'sphinx-build' to generate documentation.")
	res.Outcome = metrics.OutcomeSuccess
	return nil
}

func (gen *Generator) planOptions() plan.Options {
	cfg := gen.Config
	markers := cfg.Markers()
	return plan.Options{
		Source:   cfg.SourceOptions(),
		Markers:  markers,
		PageSize: gen.PageSize,
		Render: rst.Options{
			IndexTitle:   cfg.Output.IndexTitle,
			RootTitle:    cfg.Output.RootTitle,
			TemplatesDir: cfg.Output.TemplatesDir,
			Markers:      markers,
		},
	}
}
