package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/mapidoc/internal/config"
)

// Global carries the process streams shared by all subcommands.
type Global struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// NewGlobal returns a Global bound to the process streams.
func NewGlobal() *Global {
	return &Global{Stdout: os.Stdout, Stderr: os.Stderr, Stdin: os.Stdin}
}

// CLI definition & global flags.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (default: mapidoc.yaml when present)"`
	Verbose   bool             `short:"v" help:"Enable verbose logging"`
	LogFormat string           `name:"log-format" help:"Log output format (text or json)"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	Generate GenerateCmd `cmd:"" default:"withargs" help:"Generate reST pages from a local MATLAB source tree"`
	Remote   RemoteCmd   `cmd:"" help:"Clone a git repository and generate reST pages from it"`
	Init     InitCmd     `cmd:"" help:"Write an example configuration file"`

	stderr io.Writer `kong:"-"`
}

// AfterApply runs after flag parsing and installs the default logger.
func (c *CLI) AfterApply() error {
	format, err := config.ParseLogFormat(c.LogFormat)
	if err != nil {
		return err
	}
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	c.setLogger(level, format)
	return nil
}

func (c *CLI) setLogger(level slog.Level, format config.LogFormat) {
	w := c.stderr
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(w, opts)
	if format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// SetLogWriter redirects log output; used by main and tests before parsing.
func (c *CLI) SetLogWriter(w io.Writer) { c.stderr = w }

// LoadConfig loads the configuration file. Without --config, mapidoc.yaml is
// used when it exists. Logging settings from the file apply where no logging
// flag was given.
func (c *CLI) LoadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if c.Config != "" {
		cfg, err = config.Load(c.Config)
	} else {
		cfg, err = config.LoadOrDefault(config.DefaultPath)
	}
	if err != nil {
		return nil, err
	}

	level := slog.LevelDebug
	if !c.Verbose {
		lvl, _ := config.ParseLogLevel(cfg.Logging.Level)
		level = lvl.Slog()
	}
	raw := c.LogFormat
	if raw == "" {
		raw = cfg.Logging.Format
	}
	format, _ := config.ParseLogFormat(raw)
	c.setLogger(level, format)
	return cfg, nil
}

// OutputFlags are shared by the commands that generate pages.
type OutputFlags struct {
	OutputDir   string `short:"o" name:"output-dir" env:"MAPIDOC_OUTPUT_DIR" default:"docs/source" help:"Output directory for reST files"`
	DryRun      bool   `short:"n" name:"dry-run" help:"Do not create files, just show what would be done"`
	Force       bool   `short:"f" help:"Overwrite existing files without asking"`
	MaxFiles    int    `name:"max-files" env:"MAPIDOC_MAX_FILES" default:"50" help:"Maximum files per page"`
	MetricsFile string `name:"metrics-file" env:"MAPIDOC_METRICS_FILE" help:"Write Prometheus metrics to this textfile after each run"`
}

// ResolveOutputDir picks the output directory. A flag left at its default
// does not override the configuration file.
func ResolveOutputDir(cliOutput string, cfg *config.Config) string {
	if cliOutput != "" && cliOutput != config.DefaultOutputDir {
		return cliOutput
	}
	if cfg.Output.Directory != "" {
		return cfg.Output.Directory
	}
	return config.DefaultOutputDir
}

// ResolvePageSize picks the page size with the same rule as ResolveOutputDir.
func ResolvePageSize(cliMax int, cfg *config.Config) int {
	if cliMax != config.DefaultMaxFilesPerPage {
		return cliMax
	}
	return cfg.Output.MaxFilesPerPage
}
