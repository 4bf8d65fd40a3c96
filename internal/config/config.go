// Package config loads the mapidoc YAML configuration file.
package config

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/mapidoc/internal/logfields"
	"git.home.luguber.info/inful/mapidoc/internal/namespace"
	"git.home.luguber.info/inful/mapidoc/internal/source"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "mapidoc.yaml"

// Config represents the application configuration.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// SourceConfig controls which files are discovered and how namespaces are read.
type SourceConfig struct {
	Extensions    []string `yaml:"extensions"`
	SkipDirs      []string `yaml:"skip_dirs"`
	Exclude       []string `yaml:"exclude,omitempty"`
	PackageMarker string   `yaml:"package_marker"`
	ClassMarker   string   `yaml:"class_marker"`
}

// OutputConfig controls the generated pages.
type OutputConfig struct {
	Directory       string `yaml:"directory"`
	MaxFilesPerPage int    `yaml:"max_files_per_page"`
	IndexTitle      string `yaml:"index_title"`
	RootTitle       string `yaml:"root_title"`
	TemplatesDir    string `yaml:"templates_dir,omitempty"`
}

// LoggingConfig sets the log level and format used when no flag overrides them.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Markers returns the namespace markers configured for the source tree.
func (c *Config) Markers() namespace.Markers {
	return namespace.Markers{Package: c.Source.PackageMarker, Class: c.Source.ClassMarker}
}

// SourceOptions returns the discovery options for the source tree.
func (c *Config) SourceOptions() source.Options {
	return source.Options{
		Extensions: c.Source.Extensions,
		SkipDirs:   c.Source.SkipDirs,
		Exclude:    c.Source.Exclude,
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads, expands, defaults and validates the configuration at path.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ferrors.ConfigError("configuration file not found").
			WithContext("path", path).
			Build()
	}
	if err != nil {
		return nil, ferrors.ConfigError("failed to read config file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}

	cfg, err := parse(data)
	if err != nil {
		return nil, ferrors.ConfigError("failed to parse config file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("Configuration loaded", logfields.Path(path))
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		loadEnvFiles()
		return Default(), nil
	}
	return Load(path)
}

func parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	dec := yaml.NewDecoder(strings.NewReader(expanded))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// Init writes an example configuration file to path.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ConfigError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).
			Build()
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return ferrors.InternalError("failed to marshal config").WithCause(err).Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ferrors.FileSystemError("failed to write config file").
			WithCause(err).
			WithContext("path", path).
			Build()
	}
	return nil
}
