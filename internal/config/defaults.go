package config

import (
	"slices"

	"git.home.luguber.info/inful/mapidoc/internal/namespace"
	"git.home.luguber.info/inful/mapidoc/internal/rst"
	"git.home.luguber.info/inful/mapidoc/internal/source"
)

const (
	DefaultOutputDir       = "docs/source"
	DefaultMaxFilesPerPage = 50
)

// applyDefaults fills unset fields. A negative page size is left for Validate.
func (c *Config) applyDefaults() {
	if len(c.Source.Extensions) == 0 {
		c.Source.Extensions = slices.Clone(source.DefaultExtensions)
	}
	if c.Source.SkipDirs == nil {
		c.Source.SkipDirs = slices.Clone(source.DefaultSkipDirs)
	}
	markers := namespace.DefaultMarkers()
	if c.Source.PackageMarker == "" {
		c.Source.PackageMarker = markers.Package
	}
	if c.Source.ClassMarker == "" {
		c.Source.ClassMarker = markers.Class
	}

	if c.Output.Directory == "" {
		c.Output.Directory = DefaultOutputDir
	}
	if c.Output.MaxFilesPerPage == 0 {
		c.Output.MaxFilesPerPage = DefaultMaxFilesPerPage
	}
	if c.Output.IndexTitle == "" {
		c.Output.IndexTitle = rst.DefaultIndexTitle
	}
	if c.Output.RootTitle == "" {
		c.Output.RootTitle = rst.DefaultRootTitle
	}

	if c.Logging.Level == "" {
		c.Logging.Level = string(LogLevelInfo)
	}
	if c.Logging.Format == "" {
		c.Logging.Format = string(LogFormatText)
	}
}
