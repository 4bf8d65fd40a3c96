package config

import (
	"strings"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
)

// Validate checks the configuration after defaults have been applied.
func (c *Config) Validate() error {
	if c.Output.MaxFilesPerPage <= 0 {
		return ferrors.ConfigError("max_files_per_page must be a positive integer").
			WithContext("max_files_per_page", c.Output.MaxFilesPerPage).
			Build()
	}
	if len(c.Source.Extensions) == 0 {
		return ferrors.ConfigError("at least one source extension is required").Build()
	}
	for _, ext := range c.Source.Extensions {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
			return ferrors.ConfigError("source extension must start with a dot").
				WithContext("extension", ext).
				Build()
		}
	}
	if err := c.SourceOptions().Validate(); err != nil {
		return err
	}
	if err := c.Markers().Validate(); err != nil {
		return err
	}
	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		return err
	}
	if _, err := ParseLogFormat(c.Logging.Format); err != nil {
		return err
	}
	return nil
}
