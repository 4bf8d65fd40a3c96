package namespace

import (
	"strings"
	"unicode/utf8"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
)

// Markers holds the directory-name prefixes that introduce namespace segments.
type Markers struct {
	Package string
	Class   string
}

// DefaultMarkers returns the MATLAB conventions: "+" for packages, "@" for class folders.
func DefaultMarkers() Markers {
	return Markers{Package: "+", Class: "@"}
}

// Validate requires each marker to be exactly one character and the two to differ.
func (m Markers) Validate() error {
	for kind, v := range map[string]string{"package_marker": m.Package, "class_marker": m.Class} {
		if utf8.RuneCountInString(v) != 1 {
			return ferrors.ConfigError("namespace marker must be a single character").
				WithContext(kind, v).
				Build()
		}
	}
	if m.Package == m.Class {
		return ferrors.ConfigError("package and class markers must differ").
			WithContext("package_marker", m.Package).
			WithContext("class_marker", m.Class).
			Build()
	}
	return nil
}

// Strip reports whether name carries a marker prefix and returns it without the prefix.
func (m Markers) Strip(name string) (string, bool) {
	for _, prefix := range []string{m.Package, m.Class} {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return name[len(prefix):], true
		}
	}
	return name, false
}

// Remove deletes every occurrence of either marker from s.
func (m Markers) Remove(s string) string {
	for _, marker := range []string{m.Package, m.Class} {
		if marker != "" {
			s = strings.ReplaceAll(s, marker, "")
		}
	}
	return s
}
