package namespace

import (
	"strings"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/mapidoc/internal/source"
)

// Namespace is a dotted grouping key such as "pkg.sub".
type Namespace string

// Root is the namespace of files that sit under no marker directory. It is
// empty, so no marker directory (not even "+root") can resolve to it.
const Root Namespace = ""

// RootLabel is how Root is displayed and sorted.
const RootLabel = "root"

// IsRoot reports whether ns is the root sentinel.
func (ns Namespace) IsRoot() bool { return ns == Root }

// Segments splits the namespace into its dotted parts. Root has none.
func (ns Namespace) Segments() []string {
	if ns.IsRoot() {
		return nil
	}
	return strings.Split(string(ns), ".")
}

func (ns Namespace) String() string {
	if ns.IsRoot() {
		return RootLabel
	}
	return string(ns)
}

// Resolve returns the namespace of the file at path, relative to root.
// Directory components are taken in on-disk nesting order.
func Resolve(path, root string, m Markers) (Namespace, error) {
	segs, err := source.RelSegments(path, root)
	if err != nil {
		return "", err
	}

	dirs := segs[:len(segs)-1]
	parts := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		name, marked := m.Strip(dir)
		if !marked {
			continue
		}
		if name == "" {
			return "", ferrors.PathError("marker directory has no name").
				WithContext("file", path).
				WithContext("directory", dir).
				Build()
		}
		parts = append(parts, name)
	}

	if len(parts) == 0 {
		return Root, nil
	}
	return Namespace(strings.Join(parts, ".")), nil
}
