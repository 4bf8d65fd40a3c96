package namespace

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/mapidoc/internal/source"
)

// Groups is an ordered partition of source files by namespace.
type Groups struct {
	order []Namespace
	files map[Namespace][]source.File
}

// Aggregate resolves every file and groups it under its namespace. Files keep
// their input order inside a group; the first resolution failure is returned.
func Aggregate(files []source.File, root string, m Markers) (*Groups, error) {
	g := &Groups{files: make(map[Namespace][]source.File)}
	for _, f := range files {
		ns, err := Resolve(f.Path, root, m)
		if err != nil {
			return nil, err
		}
		if _, seen := g.files[ns]; !seen {
			g.order = append(g.order, ns)
		}
		g.files[ns] = append(g.files[ns], f)
	}
	return g, nil
}

// Keys returns the namespaces in first-seen order.
func (g *Groups) Keys() []Namespace {
	return slices.Clone(g.order)
}

// Sorted returns the namespaces in lexicographic order of their display
// form, so Root sorts as "root".
func (g *Groups) Sorted() []Namespace {
	keys := slices.Clone(g.order)
	slices.SortStableFunc(keys, func(a, b Namespace) int {
		return strings.Compare(a.String(), b.String())
	})
	return keys
}

// Files returns the ordered files of ns, or nil when ns has no files.
func (g *Groups) Files(ns Namespace) []source.File {
	return slices.Clone(g.files[ns])
}

// Len returns the number of namespaces.
func (g *Groups) Len() int { return len(g.order) }

// FileCount returns the number of files across all namespaces.
func (g *Groups) FileCount() int {
	n := 0
	for _, files := range g.files {
		n += len(files)
	}
	return n
}
