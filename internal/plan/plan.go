// Package plan runs the pure part of a generation: discover, resolve,
// aggregate, paginate and render. The result is a list of documents ready for
// writing; nothing touches the output directory here.
package plan

import (
	"context"
	"log/slog"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/mapidoc/internal/logfields"
	"git.home.luguber.info/inful/mapidoc/internal/modname"
	"git.home.luguber.info/inful/mapidoc/internal/namespace"
	"git.home.luguber.info/inful/mapidoc/internal/paging"
	"git.home.luguber.info/inful/mapidoc/internal/rst"
	"git.home.luguber.info/inful/mapidoc/internal/source"
)

// IndexFile is the name of the generated index document.
const IndexFile = rst.IndexStem + rst.Extension

// Options controls a planning run.
type Options struct {
	Source   source.Options
	Markers  namespace.Markers
	PageSize int
	Render   rst.Options
}

// Document is one rendered output file.
type Document struct {
	Name      string
	Namespace namespace.Namespace
	// Page is 0-based; Pages is the page count of the namespace.
	Page    int
	Pages   int
	Files   int
	Content string
}

// IsIndex reports whether d is the index document.
func (d Document) IsIndex() bool { return d.Name == IndexFile }

// NamespaceSummary describes how one namespace was split.
type NamespaceSummary struct {
	Namespace namespace.Namespace
	Files     int
	Pages     int
}

// Plan is the complete, deterministic output of one generation.
type Plan struct {
	Root      string
	Files     []source.File
	Groups    *namespace.Groups
	Index     Document
	Pages     []Document
	Summaries []NamespaceSummary
	Templates map[string]rst.TemplateSource
}

// Empty reports whether no source files were found.
func (p *Plan) Empty() bool { return len(p.Files) == 0 }

// Documents returns the index followed by every page, in write order.
func (p *Plan) Documents() []Document {
	if p.Empty() {
		return nil
	}
	return append([]Document{p.Index}, p.Pages...)
}

// Build plans the documents for the source tree at root. An empty tree yields
// an empty plan, not an error.
func Build(ctx context.Context, root string, opts Options) (*Plan, error) {
	if opts.Markers == (namespace.Markers{}) {
		opts.Markers = namespace.DefaultMarkers()
	}
	if err := opts.Source.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Markers.Validate(); err != nil {
		return nil, err
	}
	if _, err := paging.PageCount(0, opts.PageSize); err != nil {
		return nil, err
	}
	opts.Render.Markers = opts.Markers

	files, err := source.NewDiscovery(opts.Source).Discover(root)
	if err != nil {
		return nil, err
	}
	p := &Plan{Root: root, Files: files}
	if len(files) == 0 {
		p.Groups, _ = namespace.Aggregate(nil, root, opts.Markers)
		return p, nil
	}

	renderer, err := rst.NewRenderer(opts.Render)
	if err != nil {
		return nil, err
	}
	p.Templates = renderer.TemplateUsage()

	if p.Groups, err = namespace.Aggregate(files, root, opts.Markers); err != nil {
		return nil, err
	}
	slog.Debug("Namespaces resolved", logfields.Files(len(files)), slog.Int("namespaces", p.Groups.Len()))

	if err := checkNames(p.Groups, root, opts.Markers); err != nil {
		return nil, err
	}
	if err := checkCollisions(renderer, p.Groups, opts.PageSize); err != nil {
		return nil, err
	}

	index, err := renderer.RenderIndex(p.Groups, opts.PageSize)
	if err != nil {
		return nil, err
	}
	p.Index = Document{Name: IndexFile, Content: index}

	for _, ns := range p.Groups.Sorted() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pages, err := paging.Paginate(p.Groups.Files(ns), opts.PageSize)
		if err != nil {
			return nil, err
		}
		p.Summaries = append(p.Summaries, NamespaceSummary{
			Namespace: ns,
			Files:     len(p.Groups.Files(ns)),
			Pages:     len(pages),
		})
		for _, page := range pages {
			content, err := renderer.RenderPage(ns, page, root)
			if err != nil {
				return nil, err
			}
			p.Pages = append(p.Pages, Document{
				Name:      renderer.FileName(ns, page.Index, page.Total),
				Namespace: ns,
				Page:      page.Index,
				Pages:     page.Total,
				Files:     len(page.Items),
				Content:   content,
			})
		}
		slog.Debug("Namespace planned", logfields.Namespace(ns.String()), logfields.Pages(len(pages)))
	}
	return p, nil
}

// checkNames fails when a namespace stem or a module name would have an empty
// segment once sanitized.
func checkNames(groups *namespace.Groups, root string, m namespace.Markers) error {
	for _, ns := range groups.Sorted() {
		if err := modname.CheckNamespace(ns, m); err != nil {
			return err
		}
		for _, f := range groups.Files(ns) {
			if _, err := modname.FromPath(f.Path, root, m); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkCollisions fails when two namespaces, or a namespace and the index,
// map to the same output file.
func checkCollisions(r *rst.Renderer, groups *namespace.Groups, pageSize int) error {
	owner := make(map[string]namespace.Namespace)
	for _, ns := range groups.Sorted() {
		total, err := paging.PageCount(len(groups.Files(ns)), pageSize)
		if err != nil {
			return err
		}
		for i := range total {
			name := r.FileName(ns, i, total)
			first := IndexFile
			if name != IndexFile {
				prev, taken := owner[name]
				if !taken {
					owner[name] = ns
					continue
				}
				first = describe(prev)
			}
			return ferrors.ValidationError("namespaces map to the same output file").
				WithCause(ErrStemCollision).
				WithContext("file", name).
				WithContext("first", first).
				WithContext("second", describe(ns)).
				Build()
		}
	}
	return nil
}

func describe(ns namespace.Namespace) string {
	if ns.IsRoot() {
		return "global namespace"
	}
	return "namespace " + string(ns)
}
