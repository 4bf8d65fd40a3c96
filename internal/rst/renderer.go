package rst

import (
	"fmt"
	"maps"
	"strings"
	"text/template"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/mapidoc/internal/modname"
	"git.home.luguber.info/inful/mapidoc/internal/namespace"
	"git.home.luguber.info/inful/mapidoc/internal/paging"
	"git.home.luguber.info/inful/mapidoc/internal/source"
)

const (
	DefaultIndexTitle = "MATLAB API Documentation"
	DefaultRootTitle  = "Global Namespace"

	// IndexStem is the stem of the index page. No namespace page may use it.
	IndexStem = "index"
	Extension = ".rst"
)

// Options configures a Renderer. Zero values fall back to the defaults.
type Options struct {
	IndexTitle   string
	RootTitle    string
	TemplatesDir string
	Markers      namespace.Markers
}

// PageData is the template input for one namespace page.
type PageData struct {
	Namespace  namespace.Namespace
	Title      string
	Paginated  bool
	OtherPages []string
	Modules    []modname.Name
}

// IndexData is the template input for the index page.
type IndexData struct {
	Title   string
	Entries []string
}

// Renderer turns namespace pages and groups into reST documents.
type Renderer struct {
	opts  Options
	page  *template.Template
	index *template.Template
	usage map[string]TemplateSource
}

// NewRenderer parses the page and index templates.
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.IndexTitle == "" {
		opts.IndexTitle = DefaultIndexTitle
	}
	if opts.RootTitle == "" {
		opts.RootTitle = DefaultRootTitle
	}
	if opts.Markers == (namespace.Markers{}) {
		opts.Markers = namespace.DefaultMarkers()
	}

	r := &Renderer{opts: opts, usage: make(map[string]TemplateSource, 2)}
	var err error
	var src TemplateSource
	if r.page, src, err = parseTemplate(opts.TemplatesDir, pageTemplate); err != nil {
		return nil, err
	}
	r.usage["page"] = src
	if r.index, src, err = parseTemplate(opts.TemplatesDir, indexTemplate); err != nil {
		return nil, err
	}
	r.usage["index"] = src
	return r, nil
}

// TemplateUsage reports the source of the "page" and "index" templates.
func (r *Renderer) TemplateUsage() map[string]TemplateSource {
	return maps.Clone(r.usage)
}

// Stem returns the output stem of page index (0-based) out of total pages.
func (r *Renderer) Stem(ns namespace.Namespace, index, total int) string {
	base := modname.NamespaceStem(ns, r.opts.Markers)
	if total > 1 {
		return fmt.Sprintf("%s_page%d", base, index+1)
	}
	return base
}

// FileName returns Stem with the .rst extension.
func (r *Renderer) FileName(ns namespace.Namespace, index, total int) string {
	return r.Stem(ns, index, total) + Extension
}

// Title returns the heading of a namespace page.
func (r *Renderer) Title(ns namespace.Namespace, index, total int) string {
	title := string(ns)
	if ns.IsRoot() {
		title = r.opts.RootTitle
	}
	if total > 1 {
		title = fmt.Sprintf("%s (Page %d/%d)", title, index+1, total)
	}
	return title
}

// RenderPage renders one page of ns. Module names are derived from each
// file's path relative to root.
func (r *Renderer) RenderPage(ns namespace.Namespace, page paging.Page[source.File], root string) (string, error) {
	data := PageData{
		Namespace: ns,
		Title:     r.Title(ns, page.Index, page.Total),
		Paginated: page.Paginated(),
		Modules:   make([]modname.Name, 0, len(page.Items)),
	}
	if data.Paginated {
		for i := range page.Total {
			if i != page.Index {
				data.OtherPages = append(data.OtherPages, r.Stem(ns, i, page.Total))
			}
		}
	}
	for _, f := range page.Items {
		name, err := modname.FromPath(f.Path, root, r.opts.Markers)
		if err != nil {
			return "", err
		}
		data.Modules = append(data.Modules, name)
	}
	return r.execute(r.page, data)
}

// RenderIndex renders the index page. Namespaces are listed in lexicographic
// order, one toctree entry per page.
func (r *Renderer) RenderIndex(groups *namespace.Groups, pageSize int) (string, error) {
	data := IndexData{Title: r.opts.IndexTitle}
	for _, ns := range groups.Sorted() {
		total, err := paging.PageCount(len(groups.Files(ns)), pageSize)
		if err != nil {
			return "", err
		}
		for i := range total {
			data.Entries = append(data.Entries, r.Stem(ns, i, total))
		}
	}
	return r.execute(r.index, data)
}

func (r *Renderer) execute(tpl *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := tpl.Execute(&b, data); err != nil {
		return "", ferrors.ConfigError("template execution failed").
			WithCause(err).
			WithContext("template", tpl.Name()).
			Build()
	}
	return b.String(), nil
}
