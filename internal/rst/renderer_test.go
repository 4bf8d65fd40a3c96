package rst

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/mapidoc/internal/namespace"
	"git.home.luguber.info/inful/mapidoc/internal/paging"
	"git.home.luguber.info/inful/mapidoc/internal/source"
)

const root = "src"

func files(rels ...string) []source.File {
	out := make([]source.File, 0, len(rels))
	for _, rel := range rels {
		out = append(out, source.File{Path: filepath.Join(root, filepath.FromSlash(rel)), Rel: rel})
	}
	return out
}

func newRenderer(t *testing.T, opts Options) *Renderer {
	t.Helper()
	r, err := NewRenderer(opts)
	require.NoError(t, err)
	return r
}

func TestRenderPageSingle(t *testing.T) {
	r := newRenderer(t, Options{})
	page := paging.Page[source.File]{Index: 0, Total: 1, Items: files("+pkg/a.m", "+pkg/2024report.m")}

	got, err := r.RenderPage("pkg", page, root)
	require.NoError(t, err)

	want := `pkg
===

.. automodule:: pkg.a
   :members:
   :undoc-members:
   :show-inheritance:

.. automodule:: pkg.m_2024report
   :members:
   :undoc-members:
   :show-inheritance:
`
	assert.Equal(t, want, got)
}

func TestRenderPagePaginated(t *testing.T) {
	r := newRenderer(t, Options{})
	page := paging.Page[source.File]{Index: 1, Total: 3, Items: files("+pkg/@Cls/draw.m")}

	got, err := r.RenderPage("pkg.Cls", page, root)
	require.NoError(t, err)

	want := `pkg.Cls (Page 2/3)
==================

.. contents:: Contents
   :local:
   :depth: 1

Other pages:

* :doc:` + "`pkg_Cls_page1`" + `
* :doc:` + "`pkg_Cls_page3`" + `

.. automodule:: pkg.Cls.draw
   :members:
   :undoc-members:
   :show-inheritance:
`
	assert.Equal(t, want, got)
}

func TestRenderPageRootTitle(t *testing.T) {
	r := newRenderer(t, Options{})
	got, err := r.RenderPage(namespace.Root, paging.Page[source.File]{Index: 0, Total: 1, Items: files("_folder/files/f.m")}, root)
	require.NoError(t, err)
	assert.Contains(t, got, "Global Namespace\n================\n")
	assert.Contains(t, got, ".. automodule:: _folder.files.f\n")

	r = newRenderer(t, Options{RootTitle: "Root Module"})
	got, err = r.RenderPage(namespace.Root, paging.Page[source.File]{Index: 0, Total: 2, Items: files("f.m")}, root)
	require.NoError(t, err)
	assert.Contains(t, got, "Root Module (Page 1/2)\n======================\n")
	assert.Contains(t, got, "* :doc:`root_page2`\n")
}

func TestRenderPageUnderlineCountsRunes(t *testing.T) {
	r := newRenderer(t, Options{})
	got, err := r.RenderPage("café", paging.Page[source.File]{Index: 0, Total: 1, Items: files("+café/f.m")}, root)
	require.NoError(t, err)
	assert.Contains(t, got, "café\n====\n")
}

func TestRenderPageOutsideRoot(t *testing.T) {
	r := newRenderer(t, Options{})
	page := paging.Page[source.File]{Index: 0, Total: 1, Items: []source.File{{Path: filepath.Join("other", "f.m")}}}
	_, err := r.RenderPage("pkg", page, root)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryPath))
}

func TestRenderIndex(t *testing.T) {
	r := newRenderer(t, Options{})
	g, err := namespace.Aggregate(files("zeta.m", "+pkg/a.m", "+pkg/b.m", "+pkg/c.m", "+alpha/x.m"), root, namespace.DefaultMarkers())
	require.NoError(t, err)

	got, err := r.RenderIndex(g, 2)
	require.NoError(t, err)

	want := "MATLAB API Documentation\n" +
		"========================\n" +
		"\n" +
		".. toctree::\n" +
		"   :maxdepth: 2\n" +
		"   :caption: Modules:\n" +
		"\n" +
		"   alpha\n" +
		"   pkg_page1\n" +
		"   pkg_page2\n" +
		"   root\n" +
		"\n" +
		"Indices and tables\n" +
		"==================\n" +
		"\n" +
		"* :ref:`genindex`\n" +
		"* :ref:`modindex`\n" +
		"* :ref:`search`\n"
	assert.Equal(t, want, got)
}

func TestRenderIndexCustomTitleAndBadSize(t *testing.T) {
	r := newRenderer(t, Options{IndexTitle: "Toolbox API"})
	g, err := namespace.Aggregate(files("a.m"), root, namespace.DefaultMarkers())
	require.NoError(t, err)

	got, err := r.RenderIndex(g, 10)
	require.NoError(t, err)
	assert.Contains(t, got, "Toolbox API\n===========\n")

	_, err = r.RenderIndex(g, 0)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestStemAndFileName(t *testing.T) {
	r := newRenderer(t, Options{})
	assert.Equal(t, "pkg_sub", r.Stem("pkg.sub", 0, 1))
	assert.Equal(t, "pkg_sub_page3", r.Stem("pkg.sub", 2, 3))
	assert.Equal(t, "root.rst", r.FileName(namespace.Root, 0, 1))
	assert.Equal(t, "my_pkg_page1.rst", r.FileName("my-pkg", 0, 2))
}

func TestTemplateOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.rst.tmpl"),
		[]byte("{{ .Title }}|{{ range .Modules }}{{ . }};{{ end }}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.rst.tmpl"), []byte("   \n"), 0o644))

	r := newRenderer(t, Options{TemplatesDir: dir})

	usage := r.TemplateUsage()
	assert.Equal(t, TemplateSource{Source: "file", Path: filepath.Join(dir, "page.rst.tmpl")}, usage["page"])
	assert.Equal(t, TemplateSource{Source: "embedded"}, usage["index"])

	got, err := r.RenderPage("pkg", paging.Page[source.File]{Index: 0, Total: 1, Items: files("+pkg/a.m")}, root)
	require.NoError(t, err)
	assert.Equal(t, "pkg|pkg.a;\n", got)
}

func TestTemplateOverrideErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.rst.tmpl"), []byte("{{ .Title "), 0o644))
	_, err := NewRenderer(Options{TemplatesDir: dir})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.rst.tmpl"), []byte("{{ .NoSuchField }}"), 0o644))
	r := newRenderer(t, Options{TemplatesDir: dir})
	_, err = r.RenderPage("pkg", paging.Page[source.File]{Index: 0, Total: 1, Items: files("+pkg/a.m")}, root)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestUnderline(t *testing.T) {
	assert.Equal(t, "===", underline("pkg"))
	assert.Equal(t, "", underline(""))
}
