package namespace

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/mapidoc/internal/source"
)

func TestResolve(t *testing.T) {
	root := filepath.Join("work", "src")
	m := DefaultMarkers()

	tests := []struct {
		rel  string
		want Namespace
	}{
		{"f.m", Root},
		{"_folder/files/f.m", Root},
		{"+pkg/f.m", "pkg"},
		{"+pkg/+sub/f.m", "pkg.sub"},
		{"+pkg/@Cls/f.m", "pkg.Cls"},
		{"@Cls/Cls.m", "Cls"},
		{"tools/+pkg/helpers/+inner/f.m", "pkg.inner"},
		{"+pkg/@Cls/+odd/f.m", "pkg.Cls.odd"},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			ns, err := Resolve(filepath.Join(root, filepath.FromSlash(tt.rel)), root, m)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ns)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	root := filepath.Join("work", "src")
	m := DefaultMarkers()

	_, err := Resolve(filepath.Join("work", "elsewhere", "f.m"), root, m)
	require.Error(t, err)
	assert.ErrorIs(t, err, source.ErrOutsideRoot)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryPath))

	_, err = Resolve(filepath.Join(root, "+", "f.m"), root, m)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryPath))
}

func TestResolveCustomMarkers(t *testing.T) {
	root := "src"
	ns, err := Resolve(filepath.Join(root, "~pkg", "+plain", "#Cls", "f.m"), root, Markers{Package: "~", Class: "#"})
	require.NoError(t, err)
	assert.Equal(t, Namespace("pkg.Cls"), ns)
}

func TestResolvePackageNamedRoot(t *testing.T) {
	root := "src"
	ns, err := Resolve(filepath.Join(root, "+root", "f.m"), root, DefaultMarkers())
	require.NoError(t, err)
	assert.Equal(t, Namespace("root"), ns)
	assert.False(t, ns.IsRoot())
	assert.NotEqual(t, Root, ns)
}

func TestNamespaceHelpers(t *testing.T) {
	assert.True(t, Root.IsRoot())
	assert.False(t, Namespace("pkg").IsRoot())
	assert.Equal(t, "root", Root.String())
	assert.Empty(t, Root.Segments())
	assert.Equal(t, []string{"pkg", "sub", "Cls"}, Namespace("pkg.sub.Cls").Segments())
	assert.Equal(t, "pkg.sub", Namespace("pkg.sub").String())
}

func TestMarkersValidate(t *testing.T) {
	require.NoError(t, DefaultMarkers().Validate())

	for _, m := range []Markers{
		{Package: "", Class: "@"},
		{Package: "++", Class: "@"},
		{Package: "+", Class: "+"},
	} {
		err := m.Validate()
		require.Error(t, err, "%+v", m)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
	}
}

func TestMarkersStripAndRemove(t *testing.T) {
	m := DefaultMarkers()

	name, ok := m.Strip("+pkg")
	assert.True(t, ok)
	assert.Equal(t, "pkg", name)

	name, ok = m.Strip("@Cls")
	assert.True(t, ok)
	assert.Equal(t, "Cls", name)

	name, ok = m.Strip("plain")
	assert.False(t, ok)
	assert.Equal(t, "plain", name)

	assert.Equal(t, "pkg.Cls.f", m.Remove("+pkg.@Cls.f"))
}

func TestAggregate(t *testing.T) {
	root := filepath.Join("work", "src")
	rels := []string{
		"+pkg/a.m",
		"+pkg/@Cls/Cls.m",
		"+pkg/b.m",
		"top.m",
		"+pkg/@Cls/draw.m",
		"_folder/files/f.m",
	}
	files := make([]source.File, 0, len(rels))
	for _, rel := range rels {
		files = append(files, source.File{Path: filepath.Join(root, filepath.FromSlash(rel)), Rel: rel})
	}

	g, err := Aggregate(files, root, DefaultMarkers())
	require.NoError(t, err)

	assert.Equal(t, []Namespace{"pkg", "pkg.Cls", Root}, g.Keys())
	assert.Equal(t, []Namespace{"pkg", "pkg.Cls", Root}, g.Sorted())
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, len(files), g.FileCount())

	relsOf := func(ns Namespace) []string {
		var out []string
		for _, f := range g.Files(ns) {
			out = append(out, f.Rel)
		}
		return out
	}
	assert.Equal(t, []string{"+pkg/a.m", "+pkg/b.m"}, relsOf("pkg"))
	assert.Equal(t, []string{"+pkg/@Cls/Cls.m", "+pkg/@Cls/draw.m"}, relsOf("pkg.Cls"))
	assert.Equal(t, []string{"top.m", "_folder/files/f.m"}, relsOf(Root))
	assert.Nil(t, g.Files("missing"))
}

func TestAggregateEmptyAndFailure(t *testing.T) {
	g, err := Aggregate(nil, "src", DefaultMarkers())
	require.NoError(t, err)
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, g.FileCount())

	_, err = Aggregate([]source.File{{Path: filepath.Join("other", "f.m")}}, "src", DefaultMarkers())
	require.Error(t, err)
	assert.ErrorIs(t, err, source.ErrOutsideRoot)
}
