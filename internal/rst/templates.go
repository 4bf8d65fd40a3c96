package rst

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode/utf8"

	ferrors "git.home.luguber.info/inful/mapidoc/internal/foundation/errors"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

const (
	pageTemplate  = "page.rst.tmpl"
	indexTemplate = "index.rst.tmpl"
)

// TemplateSource records where a template body was loaded from.
type TemplateSource struct {
	Source string // embedded | file
	Path   string
}

var funcs = template.FuncMap{
	"underline": underline,
}

// underline returns a heading rule as wide as title in runes.
func underline(title string) string {
	return strings.Repeat("=", utf8.RuneCountInString(title))
}

// loadTemplate returns the override body from dir when present and non-blank,
// otherwise the embedded default.
func loadTemplate(dir, name string) (string, TemplateSource, error) {
	if dir != "" {
		p := filepath.Join(dir, name)
		b, err := os.ReadFile(p)
		switch {
		case err == nil && strings.TrimSpace(string(b)) != "":
			return string(b), TemplateSource{Source: "file", Path: p}, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", TemplateSource{}, ferrors.ConfigError("cannot read template override").
				WithCause(err).
				WithContext("path", p).
				Build()
		}
	}

	b, err := embeddedTemplates.ReadFile("templates/" + name)
	if err != nil {
		panic(fmt.Sprintf("embedded default template missing for %s: %v", name, err))
	}
	return string(b), TemplateSource{Source: "embedded"}, nil
}

func parseTemplate(dir, name string) (*template.Template, TemplateSource, error) {
	raw, src, err := loadTemplate(dir, name)
	if err != nil {
		return nil, src, err
	}
	tpl, err := template.New(name).Funcs(funcs).Parse(raw)
	if err != nil {
		return nil, src, ferrors.ConfigError("invalid template").
			WithCause(err).
			WithContext("template", name).
			WithContext("source", src.Source).
			Build()
	}
	return tpl, src, nil
}
