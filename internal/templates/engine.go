package templates

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"text/template"
)

type Engine interface {
	Execute(w io.Writer, name string, data any) error
}

// TextTemplateEngine executes text/template files loaded from an embedded
// set, optionally overridden by same-named files in a custom directory.
type TextTemplateEngine struct {
	templates *template.Template
	funcs     template.FuncMap
	embedded  fs.FS
	customDir string
}

func NewEngine(embedded fs.FS, customDir string, funcs template.FuncMap) (*TextTemplateEngine, error) {
	e := &TextTemplateEngine{
		embedded:  embedded,
		customDir: customDir,
		funcs:     funcs,
	}
	if err := e.load(); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *TextTemplateEngine) load() error {
	e.templates = template.New("").Funcs(e.funcs)

	if err := e.parseFS(e.embedded, "embedded"); err != nil {
		return fmt.Errorf("loading embedded templates: %w", err)
	}

	if e.customDir != "" {
		err := e.parseFS(os.DirFS(e.customDir), "custom")
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading custom templates: %w", err)
		}
	}

	return nil
}

// parseFS parses every .tmpl file of fsys. A template replaces any earlier
// one with the same name.
func (e *TextTemplateEngine) parseFS(fsys fs.FS, origin string) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".tmpl") {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading %s template %s: %w", origin, p, err)
		}
		name := strings.TrimPrefix(path.Clean(p), "templates/")
		if _, err := e.templates.New(name).Parse(string(content)); err != nil {
			return fmt.Errorf("parsing %s template %s: %w", origin, p, err)
		}
		return nil
	})
}

func (e *TextTemplateEngine) Execute(w io.Writer, name string, data any) error {
	tmpl := e.templates.Lookup(name)
	if tmpl == nil {
		return fmt.Errorf("template not found: %s", name)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}
	return nil
}
