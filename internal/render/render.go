// Package render serializes documentation graphs.
package render

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/kolah/restdoc/internal/model"
	"github.com/kolah/restdoc/internal/templates"
	embeddedtmpl "github.com/kolah/restdoc/templates"
)

type Format string

const (
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatYAML, FormatJSON, FormatMarkdown:
		return f, nil
	case "":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format: %s", s)
	}
}

// Extension returns the conventional file extension of f.
func (f Format) Extension() string {
	switch f {
	case FormatJSON:
		return ".json"
	case FormatMarkdown:
		return ".md"
	default:
		return ".yaml"
	}
}

type Renderer struct {
	engine templates.Engine
}

// New returns a Renderer. Templates found in templateDir replace the
// embedded ones with the same name.
func New(templateDir string) (*Renderer, error) {
	engine, err := templates.NewEngine(embeddedtmpl.FS, templateDir, Funcs())
	if err != nil {
		return nil, fmt.Errorf("creating template engine: %w", err)
	}
	return &Renderer{engine: engine}, nil
}

// Document writes doc to w.
func (r *Renderer) Document(w io.Writer, format Format, doc *model.Document) error {
	switch format {
	case FormatMarkdown:
		return r.engine.Execute(w, "document.md.tmpl", doc)
	case FormatJSON:
		return encodeJSON(w, jsonDocumentOf(doc))
	default:
		return encodeYAML(w, documentNode(doc))
	}
}

// Schemas writes a model list to w.
func (r *Renderer) Schemas(w io.Writer, format Format, schemas []model.Schema) error {
	switch format {
	case FormatMarkdown:
		return r.engine.Execute(w, "models.md.tmpl", schemas)
	case FormatJSON:
		return encodeJSON(w, jsonModelList{Models: jsonModelsOf(schemas)})
	default:
		return encodeYAML(w, mapping(pair("models", modelsNode(schemas))))
	}
}

// NamedProperty is a schema property together with its name.
type NamedProperty struct {
	Name     string
	Property model.Property
}

// Funcs returns the functions available to output templates.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"cell":         Cell,
		"properties":   Properties,
		"propertyType": PropertyType,
	}
}

// Cell makes text safe for a single markdown table cell.
func Cell(text string) string {
	text = strings.ReplaceAll(text, "|", `\|`)
	return strings.ReplaceAll(text, "\n", "<br>")
}

// Properties lists the properties of s in order.
func Properties(s model.Schema) []NamedProperty {
	var result []NamedProperty
	if s.Properties == nil {
		return result
	}
	for name, p := range s.Properties.FromOldest() {
		result = append(result, NamedProperty{Name: name, Property: p})
	}
	return result
}

// PropertyType formats the type of p for display.
func PropertyType(p model.Property) string {
	switch {
	case p.IsEnum():
		return "enum(" + strings.Join(p.Enum, ", ") + ")"
	case p.ContainerOf != "":
		return p.Type + "[" + p.ContainerOf + "]"
	default:
		return p.Type
	}
}
