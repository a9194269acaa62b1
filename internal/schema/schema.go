// Package schema walks a type graph and produces one model per reachable
// declared type.
package schema

import (
	"strings"

	"github.com/pb33f/libopenapi/orderedmap"

	"github.com/kolah/restdoc/internal/decl"
	"github.com/kolah/restdoc/internal/model"
	"github.com/kolah/restdoc/internal/naming"
)

// Extractor discovers the models reachable from a root type. It holds only
// configuration; every Extract call starts from an empty model set.
type Extractor struct {
	translator naming.Translator
	opaque     map[string]struct{}
}

// New returns an Extractor. Types whose qualified name is listed in
// opaqueTypes are named but never expanded.
func New(translator naming.Translator, opaqueTypes ...string) *Extractor {
	opaque := make(map[string]struct{}, len(opaqueTypes))
	for _, name := range opaqueTypes {
		opaque[name] = struct{}{}
	}
	return &Extractor{translator: translator, opaque: opaque}
}

// Extract returns the models reachable from root in discovery order.
func (e *Extractor) Extract(root decl.Type) []model.Schema {
	w := &walker{Extractor: e, set: model.NewSchemaSet()}
	w.walk(root)
	return w.set.Schemas()
}

// Opaque reports whether t is named but never modeled.
func (e *Extractor) Opaque(t decl.Type) bool {
	if t.Primitive() || t.Reserved() || t.Universal() || !t.Declared() {
		return true
	}
	_, ok := e.opaque[t.QualifiedName()]
	return ok
}

// ContainerElement returns the modeled element of a parameterized type: the
// first type argument, or the second for a type whose name ends in "Map".
func ContainerElement(t decl.Type) decl.Type {
	args := t.TypeArguments()
	switch {
	case len(args) == 0:
		return nil
	case len(args) > 1 && strings.HasSuffix(t.SimpleName(), "Map"):
		return args[1]
	default:
		return args[0]
	}
}

// Describe appends a VIEWS line to text when views are present.
func Describe(text string, views []string) string {
	if len(views) == 0 {
		return text
	}
	line := "VIEWS: " + strings.Join(views, ",")
	if text == "" {
		return line
	}
	return text + "\n" + line
}

type member struct {
	typ     decl.Type
	comment string
	markers decl.Markers
}

type walker struct {
	*Extractor
	set *model.SchemaSet
}

func (w *walker) walk(t decl.Type) {
	if t == nil || w.Opaque(t) || w.set.Has(w.translator.TypeName(t)) {
		return
	}

	members := orderedmap.New[string, member]()
	w.collect(t, members, make(map[string]bool))

	schema := model.NewSchema(w.translator.TypeName(t))
	for name, m := range members.FromOldest() {
		schema.Properties.Set(name, w.property(m))
	}
	if !w.set.Add(schema) {
		return
	}

	for _, m := range members.FromOldest() {
		w.walk(m.typ)
		if elem := ContainerElement(m.typ); elem != nil {
			w.walk(elem)
		}
	}
}

// collect gathers fields then methods of t, followed by inherited members.
// Existing keys are never overwritten.
func (w *walker) collect(t decl.Type, members *orderedmap.Map[string, member], visited map[string]bool) {
	visited[t.QualifiedName()] = true

	for _, f := range t.Fields() {
		if f.Static() || f.Type() == nil {
			continue
		}
		name, ok := w.translator.FieldName(f)
		if !ok {
			continue
		}
		if _, exists := members.Get(name); !exists {
			members.Set(name, member{typ: f.Type(), comment: f.Comment(), markers: f.Markers()})
		}
	}

	for _, m := range t.Methods() {
		if m.ReturnType() == nil {
			continue
		}
		name, ok := w.translator.MethodName(m)
		if !ok {
			continue
		}
		if _, exists := members.Get(name); !exists {
			members.Set(name, member{typ: m.ReturnType(), comment: m.Comment(), markers: m.Markers()})
		}
	}

	super := t.Superclass()
	if super != nil && !w.Opaque(super) && !visited[super.QualifiedName()] {
		w.collect(super, members, visited)
	}
}

func (w *walker) property(m member) model.Property {
	description := Describe(m.comment, m.markers.List(decl.MarkerView))
	if m.typ.Enum() {
		return model.Property{
			Enum:        append([]string{}, m.typ.EnumConstants()...),
			Description: description,
		}
	}

	p := model.Property{
		Type:        w.translator.TypeName(m.typ),
		Description: description,
	}
	if elem := ContainerElement(m.typ); elem != nil {
		p.ContainerOf = w.translator.TypeName(elem)
	}
	return p
}
