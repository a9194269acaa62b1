// Package naming decides the documentation names of types and members.
package naming

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"

	"github.com/kolah/restdoc/internal/decl"
)

// Translator maps declarations to documentation names. A false result means
// the member is omitted.
type Translator interface {
	TypeName(t decl.Type) string
	FieldName(f decl.Field) (string, bool)
	MethodName(m decl.Method) (string, bool)
}

// Convention is the case convention applied to member names that carry no
// explicit name.
type Convention string

const (
	ConventionField Convention = "field"
	ConventionCamel Convention = "camel"
	ConventionSnake Convention = "snake"
	ConventionKebab Convention = "kebab"
)

// ParseConvention validates a convention name.
func ParseConvention(s string) (Convention, error) {
	switch c := Convention(strings.ToLower(s)); c {
	case ConventionField, ConventionCamel, ConventionSnake, ConventionKebab:
		return c, nil
	case "":
		return ConventionCamel, nil
	default:
		return "", fmt.Errorf("unknown naming convention %q", s)
	}
}

// Apply converts a Go identifier to the convention.
func (c Convention) Apply(name string) string {
	switch c {
	case ConventionCamel:
		return strcase.ToLowerCamel(name)
	case ConventionSnake:
		return strcase.ToSnake(name)
	case ConventionKebab:
		return strcase.ToKebab(name)
	default:
		return name
	}
}

// Policy is the default Translator.
type Policy struct {
	Convention Convention
}

var _ Translator = Policy{}

// NewPolicy returns a Policy using the given convention.
func NewPolicy(c Convention) Policy {
	return Policy{Convention: c}
}

func (p Policy) TypeName(t decl.Type) string {
	if t == nil {
		return ""
	}
	return t.SimpleName()
}

func (p Policy) FieldName(f decl.Field) (string, bool) {
	markers := f.Markers()
	if !exported(f.Name()) || markers.Has(decl.MarkerIgnore) {
		return "", false
	}
	if name, ok := markers.Value(decl.MarkerName); ok && name != "" {
		return name, true
	}
	if tag, ok := markers.Value(decl.MarkerJSON); ok {
		if tag == "-" {
			return "", false
		}
		if name, _, _ := strings.Cut(tag, ","); name != "" {
			return name, true
		}
	}
	return p.Convention.Apply(f.Name()), true
}

func (p Policy) MethodName(m decl.Method) (string, bool) {
	markers := m.Markers()
	if markers.Has(decl.MarkerIgnore) {
		return "", false
	}
	name, ok := markers.Value(decl.MarkerProperty)
	if !ok {
		return "", false
	}
	if name != "" {
		return name, true
	}
	return p.Convention.Apply(stripAccessor(m.Name())), true
}

// stripAccessor removes a Get or Is prefix when it starts a new word.
func stripAccessor(name string) string {
	for _, prefix := range []string{"Get", "Is"} {
		rest, ok := strings.CutPrefix(name, prefix)
		if ok && rest != "" && unicode.IsUpper([]rune(rest)[0]) {
			return rest
		}
	}
	return name
}

func exported(name string) bool {
	for _, r := range name {
		return unicode.IsUpper(r)
	}
	return false
}
