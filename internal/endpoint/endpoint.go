// Package endpoint turns one operation declaration into an endpoint
// descriptor and collects the models its signature reaches.
package endpoint

import (
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/kolah/restdoc/internal/decl"
	"github.com/kolah/restdoc/internal/model"
	"github.com/kolah/restdoc/internal/naming"
	"github.com/kolah/restdoc/internal/schema"
)

// AnyRole is the role value of operations open to everyone.
const AnyRole = "Any"

var responsePattern = regexp.MustCompile(`(\d+) (.+)`)

// bindings lists the request binding markers in resolution order.
var bindings = []struct {
	marker string
	kind   model.ParameterKind
}{
	{decl.MarkerPath, model.KindPath},
	{decl.MarkerQuery, model.KindQuery},
	{decl.MarkerHeader, model.KindHeader},
	{decl.MarkerForm, model.KindForm},
}

type Options struct {
	// ParseModels enables model expansion of parameter and return types.
	ParseModels bool
	// ResponseTags are the documentation tag names read as response messages.
	ResponseTags []string
	// ExcludeMarkers force a parameter out of the descriptor.
	ExcludeMarkers []string
	// ShadowType is the qualified name of the metadata shadow parameter type.
	ShadowType string
	Logger     *slog.Logger
}

// Extractor builds endpoint descriptors. Models discovered by every Extract
// call accumulate in the extractor; use one extractor per operation to keep
// model sets separate.
type Extractor struct {
	opts       Options
	translator naming.Translator
	schemas    *schema.Extractor
	models     *model.SchemaSet
	logger     *slog.Logger
}

func New(translator naming.Translator, schemas *schema.Extractor, opts Options) *Extractor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Extractor{
		opts:       opts,
		translator: translator,
		schemas:    schemas,
		models:     model.NewSchemaSet(),
		logger:     logger,
	}
}

// Models returns the models discovered so far in discovery order.
func (e *Extractor) Models() []model.Schema {
	return e.models.Schemas()
}

// Extract returns the descriptor of op, or false when op carries no verb
// marker.
func (e *Extractor) Extract(basePath string, op decl.Operation) (*model.Endpoint, bool) {
	markers := op.Markers()
	method, ok := Verb(markers)
	if !ok {
		return nil, false
	}

	path, _ := markers.Value(decl.MarkerPath)
	endpoint := &model.Endpoint{
		Method: method,
		Name:   op.Name(),
		Path:   basePath + path,
	}

	comments := op.ParamComments()
	for _, p := range op.Parameters() {
		kind, name, ok := e.include(method, p)
		if !ok {
			e.logger.Debug("parameter skipped", "operation", op.Name(), "parameter", p.Name())
			continue
		}
		e.expand(p.Type())
		endpoint.Parameters = append(endpoint.Parameters, model.Parameter{
			Kind:        kind,
			Name:        name,
			Description: comments[p.Name()],
			Type:        e.translator.TypeName(p.Type()),
		})
	}

	endpoint.Responses = e.responses(op)
	endpoint.ReturnType = e.returnType(op.ReturnType())

	roles := Roles(markers, op.EnclosingMarkers())
	endpoint.Summary = summary(op.FirstSentence(), roles)
	endpoint.Description = description(op.Comment(), op.FirstSentence(), roles, markers.List(decl.MarkerView))

	return endpoint, true
}

// include decides whether p is documented and with which kind and name.
func (e *Extractor) include(method model.Method, p decl.Parameter) (model.ParameterKind, string, bool) {
	if t := p.Type(); t != nil && e.opts.ShadowType != "" && t.QualifiedName() == e.opts.ShadowType {
		return "", "", false
	}

	markers := p.Markers()
	if markers.HasAny(e.opts.ExcludeMarkers...) {
		return "", "", false
	}

	for _, b := range bindings {
		if value, ok := markers.Value(b.marker); ok {
			if value == "" {
				value = p.Name()
			}
			return b.kind, value, true
		}
	}

	// Implicit body rule: a parameter with no markers at all on a POST
	// operation is the request body.
	if len(markers) == 0 && method == model.MethodPost {
		return model.KindBody, p.Name(), true
	}
	return "", "", false
}

func (e *Extractor) responses(op decl.Operation) []model.Response {
	var responses []model.Response
	for _, tagName := range e.opts.ResponseTags {
		for _, tag := range op.Tags(tagName) {
			match := responsePattern.FindStringSubmatch(tag.Text)
			if match == nil {
				continue
			}
			code, err := strconv.Atoi(match[1])
			if err != nil {
				continue
			}
			responses = append(responses, model.Response{Code: code, Message: match[2]})
		}
	}
	return responses
}

func (e *Extractor) returnType(t decl.Type) string {
	if t == nil {
		return ""
	}
	name := e.translator.TypeName(t)
	e.expand(t)

	if args := t.TypeArguments(); isCollection(name) && len(args) > 0 {
		elem := args[0]
		name += "[" + e.translator.TypeName(elem) + "]"
		e.expand(elem)
	}
	return name
}

func (e *Extractor) expand(t decl.Type) {
	if !e.opts.ParseModels || t == nil {
		return
	}
	e.models.AddAll(e.schemas.Extract(t))
}

// Verb returns the first verb marker present in lookup order.
func Verb(markers decl.Markers) (model.Method, bool) {
	for _, m := range model.Methods {
		if markers.Has(strings.ToLower(string(m))) {
			return m, true
		}
	}
	return "", false
}

// Roles resolves the required roles of an operation, falling back to the
// enclosing resource and then to AnyRole.
func Roles(operation, enclosing decl.Markers) string {
	for _, markers := range []decl.Markers{operation, enclosing} {
		if markers.Has(decl.MarkerPermitAll) {
			return AnyRole
		}
		if value, ok := markers.Value(decl.MarkerRoles); ok {
			return value
		}
	}
	return AnyRole
}

func isCollection(name string) bool {
	return slices.Contains([]string{"List", "Set"}, name)
}

func summary(first, roles string) string {
	auth := "Yes"
	if roles == AnyRole {
		auth = "No"
	}
	return strings.TrimSpace(first + " Auth is required: " + auth)
}

func description(comment, first, roles string, views []string) string {
	if first != "" {
		comment = strings.ReplaceAll(comment, first, "")
	}
	var b strings.Builder
	if text := strings.TrimSpace(comment); text != "" {
		b.WriteString(text)
		b.WriteString("\n")
	}
	b.WriteString("ROLES: " + roles)
	return schema.Describe(b.String(), views)
}
