// Package decltest provides in-memory declarations for tests.
package decltest

import (
	"github.com/kolah/restdoc/internal/decl"
)

// Type is a mutable in-memory decl.Type. Cyclic graphs are built by
// assigning fields after construction.
type Type struct {
	Qualified string
	Simple    string
	IsPrim    bool
	IsAny     bool
	IsRes     bool
	Undecl    bool
	FieldList []*Field
	Methods_  []*Method
	Super     *Type
	Args      []*Type
	Constants []string
	Marks     decl.Markers
}

var _ decl.Type = (*Type)(nil)

// Struct returns a declared type in package pkg.
func Struct(pkg, name string, fields ...*Field) *Type {
	return &Type{Qualified: pkg + "." + name, Simple: name, FieldList: fields}
}

// Primitive returns a primitive type.
func Primitive(name string) *Type {
	return &Type{Qualified: name, Simple: name, IsPrim: true}
}

// Enum returns a declared enumeration.
func Enum(pkg, name string, constants ...string) *Type {
	return &Type{Qualified: pkg + "." + name, Simple: name, Constants: constants}
}

// Generic returns an undeclared container type such as List[T].
func Generic(name string, args ...*Type) *Type {
	return &Type{Qualified: name, Simple: name, Undecl: true, Args: args}
}

func (t *Type) QualifiedName() string { return t.Qualified }
func (t *Type) SimpleName() string    { return t.Simple }
func (t *Type) Primitive() bool       { return t.IsPrim }
func (t *Type) Universal() bool       { return t.IsAny }
func (t *Type) Reserved() bool        { return t.IsRes }
func (t *Type) Declared() bool        { return !t.Undecl && !t.IsPrim }
func (t *Type) Enum() bool            { return t.Constants != nil }
func (t *Type) EnumConstants() []string {
	return t.Constants
}
func (t *Type) Markers() decl.Markers { return t.Marks }

func (t *Type) Fields() []decl.Field {
	fields := make([]decl.Field, 0, len(t.FieldList))
	for _, f := range t.FieldList {
		fields = append(fields, f)
	}
	return fields
}

func (t *Type) Methods() []decl.Method {
	methods := make([]decl.Method, 0, len(t.Methods_))
	for _, m := range t.Methods_ {
		methods = append(methods, m)
	}
	return methods
}

func (t *Type) Superclass() decl.Type {
	if t.Super == nil {
		return nil
	}
	return t.Super
}

func (t *Type) TypeArguments() []decl.Type {
	args := make([]decl.Type, 0, len(t.Args))
	for _, a := range t.Args {
		args = append(args, a)
	}
	return args
}

// With appends fields and returns t.
func (t *Type) With(fields ...*Field) *Type {
	t.FieldList = append(t.FieldList, fields...)
	return t
}

type Field struct {
	FieldName string
	FieldType *Type
	IsStatic  bool
	Doc       string
	Marks     decl.Markers
}

var _ decl.Field = (*Field)(nil)

// NewField returns a field with optional markers.
func NewField(name string, typ *Type, markers ...decl.Marker) *Field {
	return &Field{FieldName: name, FieldType: typ, Marks: markers}
}

func (f *Field) Name() string          { return f.FieldName }
func (f *Field) Static() bool          { return f.IsStatic }
func (f *Field) Comment() string       { return f.Doc }
func (f *Field) Markers() decl.Markers { return f.Marks }

func (f *Field) Type() decl.Type {
	if f.FieldType == nil {
		return nil
	}
	return f.FieldType
}

type Method struct {
	MethodName string
	Returns    *Type
	Doc        string
	Marks      decl.Markers
}

var _ decl.Method = (*Method)(nil)

func (m *Method) Name() string          { return m.MethodName }
func (m *Method) Comment() string       { return m.Doc }
func (m *Method) Markers() decl.Markers { return m.Marks }

func (m *Method) ReturnType() decl.Type {
	if m.Returns == nil {
		return nil
	}
	return m.Returns
}

type Parameter struct {
	ParamName string
	ParamType *Type
	Marks     decl.Markers
}

var _ decl.Parameter = (*Parameter)(nil)

// Param returns a parameter with optional markers.
func Param(name string, typ *Type, markers ...decl.Marker) *Parameter {
	return &Parameter{ParamName: name, ParamType: typ, Marks: markers}
}

func (p *Parameter) Name() string          { return p.ParamName }
func (p *Parameter) Markers() decl.Markers { return p.Marks }

func (p *Parameter) Type() decl.Type {
	if p.ParamType == nil {
		return nil
	}
	return p.ParamType
}

type Operation struct {
	OpName    string
	Params    []*Parameter
	Returns   *Type
	Doc       string
	First     string
	ParamDocs map[string]string
	DocTags   []decl.Tag
	Marks     decl.Markers
	Enclosing decl.Markers
}

var _ decl.Operation = (*Operation)(nil)

func (o *Operation) Name() string                     { return o.OpName }
func (o *Operation) Comment() string                  { return o.Doc }
func (o *Operation) FirstSentence() string            { return o.First }
func (o *Operation) ParamComments() map[string]string { return o.ParamDocs }
func (o *Operation) Markers() decl.Markers            { return o.Marks }
func (o *Operation) EnclosingMarkers() decl.Markers   { return o.Enclosing }

func (o *Operation) Parameters() []decl.Parameter {
	params := make([]decl.Parameter, 0, len(o.Params))
	for _, p := range o.Params {
		params = append(params, p)
	}
	return params
}

func (o *Operation) ReturnType() decl.Type {
	if o.Returns == nil {
		return nil
	}
	return o.Returns
}

func (o *Operation) Tags(name string) []decl.Tag {
	var tags []decl.Tag
	for _, t := range o.DocTags {
		if t.Name == name {
			tags = append(tags, t)
		}
	}
	return tags
}

type Resource struct {
	ResName string
	Base    string
	Doc     string
	Ops     []*Operation
	Marks   decl.Markers
}

var _ decl.Resource = (*Resource)(nil)

func (r *Resource) Name() string          { return r.ResName }
func (r *Resource) Path() string          { return r.Base }
func (r *Resource) Comment() string       { return r.Doc }
func (r *Resource) Markers() decl.Markers { return r.Marks }

func (r *Resource) Operations() []decl.Operation {
	ops := make([]decl.Operation, 0, len(r.Ops))
	for _, o := range r.Ops {
		ops = append(ops, o)
	}
	return ops
}

// M is shorthand for a marker.
func M(name string, value ...string) decl.Marker {
	m := decl.Marker{Name: name}
	if len(value) > 0 {
		m.Value = value[0]
	}
	return m
}
