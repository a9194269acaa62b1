// Package decl defines the declaration introspection interfaces consumed by
// the extractors. Implementations expose an immutable snapshot of source
// declarations: types, their members, operations and the metadata markers
// attached to each of them.
package decl

// Type is a declared or referenced type.
type Type interface {
	// QualifiedName is the fully qualified name, e.g. "example.com/api.User".
	QualifiedName() string
	// SimpleName is the unqualified name without type arguments.
	SimpleName() string
	// Primitive reports whether the type is a primitive value type.
	Primitive() bool
	// Universal reports whether the type is the universal base type.
	Universal() bool
	// Reserved reports whether the type belongs to a platform-reserved namespace.
	Reserved() bool
	// Declared reports whether the type resolves to a declaration.
	Declared() bool

	Fields() []Field
	Methods() []Method
	// Superclass returns the supertype, or nil.
	Superclass() Type
	TypeArguments() []Type

	Enum() bool
	EnumConstants() []string

	Markers() Markers
}

type Field interface {
	Name() string
	Type() Type
	Static() bool
	Comment() string
	Markers() Markers
}

type Method interface {
	Name() string
	ReturnType() Type
	Comment() string
	Markers() Markers
}

type Parameter interface {
	Name() string
	Type() Type
	Markers() Markers
}

type Operation interface {
	Name() string
	Parameters() []Parameter
	// ReturnType returns the declared result, or nil when there is none.
	ReturnType() Type
	Comment() string
	FirstSentence() string
	// ParamComments maps declared parameter names to their documentation.
	ParamComments() map[string]string
	// Tags returns the documentation tags attached under name.
	Tags(name string) []Tag
	Markers() Markers
	// EnclosingMarkers returns the markers of the enclosing resource.
	EnclosingMarkers() Markers
}

// Resource groups the operations served under one base path.
type Resource interface {
	Name() string
	Path() string
	Comment() string
	Operations() []Operation
	Markers() Markers
}

// Tag is a documentation tag such as "@HTTP 404 Not Found".
type Tag struct {
	Name string
	Text string
}
