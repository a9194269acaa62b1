package loader

import (
	"cmp"
	"go/constant"
	"go/types"
	"slices"
	"strings"

	"github.com/kolah/restdoc/internal/decl"
)

type typeKind int

const (
	kindBasic typeKind = iota
	kindUniversal
	kindNamed
	kindContainer
	kindOther
)

// goType adapts a go/types type. Pointers are dereferenced; slices, arrays
// and maps surface as the undeclared containers List and Map.
type goType struct {
	u    *universe
	kind typeKind
	name string
	typ  types.Type
	args []types.Type
}

var _ decl.Type = (*goType)(nil)

func (u *universe) typeOf(t types.Type) *goType {
	t = deref(t)
	switch tt := t.(type) {
	case *types.Basic:
		return &goType{u: u, kind: kindBasic, name: tt.Name(), typ: t}
	case *types.Named:
		return &goType{u: u, kind: kindNamed, name: tt.Obj().Name(), typ: t}
	case *types.Slice:
		if isByte(tt.Elem()) {
			return &goType{u: u, kind: kindBasic, name: "[]byte", typ: t}
		}
		return &goType{u: u, kind: kindContainer, name: "List", typ: t, args: []types.Type{tt.Elem()}}
	case *types.Array:
		return &goType{u: u, kind: kindContainer, name: "List", typ: t, args: []types.Type{tt.Elem()}}
	case *types.Map:
		return &goType{u: u, kind: kindContainer, name: "Map", typ: t, args: []types.Type{tt.Key(), tt.Elem()}}
	case *types.Interface:
		if tt.Empty() {
			return &goType{u: u, kind: kindUniversal, name: "any", typ: t}
		}
	case *types.TypeParam:
		return &goType{u: u, kind: kindOther, name: tt.Obj().Name(), typ: t}
	}
	return &goType{u: u, kind: kindOther, name: t.String(), typ: t}
}

func deref(t types.Type) types.Type {
	for {
		t = types.Unalias(t)
		p, ok := t.(*types.Pointer)
		if !ok {
			return t
		}
		t = p.Elem()
	}
}

func isByte(t types.Type) bool {
	b, ok := types.Unalias(t).(*types.Basic)
	return ok && b.Kind() == types.Byte
}

func (t *goType) named() *types.Named {
	n, _ := t.typ.(*types.Named)
	return n
}

func (t *goType) QualifiedName() string {
	if n := t.named(); n != nil && n.Obj().Pkg() != nil {
		return n.Obj().Pkg().Path() + "." + t.name
	}
	return t.name
}

func (t *goType) SimpleName() string { return t.name }
func (t *goType) Primitive() bool    { return t.kind == kindBasic }
func (t *goType) Universal() bool    { return t.kind == kindUniversal }
func (t *goType) Declared() bool     { return t.kind == kindNamed }

func (t *goType) Reserved() bool {
	n := t.named()
	return n != nil && t.u.reservedPackage(n.Obj().Pkg())
}

func (t *goType) structure() *types.Struct {
	n := t.named()
	if n == nil {
		return nil
	}
	s, _ := n.Underlying().(*types.Struct)
	return s
}

// superIndex returns the index of the first untagged embedded struct field
// outside the reserved packages, or -1.
func (t *goType) superIndex() int {
	s := t.structure()
	if s == nil {
		return -1
	}
	for i := 0; i < s.NumFields(); i++ {
		f := s.Field(i)
		if !f.Embedded() || jsonName(s.Tag(i)) != "" {
			continue
		}
		n, ok := deref(f.Type()).(*types.Named)
		if !ok || t.u.reservedPackage(n.Obj().Pkg()) {
			continue
		}
		if _, ok := n.Underlying().(*types.Struct); ok {
			return i
		}
	}
	return -1
}

func (t *goType) Fields() []decl.Field {
	s := t.structure()
	if s == nil {
		return nil
	}
	super := t.superIndex()
	var fields []decl.Field
	for i := 0; i < s.NumFields(); i++ {
		if i == super {
			continue
		}
		fields = append(fields, &goField{u: t.u, v: s.Field(i), tag: s.Tag(i)})
	}
	return fields
}

// Methods returns the exported accessors: methods without parameters and
// with exactly one result.
func (t *goType) Methods() []decl.Method {
	n := t.named()
	if n == nil {
		return nil
	}
	var methods []decl.Method
	for i := 0; i < n.NumMethods(); i++ {
		fn := n.Method(i)
		sig := fn.Type().(*types.Signature)
		if !fn.Exported() || sig.Params().Len() != 0 || sig.Results().Len() != 1 {
			continue
		}
		methods = append(methods, &goMethod{u: t.u, fn: fn})
	}
	return methods
}

func (t *goType) Superclass() decl.Type {
	i := t.superIndex()
	if i < 0 {
		return nil
	}
	return t.u.typeOf(t.structure().Field(i).Type())
}

// TypeArguments returns the instantiation arguments of a generic type, or
// the element types of a container.
func (t *goType) TypeArguments() []decl.Type {
	args := t.args
	if n := t.named(); n != nil {
		if targs := n.TypeArgs(); targs.Len() > 0 {
			for i := 0; i < targs.Len(); i++ {
				args = append(args, targs.At(i))
			}
		} else {
			switch u := n.Underlying().(type) {
			case *types.Slice:
				args = []types.Type{u.Elem()}
			case *types.Array:
				args = []types.Type{u.Elem()}
			case *types.Map:
				args = []types.Type{u.Key(), u.Elem()}
			}
		}
	}

	result := make([]decl.Type, 0, len(args))
	for _, a := range args {
		result = append(result, t.u.typeOf(a))
	}
	return result
}

func (t *goType) Enum() bool {
	return len(t.EnumConstants()) > 0
}

// EnumConstants lists the package-level constants of the type in declaration
// order. String constants contribute their value, others their name. A type
// needs two constants, or one and the enum directive; reserved types are
// never enumerations.
func (t *goType) EnumConstants() []string {
	n := t.named()
	if n == nil || n.Obj().Pkg() == nil || t.Reserved() {
		return nil
	}
	if _, ok := n.Underlying().(*types.Basic); !ok {
		return nil
	}

	scope := n.Obj().Pkg().Scope()
	var consts []*types.Const
	for _, name := range scope.Names() {
		if c, ok := scope.Lookup(name).(*types.Const); ok && types.Identical(c.Type(), n) {
			consts = append(consts, c)
		}
	}
	slices.SortStableFunc(consts, func(a, b *types.Const) int {
		return cmp.Compare(a.Pos(), b.Pos())
	})
	if len(consts) == 0 || len(consts) == 1 && !t.Markers().Has(decl.MarkerEnum) {
		return nil
	}

	values := make([]string, 0, len(consts))
	for _, c := range consts {
		if c.Val().Kind() == constant.String {
			values = append(values, constant.StringVal(c.Val()))
		} else {
			values = append(values, c.Name())
		}
	}
	return values
}

func (t *goType) Markers() decl.Markers {
	n := t.named()
	if n == nil {
		return nil
	}
	return t.u.typeDoc(n.Obj()).markers
}

type goField struct {
	u   *universe
	v   *types.Var
	tag string
}

var _ decl.Field = (*goField)(nil)

func (f *goField) Name() string    { return f.v.Name() }
func (f *goField) Type() decl.Type { return f.u.typeOf(f.v.Type()) }
func (f *goField) Static() bool    { return false }
func (f *goField) Comment() string { return f.u.fieldDoc(f.v).text }

// Markers returns the doc directives followed by one marker per struct tag
// key.
func (f *goField) Markers() decl.Markers {
	markers := f.u.fieldDoc(f.v).markers
	return append(slices.Clip(markers), tagMarkers(f.tag)...)
}

type goMethod struct {
	u  *universe
	fn *types.Func
}

var _ decl.Method = (*goMethod)(nil)

func (m *goMethod) Name() string          { return m.fn.Name() }
func (m *goMethod) Comment() string       { return m.u.funcDoc(m.fn).text }
func (m *goMethod) Markers() decl.Markers { return m.u.funcDoc(m.fn).markers }

func (m *goMethod) ReturnType() decl.Type {
	return m.u.typeOf(m.fn.Type().(*types.Signature).Results().At(0).Type())
}

func jsonName(tag string) string {
	for _, m := range tagMarkers(tag) {
		if m.Name == decl.MarkerJSON {
			name, _, _ := strings.Cut(m.Value, ",")
			return name
		}
	}
	return ""
}
