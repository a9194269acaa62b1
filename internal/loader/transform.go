package loader

import (
	"fmt"
	"go/types"
	"slices"

	"github.com/kolah/restdoc/internal/decl"
)

type resource struct {
	u     *universe
	named *types.Named
	doc   docInfo
}

var _ decl.Resource = (*resource)(nil)

func (r *resource) Name() string          { return r.named.Obj().Name() }
func (r *resource) Comment() string       { return r.doc.text }
func (r *resource) Markers() decl.Markers { return r.doc.markers }

func (r *resource) Path() string {
	path, _ := r.doc.markers.Value(decl.MarkerPath)
	return path
}

// Operations returns the exported methods in declaration order.
func (r *resource) Operations() []decl.Operation {
	var ops []decl.Operation
	for i := 0; i < r.named.NumMethods(); i++ {
		fn := r.named.Method(i)
		if !fn.Exported() {
			continue
		}
		ops = append(ops, &operation{
			u:         r.u,
			fn:        fn,
			doc:       r.u.funcDoc(fn),
			enclosing: r.doc.markers,
		})
	}
	slices.SortStableFunc(ops, func(a, b decl.Operation) int {
		return int(a.(*operation).fn.Pos() - b.(*operation).fn.Pos())
	})
	return ops
}

type operation struct {
	u         *universe
	fn        *types.Func
	doc       docInfo
	enclosing decl.Markers
}

var _ decl.Operation = (*operation)(nil)

func (o *operation) Name() string                     { return o.fn.Name() }
func (o *operation) Comment() string                  { return o.doc.text }
func (o *operation) FirstSentence() string            { return o.doc.first }
func (o *operation) ParamComments() map[string]string { return o.doc.params }
func (o *operation) Markers() decl.Markers            { return o.doc.markers }
func (o *operation) EnclosingMarkers() decl.Markers   { return o.enclosing }

func (o *operation) signature() *types.Signature {
	return o.fn.Type().(*types.Signature)
}

func (o *operation) Parameters() []decl.Parameter {
	params := o.signature().Params()
	result := make([]decl.Parameter, 0, params.Len())
	for i := 0; i < params.Len(); i++ {
		v := params.At(i)
		name := v.Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("arg%d", i)
		}

		typ := o.u.typeOf(v.Type())
		markers := slices.Clone(o.doc.paramMarkers[name])
		if o.u.injected[typ.QualifiedName()] {
			markers = append(markers, decl.Marker{Name: decl.MarkerInject})
		}
		result = append(result, &parameter{name: name, typ: typ, markers: markers})
	}
	return result
}

// ReturnType returns the first result that is not an error, or nil.
func (o *operation) ReturnType() decl.Type {
	results := o.signature().Results()
	for i := 0; i < results.Len(); i++ {
		t := results.At(i).Type()
		if types.Identical(t, errorType) {
			continue
		}
		return o.u.typeOf(t)
	}
	return nil
}

func (o *operation) Tags(name string) []decl.Tag {
	var tags []decl.Tag
	for _, tag := range o.doc.tags {
		if tag.Name == name {
			tags = append(tags, tag)
		}
	}
	return tags
}

var errorType = types.Universe.Lookup("error").Type()

type parameter struct {
	name    string
	typ     *goType
	markers decl.Markers
}

var _ decl.Parameter = (*parameter)(nil)

func (p *parameter) Name() string          { return p.name }
func (p *parameter) Type() decl.Type       { return p.typ }
func (p *parameter) Markers() decl.Markers { return p.markers }
