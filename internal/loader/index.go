package loader

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"
)

// universe indexes the syntax of the loaded packages so that type-checker
// objects can be mapped back to their comments.
type universe struct {
	roots     map[string]bool
	typeDocs  map[*types.TypeName]*ast.CommentGroup
	fieldDocs map[*types.Var]*ast.Field
	funcDecls map[*types.Func]*ast.FuncDecl
	injected  map[string]bool
	reserved  []string
}

func newUniverse(pkgs []*packages.Package, injected, reserved []string) *universe {
	u := &universe{
		roots:     make(map[string]bool),
		typeDocs:  make(map[*types.TypeName]*ast.CommentGroup),
		fieldDocs: make(map[*types.Var]*ast.Field),
		funcDecls: make(map[*types.Func]*ast.FuncDecl),
		injected:  make(map[string]bool, len(injected)),
		reserved:  reserved,
	}
	for _, name := range injected {
		u.injected[name] = true
	}
	for _, pkg := range pkgs {
		u.roots[pkg.PkgPath] = true
		for _, file := range pkg.Syntax {
			u.index(pkg.TypesInfo, file)
		}
	}
	return u
}

func (u *universe) index(info *types.Info, file *ast.File) {
	ast.Inspect(file, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.GenDecl:
			if node.Tok != token.TYPE {
				return true
			}
			for _, spec := range node.Specs {
				ts := spec.(*ast.TypeSpec)
				tn, ok := info.Defs[ts.Name].(*types.TypeName)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(node.Specs) == 1 {
					doc = node.Doc
				}
				u.typeDocs[tn] = doc
			}
		case *ast.StructType:
			for _, field := range node.Fields.List {
				idents := field.Names
				if len(idents) == 0 {
					if ident := embeddedIdent(field.Type); ident != nil {
						idents = []*ast.Ident{ident}
					}
				}
				for _, ident := range idents {
					if v, ok := info.Defs[ident].(*types.Var); ok {
						u.fieldDocs[v] = field
					}
				}
			}
		case *ast.FuncDecl:
			if fn, ok := info.Defs[node.Name].(*types.Func); ok {
				u.funcDecls[fn] = node
			}
		}
		return true
	})
}

// embeddedIdent returns the identifier naming an embedded field.
func embeddedIdent(expr ast.Expr) *ast.Ident {
	switch e := expr.(type) {
	case *ast.Ident:
		return e
	case *ast.StarExpr:
		return embeddedIdent(e.X)
	case *ast.SelectorExpr:
		return e.Sel
	case *ast.IndexExpr:
		return embeddedIdent(e.X)
	case *ast.IndexListExpr:
		return embeddedIdent(e.X)
	}
	return nil
}

func (u *universe) typeDoc(tn *types.TypeName) docInfo {
	return parseDoc(u.typeDocs[tn])
}

func (u *universe) fieldDoc(v *types.Var) docInfo {
	field, ok := u.fieldDocs[v.Origin()]
	if !ok {
		return parseDoc()
	}
	if field.Doc != nil {
		return parseDoc(field.Doc)
	}
	return parseDoc(field.Comment)
}

func (u *universe) funcDoc(fn *types.Func) docInfo {
	d, ok := u.funcDecls[fn.Origin()]
	if !ok {
		return parseDoc()
	}
	return parseDoc(d.Doc)
}

// reservedPackage reports whether pkg holds platform types. Loaded packages
// are never reserved.
func (u *universe) reservedPackage(pkg *types.Package) bool {
	if pkg == nil {
		return true
	}
	path := pkg.Path()
	if u.roots[path] {
		return false
	}
	for _, prefix := range u.reserved {
		if path == prefix || strings.HasPrefix(path, strings.TrimSuffix(prefix, "/")+"/") {
			return true
		}
	}
	first, _, _ := strings.Cut(path, "/")
	return !strings.Contains(first, ".")
}
