package loader

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/kolah/restdoc/internal/decl"
)

var (
	ErrNoPackages   = errors.New("no packages to load")
	ErrTypeNotFound = errors.New("type not found")
)

// DefaultInjectedTypes are parameter types supplied by the server rather
// than the client.
var DefaultInjectedTypes = []string{
	"context.Context",
	"net/http.ResponseWriter",
	"net/http.Request",
}

type Options struct {
	// Dir is the working directory for package resolution.
	Dir string
	// Patterns are go package patterns, e.g. "./api/...".
	Patterns []string
	// InjectedTypes are qualified type names whose parameters get the inject
	// marker.
	InjectedTypes []string
	// ReservedPackages are import path prefixes treated as platform types in
	// addition to the standard library.
	ReservedPackages []string
}

type Result struct {
	Packages  []*packages.Package
	Resources []decl.Resource

	u *universe
}

const loadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedImports |
	packages.NeedTypes |
	packages.NeedSyntax |
	packages.NeedTypesInfo

// Load type-checks the packages and collects every resource they declare.
func Load(ctx context.Context, opts Options) (*Result, error) {
	if len(opts.Patterns) == 0 {
		return nil, ErrNoPackages
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     opts.Dir,
		Mode:    loadMode,
	}

	pkgs, err := packages.Load(cfg, opts.Patterns...)
	if err != nil {
		return nil, fmt.Errorf("loading packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("%w: nothing matched %s", ErrNoPackages, strings.Join(opts.Patterns, " "))
	}
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("package %s: %w", pkg.PkgPath, pkg.Errors[0])
		}
	}

	injected := opts.InjectedTypes
	if injected == nil {
		injected = DefaultInjectedTypes
	}

	u := newUniverse(pkgs, injected, opts.ReservedPackages)
	return &Result{
		Packages:  pkgs,
		Resources: u.resources(pkgs),
		u:         u,
	}, nil
}

// LookupType finds a named type in the loaded packages. The name may be
// bare ("Pet"), package qualified ("petstore.Pet") or import path qualified.
func (r *Result) LookupType(name string) (decl.Type, error) {
	pkgName, typeName := "", name
	if i := strings.LastIndex(name, "."); i >= 0 {
		pkgName, typeName = name[:i], name[i+1:]
	}

	for _, pkg := range r.Packages {
		if pkgName != "" && pkgName != pkg.Name && pkgName != pkg.PkgPath {
			continue
		}
		if tn, ok := pkg.Types.Scope().Lookup(typeName).(*types.TypeName); ok {
			return r.u.typeOf(tn.Type()), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTypeNotFound, name)
}

// resources returns the types carrying a path directive in file order.
func (u *universe) resources(pkgs []*packages.Package) []decl.Resource {
	var result []decl.Resource
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			for _, d := range file.Decls {
				gen, ok := d.(*ast.GenDecl)
				if !ok || gen.Tok != token.TYPE {
					continue
				}
				for _, spec := range gen.Specs {
					ts := spec.(*ast.TypeSpec)
					tn, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
					if !ok {
						continue
					}
					named, ok := tn.Type().(*types.Named)
					if !ok || named.TypeParams().Len() > 0 {
						continue
					}
					doc := u.typeDoc(tn)
					if !doc.markers.Has(decl.MarkerPath) {
						continue
					}
					result = append(result, &resource{u: u, named: named, doc: doc})
				}
			}
		}
	}
	return result
}
