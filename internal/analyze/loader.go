package analyze

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"go/ast"
	"go/types"
	"os"
	"path/filepath"
	"reflect"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph     *TypeGraph
	typeCache map[types.Type]*TypeInfo // Cache to handle recursive types
	dir       string
	logger    *zap.Logger
	// blankName and blankHeader select previously generated files to hide.
	blankName   string
	blankHeader string
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithDir sets the directory package patterns are resolved from.
func WithDir(dir string) Option {
	return func(a *Analyzer) { a.dir = dir }
}

// WithLogger sets the logger used for load progress.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) { a.logger = logger }
}

// WithoutGenerated hides files named name whose content starts with header,
// so a stale generated file that no longer type-checks cannot break loading.
func WithoutGenerated(name, header string) Option {
	return func(a *Analyzer) {
		a.blankName = name
		a.blankHeader = header
	}
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		graph:     NewTypeGraph(),
		typeCache: make(map[types.Type]*TypeInfo),
		logger:    zap.NewNop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// LoadPackages loads the specified packages and builds the type graph.
// Patterns are standard Go package patterns (e.g., "./vectors", "example.com/geom/...").
func (a *Analyzer) LoadPackages(patterns ...string) (*TypeGraph, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
		Dir:  a.dir,
		Fset: a.graph.Fset,
	}

	if a.blankName != "" {
		overlay, err := a.blankOverlay(patterns)
		if err != nil {
			return nil, err
		}

		cfg.Overlay = overlay
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	// Register every package first so isExternalPackage sees the whole set.
	for _, pkg := range pkgs {
		a.register(pkg.Types, packageDir(pkg), pkg.Syntax)
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg.Types)

		a.logger.Debug("package loaded",
			zap.String("path", pkg.PkgPath),
			zap.String("dir", a.graph.Packages[pkg.PkgPath].Dir),
			zap.Int("types", len(a.graph.Packages[pkg.PkgPath].Types)))
	}

	return a.graph, nil
}

// blankOverlay replaces each previously generated file with a bare package
// clause.
func (a *Analyzer) blankOverlay(patterns []string) (map[string][]byte, error) {
	pkgs, err := packages.Load(&packages.Config{
		Mode: packages.NeedName | packages.NeedFiles,
		Dir:  a.dir,
	}, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}

	overlay := map[string][]byte{}

	for _, pkg := range pkgs {
		for _, file := range pkg.GoFiles {
			if filepath.Base(file) != a.blankName {
				continue
			}

			content, err := os.ReadFile(file)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", file, err)
			}

			if !bytes.HasPrefix(content, []byte(a.blankHeader)) {
				continue
			}

			overlay[file] = []byte("package " + pkg.Name + "\n")

			a.logger.Debug("hiding generated file", zap.String("file", file))
		}
	}

	return overlay, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

func packageDir(pkg *packages.Package) string {
	if pkg.Dir != "" {
		return pkg.Dir
	}

	if len(pkg.GoFiles) > 0 {
		return filepath.Dir(pkg.GoFiles[0])
	}

	return ""
}

// AddPackage adds an already type-checked package to the graph. Positions
// of pkg and syntax must come from the graph's Fset.
func (a *Analyzer) AddPackage(pkg *types.Package, dir string, syntax []*ast.File) *PackageInfo {
	a.register(pkg, dir, syntax)
	a.processPackage(pkg)

	return a.graph.Packages[pkg.Path()]
}

func (a *Analyzer) register(pkg *types.Package, dir string, syntax []*ast.File) {
	a.graph.Packages[pkg.Path()] = &PackageInfo{
		Path:   pkg.Path(),
		Name:   pkg.Name(),
		Dir:    dir,
		Syntax: syntax,
		Scope:  pkg.Scope(),
	}
}

// processPackage extracts named types from a type-checked package.
func (a *Analyzer) processPackage(pkg *types.Package) {
	pkgInfo := a.graph.Packages[pkg.Path()]

	scope := pkg.Scope()
	for _, name := range scope.Names() {
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		typeID := TypeID{
			PkgPath: pkg.Path(),
			Name:    name,
		}

		typeInfo := a.analyzeType(typeName.Type())
		typeInfo.ID = typeID

		if pos := a.graph.Fset.Position(typeName.Pos()); pos.IsValid() {
			typeInfo.Pos = fmt.Sprintf("%s:%d", filepath.Base(pos.Filename), pos.Line)
		}

		a.graph.Types[typeID] = typeInfo
		pkgInfo.Types = append(pkgInfo.Types, typeID)
	}
}

// analyzeType recursively analyzes a go/types.Type and returns a TypeInfo.
func (a *Analyzer) analyzeType(t types.Type) *TypeInfo {
	if cached, ok := a.typeCache[t]; ok {
		return cached
	}

	info := &TypeInfo{
		GoType: t,
	}

	// Pre-cache to handle recursive types (we'll fill in details)
	a.typeCache[t] = info

	switch tt := t.(type) {
	case *types.Named:
		a.analyzeNamedType(tt, info)

	case *types.Alias:
		resolved := a.analyzeType(types.Unalias(tt))
		*info = *resolved

	case *types.Basic:
		info.Kind = TypeKindBasic

	case *types.Pointer:
		info.Kind = TypeKindPointer
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Slice:
		info.Kind = TypeKindSlice
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Array:
		info.Kind = TypeKindArray
		info.ElemType = a.analyzeType(tt.Elem())

	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(tt, info)

	default:
		// Maps, interfaces, channels, etc. only take part in assignability checks.
		info.Kind = TypeKindUnknown
	}

	return info
}

// analyzeNamedType analyzes a named type.
func (a *Analyzer) analyzeNamedType(named *types.Named, info *TypeInfo) {
	obj := named.Obj()

	info.ID = TypeID{Name: obj.Name()}
	if obj.Pkg() != nil {
		info.ID.PkgPath = obj.Pkg().Path()
	}

	a.analyzeMethods(named, info)

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		a.analyzeStructFields(ut, info)

	default:
		if obj.Pkg() == nil || a.isExternalPackage(obj.Pkg().Path()) {
			info.Kind = TypeKindExternal
		} else {
			info.Kind = TypeKindAlias
			info.Underlying = a.analyzeType(ut)
		}
	}
}

// analyzeMethods records declared methods with the file that declares them.
func (a *Analyzer) analyzeMethods(named *types.Named, info *TypeInfo) {
	for i := range named.NumMethods() {
		fn := named.Method(i)

		m := MethodInfo{Name: fn.Name()}
		if pos := a.graph.Fset.Position(fn.Pos()); pos.IsValid() {
			m.File = filepath.Base(pos.Filename)
		}

		if sig, ok := fn.Type().(*types.Signature); ok && sig.Recv() != nil {
			_, m.Pointer = sig.Recv().Type().(*types.Pointer)
		}

		info.Methods = append(info.Methods, m)
	}

	slices.SortFunc(info.Methods, func(x, y MethodInfo) int { return cmp.Compare(x.Name, y.Name) })
}

// isExternalPackage returns true if the package is not in our analyzed set.
func (a *Analyzer) isExternalPackage(pkgPath string) bool {
	_, ok := a.graph.Packages[pkgPath]
	return !ok
}

// analyzeStructFields extracts fields from a struct type. Unexported fields
// are kept; swizzles inside one package may use them.
func (a *Analyzer) analyzeStructFields(st *types.Struct, info *TypeInfo) {
	for i := range st.NumFields() {
		field := st.Field(i)

		info.Fields = append(info.Fields, FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     a.analyzeType(field.Type()),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
		})
	}
}

// GetStruct returns the TypeInfo for a named struct.
func (a *Analyzer) GetStruct(pkgPath, typeName string) (*TypeInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}

	info := a.graph.GetType(id)
	if info == nil {
		return nil, fmt.Errorf("type %s not found", id)
	}

	if info.Kind != TypeKindStruct {
		return nil, fmt.Errorf("type %s is not a struct (kind: %s)", id, info.Kind)
	}

	return info, nil
}
