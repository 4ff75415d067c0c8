package analyze

import (
	"cmp"
	"go/ast"
	"go/token"
	"go/types"
	"reflect"
	"slices"

	"swizzle-generator/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "swizzle-generator/examples/vectors"
	Name    string // e.g., "Vec2"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a type.
type TypeKind int

const (
	TypeKindUnknown  TypeKind = iota
	TypeKindBasic             // int, string, bool, etc.
	TypeKindStruct            // struct type
	TypeKindPointer           // pointer to another type
	TypeKindSlice             // slice of another type
	TypeKindArray             // array of another type
	TypeKindAlias             // named type wrapping a non-struct type
	TypeKindExternal          // external/opaque type (e.g., time.Time)
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindPointer:
		return "pointer"
	case TypeKindSlice:
		return "slice"
	case TypeKindArray:
		return "array"
	case TypeKindAlias:
		return "alias"
	case TypeKindExternal:
		return "external"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a Go type in the type graph.
type TypeInfo struct {
	ID         TypeID       // Unique identifier (empty for unnamed types like *T or []T)
	Kind       TypeKind     // Kind of type
	Underlying *TypeInfo    // For named non-struct types, the underlying type
	ElemType   *TypeInfo    // For pointers, slices and arrays, the element type
	Fields     []FieldInfo  // For structs, the list of fields in declaration order
	Methods    []MethodInfo // For named types, the declared methods (value and pointer receivers)
	GoType     types.Type   // The original go/types.Type (for compatibility checks)
	Pos        string       // "file.go:12" of the type declaration, if known
}

// IsNamed returns true if this type has a name (TypeID is set).
func (t *TypeInfo) IsNamed() bool {
	return t.ID.Name != ""
}

// Field returns the field with the given name.
func (t *TypeInfo) Field(name string) (*FieldInfo, bool) {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i], true
		}
	}

	return nil, false
}

// FieldNames returns field names in declaration order.
func (t *TypeInfo) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i := range t.Fields {
		names[i] = t.Fields[i].Name
	}

	return names
}

// Method returns the declared method with the given name.
func (t *TypeInfo) Method(name string) (*MethodInfo, bool) {
	i := slices.IndexFunc(t.Methods, func(m MethodInfo) bool { return m.Name == name })
	if i < 0 {
		return nil, false
	}

	return &t.Methods[i], true
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     *TypeInfo         // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// MethodInfo describes a method declared on a named type.
type MethodInfo struct {
	Name    string // Method name
	File    string // Base name of the file declaring it
	Pointer bool   // Declared with a pointer receiver
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
	// Fset positions the syntax trees of all packages.
	Fset *token.FileSet
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
		Fset:     token.NewFileSet(),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// SortedPackages returns the loaded packages ordered by import path.
func (g *TypeGraph) SortedPackages() []*PackageInfo {
	out := make([]*PackageInfo, 0, len(g.Packages))
	for _, p := range g.Packages {
		out = append(out, p)
	}

	slices.SortFunc(out, func(a, b *PackageInfo) int { return cmp.Compare(a.Path, b.Path) })

	return out
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path   string       // Import path
	Name   string       // Package name
	Dir    string       // Directory containing the package sources
	Types  []TypeID     // Named types defined in this package, sorted by name
	Syntax []*ast.File  // Parsed files, with comments
	Scope  *types.Scope // Package-level declarations
}
