package analyze

import (
	"go/types"
	"strings"
)

// TypeStringer renders TypeInfo values for diagnostics and listings.
type TypeStringer struct {
	// Home is the package path whose types are printed unqualified.
	Home string
}

// NewTypeStringer creates a new TypeStringer relative to the home package.
func NewTypeStringer(home string) *TypeStringer {
	return &TypeStringer{Home: home}
}

// TypeString returns a human-readable string representation of a TypeInfo.
func (s *TypeStringer) TypeString(t *TypeInfo) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case TypeKindStruct, TypeKindAlias, TypeKindExternal:
		if t.IsNamed() {
			return s.qualify(t.ID)
		}

		if t.Kind == TypeKindStruct {
			return "struct{...}"
		}

		return s.TypeString(t.Underlying)

	case TypeKindPointer:
		if t.ElemType != nil {
			return "*" + s.TypeString(t.ElemType)
		}

		return "*<unknown>"

	case TypeKindSlice:
		if t.ElemType != nil {
			return "[]" + s.TypeString(t.ElemType)
		}

		return "[]<unknown>"

	default:
		if t.GoType == nil {
			return "<unknown>"
		}

		return types.TypeString(t.GoType, s.qualifier)
	}
}

// FieldPath returns a dotted path for a field within a type.
// Example: Vec2, X -> "Vec2.X".
func (s *TypeStringer) FieldPath(typeName string, fieldNames ...string) string {
	return strings.Join(append([]string{typeName}, fieldNames...), ".")
}

func (s *TypeStringer) qualify(id TypeID) string {
	if id.PkgPath == "" || id.PkgPath == s.Home {
		return id.Name
	}

	return lastElem(id.PkgPath) + "." + id.Name
}

func (s *TypeStringer) qualifier(pkg *types.Package) string {
	if pkg.Path() == s.Home {
		return ""
	}

	return pkg.Name()
}

func lastElem(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}

	return path
}
