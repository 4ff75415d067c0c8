package mapping

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"swizzle-generator/internal/analyze"
)

var (
	// ErrTypeNotFound reports a type reference that matches no loaded type.
	ErrTypeNotFound = errors.New("type not found")
	// ErrAmbiguousType reports a short reference matching several packages.
	ErrAmbiguousType = errors.New("ambiguous type reference")
)

// ResolveTypeID resolves a type reference like:
//   - "Vec2" (name only; the home package wins, otherwise it must be unique)
//   - "vectors.Vec2" (package name or import path suffix)
//   - "swizzle-generator/examples/vectors.Vec2" (full import path).
func ResolveTypeID(ref, home string, graph *analyze.TypeGraph) (*analyze.TypeInfo, error) {
	if graph == nil || ref == "" {
		return nil, fmt.Errorf("%w: %q", ErrTypeNotFound, ref)
	}

	lastDot := strings.LastIndex(ref, ".")
	if lastDot < 0 {
		if t := graph.GetType(analyze.TypeID{PkgPath: home, Name: ref}); t != nil {
			return t, nil
		}

		return unique(ref, graph, func(id analyze.TypeID) bool { return id.Name == ref })
	}

	pkgStr, name := ref[:lastDot], ref[lastDot+1:]
	if pkgStr == "" || name == "" {
		return nil, fmt.Errorf("%w: %q", ErrTypeNotFound, ref)
	}

	// 1) exact match (for fully qualified import path)
	if t := graph.GetType(analyze.TypeID{PkgPath: pkgStr, Name: name}); t != nil {
		return t, nil
	}

	// 2) suffix or package name match (for short forms like "vectors.Vec2")
	return unique(ref, graph, func(id analyze.TypeID) bool {
		if id.Name != name {
			return false
		}

		if strings.HasSuffix(id.PkgPath, "/"+pkgStr) {
			return true
		}

		pkg := graph.Packages[id.PkgPath]

		return pkg != nil && pkg.Name == pkgStr
	})
}

func unique(ref string, graph *analyze.TypeGraph, match func(analyze.TypeID) bool) (*analyze.TypeInfo, error) {
	var found []analyze.TypeID

	for id := range graph.Types {
		if match(id) {
			found = append(found, id)
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrTypeNotFound, ref)
	case 1:
		return graph.Types[found[0]], nil
	default:
		names := make([]string, len(found))
		for i, id := range found {
			names[i] = id.String()
		}

		slices.Sort(names)

		return nil, fmt.Errorf("%w: %q matches %s", ErrAmbiguousType, ref, strings.Join(names, ", "))
	}
}

// TypeNames returns the names of all loaded types, for suggestions.
func TypeNames(graph *analyze.TypeGraph) []string {
	if graph == nil {
		return nil
	}

	names := make([]string, 0, len(graph.Types))
	for id := range graph.Types {
		names = append(names, id.Name)
	}

	slices.Sort(names)

	return slices.Compact(names)
}
