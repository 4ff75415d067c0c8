package gen

import (
	"cmp"
	"go/types"
	"slices"
	"strconv"

	"swizzle-generator/internal/common"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet collects the imports of one generated file and hands out the
// local name each package is referred to by.
type importSet struct {
	home   string
	byPath map[string]string // import path -> local name
	taken  map[string]string // local name -> import path
}

func newImportSet(home string) *importSet {
	return &importSet{
		home:   home,
		byPath: make(map[string]string),
		taken:  make(map[string]string),
	}
}

// add records an import and returns its local name. The home package needs
// no qualifier and returns "".
func (s *importSet) add(path, name string) string {
	if path == "" || path == s.home {
		return ""
	}

	if local, ok := s.byPath[path]; ok {
		return local
	}

	if name == "" {
		name = common.PkgAlias(path)
	}

	local := name
	for i := 2; ; i++ {
		if _, clash := s.taken[local]; !clash {
			break
		}

		local = name + strconv.Itoa(i)
	}

	s.byPath[path] = local
	s.taken[local] = path

	return local
}

// qualifier renders package-qualified types relative to the home package,
// importing whatever they reference.
func (s *importSet) qualifier() types.Qualifier {
	return func(pkg *types.Package) string {
		return s.add(pkg.Path(), pkg.Name())
	}
}

// has reports whether local is used as a package name.
func (s *importSet) has(local string) bool {
	_, ok := s.taken[local]
	return ok
}

// specs returns the imports sorted by path. An alias is written only when
// the local name differs from the last path element.
func (s *importSet) specs() []importSpec {
	out := make([]importSpec, 0, len(s.byPath))

	for path, local := range s.byPath {
		spec := importSpec{Path: path}
		if local != common.PkgAlias(path) {
			spec.Alias = local
		}

		out = append(out, spec)
	}

	slices.SortFunc(out, func(a, b importSpec) int { return cmp.Compare(a.Path, b.Path) })

	return out
}

// typeString returns the Go source form of t in the generated file.
func (s *importSet) typeString(t types.Type) string {
	return types.TypeString(t, s.qualifier())
}

// conversion wraps expr in a conversion to t. Types whose text starts with
// an operator are parenthesized so the conversion parses.
func (s *importSet) conversion(t types.Type, expr string) string {
	typ := s.typeString(t)

	switch types.Unalias(t).(type) {
	case *types.Pointer, *types.Signature, *types.Chan:
		typ = "(" + typ + ")"
	}

	return typ + "(" + expr + ")"
}
