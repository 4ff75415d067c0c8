package plan

import (
	"go/types"
	"slices"

	"swizzle-generator/internal/analyze"
	"swizzle-generator/internal/common"
	"swizzle-generator/internal/diagnostic"
	"swizzle-generator/internal/swizzle"
)

// ResolvedPlan is the final output of the resolution pipeline.
// It contains everything needed for code generation.
type ResolvedPlan struct {
	// Swizzles is the list of bound declarations, in declaration order.
	Swizzles []ResolvedSwizzle
	// TypeGraph holds all analyzed types and packages.
	TypeGraph *analyze.TypeGraph
	// Diagnostics contains all warnings and errors from resolution.
	Diagnostics diagnostic.Diagnostics
}

// ResolvedSwizzle is one declaration bound to real Go types.
type ResolvedSwizzle struct {
	// Origin locates the declaration ("swizzle.yaml#2", "vec.go:12").
	Origin string
	// SourceType is the receiver of every generated method.
	SourceType *analyze.TypeInfo
	// TargetType is the type every generated method returns.
	TargetType *analyze.TypeInfo
	// Spec is the canonical model the accessors come from.
	Spec *swizzle.Spec
	// Naming decorates generated names.
	Naming swizzle.NameOptions
	// Fields binds each destination field and its candidates, in spec order.
	Fields []ResolvedField
	// Accessors are the generated methods in enumeration order.
	Accessors []swizzle.Accessor
}

// TypePair returns a "Source->Target" label used in diagnostics.
func (s *ResolvedSwizzle) TypePair() string {
	return s.SourceType.ID.Name + "->" + s.TargetType.ID.Name
}

// SourcePkg returns the import path the generated methods live in.
func (s *ResolvedSwizzle) SourcePkg() string {
	return s.SourceType.ID.PkgPath
}

// Binding returns how source feeds the destination field target.
func (s *ResolvedSwizzle) Binding(target, source swizzle.FieldName) (*ResolvedSource, bool) {
	for i := range s.Fields {
		f := &s.Fields[i]
		if f.Name != target {
			continue
		}

		for j := range f.Sources {
			if f.Sources[j].Field.Name == string(source) {
				return &f.Sources[j], true
			}
		}
	}

	return nil, false
}

// ResolvedField binds one destination field.
type ResolvedField struct {
	Name    swizzle.FieldName
	Target  *analyze.FieldInfo
	Sources []ResolvedSource // one per candidate, in candidate order
}

// ResolvedSource describes how one candidate feeds its destination field.
type ResolvedSource struct {
	Field    *analyze.FieldInfo
	Strategy ConversionStrategy
	// ConvertTo is the destination field type for StrategyConvert.
	ConvertTo types.Type
}

// ConversionStrategy describes how to perform the field copy.
type ConversionStrategy int

const (
	// StrategyDirectAssign - direct assignment (identical or assignable types).
	StrategyDirectAssign ConversionStrategy = iota
	// StrategyConvert - explicit Go type conversion.
	StrategyConvert
)

// String returns a human-readable strategy name.
func (s ConversionStrategy) String() string {
	switch s {
	case StrategyDirectAssign:
		return "direct"
	case StrategyConvert:
		return "convert"
	default:
		return common.UnknownStr
	}
}

// AccessorCount returns the number of generated methods in the plan.
func (p *ResolvedPlan) AccessorCount() int {
	n := 0
	for i := range p.Swizzles {
		n += len(p.Swizzles[i].Accessors)
	}

	return n
}

// BySourcePackage groups swizzles by the package their methods belong to,
// keeping declaration order within each group. Groups are ordered by import
// path.
func (p *ResolvedPlan) BySourcePackage() []PackageSwizzles {
	var (
		groups = map[string]*PackageSwizzles{}
		paths  []string
	)

	for i := range p.Swizzles {
		s := &p.Swizzles[i]
		path := s.SourcePkg()

		g, ok := groups[path]
		if !ok {
			g = &PackageSwizzles{Package: p.TypeGraph.Packages[path]}
			groups[path] = g
			paths = append(paths, path)
		}

		g.Swizzles = append(g.Swizzles, s)
	}

	slices.Sort(paths)

	out := make([]PackageSwizzles, len(paths))
	for i, path := range paths {
		out[i] = *groups[path]
	}

	return out
}

// PackageSwizzles are the swizzles whose methods go into one package.
type PackageSwizzles struct {
	Package  *analyze.PackageInfo
	Swizzles []*ResolvedSwizzle
}
