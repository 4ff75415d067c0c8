package swizzle

import (
	"fmt"
	"slices"

	"swizzle-generator/internal/diagnostic"
)

//go:generate go tool stringer -type=Variant -trimprefix=Variant -output=variant_string.go

// Variant tags the surface form of a Declaration.
type Variant int

const (
	VariantUnknown Variant = iota
	// VariantSelf: one list of fields shared by source and destination; every
	// destination field may draw from every field.
	VariantSelf
	// VariantSingle: one explicit source field per destination field.
	VariantSingle
	// VariantCombination: an explicit candidate list per destination field.
	VariantCombination
)

// Pair maps one destination field to one source field.
type Pair struct {
	Target FieldName
	Source FieldName
}

// Declaration is the tagged union of the accepted surface forms. Only the
// payload matching Variant is read.
type Declaration struct {
	Variant Variant
	Target  TypeRef

	Self  []FieldName        // VariantSelf
	Pairs []Pair             // VariantSingle
	Block []DestinationField // VariantCombination
}

// Self declares a self-swizzle over fields of target.
func Self(target TypeRef, fields ...FieldName) Declaration {
	return Declaration{Variant: VariantSelf, Target: target, Self: fields}
}

// Single declares a single explicit mapping.
func Single(target TypeRef, pairs ...Pair) Declaration {
	return Declaration{Variant: VariantSingle, Target: target, Pairs: pairs}
}

// Combination declares a multi-source combination block.
func Combination(target TypeRef, block ...DestinationField) Declaration {
	return Declaration{Variant: VariantCombination, Target: target, Block: block}
}

// Normalize converts a declaration into its canonical Spec.
func Normalize(d Declaration) (*Spec, error) {
	spec := &Spec{Target: d.Target}

	switch d.Variant {
	case VariantSelf:
		if len(d.Self) == 0 {
			return nil, fmt.Errorf("%w: self-swizzle of %s lists no fields", diagnostic.ErrMalformedSpec, d.Target)
		}

		for _, name := range d.Self {
			spec.Fields = append(spec.Fields, DestinationField{
				Name:       name,
				Candidates: slices.Clone(d.Self),
			})
		}

	case VariantSingle:
		if len(d.Pairs) == 0 {
			return nil, fmt.Errorf("%w: mapping to %s lists no fields", diagnostic.ErrMalformedSpec, d.Target)
		}

		for _, p := range d.Pairs {
			f := DestinationField{Name: p.Target}
			if p.Source != "" {
				f.Candidates = []FieldName{p.Source}
			}

			spec.Fields = append(spec.Fields, f)
		}

	case VariantCombination:
		if len(d.Block) == 0 {
			return nil, fmt.Errorf("%w: combination for %s lists no fields", diagnostic.ErrMalformedSpec, d.Target)
		}

		for _, f := range d.Block {
			// Clone keeps nil distinct from empty so Validate can tell them apart.
			spec.Fields = append(spec.Fields, DestinationField{
				Name:       f.Name,
				Candidates: slices.Clone(f.Candidates),
			})
		}

	default:
		return nil, fmt.Errorf("%w: unsupported declaration form %s", diagnostic.ErrMalformedSpec, d.Variant)
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}

	return spec, nil
}
