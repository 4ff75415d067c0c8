package mapping

import (
	"errors"
	"fmt"

	"swizzle-generator/internal/diagnostic"
	"swizzle-generator/internal/swizzle"
)

// CurrentVersion is the only mapping schema version understood.
const CurrentVersion = "1"

// MappingFile represents the root of a YAML swizzle definition file.
type MappingFile struct {
	// Version of the mapping schema (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Options holds generation defaults; command-line flags override them.
	Options Options `yaml:"options,omitempty"`

	// Entries is the list of swizzle declarations.
	Entries []Entry `yaml:"swizzles"`
}

// Options are file-wide generation settings. Zero values mean "use the
// generator default".
type Options struct {
	// Output is the generated file name written into each source package.
	Output string `yaml:"output,omitempty"`

	// AllowConvert permits explicit conversions between convertible field types.
	AllowConvert bool `yaml:"allow_convert,omitempty"`

	// WarnThreshold emits a warning when one entry expands to more accessors.
	WarnThreshold int `yaml:"warn_threshold,omitempty"`

	// MaxAccessors fails an entry that expands to more accessors. 0 disables the cap.
	MaxAccessors int `yaml:"max_accessors,omitempty"`
}

// Entry is one swizzle declaration. Exactly one of Self, Single and Combine
// must be set.
type Entry struct {
	// Source is the receiver type of the generated methods. Defaults to Target.
	Source string `yaml:"source,omitempty"`

	// Target is the type constructed by every generated method.
	Target string `yaml:"target"`

	// Self lists fields shared by source and destination (self-swizzle).
	Self StringOrArray `yaml:"self,omitempty"`

	// Single maps each destination field to exactly one source field.
	Single *FieldPairs `yaml:"single,omitempty"`

	// Combine gives each destination field an ordered candidate list.
	Combine *CandidateBlock `yaml:"combine,omitempty"`

	// Prefix and Suffix decorate every generated method name.
	Prefix string `yaml:"prefix,omitempty"`
	Suffix string `yaml:"suffix,omitempty"`
}

// SourceType returns the receiver type, defaulting to the target.
func (e *Entry) SourceType() string {
	if e.Source == "" {
		return e.Target
	}

	return e.Source
}

// TypePair returns a "Source->Target" label used in diagnostics.
func (e *Entry) TypePair() string {
	return fmt.Sprintf("%s->%s", e.SourceType(), e.Target)
}

// Variant reports which surface form the entry uses.
func (e *Entry) Variant() (swizzle.Variant, error) {
	var found []swizzle.Variant

	if e.Self != nil {
		found = append(found, swizzle.VariantSelf)
	}

	if e.Single != nil {
		found = append(found, swizzle.VariantSingle)
	}

	if e.Combine != nil {
		found = append(found, swizzle.VariantCombination)
	}

	switch len(found) {
	case 0:
		return swizzle.VariantUnknown, fmt.Errorf("%w: %s declares none of self, single, combine",
			diagnostic.ErrMalformedSpec, e.TypePair())
	case 1:
		return found[0], nil
	default:
		return swizzle.VariantUnknown, fmt.Errorf("%w: %s declares more than one of self, single, combine",
			diagnostic.ErrMalformedSpec, e.TypePair())
	}
}

// Declaration converts the entry into the tagged swizzle declaration.
func (e *Entry) Declaration() (swizzle.Declaration, error) {
	if e.Target == "" {
		return swizzle.Declaration{}, fmt.Errorf("%w: entry has no target type", diagnostic.ErrMalformedSpec)
	}

	variant, err := e.Variant()
	if err != nil {
		return swizzle.Declaration{}, err
	}

	target := swizzle.TypeRef(e.Target)

	switch variant {
	case swizzle.VariantSelf:
		fields := make([]swizzle.FieldName, len(e.Self))
		for i, f := range e.Self {
			fields[i] = swizzle.FieldName(f)
		}

		return swizzle.Self(target, fields...), nil
	case swizzle.VariantSingle:
		return swizzle.Single(target, e.Single.Pairs()...), nil
	default:
		return swizzle.Combination(target, e.Combine.Fields()...), nil
	}
}

// Naming returns the name decoration of the entry.
func (e *Entry) Naming() swizzle.NameOptions {
	return swizzle.NameOptions{Prefix: e.Prefix, Suffix: e.Suffix}
}

// Declared is a normalized declaration ready to be bound to real types.
type Declared struct {
	// Source is the receiver type reference.
	Source swizzle.TypeRef
	// Spec is the canonical model.
	Spec *swizzle.Spec
	// Naming decorates generated names.
	Naming swizzle.NameOptions
	// Origin locates the declaration for diagnostics ("swizzle.yaml#2", "vec.go:12").
	Origin string
	// Home is the import path bare type names resolve against first.
	Home string
}

// TypePair returns a "Source->Target" label used in diagnostics.
func (d *Declared) TypePair() string {
	return fmt.Sprintf("%s->%s", d.Source, d.Spec.Target)
}

// Declare normalizes the entry.
func (e *Entry) Declare(origin string) (*Declared, error) {
	decl, err := e.Declaration()
	if err != nil {
		return nil, err
	}

	spec, err := swizzle.Normalize(decl)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", e.TypePair(), err)
	}

	return &Declared{
		Source: swizzle.TypeRef(e.SourceType()),
		Spec:   spec,
		Naming: e.Naming(),
		Origin: origin,
	}, nil
}

// Declare normalizes every entry of the file. Failing entries are reported
// together.
func (mf *MappingFile) Declare(filename string) ([]*Declared, error) {
	var (
		out  []*Declared
		errs []error
	)

	for i := range mf.Entries {
		d, err := mf.Entries[i].Declare(fmt.Sprintf("%s#%d", filename, i+1))
		if err != nil {
			errs = append(errs, err)
			continue
		}

		out = append(out, d)
	}

	return out, errors.Join(errs...)
}
