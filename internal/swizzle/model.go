package swizzle

import (
	"errors"
	"fmt"
	"go/token"
	"slices"
	"strings"

	"swizzle-generator/internal/diagnostic"
)

// FieldName is a struct field identifier. Equality is exact text match.
type FieldName string

// TypeRef names a struct type, either bare ("Vec2") or package qualified
// ("geom.Vec2", "example.com/geom.Vec2").
type TypeRef string

// Split returns the package part and the type name of the reference.
func (r TypeRef) Split() (pkg, name string) {
	s := string(r)
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[:i], s[i+1:]
	}

	return "", s
}

// DestinationField pairs a destination field with the source fields that may
// supply its value. Candidate order drives generation order.
type DestinationField struct {
	Name       FieldName
	Candidates []FieldName
}

// Spec is the canonical swizzle model.
type Spec struct {
	// Target is the destination type constructed by every accessor.
	Target TypeRef
	// Fields lists destination fields in the destination type's order.
	Fields []DestinationField
}

// FieldNames returns the destination field names in order.
func (s *Spec) FieldNames() []FieldName {
	names := make([]FieldName, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}

	return names
}

// Candidates returns every distinct candidate in first-seen order.
func (s *Spec) Candidates() []FieldName {
	var out []FieldName

	seen := map[FieldName]struct{}{}

	for _, f := range s.Fields {
		for _, c := range f.Candidates {
			if _, ok := seen[c]; ok {
				continue
			}

			seen[c] = struct{}{}
			out = append(out, c)
		}
	}

	return out
}

// Missing returns the declared destination fields that the spec does not cover.
func (s *Spec) Missing(declared []FieldName) []FieldName {
	have := s.FieldNames()

	var out []FieldName

	for _, name := range declared {
		if !slices.Contains(have, name) {
			out = append(out, name)
		}
	}

	return out
}

// Unknown returns the spec's destination fields that are not among declared.
func (s *Spec) Unknown(declared []FieldName) []FieldName {
	var out []FieldName

	for _, f := range s.Fields {
		if !slices.Contains(declared, f.Name) {
			out = append(out, f.Name)
		}
	}

	return out
}

// Validate checks the structural rules of a Spec. All violations are
// reported together, each wrapping diagnostic.ErrMalformedSpec.
func (s *Spec) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil spec", diagnostic.ErrMalformedSpec)
	}

	var errs []error

	if s.Target == "" {
		errs = append(errs, fmt.Errorf("%w: missing destination type", diagnostic.ErrMalformedSpec))
	}

	if len(s.Fields) == 0 {
		errs = append(errs, fmt.Errorf("%w: %s declares no destination fields", diagnostic.ErrMalformedSpec, s.Target))
	}

	seen := map[FieldName]struct{}{}

	for _, f := range s.Fields {
		if !IsFieldIdent(string(f.Name)) {
			errs = append(errs, fmt.Errorf("%w: destination field %q is not a valid identifier",
				diagnostic.ErrMalformedSpec, f.Name))
		}

		if _, dup := seen[f.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: destination field %q is declared twice",
				diagnostic.ErrMalformedSpec, f.Name))
		}

		seen[f.Name] = struct{}{}

		switch {
		case f.Candidates == nil:
			errs = append(errs, fmt.Errorf("%w: destination field %q has no candidate list",
				diagnostic.ErrMalformedSpec, f.Name))
		case len(f.Candidates) == 0:
			errs = append(errs, fmt.Errorf("%w: destination field %q has an empty candidate list",
				diagnostic.ErrMalformedSpec, f.Name))
		}

		local := map[FieldName]struct{}{}

		for _, c := range f.Candidates {
			if !IsFieldIdent(string(c)) {
				errs = append(errs, fmt.Errorf("%w: candidate %q of %q is not a valid identifier",
					diagnostic.ErrMalformedSpec, c, f.Name))
			}

			if _, dup := local[c]; dup {
				errs = append(errs, fmt.Errorf("%w: candidate %q is listed twice for %q",
					diagnostic.ErrMalformedSpec, c, f.Name))
			}

			local[c] = struct{}{}
		}
	}

	return errors.Join(errs...)
}

// IsFieldIdent reports whether name can name a readable struct field: a Go
// identifier other than the blank identifier.
func IsFieldIdent(name string) bool {
	return name != "_" && token.IsIdentifier(name)
}
