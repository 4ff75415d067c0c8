package swizzle

import (
	"errors"
	"fmt"
	"iter"
	"math/bits"
	"strings"

	"swizzle-generator/internal/diagnostic"
)

// Assignment copies Source into the destination field Target.
type Assignment struct {
	Target FieldName
	Source FieldName
}

// Accessor is one point of the candidate product.
type Accessor struct {
	// Index is the position in enumeration order, starting at 0.
	Index int
	// Name is Prefix + concatenated source names + Suffix.
	Name string
	// Choices holds, per destination field, the index into its candidate list.
	Choices []int
	// Assignments has one entry per destination field, in destination order.
	Assignments []Assignment
}

// Sources returns the chosen source fields in destination order.
func (a Accessor) Sources() []FieldName {
	out := make([]FieldName, len(a.Assignments))
	for i, as := range a.Assignments {
		out[i] = as.Source
	}

	return out
}

// NameOptions decorates generated names. The zero value yields the bare
// concatenation.
type NameOptions struct {
	Prefix string
	Suffix string
}

// Count returns the number of accessors of spec. ok is false when the
// product does not fit in a uint64.
func Count(spec *Spec) (n uint64, ok bool) {
	if spec == nil || len(spec.Fields) == 0 {
		return 0, true
	}

	n = 1

	for _, f := range spec.Fields {
		hi, lo := bits.Mul64(n, uint64(len(f.Candidates)))
		if hi != 0 {
			return 0, false
		}

		n = lo
	}

	return n, true
}

// Enumerate yields every accessor of spec in odometer order: the first
// destination field varies slowest, the last fastest. The spec is expected to
// be valid; an empty candidate list yields nothing.
func Enumerate(spec *Spec, opts NameOptions) iter.Seq[Accessor] {
	return func(yield func(Accessor) bool) {
		if spec == nil || len(spec.Fields) == 0 {
			return
		}

		for _, f := range spec.Fields {
			if len(f.Candidates) == 0 {
				return
			}
		}

		choices := make([]int, len(spec.Fields))

		for index := 0; ; index++ {
			if !yield(spec.accessorAt(index, choices, opts)) {
				return
			}

			pos := len(choices) - 1
			for ; pos >= 0; pos-- {
				choices[pos]++
				if choices[pos] < len(spec.Fields[pos].Candidates) {
					break
				}

				choices[pos] = 0
			}

			if pos < 0 {
				return
			}
		}
	}
}

func (s *Spec) accessorAt(index int, choices []int, opts NameOptions) Accessor {
	var sb strings.Builder

	sb.WriteString(opts.Prefix)

	assignments := make([]Assignment, len(s.Fields))
	for i, f := range s.Fields {
		src := f.Candidates[choices[i]]
		assignments[i] = Assignment{Target: f.Name, Source: src}
		sb.WriteString(string(src))
	}

	sb.WriteString(opts.Suffix)

	return Accessor{
		Index:       index,
		Name:        sb.String(),
		Choices:     append([]int(nil), choices...),
		Assignments: assignments,
	}
}

// Accessors validates spec, materializes its accessors and checks that every
// name is a usable method name and that no two accessors share a name.
func Accessors(spec *Spec, opts NameOptions) ([]Accessor, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	n, ok := Count(spec)
	if !ok || n > uint64(maxInt) {
		return nil, fmt.Errorf("%w: %s expands to more accessors than can be addressed",
			diagnostic.ErrMalformedSpec, spec.Target)
	}

	var (
		out    = make([]Accessor, 0, n)
		byName = make(map[string]int, n)
		errs   []error
	)

	for acc := range Enumerate(spec, opts) {
		if err := ValidateMethodName(acc.Name); err != nil {
			errs = append(errs, err)
		}

		if prev, dup := byName[acc.Name]; dup {
			errs = append(errs, fmt.Errorf("%w: accessor %q is produced by both (%s) and (%s)",
				diagnostic.ErrNameCollision, acc.Name, describe(out[prev]), describe(acc)))
		} else {
			byName[acc.Name] = acc.Index
		}

		out = append(out, acc)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return out, nil
}

const maxInt = int(^uint(0) >> 1)

func describe(a Accessor) string {
	parts := make([]string, len(a.Assignments))
	for i, as := range a.Assignments {
		parts[i] = string(as.Target) + ": " + string(as.Source)
	}

	return strings.Join(parts, ", ")
}
