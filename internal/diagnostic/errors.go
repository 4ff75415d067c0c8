package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMalformedSpec = errors.New("malformed swizzle spec")
	ErrUnknownField  = errors.New("unknown field")
	ErrTypeMismatch  = errors.New("type mismatch")
	ErrNameCollision = errors.New("name collision")

	// ErrInvalidName is the ErrNameCollision case of a name Go cannot declare.
	ErrInvalidName = fmt.Errorf("%w: invalid method name", ErrNameCollision)
)

// Diagnostic codes.
const (
	CodeMalformedSpec   = "malformed_spec"
	CodeIncompleteSpec  = "incomplete_spec"
	CodeUnknownType     = "unknown_type"
	CodeUnknownField    = "unknown_field"
	CodeUnexportedField = "unexported_field"
	CodeNotStruct       = "not_struct"
	CodeTypeMismatch    = "type_mismatch"
	CodeNotCopyable     = "not_copyable"
	CodeInvalidName     = "invalid_name"
	CodeNameCollision   = "name_collision"
	CodeTooManyMethods  = "too_many_accessors"
	CodeLargeExpansion  = "large_expansion"
)

var codeFamilies = map[string]error{
	CodeMalformedSpec:   ErrMalformedSpec,
	CodeIncompleteSpec:  ErrMalformedSpec,
	CodeTooManyMethods:  ErrMalformedSpec,
	CodeUnknownType:     ErrUnknownField,
	CodeUnknownField:    ErrUnknownField,
	CodeUnexportedField: ErrUnknownField,
	CodeNotStruct:       ErrTypeMismatch,
	CodeTypeMismatch:    ErrTypeMismatch,
	CodeNotCopyable:     ErrTypeMismatch,
	CodeInvalidName:     ErrNameCollision,
	CodeNameCollision:   ErrNameCollision,
}

// Family returns the sentinel error for a diagnostic code, or nil for codes
// that do not belong to a family (warnings, infos).
func Family(code string) error {
	return codeFamilies[code]
}

// CodeOf maps an error produced by the swizzle core back to a diagnostic code.
func CodeOf(err error) string {
	switch {
	case errors.Is(err, ErrInvalidName):
		return CodeInvalidName
	case errors.Is(err, ErrNameCollision):
		return CodeNameCollision
	case errors.Is(err, ErrUnknownField):
		return CodeUnknownField
	case errors.Is(err, ErrTypeMismatch):
		return CodeTypeMismatch
	default:
		return CodeMalformedSpec
	}
}

// Error is the aggregated error of a Diagnostics value.
type Error struct {
	Diagnostics []Diagnostic
}

// Error implements error.
func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		parts = append(parts, d.String())
	}

	return strings.Join(parts, "; ")
}

// Unwrap exposes the family sentinels so callers can use errors.Is.
func (e *Error) Unwrap() []error {
	var (
		out  []error
		seen = map[error]struct{}{}
	)

	for _, d := range e.Diagnostics {
		fam := Family(d.Code)
		if fam == nil {
			continue
		}

		if _, ok := seen[fam]; ok {
			continue
		}

		seen[fam] = struct{}{}
		out = append(out, fam)
	}

	return out
}
