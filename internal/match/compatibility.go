package match

import (
	"go/types"
)

// TypeCompatibility represents how a source field value can feed a
// destination field.
type TypeCompatibility int

const (
	// TypeIncompatible means the value cannot be used at all.
	TypeIncompatible TypeCompatibility = iota
	// TypeConvertible means an explicit T(v) conversion is required.
	TypeConvertible
	// TypeAssignable means the value can be assigned directly.
	TypeAssignable
	// TypeIdentical means the types are exactly the same.
	TypeIdentical
)

const (
	VerdictIdentical    = "identical"
	VerdictAssignable   = "assignable"
	VerdictConvertible  = "convertible"
	VerdictIncompatible = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c TypeCompatibility) String() string {
	switch c {
	case TypeIdentical:
		return VerdictIdentical
	case TypeAssignable:
		return VerdictAssignable
	case TypeConvertible:
		return VerdictConvertible
	case TypeIncompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// Score returns a numeric score for sorting (higher is better).
func (c TypeCompatibility) Score() int {
	return int(c)
}

// Direct reports whether no conversion is needed.
func (c TypeCompatibility) Direct() bool {
	return c >= TypeAssignable
}

// TypeCompatibilityResult contains detailed information about type compatibility.
type TypeCompatibilityResult struct {
	Compatibility TypeCompatibility
	Reason        string // Human-readable explanation
	SourceType    string // Source type, qualified relative to the home package
	TargetType    string // Target type, qualified relative to the home package
}

// ScoreTypeCompatibility determines the compatibility between a source and
// target type. Type names are printed relative to home.
func ScoreTypeCompatibility(source, target types.Type, home *types.Package) TypeCompatibilityResult {
	res := TypeCompatibilityResult{
		SourceType: types.TypeString(source, types.RelativeTo(home)),
		TargetType: types.TypeString(target, types.RelativeTo(home)),
	}

	switch {
	case types.Identical(source, target):
		res.Compatibility = TypeIdentical
		res.Reason = "types are identical"
	case types.AssignableTo(source, target):
		res.Compatibility = TypeAssignable
		res.Reason = "source is assignable to target"
	case types.ConvertibleTo(source, target):
		res.Compatibility = TypeConvertible
		res.Reason = "source converts to target with " + res.TargetType + "(...)"
	default:
		res.Compatibility = TypeIncompatible
		res.Reason = res.SourceType + " cannot be used as " + res.TargetType
	}

	return res
}
