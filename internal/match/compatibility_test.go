package match

import (
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeCompatibility_String(t *testing.T) {
	assert.Equal(t, "identical", TypeIdentical.String())
	assert.Equal(t, "assignable", TypeAssignable.String())
	assert.Equal(t, "convertible", TypeConvertible.String())
	assert.Equal(t, "incompatible", TypeIncompatible.String())
	assert.Equal(t, "unknown", TypeCompatibility(42).String())
}

func TestTypeCompatibility_Order(t *testing.T) {
	assert.Less(t, TypeIncompatible.Score(), TypeConvertible.Score())
	assert.Less(t, TypeConvertible.Score(), TypeAssignable.Score())
	assert.Less(t, TypeAssignable.Score(), TypeIdentical.Score())

	assert.True(t, TypeIdentical.Direct())
	assert.True(t, TypeAssignable.Direct())
	assert.False(t, TypeConvertible.Direct())
}

func TestScoreTypeCompatibility(t *testing.T) {
	pkg := types.NewPackage("example.com/color", "color")
	channel := types.NewNamed(types.NewTypeName(token.NoPos, pkg, "Channel", nil), types.Typ[types.Uint8], nil)

	other := types.NewPackage("example.com/geom", "geom")

	float64T := types.Typ[types.Float64]
	float32T := types.Typ[types.Float32]
	stringT := types.Typ[types.String]
	anyT := types.NewInterfaceType(nil, nil)

	res := ScoreTypeCompatibility(float64T, float64T, nil)
	assert.Equal(t, TypeIdentical, res.Compatibility)

	res = ScoreTypeCompatibility(float64T, anyT, nil)
	assert.Equal(t, TypeAssignable, res.Compatibility)

	res = ScoreTypeCompatibility(float64T, float32T, nil)
	assert.Equal(t, TypeConvertible, res.Compatibility)
	assert.Contains(t, res.Reason, "float32(...)")

	res = ScoreTypeCompatibility(stringT, float64T, nil)
	assert.Equal(t, TypeIncompatible, res.Compatibility)
	assert.Equal(t, "string cannot be used as float64", res.Reason)

	// Named types print relative to the home package.
	res = ScoreTypeCompatibility(types.Typ[types.Uint8], channel, pkg)
	assert.Equal(t, TypeConvertible, res.Compatibility)
	assert.Equal(t, "Channel", res.TargetType)

	res = ScoreTypeCompatibility(types.Typ[types.Uint8], channel, other)
	assert.Equal(t, "example.com/color.Channel", res.TargetType)
}
