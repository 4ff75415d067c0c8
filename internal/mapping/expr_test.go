package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swizzle-generator/internal/diagnostic"
	"swizzle-generator/internal/swizzle"
)

func TestParseExpr_Self(t *testing.T) {
	e, err := ParseExpr("Vec2 { X, Y }")
	require.NoError(t, err)

	assert.Equal(t, "Vec2", e.Target)
	assert.Empty(t, e.Source)
	assert.Equal(t, StringOrArray{"X", "Y"}, e.Self)
	assert.Nil(t, e.Single)
	assert.Nil(t, e.Combine)
}

func TestParseExpr_Single(t *testing.T) {
	e, err := ParseExpr("Bar{A: Y, B: X, C: Y,}")
	require.NoError(t, err)

	require.NotNil(t, e.Single)
	assert.Equal(t, []swizzle.Pair{
		{Target: "A", Source: "Y"},
		{Target: "B", Source: "X"},
		{Target: "C", Source: "Y"},
	}, e.Single.Pairs())
}

func TestParseExpr_Combination(t *testing.T) {
	e, err := ParseExpr(`geom.Rgb { R: (R, A), G: G, B: (B) } prefix=To suffix=""`)
	require.NoError(t, err)

	assert.Equal(t, "geom.Rgb", e.Target)
	assert.Equal(t, "To", e.Prefix)
	assert.Empty(t, e.Suffix)

	require.NotNil(t, e.Combine)
	assert.Equal(t, []swizzle.DestinationField{
		{Name: "R", Candidates: []swizzle.FieldName{"R", "A"}},
		{Name: "G", Candidates: []swizzle.FieldName{"G"}},
		{Name: "B", Candidates: []swizzle.FieldName{"B"}},
	}, e.Combine.Fields())
}

func TestParseExpr_QualifiedTarget(t *testing.T) {
	e, err := ParseExpr("example.com/geom.Vec2{X,Y}")
	require.NoError(t, err)
	assert.Equal(t, "example.com/geom.Vec2", e.Target)
}

func TestParseExpr_CandidateShapes(t *testing.T) {
	// Bare name among colon items: no candidate list.
	e, err := ParseExpr("Vec2 { X: (X), Y }")
	require.NoError(t, err)

	_, err = e.Declare("expr")
	require.ErrorIs(t, err, diagnostic.ErrMalformedSpec)
	assert.Contains(t, err.Error(), "no candidate list")

	// Empty parentheses: empty candidate list.
	e, err = ParseExpr("Vec2 { X: (), Y: (Y) }")
	require.NoError(t, err)

	fields := e.Combine.Fields()
	assert.NotNil(t, fields[0].Candidates)
	assert.Empty(t, fields[0].Candidates)

	_, err = e.Declare("expr")
	require.ErrorIs(t, err, diagnostic.ErrMalformedSpec)
	assert.Contains(t, err.Error(), "empty candidate list")
}

func TestParseExpr_Errors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"no brace", "Vec2 X, Y", "missing '{'"},
		{"no type", "{ X }", "expected one type name"},
		{"two words", "my Vec2 { X }", "expected one type name"},
		{"empty body", "Vec2 {}", "no fields between braces"},
		{"unclosed", "Vec2 { X, Y", "expected \"}\""},
		{"unclosed list", "Vec2 { X: (X, Y }", "expected \")\""},
		{"bad token", "Vec2 { X; Y }", "expected \"}\""},
		{"number", "Vec2 { 1 }", "expected field name"},
		{"duplicate", "Vec2 { X: Y, X: X }", "declared twice"},
		{"unknown option", "Vec2 { X } infix=Q", "unknown option"},
		{"option without value", "Vec2 { X } prefix=", "expected value for prefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseExpr(tt.expr)
			require.Error(t, err)
			require.ErrorIs(t, err, diagnostic.ErrMalformedSpec)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
