package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"swizzle-generator/internal/analyze/analyzetest"
	"swizzle-generator/internal/diagnostic"
)

const shapesSrc = `package shapes

//swizzle:gen Vec2 { X, Y }
//swizzle:gen Vec2 { X: (Y), Y: (X) } suffix=Flip
type Vec2 struct{ X, Y float64 }

// Plain is not annotated.
type Plain struct{ A int }
`

func TestCollectDirectives(t *testing.T) {
	graph := analyzetest.Graph(t, analyzetest.Package{
		Path:  "example.com/shapes",
		Files: []analyzetest.File{{Name: "shapes.go", Src: shapesSrc}},
	})

	decls, err := CollectDirectives(graph)
	require.NoError(t, err)
	require.Len(t, decls, 2)

	assert.Equal(t, "shapes.go:3", decls[0].Origin)
	assert.Equal(t, "shapes.go:4", decls[1].Origin)
	assert.Equal(t, "example.com/shapes", decls[0].Home)
	assert.Equal(t, "Vec2->Vec2", decls[1].TypePair())
	assert.Equal(t, "Flip", decls[1].Naming.Suffix)

	plan, err := NewResolver(graph, decls, DefaultConfig(), zaptest.NewLogger(t)).Resolve()
	require.NoError(t, err)
	require.Len(t, plan.Swizzles, 2)
	assert.Equal(t, []string{"YXFlip"}, accessorNames(&plan.Swizzles[1]))
	assert.Equal(t, 5, plan.AccessorCount())
}

func TestCollectDirectives_Malformed(t *testing.T) {
	graph := analyzetest.Graph(t, analyzetest.Package{
		Path: "example.com/shapes",
		Files: []analyzetest.File{{Name: "shapes.go", Src: `package shapes

//swizzle:gen Vec2 { X: (X), Y: () }
type Vec2 struct{ X, Y float64 }
`}},
	})

	decls, err := CollectDirectives(graph)
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostic.ErrMalformedSpec)
	assert.Contains(t, err.Error(), "shapes.go:3")
	assert.Empty(t, decls)
}

func TestCollectDirectives_NilGraph(t *testing.T) {
	decls, err := CollectDirectives(nil)
	require.NoError(t, err)
	assert.Nil(t, decls)
}
