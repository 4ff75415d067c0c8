package gen

import (
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swizzle-generator/internal/analyze/analyzetest"
	"swizzle-generator/internal/plan"
)

func TestManifest(t *testing.T) {
	graph := analyzetest.Graph(t,
		analyzetest.Package{Path: "example.com/geom", Dir: "/src/geom", Files: []analyzetest.File{{Name: "geom.go", Src: geomSrc}}},
		analyzetest.Package{Path: "example.com/app", Dir: "/src/app", Files: []analyzetest.File{{Name: "app.go", Src: gridSrc}}},
	)

	config := plan.DefaultConfig()
	config.AllowConvert = true

	p := resolvePlan(t, graph, "example.com/app", config,
		"Grid: geom.Vec2 { X: (X, Y), Y: (Y) } prefix=To",
	)
	files := generate(t, DefaultGeneratorConfig(), p)

	m := BuildManifest(p, files)
	assert.Equal(t, "swizzle-generator", m.Generator)
	assert.Equal(t, 2, m.Total)
	require.Len(t, m.Swizzles, 1)

	s := m.Swizzles[0]
	assert.Equal(t, "test#1", s.Origin)
	assert.Equal(t, "example.com/app", s.Package)
	assert.Equal(t, "Grid", s.Source)
	assert.Equal(t, "example.com/geom.Vec2", s.Target)
	assert.Equal(t, "To", s.Prefix)
	require.Len(t, s.Accessors, 2)
	assert.Equal(t, "ToXY", s.Accessors[0].Name)
	assert.Equal(t, ManifestAssignment{Target: "X", Source: "X", Convert: "float64"}, s.Accessors[0].Assignments[0])

	require.Len(t, m.Files, 1)
	assert.Equal(t, ManifestFile{Package: "example.com/app", Path: "/src/app/swizzle_gen.go", Methods: 2}, m.Files[0])

	path := filepath.Join(t.TempDir(), "manifest.json")
	require.NoError(t, WriteManifest(m, path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "\n  \"swizzles\": [")

	var decoded Manifest
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, *m, decoded)
}

func TestManifest_WithoutFiles(t *testing.T) {
	graph := analyzetest.Graph(t, analyzetest.Package{
		Path:  "example.com/geom",
		Files: []analyzetest.File{{Name: "geom.go", Src: geomSrc}},
	})

	p := resolvePlan(t, graph, "example.com/geom", plan.DefaultConfig(), "Vec2: Vec2 { X, Y }")

	b, err := MarshalManifest(BuildManifest(p, nil))
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"files"`)
	assert.Contains(t, string(b), `"total": 4`)
}
