package analyze

import (
	"go/ast"
	"go/parser"
	"go/types"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	vectorsPkg = "swizzle-generator/examples/vectors"
	colorPkg   = "swizzle-generator/examples/color"
)

func TestAnalyzer_LoadPackages(t *testing.T) {
	analyzer := NewAnalyzer()
	graph, err := analyzer.LoadPackages(vectorsPkg, colorPkg)
	require.NoError(t, err)
	require.NotNil(t, graph)

	assert.Contains(t, graph.Packages, vectorsPkg)
	assert.Contains(t, graph.Packages, colorPkg)

	assert.Contains(t, graph.Types, TypeID{PkgPath: vectorsPkg, Name: "Vec2"})
	assert.Contains(t, graph.Types, TypeID{PkgPath: colorPkg, Name: "Rgba"})

	pkgs := graph.SortedPackages()
	require.Len(t, pkgs, 2)
	assert.Equal(t, colorPkg, pkgs[0].Path)
	assert.Equal(t, vectorsPkg, pkgs[1].Path)
}

func TestAnalyzer_PackageInfo(t *testing.T) {
	graph, err := NewAnalyzer().LoadPackages(vectorsPkg)
	require.NoError(t, err)

	pkg := graph.Packages[vectorsPkg]
	require.NotNil(t, pkg)
	assert.Equal(t, "vectors", pkg.Name)
	assert.Equal(t, "vectors", filepath.Base(pkg.Dir))
	assert.NotEmpty(t, pkg.Syntax)
	assert.Contains(t, pkg.Types, TypeID{PkgPath: vectorsPkg, Name: "Scalar"})
}

func TestAnalyzer_StructFieldsInOrder(t *testing.T) {
	graph, err := NewAnalyzer().LoadPackages(vectorsPkg)
	require.NoError(t, err)

	vec3 := graph.GetType(TypeID{PkgPath: vectorsPkg, Name: "Vec3"})
	require.NotNil(t, vec3)
	assert.Equal(t, TypeKindStruct, vec3.Kind)
	assert.Equal(t, []string{"X", "Y", "Z"}, vec3.FieldNames())
	assert.Regexp(t, `^vectors\.go:\d+$`, vec3.Pos)

	x, ok := vec3.Field("X")
	require.True(t, ok)
	assert.True(t, x.Exported)
	assert.Equal(t, TypeKindBasic, x.Type.Kind)
	assert.Equal(t, "float64", x.Type.GoType.String())

	_, ok = vec3.Field("W")
	assert.False(t, ok)
}

func TestAnalyzer_MethodsCarryFile(t *testing.T) {
	graph, err := NewAnalyzer().LoadPackages(vectorsPkg)
	require.NoError(t, err)

	vec2 := graph.GetType(TypeID{PkgPath: vectorsPkg, Name: "Vec2"})
	require.NotNil(t, vec2)

	dot, ok := vec2.Method("Dot")
	require.True(t, ok)
	assert.Equal(t, "vectors.go", dot.File)
	assert.False(t, dot.Pointer)

	yx, ok := vec2.Method("YX")
	require.True(t, ok)
	assert.Equal(t, "swizzle_gen.go", yx.File)

	_, ok = vec2.Method("Missing")
	assert.False(t, ok)
}

func TestAnalyzer_WithoutGenerated(t *testing.T) {
	graph, err := NewAnalyzer(
		WithoutGenerated("swizzle_gen.go", "// Code generated by swizzle-generator."),
	).LoadPackages(vectorsPkg)
	require.NoError(t, err)

	vec2 := graph.GetType(TypeID{PkgPath: vectorsPkg, Name: "Vec2"})
	require.NotNil(t, vec2)

	_, ok := vec2.Method("Dot")
	assert.True(t, ok)

	_, ok = vec2.Method("YX")
	assert.False(t, ok, "generated methods are hidden")
}

func TestAnalyzer_GetStruct(t *testing.T) {
	analyzer := NewAnalyzer()
	_, err := analyzer.LoadPackages(colorPkg)
	require.NoError(t, err)

	rgb, err := analyzer.GetStruct(colorPkg, "Rgb")
	require.NoError(t, err)
	assert.Equal(t, []string{"R", "G", "B"}, rgb.FieldNames())

	_, err = analyzer.GetStruct(colorPkg, "Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	_, err = analyzer.GetStruct(colorPkg, "Channel")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a struct")
}

func TestAnalyzer_BadPattern(t *testing.T) {
	_, err := NewAnalyzer().LoadPackages("swizzle-generator/does/not/exist")
	require.Error(t, err)
}

func TestTypeKind_String(t *testing.T) {
	assert.Equal(t, "struct", TypeKindStruct.String())
	assert.Equal(t, "array", TypeKindArray.String())
	assert.Equal(t, "unknown", TypeKindUnknown.String())
}

func TestAnalyzer_AddPackage(t *testing.T) {
	analyzer := NewAnalyzer()
	graph := analyzer.Graph()

	f, err := parser.ParseFile(graph.Fset, "geom.go", `package geom

type Vec2 struct{ X, Y float64 }

func (v Vec2) Sum() float64 { return v.X + v.Y }

func (v *Vec2) Scale(k float64) { v.X *= k; v.Y *= k }

type Label string
`, parser.ParseComments)
	require.NoError(t, err)

	pkg, err := (&types.Config{}).Check("example.com/geom", graph.Fset, []*ast.File{f}, nil)
	require.NoError(t, err)

	info := analyzer.AddPackage(pkg, "/src/geom", []*ast.File{f})
	require.NotNil(t, info)
	assert.Equal(t, "geom", info.Name)
	assert.Equal(t, "/src/geom", info.Dir)
	assert.Len(t, info.Types, 2)
	require.NotNil(t, info.Scope)
	assert.NotNil(t, info.Scope.Lookup("Label"))

	vec2 := graph.GetType(TypeID{PkgPath: "example.com/geom", Name: "Vec2"})
	require.NotNil(t, vec2)
	assert.Equal(t, "geom.go:3", vec2.Pos)
	require.Len(t, vec2.Methods, 2)
	assert.Equal(t, MethodInfo{Name: "Scale", File: "geom.go", Pointer: true}, vec2.Methods[0])
	assert.Equal(t, MethodInfo{Name: "Sum", File: "geom.go"}, vec2.Methods[1])

	label := graph.GetType(TypeID{PkgPath: "example.com/geom", Name: "Label"})
	require.NotNil(t, label)
	assert.Equal(t, TypeKindAlias, label.Kind)
	require.NotNil(t, label.Underlying)
	assert.Equal(t, TypeKindBasic, label.Underlying.Kind)
}
