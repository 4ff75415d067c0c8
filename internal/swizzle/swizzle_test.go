package swizzle

import (
	"fmt"
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swizzle-generator/internal/diagnostic"
)

func names(accs []Accessor) []string {
	out := make([]string, len(accs))
	for i, a := range accs {
		out[i] = a.Name
	}

	return out
}

func mustAccessors(t *testing.T, d Declaration) []Accessor {
	t.Helper()

	spec, err := Normalize(d)
	require.NoError(t, err)

	accs, err := Accessors(spec, NameOptions{})
	require.NoError(t, err)

	return accs
}

func TestNormalize_SelfSaturates(t *testing.T) {
	spec, err := Normalize(Self("Vec3", "X", "Y", "Z"))
	require.NoError(t, err)

	assert.Equal(t, TypeRef("Vec3"), spec.Target)
	require.Len(t, spec.Fields, 3)

	for _, f := range spec.Fields {
		assert.Equal(t, []FieldName{"X", "Y", "Z"}, f.Candidates, "field %s", f.Name)
	}

	assert.Equal(t, []FieldName{"X", "Y", "Z"}, spec.FieldNames())
}

func TestNormalize_SingleYieldsOneCandidateEach(t *testing.T) {
	spec, err := Normalize(Single("Bar",
		Pair{Target: "A", Source: "Y"},
		Pair{Target: "B", Source: "X"},
		Pair{Target: "C", Source: "Y"},
	))
	require.NoError(t, err)

	for _, f := range spec.Fields {
		assert.Len(t, f.Candidates, 1)
	}

	accs, err := Accessors(spec, NameOptions{})
	require.NoError(t, err)
	require.Len(t, accs, 1)
	assert.Equal(t, "YXY", accs[0].Name)
	assert.Equal(t, []Assignment{{"A", "Y"}, {"B", "X"}, {"C", "Y"}}, accs[0].Assignments)
}

func TestNormalize_CombinationKeepsHeterogeneousLists(t *testing.T) {
	spec, err := Normalize(Combination("Rgb",
		DestinationField{Name: "R", Candidates: []FieldName{"R", "G", "B", "A"}},
		DestinationField{Name: "G", Candidates: []FieldName{"G"}},
		DestinationField{Name: "B", Candidates: []FieldName{"B", "A"}},
	))
	require.NoError(t, err)

	n, ok := Count(spec)
	require.True(t, ok)
	assert.Equal(t, uint64(8), n)
	assert.Equal(t, []FieldName{"R", "G", "B", "A"}, spec.Candidates())
}

func TestNormalize_Errors(t *testing.T) {
	tests := []struct {
		name string
		decl Declaration
		want string
	}{
		{"unknown variant", Declaration{Target: "Vec2"}, "unsupported declaration form Unknown"},
		{"empty self", Self("Vec2"), "lists no fields"},
		{"empty single", Single("Vec2"), "lists no fields"},
		{"empty block", Combination("Vec2"), "lists no fields"},
		{"missing target", Self("", "X"), "missing destination type"},
		{
			"no candidate list",
			Combination("Vec2",
				DestinationField{Name: "X", Candidates: []FieldName{"X"}},
				DestinationField{Name: "Y"},
			),
			`destination field "Y" has no candidate list`,
		},
		{
			"empty candidate list",
			Combination("Vec2", DestinationField{Name: "X", Candidates: []FieldName{}}),
			`destination field "X" has an empty candidate list`,
		},
		{"single without source", Single("Vec2", Pair{Target: "X"}), "has no candidate list"},
		{"duplicate destination", Self("Vec2", "X", "X"), `destination field "X" is declared twice`},
		{
			"duplicate candidate",
			Combination("Vec2", DestinationField{Name: "X", Candidates: []FieldName{"X", "X"}}),
			`candidate "X" is listed twice`,
		},
		{"invalid identifier", Self("Vec2", "X", "1Y"), `"1Y" is not a valid identifier`},
		{"blank identifier", Self("Vec2", "_"), `"_" is not a valid identifier`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.decl)
			require.Error(t, err)
			require.ErrorIs(t, err, diagnostic.ErrMalformedSpec)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEnumerate_OrderTwoFields(t *testing.T) {
	accs := mustAccessors(t, Self("Vec2", "X", "Y"))
	assert.Equal(t, []string{"XX", "XY", "YX", "YY"}, names(accs))

	for i, a := range accs {
		assert.Equal(t, i, a.Index)
	}
}

func TestEnumerate_OrderThreeFields(t *testing.T) {
	accs := mustAccessors(t, Self("Triple", "a", "b", "c"))
	require.Len(t, accs, 27)

	var want []string

	for _, p := range "abc" {
		for _, q := range "abc" {
			for _, r := range "abc" {
				want = append(want, string([]rune{p, q, r}))
			}
		}
	}

	assert.Equal(t, want, names(accs))
	assert.Equal(t, []string{"aaa", "aab", "aac", "aba"}, names(accs[:4]))
	assert.Equal(t, "baa", accs[9].Name)
	assert.Equal(t, "ccc", accs[26].Name)
}

func TestEnumerate_SelfCountIsNToTheN(t *testing.T) {
	fields := []FieldName{"A", "B", "C", "D", "E"}

	for n := 1; n <= len(fields); n++ {
		spec, err := Normalize(Self("T", fields[:n]...))
		require.NoError(t, err)

		want := uint64(math.Pow(float64(n), float64(n)))

		count, ok := Count(spec)
		require.True(t, ok)
		assert.Equal(t, want, count, "n=%d", n)

		accs, err := Accessors(spec, NameOptions{})
		require.NoError(t, err)
		assert.Len(t, accs, int(want), "n=%d", n)
	}
}

func TestEnumerate_CombinationCountIsProduct(t *testing.T) {
	accs := mustAccessors(t, Combination("Rgb",
		DestinationField{Name: "R", Candidates: []FieldName{"R", "G", "B", "A"}},
		DestinationField{Name: "G", Candidates: []FieldName{"R", "G"}},
		DestinationField{Name: "B", Candidates: []FieldName{"B", "A", "G"}},
	))
	assert.Len(t, accs, 4*2*3)
	assert.Equal(t, "RRB", accs[0].Name)
	assert.Equal(t, "RRA", accs[1].Name)
	assert.Equal(t, "RRG", accs[2].Name)
	assert.Equal(t, "RGB", accs[3].Name)
	assert.Equal(t, "AGG", accs[len(accs)-1].Name)
}

func TestEnumerate_CrossTypeScalar(t *testing.T) {
	accs := mustAccessors(t, Combination("Vec2",
		DestinationField{Name: "X", Candidates: []FieldName{"X"}},
		DestinationField{Name: "Y", Candidates: []FieldName{"X"}},
	))
	require.Len(t, accs, 1)
	assert.Equal(t, "XX", accs[0].Name)
	assert.Equal(t, []FieldName{"X", "X"}, accs[0].Sources())
}

func TestEnumerate_AssignmentsFollowDestinationOrder(t *testing.T) {
	accs := mustAccessors(t, Self("Vec3", "X", "Y", "Z"))

	for _, a := range accs {
		require.Len(t, a.Assignments, 3, spew.Sdump(a))
		assert.Equal(t, FieldName("X"), a.Assignments[0].Target)
		assert.Equal(t, FieldName("Y"), a.Assignments[1].Target)
		assert.Equal(t, FieldName("Z"), a.Assignments[2].Target)
	}

	zyx := accs[2*9+1*3+0]
	assert.Equal(t, "ZYX", zyx.Name)
	assert.Equal(t, []int{2, 1, 0}, zyx.Choices)
}

func TestEnumerate_StopsEarly(t *testing.T) {
	spec, err := Normalize(Self("Vec4", "X", "Y", "Z", "W"))
	require.NoError(t, err)

	var got []string

	for acc := range Enumerate(spec, NameOptions{}) {
		got = append(got, acc.Name)
		if len(got) == 3 {
			break
		}
	}

	assert.Equal(t, []string{"XXXX", "XXXY", "XXXZ"}, got)
}

func TestEnumerate_EmptyCandidatesYieldNothing(t *testing.T) {
	spec := &Spec{Target: "T", Fields: []DestinationField{{Name: "X"}}}

	for range Enumerate(spec, NameOptions{}) {
		t.Fatal("unexpected accessor")
	}

	for range Enumerate(nil, NameOptions{}) {
		t.Fatal("unexpected accessor")
	}
}

func TestAccessors_PrefixSuffix(t *testing.T) {
	spec, err := Normalize(Combination("Scalar",
		DestinationField{Name: "X", Candidates: []FieldName{"X", "Y"}},
	))
	require.NoError(t, err)

	accs, err := Accessors(spec, NameOptions{Prefix: "Scalar", Suffix: "Value"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ScalarXValue", "ScalarYValue"}, names(accs))
}

func TestAccessors_KeywordNamesRejected(t *testing.T) {
	spec, err := Normalize(Self("Flags", "i", "f"))
	require.NoError(t, err)

	_, err = Accessors(spec, NameOptions{})
	require.Error(t, err)
	require.ErrorIs(t, err, diagnostic.ErrNameCollision)
	require.ErrorIs(t, err, diagnostic.ErrInvalidName)
	assert.Contains(t, err.Error(), `"if" is a Go keyword`)
}

func TestAccessors_ConcatenationCollisionRejected(t *testing.T) {
	spec, err := Normalize(Combination("Pair",
		DestinationField{Name: "P", Candidates: []FieldName{"A", "AB"}},
		DestinationField{Name: "Q", Candidates: []FieldName{"BC", "C"}},
	))
	require.NoError(t, err)

	_, err = Accessors(spec, NameOptions{})
	require.Error(t, err)
	require.ErrorIs(t, err, diagnostic.ErrNameCollision)
	assert.Contains(t, err.Error(), `"ABC" is produced by both (P: A, Q: BC) and (P: AB, Q: C)`)
}

func TestAccessors_InvalidSpec(t *testing.T) {
	_, err := Accessors(&Spec{Target: "T"}, NameOptions{})
	require.ErrorIs(t, err, diagnostic.ErrMalformedSpec)

	_, err = Accessors(nil, NameOptions{})
	require.ErrorIs(t, err, diagnostic.ErrMalformedSpec)
}

func TestCount_Overflow(t *testing.T) {
	spec := &Spec{Target: "Wide"}
	for i := range 65 {
		spec.Fields = append(spec.Fields, DestinationField{
			Name:       FieldName(fmt.Sprintf("F%d", i)),
			Candidates: []FieldName{"A", "B"},
		})
	}

	_, ok := Count(spec)
	assert.False(t, ok)

	_, err := Accessors(spec, NameOptions{})
	require.ErrorIs(t, err, diagnostic.ErrMalformedSpec)

	n, ok := Count(&Spec{})
	assert.True(t, ok)
	assert.Zero(t, n)
}

func TestSpec_MissingAndUnknown(t *testing.T) {
	spec, err := Normalize(Single("Vec3", Pair{"X", "X"}, Pair{"W", "Y"}))
	require.NoError(t, err)

	declared := []FieldName{"X", "Y", "Z"}
	assert.Equal(t, []FieldName{"Y", "Z"}, spec.Missing(declared))
	assert.Equal(t, []FieldName{"W"}, spec.Unknown(declared))
}

func TestTypeRef_Split(t *testing.T) {
	pkg, name := TypeRef("example.com/geom.Vec2").Split()
	assert.Equal(t, "example.com/geom", pkg)
	assert.Equal(t, "Vec2", name)

	pkg, name = TypeRef("Vec2").Split()
	assert.Empty(t, pkg)
	assert.Equal(t, "Vec2", name)
}

func TestVariant_String(t *testing.T) {
	assert.Equal(t, "Self", VariantSelf.String())
	assert.Equal(t, "Single", VariantSingle.String())
	assert.Equal(t, "Combination", VariantCombination.String())
	assert.Equal(t, "Unknown", VariantUnknown.String())
	assert.Equal(t, "Variant(9)", Variant(9).String())
}

func TestValidateMethodName(t *testing.T) {
	require.NoError(t, ValidateMethodName("XY"))
	require.NoError(t, ValidateMethodName("xy"))
	require.ErrorIs(t, ValidateMethodName("for"), diagnostic.ErrNameCollision)
	require.ErrorIs(t, ValidateMethodName(""), diagnostic.ErrNameCollision)
	require.ErrorIs(t, ValidateMethodName("_"), diagnostic.ErrNameCollision)
	require.ErrorIs(t, ValidateMethodName("X-Y"), diagnostic.ErrNameCollision)

	assert.True(t, IsExportedName("XY"))
	assert.False(t, IsExportedName("xy"))
}
