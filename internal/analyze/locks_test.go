package analyze

import (
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const locksSrc = `package locks

type Mutex struct{ state int32 }

func (m *Mutex) Lock()   {}
func (m *Mutex) Unlock() {}

type noCopy struct{}

func (*noCopy) Lock() {}

type Counter struct {
	_ noCopy
	v int64
}

type Plain struct{ X, Y float64 }

type Guarded struct {
	X  float64
	mu Mutex
}

type Nested struct {
	Inner Guarded
}

type Many struct {
	counters [2]Counter
}

type Pointer struct {
	mu *Mutex
}

type Locker interface{ Lock() }

type WithIface struct {
	l Locker
}

type Odd struct{}

func (*Odd) Lock(n int) {}
`

func checkLocksPkg(t *testing.T) *types.Package {
	t.Helper()

	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, "locks.go", locksSrc, 0)
	require.NoError(t, err)

	pkg, err := (&types.Config{}).Check("example.com/locks", fset, []*ast.File{f}, nil)
	require.NoError(t, err)

	return pkg
}

func TestLockPath(t *testing.T) {
	pkg := checkLocksPkg(t)

	lookup := func(name string) types.Type {
		obj := pkg.Scope().Lookup(name)
		require.NotNil(t, obj, name)

		return obj.Type()
	}

	tests := []struct {
		name string
		want string
	}{
		{"Plain", ""},
		{"Mutex", "locks.Mutex"},
		{"Guarded", "mu locks.Mutex"},
		{"Nested", "Inner.mu locks.Mutex"},
		{"Counter", "_ locks.noCopy"},
		{"Many", "counters[]._ locks.noCopy"},
		{"Pointer", ""},
		{"WithIface", ""},
		{"Odd", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LockPath(lookup(tt.name)))
		})
	}
}
