// Package analyzetest builds type graphs from inline Go sources for tests.
package analyzetest

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"

	"swizzle-generator/internal/analyze"
)

// File is one source file of a test package.
type File struct {
	Name string
	Src  string
}

// Package is a test package. Dir is recorded as the package directory.
type Package struct {
	Path  string
	Dir   string
	Files []File
}

// Graph type-checks pkgs in order and returns their type graph. A package
// may import the packages listed before it.
func Graph(tb testing.TB, pkgs ...Package) *analyze.TypeGraph {
	tb.Helper()

	analyzer := analyze.NewAnalyzer()
	graph := analyzer.Graph()
	checked := importer{}

	for _, p := range pkgs {
		var syntax []*ast.File

		for _, f := range p.Files {
			file, err := parser.ParseFile(graph.Fset, f.Name, f.Src, parser.ParseComments)
			require.NoError(tb, err, "parse %s/%s", p.Path, f.Name)

			syntax = append(syntax, file)
		}

		conf := types.Config{Importer: checked}

		pkg, err := conf.Check(p.Path, graph.Fset, syntax, nil)
		require.NoError(tb, err, "type-check %s", p.Path)

		checked[p.Path] = pkg
		analyzer.AddPackage(pkg, p.Dir, syntax)
	}

	return graph
}

type importer map[string]*types.Package

func (m importer) Import(path string) (*types.Package, error) {
	if pkg, ok := m[path]; ok {
		return pkg, nil
	}

	return nil, fmt.Errorf("package %q is not part of the test graph", path)
}
