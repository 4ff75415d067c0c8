package plan

import (
	"errors"
	"fmt"

	"swizzle-generator/internal/analyze"
	"swizzle-generator/internal/mapping"
)

// CollectDirectives gathers the //swizzle:gen declarations of every loaded
// package, in import path then file order. Bare type names in a directive
// resolve against the package that holds it.
func CollectDirectives(graph *analyze.TypeGraph) ([]*mapping.Declared, error) {
	if graph == nil {
		return nil, nil
	}

	var (
		out  []*mapping.Declared
		errs []error
	)

	for _, pkg := range graph.SortedPackages() {
		for _, file := range pkg.Syntax {
			directives, err := mapping.ParseDirectives(graph.Fset, file)
			if err != nil {
				errs = append(errs, fmt.Errorf("package %s: %w", pkg.Path, err))
			}

			for i := range directives {
				d := &directives[i]

				declared, err := d.Entry.Declare(d.Origin())
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", d.Origin(), err))
					continue
				}

				declared.Home = pkg.Path
				out = append(out, declared)
			}
		}
	}

	return out, errors.Join(errs...)
}
