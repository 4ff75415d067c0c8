package mapping

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"path/filepath"
	"strings"

	"swizzle-generator/internal/diagnostic"
)

// DirectivePrefix marks a declaration in a struct type's doc comment.
const DirectivePrefix = "//swizzle:gen"

// Directive is one //swizzle:gen comment found on a struct type.
type Directive struct {
	Entry *Entry
	Pos   token.Position
}

// Origin returns "file.go:line" for diagnostics.
func (d *Directive) Origin() string {
	return positionString(d.Pos)
}

// ParseDirectives collects the //swizzle:gen directives of file. The
// annotated type becomes the source of each entry.
func ParseDirectives(fset *token.FileSet, file *ast.File) ([]Directive, error) {
	var (
		out  []Directive
		errs []error
	)

	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}

		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}

			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}

			if doc == nil {
				continue
			}

			for _, c := range doc.List {
				text, ok := strings.CutPrefix(c.Text, DirectivePrefix)
				if !ok {
					continue
				}

				pos := fset.Position(c.Slash)

				if text != "" && text[0] != ' ' && text[0] != '\t' {
					continue // e.g. //swizzle:generate belongs to someone else
				}

				if _, isStruct := ts.Type.(*ast.StructType); !isStruct {
					errs = append(errs, fmt.Errorf("%w: %s: directive on %s, which is not a struct type",
						diagnostic.ErrMalformedSpec, positionString(pos), ts.Name.Name))

					continue
				}

				entry, err := ParseExpr(strings.TrimSpace(text))
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", positionString(pos), err))
					continue
				}

				entry.Source = ts.Name.Name
				out = append(out, Directive{Entry: entry, Pos: pos})
			}
		}
	}

	return out, errors.Join(errs...)
}

func positionString(pos token.Position) string {
	return fmt.Sprintf("%s:%d", filepath.Base(pos.Filename), pos.Line)
}
