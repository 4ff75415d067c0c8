package gen

import (
	"fmt"
	"go/types"
	"strings"

	"swizzle-generator/internal/analyze"
	"swizzle-generator/internal/plan"
)

// templateData holds all data needed for one generated file.
type templateData struct {
	PackageName      string
	Imports          []importSpec
	Sections         []sectionData
	GenerateComments bool
}

// sectionData groups the methods of one declaration.
type sectionData struct {
	Header  string
	Methods []methodData
}

// methodData is one generated accessor.
type methodData struct {
	Name        string
	Receiver    string
	SourceType  string
	TargetType  string
	Doc         string
	Assignments []assignmentData
}

// assignmentData represents a single field of the returned composite literal.
type assignmentData struct {
	TargetField string
	SourceExpr  string
}

// buildTemplateData constructs the template data of one source package.
func (g *Generator) buildTemplateData(group plan.PackageSwizzles) (*templateData, error) {
	home := group.Package.Path
	imports := newImportSet(home)

	data := &templateData{
		PackageName:      group.Package.Name,
		GenerateComments: g.config.GenerateComments,
	}

	// Every package is imported before the receiver is named so the
	// receiver never shadows one.
	for _, s := range group.Swizzles {
		typeName(s.TargetType, imports)

		for _, f := range s.Fields {
			for _, src := range f.Sources {
				if src.Strategy == plan.StrategyConvert {
					imports.typeString(src.ConvertTo)
				}
			}
		}
	}

	recv := g.config.Receiver
	for receiverTaken(recv, imports, group.Package) {
		recv += "0"
	}

	for _, s := range group.Swizzles {
		section, err := buildSection(s, imports, recv)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", s.Origin, s.TypePair(), err)
		}

		data.Sections = append(data.Sections, section)
	}

	data.Imports = imports.specs()

	return data, nil
}

// receiverTaken reports whether recv would shadow a name the method bodies
// may refer to: an import, a package-level declaration or a predeclared
// identifier.
func receiverTaken(recv string, imports *importSet, pkg *analyze.PackageInfo) bool {
	if imports.has(recv) || types.Universe.Lookup(recv) != nil {
		return true
	}

	return pkg != nil && pkg.Scope != nil && pkg.Scope.Lookup(recv) != nil
}

func buildSection(s *plan.ResolvedSwizzle, imports *importSet, recv string) (sectionData, error) {
	source := s.SourceType.ID.Name
	target := typeName(s.TargetType, imports)

	section := sectionData{
		Header: fmt.Sprintf("%s -> %s (%s)", source, target, s.Origin),
	}

	for _, acc := range s.Accessors {
		m := methodData{
			Name:       acc.Name,
			Receiver:   recv,
			SourceType: source,
			TargetType: target,
		}

		names := make([]string, len(acc.Assignments))

		for i, as := range acc.Assignments {
			b, ok := s.Binding(as.Target, as.Source)
			if !ok {
				return sectionData{}, fmt.Errorf("accessor %s: no binding for %s <- %s", acc.Name, as.Target, as.Source)
			}

			expr := recv + "." + b.Field.Name
			if b.Strategy == plan.StrategyConvert {
				expr = imports.conversion(b.ConvertTo, expr)
			}

			m.Assignments = append(m.Assignments, assignmentData{
				TargetField: string(as.Target),
				SourceExpr:  expr,
			})
			names[i] = string(as.Source)
		}

		m.Doc = fmt.Sprintf("%s returns a new %s with the values swizzled: %s.",
			acc.Name, target, strings.Join(names, ", "))

		section.Methods = append(section.Methods, m)
	}

	return section, nil
}

// typeName returns the qualified name of a named type as written in the
// generated file.
func typeName(t *analyze.TypeInfo, imports *importSet) string {
	if t.GoType != nil {
		return imports.typeString(t.GoType)
	}

	if local := imports.add(t.ID.PkgPath, ""); local != "" {
		return local + "." + t.ID.Name
	}

	return t.ID.Name
}
