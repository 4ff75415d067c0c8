package gen

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"

	"swizzle-generator/internal/plan"
)

// Manifest is the definition table of a generation run: every declaration
// with the accessors it produced.
type Manifest struct {
	Generator string            `json:"generator"`
	Swizzles  []ManifestSwizzle `json:"swizzles"`
	Files     []ManifestFile    `json:"files,omitempty"`
	Total     int               `json:"total"`
}

// ManifestSwizzle describes one declaration.
type ManifestSwizzle struct {
	Origin    string             `json:"origin"`
	Package   string             `json:"package"`
	Source    string             `json:"source"`
	Target    string             `json:"target"`
	Prefix    string             `json:"prefix,omitempty"`
	Suffix    string             `json:"suffix,omitempty"`
	Accessors []ManifestAccessor `json:"accessors"`
}

// ManifestAccessor is one generated method.
type ManifestAccessor struct {
	Name        string               `json:"name"`
	Assignments []ManifestAssignment `json:"assignments"`
}

// ManifestAssignment records which source field feeds a destination field.
type ManifestAssignment struct {
	Target  string `json:"target"`
	Source  string `json:"source"`
	Convert string `json:"convert,omitempty"`
}

// ManifestFile is one written file.
type ManifestFile struct {
	Package string `json:"package"`
	Path    string `json:"path"`
	Methods int    `json:"methods"`
}

// BuildManifest produces the definition table of a plan. Files may be nil
// when nothing was generated, e.g. for check runs.
func BuildManifest(p *plan.ResolvedPlan, files []GeneratedFile) *Manifest {
	m := &Manifest{
		Generator: "swizzle-generator",
		Swizzles:  []ManifestSwizzle{},
	}

	for i := range p.Swizzles {
		s := &p.Swizzles[i]

		ms := ManifestSwizzle{
			Origin:    s.Origin,
			Package:   s.SourcePkg(),
			Source:    s.SourceType.ID.Name,
			Target:    s.TargetType.ID.String(),
			Prefix:    s.Naming.Prefix,
			Suffix:    s.Naming.Suffix,
			Accessors: make([]ManifestAccessor, 0, len(s.Accessors)),
		}

		for _, acc := range s.Accessors {
			ma := ManifestAccessor{Name: acc.Name}

			for _, as := range acc.Assignments {
				entry := ManifestAssignment{Target: string(as.Target), Source: string(as.Source)}

				if b, ok := s.Binding(as.Target, as.Source); ok && b.Strategy == plan.StrategyConvert {
					entry.Convert = b.ConvertTo.String()
				}

				ma.Assignments = append(ma.Assignments, entry)
			}

			ms.Accessors = append(ms.Accessors, ma)
		}

		m.Total += len(ms.Accessors)
		m.Swizzles = append(m.Swizzles, ms)
	}

	for i := range files {
		m.Files = append(m.Files, ManifestFile{
			Package: files[i].Package,
			Path:    files[i].Path(),
			Methods: files[i].Methods,
		})
	}

	return m
}

// MarshalManifest encodes the manifest as indented JSON.
func MarshalManifest(m *Manifest) ([]byte, error) {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}

	return append(b, '\n'), nil
}

// WriteManifest writes the manifest to path.
func WriteManifest(m *Manifest, path string) error {
	b, err := MarshalManifest(m)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, b, filePerm); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}

	return nil
}
