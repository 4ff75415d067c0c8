package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"text/template"

	"go.uber.org/zap"

	"swizzle-generator/internal/analyze"
	"swizzle-generator/internal/plan"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputFile is the name of the file written into every source package.
	OutputFile string
	// OutputDir, when set, receives every generated file instead of the
	// package directories.
	OutputDir string
	// Receiver is the receiver name of generated methods.
	Receiver string
	// GenerateComments enables doc comments on generated methods.
	GenerateComments bool
	// DebugUnformatted writes the raw template output next to the intended
	// file when it does not format.
	DebugUnformatted bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputFile:       plan.DefaultOutputFile,
		Receiver:         "v",
		GenerateComments: true,
		DebugUnformatted: true,
	}
}

// Generator generates Go code from a resolved plan.
type Generator struct {
	config GeneratorConfig
	logger *zap.Logger
}

// NewGenerator creates a new Generator with the given configuration. A nil
// logger discards output.
func NewGenerator(config GeneratorConfig, logger *zap.Logger) *Generator {
	if config.OutputFile == "" {
		config.OutputFile = plan.DefaultOutputFile
	}

	if config.Receiver == "" {
		config.Receiver = "v"
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Generator{config: config, logger: logger}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Package is the import path the file belongs to.
	Package string
	// Dir is the directory the file is written to.
	Dir string
	// Filename is the base name of the file (e.g., "swizzle_gen.go").
	Filename string
	// Methods is the number of accessors in the file.
	Methods int
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the full output path of the file.
func (f *GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Generate generates one file per source package of the plan, ordered by
// import path.
func (g *Generator) Generate(p *plan.ResolvedPlan) ([]GeneratedFile, error) {
	var files []GeneratedFile

	for _, group := range p.BySourcePackage() {
		if group.Package == nil {
			return nil, fmt.Errorf("package of %s was not loaded", group.Swizzles[0].SourcePkg())
		}

		file, err := g.generatePackage(group)
		if err != nil {
			return files, fmt.Errorf("generating %s: %w", group.Package.Path, err)
		}

		g.logger.Debug("file generated",
			zap.String("package", file.Package),
			zap.String("path", file.Path()),
			zap.Int("methods", file.Methods))

		files = append(files, *file)
	}

	return files, nil
}

// generatePackage generates the file of a single source package.
func (g *Generator) generatePackage(group plan.PackageSwizzles) (*GeneratedFile, error) {
	data, err := g.buildTemplateData(group)
	if err != nil {
		return nil, err
	}

	file := &GeneratedFile{
		Package:  group.Package.Path,
		Dir:      g.outputDir(group.Package),
		Filename: g.config.OutputFile,
	}

	for _, s := range group.Swizzles {
		file.Methods += len(s.Accessors)
	}

	var buf bytes.Buffer
	if err := swizzleTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.DebugUnformatted {
			if debugErr := writeDebugUnformatted(file.Dir, file.Filename, buf.Bytes()); debugErr != nil {
				g.logger.Warn("writing unformatted output", zap.Error(debugErr))
			}
		}

		// Return unformatted code for debugging
		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	file.Content = formatted

	return file, nil
}

func (g *Generator) outputDir(pkg *analyze.PackageInfo) string {
	if g.config.OutputDir != "" {
		return g.config.OutputDir
	}

	return pkg.Dir
}

// Header is the first line of every generated file.
const Header = "// Code generated by swizzle-generator. DO NOT EDIT."

var swizzleTemplate = template.Must(template.New("swizzle").Parse(Header + `

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{- range .Sections}}{{$comments := $.GenerateComments}}
{{if $comments}}// {{.Header}}
{{end}}
{{- range .Methods}}
{{if $comments}}// {{.Doc}}
{{end}}func ({{.Receiver}} {{.SourceType}}) {{.Name}}() {{.TargetType}} {
	return {{.TargetType}}{
{{range .Assignments}}		{{.TargetField}}: {{.SourceExpr}},
{{end}}	}
}
{{end}}{{end}}`))
