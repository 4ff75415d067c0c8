package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swizzle-generator/internal/analyze"
	"swizzle-generator/internal/diagnostic"
	"swizzle-generator/internal/gen"
	"swizzle-generator/internal/mapping"
	"swizzle-generator/internal/plan"
)

var errResolve = errors.New("swizzle declarations have errors")

// loadOptions are the flags shared by gen and check.
type loadOptions struct {
	patterns      []string
	dir           string
	mappingFile   string
	outputFile    string
	allowConvert  bool
	warnThreshold int
	maxAccessors  int
	strict        bool
}

func (o *loadOptions) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSliceVarP(&o.patterns, "pkg", "p", []string{"."}, "package patterns to load (repeatable)")
	f.StringVar(&o.dir, "dir", "", "directory package patterns are resolved from")
	f.StringVarP(&o.mappingFile, "mapping", "m", "", "YAML mapping file")
	f.StringVar(&o.outputFile, "output-file", plan.DefaultOutputFile, "generated file name in every package")
	f.BoolVar(&o.allowConvert, "allow-convert", false, "emit explicit conversions for convertible field types")
	f.IntVar(&o.warnThreshold, "warn-threshold", plan.DefaultWarnThreshold,
		"warn when a declaration expands to more accessors (0 = never)")
	f.IntVar(&o.maxAccessors, "max-accessors", 0, "fail when a declaration expands to more accessors (0 = unlimited)")
	f.BoolVar(&o.strict, "strict", false, "treat warnings as errors")
}

// config merges the mapping file options with flags; flags given explicitly win.
func (o *loadOptions) config(cmd *cobra.Command, mf *mapping.MappingFile) plan.ResolutionConfig {
	config := plan.DefaultConfig()
	if mf != nil {
		config = config.WithOptions(mf.Options)
	}

	f := cmd.Flags()

	if f.Changed("output-file") {
		config.OutputFile = o.outputFile
	}

	if f.Changed("allow-convert") {
		config.AllowConvert = o.allowConvert
	}

	if f.Changed("warn-threshold") {
		config.WarnThreshold = o.warnThreshold
	}

	if f.Changed("max-accessors") {
		config.MaxAccessors = o.maxAccessors
	}

	config.StrictMode = o.strict

	return config
}

// resolve runs the pipeline up to a resolved plan. Diagnostics are written
// to w; a plan with errors is returned together with errResolve.
func (o *loadOptions) resolve(
	cmd *cobra.Command,
	logger *zap.Logger,
	w io.Writer,
) (*plan.ResolvedPlan, plan.ResolutionConfig, error) {
	var (
		mf    *mapping.MappingFile
		decls []*mapping.Declared
	)

	if o.mappingFile != "" {
		var err error

		mf, err = mapping.LoadFile(o.mappingFile)
		if err != nil {
			return nil, plan.ResolutionConfig{}, err
		}

		diags := mapping.Validate(mf)
		printDiagnostics(w, diags)

		if diags.HasErrors() {
			return nil, plan.ResolutionConfig{}, errResolve
		}

		decls, err = mf.Declare(filepath.Base(o.mappingFile))
		if err != nil {
			return nil, plan.ResolutionConfig{}, err
		}

		logger.Debug("mapping loaded",
			zap.String("file", o.mappingFile),
			zap.Int("declarations", len(decls)))
	}

	config := o.config(cmd, mf)

	analyzer := analyze.NewAnalyzer(
		analyze.WithDir(o.dir),
		analyze.WithLogger(logger),
		analyze.WithoutGenerated(config.OutputFile, gen.Header),
	)

	graph, err := analyzer.LoadPackages(o.patterns...)
	if err != nil {
		return nil, config, err
	}

	directives, err := plan.CollectDirectives(graph)
	if err != nil {
		return nil, config, err
	}

	logger.Debug("directives collected", zap.Int("declarations", len(directives)))

	decls = append(decls, directives...)
	if len(decls) == 0 {
		logger.Warn("no swizzle declarations found", zap.Strings("packages", o.patterns))
	}

	p, err := plan.NewResolver(graph, decls, config, logger).Resolve()
	if err != nil {
		return p, config, errResolve
	}

	return p, config, nil
}

func printDiagnostics(w io.Writer, d *diagnostic.Diagnostics) {
	for _, e := range d.Errors {
		fmt.Fprintf(w, "error: %s\n", e.String())
	}

	for _, warn := range d.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warn.String())
	}
}
