package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swizzle-generator/internal/gen"
)

type genOptions struct {
	loadOptions

	outDir     string
	manifest   string
	noComments bool
	noDebug    bool
	dryRun     bool
}

func newGenCmd(a *app) *cobra.Command {
	o := &genOptions{}

	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Generate swizzle accessors",
		Long: `Resolve every declaration of the mapping file and of the //swizzle:gen
directives in the loaded packages, then write one file of accessors into
each package that receives methods.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, a)
		},
	}

	o.register(cmd)

	f := cmd.Flags()
	f.StringVarP(&o.outDir, "out", "o", "", "write every file into this directory instead of the package directories")
	f.StringVar(&o.manifest, "manifest", "", "write a JSON manifest of the generated accessors")
	f.BoolVar(&o.noComments, "no-comments", false, "omit doc comments on generated methods")
	f.BoolVar(&o.noDebug, "no-debug-unformatted", false, "do not write .unformatted.go files when formatting fails")
	f.BoolVar(&o.dryRun, "dry-run", false, "print generated code instead of writing it")

	return cmd
}

func (o *genOptions) run(cmd *cobra.Command, a *app) error {
	p, config, err := o.resolve(cmd, a.logger, cmd.ErrOrStderr())
	if p != nil {
		printDiagnostics(cmd.ErrOrStderr(), &p.Diagnostics)
	}

	if err != nil {
		return err
	}

	genConfig := gen.DefaultGeneratorConfig()
	genConfig.OutputFile = config.OutputFile
	genConfig.OutputDir = o.outDir
	genConfig.GenerateComments = !o.noComments
	genConfig.DebugUnformatted = !o.noDebug

	files, err := gen.NewGenerator(genConfig, a.logger).Generate(p)
	if err != nil {
		return err
	}

	if o.dryRun {
		for _, f := range files {
			fmt.Fprintf(cmd.OutOrStdout(), "=== %s ===\n%s\n", f.Path(), f.Content)
		}

		return nil
	}

	written, err := gen.WriteFiles(files)
	if err != nil {
		return err
	}

	a.logger.Info("generation complete",
		zap.Int("files", len(files)),
		zap.Int("written", written),
		zap.Int("accessors", p.AccessorCount()))

	if o.manifest != "" {
		if err := gen.WriteManifest(gen.BuildManifest(p, files), o.manifest); err != nil {
			return err
		}
	}

	return nil
}
