package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swizzle-generator/internal/diagnostic"
	"swizzle-generator/internal/mapping"
	"swizzle-generator/internal/swizzle"
)

type listOptions struct {
	mappingFile string
	exprs       []string
	source      string
	countOnly   bool
}

func newListCmd(a *app) *cobra.Command {
	o := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the accessors declarations expand to, without loading packages",
		Example: `  swizzle-generator list --expr "Vec2 { X, Y }"
  swizzle-generator list --expr "Rgb { R: (R, A), G: (G), B: (B) }" --source Rgba
  swizzle-generator list --mapping swizzle.yaml --count`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, a)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.mappingFile, "mapping", "m", "", "YAML mapping file")
	f.StringArrayVarP(&o.exprs, "expr", "e", nil, `declaration expression, e.g. "Vec2 { X, Y }" (repeatable)`)
	f.StringVar(&o.source, "source", "", "receiver type of --expr declarations (default: the target)")
	f.BoolVar(&o.countOnly, "count", false, "print only accessor counts")

	return cmd
}

func (o *listOptions) declarations() ([]*mapping.Declared, error) {
	var decls []*mapping.Declared

	if o.mappingFile != "" {
		mf, err := mapping.LoadFile(o.mappingFile)
		if err != nil {
			return nil, err
		}

		decls, err = mf.Declare(filepath.Base(o.mappingFile))
		if err != nil {
			return nil, err
		}
	}

	for i, expr := range o.exprs {
		entry, err := mapping.ParseExpr(expr)
		if err != nil {
			return nil, err
		}

		entry.Source = o.source

		d, err := entry.Declare(fmt.Sprintf("expr#%d", i+1))
		if err != nil {
			return nil, err
		}

		decls = append(decls, d)
	}

	if len(decls) == 0 {
		return nil, fmt.Errorf("%w: nothing to list; pass --mapping or --expr", diagnostic.ErrMalformedSpec)
	}

	return decls, nil
}

func (o *listOptions) run(cmd *cobra.Command, a *app) error {
	decls, err := o.declarations()
	if err != nil {
		return err
	}

	var (
		out   = cmd.OutOrStdout()
		diags diagnostic.Diagnostics
		total uint64
	)

	for _, d := range decls {
		label := d.Origin + " " + d.TypePair()

		n, ok := swizzle.Count(d.Spec)
		if !ok {
			diags.AddError(diagnostic.CodeTooManyMethods, "accessor count overflows", label, "")
			continue
		}

		if o.countOnly {
			fmt.Fprintf(out, "%s: %d\n", label, n)
			total += n

			continue
		}

		accs, err := swizzle.Accessors(d.Spec, d.Naming)
		if err != nil {
			diags.AddErr(err, label, "")
			continue
		}

		names := make([]string, len(accs))
		for i, acc := range accs {
			names[i] = acc.Name
		}

		fmt.Fprintf(out, "%s: %d\n  %s\n", label, n, strings.Join(names, " "))
		total += n
	}

	fmt.Fprintf(out, "total: %d\n", total)

	a.logger.Debug("list complete", zap.Int("declarations", len(decls)))

	printDiagnostics(cmd.ErrOrStderr(), &diags)

	return diags.Error()
}
