package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"swizzle-generator/internal/gen"
	"swizzle-generator/internal/plan"
)

type checkOptions struct {
	loadOptions

	list     bool
	manifest string
}

func newCheckCmd(a *app) *cobra.Command {
	o := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate swizzle declarations without generating code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, err := o.resolve(cmd, a.logger, cmd.ErrOrStderr())
			if p == nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), plan.FormatReport(plan.GenerateReport(p), o.list))

			if err == nil && o.manifest != "" {
				return gen.WriteManifest(gen.BuildManifest(p, nil), o.manifest)
			}

			return err
		},
	}

	o.register(cmd)
	cmd.Flags().BoolVarP(&o.list, "list", "l", false, "list every accessor name")
	cmd.Flags().StringVar(&o.manifest, "manifest", "", "write a JSON manifest of the accessors that would be generated")

	return cmd
}
