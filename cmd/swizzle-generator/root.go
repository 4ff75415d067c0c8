package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swizzle-generator/internal/logging"
)

// app carries state shared by all commands.
type app struct {
	verbose bool
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "swizzle-generator",
		Short: "Generate swizzle accessor methods for Go structs",
		Long: `swizzle-generator expands swizzle declarations into plain Go methods.

A declaration names a destination struct and, for every destination field,
the source fields that may supply it. One method is generated for every
combination, named after the chosen source fields in order:

  Vec2 { X, Y }                      XX, XY, YX, YY
  Vec2 { X: Y, Y: X }                YX
  Rgb { R: (R, A), G: (G), B: (B) }  RGB, AGB`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = logging.New(a.verbose)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newGenCmd(a),
		newCheckCmd(a),
		newListCmd(a),
	)

	return root
}
