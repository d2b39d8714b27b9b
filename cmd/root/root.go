package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/freqlab/l21/cmd/bound"
	"github.com/freqlab/l21/cmd/generate"
	"github.com/freqlab/l21/cmd/label"
	"github.com/freqlab/l21/internal/logging"
)

func NewRootCmd() *cobra.Command {
	var verbose bool
	rootCmd := &cobra.Command{
		Use:   "l21",
		Short: "l21 computes optimal L(2,1)-labelings of graphs",
		Long: `l21 computes minimum-span L(2,1)-labelings of undirected graphs by
building a 0/1 integer program and handing it to a SAT-based solver.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			logger := logging.New(cmd.ErrOrStderr(), logging.Level(verbose))
			cmd.SetContext(logging.WithLogger(ctx, logger))
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// add sub-commands
	rootCmd.AddCommand(label.NewLabelCommand())
	rootCmd.AddCommand(bound.NewBoundCommand())
	rootCmd.AddCommand(generate.NewGenerateCommand())

	return rootCmd
}
