package bound

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/freqlab/l21/internal/ui"
	"github.com/freqlab/l21/pkg/graph"
	"github.com/freqlab/l21/pkg/labeling"
)

func NewBoundCommand() *cobra.Command {
	var strategy string
	cmd := &cobra.Command{
		Use:   "bound <path>",
		Short: "Prints the span bound and model size for a graph without solving",
		Args:  cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := labeling.ParseBoundStrategy(strategy)
			if err != nil {
				return err
			}
			g, err := graph.ParseFile(args[0])
			if err != nil {
				return err
			}
			labeler, err := labeling.New(labeling.WithBound(b))
			if err != nil {
				return err
			}
			_, stats := labeler.Model(g)

			out := ui.Printer{W: cmd.OutOrStdout()}
			out.KeyValue("vertices", g.Order())
			out.KeyValue("edges", g.Size())
			out.KeyValue("max degree", g.MaxDegree())
			out.KeyValue("strategy", b)
			out.KeyValue("bound", labeler.MaxSpan(g))
			out.KeyValue("variables", stats.Variables)
			out.KeyValue("constraints", stats.Constraints())
			return nil
		},
	}
	cmd.Flags().StringVar(&strategy, "bound", "", "span bound strategy, griggs-yeh or chang-kuo")
	return cmd
}
