package generate

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/freqlab/l21/pkg/graph"
)

// family builds a graph from its integer size arguments.
type family struct {
	args  []string
	build func(sizes []int, r *rand.Rand, p float64) *graph.Graph
	// order is the vertex count of the graph build would return
	order func(sizes []int) int
}

var writers = map[string]func(io.Writer, *graph.Graph) error{
	"dimacs": graph.WriteDIMACS,
	"edges":  graph.WriteEdgeList,
}

var families = map[string]family{
	"path":     {args: []string{"n"}, build: func(s []int, _ *rand.Rand, _ float64) *graph.Graph { return graph.Path(s[0]) }, order: first},
	"cycle":    {args: []string{"n"}, build: func(s []int, _ *rand.Rand, _ float64) *graph.Graph { return graph.Cycle(s[0]) }, order: first},
	"complete": {args: []string{"n"}, build: func(s []int, _ *rand.Rand, _ float64) *graph.Graph { return graph.Complete(s[0]) }, order: first},
	"star":     {args: []string{"k"}, build: func(s []int, _ *rand.Rand, _ float64) *graph.Graph { return graph.Star(s[0]) }, order: star},
	"grid":     {args: []string{"rows", "cols"}, build: func(s []int, _ *rand.Rand, _ float64) *graph.Graph { return graph.Grid(s[0], s[1]) }, order: grid},
	"petersen": {build: func(_ []int, _ *rand.Rand, _ float64) *graph.Graph { return graph.Petersen() }, order: ten},
	"random":   {args: []string{"n"}, build: func(s []int, r *rand.Rand, p float64) *graph.Graph { return graph.Random(s[0], p, r) }, order: first},
}

func first(s []int) int { return s[0] }
func star(s []int) int  { return s[0] + 1 }
func ten([]int) int     { return 10 }

func grid(s []int) int {
	if s[0] != 0 && s[1] > graph.MaxOrder/s[0] {
		return graph.MaxOrder + 1
	}
	return s[0] * s[1]
}

func NewGenerateCommand() *cobra.Command {
	var (
		format string
		output string
		seed   int64
		p      float64
	)
	cmd := &cobra.Command{
		Use:   "generate <family> [sizes...]",
		Short: "Writes a graph from a standard family",
		Long: `Writes a graph from a standard family, for instance:
l21 generate path 5
l21 generate grid 3 4
l21 generate petersen
l21 generate random 20 --p 0.2 --seed 7

The DIMACS format (default) keeps isolated vertices; the edge list format
refuses graphs that have any.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			write, ok := writers[format]
			if !ok {
				return fmt.Errorf("unknown format %q (want dimacs or edges)", format)
			}
			f, ok := families[args[0]]
			if !ok {
				return fmt.Errorf("unknown family %q", args[0])
			}
			if len(args)-1 != len(f.args) {
				return fmt.Errorf("family %s takes %d size arguments %v, got %d", args[0], len(f.args), f.args, len(args)-1)
			}
			sizes := make([]int, len(f.args))
			for i, arg := range args[1:] {
				n, err := strconv.Atoi(arg)
				if err != nil || n < 0 || n > graph.MaxOrder {
					return fmt.Errorf("invalid %s (%s): want an integer in 0..%d", f.args[i], arg, graph.MaxOrder)
				}
				sizes[i] = n
			}
			if n := f.order(sizes); n > graph.MaxOrder {
				return fmt.Errorf("%s graph would have %d vertices, more than %d", args[0], n, graph.MaxOrder)
			}
			if p < 0 || p > 1 {
				return fmt.Errorf("invalid edge probability %v", p)
			}
			if !cmd.Flags().Changed("seed") {
				seed = time.Now().UnixNano()
			}
			g := f.build(sizes, rand.New(rand.NewSource(seed)), p)

			if output == "" {
				return write(cmd.OutOrStdout(), g)
			}
			return writeFile(output, g, write)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&format, "format", "dimacs", "output format, dimacs or edges")
	flags.StringVarP(&output, "output", "o", "", "write to this path instead of stdout")
	flags.Int64Var(&seed, "seed", 0, "random seed (default time based)")
	flags.Float64Var(&p, "p", 0.5, "edge probability of random graphs")
	return cmd
}

func writeFile(path string, g *graph.Graph, write func(io.Writer, *graph.Graph) error) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file (%s): %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing output file (%s): %w", path, cerr)
		}
	}()
	return write(file, g)
}
