package label

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/freqlab/l21/internal/cache"
	"github.com/freqlab/l21/internal/config"
	"github.com/freqlab/l21/internal/logging"
	"github.com/freqlab/l21/internal/render"
	"github.com/freqlab/l21/internal/ui"
	"github.com/freqlab/l21/pkg/graph"
	"github.com/freqlab/l21/pkg/labeling"
)

type options struct {
	configPath   string
	backend      string
	bound        string
	timeout      string
	noCache      bool
	noDedup      bool
	noUsageOrder bool
	dotPath      string
	svgPath      string
	lpPath       string
}

func NewLabelCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "label <path>",
		Short: "Computes a minimum-span L(2,1)-labeling of a graph",
		Long: `Computes a minimum-span L(2,1)-labeling of the graph given as an edge list.
Vertex identifiers are non-negative integers without gaps, paired up into
edges. For instance:
# path on three vertices
0 1
1 2

Files ending in .col or .dimacs are read in the DIMACS graph format instead.
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	flags.StringVar(&opts.backend, "backend", "", fmt.Sprintf("solver backend, one of %v", labeling.Backends))
	flags.StringVar(&opts.bound, "bound", "", "span bound strategy, griggs-yeh or chang-kuo")
	flags.StringVar(&opts.timeout, "timeout", "", "give up after this long, e.g. 30s (default no limit)")
	flags.BoolVar(&opts.noCache, "no-cache", false, "neither read nor write the result cache")
	flags.BoolVar(&opts.noDedup, "no-dedup", false, "emit one distance-two constraint per 2-hop walk")
	flags.BoolVar(&opts.noUsageOrder, "no-usage-order", false, "omit the usage ordering constraints")
	flags.StringVar(&opts.dotPath, "dot", "", "write the labeled graph as DOT to this path")
	flags.StringVar(&opts.svgPath, "svg", "", "render the labeled graph as SVG to this path")
	flags.StringVar(&opts.lpPath, "lp", "", "write the model in CPLEX LP format to this path")
	return cmd
}

// resolve layers flags over the config file.
func resolve(cmd *cobra.Command, opts options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend = opts.backend
	}
	if flags.Changed("bound") {
		cfg.Bound = opts.bound
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if opts.noCache {
		cfg.Cache.Enabled = false
	}
	if opts.noDedup {
		cfg.DedupDistanceTwo = false
	}
	if opts.noUsageOrder {
		cfg.UsageOrdering = false
	}
	return cfg, cfg.Validate()
}

func run(cmd *cobra.Command, path string, opts options) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)
	out := ui.Printer{W: cmd.OutOrStdout()}

	cfg, err := resolve(cmd, opts)
	if err != nil {
		return err
	}
	g, err := graph.ParseFile(path)
	if err != nil {
		return err
	}
	logger.Debug("graph loaded", "path", path, "vertices", g.Order(), "edges", g.Size(), "max_degree", g.MaxDegree())

	labelerOpts, err := cfg.Options()
	if err != nil {
		return err
	}
	labeler, err := labeling.New(append(labelerOpts, labeling.WithLogger(logger))...)
	if err != nil {
		return err
	}

	if opts.lpPath != "" {
		if err := writeLP(labeler, g, opts.lpPath); err != nil {
			return err
		}
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	key := cache.NewKey(g, cache.Settings{
		Backend:          cfg.Backend,
		Bound:            cfg.Bound,
		DedupDistanceTwo: cfg.DedupDistanceTwo,
		UsageOrdering:    cfg.UsageOrdering,
	})

	result, cached, err := store.Get(ctx, key)
	if err != nil {
		logger.Warn("ignoring unreadable cache entry", "err", err)
		cached = false
	}
	if !cached {
		result, err = solve(ctx, labeler, g, cfg)
		if err != nil {
			return err
		}
		if err := store.Put(ctx, key, result); err != nil {
			logger.Warn("could not cache labeling", "err", err)
		}
	}

	out.Success("optimal span %s", ui.StyleNumber.Render(fmt.Sprint(result.Span)))
	out.KeyValue("vertices", g.Order())
	out.KeyValue("edges", g.Size())
	out.KeyValue("max degree", g.MaxDegree())
	out.KeyValue("bound", result.MaxSpan)
	out.KeyValue("variables", result.Stats.Variables)
	out.KeyValue("constraints", result.Stats.Constraints())
	out.Source(cached)
	fmt.Fprintln(out.W)
	for v, l := range result.Labels {
		out.KeyValue(fmt.Sprintf("vertex %d", v), l)
	}

	if opts.lpPath != "" {
		out.File(opts.lpPath)
	}
	return writeDrawings(ctx, out, g, result.Labels, opts)
}

func solve(ctx context.Context, labeler *labeling.Labeler, g *graph.Graph, cfg config.Config) (*labeling.Labeling, error) {
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return labeler.Label(ctx, g)
}

func openStore(cfg config.Config) (cache.Store, error) {
	if !cfg.Cache.Enabled {
		return cache.Nop{}, nil
	}
	dir, err := cfg.Cache.Directory()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	ttl, err := cfg.Cache.TTLDuration()
	if err != nil {
		return nil, err
	}
	d, err := cache.OpenDir(dir, ttl)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return d, nil
}

func writeLP(labeler *labeling.Labeler, g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating LP file (%s): %w", path, err)
	}
	m, _ := labeler.Model(g)
	if err := m.WriteLP(f); err != nil {
		f.Close()
		return fmt.Errorf("error writing LP file (%s): %w", path, err)
	}
	return f.Close()
}

func writeDrawings(ctx context.Context, out ui.Printer, g *graph.Graph, labels []int, opts options) error {
	if opts.dotPath == "" && opts.svgPath == "" {
		return nil
	}
	dot := render.ToDOT(g, labels)
	if opts.dotPath != "" {
		if err := os.WriteFile(opts.dotPath, []byte(dot), 0644); err != nil {
			return fmt.Errorf("error writing DOT file (%s): %w", opts.dotPath, err)
		}
		out.File(opts.dotPath)
	}
	if opts.svgPath != "" {
		svg, err := render.RenderSVG(ctx, dot)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.svgPath, svg, 0644); err != nil {
			return fmt.Errorf("error writing SVG file (%s): %w", opts.svgPath, err)
		}
		out.File(opts.svgPath)
	}
	return nil
}
