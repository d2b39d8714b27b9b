package labeling

import (
	"fmt"

	"github.com/freqlab/l21/pkg/graph"
	"github.com/freqlab/l21/pkg/milp"
)

// GenerateOptions selects optional parts of the constraint system.
type GenerateOptions struct {
	// DedupDistanceTwo emits one distance-two constraint per unordered
	// vertex pair and colour, skipping pairs that are also adjacent.
	// When false one constraint is emitted per 2-hop walk.
	DedupDistanceTwo bool
	// UsageOrdering adds w[c+1] <= w[c], so the used colours always form
	// a prefix and minimising Σ c·w[c] minimises the span.
	UsageOrdering bool
}

// DefaultGenerateOptions enables both de-duplication and usage ordering.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{DedupDistanceTwo: true, UsageOrdering: true}
}

// Stats counts the variables and constraints of a generated model, per
// constraint family.
type Stats struct {
	Variables   int `json:"variables"`
	OneLabel    int `json:"one_label"`
	Adjacent    int `json:"adjacent"`
	DistanceTwo int `json:"distance_two"`
	Usage       int `json:"usage"`
	Isolated    int `json:"isolated"`
	UsageOrder  int `json:"usage_order"`
}

// Constraints returns the total number of constraints.
func (s Stats) Constraints() int {
	return s.OneLabel + s.Adjacent + s.DistanceTwo + s.Usage + s.Isolated + s.UsageOrder
}

// generator emits constraints on an oracle and keeps count.
type generator struct {
	o     milp.Oracle
	vars  Variables
	stats Stats
}

// conflict forbids vertex a taking colour ca together with vertex b
// taking colour cb.
func (gen *generator) conflict(family string, a, ca, b, cb int) {
	name := fmt.Sprintf("%s(%d:%d,%d:%d)", family, a, ca, b, cb)
	gen.o.AddConstraint(name, milp.Sum(gen.vars.X[a][ca], gen.vars.X[b][cb]), milp.LessEq, 1)
}

// Generate emits the full L(2,1) constraint system for g over vars.
func Generate(o milp.Oracle, g *graph.Graph, vars Variables, opts GenerateOptions) Stats {
	gen := &generator{o: o, vars: vars}
	gen.stats.Variables = vars.Count()

	gen.oneLabel(g)
	gen.adjacent(g)
	if opts.DedupDistanceTwo {
		gen.distanceTwoPairs(g)
	} else {
		gen.distanceTwoWalks(g)
	}
	gen.usage(g)
	if opts.UsageOrdering {
		gen.usageOrder()
	}
	return gen.stats
}

// oneLabel: every vertex carries exactly one colour.
func (gen *generator) oneLabel(g *graph.Graph) {
	for v := 0; v < g.Order(); v++ {
		gen.o.AddConstraint(fmt.Sprintf("one-label(%d)", v), milp.Sum(gen.vars.X[v]...), milp.Equal, 1)
		gen.stats.OneLabel++
	}
}

// adjacent: the labels of an edge's endpoints differ by at least two.
// Each undirected edge is visited once; forbidding equal colours and
// both one-apart windows from the lower endpoint covers every pair of
// colours at distance zero or one exactly once.
func (gen *generator) adjacent(g *graph.Graph) {
	k := gen.vars.MaxSpan
	for _, e := range g.Edges() {
		for c := 0; c <= k; c++ {
			gen.conflict("adjacent", e.U, c, e.V, c)
			gen.stats.Adjacent++
			if c > 0 {
				gen.conflict("adjacent", e.U, c, e.V, c-1)
				gen.stats.Adjacent++
			}
			if c < k {
				gen.conflict("adjacent", e.U, c, e.V, c+1)
				gen.stats.Adjacent++
			}
		}
	}
}

// distanceTwoWalks emits one constraint per colour for every 2-hop walk
// v-u-z, so pairs joined by several paths are constrained repeatedly.
func (gen *generator) distanceTwoWalks(g *graph.Graph) {
	k := gen.vars.MaxSpan
	g.Walk(func(v, _, z int) {
		for c := 0; c <= k; c++ {
			gen.conflict("distance-two", v, c, z, c)
			gen.stats.DistanceTwo++
		}
	})
}

// distanceTwoPairs emits one constraint per colour for every unordered
// pair at distance exactly two.
func (gen *generator) distanceTwoPairs(g *graph.Graph) {
	k := gen.vars.MaxSpan
	seen := make(map[graph.Edge]struct{})
	g.Walk(func(v, _, z int) {
		if v > z {
			return
		}
		key := graph.Edge{U: v, V: z}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		if g.Adjacent(v, z) {
			return
		}
		for c := 0; c <= k; c++ {
			gen.conflict("distance-two", v, c, z, c)
			gen.stats.DistanceTwo++
		}
	})
}

// usage forces w[c] whenever colour c is used. Vertices with at least one
// edge are covered through x[u][c] + x[v][c] <= w[c] on their edges;
// isolated vertices get x[v][c] <= w[c] directly.
func (gen *generator) usage(g *graph.Graph) {
	x, w := gen.vars.X, gen.vars.W
	for _, e := range g.Edges() {
		for c := range w {
			name := fmt.Sprintf("usage(%d,%d)@%d", e.U, e.V, c)
			gen.o.AddConstraint(name, milp.Sum(x[e.U][c], x[e.V][c]).Plus(-1, w[c]), milp.LessEq, 0)
			gen.stats.Usage++
		}
	}
	for _, v := range g.Isolated() {
		for c := range w {
			name := fmt.Sprintf("isolated(%d)@%d", v, c)
			gen.o.AddConstraint(name, milp.Sum(x[v][c]).Plus(-1, w[c]), milp.LessEq, 0)
			gen.stats.Isolated++
		}
	}
}

// usageOrder: a colour is only marked used if the one below it is.
func (gen *generator) usageOrder() {
	w := gen.vars.W
	for c := 0; c+1 < len(w); c++ {
		name := fmt.Sprintf("usage-order@%d", c+1)
		gen.o.AddConstraint(name, milp.Sum(w[c+1]).Plus(-1, w[c]), milp.LessEq, 0)
		gen.stats.UsageOrder++
	}
}
