package labeling

import (
	"github.com/freqlab/l21/pkg/graph"
	"github.com/freqlab/l21/pkg/milp"
)

// BuildObjective returns Σ c·w[c], to be minimised. Higher colours are
// more expensive, so the cheapest model keeps its largest used colour,
// the span, as small as possible.
func BuildObjective(vars Variables) milp.Expr {
	e := make(milp.Expr, 0, len(vars.W))
	for c, w := range vars.W {
		e = append(e, milp.Term{Coef: c, Var: w})
	}
	return e
}

// Build allocates variables for g on o, emits every constraint and sets
// the objective.
func Build(o milp.Oracle, g *graph.Graph, maxSpan int, opts GenerateOptions) (Variables, Stats) {
	vars := Allocate(o, g.Order(), maxSpan)
	stats := Generate(o, g, vars, opts)
	o.SetObjective(BuildObjective(vars), milp.Minimize)
	return vars, stats
}
