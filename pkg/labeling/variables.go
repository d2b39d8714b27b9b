package labeling

import (
	"fmt"

	"github.com/freqlab/l21/pkg/milp"
)

// Variables holds the decision variables of a labeling model.
type Variables struct {
	// X[v][c] is true iff vertex v carries colour c.
	X [][]milp.Var
	// W[c] is true iff some vertex carries colour c.
	W []milp.Var
	// MaxSpan is the largest colour index, so every row of X and W has
	// MaxSpan+1 entries.
	MaxSpan int
}

// Allocate creates the n×(maxSpan+1) label grid and the maxSpan+1 usage
// indicators on o.
func Allocate(o milp.Oracle, n, maxSpan int) Variables {
	vars := Variables{
		X:       make([][]milp.Var, n),
		W:       make([]milp.Var, maxSpan+1),
		MaxSpan: maxSpan,
	}
	for c := range vars.W {
		vars.W[c] = o.NewBool(fmt.Sprintf("w_%d", c))
	}
	for v := range vars.X {
		row := make([]milp.Var, maxSpan+1)
		for c := range row {
			row[c] = o.NewBool(fmt.Sprintf("x_%d_%d", v, c))
		}
		vars.X[v] = row
	}
	return vars
}

// Count returns the number of variables allocated.
func (vars Variables) Count() int {
	return len(vars.X)*len(vars.W) + len(vars.W)
}
