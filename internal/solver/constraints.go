package solver

import (
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/freqlab/l21/pkg/milp"
)

// encode returns a circuit output that holds iff pb holds. Thresholds
// of one become a plain disjunction, thresholds equal to the total a
// conjunction, and everything else a cardinality sorting network over
// the literals, each repeated once per unit of weight.
func encode(c *logic.C, pb milp.PB, litOf func(milp.Lit) z.Lit) z.Lit {
	switch {
	case pb.Trivial():
		return c.T
	case pb.Unsatisfiable():
		return c.F
	}

	ms := make([]z.Lit, len(pb.Lits))
	for i, l := range pb.Lits {
		ms[i] = litOf(l)
	}

	if pb.AtLeast == 1 {
		m := c.F
		for _, each := range ms {
			m = c.Or(m, each)
		}
		return m
	}
	if pb.AtLeast == pb.Total() {
		m := c.T
		for _, each := range ms {
			m = c.And(m, each)
		}
		return m
	}

	// Σ w·m >= k  <=>  at most total-k of the complements hold
	var complements []z.Lit
	for i, m := range ms {
		for w := 0; w < pb.Weights[i]; w++ {
			complements = append(complements, m.Not())
		}
	}
	return c.CardSort(complements).Leq(pb.Total() - pb.AtLeast)
}
