// Package pbsolver implements milp.Oracle with the gophersat
// pseudo-boolean solver, which minimises a linear cost natively.
package pbsolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/crillab/gophersat/solver"

	"github.com/freqlab/l21/pkg/milp"
)

// ErrSolved is returned when Solve is called a second time.
var ErrSolved = errors.New("oracle already solved")

// Solver records a model and hands it to gophersat on Solve.
type Solver struct {
	names       []string
	constraints []milp.Constraint
	pbs         []solver.PBConstr
	// maxVar is the highest 1-based gophersat variable any constraint uses
	maxVar    int
	costLits  []milp.Lit
	costW     []int
	values    []bool
	conflicts []string
	solved    bool
	errs      []error
}

var (
	_ milp.Oracle    = &Solver{}
	_ milp.Explainer = &Solver{}
)

func New() *Solver {
	return &Solver{}
}

func (s *Solver) NewBool(name string) milp.Var {
	s.names = append(s.names, name)
	return milp.Var(len(s.names) - 1)
}

func (s *Solver) AddConstraint(name string, e milp.Expr, rel milp.Relation, bound int) {
	c := milp.Constraint{Name: name, Expr: e, Rel: rel, Bound: bound}
	s.constraints = append(s.constraints, c)
	for _, pb := range c.Normalize() {
		if pb.Trivial() {
			continue
		}
		if pb.Unsatisfiable() {
			s.conflicts = append(s.conflicts, s.describe(c))
			continue
		}
		lits := make([]int, len(pb.Lits))
		for i, l := range pb.Lits {
			lits[i] = s.lit(l)
			if v := abs(lits[i]); v > s.maxVar {
				s.maxVar = v
			}
		}
		s.pbs = append(s.pbs, solver.GtEq(lits, pb.Weights, pb.AtLeast))
	}
}

func (s *Solver) SetObjective(e milp.Expr, dir milp.Direction) {
	lits, weights, _ := milp.NormalizeObjective(e, dir)
	for _, l := range lits {
		s.lit(l)
	}
	s.costLits, s.costW = lits, weights
}

// Value returns v's assignment in the optimal model.
func (s *Solver) Value(v milp.Var) bool {
	if int(v) < 0 || int(v) >= len(s.values) {
		return false
	}
	return s.values[v]
}

// Conflicts names the constraints no assignment can satisfy on their
// own. gophersat does not explain other refutations, so it is empty when
// only their combination is infeasible.
func (s *Solver) Conflicts() []string {
	return s.conflicts
}

// Solve runs gophersat to optimality. The search runs in its own
// goroutine and is abandoned when ctx ends, yielding Unknown.
func (s *Solver) Solve(ctx context.Context) (milp.Status, error) {
	if s.solved {
		return milp.Unknown, ErrSolved
	}
	s.solved = true
	if len(s.errs) > 0 {
		return milp.Unknown, errors.Join(s.errs...)
	}
	if len(s.conflicts) > 0 {
		return milp.Infeasible, nil
	}
	if ctx.Err() != nil {
		return milp.Unknown, nil
	}

	// free variables take whichever value the objective prefers
	s.values = make([]bool, len(s.names))
	var costLits []solver.Lit
	var costW []int
	for i, l := range s.costLits {
		if int(l.Var)+1 > s.maxVar {
			s.values[l.Var] = l.Negated
			continue
		}
		costLits = append(costLits, solver.IntToLit(int32(s.lit(l))))
		costW = append(costW, s.costW[i])
	}
	if len(s.pbs) == 0 {
		return milp.Optimal, nil
	}

	type result struct {
		status milp.Status
		model  []bool
	}
	done := make(chan result, 1)
	go func() {
		pb := solver.ParsePBConstrs(s.pbs)
		if len(costLits) > 0 {
			pb.SetCostFunc(costLits, costW)
		}
		gs := solver.New(pb)
		if len(costLits) > 0 {
			if gs.Minimize() < 0 {
				done <- result{status: milp.Infeasible}
				return
			}
		} else if gs.Solve() != solver.Sat {
			done <- result{status: milp.Infeasible}
			return
		}
		done <- result{status: milp.Optimal, model: gs.Model()}
	}()

	select {
	case <-ctx.Done():
		return milp.Unknown, nil
	case r := <-done:
		for i, v := range r.model {
			if i < len(s.values) {
				s.values[i] = v
			}
		}
		return r.status, nil
	}
}

// lit maps l to a gophersat literal: variables are 1-based and negative
// ids are negated.
func (s *Solver) lit(l milp.Lit) int {
	if int(l.Var) < 0 || int(l.Var) >= len(s.names) {
		s.errs = append(s.errs, fmt.Errorf("no variable %d", l.Var))
		return 1
	}
	id := int(l.Var) + 1
	if l.Negated {
		return -id
	}
	return id
}

func (s *Solver) describe(c milp.Constraint) string {
	if c.Name == "" {
		return c.String()
	}
	return c.Name + ": " + c.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
