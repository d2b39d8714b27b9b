// Package milp defines the narrow contract between a model builder and a
// 0/1 integer programming backend: boolean variables, linear constraints
// over them, a linear objective and a single blocking solve.
package milp

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNoSolver is returned by Model.Solve; a Model only records.
var ErrNoSolver = errors.New("model has no solver attached")

// Var is a handle to a boolean variable created by an Oracle.
type Var int

// Term is a single coefficient-variable product.
type Term struct {
	Coef int
	Var  Var
}

// Expr is a linear expression over boolean variables.
type Expr []Term

// Sum returns the expression v1 + v2 + ... + vn.
func Sum(vs ...Var) Expr {
	e := make(Expr, len(vs))
	for i, v := range vs {
		e[i] = Term{Coef: 1, Var: v}
	}
	return e
}

// Plus returns e + coef*v.
func (e Expr) Plus(coef int, v Var) Expr {
	return append(e[:len(e):len(e)], Term{Coef: coef, Var: v})
}

// Neg returns -e.
func (e Expr) Neg() Expr {
	out := make(Expr, len(e))
	for i, t := range e {
		out[i] = Term{Coef: -t.Coef, Var: t.Var}
	}
	return out
}

// Eval computes the value of e under the assignment value.
func (e Expr) Eval(value func(Var) bool) int {
	sum := 0
	for _, t := range e {
		if value(t.Var) {
			sum += t.Coef
		}
	}
	return sum
}

// merged folds repeated variables together and drops zero coefficients,
// keeping the order of first appearance.
func (e Expr) merged() Expr {
	idx := make(map[Var]int, len(e))
	out := make(Expr, 0, len(e))
	for _, t := range e {
		if i, ok := idx[t.Var]; ok {
			out[i].Coef += t.Coef
			continue
		}
		idx[t.Var] = len(out)
		out = append(out, t)
	}
	kept := out[:0]
	for _, t := range out {
		if t.Coef != 0 {
			kept = append(kept, t)
		}
	}
	return kept
}

// Relation is the comparison of a linear constraint.
type Relation int

const (
	LessEq Relation = iota
	Equal
	GreaterEq
)

func (r Relation) String() string {
	switch r {
	case LessEq:
		return "<="
	case Equal:
		return "="
	case GreaterEq:
		return ">="
	}
	return fmt.Sprintf("Relation(%d)", int(r))
}

// Direction is the sense of the objective.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

func (d Direction) String() string {
	if d == Maximize {
		return "maximize"
	}
	return "minimize"
}

// Status is the terminal outcome of a solve.
type Status int

const (
	// Unknown covers every outcome that is neither a proven optimum
	// nor a proof of infeasibility: limits, cancellation, failures.
	Unknown Status = iota
	Optimal
	Infeasible
)

func (s Status) String() string {
	switch s {
	case Optimal:
		return "OPTIMAL"
	case Infeasible:
		return "INFEASIBLE"
	}
	return "UNKNOWN"
}

// Constraint is a named linear constraint Expr Rel Bound.
type Constraint struct {
	Name  string
	Expr  Expr
	Rel   Relation
	Bound int
}

func (c Constraint) String() string {
	var b strings.Builder
	for i, t := range c.Expr {
		switch {
		case i == 0 && t.Coef < 0:
			b.WriteString("-")
		case i > 0 && t.Coef < 0:
			b.WriteString(" - ")
		case i > 0:
			b.WriteString(" + ")
		}
		if abs(t.Coef) != 1 {
			fmt.Fprintf(&b, "%d ", abs(t.Coef))
		}
		fmt.Fprintf(&b, "v%d", int(t.Var))
	}
	fmt.Fprintf(&b, " %s %d", c.Rel, c.Bound)
	return b.String()
}

// Oracle is the capability a backend offers to the model builder. An
// Oracle holds exactly one model and is solved at most once.
type Oracle interface {
	// NewBool creates a boolean variable.
	NewBool(name string) Var
	// AddConstraint adds the constraint e rel bound.
	AddConstraint(name string, e Expr, rel Relation, bound int)
	// SetObjective replaces the objective.
	SetObjective(e Expr, dir Direction)
	// Solve blocks until the backend reaches a terminal status or ctx
	// is done. A non-nil error reports a backend failure and comes with
	// Unknown.
	Solve(ctx context.Context) (Status, error)
	// Value returns the assignment of v in the optimal solution. It is
	// only meaningful after Solve returned Optimal.
	Value(v Var) bool
}

// Explainer is implemented by oracles that can name a set of
// constraints which together admit no solution.
type Explainer interface {
	Conflicts() []string
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
