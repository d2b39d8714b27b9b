package solver

import (
	"fmt"
	"strings"

	"github.com/go-air/gini/inter"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"

	"github.com/freqlab/l21/pkg/milp"
)

type inconsistentLitMapping []error

func (inconsistentLitMapping) Error() string {
	return "internal solver failure"
}

// litMapping performs translation between the oracle's variables and
// constraints and the literals that appear in the SAT formula.
type litMapping struct {
	names       []string
	lits        []z.Lit
	constraints []milp.Constraint
	// roots[i] is the circuit output that holds iff constraint i holds
	roots []z.Lit
	// several constraints may hash to the same gate
	constraintsByRoot map[z.Lit][]int
	objective         *objective
	c                 *logic.C
	errs              inconsistentLitMapping
}

func newLitMapping() *litMapping {
	return &litMapping{
		constraintsByRoot: make(map[z.Lit][]int),
		c:                 logic.NewC(),
	}
}

// NewVar allocates a fresh circuit input for a named variable.
func (d *litMapping) NewVar(name string) milp.Var {
	d.names = append(d.names, name)
	d.lits = append(d.lits, d.c.Lit())
	return milp.Var(len(d.lits) - 1)
}

// LitOf returns the literal corresponding to l.
func (d *litMapping) LitOf(l milp.Lit) z.Lit {
	if int(l.Var) < 0 || int(l.Var) >= len(d.lits) {
		d.errs = append(d.errs, fmt.Errorf("no literal corresponding to variable %d", l.Var))
		return d.c.F
	}
	m := d.lits[l.Var]
	if l.Negated {
		return m.Not()
	}
	return m
}

// AddConstraint encodes c in the circuit and remembers its root.
// Constraints that every assignment satisfies get no root.
func (d *litMapping) AddConstraint(c milp.Constraint) {
	idx := len(d.constraints)
	d.constraints = append(d.constraints, c)
	for _, pb := range c.Normalize() {
		m := encode(d.c, pb, d.LitOf)
		if m == d.c.T {
			continue
		}
		d.roots = append(d.roots, m)
		d.constraintsByRoot[m] = append(d.constraintsByRoot[m], idx)
	}
}

// SetObjective replaces the objective to be minimised.
func (d *litMapping) SetObjective(e milp.Expr, dir milp.Direction) {
	lits, weights, offset := milp.NormalizeObjective(e, dir)
	var ms []z.Lit
	for i, l := range lits {
		m := d.LitOf(l)
		for w := 0; w < weights[i]; w++ {
			ms = append(ms, m)
		}
	}
	d.objective = &objective{lits: ms, offset: offset}
}

// AddConstraints teaches the whole circuit, including the objective's
// sorting network, to the solver g.
func (d *litMapping) AddConstraints(g inter.Adder) {
	if d.objective != nil && len(d.objective.lits) > 0 {
		d.objective.sort = d.c.CardSort(d.objective.lits)
	}
	d.c.ToCnf(g)
}

// Roots returns the root of every non-trivial constraint.
func (d *litMapping) Roots() []z.Lit {
	return d.roots
}

// Values snapshots the current model of g for every variable. Inputs
// that no clause mentions were never seen by g and read as false.
func (d *litMapping) Values(g inter.Model) []bool {
	maxVar := z.Var(1<<31 - 1)
	if mv, ok := g.(interface{ MaxVar() z.Var }); ok {
		maxVar = mv.MaxVar()
	}
	values := make([]bool, len(d.lits))
	for i, m := range d.lits {
		if m.Var() > maxVar {
			continue
		}
		values[i] = g.Value(m)
	}
	return values
}

// Conflicts names the constraints whose roots g reports as failed
// assumptions.
func (d *litMapping) Conflicts(g inter.Assumable) []string {
	whys := g.Why(nil)
	seen := make(map[int]struct{}, len(whys))
	names := make([]string, 0, len(whys))
	for _, why := range whys {
		for _, idx := range d.constraintsByRoot[why] {
			if _, ok := seen[idx]; ok {
				continue
			}
			seen[idx] = struct{}{}
			names = append(names, d.describe(idx))
		}
	}
	return names
}

func (d *litMapping) describe(idx int) string {
	c := d.constraints[idx]
	var b strings.Builder
	for i, t := range c.Expr {
		if i > 0 {
			b.WriteString(" + ")
		}
		if t.Coef != 1 {
			fmt.Fprintf(&b, "%d·", t.Coef)
		}
		b.WriteString(d.names[t.Var])
	}
	if c.Name == "" {
		return fmt.Sprintf("%s %s %d", b.String(), c.Rel, c.Bound)
	}
	return fmt.Sprintf("%s: %s %s %d", c.Name, b.String(), c.Rel, c.Bound)
}

// Error returns a single error value that is an aggregation of all
// errors encountered during a litMapping's lifetime, or nil if there have
// been no errors. A non-nil return value likely indicates a problem
// with the model builder.
func (d *litMapping) Error() error {
	if len(d.errs) == 0 {
		return nil
	}
	s := make([]string, len(d.errs))
	for i, err := range d.errs {
		s[i] = err.Error()
	}
	return fmt.Errorf("%d errors encountered: %s", len(s), strings.Join(s, ", "))
}

// objective is the minimisation target offset + |{m in lits : m}|, with
// weighted terms repeated once per unit of weight.
type objective struct {
	lits   []z.Lit
	offset int
	sort   *logic.CardSort
}

// Cost counts the true literals of the objective in a model.
func (o *objective) Cost(value func(z.Lit) bool) int {
	n := 0
	for _, m := range o.lits {
		if value(m) {
			n++
		}
	}
	return n
}
