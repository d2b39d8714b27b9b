package milp

// Lit is a possibly negated boolean variable.
type Lit struct {
	Var     Var
	Negated bool
}

// Not returns the complement of l.
func (l Lit) Not() Lit {
	return Lit{Var: l.Var, Negated: !l.Negated}
}

// PB is a pseudo-boolean constraint Σ Weights[i]·Lits[i] >= AtLeast with
// strictly positive weights.
type PB struct {
	Lits    []Lit
	Weights []int
	AtLeast int
}

// Total is the largest value the left-hand side can reach.
func (pb PB) Total() int {
	sum := 0
	for _, w := range pb.Weights {
		sum += w
	}
	return sum
}

// Trivial reports whether every assignment satisfies pb.
func (pb PB) Trivial() bool {
	return pb.AtLeast <= 0
}

// Unsatisfiable reports whether no assignment satisfies pb.
func (pb PB) Unsatisfiable() bool {
	return pb.AtLeast > pb.Total()
}

// Unit reports whether all weights are one.
func (pb PB) Unit() bool {
	for _, w := range pb.Weights {
		if w != 1 {
			return false
		}
	}
	return true
}

// Normalize rewrites c into one (two for Equal) PB constraints. A term
// with negative coefficient a over x becomes |a| over the complement of
// x, moving |a| to the right-hand side.
func (c Constraint) Normalize() []PB {
	switch c.Rel {
	case GreaterEq:
		return []PB{atLeast(c.Expr, c.Bound)}
	case LessEq:
		return []PB{atLeast(c.Expr.Neg(), -c.Bound)}
	default:
		return []PB{atLeast(c.Expr, c.Bound), atLeast(c.Expr.Neg(), -c.Bound)}
	}
}

func atLeast(e Expr, bound int) PB {
	e = e.merged()
	pb := PB{
		Lits:    make([]Lit, len(e)),
		Weights: make([]int, len(e)),
		AtLeast: bound,
	}
	for i, t := range e {
		if t.Coef > 0 {
			pb.Lits[i] = Lit{Var: t.Var}
			pb.Weights[i] = t.Coef
			continue
		}
		pb.Lits[i] = Lit{Var: t.Var, Negated: true}
		pb.Weights[i] = -t.Coef
		pb.AtLeast -= t.Coef
	}
	return pb
}

// NormalizeObjective rewrites an objective into minimisation of
// offset + Σ weights[i]·lits[i] with positive weights.
func NormalizeObjective(e Expr, dir Direction) (lits []Lit, weights []int, offset int) {
	if dir == Maximize {
		e = e.Neg()
	}
	for _, t := range e.merged() {
		if t.Coef > 0 {
			lits = append(lits, Lit{Var: t.Var})
			weights = append(weights, t.Coef)
			continue
		}
		// a·x == a + |a|·¬x
		lits = append(lits, Lit{Var: t.Var, Negated: true})
		weights = append(weights, -t.Coef)
		offset += t.Coef
	}
	return lits, weights, offset
}
