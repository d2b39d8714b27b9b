package milp

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// Model is an Oracle that records the problem it is given instead of
// solving it. It is used to inspect a model or export it.
type Model struct {
	Names       []string
	Constraints []Constraint
	Objective   Expr
	Direction   Direction
}

var _ Oracle = &Model{}

func (m *Model) NewBool(name string) Var {
	m.Names = append(m.Names, name)
	return Var(len(m.Names) - 1)
}

func (m *Model) AddConstraint(name string, e Expr, rel Relation, bound int) {
	m.Constraints = append(m.Constraints, Constraint{Name: name, Expr: e, Rel: rel, Bound: bound})
}

func (m *Model) SetObjective(e Expr, dir Direction) {
	m.Objective = e
	m.Direction = dir
}

// Solve always fails with ErrNoSolver.
func (m *Model) Solve(_ context.Context) (Status, error) {
	return Unknown, ErrNoSolver
}

func (m *Model) Value(_ Var) bool {
	return false
}

// WriteLP writes the model in CPLEX LP format, which CBC, HiGHS, GLPK and
// most other MIP solvers read.
func (m *Model) WriteLP(w io.Writer) error {
	bw := bufio.NewWriter(w)

	cols := make([]string, len(m.Names))
	for i, name := range m.Names {
		cols[i] = lpName(name, fmt.Sprintf("v%d", i))
	}

	if m.Direction == Maximize {
		bw.WriteString("Maximize\n")
	} else {
		bw.WriteString("Minimize\n")
	}
	obj := m.Objective.merged()
	if len(obj) == 0 && len(cols) > 0 {
		obj = Expr{{Coef: 0, Var: 0}}
	}
	bw.WriteString(" obj:")
	writeLPExpr(bw, obj, cols)
	bw.WriteString("\n")

	bw.WriteString("Subject To\n")
	rows := make(map[string]int, len(m.Constraints))
	for i, c := range m.Constraints {
		row := lpName(c.Name, fmt.Sprintf("r%d", i))
		if n := rows[row]; n > 0 {
			rows[row] = n + 1
			row = fmt.Sprintf("%s_%d", row, n)
		} else {
			rows[row] = 1
		}
		expr := c.Expr.merged()
		if len(expr) == 0 {
			// LP rows need at least one column
			if len(cols) == 0 {
				continue
			}
			expr = Expr{{Coef: 0, Var: 0}}
		}
		fmt.Fprintf(bw, " %s:", row)
		writeLPExpr(bw, expr, cols)
		fmt.Fprintf(bw, " %s %d\n", c.Rel, c.Bound)
	}

	if len(cols) > 0 {
		bw.WriteString("Binary\n")
		for _, col := range cols {
			fmt.Fprintf(bw, " %s\n", col)
		}
	}
	bw.WriteString("End\n")
	return bw.Flush()
}

func writeLPExpr(w *bufio.Writer, e Expr, cols []string) {
	for i, t := range e {
		switch {
		case t.Coef < 0:
			w.WriteString(" -")
		case i > 0:
			w.WriteString(" +")
		}
		fmt.Fprintf(w, " %d %s", abs(t.Coef), cols[t.Var])
	}
}

// lpName maps name onto the LP identifier alphabet, falling back to
// fallback when nothing usable is left.
func lpName(name, fallback string) string {
	s := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '.') {
			return r
		}
		return '_'
	}, name)
	s = strings.Trim(s, "_")
	if s == "" || unicode.IsDigit(rune(s[0])) || s[0] == '.' || s[0] == 'e' || s[0] == 'E' {
		return fallback + "_" + s
	}
	return s
}
