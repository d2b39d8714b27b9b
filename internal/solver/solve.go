// Package solver implements milp.Oracle on top of the gini SAT solver.
// Linear constraints over boolean variables are compiled into a logic
// circuit, and the objective is minimised by repeatedly asking for a
// model strictly cheaper than the last one until none exists.
package solver

import (
	"context"
	"errors"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/inter"

	"github.com/freqlab/l21/pkg/milp"
)

// ErrSolved is returned when Solve is called a second time.
var ErrSolved = errors.New("oracle already solved")

const (
	satisfiable   = 1
	unsatisfiable = -1
	unknown       = 0
)

// pollInterval is how often a running solve checks its context.
const pollInterval = 10 * time.Millisecond

type Solver struct {
	g         inter.S
	litMap    *litMapping
	tracer    Tracer
	values    []bool
	conflicts []string
	solved    bool
}

var (
	_ milp.Oracle    = &Solver{}
	_ milp.Explainer = &Solver{}
)

func New(options ...Option) (*Solver, error) {
	s := Solver{g: gini.New(), litMap: newLitMapping()}
	for _, option := range append(options, defaults...) {
		if err := option(&s); err != nil {
			return nil, err
		}
	}
	return &s, nil
}

type Option func(s *Solver) error

func WithTracer(t Tracer) Option {
	return func(s *Solver) error {
		s.tracer = t
		return nil
	}
}

var defaults = []Option{
	func(s *Solver) error {
		if s.tracer == nil {
			s.tracer = DefaultTracer{}
		}
		return nil
	},
}

func (s *Solver) NewBool(name string) milp.Var {
	return s.litMap.NewVar(name)
}

func (s *Solver) AddConstraint(name string, e milp.Expr, rel milp.Relation, bound int) {
	s.litMap.AddConstraint(milp.Constraint{Name: name, Expr: e, Rel: rel, Bound: bound})
}

func (s *Solver) SetObjective(e milp.Expr, dir milp.Direction) {
	s.litMap.SetObjective(e, dir)
}

// Value returns v's assignment in the best model found.
func (s *Solver) Value(v milp.Var) bool {
	if int(v) < 0 || int(v) >= len(s.values) {
		return false
	}
	return s.values[v]
}

// Conflicts names constraints that cannot hold together, after Solve
// returned Infeasible.
func (s *Solver) Conflicts() []string {
	return s.conflicts
}

// Solve finds a model of all constraints and then minimises the
// objective. It reports Optimal once a cheaper model is proven not to
// exist, and Unknown if ctx ends first.
func (s *Solver) Solve(ctx context.Context) (milp.Status, error) {
	if s.solved {
		return milp.Unknown, ErrSolved
	}
	s.solved = true

	status := s.solve(ctx)

	// This likely indicates a bug, so discard whatever
	// return values were produced.
	if err := s.litMap.Error(); err != nil {
		s.values = nil
		return milp.Unknown, err
	}
	return status, nil
}

func (s *Solver) solve(ctx context.Context) milp.Status {
	// teach all constraints to the solver
	s.litMap.AddConstraints(s.g)
	roots := s.litMap.Roots()

	// assume that all constraints hold, so a refutation names them
	s.g.Assume(roots...)
	switch s.try(ctx) {
	case unsatisfiable:
		s.conflicts = s.litMap.Conflicts(s.g)
		return milp.Infeasible
	case unknown:
		return milp.Unknown
	}
	s.values = s.litMap.Values(s.g)

	obj := s.litMap.objective
	if obj == nil || obj.sort == nil {
		return milp.Optimal
	}

	best := obj.Cost(s.g.Value)
	s.tracer.Trace(position{iteration: 1, cost: best + obj.offset})
	for iteration := 2; best > 0; iteration++ {
		s.g.Assume(roots...)
		s.g.Assume(obj.sort.Leq(best - 1))
		switch s.try(ctx) {
		case satisfiable:
			s.values = s.litMap.Values(s.g)
			best = obj.Cost(s.g.Value)
			s.tracer.Trace(position{iteration: iteration, cost: best + obj.offset})
		case unsatisfiable:
			return milp.Optimal
		default:
			return milp.Unknown
		}
	}
	return milp.Optimal
}

// try runs one solve under the pending assumptions, stopping it when ctx
// is done.
func (s *Solver) try(ctx context.Context) int {
	if ctx.Done() == nil {
		return s.g.Solve()
	}
	if ctx.Err() != nil {
		return unknown
	}

	h := s.g.GoSolve()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		if result, done := h.Test(); done {
			return result
		}
		select {
		case <-ctx.Done():
			return h.Stop()
		case <-ticker.C:
		}
	}
}
