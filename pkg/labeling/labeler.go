package labeling

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/freqlab/l21/internal/solver"
	"github.com/freqlab/l21/pkg/graph"
	"github.com/freqlab/l21/pkg/milp"
)

// Labeling is an optimal L(2,1)-labeling.
type Labeling struct {
	// Labels[v] is the label of vertex v.
	Labels []int `json:"labels"`
	// Span is the largest label.
	Span int `json:"span"`
	// MaxSpan is the bound the model was built with.
	MaxSpan int   `json:"max_span"`
	Stats   Stats `json:"stats"`
}

// Labeler turns graphs into optimal labelings through an oracle.
type Labeler struct {
	backend   Backend
	newOracle func() (milp.Oracle, error)
	bound     BoundStrategy
	gen       GenerateOptions
	logger    *log.Logger
	tracer    solver.Tracer
}

// New returns a Labeler. Without options it uses the gini backend, the
// Griggs-Yeh bound, de-duplicated distance-two constraints, usage
// ordering and a logger that discards everything.
func New(options ...Option) (*Labeler, error) {
	l := Labeler{gen: DefaultGenerateOptions()}
	for _, option := range append(options, defaults...) {
		if err := option(&l); err != nil {
			return nil, err
		}
	}
	return &l, nil
}

type Option func(l *Labeler) error

// WithBackend selects a built-in oracle.
func WithBackend(b Backend) Option {
	return func(l *Labeler) error {
		if _, err := ParseBackend(string(b)); err != nil {
			return err
		}
		l.backend = b
		return nil
	}
}

// WithOracleFactory makes every Label call build its model on a fresh
// oracle returned by fn, overriding WithBackend.
func WithOracleFactory(fn func() (milp.Oracle, error)) Option {
	return func(l *Labeler) error {
		l.newOracle = fn
		return nil
	}
}

func WithBound(b BoundStrategy) Option {
	return func(l *Labeler) error {
		l.bound = b
		return nil
	}
}

func WithDistanceTwoDedup(enabled bool) Option {
	return func(l *Labeler) error {
		l.gen.DedupDistanceTwo = enabled
		return nil
	}
}

func WithUsageOrdering(enabled bool) Option {
	return func(l *Labeler) error {
		l.gen.UsageOrdering = enabled
		return nil
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(l *Labeler) error {
		l.logger = logger
		return nil
	}
}

// WithTracer observes the gini backend's search.
func WithTracer(t solver.Tracer) Option {
	return func(l *Labeler) error {
		l.tracer = t
		return nil
	}
}

var defaults = []Option{
	func(l *Labeler) error {
		if l.logger == nil {
			l.logger = log.New(io.Discard)
		}
		return nil
	},
	func(l *Labeler) error {
		if l.tracer == nil {
			l.tracer = solver.LoggingTracer{Logger: l.logger}
		}
		return nil
	},
	func(l *Labeler) error {
		if l.backend == "" {
			l.backend = Gini
		}
		if l.newOracle == nil {
			l.newOracle = func() (milp.Oracle, error) {
				return l.backend.oracle(l.tracer)
			}
		}
		return nil
	},
}

// Backend returns the configured built-in backend.
func (l *Labeler) Backend() Backend {
	return l.backend
}

// MaxSpan returns the span bound the Labeler would use for g.
func (l *Labeler) MaxSpan(g *graph.Graph) int {
	return l.bound.Bound(g.MaxDegree())
}

// Model records the model the Labeler would hand to its oracle for g.
func (l *Labeler) Model(g *graph.Graph) (*milp.Model, Stats) {
	m := &milp.Model{}
	_, stats := Build(m, g, l.MaxSpan(g), l.gen)
	return m, stats
}

// Label computes an optimal labeling of g. The returned error is an
// Infeasible, wraps ErrNotOptimal, is a *DecodeError or
// *ViolationError for internal inconsistencies, or reports a backend
// failure.
func (l *Labeler) Label(ctx context.Context, g *graph.Graph) (*Labeling, error) {
	maxSpan := l.MaxSpan(g)
	logger := l.logger.With("vertices", g.Order(), "edges", g.Size())

	if g.Order() == 0 {
		return &Labeling{Labels: []int{}, MaxSpan: maxSpan}, nil
	}

	o, err := l.newOracle()
	if err != nil {
		return nil, fmt.Errorf("error creating oracle: %w", err)
	}

	start := time.Now()
	vars, stats := Build(o, g, maxSpan, l.gen)
	logger.Debug("model built",
		"max_span", maxSpan,
		"variables", stats.Variables,
		"constraints", stats.Constraints(),
		"elapsed", time.Since(start).Round(time.Millisecond))

	start = time.Now()
	status, err := o.Solve(ctx)
	if err != nil {
		return nil, fmt.Errorf("solver failure: %w", err)
	}
	logger.Debug("solve finished", "status", status, "elapsed", time.Since(start).Round(time.Millisecond))

	switch status {
	case milp.Optimal:
	case milp.Infeasible:
		infeasible := Infeasible{MaxSpan: maxSpan}
		if e, ok := o.(milp.Explainer); ok {
			infeasible.Conflicts = e.Conflicts()
		}
		return nil, infeasible
	default:
		if cerr := ctx.Err(); cerr != nil {
			return nil, fmt.Errorf("%w: %w", ErrNotOptimal, cerr)
		}
		return nil, fmt.Errorf("%w: oracle status %s", ErrNotOptimal, status)
	}

	labels, span, err := Decode(o, vars)
	if err != nil {
		return nil, err
	}
	if err := Verify(g, labels); err != nil {
		return nil, fmt.Errorf("oracle returned an invalid labeling: %w", err)
	}
	logger.Info("optimal labeling found", "span", span)

	return &Labeling{
		Labels:  labels,
		Span:    span,
		MaxSpan: maxSpan,
		Stats:   stats,
	}, nil
}
