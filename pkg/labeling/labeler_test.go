package labeling_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/freqlab/l21/pkg/graph"
	"github.com/freqlab/l21/pkg/labeling"
	"github.com/freqlab/l21/pkg/milp"
)

// fakeOracle records like a Model but answers Solve and Value from
// canned results.
type fakeOracle struct {
	milp.Model
	status    milp.Status
	err       error
	values    map[milp.Var]bool
	conflicts []string
}

func (f *fakeOracle) Solve(_ context.Context) (milp.Status, error) {
	return f.status, f.err
}

func (f *fakeOracle) Value(v milp.Var) bool {
	return f.values[v]
}

type explainingOracle struct {
	*fakeOracle
}

func (e explainingOracle) Conflicts() []string {
	return e.conflicts
}

func labelerFor(o milp.Oracle) *labeling.Labeler {
	l, err := labeling.New(labeling.WithOracleFactory(func() (milp.Oracle, error) {
		return o, nil
	}))
	Expect(err).ToNot(HaveOccurred())
	return l
}

var _ = Describe("Labeler", func() {
	for _, backend := range labeling.Backends {
		backend := backend
		Context(fmt.Sprintf("with the %s backend", backend), func() {
			var l *labeling.Labeler

			BeforeEach(func() {
				var err error
				l, err = labeling.New(labeling.WithBackend(backend))
				Expect(err).ToNot(HaveOccurred())
				Expect(l.Backend()).To(Equal(backend))
			})

			DescribeTable("optimal spans",
				func(g *graph.Graph, span int) {
					result, err := l.Label(context.Background(), g)
					Expect(err).ToNot(HaveOccurred())
					Expect(result.Span).To(Equal(span))
					Expect(result.Labels).To(HaveLen(g.Order()))
					Expect(labeling.Span(result.Labels)).To(Equal(span))
					Expect(labeling.Verify(g, result.Labels)).To(Succeed())
					Expect(result.MaxSpan).To(Equal(labeling.SpanBound(g)))
				},
				Entry("a single vertex", mustGraph(1), 0),
				Entry("two isolated vertices", mustGraph(2), 0),
				Entry("K2", path(2), 2),
				Entry("P3", path(3), 3),
				Entry("P4", path(4), 3),
				Entry("P5", path(5), 4),
				Entry("two disjoint edges", mustGraph(4, graph.Edge{U: 0, V: 1}, graph.Edge{U: 2, V: 3}), 2),
				Entry("an edge and an isolated vertex", mustGraph(3, graph.Edge{U: 0, V: 1}), 2),
				Entry("K3", complete(3), 4),
				Entry("K4", complete(4), 6),
				Entry("C4", cycle(4), 4),
				Entry("C5", cycle(5), 4),
				Entry("star K1,3", star(3), 4),
				Entry("star K1,4", star(4), 5),
			)

			It("should agree with exhaustive search", func() {
				graphs := []*graph.Graph{
					mustGraph(5, graph.Edge{U: 0, V: 1}, graph.Edge{U: 1, V: 2}, graph.Edge{U: 2, V: 0}, graph.Edge{U: 2, V: 3}, graph.Edge{U: 3, V: 4}),
					mustGraph(5, graph.Edge{U: 0, V: 1}, graph.Edge{U: 0, V: 2}, graph.Edge{U: 1, V: 3}, graph.Edge{U: 2, V: 3}, graph.Edge{U: 3, V: 4}),
					mustGraph(6, graph.Edge{U: 0, V: 1}, graph.Edge{U: 1, V: 2}, graph.Edge{U: 3, V: 4}, graph.Edge{U: 4, V: 5}, graph.Edge{U: 1, V: 4}),
					cycle(6),
				}
				for i, g := range graphs {
					result, err := l.Label(context.Background(), g)
					Expect(err).ToNot(HaveOccurred())
					Expect(result.Span).To(Equal(bruteSpan(g)), "graph %d", i)
				}
			})

			It("should stay valid without de-duplication or usage ordering", func() {
				plain, err := labeling.New(labeling.WithBackend(backend),
					labeling.WithDistanceTwoDedup(false), labeling.WithUsageOrdering(false))
				Expect(err).ToNot(HaveOccurred())
				for _, g := range []*graph.Graph{path(3), cycle(4), star(3)} {
					result, err := plain.Label(context.Background(), g)
					Expect(err).ToNot(HaveOccurred())
					Expect(labeling.Verify(g, result.Labels)).To(Succeed())
					Expect(result.Span).To(BeNumerically(">=", bruteSpan(g)))
				}
			})

			It("should settle for a larger span when colours are not used in order", func() {
				// triangle 0-2-4 with pendants 3 on 2 and 1 on 4: every span 4
				// labeling uses colours summing to at least 10, while {0,1,3,5}
				// sums to 9
				bull := mustGraph(5, graph.Edge{U: 0, V: 2}, graph.Edge{U: 0, V: 4}, graph.Edge{U: 1, V: 4}, graph.Edge{U: 2, V: 3}, graph.Edge{U: 2, V: 4})
				result, err := l.Label(context.Background(), bull)
				Expect(err).ToNot(HaveOccurred())
				Expect(result.Span).To(Equal(4))
				Expect(result.Span).To(Equal(bruteSpan(bull)))

				unordered, err := labeling.New(labeling.WithBackend(backend), labeling.WithUsageOrdering(false))
				Expect(err).ToNot(HaveOccurred())
				result, err = unordered.Label(context.Background(), bull)
				Expect(err).ToNot(HaveOccurred())
				Expect(labeling.Verify(bull, result.Labels)).To(Succeed())
				Expect(result.Span).To(Equal(5))
			})

			It("should report the model statistics", func() {
				result, err := l.Label(context.Background(), path(3))
				Expect(err).ToNot(HaveOccurred())
				Expect(result.Stats.Constraints()).To(Equal(48))
			})

			It("should be reproducible", func() {
				first, err := l.Label(context.Background(), cycle(5))
				Expect(err).ToNot(HaveOccurred())
				second, err := l.Label(context.Background(), cycle(5))
				Expect(err).ToNot(HaveOccurred())
				Expect(second.Span).To(Equal(first.Span))
			})

			It("should give up on a cancelled context", func() {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				_, err := l.Label(ctx, cycle(5))
				Expect(err).To(MatchError(labeling.ErrNotOptimal))
				Expect(errors.Is(err, context.Canceled)).To(BeTrue())
			})
		})
	}

	It("should label the empty graph without an oracle", func() {
		l, err := labeling.New(labeling.WithOracleFactory(func() (milp.Oracle, error) {
			return nil, errors.New("unused")
		}))
		Expect(err).ToNot(HaveOccurred())
		result, err := l.Label(context.Background(), mustGraph(0))
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Labels).To(BeEmpty())
		Expect(result.Span).To(BeZero())
	})

	It("should use the Chang-Kuo bound when asked", func() {
		l, err := labeling.New(labeling.WithBound(labeling.ChangKuo))
		Expect(err).ToNot(HaveOccurred())
		Expect(l.MaxSpan(star(3))).To(Equal(12))
		result, err := l.Label(context.Background(), star(3))
		Expect(err).ToNot(HaveOccurred())
		Expect(result.Span).To(Equal(4))
		Expect(result.MaxSpan).To(Equal(12))
	})

	It("should reject unknown backends", func() {
		_, err := labeling.New(labeling.WithBackend("cplex"))
		Expect(err).To(HaveOccurred())
		_, err = labeling.ParseBackend("cplex")
		Expect(err).To(HaveOccurred())
		b, err := labeling.ParseBackend("")
		Expect(err).ToNot(HaveOccurred())
		Expect(b).To(Equal(labeling.Gini))
	})

	It("should record the model for export", func() {
		l, err := labeling.New()
		Expect(err).ToNot(HaveOccurred())
		m, stats := l.Model(path(3))
		Expect(m.Constraints).To(HaveLen(stats.Constraints()))
		Expect(m.Names).To(HaveLen(stats.Variables))
	})

	It("should report infeasibility with the oracle's conflicts", func() {
		o := explainingOracle{&fakeOracle{status: milp.Infeasible, conflicts: []string{"one-label(0)"}}}
		_, err := labelerFor(o).Label(context.Background(), path(2))
		var infeasible labeling.Infeasible
		Expect(errors.As(err, &infeasible)).To(BeTrue())
		Expect(infeasible.MaxSpan).To(Equal(2))
		Expect(infeasible.Conflicts).To(Equal([]string{"one-label(0)"}))
		Expect(err.Error()).To(ContainSubstring("one-label(0)"))
	})

	It("should report infeasibility from oracles that cannot explain", func() {
		_, err := labelerFor(&fakeOracle{status: milp.Infeasible}).Label(context.Background(), path(2))
		Expect(err).To(MatchError(labeling.Infeasible{MaxSpan: 2}))
	})

	It("should not report a partial labeling", func() {
		_, err := labelerFor(&fakeOracle{status: milp.Unknown}).Label(context.Background(), path(2))
		Expect(err).To(MatchError(labeling.ErrNotOptimal))
	})

	It("should wrap backend failures", func() {
		boom := errors.New("boom")
		_, err := labelerFor(&fakeOracle{err: boom}).Label(context.Background(), path(2))
		Expect(err).To(MatchError(boom))
		Expect(err).ToNot(MatchError(labeling.ErrNotOptimal))
	})

	It("should refuse an assignment that is not a labeling", func() {
		// every x and w true
		o := &fakeOracle{status: milp.Optimal, values: map[milp.Var]bool{}}
		for v := milp.Var(0); v < 100; v++ {
			o.values[v] = true
		}
		_, err := labelerFor(o).Label(context.Background(), path(2))
		var decodeErr *labeling.DecodeError
		Expect(errors.As(err, &decodeErr)).To(BeTrue())
		Expect(decodeErr.Vertex).To(Equal(0))
	})
})

var _ = Describe("Decode", func() {
	var (
		o    *fakeOracle
		vars labeling.Variables
	)

	BeforeEach(func() {
		o = &fakeOracle{values: map[milp.Var]bool{}}
		vars = labeling.Allocate(o, 2, 3)
	})

	It("should read labels and span", func() {
		o.values[vars.X[0][0]] = true
		o.values[vars.X[1][2]] = true
		for c := 0; c <= 2; c++ {
			o.values[vars.W[c]] = true
		}
		labels, span, err := labeling.Decode(o, vars)
		Expect(err).ToNot(HaveOccurred())
		Expect(labels).To(Equal([]int{0, 2}))
		Expect(span).To(Equal(2))
	})

	It("should reject an unlabelled vertex", func() {
		o.values[vars.X[0][0]] = true
		_, _, err := labeling.Decode(o, vars)
		Expect(err).To(MatchError(&labeling.DecodeError{Vertex: 1}))
	})

	It("should reject a vertex with two colours", func() {
		o.values[vars.X[0][0]] = true
		o.values[vars.X[0][3]] = true
		o.values[vars.X[1][1]] = true
		_, _, err := labeling.Decode(o, vars)
		Expect(err).To(MatchError(&labeling.DecodeError{Vertex: 0, Colors: []int{0, 3}}))
	})

	It("should reject usage indicators that disagree with the labels", func() {
		o.values[vars.X[0][0]] = true
		o.values[vars.X[1][2]] = true
		o.values[vars.W[0]] = true
		o.values[vars.W[3]] = true
		_, _, err := labeling.Decode(o, vars)
		var decodeErr *labeling.DecodeError
		Expect(errors.As(err, &decodeErr)).To(BeTrue())
		Expect(decodeErr.Vertex).To(Equal(-1))
		Expect(decodeErr.Span).To(Equal(3))
	})
})

var _ = Describe("Verify", func() {
	DescribeTable("labelings",
		func(g *graph.Graph, labels []int, rule string) {
			err := labeling.Verify(g, labels)
			if rule == "" {
				Expect(err).ToNot(HaveOccurred())
				return
			}
			var violation *labeling.ViolationError
			Expect(errors.As(err, &violation)).To(BeTrue())
			Expect(violation.Rule).To(Equal(rule))
		},
		Entry("valid P3", path(3), []int{0, 2, 3}, ""),
		Entry("wrong length", path(3), []int{0, 2}, "totality"),
		Entry("negative label", path(2), []int{-2, 0}, "non-negativity"),
		Entry("adjacent labels one apart", path(2), []int{0, 1}, "adjacent separation"),
		Entry("adjacent labels equal", path(2), []int{1, 1}, "adjacent separation"),
		Entry("distance-two labels equal", path(3), []int{0, 2, 0}, "distance-two distinctness"),
		Entry("far apart vertices may share", path(4), []int{0, 2, 4, 0}, ""),
	)
})
