package e2e

import (
	"context"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/freqlab/l21/pkg/graph"
	"github.com/freqlab/l21/pkg/labeling"
)

// spans labels g with every backend and returns their spans.
func spans(ctx context.Context, g *graph.Graph) map[labeling.Backend]int {
	out := map[labeling.Backend]int{}
	for _, backend := range labeling.Backends {
		l, err := labeling.New(labeling.WithBackend(backend))
		Expect(err).ToNot(HaveOccurred())

		start := time.Now()
		result, err := l.Label(ctx, g)
		Expect(err).ToNot(HaveOccurred(), "backend %s", backend)
		Expect(labeling.Verify(g, result.Labels)).To(Succeed())
		Logf("%s: span %d in %s", backend, result.Span, time.Since(start).Round(time.Millisecond))
		out[backend] = result.Span
	}
	return out
}

var _ = Describe("Labeling known graphs", func() {
	var ctx context.Context

	BeforeEach(func() {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 2*time.Minute)
		DeferCleanup(cancel)
	})

	DescribeTable("backends agree on known spans",
		func(g *graph.Graph, span int) {
			By("solving with every backend")
			for backend, got := range spans(ctx, g) {
				Expect(got).To(Equal(span), "backend %s", backend)
			}
		},
		Entry("Petersen graph", graph.Petersen(), 9),
		Entry("3x3 grid", graph.Grid(3, 3), 6),
		Entry("K5", graph.Complete(5), 8),
		Entry("C7", graph.Cycle(7), 4),
		Entry("star K1,5", graph.Star(5), 6),
	)

	When("labeling random graphs", func() {
		It("should give the same span with every backend", func() {
			r := rand.New(rand.NewSource(42))
			for i := 0; i < 4; i++ {
				g := graph.Random(8, 0.3, r)
				By("comparing backends on a random graph")
				got := spans(ctx, g)
				Expect(got[labeling.Gini]).To(Equal(got[labeling.Gophersat]))
			}
		})
	})
})
