package graph_test

import (
	"bytes"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/freqlab/l21/pkg/graph"
)

var _ = Describe("Families", func() {
	DescribeTable("sizes and degrees",
		func(g *graph.Graph, order, size, maxDegree int) {
			Expect(g.Order()).To(Equal(order))
			Expect(g.Size()).To(Equal(size))
			Expect(g.MaxDegree()).To(Equal(maxDegree))
		},
		Entry("empty path", graph.Path(0), 0, 0, 0),
		Entry("P4", graph.Path(4), 4, 3, 2),
		Entry("C5", graph.Cycle(5), 5, 5, 2),
		Entry("degenerate cycle", graph.Cycle(2), 2, 1, 1),
		Entry("K4", graph.Complete(4), 4, 6, 3),
		Entry("K1,3", graph.Star(3), 4, 3, 3),
		Entry("3x3 grid", graph.Grid(3, 3), 9, 12, 4),
		Entry("Petersen", graph.Petersen(), 10, 15, 3),
	)

	It("should make the Petersen graph cubic with no short cycles", func() {
		g := graph.Petersen()
		for v := 0; v < g.Order(); v++ {
			Expect(g.Degree(v)).To(Equal(3))
			// girth 5: every other vertex is within distance two
			Expect(len(g.DistanceTwo(v)) + g.Degree(v)).To(Equal(9))
		}
	})

	It("should draw reproducible random graphs", func() {
		a := graph.Random(12, 0.3, rand.New(rand.NewSource(1)))
		b := graph.Random(12, 0.3, rand.New(rand.NewSource(1)))
		Expect(a.Edges()).To(Equal(b.Edges()))
		Expect(graph.Random(6, 1, rand.New(rand.NewSource(1))).Size()).To(Equal(15))
		Expect(graph.Random(6, 0, rand.New(rand.NewSource(1))).Size()).To(BeZero())
	})
})

var _ = Describe("Writers", func() {
	It("should write edge lists that parse back", func() {
		var buf bytes.Buffer
		Expect(graph.WriteEdgeList(&buf, graph.Cycle(4))).To(Succeed())
		g, err := graph.Parse(&buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(g.Edges()).To(Equal(graph.Cycle(4).Edges()))
	})

	It("should refuse edge lists for graphs with isolated vertices", func() {
		g, err := graph.New(3, []graph.Edge{{U: 0, V: 1}})
		Expect(err).ToNot(HaveOccurred())
		Expect(graph.WriteEdgeList(&bytes.Buffer{}, g)).To(MatchError(graph.ErrIsolatedVertex))
	})

	It("should write DIMACS that keeps isolated vertices", func() {
		g, err := graph.New(3, []graph.Edge{{U: 0, V: 1}})
		Expect(err).ToNot(HaveOccurred())
		var buf bytes.Buffer
		Expect(graph.WriteDIMACS(&buf, g)).To(Succeed())
		Expect(buf.String()).To(Equal("p edge 3 1\ne 1 2\n"))

		back, err := graph.ParseDIMACS(&buf)
		Expect(err).ToNot(HaveOccurred())
		Expect(back.Order()).To(Equal(3))
		Expect(back.Isolated()).To(Equal([]int{2}))
	})
})
