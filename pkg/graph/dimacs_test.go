package graph_test

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/freqlab/l21/pkg/graph"
)

var _ = Describe("DIMACS", func() {
	It("should parse a valid graph", func() {
		g, err := graph.ParseDIMACS(strings.NewReader("c path\np edge 4 2\ne 1 2\ne 2 3\n"))
		Expect(err).ToNot(HaveOccurred())
		Expect(g.Order()).To(Equal(4))
		Expect(g.Edges()).To(Equal([]graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}}))
		Expect(g.Isolated()).To(Equal([]int{3}))
	})

	It("should accept the col problem keyword and a missing final newline", func() {
		g, err := graph.ParseDIMACS(strings.NewReader("p col 2 1\ne 2 1"))
		Expect(err).ToNot(HaveOccurred())
		Expect(g.Size()).To(Equal(1))
	})

	It("should collapse edges listed in both directions", func() {
		g, err := graph.ParseDIMACS(strings.NewReader("p edge 2 2\ne 1 2\ne 2 1\n"))
		Expect(err).ToNot(HaveOccurred())
		Expect(g.Size()).To(Equal(1))
	})

	DescribeTable("malformed input",
		func(input string) {
			_, err := graph.ParseDIMACS(strings.NewReader(input))
			Expect(err).To(MatchError(graph.ErrMalformedDIMACS))
		},
		Entry("no header", "e 1 2\n"),
		Entry("empty", ""),
		Entry("two headers", "p edge 2 0\np edge 2 0\n"),
		Entry("vertex zero", "p edge 2 1\ne 0 1\n"),
		Entry("vertex beyond the header", "p edge 2 1\ne 1 3\n"),
		Entry("edge count mismatch", "p edge 3 2\ne 1 2\n"),
		Entry("unknown command", "p edge 2 1\nx 1 2\n"),
		Entry("cnf problem", "p cnf 2 1\n"),
		Entry("edge count overflows", "p edge 3 99999999999999999999\ne 1 2\n"),
		Entry("vertex count overflows", "p edge 99999999999999999999 1\ne 1 2\n"),
		Entry("edge endpoint overflows", "p edge 3 1\ne 1 99999999999999999999\n"),
	)

	It("should reject a header with too many vertices", func() {
		_, err := graph.ParseDIMACS(strings.NewReader("p edge 1125899906842624 0\n"))
		Expect(err).To(MatchError(graph.ErrTooLarge))
	})

	It("should not trust the declared edge count", func() {
		_, err := graph.ParseDIMACS(strings.NewReader("p edge 3 4611686018427387904\ne 1 2\n"))
		Expect(err).To(MatchError(graph.ErrMalformedDIMACS))
	})

	It("should reject self-loops", func() {
		_, err := graph.ParseDIMACS(strings.NewReader("p edge 2 1\ne 1 1\n"))
		Expect(err).To(MatchError(graph.ErrSelfLoop))
	})

	It("should be chosen for .col files", func() {
		path := filepath.Join(GinkgoT().TempDir(), "p3.col")
		Expect(os.WriteFile(path, []byte("p edge 3 2\ne 1 2\ne 2 3\n"), 0644)).To(Succeed())
		g, err := graph.ParseFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(g.Order()).To(Equal(3))
		Expect(g.MaxDegree()).To(Equal(2))
	})
})
