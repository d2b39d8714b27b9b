package labeling_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/freqlab/l21/pkg/graph"
	"github.com/freqlab/l21/pkg/labeling"
)

var _ = Describe("BoundStrategy", func() {
	DescribeTable("bounds",
		func(b labeling.BoundStrategy, delta, expected int) {
			Expect(b.Bound(delta)).To(Equal(expected))
		},
		Entry("griggs-yeh for no edges", labeling.GriggsYeh, 0, 0),
		Entry("griggs-yeh for a matching", labeling.GriggsYeh, 1, 2),
		Entry("griggs-yeh for paths and cycles", labeling.GriggsYeh, 2, 4),
		Entry("griggs-yeh for cubic graphs", labeling.GriggsYeh, 3, 9),
		Entry("chang-kuo for no edges", labeling.ChangKuo, 0, 0),
		Entry("chang-kuo for a matching", labeling.ChangKuo, 1, 2),
		Entry("chang-kuo for cubic graphs", labeling.ChangKuo, 3, 12),
	)

	It("should never decrease with the degree", func() {
		for _, b := range []labeling.BoundStrategy{labeling.GriggsYeh, labeling.ChangKuo} {
			for delta := 1; delta < 20; delta++ {
				Expect(b.Bound(delta)).To(BeNumerically(">=", b.Bound(delta-1)), "%s at %d", b, delta)
			}
		}
	})

	It("should cover the optimal span of small graphs", func() {
		for _, g := range []*graph.Graph{path(2), path(5), star(3), complete(4), cycle(5)} {
			Expect(labeling.SpanBound(g)).To(BeNumerically(">=", bruteSpan(g)))
		}
	})

	It("should parse what it prints", func() {
		for _, b := range []labeling.BoundStrategy{labeling.GriggsYeh, labeling.ChangKuo} {
			parsed, err := labeling.ParseBoundStrategy(b.String())
			Expect(err).ToNot(HaveOccurred())
			Expect(parsed).To(Equal(b))
		}
		parsed, err := labeling.ParseBoundStrategy("")
		Expect(err).ToNot(HaveOccurred())
		Expect(parsed).To(Equal(labeling.GriggsYeh))
		_, err = labeling.ParseBoundStrategy("brooks")
		Expect(err).To(HaveOccurred())
	})
})
