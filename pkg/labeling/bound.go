package labeling

import (
	"fmt"

	"github.com/freqlab/l21/pkg/graph"
)

// BoundStrategy derives an upper bound on the optimal span from the
// maximum degree Δ.
type BoundStrategy int

const (
	// GriggsYeh bounds the span by Δ², the conjectured bound that is
	// known to hold for Δ = 2 and every large Δ. For Δ = 1 it returns 2,
	// the span of a single edge.
	GriggsYeh BoundStrategy = iota
	// ChangKuo bounds the span by Δ² + Δ, which holds for every graph.
	ChangKuo
)

// Bound returns the largest colour index the model may use.
func (b BoundStrategy) Bound(delta int) int {
	if delta <= 0 {
		return 0
	}
	if b == ChangKuo {
		return delta*delta + delta
	}
	return max(delta*delta, delta+1)
}

func (b BoundStrategy) String() string {
	switch b {
	case GriggsYeh:
		return "griggs-yeh"
	case ChangKuo:
		return "chang-kuo"
	}
	return fmt.Sprintf("BoundStrategy(%d)", int(b))
}

// ParseBoundStrategy accepts the names produced by String.
func ParseBoundStrategy(s string) (BoundStrategy, error) {
	switch s {
	case "", "griggs-yeh":
		return GriggsYeh, nil
	case "chang-kuo":
		return ChangKuo, nil
	}
	return 0, fmt.Errorf("unknown bound strategy %q (want griggs-yeh or chang-kuo)", s)
}

// SpanBound returns the default upper bound on the optimal span of g.
func SpanBound(g *graph.Graph) int {
	return GriggsYeh.Bound(g.MaxDegree())
}
