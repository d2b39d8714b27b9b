package labeling

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotOptimal is returned when the oracle stops without proving an
// optimum, for instance on a time limit. No partial labeling is reported.
var ErrNotOptimal = errors.New("could not find an optimal solution")

// Infeasible is returned when the oracle proves that no assignment
// satisfies the model. A valid model over a safe span bound is always
// feasible, so this points at the bound or at constraint generation.
type Infeasible struct {
	MaxSpan int
	// Conflicts names constraints that together admit no solution, when
	// the oracle can tell.
	Conflicts []string
}

func (e Infeasible) Error() string {
	msg := fmt.Sprintf("model infeasible with span bound %d", e.MaxSpan)
	if len(e.Conflicts) == 0 {
		return msg
	}
	return fmt.Sprintf("%s:\n%s", msg, strings.Join(e.Conflicts, "\n"))
}

// DecodeError reports an oracle assignment that does not describe a
// labeling. It indicates a broken model or a broken oracle.
type DecodeError struct {
	// Vertex is -1 when the inconsistency concerns the span.
	Vertex int
	Colors []int
	Span   int
}

func (e *DecodeError) Error() string {
	if e.Vertex < 0 {
		return fmt.Sprintf("internal decode failure: usage indicators give span %d but labels use up to %d", e.Span, maxOf(e.Colors))
	}
	return fmt.Sprintf("internal decode failure: vertex %d has %d colours %v, want exactly one", e.Vertex, len(e.Colors), e.Colors)
}

// ViolationError reports a pair of vertices whose labels break an
// L(2,1) rule.
type ViolationError struct {
	Rule   string
	U, V   int
	LU, LV int
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("%s violated by %d (label %d) and %d (label %d)", e.Rule, e.U, e.LU, e.V, e.LV)
}

func maxOf(xs []int) int {
	m := -1
	for _, x := range xs {
		m = max(m, x)
	}
	return m
}
