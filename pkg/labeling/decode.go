package labeling

import (
	"github.com/freqlab/l21/pkg/graph"
	"github.com/freqlab/l21/pkg/milp"
)

// Decode reads a solved assignment back into per-vertex labels and the
// realized span. Zero or several colours on one vertex, or usage
// indicators that disagree with the labels, are reported as a
// *DecodeError and never repaired.
func Decode(o milp.Oracle, vars Variables) ([]int, int, error) {
	labels := make([]int, len(vars.X))
	for v, row := range vars.X {
		var colors []int
		for c, x := range row {
			if o.Value(x) {
				colors = append(colors, c)
			}
		}
		if len(colors) != 1 {
			return nil, 0, &DecodeError{Vertex: v, Colors: colors}
		}
		labels[v] = colors[0]
	}
	if len(labels) == 0 {
		return labels, 0, nil
	}

	span := -1
	for c := len(vars.W) - 1; c >= 0; c-- {
		if o.Value(vars.W[c]) {
			span = c
			break
		}
	}
	if span != maxOf(labels) {
		return nil, 0, &DecodeError{Vertex: -1, Colors: labels, Span: span}
	}
	return labels, span, nil
}

// Verify checks labels against g: one non-negative label per vertex,
// labels of adjacent vertices at least two apart and labels of vertices
// at distance two distinct.
func Verify(g *graph.Graph, labels []int) error {
	if len(labels) != g.Order() {
		return &ViolationError{Rule: "totality", U: len(labels), V: g.Order()}
	}
	for v, l := range labels {
		if l < 0 {
			return &ViolationError{Rule: "non-negativity", U: v, V: v, LU: l, LV: l}
		}
	}
	for _, e := range g.Edges() {
		lu, lv := labels[e.U], labels[e.V]
		if lu-lv < 2 && lv-lu < 2 {
			return &ViolationError{Rule: "adjacent separation", U: e.U, V: e.V, LU: lu, LV: lv}
		}
	}
	for v := range labels {
		for _, z := range g.DistanceTwo(v) {
			if v < z && labels[v] == labels[z] {
				return &ViolationError{Rule: "distance-two distinctness", U: v, V: z, LU: labels[v], LV: labels[z]}
			}
		}
	}
	return nil
}

// Span returns the largest label, or 0 for no labels.
func Span(labels []int) int {
	return max(maxOf(labels), 0)
}
