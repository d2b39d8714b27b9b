// Package render draws labeled graphs as Graphviz DOT and SVG.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/freqlab/l21/pkg/graph"
)

// ToDOT describes g as an undirected DOT graph. When labels is non-nil
// each vertex shows "v: label" and vertices carrying the largest label
// are highlighted.
func ToDOT(g *graph.Graph, labels []int) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	span := -1
	for _, l := range labels {
		span = max(span, l)
	}
	for v := 0; v < g.Order(); v++ {
		if v >= len(labels) {
			fmt.Fprintf(&buf, "  %d;\n", v)
			continue
		}
		attrs := fmt.Sprintf("label=\"%d: %d\"", v, labels[v])
		if labels[v] == span {
			attrs += ", fillcolor=lightblue"
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", v, attrs)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.U, e.V)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG lays out a DOT graph and renders it to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
