package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// ErrIsolatedVertex is returned by WriteEdgeList for graphs that an
// edge list cannot describe.
var ErrIsolatedVertex = errors.New("edge lists cannot describe isolated vertices")

// WriteEdgeList writes g in the format read by Parse, one edge per line.
func WriteEdgeList(w io.Writer, g *Graph) error {
	if isolated := g.Isolated(); len(isolated) > 0 {
		return fmt.Errorf("vertex %d: %w", isolated[0], ErrIsolatedVertex)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# %d vertices, %d edges\n", g.Order(), g.Size())
	for _, e := range g.edges {
		fmt.Fprintf(bw, "%d %d\n", e.U, e.V)
	}
	return bw.Flush()
}

// WriteDIMACS writes g in the format read by ParseDIMACS.
func WriteDIMACS(w io.Writer, g *Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p edge %d %d\n", g.Order(), g.Size())
	for _, e := range g.edges {
		fmt.Fprintf(bw, "e %d %d\n", e.U+1, e.V+1)
	}
	return bw.Flush()
}
