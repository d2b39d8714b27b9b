package graph

import (
	"math/rand"
)

// Path returns the path 0-1-...-(n-1).
func Path(n int) *Graph {
	edges := make([]Edge, 0, max(n-1, 0))
	for i := 0; i+1 < n; i++ {
		edges = append(edges, Edge{U: i, V: i + 1})
	}
	return must(New(n, edges))
}

// Cycle returns the cycle on n vertices. Below three vertices it is a
// path.
func Cycle(n int) *Graph {
	if n < 3 {
		return Path(n)
	}
	edges := make([]Edge, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, Edge{U: i, V: (i + 1) % n})
	}
	return must(New(n, edges))
}

func Complete(n int) *Graph {
	var edges []Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, Edge{U: i, V: j})
		}
	}
	return must(New(n, edges))
}

// Star returns K1,k with centre 0.
func Star(k int) *Graph {
	edges := make([]Edge, 0, k)
	for i := 1; i <= k; i++ {
		edges = append(edges, Edge{U: 0, V: i})
	}
	return must(New(k+1, edges))
}

// Grid returns the rows×cols grid, numbering vertices row by row.
func Grid(rows, cols int) *Graph {
	var edges []Edge
	id := func(r, c int) int { return r*cols + c }
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if c+1 < cols {
				edges = append(edges, Edge{U: id(r, c), V: id(r, c+1)})
			}
			if r+1 < rows {
				edges = append(edges, Edge{U: id(r, c), V: id(r+1, c)})
			}
		}
	}
	return must(New(rows*cols, edges))
}

// Petersen returns the Petersen graph: an outer 5-cycle 0..4, an inner
// pentagram 5..9 and spokes i-(i+5).
func Petersen() *Graph {
	var edges []Edge
	for i := 0; i < 5; i++ {
		edges = append(edges,
			Edge{U: i, V: (i + 1) % 5},
			Edge{U: 5 + i, V: 5 + (i+2)%5},
			Edge{U: i, V: i + 5},
		)
	}
	return must(New(10, edges))
}

// Random returns a G(n, p) graph: each of the n(n-1)/2 possible edges is
// present with probability p, drawn from r.
func Random(n int, p float64, r *rand.Rand) *Graph {
	var edges []Edge
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if r.Float64() < p {
				edges = append(edges, Edge{U: i, V: j})
			}
		}
	}
	return must(New(n, edges))
}

func must(g *Graph, err error) *Graph {
	if err != nil {
		panic(err)
	}
	return g
}
