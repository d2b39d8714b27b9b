package graph

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrVertexOutOfRange is returned when an edge references a vertex
	// outside the declared range [0,n).
	ErrVertexOutOfRange = errors.New("vertex out of range")
	// ErrSelfLoop is returned for an edge whose endpoints coincide.
	ErrSelfLoop = errors.New("self-loop")
	// ErrVertexGap is returned by FromEdges when the inferred vertex
	// range contains an identifier that no edge mentions.
	ErrVertexGap = errors.New("gap in vertex identifiers")
	// ErrTooLarge is returned for graphs with more than MaxOrder vertices.
	ErrTooLarge = errors.New("graph too large")
)

// MaxOrder is the largest vertex count New accepts.
const MaxOrder = 1 << 20

// Edge is an undirected edge between two vertices.
type Edge struct {
	U, V int
}

func (e Edge) String() string {
	return fmt.Sprintf("%d-%d", e.U, e.V)
}

// Graph is an immutable, undirected simple graph over the dense vertex
// range [0,n). Adjacency is symmetric and neighbour lists are sorted and
// free of duplicates.
type Graph struct {
	adj   [][]int
	edges []Edge
}

// New builds a graph with exactly n vertices. Vertices that appear in no
// edge are isolated. Parallel edges collapse into one.
func New(n int, edges []Edge) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("negative vertex count %d", n)
	}
	if n > MaxOrder {
		return nil, fmt.Errorf("%d vertices: %w", n, ErrTooLarge)
	}
	sets := make([]map[int]struct{}, n)
	for i := range sets {
		sets[i] = make(map[int]struct{})
	}
	for _, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return nil, fmt.Errorf("edge %s with %d vertices: %w", e, n, ErrVertexOutOfRange)
		}
		if e.U == e.V {
			return nil, fmt.Errorf("edge %s: %w", e, ErrSelfLoop)
		}
		sets[e.U][e.V] = struct{}{}
		sets[e.V][e.U] = struct{}{}
	}

	g := &Graph{adj: make([][]int, n)}
	for v, set := range sets {
		ns := make([]int, 0, len(set))
		for u := range set {
			ns = append(ns, u)
		}
		slices.Sort(ns)
		g.adj[v] = ns
		for _, u := range ns {
			if v < u {
				g.edges = append(g.edges, Edge{U: v, V: u})
			}
		}
	}
	return g, nil
}

// FromEdges builds a graph whose vertex count is inferred from the
// largest identifier in edges. Every identifier below it must occur in
// at least one edge; a gap would otherwise silently become an isolated
// vertex that the input never declared.
func FromEdges(edges []Edge) (*Graph, error) {
	n := 0
	for _, e := range edges {
		if e.U < 0 || e.V < 0 {
			return nil, fmt.Errorf("edge %s: %w", e, ErrVertexOutOfRange)
		}
		n = max(n, e.U+1, e.V+1)
	}
	// a range wider than the endpoints can cover must have a gap
	if n > 2*len(edges) {
		return nil, fmt.Errorf("%d vertices from %d edges: %w", n, len(edges), ErrVertexGap)
	}
	seen := make([]bool, n)
	for _, e := range edges {
		seen[e.U] = true
		seen[e.V] = true
	}
	for v, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("vertex %d never appears in %d vertices: %w", v, n, ErrVertexGap)
		}
	}
	return New(n, edges)
}

// Order returns the number of vertices.
func (g *Graph) Order() int {
	return len(g.adj)
}

// Size returns the number of distinct undirected edges.
func (g *Graph) Size() int {
	return len(g.edges)
}

func (g *Graph) Degree(v int) int {
	return len(g.adj[v])
}

// MaxDegree returns Δ, or 0 for a graph without edges.
func (g *Graph) MaxDegree() int {
	d := 0
	for _, ns := range g.adj {
		d = max(d, len(ns))
	}
	return d
}

// Neighbors returns a copy of the sorted neighbour list of v.
func (g *Graph) Neighbors(v int) []int {
	return slices.Clone(g.adj[v])
}

// Adjacent reports whether u and v share an edge.
func (g *Graph) Adjacent(u, v int) bool {
	_, ok := slices.BinarySearch(g.adj[u], v)
	return ok
}

// Edges returns every undirected edge once, with U < V, in ascending
// order.
func (g *Graph) Edges() []Edge {
	return slices.Clone(g.edges)
}

// Isolated returns the vertices of degree zero in ascending order.
func (g *Graph) Isolated() []int {
	var vs []int
	for v, ns := range g.adj {
		if len(ns) == 0 {
			vs = append(vs, v)
		}
	}
	return vs
}

// DistanceTwo returns, in ascending order, the vertices at distance
// exactly two from v.
func (g *Graph) DistanceTwo(v int) []int {
	var out []int
	for _, u := range g.adj[v] {
		for _, z := range g.adj[u] {
			if z == v || g.Adjacent(v, z) {
				continue
			}
			out = append(out, z)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// Walk calls fn for every 2-hop walk v-u-z with z != v, in vertex order.
// The same (v, z) pair is reported once per intermediate vertex u.
func (g *Graph) Walk(fn func(v, u, z int)) {
	for v, ns := range g.adj {
		for _, u := range ns {
			for _, z := range g.adj[u] {
				if z != v {
					fn(v, u, z)
				}
			}
		}
	}
}
