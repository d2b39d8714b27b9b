package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrMalformedEdgeList is wrapped by every ParseEdgeList failure that is
// caused by the input rather than by the reader.
var ErrMalformedEdgeList = errors.New("malformed edge list")

// ParseEdgeList reads whitespace separated vertex identifiers and pairs
// them up into edges. Pairs may span lines; a '#' starts a comment that
// runs to the end of the line. For instance:
//
//	# path on three vertices
//	0 1 1 2
func ParseEdgeList(r io.Reader) ([]Edge, error) {
	reader := bufio.NewReader(r)

	var (
		edges   []Edge
		pending = -1
		lineNo  = 0
	)
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error reading edge list: %w", err)
		}
		lineNo++

		// strip comments
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		for _, tok := range strings.Fields(line) {
			id, perr := strconv.Atoi(tok)
			if perr != nil {
				return nil, fmt.Errorf("line %d: %q is not an integer: %w", lineNo, tok, ErrMalformedEdgeList)
			}
			if id < 0 {
				return nil, fmt.Errorf("line %d: %q is not a valid vertex: %w", lineNo, tok, ErrMalformedEdgeList)
			}
			if pending < 0 {
				pending = id
				continue
			}
			edges = append(edges, Edge{U: pending, V: id})
			pending = -1
		}

		if errors.Is(err, io.EOF) {
			break
		}
	}

	if pending >= 0 {
		return nil, fmt.Errorf("vertex %d has no partner (odd number of identifiers): %w", pending, ErrMalformedEdgeList)
	}
	return edges, nil
}

// Parse reads an edge list and builds a gap-free graph from it.
func Parse(r io.Reader) (*Graph, error) {
	edges, err := ParseEdgeList(r)
	if err != nil {
		return nil, err
	}
	return FromEdges(edges)
}

// ParseFile reads the graph stored at path. Files ending in .col or
// .dimacs are read with ParseDIMACS, everything else as an edge list.
func ParseFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening graph (%s): %w", path, err)
	}
	defer f.Close()

	parse := Parse
	switch strings.ToLower(filepath.Ext(path)) {
	case ".col", ".dimacs":
		parse = ParseDIMACS
	}
	g, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("error parsing graph (%s): %w", path, err)
	}
	return g, nil
}
