package graph

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedDIMACS is wrapped by every ParseDIMACS failure caused by
// the input.
var ErrMalformedDIMACS = errors.New("malformed DIMACS graph")

var (
	dimacsComment = regexp.MustCompile(`^c(\s.*)?$`)
	dimacsHeader  = regexp.MustCompile(`^p\s+(edge|col)\s+(\d+)\s+(\d+)$`)
	dimacsEdge    = regexp.MustCompile(`^e\s+(\d+)\s+(\d+)$`)
)

// ParseDIMACS reads a graph in the DIMACS colouring format used by the
// classic benchmark instances: a "p edge <vertices> <edges>" header
// followed by one "e <u> <v>" line per edge, with 1-based vertices.
// For instance:
//
//	c path on three vertices
//	p edge 3 2
//	e 1 2
//	e 2 3
//
// Vertex i of the file becomes vertex i-1 of the graph. Vertices that no
// edge mentions are kept as isolated vertices.
func ParseDIMACS(r io.Reader) (*Graph, error) {
	reader := bufio.NewReader(r)

	n, m := -1, 0
	var edges []Edge
	for lineNo := 1; ; lineNo++ {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("error reading DIMACS data: %w", err)
		}
		eof := err != nil
		line = strings.TrimSpace(line)

		switch {
		case line == "" || dimacsComment.MatchString(line):
		case dimacsHeader.MatchString(line):
			if n >= 0 {
				return nil, fmt.Errorf("line %d: second problem line: %w", lineNo, ErrMalformedDIMACS)
			}
			parts := dimacsHeader.FindStringSubmatch(line)
			var nerr, merr error
			n, nerr = strconv.Atoi(parts[2])
			m, merr = strconv.Atoi(parts[3])
			if err := errors.Join(nerr, merr); err != nil {
				return nil, fmt.Errorf("line %d: problem line (%s): %w: %w", lineNo, line, err, ErrMalformedDIMACS)
			}
			if n > MaxOrder {
				return nil, fmt.Errorf("line %d: %d vertices: %w", lineNo, n, ErrTooLarge)
			}
		case dimacsEdge.MatchString(line):
			if n < 0 {
				return nil, fmt.Errorf("line %d: missing header 'p edge <vertices> <edges>': %w", lineNo, ErrMalformedDIMACS)
			}
			parts := dimacsEdge.FindStringSubmatch(line)
			u, uerr := strconv.Atoi(parts[1])
			v, verr := strconv.Atoi(parts[2])
			if uerr != nil || verr != nil || u < 1 || u > n || v < 1 || v > n {
				return nil, fmt.Errorf("line %d: edge (%s) names a vertex outside 1..%d: %w", lineNo, line, n, ErrMalformedDIMACS)
			}
			edges = append(edges, Edge{U: u - 1, V: v - 1})
		default:
			return nil, fmt.Errorf("line %d: invalid DIMACS command (%s): %w", lineNo, line, ErrMalformedDIMACS)
		}

		if eof {
			break
		}
	}

	if n < 0 {
		return nil, fmt.Errorf("no problem line found: %w", ErrMalformedDIMACS)
	}
	if len(edges) != m {
		return nil, fmt.Errorf("header declares %d edges but %d were found: %w", m, len(edges), ErrMalformedDIMACS)
	}
	return New(n, edges)
}
