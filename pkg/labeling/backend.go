package labeling

import (
	"fmt"

	"github.com/freqlab/l21/internal/pbsolver"
	"github.com/freqlab/l21/internal/solver"
	"github.com/freqlab/l21/pkg/milp"
)

// Backend names a built-in oracle implementation.
type Backend string

const (
	// Gini solves the model as a sequence of SAT problems with
	// github.com/go-air/gini, tightening the objective bound until UNSAT.
	Gini Backend = "gini"
	// Gophersat hands the model to the pseudo-boolean optimiser of
	// github.com/crillab/gophersat.
	Gophersat Backend = "gophersat"
)

// Backends lists the built-in oracle implementations.
var Backends = []Backend{Gini, Gophersat}

// ParseBackend validates a backend name. The empty string selects Gini.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case "", Gini:
		return Gini, nil
	case Gophersat:
		return Gophersat, nil
	}
	return "", fmt.Errorf("unknown backend %q (want one of %v)", s, Backends)
}

func (b Backend) oracle(tracer solver.Tracer) (milp.Oracle, error) {
	switch b {
	case Gini:
		return solver.New(solver.WithTracer(tracer))
	case Gophersat:
		return pbsolver.New(), nil
	}
	return nil, fmt.Errorf("unknown backend %q", string(b))
}
