package solver

import (
	"github.com/charmbracelet/log"
)

// SearchPosition describes one improving model found during the
// objective descent.
type SearchPosition interface {
	// Iteration counts solver calls, starting at 1.
	Iteration() int
	// Cost is the objective value of the model.
	Cost() int
}

type Tracer interface {
	Trace(p SearchPosition)
}

type DefaultTracer struct{}

func (DefaultTracer) Trace(_ SearchPosition) {
}

// LoggingTracer reports every improvement at debug level.
type LoggingTracer struct {
	Logger *log.Logger
}

func (t LoggingTracer) Trace(p SearchPosition) {
	if t.Logger == nil {
		return
	}
	t.Logger.Debug("improved objective", "iteration", p.Iteration(), "cost", p.Cost())
}

type position struct {
	iteration int
	cost      int
}

func (p position) Iteration() int {
	return p.iteration
}

func (p position) Cost() int {
	return p.cost
}
