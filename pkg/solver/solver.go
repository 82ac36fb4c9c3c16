// Package solver provides derivative-free maximization strategies for
// model calibration. The strategies wrap gonum's optimizers behind a narrow
// interface so a model never depends on a concrete search method.
package solver

import "errors"

var (
	ErrEmptyStart = errors.New("empty starting point")
	ErrNoSolution = errors.New("solver produced no solution")
)

// Result is the outcome of one maximizer run.
type Result struct {
	// X is the best parameter vector found. On a non-converged run of a
	// fallback-style maximizer this is the unmodified starting point.
	X []float64
	// Value is the objective value at X.
	Value float64

	Iterations  int
	Evaluations int
	Converged   bool
}

// Maximizer searches parameter space for a maximum of the objective starting
// from the given point. Implementations document their failure policy: some
// propagate solver errors, some fall back to the starting point.
type Maximizer interface {
	Maximize(objective func([]float64) float64, start []float64) (Result, error)
}
