package solver

import (
	"fmt"

	"gonum.org/v1/gonum/optimize"
)

// FiniteDiffBFGS is a quasi-Newton line-search maximizer. No analytic
// gradient is supplied, gonum estimates it with finite differences, so the
// strategy stays derivative-free from the caller's point of view.
//
// Failure policy: solver errors are propagated to the caller.
type FiniteDiffBFGS struct {
	// MaxIterations caps the major iteration count. Zero means a large
	// default.
	MaxIterations int
}

const defaultBfgsIterations = 1_000_000

func (b FiniteDiffBFGS) Maximize(objective func([]float64) float64, start []float64) (Result, error) {
	if len(start) == 0 {
		return Result{}, ErrEmptyStart
	}

	iterations := b.MaxIterations
	if iterations == 0 {
		iterations = defaultBfgsIterations
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 { return -objective(x) },
	}
	settings := &optimize.Settings{
		MajorIterations: iterations,
	}

	result, err := optimize.Minimize(problem, start, settings, &optimize.BFGS{})
	if err != nil {
		return Result{}, fmt.Errorf("bfgs line search: %w", err)
	}
	if result == nil {
		return Result{}, ErrNoSolution
	}

	return Result{
		X:           result.X,
		Value:       -result.F,
		Iterations:  result.Stats.MajorIterations,
		Evaluations: result.Stats.FuncEvaluations,
		Converged:   true,
	}, nil
}
