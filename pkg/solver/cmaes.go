package solver

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// CmaEs is a population-based, derivative-free maximizer backed by gonum's
// Cholesky CMA-ES implementation.
//
// Failure policy: on any solver error the starting point is returned
// unmodified with Converged set to false and a nil error. Callers that need
// to detect a failed search must compare the result value against the value
// at the start.
type CmaEs struct {
	// Steps are per-parameter initial step sizes. The initial search
	// covariance is diag(Steps[i]^2). When nil, a unit covariance is used.
	Steps []float64
	// Population overrides the sample size per generation. Zero selects
	// floor(4 + 3*ln(dim)).
	Population int
	// Seed makes the search deterministic.
	Seed uint64
	// MaxIterations caps the generation count. Zero means a large default.
	MaxIterations int
}

const defaultCmaEsIterations = 10_000_000

func (c CmaEs) Maximize(objective func([]float64) float64, start []float64) (Result, error) {
	if len(start) == 0 {
		return Result{}, ErrEmptyStart
	}

	dim := len(start)

	population := c.Population
	if population == 0 {
		population = int(4 + 3*math.Log(float64(dim)))
	}

	method := &optimize.CmaEsChol{
		Population: population,
		Src:        rand.NewSource(c.Seed),
	}
	if c.Steps != nil {
		chol, err := diagonalCholesky(c.Steps)
		if err != nil {
			return Result{}, err
		}
		method.InitCholesky = chol
	}

	iterations := c.MaxIterations
	if iterations == 0 {
		iterations = defaultCmaEsIterations
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 { return -objective(x) },
	}
	settings := &optimize.Settings{
		MajorIterations: iterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-10,
			Iterations: 100,
		},
	}

	result, err := optimize.Minimize(problem, start, settings, method)
	if err != nil || result == nil {
		fallback := make([]float64, dim)
		copy(fallback, start)
		return Result{
			X:         fallback,
			Value:     objective(fallback),
			Converged: false,
		}, nil
	}

	return Result{
		X:           result.X,
		Value:       -result.F,
		Iterations:  result.Stats.MajorIterations,
		Evaluations: result.Stats.FuncEvaluations,
		Converged:   true,
	}, nil
}

func diagonalCholesky(steps []float64) (*mat.Cholesky, error) {
	n := len(steps)
	sym := mat.NewSymDense(n, nil)
	for i, s := range steps {
		sym.SetSym(i, i, s*s)
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, ErrNoSolution
	}
	return &chol, nil
}
