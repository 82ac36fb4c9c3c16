package armagarch

import "github.com/quantex-labs/histvol/pkg/solver"

type ModelOption func(*Model)

// WithMaximizer selects the search strategy. The default is a seeded
// population-based CMA-ES with the model's per-parameter step sizes; see
// solver.CmaEs and solver.FiniteDiffBFGS for the respective failure
// policies.
func WithMaximizer(maximizer solver.Maximizer) ModelOption {
	return func(m *Model) {
		m.maximizer = maximizer
	}
}

// WithInitialInnovation overrides the filter's initial filtered innovation
// m(0). The default of zero is a convention, not a proven optimum.
func WithInitialInnovation(m0 float64) ModelOption {
	return func(m *Model) {
		m.initialInnovation = m0
	}
}

// WithGuess overrides the built-in default starting guess used by Fit.
func WithGuess(guess [6]float64) ModelOption {
	return func(m *Model) {
		m.parameterGuess = guess
	}
}
