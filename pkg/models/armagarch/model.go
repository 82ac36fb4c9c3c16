// Package armagarch fits a lognormal ARMA(1,1)-GARCH(1,1) volatility model
// to a univariate price series by maximum likelihood and derives
// historical-simulation quantile forecasts from the fitted parameters.
package armagarch

import (
	"errors"
	"fmt"
	"math"

	"github.com/quantex-labs/histvol/pkg/solver"
	"github.com/quantex-labs/histvol/pkg/timeseries"
)

const minObservations = 3

// defaultSeed makes the default population search reproducible.
const defaultSeed = 3141

var (
	ErrNilSeries      = errors.New("nil series")
	ErrSeriesTooShort = errors.New("series too short")
)

// Model binds the per-instance calibration configuration to one immutable
// series. Parameter names, the default guess, step sizes and bounds are
// instance configuration, fixed at construction. A Model carries no state
// across Fit calls; distinct instances are safe to use concurrently.
type Model struct {
	series    timeseries.Series
	maximizer solver.Maximizer

	// initialInnovation is the filter's m(0). Zero by default; an
	// unresolved initialization choice inherited from the model
	// definition, tunable but not proven optimal.
	initialInnovation float64

	parameterNames [parameterCount]string
	parameterGuess [parameterCount]float64
	parameterStep  [parameterCount]float64
	lowerBound     [parameterCount]float64
	upperBound     [parameterCount]float64
}

// New creates an unfitted model over the series. The series must hold at
// least three observations for the filter to be meaningful.
func New(series timeseries.Series, opts ...ModelOption) (*Model, error) {
	if series == nil {
		return nil, ErrNilSeries
	}
	if series.Len() < minObservations {
		return nil, fmt.Errorf("%w: %d observations, need at least %d",
			ErrSeriesTooShort, series.Len(), minObservations)
	}

	m := &Model{
		series:         series,
		parameterNames: [parameterCount]string{"omega", "alpha", "beta", "theta", "mu", "phi"},
		parameterGuess: [parameterCount]float64{0.10, 0.30, 0.30, 0.0, 0.0, 0.0},
		parameterStep:  [parameterCount]float64{0.001, 0.001, 0.001, 0.001, 0.0001, 0.001},
		lowerBound:     [parameterCount]float64{0, 0, 0, math.Inf(-1), math.Inf(-1), math.Inf(-1)},
		upperBound:     [parameterCount]float64{math.Inf(1), 1, 1, math.Inf(1), math.Inf(1), math.Inf(1)},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.maximizer == nil {
		m.maximizer = solver.CmaEs{
			Steps: m.parameterStep[:],
			Seed:  defaultSeed,
		}
	}
	return m, nil
}

// ParameterNames returns the canonical parameter order.
func (m *Model) ParameterNames() []string {
	names := make([]string, parameterCount)
	copy(names, m.parameterNames[:])
	return names
}

// Fit calibrates the model from the built-in starting guess.
func (m *Model) Fit() (*FitResult, error) {
	guess := make([]float64, parameterCount)
	copy(guess, m.parameterGuess[:])
	return m.fit(guess)
}

// FitWithGuess calibrates the model from a caller-supplied starting point.
// The guess must name all six parameters with non-NaN values.
func (m *Model) FitWithGuess(guess Guess) (*FitResult, error) {
	start, err := guess.vector()
	if err != nil {
		return nil, err
	}
	return m.fit(start)
}

func (m *Model) fit(start []float64) (*FitResult, error) {
	objective := boundedObjective(m.series, m.initialInnovation)

	run, err := m.maximizer.Maximize(objective, start)
	if err != nil {
		return nil, fmt.Errorf("maximizing likelihood: %w", err)
	}
	if len(run.X) != parameterCount {
		return nil, solver.ErrNoSolution
	}

	best := paramsFromSlice(run.X)

	path := m.ScenariosFor(best)
	lastPrice := m.series.ValueAt(m.series.Len() - 1)
	quantiles := quantilePredictions(path, lastPrice, fitQuantiles[:])

	likelihood := m.LogLikelihoodFor(best)

	return &FitResult{
		Parameters: best,
		Likelihood: likelihood,
		Vol:        math.Sqrt(m.TerminalVarianceFor(best)),
		Scenarios:  path,
		Quantiles: QuantileForecast{
			P005: quantiles[0],
			P01:  quantiles[1],
			P02:  quantiles[2],
			P05:  quantiles[3],
			P50:  quantiles[4],
		},
		Diagnostics: diagnosticsFor(likelihood, m.series.Len(),
			run.Iterations, run.Evaluations, run.Converged),
	}, nil
}

// LogLikelihoodFor evaluates the model's half log-likelihood at the given
// parameters. Pure; feeding back a FitResult's parameters reproduces its
// Likelihood exactly.
func (m *Model) LogLikelihoodFor(p Parameters) float64 {
	return logLikelihood(p, m.series, m.initialInnovation)
}

// TerminalVarianceFor evaluates the one-step-ahead conditional variance
// after the last observation.
func (m *Model) TerminalVarianceFor(p Parameters) float64 {
	return terminalVariance(p, m.series, m.initialInnovation)
}

// ScenariosFor returns the sorted standardized residual path rescaled onto
// the terminal volatility. Length is series length minus one.
func (m *Model) ScenariosFor(p Parameters) []float64 {
	return scenarioPath(p, m.series, m.initialInnovation)
}

// QuantilePredictionsFor projects empirical scenario quantiles onto the last
// observed price, one forecast per requested quantile.
func (m *Model) QuantilePredictionsFor(p Parameters, quantiles []float64) []float64 {
	path := m.ScenariosFor(p)
	return quantilePredictions(path, m.series.ValueAt(m.series.Len()-1), quantiles)
}

// CloneCalibrated returns a new unfitted model with the same configuration
// bound to a different series.
func (m *Model) CloneCalibrated(series timeseries.Series) (*Model, error) {
	if series == nil {
		return nil, ErrNilSeries
	}
	if series.Len() < minObservations {
		return nil, fmt.Errorf("%w: %d observations, need at least %d",
			ErrSeriesTooShort, series.Len(), minObservations)
	}
	clone := *m
	clone.series = series
	return &clone, nil
}

// CloneWithWindow returns a new unfitted model over the sub-range
// [start, end) of this model's series. The window is a view, not a copy.
func (m *Model) CloneWithWindow(start, end int) (*Model, error) {
	window, err := m.series.Window(start, end)
	if err != nil {
		return nil, err
	}
	return m.CloneCalibrated(window)
}
