package armagarch

import "math"

// QuantileForecast holds the five reported quantile price levels.
type QuantileForecast struct {
	P005 float64 // 0.5%
	P01  float64 // 1%
	P02  float64 // 2%
	P05  float64 // 5%
	P50  float64 // 50%
}

// Diagnostics summarizes fit quality and the solver run.
type Diagnostics struct {
	AIC  float64
	BIC  float64
	AICC float64

	Iterations  int
	Evaluations int
	Converged   bool
}

// FitResult is the immutable outcome of one calibration.
type FitResult struct {
	Parameters Parameters
	Likelihood float64
	// Vol is the terminal conditional volatility, the square root of the
	// one-step-ahead variance forecast.
	Vol float64
	// Scenarios is the sorted standardized residual path, rescaled onto the
	// terminal volatility. Length is series length minus one.
	Scenarios []float64
	Quantiles QuantileForecast

	Diagnostics Diagnostics
}

// AsMap renders the result under its stable field names, the form consumed
// by reporting layers.
func (r *FitResult) AsMap() map[string]any {
	return map[string]any{
		"parameters":    r.Parameters.Vector(),
		"Omega":         r.Parameters.Omega,
		"Alpha":         r.Parameters.Alpha,
		"Beta":          r.Parameters.Beta,
		"Theta":         r.Parameters.Theta,
		"Mu":            r.Parameters.Mu,
		"Phi":           r.Parameters.Phi,
		"Scenarios":     r.Scenarios,
		"Likelihood":    r.Likelihood,
		"Vol":           r.Vol,
		"Quantile=0.5%": r.Quantiles.P005,
		"Quantile=1%":   r.Quantiles.P01,
		"Quantile=2%":   r.Quantiles.P02,
		"Quantile=5%":   r.Quantiles.P05,
		"Quantile=50%":  r.Quantiles.P50,
	}
}

// diagnosticsFor derives the information criteria from the maximized
// likelihood. The effective sample size is the number of log-returns, one
// less than the series length.
func diagnosticsFor(likelihood float64, observations int, iterations, evaluations int, converged bool) Diagnostics {
	k := float64(parameterCount)
	n := float64(observations - 1)

	d := Diagnostics{
		AIC:         2*k - 2*likelihood,
		BIC:         k*math.Log(n) - 2*likelihood,
		Iterations:  iterations,
		Evaluations: evaluations,
		Converged:   converged,
	}
	if n-k-1 > 0 {
		d.AICC = d.AIC + (2*k*k+2*k)/(n-k-1)
	} else {
		d.AICC = math.Inf(1)
	}
	return d
}
