package armagarch

import (
	"math"
	"sort"

	"github.com/quantex-labs/histvol/pkg/timeseries"
)

// sanitizeReturn replaces degenerate log-returns with zero. Prices of zero or
// a non-positive ratio produce NaN or an infinity here; substituting zero
// keeps the filter running over sparse or gappy data instead of poisoning
// the whole likelihood. Intentional, do not turn this into an error.
func sanitizeReturn(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// logLikelihood evaluates the half log-likelihood of the ARMA(1,1)-GARCH(1,1)
// filter over the series. The recursion keeps the conditional variance h one
// step ahead of the filtered innovation: h is updated from the previous m
// before the next innovation is formed.
func logLikelihood(p Parameters, s timeseries.Series, m0 float64) float64 {
	logLik := 0.0

	evalPrev := 0.0
	eval := sanitizeReturn(math.Log(s.ValueAt(1) / s.ValueAt(0)))
	h := p.Omega / (1.0 - p.Alpha - p.Beta)
	m := m0

	// The observation is treated as conditionally lognormal, hence the
	// abs: a negative value is modeled as -x lognormal.
	logLik += -math.Log(h) - 2*math.Log(math.Abs(s.ValueAt(1))) - eval*eval/h

	n := s.Len()
	for i := 1; i < n-1; i++ {
		m = -p.Mu - p.Theta*m + eval - p.Phi*evalPrev
		h = (p.Omega + p.Alpha*m*m) + p.Beta*h

		evalNext := sanitizeReturn(math.Log(s.ValueAt(i+1) / s.ValueAt(i)))
		mNext := -p.Mu - p.Theta*m + evalNext - p.Phi*eval

		logLik += -math.Log(h) - 2*math.Log(math.Abs(s.ValueAt(i+1))) - mNext*mNext/h

		evalPrev = eval
		eval = evalNext
	}

	logLik += -math.Log(2*math.Pi) * float64(n-1)
	logLik *= 0.5

	return logLik
}

// terminalVariance runs the variance recursion over the whole series and
// returns the final conditional variance, the one-step-ahead forecast for the
// observation after the last.
func terminalVariance(p Parameters, s timeseries.Series, m0 float64) float64 {
	evalPrev := 0.0
	h := p.Omega / (1.0 - p.Alpha - p.Beta)
	m := m0

	n := s.Len()
	for i := 1; i < n-1; i++ {
		eval := sanitizeReturn(math.Log(s.ValueAt(i) / s.ValueAt(i-1)))

		m = -p.Mu - p.Theta*m + eval - p.Phi*evalPrev
		h = (p.Omega + p.Alpha*m*m) + p.Beta*h

		evalPrev = eval
	}

	return h
}

// scenarioPath re-runs the filter recording each step's standardized
// innovation m/vol, where vol is the conditional volatility forecast from the
// previous step. The path is sorted ascending (temporal order is deliberately
// destroyed) and rescaled onto the terminal volatility, so each element is a
// log-return scenario under the current volatility level. Length is always
// s.Len()-1.
func scenarioPath(p Parameters, s timeseries.Series, m0 float64) []float64 {
	n := s.Len()
	scenarios := make([]float64, 0, n-1)

	evalPrev := 0.0
	h := p.Omega / (1.0 - p.Alpha - p.Beta)
	m := m0
	vol := math.Sqrt(h)

	for i := 1; i <= n-1; i++ {
		y := sanitizeReturn(math.Log(s.ValueAt(i) / s.ValueAt(i-1)))

		m = -p.Mu - p.Theta*m + y - p.Phi*evalPrev
		scenarios = append(scenarios, m/vol)

		h = (p.Omega + p.Alpha*m*m) + p.Beta*h
		vol = math.Sqrt(h)

		evalPrev = y
	}
	sort.Float64s(scenarios)

	for i := range scenarios {
		scenarios[i] *= vol
	}
	return scenarios
}
