package armagarch

import (
	"math"

	"github.com/quantex-labs/histvol/pkg/timeseries"
)

// penaltyEps controls the steepness of the soft boundary penalties. A
// violation of size eps already costs one unit of log-likelihood, so any
// visible violation costs on the order of 1/eps.
const penaltyEps = 1e-30

// boundedObjective wraps the log-likelihood with one-sided penalties that
// keep a derivative-free search away from the parameter bounds without hard
// clipping. Strictly inside the bounds the objective equals the raw
// log-likelihood.
func boundedObjective(s timeseries.Series, m0 float64) func(x []float64) float64 {
	return func(x []float64) float64 {
		p := paramsFromSlice(x)

		logLik := logLikelihood(p, s, m0)

		logLik -= math.Max(penaltyEps-p.Omega, 0) / penaltyEps
		logLik -= math.Max(penaltyEps-p.Alpha, 0) / penaltyEps
		logLik -= math.Max((p.Alpha-1)+penaltyEps, 0) / penaltyEps
		logLik -= math.Max(penaltyEps-p.Beta, 0) / penaltyEps
		logLik -= math.Max((p.Beta-1)+penaltyEps, 0) / penaltyEps

		return logLik
	}
}
