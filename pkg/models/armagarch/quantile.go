package armagarch

import "math"

// fitQuantiles are the value-at-risk style percentiles reported with every
// fit.
var fitQuantiles = [5]float64{0.005, 0.01, 0.02, 0.05, 0.5}

// quantilePredictions interpolates empirical quantiles of a sorted scenario
// path and projects them onto the last observed price level.
//
// The fractional rank (L+1)*q - 1 is split between the two neighbouring
// order statistics with index clamping at both ends. The truncation toward
// zero is deliberate: for very low q on a short path the rank goes negative
// and the lowest scenario is linearly extrapolated rather than clamped.
func quantilePredictions(path []float64, lastPrice float64, quantiles []float64) []float64 {
	values := make([]float64, len(quantiles))
	length := len(path)

	for i, q := range quantiles {
		relativeChange := 1.0
		if length > 0 {
			rank := float64(length+1)*q - 1
			lo := int(rank)
			hi := lo + 1

			interpolated := (float64(hi)-rank)*path[max(lo, 0)] +
				(rank-float64(lo))*path[min(hi, length-1)]
			relativeChange = math.Exp(interpolated)
		}

		values[i] = lastPrice * relativeChange
	}

	return values
}
