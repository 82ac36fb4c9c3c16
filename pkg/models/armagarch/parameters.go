package armagarch

import (
	"errors"
	"fmt"
	"math"
)

const parameterCount = 6

var (
	ErrIncompleteGuess = errors.New("incomplete parameter guess")
	ErrInvalidGuess    = errors.New("invalid parameter guess")
)

// Parameters is the six-dimensional ARMA(1,1)-GARCH(1,1) parameter vector.
// Omega must be positive and Alpha, Beta must lie in [0,1] for the variance
// recursion to stay positive; Theta, Mu and Phi are unconstrained mean terms.
type Parameters struct {
	Omega float64
	Alpha float64
	Beta  float64
	Theta float64
	Mu    float64
	Phi   float64
}

// Vector returns the parameters in their canonical order
// {omega, alpha, beta, theta, mu, phi}.
func (p Parameters) Vector() []float64 {
	return []float64{p.Omega, p.Alpha, p.Beta, p.Theta, p.Mu, p.Phi}
}

func paramsFromSlice(x []float64) Parameters {
	return Parameters{
		Omega: x[0],
		Alpha: x[1],
		Beta:  x[2],
		Theta: x[3],
		Mu:    x[4],
		Phi:   x[5],
	}
}

// Guess is a caller-supplied starting point for the fit, keyed by parameter
// name. All six keys must be present and non-NaN.
type Guess map[string]float64

var guessKeys = [parameterCount]string{"Omega", "Alpha", "Beta", "Theta", "Mu", "Phi"}

func (g Guess) vector() ([]float64, error) {
	if g == nil {
		return nil, ErrIncompleteGuess
	}
	v := make([]float64, parameterCount)
	for i, key := range guessKeys {
		value, ok := g[key]
		if !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrIncompleteGuess, key)
		}
		if math.IsNaN(value) {
			return nil, fmt.Errorf("%w: %q is NaN", ErrInvalidGuess, key)
		}
		v[i] = value
	}
	return v, nil
}
