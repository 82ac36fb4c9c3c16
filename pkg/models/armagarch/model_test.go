package armagarch

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/quantex-labs/histvol/pkg/solver"
	"github.com/quantex-labs/histvol/pkg/timeseries"
)

func TestModel_NewValidation(t *testing.T) {
	tests := []struct {
		name    string
		values  []float64
		wantErr error
	}{
		{name: "two observations", values: []float64{100, 101}, wantErr: ErrSeriesTooShort},
		{name: "single observation", values: []float64{100}, wantErr: ErrSeriesTooShort},
		{name: "minimum length", values: []float64{100, 101, 99}, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSeries(t, tt.values)
			_, err := New(s)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New error = %v; want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := New(nil); !errors.Is(err, ErrNilSeries) {
		t.Errorf("New(nil) error = %v; want %v", err, ErrNilSeries)
	}
}

func TestModel_ParameterNames(t *testing.T) {
	m, err := New(mustSeries(t, []float64{100, 101, 99, 102}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := []string{"omega", "alpha", "beta", "theta", "mu", "phi"}
	got := m.ParameterNames()
	if len(got) != len(want) {
		t.Fatalf("ParameterNames length = %d; want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ParameterNames[%d] = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestModel_GuessValidation(t *testing.T) {
	m, err := New(mustSeries(t, []float64{100, 101, 99, 102}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	complete := Guess{"Omega": 0.1, "Alpha": 0.3, "Beta": 0.3, "Theta": 0, "Mu": 0, "Phi": 0}

	tests := []struct {
		name    string
		guess   Guess
		wantErr error
	}{
		{name: "nil guess", guess: nil, wantErr: ErrIncompleteGuess},
		{name: "missing key", guess: Guess{"Omega": 0.1, "Alpha": 0.3, "Beta": 0.3, "Theta": 0, "Mu": 0}, wantErr: ErrIncompleteGuess},
		{name: "nan value", guess: Guess{"Omega": 0.1, "Alpha": math.NaN(), "Beta": 0.3, "Theta": 0, "Mu": 0, "Phi": 0}, wantErr: ErrInvalidGuess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.FitWithGuess(tt.guess); !errors.Is(err, tt.wantErr) {
				t.Errorf("FitWithGuess error = %v; want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := m.FitWithGuess(complete); err != nil {
		t.Errorf("FitWithGuess with complete guess: %v", err)
	}
}

func TestModel_FitRoundTrip(t *testing.T) {
	s := mustSeries(t, []float64{100, 101, 99, 102, 104, 101, 103, 105, 102, 106})
	m, err := New(s)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := m.Fit()
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	// The likelihood evaluator is pure: feeding the fitted parameters back
	// must reproduce the reported likelihood bit for bit.
	if got := m.LogLikelihoodFor(result.Parameters); got != result.Likelihood {
		t.Errorf("LogLikelihoodFor(result.Parameters) = %v; want reported %v", got, result.Likelihood)
	}
	if got := math.Sqrt(m.TerminalVarianceFor(result.Parameters)); got != result.Vol {
		t.Errorf("sqrt(TerminalVarianceFor) = %v; want reported %v", got, result.Vol)
	}

	if want := s.Len() - 1; len(result.Scenarios) != want {
		t.Errorf("len(Scenarios) = %d; want %d", len(result.Scenarios), want)
	}
	if !sort.Float64sAreSorted(result.Scenarios) {
		t.Errorf("Scenarios not sorted ascending")
	}
}

func TestModel_FitDeterministic(t *testing.T) {
	values := []float64{100, 101, 99, 102, 104, 101, 103, 105, 102, 106}

	first, err := New(mustSeries(t, values))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	second, err := New(mustSeries(t, values))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	a, err := first.Fit()
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	b, err := second.Fit()
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	if a.Parameters != b.Parameters {
		t.Errorf("fits diverged: %+v vs %+v (search is seeded)", a.Parameters, b.Parameters)
	}
	if a.Likelihood != b.Likelihood {
		t.Errorf("likelihoods diverged: %v vs %v", a.Likelihood, b.Likelihood)
	}
}

func TestModel_ResultMapFields(t *testing.T) {
	m, err := New(mustSeries(t, []float64{100, 101, 99, 102}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	result, err := m.Fit()
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	fields := result.AsMap()
	for _, key := range []string{
		"parameters", "Omega", "Alpha", "Beta", "Theta", "Mu", "Phi",
		"Scenarios", "Likelihood", "Vol",
		"Quantile=0.5%", "Quantile=1%", "Quantile=2%", "Quantile=5%", "Quantile=50%",
	} {
		if _, ok := fields[key]; !ok {
			t.Errorf("result map missing field %q", key)
		}
	}

	vector, ok := fields["parameters"].([]float64)
	if !ok || len(vector) != parameterCount {
		t.Errorf("parameters field = %v; want six-element vector", fields["parameters"])
	}
}

func TestModel_CloneWithWindow(t *testing.T) {
	values := []float64{100, 101, 99, 102, 104, 101, 103}
	m, err := New(mustSeries(t, values))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	t.Run("window too short", func(t *testing.T) {
		if _, err := m.CloneWithWindow(0, 2); !errors.Is(err, ErrSeriesTooShort) {
			t.Errorf("CloneWithWindow(0, 2) error = %v; want %v", err, ErrSeriesTooShort)
		}
	})

	t.Run("window out of range", func(t *testing.T) {
		if _, err := m.CloneWithWindow(3, 10); !errors.Is(err, timeseries.ErrWindowOutOfRange) {
			t.Errorf("CloneWithWindow(3, 10) error = %v; want %v", err, timeseries.ErrWindowOutOfRange)
		}
	})

	t.Run("windowed filter equals sub-slice filter", func(t *testing.T) {
		windowed, err := m.CloneWithWindow(2, 7)
		if err != nil {
			t.Fatalf("CloneWithWindow: %v", err)
		}
		direct, err := New(mustSeries(t, values[2:7]))
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		p := Parameters{Omega: 0.10, Alpha: 0.30, Beta: 0.30}
		if got, want := windowed.LogLikelihoodFor(p), direct.LogLikelihoodFor(p); got != want {
			t.Errorf("windowed likelihood = %v; want %v", got, want)
		}
	})
}

func TestModel_CloneCalibrated(t *testing.T) {
	m, err := New(mustSeries(t, []float64{100, 101, 99, 102}),
		WithInitialInnovation(0.01))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	clone, err := m.CloneCalibrated(mustSeries(t, []float64{200, 202, 198, 204}))
	if err != nil {
		t.Fatalf("CloneCalibrated: %v", err)
	}

	// Configuration carries over, series does not.
	if clone.initialInnovation != 0.01 {
		t.Errorf("clone initialInnovation = %v; want 0.01", clone.initialInnovation)
	}
	if clone.series == m.series {
		t.Errorf("clone shares the original series")
	}

	if _, err := m.CloneCalibrated(nil); !errors.Is(err, ErrNilSeries) {
		t.Errorf("CloneCalibrated(nil) error = %v; want %v", err, ErrNilSeries)
	}
}

func TestModel_FallbackMaximizerKeepsGuess(t *testing.T) {
	// A maximizer that reports the unmodified starting point (the CMA-ES
	// failure policy) must still produce a complete, self-consistent result.
	m, err := New(mustSeries(t, []float64{100, 101, 99, 102}),
		WithMaximizer(stubMaximizer{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	result, err := m.Fit()
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}

	want := Parameters{Omega: 0.10, Alpha: 0.30, Beta: 0.30}
	if result.Parameters != want {
		t.Errorf("parameters = %+v; want unmodified guess %+v", result.Parameters, want)
	}
	if result.Diagnostics.Converged {
		t.Errorf("Converged = true; want false for a fallback result")
	}
	if got := m.LogLikelihoodFor(want); got != result.Likelihood {
		t.Errorf("likelihood = %v; want %v", result.Likelihood, got)
	}
}

type stubMaximizer struct{}

func (stubMaximizer) Maximize(objective func([]float64) float64, start []float64) (solver.Result, error) {
	x := make([]float64, len(start))
	copy(x, start)
	return solver.Result{X: x, Value: objective(x), Converged: false}, nil
}
