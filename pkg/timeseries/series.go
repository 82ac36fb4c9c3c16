package timeseries

import (
	"errors"
	"fmt"

	"github.com/quantex-labs/histvol/pkg/market"
	"github.com/quantex-labs/histvol/pkg/utility/fixed"
)

var (
	ErrEmptySeries      = errors.New("series has no observations")
	ErrWindowOutOfRange = errors.New("window out of range")
)

// Series is read-only indexed access to an ordered sequence of observations.
// Implementations must not change while a consumer holds a reference.
type Series interface {
	Len() int
	ValueAt(index int) float64
	// Window returns a view over [start, end). The view shares the underlying
	// data, it is not a copy.
	Window(start, end int) (Series, error)
}

// SliceSeries is a Series backed by a float64 slice.
type SliceSeries struct {
	values []float64
}

// FromFloats copies values into a new series.
func FromFloats(values []float64) (*SliceSeries, error) {
	if len(values) == 0 {
		return nil, ErrEmptySeries
	}
	s := &SliceSeries{values: make([]float64, len(values))}
	copy(s.values, values)
	return s, nil
}

// FromPoints converts fixed-point observations into a new series.
func FromPoints(points []fixed.Point) (*SliceSeries, error) {
	if len(points) == 0 {
		return nil, ErrEmptySeries
	}
	s := &SliceSeries{values: make([]float64, len(points))}
	for i, p := range points {
		v, _ := p.Float64()
		s.values[i] = v
	}
	return s, nil
}

// FromBars builds a series from the close prices of ordered bars.
func FromBars(bars []market.Bar) (*SliceSeries, error) {
	return FromPoints(market.Closes(bars))
}

func (s *SliceSeries) Len() int {
	return len(s.values)
}

func (s *SliceSeries) ValueAt(index int) float64 {
	return s.values[index]
}

func (s *SliceSeries) Window(start, end int) (Series, error) {
	if start < 0 || end > len(s.values) || start >= end {
		return nil, fmt.Errorf("%w: [%d, %d) of %d", ErrWindowOutOfRange, start, end, len(s.values))
	}
	return &SliceSeries{values: s.values[start:end]}, nil
}
