package market

import (
	"time"

	"github.com/quantex-labs/histvol/pkg/utility/fixed"
)

// Bar is a single aggregated price observation, typically one trading day.
type Bar struct {
	Symbol    string        `json:"symbol,omitempty"`
	TimeStamp time.Time     `json:"ts"`
	Period    time.Duration `json:"period"`
	Open      fixed.Point   `json:"open"`
	High      fixed.Point   `json:"high"`
	Low       fixed.Point   `json:"low"`
	Close     fixed.Point   `json:"close"`
	Volume    fixed.Point   `json:"volume"`
}

// CloseFloat returns the close price as a float64. The bool reports whether
// the conversion was exact enough for float arithmetic, mirroring
// fixed.Point.Float64.
func (b Bar) CloseFloat() (float64, bool) {
	return b.Close.Float64()
}

// Closes extracts the close prices of a bar sequence in order.
func Closes(bars []Bar) []fixed.Point {
	closes := make([]fixed.Point, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
