package main

import "time"

var HistoryStart = time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
var HistoryEnd = time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)

const (
	DefaultSymbol = "eurusd"

	// Synthetic fallback series, used when no database is given.
	SyntheticSeed       = 42
	SyntheticBars       = 750
	SyntheticStartPrice = 1.0550
	SyntheticDrift      = 0.02
	SyntheticVol        = 0.08
	SyntheticDeltaT     = 1.0 / 252.0
)
