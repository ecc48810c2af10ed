package model

import "math"

// Snapshot holds the latest indicator values computed from a series.
// A field is NaN when the series was too short to compute it.
type Snapshot struct {
	RSI        float64
	StochD     float64
	MACD       float64
	MACDSignal float64
}

// Complete reports whether every indicator value is present.
func (s Snapshot) Complete() bool {
	return !math.IsNaN(s.RSI) && !math.IsNaN(s.StochD) &&
		!math.IsNaN(s.MACD) && !math.IsNaN(s.MACDSignal)
}
