package model

import "time"

// Bar represents a single OHLCV candlestick.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Series holds the price history for one symbol at one interval.
// Bars are ordered ascending by time with no duplicate timestamps,
// and are not mutated after the series is built.
type Series struct {
	Symbol   string
	Interval string
	Bars     []Bar
}

// Closes returns the closing prices of all bars in order.
func (s *Series) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Last returns the most recent bar, or false if the series is empty.
func (s *Series) Last() (Bar, bool) {
	if len(s.Bars) == 0 {
		return Bar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}
