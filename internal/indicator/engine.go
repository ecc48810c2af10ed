// Package indicator computes the technical indicators the signal
// evaluator consumes: RSI, smoothed Stochastics and MACD.
package indicator

import (
	"math"

	"github.com/MikeDesj/FinanceX/internal/config"
	"github.com/MikeDesj/FinanceX/internal/model"
)

// Engine computes indicator snapshots using configured periods.
type Engine struct {
	cfg config.StrategyConfig
}

// NewEngine creates an Engine from strategy configuration.
func NewEngine(cfg config.StrategyConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Snapshot computes all indicator values at the latest bar of a series.
// Values the series is too short to support are left NaN; a short series
// is a leading-window effect, not an error.
func (e *Engine) Snapshot(series *model.Series) model.Snapshot {
	snap := model.Snapshot{
		RSI:        math.NaN(),
		StochD:     math.NaN(),
		MACD:       math.NaN(),
		MACDSignal: math.NaN(),
	}
	if series == nil || len(series.Bars) == 0 {
		return snap
	}

	if v, err := RSI(series.Bars, e.cfg.RSI.Period); err == nil {
		snap.RSI = v
	}
	st := e.cfg.Stochastics
	if _, d, err := Stochastic(series.Bars, st.KPeriod, st.DPeriod, st.SmoothK); err == nil {
		snap.StochD = d
	}
	m := e.cfg.MACD
	if line, sig, _, err := MACD(series.Bars, m.Fast, m.Slow, m.Signal); err == nil {
		snap.MACD = line
		snap.MACDSignal = sig
	}
	return snap
}
