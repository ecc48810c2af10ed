// Package strategy turns indicator snapshots into trade signals. A BUY or
// SELL requires unanimous agreement of all three indicator comparisons;
// anything mixed is NEUTRAL. Unanimity trades signal frequency for fewer
// false positives.
package strategy

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/MikeDesj/FinanceX/internal/config"
	"github.com/MikeDesj/FinanceX/internal/indicator"
	"github.com/MikeDesj/FinanceX/internal/model"
)

const (
	// strengthSpan saturates the RSI/Stoch distance-from-threshold at a
	// full half-scale, mapping it onto 0-100.
	strengthSpan = 50.0

	// macdHistScale normalizes the unbounded MACD histogram onto 0-100.
	// Empirical constant tuned for typical stock histograms of 0-2.
	macdHistScale = 50.0
)

const insufficientDataReason = "insufficient data for indicators"

// Engine evaluates signals against configured thresholds.
type Engine struct {
	ind            *indicator.Engine
	rsiThreshold   float64
	stochThreshold float64
}

// NewEngine creates a signal evaluator from strategy configuration.
func NewEngine(cfg config.StrategyConfig) *Engine {
	return &Engine{
		ind:            indicator.NewEngine(cfg),
		rsiThreshold:   cfg.RSI.Threshold,
		stochThreshold: cfg.Stochastics.Threshold,
	}
}

// Evaluate derives a signal from one indicator snapshot. It is a pure
// function of the snapshot: no hidden state, no history dependency.
func (e *Engine) Evaluate(snap model.Snapshot) *model.Signal {
	sig := &model.Signal{
		Type:       model.SignalNeutral,
		RSI:        snap.RSI,
		StochD:     snap.StochD,
		MACD:       snap.MACD,
		MACDSignal: snap.MACDSignal,
	}

	if !snap.Complete() {
		sig.Reason = insufficientDataReason
		return sig
	}

	rsiBullish := snap.RSI > e.rsiThreshold
	stochBullish := snap.StochD > e.stochThreshold
	macdBullish := snap.MACD > snap.MACDSignal

	rsiBearish := snap.RSI < e.rsiThreshold
	stochBearish := snap.StochD < e.stochThreshold
	macdBearish := snap.MACD < snap.MACDSignal

	switch {
	case rsiBullish && stochBullish && macdBullish:
		sig.Type = model.SignalBuy
		sig.Reason = fmt.Sprintf("RSI(%.1f) > %.0f | Stoch(%.1f) > %.0f | MACD > Signal",
			snap.RSI, e.rsiThreshold, snap.StochD, e.stochThreshold)
	case rsiBearish && stochBearish && macdBearish:
		sig.Type = model.SignalSell
		sig.Reason = fmt.Sprintf("RSI(%.1f) < %.0f | Stoch(%.1f) < %.0f | MACD < Signal",
			snap.RSI, e.rsiThreshold, snap.StochD, e.stochThreshold)
	default:
		sig.Reason = e.mixedReason(rsiBullish, rsiBearish, stochBullish, stochBearish, macdBullish)
		return sig
	}

	sig.Strength = e.strength(snap)
	return sig
}

func (e *Engine) mixedReason(rsiBull, rsiBear, stochBull, stochBear, macdBull bool) string {
	parts := make([]string, 0, 3)
	switch {
	case rsiBull:
		parts = append(parts, "RSI bullish")
	case rsiBear:
		parts = append(parts, "RSI bearish")
	default:
		parts = append(parts, "RSI neutral")
	}
	switch {
	case stochBull:
		parts = append(parts, "Stoch bullish")
	case stochBear:
		parts = append(parts, "Stoch bearish")
	default:
		parts = append(parts, "Stoch neutral")
	}
	if macdBull {
		parts = append(parts, "MACD bullish")
	} else {
		parts = append(parts, "MACD bearish")
	}
	return strings.Join(parts, " | ")
}

// strength scores a directional signal 0-100 as the unweighted average of
// how firmly each indicator sits in its zone.
func (e *Engine) strength(snap model.Snapshot) float64 {
	rsiStrength := math.Min(math.Abs(snap.RSI-e.rsiThreshold), strengthSpan) * 2
	stochStrength := math.Min(math.Abs(snap.StochD-e.stochThreshold), strengthSpan) * 2
	macdStrength := math.Min(math.Abs(snap.MACD-snap.MACDSignal)*macdHistScale, 100)

	return math.Min((rsiStrength+stochStrength+macdStrength)/3, 100)
}

// Analyze computes the snapshot for a series and evaluates it.
func (e *Engine) Analyze(series *model.Series) *model.Signal {
	return e.Evaluate(e.ind.Snapshot(series))
}

// EvaluateBatch produces exactly one output record per scan result, in
// input order. Results carrying an error pass through as SignalError
// records with the original error preserved rather than being dropped.
func (e *Engine) EvaluateBatch(results []model.ScanResult) []model.SymbolSignal {
	out := make([]model.SymbolSignal, 0, len(results))
	for _, r := range results {
		if r.Err != nil || r.Series == nil {
			err := r.Err
			if err == nil {
				err = errors.New("no data")
			}
			out = append(out, model.SymbolSignal{
				Symbol: r.Symbol,
				Signal: &model.Signal{Type: model.SignalError, Reason: err.Error()},
				Err:    err,
			})
			continue
		}
		out = append(out, model.SymbolSignal{
			Symbol: r.Symbol,
			Signal: e.Analyze(r.Series),
		})
	}
	return out
}
