package indicator

import (
	"errors"
	"fmt"

	"github.com/MikeDesj/FinanceX/internal/model"
)

// MACD computes the Moving Average Convergence Divergence line, its signal
// line and the histogram at the latest bar. The line is EMA(fast) −
// EMA(slow); the signal is an EMA of the line itself.
func MACD(bars []model.Bar, fast, slow, signal int) (line, sig, hist float64, err error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return 0, 0, 0, errors.New("periods must be positive")
	}
	if fast >= slow {
		return 0, 0, 0, errors.New("fast period must be smaller than slow period")
	}
	minBars := slow + signal - 1
	if len(bars) < minBars {
		return 0, 0, 0, fmt.Errorf("need %d bars for MACD(%d,%d,%d), have %d",
			minBars, fast, slow, signal, len(bars))
	}

	closes := extractCloses(bars)
	emaFast := emaSeries(closes, fast)
	emaSlow := emaSeries(closes, slow)

	// emaFast starts fast-1 in, emaSlow starts slow-1 in; align on the
	// slow start so the MACD line covers len(closes)-slow+1 points.
	offset := slow - fast
	macd := make([]float64, len(emaSlow))
	for i := range emaSlow {
		macd[i] = emaFast[i+offset] - emaSlow[i]
	}

	signalSeries := emaSeries(macd, signal)
	line = macd[len(macd)-1]
	sig = signalSeries[len(signalSeries)-1]
	return line, sig, line - sig, nil
}

// emaSeries computes an SMA-seeded exponential moving average. The output
// is len(values)-period+1 long, starting at the first full window.
func emaSeries(values []float64, period int) []float64 {
	k := 2.0 / float64(period+1)
	out := make([]float64, 0, len(values)-period+1)

	seed := 0.0
	for _, v := range values[:period] {
		seed += v
	}
	seed /= float64(period)
	out = append(out, seed)

	prev := seed
	for _, v := range values[period:] {
		prev = v*k + prev*(1-k)
		out = append(out, prev)
	}
	return out
}
