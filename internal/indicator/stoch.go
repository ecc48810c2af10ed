package indicator

import (
	"errors"
	"fmt"

	"github.com/MikeDesj/FinanceX/internal/model"
)

// Stochastic computes the smoothed Stochastic oscillator. The raw %K
// compares each close to its kPeriod high/low range, smoothK smooths %K,
// and %D is an SMA of the smoothed %K. Both final values are returned.
func Stochastic(bars []model.Bar, kPeriod, dPeriod, smoothK int) (k, d float64, err error) {
	if kPeriod <= 0 || dPeriod <= 0 || smoothK <= 0 {
		return 0, 0, errors.New("periods must be positive")
	}
	minBars := kPeriod + smoothK + dPeriod - 2
	if len(bars) < minBars {
		return 0, 0, fmt.Errorf("need %d bars for Stoch(%d,%d,%d), have %d",
			minBars, kPeriod, dPeriod, smoothK, len(bars))
	}

	rawK := make([]float64, 0, len(bars)-kPeriod+1)
	for i := kPeriod - 1; i < len(bars); i++ {
		high, low := bars[i-kPeriod+1].High, bars[i-kPeriod+1].Low
		for j := i - kPeriod + 2; j <= i; j++ {
			if bars[j].High > high {
				high = bars[j].High
			}
			if bars[j].Low < low {
				low = bars[j].Low
			}
		}
		if high == low {
			// Flat window, price is neither near highs nor lows.
			rawK = append(rawK, 50)
			continue
		}
		rawK = append(rawK, (bars[i].Close-low)/(high-low)*100)
	}

	slowK := rollingMean(rawK, smoothK)
	slowD := rollingMean(slowK, dPeriod)
	return slowK[len(slowK)-1], slowD[len(slowD)-1], nil
}

// rollingMean returns the simple moving average series of the input; the
// output is len(values)-period+1 long.
func rollingMean(values []float64, period int) []float64 {
	out := make([]float64, 0, len(values)-period+1)
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out = append(out, sum/float64(period))
		}
	}
	return out
}
