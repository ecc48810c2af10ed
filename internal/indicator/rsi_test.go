package indicator

import (
	"testing"
	"time"

	"github.com/MikeDesj/FinanceX/internal/model"
)

func barsFromCloses(closes []float64) []model.Bar {
	bars := make([]model.Bar, len(closes))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		bars[i] = model.Bar{
			Time:  base.AddDate(0, 0, i),
			Open:  c,
			High:  c * 1.01,
			Low:   c * 0.99,
			Close: c,
		}
	}
	return bars
}

func TestRSI_AllGains(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	rsi, err := RSI(barsFromCloses(closes), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 100 {
		t.Errorf("expected RSI 100 for monotonic gains, got %.2f", rsi)
	}
}

func TestRSI_AllLosses(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 - float64(i)
	}
	rsi, err := RSI(barsFromCloses(closes), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 0 {
		t.Errorf("expected RSI 0 for monotonic losses, got %.2f", rsi)
	}
}

func TestRSI_Bounds(t *testing.T) {
	closes := []float64{100, 102, 101, 103, 102, 105, 104, 106, 105, 108, 107, 109}
	rsi, err := RSI(barsFromCloses(closes), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi <= 50 || rsi >= 100 {
		t.Errorf("expected RSI in (50, 100) for an uptrend with pullbacks, got %.2f", rsi)
	}
}

func TestRSI_InsufficientData(t *testing.T) {
	if _, err := RSI(barsFromCloses([]float64{100, 101, 102}), 7); err == nil {
		t.Error("expected error for series shorter than period+1")
	}
}

func TestRSI_InvalidPeriod(t *testing.T) {
	if _, err := RSI(barsFromCloses([]float64{100, 101}), 0); err == nil {
		t.Error("expected error for non-positive period")
	}
}
