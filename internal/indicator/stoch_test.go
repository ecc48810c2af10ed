package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/MikeDesj/FinanceX/internal/model"
)

func TestStochastic_ClosesAtRangeTop(t *testing.T) {
	// Each close sits at the top of its window, so %K and %D pin at 100.
	bars := make([]model.Bar, 30)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		p := 100 + float64(i)
		bars[i] = model.Bar{Time: base.AddDate(0, 0, i), Open: p - 1, High: p, Low: p - 2, Close: p}
	}
	k, d, err := Stochastic(bars, 14, 3, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(k-100) > 1e-9 || math.Abs(d-100) > 1e-9 {
		t.Errorf("expected %%K and %%D at 100, got k=%.2f d=%.2f", k, d)
	}
}

func TestStochastic_FlatWindow(t *testing.T) {
	bars := make([]model.Bar, 30)
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = model.Bar{Time: base.AddDate(0, 0, i), Open: 100, High: 100, Low: 100, Close: 100}
	}
	k, d, err := Stochastic(bars, 14, 3, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k != 50 || d != 50 {
		t.Errorf("flat window should read neutral, got k=%.2f d=%.2f", k, d)
	}
}

func TestStochastic_InsufficientData(t *testing.T) {
	bars := barsFromCloses([]float64{100, 101, 102, 103, 104})
	if _, _, err := Stochastic(bars, 14, 3, 3); err == nil {
		t.Error("expected error for short series")
	}
}

func TestRollingMean(t *testing.T) {
	out := rollingMean([]float64{1, 2, 3, 4, 5}, 3)
	want := []float64{2, 3, 4}
	if len(out) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(out))
	}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-9 {
			t.Errorf("index %d: expected %.1f, got %.1f", i, want[i], out[i])
		}
	}
}
