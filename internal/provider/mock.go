package provider

import (
	"context"
	"sync"
	"time"

	"github.com/MikeDesj/FinanceX/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
type MockProvider struct {
	Price   float64
	Series  map[string]*model.Series // per-symbol canned data
	Errs    map[string]error         // per-symbol injected failures
	Latency time.Duration

	mu    sync.Mutex
	calls map[string]int
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchSeries(ctx context.Context, symbol string, start, end time.Time, interval string) (*model.Series, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[symbol]++
	m.mu.Unlock()

	if m.Latency > 0 {
		select {
		case <-time.After(m.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := m.Errs[symbol]; ok {
		return nil, err
	}
	if s, ok := m.Series[symbol]; ok {
		return s, nil
	}
	price := m.Price
	if price == 0 {
		price = 100
	}
	return GenerateSeries(symbol, interval, price, 60), nil
}

// Calls returns how many times FetchSeries was invoked for a symbol.
func (m *MockProvider) Calls(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[symbol]
}

// GenerateSeries builds a synthetic ascending series around a base price.
func GenerateSeries(symbol, interval string, basePrice float64, count int) *model.Series {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return &model.Series{Symbol: symbol, Interval: interval, Bars: bars}
}
