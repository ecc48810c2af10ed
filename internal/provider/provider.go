package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MikeDesj/FinanceX/internal/model"
)

// Provider defines the interface for fetching market data. Implementations
// must return bars in ascending time order with no duplicate timestamps;
// gaps are tolerated.
type Provider interface {
	FetchSeries(ctx context.Context, symbol string, start, end time.Time, interval string) (*model.Series, error)
	Name() string
}

// Sentinel errors distinguishing source failure kinds.
var (
	ErrSymbolNotFound = errors.New("symbol not found")
	ErrNoData         = errors.New("no data returned")
)

// NormalizeSymbol uppercases and trims a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidateDateRange checks that a fetch range is usable. The end date is
// capped at now rather than rejected, matching how far data can exist.
func ValidateDateRange(start, end time.Time) (time.Time, time.Time, error) {
	now := time.Now()
	if start.After(end) {
		return start, end, fmt.Errorf("start date %s is after end date %s",
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	if start.After(now) {
		return start, end, fmt.Errorf("start date %s is in the future", start.Format("2006-01-02"))
	}
	if end.After(now) {
		end = now
	}
	return start, end, nil
}
