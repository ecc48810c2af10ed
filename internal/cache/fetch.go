package cache

import (
	"context"
	"fmt"

	"github.com/MikeDesj/FinanceX/internal/model"
)

// FetchFunc fetches a series from the source of truth on a cache miss.
type FetchFunc func(ctx context.Context) (*model.Series, error)

// GetOrFetch is the single fusion point between cache policy and the
// source of truth: it returns the cached series when fresh, otherwise
// invokes fetch, repopulates the cache best-effort and returns the fresh
// data. A cache write failure is swallowed and the fetched series is still
// returned. A source failure propagates, wrapped with the symbol.
func GetOrFetch(ctx context.Context, store *Store, symbol, interval string, fetch FetchFunc) (*model.Series, error) {
	if cached := store.Get(symbol, interval); cached != nil {
		store.rec.CacheEvent("hit")
		return cached, nil
	}
	store.rec.CacheEvent("miss")

	series, err := fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", symbol, err)
	}

	store.Set(symbol, interval, series)
	return series, nil
}
