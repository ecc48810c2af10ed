// Package scanner fans fetch operations out across a symbol list under a
// bounded concurrency limit, collecting one result per symbol regardless
// of individual failures.
package scanner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/MikeDesj/FinanceX/internal/cache"
	"github.com/MikeDesj/FinanceX/internal/config"
	"github.com/MikeDesj/FinanceX/internal/metrics"
	"github.com/MikeDesj/FinanceX/internal/model"
	"github.com/MikeDesj/FinanceX/internal/provider"
	"github.com/MikeDesj/FinanceX/internal/universe"
)

// Progress is an optional side channel reporting completed/total counts.
// A nil Progress runs the scan headless.
type Progress func(completed, total int)

// Scanner orchestrates concurrent cache-aware fetches.
type Scanner struct {
	provider      provider.Provider
	store         *cache.Store
	universes     *universe.Manager
	rec           *metrics.Recorder
	maxConcurrent int
	dispatchDelay time.Duration
	fetchTimeout  time.Duration
	lookbackDays  int
	log           zerolog.Logger
}

// New creates a Scanner.
func New(p provider.Provider, store *cache.Store, universes *universe.Manager,
	cfg config.ScannerConfig, lookbackDays int, rec *metrics.Recorder, log zerolog.Logger) *Scanner {
	return &Scanner{
		provider:      p,
		store:         store,
		universes:     universes,
		rec:           rec,
		maxConcurrent: cfg.MaxConcurrent,
		dispatchDelay: cfg.DispatchDelay(),
		fetchTimeout:  cfg.FetchTimeout(),
		lookbackDays:  lookbackDays,
		log:           log.With().Str("component", "scanner").Logger(),
	}
}

// ScanSymbols fetches every symbol concurrently and returns exactly one
// ScanResult per symbol, in completion order. Consumers must key results
// by symbol, not position. An empty symbol list returns an empty slice
// immediately without starting the pool.
func (s *Scanner) ScanSymbols(ctx context.Context, symbols []string, interval string, progress Progress) []model.ScanResult {
	total := len(symbols)
	if total == 0 {
		return []model.ScanResult{}
	}

	s.rec.ScanStarted()
	s.log.Info().Int("symbols", total).Int("workers", s.maxConcurrent).
		Str("interval", interval).Msg("scan started")

	workers := s.maxConcurrent
	if workers > total {
		workers = total
	}

	jobs := make(chan string)
	resultCh := make(chan model.ScanResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for symbol := range jobs {
				resultCh <- s.scanOne(ctx, symbol, interval)
				// Pace before pulling further work to stay under
				// source rate limits.
				if s.dispatchDelay > 0 {
					time.Sleep(s.dispatchDelay)
				}
			}
		}()
	}

	go func() {
		for _, symbol := range symbols {
			jobs <- symbol
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	results := make([]model.ScanResult, 0, total)
	succeeded := 0
	for r := range resultCh {
		results = append(results, r)
		if r.Err != nil {
			s.rec.SymbolScanned("error")
		} else {
			s.rec.SymbolScanned("ok")
			succeeded++
		}
		if progress != nil {
			progress(len(results), total)
		}
	}

	s.log.Info().Int("succeeded", succeeded).Int("failed", total-succeeded).Msg("scan complete")
	return results
}

// scanOne is the unit of work executed by each pool worker. Every failure
// mode, including a panic in the provider, is converted into the result's
// Err field so sibling units are never affected.
func (s *Scanner) scanOne(ctx context.Context, symbol, interval string) (res model.ScanResult) {
	res = model.ScanResult{Symbol: symbol}
	defer func() {
		if p := recover(); p != nil {
			res.Series = nil
			res.Err = fmt.Errorf("scan %s: panic: %v", symbol, p)
			s.log.Error().Str("symbol", symbol).Interface("panic", p).Msg("unit of work panicked")
		}
	}()

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	end := time.Now()
	start := end.AddDate(0, 0, -s.lookbackDays)

	began := time.Now()
	series, err := cache.GetOrFetch(fetchCtx, s.store, symbol, interval, func(ctx context.Context) (*model.Series, error) {
		return s.provider.FetchSeries(ctx, symbol, start, end, interval)
	})
	s.rec.FetchDuration(time.Since(began))

	if err != nil {
		s.log.Warn().Err(err).Str("symbol", symbol).Msg("fetch failed")
		res.Err = err
		return res
	}
	if len(series.Bars) == 0 {
		res.Err = fmt.Errorf("fetch %s: %w", symbol, provider.ErrNoData)
		return res
	}
	res.Series = series
	return res
}

// ScanUniverse resolves a universe name and scans its symbols. Failing to
// resolve the universe makes the entire scan meaningless and is the only
// condition that aborts the whole operation.
func (s *Scanner) ScanUniverse(ctx context.Context, name, interval string, progress Progress) ([]model.ScanResult, error) {
	symbols, err := s.universes.Symbols(name)
	if err != nil {
		return nil, fmt.Errorf("resolve universe: %w", err)
	}
	if len(symbols) == 0 {
		s.log.Warn().Str("universe", name).Msg("universe resolved to no symbols")
		return []model.ScanResult{}, nil
	}
	return s.ScanSymbols(ctx, symbols, interval, progress), nil
}
