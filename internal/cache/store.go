// Package cache stores fetched price series as parquet files with an
// age-based freshness check, bounding how often the upstream source is
// called. One file exists per (symbol, interval) key; freshness is derived
// from the file's modification time, so the check never reads the payload.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"

	"github.com/MikeDesj/FinanceX/internal/config"
	"github.com/MikeDesj/FinanceX/internal/metrics"
	"github.com/MikeDesj/FinanceX/internal/model"
)

// barRow is the columnar on-disk representation of one bar.
type barRow struct {
	Timestamp int64   `parquet:"timestamp"`
	Open      float64 `parquet:"open"`
	High      float64 `parquet:"high"`
	Low       float64 `parquet:"low"`
	Close     float64 `parquet:"close"`
	Volume    float64 `parquet:"volume"`
}

// Store is a TTL cache for price series backed by parquet files.
type Store struct {
	dir        string
	ttl        map[string]time.Duration
	defaultTTL time.Duration
	enabled    bool
	rec        *metrics.Recorder
	log        zerolog.Logger
}

// NewStore creates a Store from cache configuration, creating the cache
// directory when caching is enabled.
func NewStore(cfg config.CacheConfig, rec *metrics.Recorder, log zerolog.Logger) (*Store, error) {
	ttl := make(map[string]time.Duration, len(cfg.TTLMinutes))
	for interval, m := range cfg.TTLMinutes {
		ttl[interval] = time.Duration(m) * time.Minute
	}
	s := &Store{
		dir:        cfg.Directory,
		ttl:        ttl,
		defaultTTL: time.Duration(cfg.DefaultTTLMinutes) * time.Minute,
		enabled:    cfg.Enabled,
		rec:        rec,
		log:        log.With().Str("component", "cache").Logger(),
	}
	if s.enabled {
		if err := os.MkdirAll(s.dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache dir: %w", err)
		}
	}
	return s, nil
}

// Enabled reports whether caching is active.
func (s *Store) Enabled() bool { return s.enabled }

func sanitizeSymbol(symbol string) string {
	safe := strings.ToUpper(symbol)
	safe = strings.ReplaceAll(safe, "/", "_")
	safe = strings.ReplaceAll(safe, ".", "_")
	return safe
}

// path returns the cache file for a (symbol, interval) key. The name is
// deterministic so keys can be reconstructed from filenames alone.
func (s *Store) path(symbol, interval string) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%s.parquet", sanitizeSymbol(symbol), interval))
}

// TTL returns the freshness window for an interval. Staleness tolerance is
// a property of bar granularity, not of the symbol.
func (s *Store) TTL(interval string) time.Duration {
	if d, ok := s.ttl[interval]; ok {
		return d
	}
	return s.defaultTTL
}

// IsFresh reports whether a cached entry exists and is younger than its
// TTL. An entry exactly at the TTL boundary is stale.
func (s *Store) IsFresh(symbol, interval string) bool {
	if !s.enabled {
		return false
	}
	info, err := os.Stat(s.path(symbol, interval))
	if err != nil {
		return false
	}
	expiry := info.ModTime().Add(s.TTL(interval))
	return time.Now().Before(expiry)
}

// Get returns the cached series when it is fresh, nil otherwise. A corrupt
// or unreadable file is treated as a miss, never an error.
func (s *Store) Get(symbol, interval string) *model.Series {
	if !s.enabled || !s.IsFresh(symbol, interval) {
		return nil
	}
	path := s.path(symbol, interval)
	rows, err := parquet.ReadFile[barRow](path)
	if err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("failed to read cache file")
		return nil
	}
	bars := make([]model.Bar, len(rows))
	for i, r := range rows {
		bars[i] = model.Bar{
			Time:   time.Unix(r.Timestamp, 0),
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  r.Close,
			Volume: r.Volume,
		}
	}
	s.log.Debug().Str("symbol", symbol).Str("interval", interval).Int("bars", len(bars)).Msg("cache hit")
	return &model.Series{Symbol: strings.ToUpper(symbol), Interval: interval, Bars: bars}
}

// Set persists a series and resets its write timestamp to now. The write
// goes to a temporary file first and is renamed into place, so a
// concurrent reader never observes a torn entry. A failed write returns
// false; the cache is an optimization, not a correctness requirement.
func (s *Store) Set(symbol, interval string, series *model.Series) bool {
	if !s.enabled || series == nil {
		return false
	}
	rows := make([]barRow, len(series.Bars))
	for i, b := range series.Bars {
		rows[i] = barRow{
			Timestamp: b.Time.Unix(),
			Open:      b.Open,
			High:      b.High,
			Low:       b.Low,
			Close:     b.Close,
			Volume:    b.Volume,
		}
	}
	path := s.path(symbol, interval)
	tmp := path + ".tmp"
	if err := parquet.WriteFile(tmp, rows); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("failed to write cache file")
		s.rec.CacheEvent("write_error")
		os.Remove(tmp)
		return false
	}
	if err := os.Rename(tmp, path); err != nil {
		s.log.Warn().Err(err).Str("path", path).Msg("failed to move cache file into place")
		s.rec.CacheEvent("write_error")
		os.Remove(tmp)
		return false
	}
	s.log.Debug().Str("symbol", symbol).Str("interval", interval).Int("bars", len(rows)).Msg("cached series")
	return true
}

// Invalidate deletes cached entries. With both symbol and interval set it
// removes one entry; with one of them set it removes everything matching;
// with neither it clears the whole store.
func (s *Store) Invalidate(symbol, interval string) error {
	if symbol != "" && interval != "" {
		path := s.path(symbol, interval)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("invalidate %s_%s: %w", symbol, interval, err)
		}
		return nil
	}

	pattern := "*.parquet"
	switch {
	case symbol != "":
		pattern = sanitizeSymbol(symbol) + "_*.parquet"
	case interval != "":
		pattern = "*_" + interval + ".parquet"
	}
	matches, err := filepath.Glob(filepath.Join(s.dir, pattern))
	if err != nil {
		return fmt.Errorf("invalidate glob: %w", err)
	}
	for _, m := range matches {
		if err := os.Remove(m); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("invalidate %s: %w", m, err)
		}
	}
	s.log.Info().Str("pattern", pattern).Int("removed", len(matches)).Msg("cache invalidated")
	return nil
}

// Stats summarises the on-disk state of the store.
type Stats struct {
	Files     int
	SizeBytes int64
	Enabled   bool
	Directory string
}

// Stats returns file count and total size of the cache directory.
func (s *Store) Stats() Stats {
	st := Stats{Enabled: s.enabled, Directory: s.dir}
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.parquet"))
	if err != nil {
		return st
	}
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		st.Files++
		st.SizeBytes += info.Size()
	}
	return st
}
