package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// RSIConfig holds RSI indicator settings.
type RSIConfig struct {
	Period    int     `yaml:"period"`
	Threshold float64 `yaml:"threshold"`
}

// StochConfig holds Stochastics indicator settings.
type StochConfig struct {
	KPeriod   int     `yaml:"k_period"`
	DPeriod   int     `yaml:"d_period"`
	SmoothK   int     `yaml:"smooth_k"`
	Threshold float64 `yaml:"threshold"`
}

// MACDConfig holds MACD indicator settings.
type MACDConfig struct {
	Fast   int `yaml:"fast"`
	Slow   int `yaml:"slow"`
	Signal int `yaml:"signal"`
}

// StrategyConfig groups all indicator settings.
type StrategyConfig struct {
	RSI         RSIConfig   `yaml:"rsi"`
	Stochastics StochConfig `yaml:"stochastics"`
	MACD        MACDConfig  `yaml:"macd"`
}

// CacheConfig holds TTL cache settings. TTLs are expressed in minutes,
// keyed by interval label; unlisted intervals fall back to DefaultTTLMinutes.
type CacheConfig struct {
	Enabled           bool           `yaml:"enabled"`
	Directory         string         `yaml:"directory"`
	TTLMinutes        map[string]int `yaml:"ttl_minutes"`
	DefaultTTLMinutes int            `yaml:"default_ttl_minutes"`
}

// TTL returns the freshness window for an interval.
func (c *CacheConfig) TTL(interval string) time.Duration {
	if m, ok := c.TTLMinutes[interval]; ok {
		return time.Duration(m) * time.Minute
	}
	return time.Duration(c.DefaultTTLMinutes) * time.Minute
}

// ScannerConfig holds concurrency settings for the scan orchestrator.
type ScannerConfig struct {
	MaxConcurrent   int `yaml:"max_concurrent"`
	DispatchDelayMS int `yaml:"dispatch_delay_ms"`
	FetchTimeoutSec int `yaml:"fetch_timeout_sec"`
}

// DispatchDelay returns the pause applied after each completed unit of work.
func (c *ScannerConfig) DispatchDelay() time.Duration {
	return time.Duration(c.DispatchDelayMS) * time.Millisecond
}

// FetchTimeout returns the per-fetch deadline.
func (c *ScannerConfig) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSec) * time.Second
}

// Config holds all application configuration.
type Config struct {
	Data struct {
		Interval     string `yaml:"interval"`
		LookbackDays int    `yaml:"lookback_days"`
	} `yaml:"data"`
	Cache    CacheConfig    `yaml:"cache"`
	Scanner  ScannerConfig  `yaml:"scanner"`
	Strategy StrategyConfig `yaml:"strategy"`
	Universe struct {
		Default      string `yaml:"default"`
		WatchlistDir string `yaml:"watchlist_dir"`
	} `yaml:"universe"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"metrics"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Proxy string `yaml:"proxy"`
}

// Default returns a Config populated with all default values.
func Default() *Config {
	cfg := &Config{}
	cfg.Data.Interval = "1d"
	cfg.Data.LookbackDays = 60
	cfg.Cache = CacheConfig{
		Enabled:           true,
		Directory:         "cache",
		TTLMinutes:        map[string]int{"1d": 240, "1h": 30, "5m": 5},
		DefaultTTLMinutes: 60,
	}
	cfg.Scanner = ScannerConfig{
		MaxConcurrent:   10,
		DispatchDelayMS: 100,
		FetchTimeoutSec: 30,
	}
	cfg.Strategy = StrategyConfig{
		RSI:         RSIConfig{Period: 7, Threshold: 50},
		Stochastics: StochConfig{KPeriod: 14, DPeriod: 3, SmoothK: 3, Threshold: 50},
		MACD:        MACDConfig{Fast: 12, Slow: 26, Signal: 9},
	}
	cfg.Universe.Default = "sp500"
	cfg.Universe.WatchlistDir = "universe/watchlists"
	cfg.Schedule.ScanCron = "0 30 16 * * 1-5"
	cfg.Metrics.Addr = ":9107"
	cfg.Logging.Level = "info"
	cfg.Logging.Format = "console"
	return cfg
}

// Load reads config from a YAML file over the defaults, then applies
// environment variable overrides. A missing file is not an error; a
// malformed one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FINANCEX_CACHE_DIR"); v != "" {
		cfg.Cache.Directory = v
	}
	if v := os.Getenv("FINANCEX_CACHE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Cache.Enabled = b
		}
	}
	if v := os.Getenv("FINANCEX_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scanner.MaxConcurrent = n
		}
	}
	if v := os.Getenv("FINANCEX_UNIVERSE"); v != "" {
		cfg.Universe.Default = v
	}
	if v := os.Getenv("FINANCEX_INTERVAL"); v != "" {
		cfg.Data.Interval = v
	}
	if v := os.Getenv("FINANCEX_SCAN_CRON"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("FINANCEX_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	return cfg, nil
}

// Validate checks all fields the scan pipeline depends on. Configuration
// errors are fatal at startup, before any scan begins.
func (c *Config) Validate() error {
	if c.Data.Interval == "" {
		return fmt.Errorf("data.interval is required")
	}
	if c.Data.LookbackDays <= 0 {
		return fmt.Errorf("data.lookback_days must be positive, got %d", c.Data.LookbackDays)
	}
	for interval, m := range c.Cache.TTLMinutes {
		if m <= 0 {
			return fmt.Errorf("cache.ttl_minutes[%s] must be positive, got %d", interval, m)
		}
	}
	if c.Cache.DefaultTTLMinutes <= 0 {
		return fmt.Errorf("cache.default_ttl_minutes must be positive, got %d", c.Cache.DefaultTTLMinutes)
	}
	if c.Cache.Enabled && c.Cache.Directory == "" {
		return fmt.Errorf("cache.directory is required when cache is enabled")
	}
	if c.Scanner.MaxConcurrent <= 0 {
		return fmt.Errorf("scanner.max_concurrent must be positive, got %d", c.Scanner.MaxConcurrent)
	}
	if c.Scanner.DispatchDelayMS < 0 {
		return fmt.Errorf("scanner.dispatch_delay_ms must not be negative, got %d", c.Scanner.DispatchDelayMS)
	}
	if c.Scanner.FetchTimeoutSec <= 0 {
		return fmt.Errorf("scanner.fetch_timeout_sec must be positive, got %d", c.Scanner.FetchTimeoutSec)
	}
	if c.Strategy.RSI.Period <= 0 {
		return fmt.Errorf("strategy.rsi.period must be positive")
	}
	if c.Strategy.RSI.Threshold <= 0 || c.Strategy.RSI.Threshold >= 100 {
		return fmt.Errorf("strategy.rsi.threshold must be between 0 and 100, got %.1f", c.Strategy.RSI.Threshold)
	}
	if c.Strategy.Stochastics.KPeriod <= 0 || c.Strategy.Stochastics.DPeriod <= 0 || c.Strategy.Stochastics.SmoothK <= 0 {
		return fmt.Errorf("strategy.stochastics periods must be positive")
	}
	if c.Strategy.Stochastics.Threshold <= 0 || c.Strategy.Stochastics.Threshold >= 100 {
		return fmt.Errorf("strategy.stochastics.threshold must be between 0 and 100, got %.1f", c.Strategy.Stochastics.Threshold)
	}
	if c.Strategy.MACD.Fast <= 0 || c.Strategy.MACD.Slow <= 0 || c.Strategy.MACD.Signal <= 0 {
		return fmt.Errorf("strategy.macd periods must be positive")
	}
	if c.Strategy.MACD.Fast >= c.Strategy.MACD.Slow {
		return fmt.Errorf("strategy.macd.fast (%d) must be smaller than slow (%d)", c.Strategy.MACD.Fast, c.Strategy.MACD.Slow)
	}
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not valid", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format %q is not valid", c.Logging.Format)
	}
	return nil
}
