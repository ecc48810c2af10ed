package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file must not be an error: %v", err)
	}
	if cfg.Data.Interval != "1d" {
		t.Errorf("expected default interval 1d, got %q", cfg.Data.Interval)
	}
	if cfg.Scanner.MaxConcurrent != 10 {
		t.Errorf("expected default max_concurrent 10, got %d", cfg.Scanner.MaxConcurrent)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("data: [not: valid"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("malformed yaml must be an error")
	}
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
data:
  interval: 1h
  lookback_days: 30
scanner:
  max_concurrent: 4
cache:
  ttl_minutes:
    1h: 15
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Data.Interval != "1h" {
		t.Errorf("interval not overridden: %q", cfg.Data.Interval)
	}
	if cfg.Data.LookbackDays != 30 {
		t.Errorf("lookback_days not overridden: %d", cfg.Data.LookbackDays)
	}
	if cfg.Scanner.MaxConcurrent != 4 {
		t.Errorf("max_concurrent not overridden: %d", cfg.Scanner.MaxConcurrent)
	}
	if got := cfg.Cache.TTL("1h"); got != 15*time.Minute {
		t.Errorf("ttl_minutes[1h] not overridden: %v", got)
	}
	// Untouched settings keep their defaults.
	if cfg.Scanner.DispatchDelayMS != 100 {
		t.Errorf("dispatch_delay_ms should keep default, got %d", cfg.Scanner.DispatchDelayMS)
	}
	if cfg.Strategy.RSI.Period != 7 {
		t.Errorf("rsi period should keep default, got %d", cfg.Strategy.RSI.Period)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FINANCEX_CACHE_DIR", "/tmp/override")
	t.Setenv("FINANCEX_CACHE_ENABLED", "false")
	t.Setenv("FINANCEX_MAX_CONCURRENT", "25")
	t.Setenv("FINANCEX_UNIVERSE", "dow30")
	t.Setenv("FINANCEX_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Cache.Directory != "/tmp/override" {
		t.Errorf("cache dir override ignored: %q", cfg.Cache.Directory)
	}
	if cfg.Cache.Enabled {
		t.Error("cache enabled override ignored")
	}
	if cfg.Scanner.MaxConcurrent != 25 {
		t.Errorf("max_concurrent override ignored: %d", cfg.Scanner.MaxConcurrent)
	}
	if cfg.Universe.Default != "dow30" {
		t.Errorf("universe override ignored: %q", cfg.Universe.Default)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level override ignored: %q", cfg.Logging.Level)
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("universe:\n  default: nasdaq100\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FINANCEX_UNIVERSE", "sp500")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Universe.Default != "sp500" {
		t.Errorf("env must win over yaml, got %q", cfg.Universe.Default)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty interval", func(c *Config) { c.Data.Interval = "" }},
		{"zero lookback", func(c *Config) { c.Data.LookbackDays = 0 }},
		{"zero ttl entry", func(c *Config) { c.Cache.TTLMinutes["1d"] = 0 }},
		{"zero default ttl", func(c *Config) { c.Cache.DefaultTTLMinutes = 0 }},
		{"enabled cache without dir", func(c *Config) { c.Cache.Directory = "" }},
		{"zero concurrency", func(c *Config) { c.Scanner.MaxConcurrent = 0 }},
		{"negative delay", func(c *Config) { c.Scanner.DispatchDelayMS = -1 }},
		{"zero fetch timeout", func(c *Config) { c.Scanner.FetchTimeoutSec = 0 }},
		{"zero rsi period", func(c *Config) { c.Strategy.RSI.Period = 0 }},
		{"rsi threshold out of range", func(c *Config) { c.Strategy.RSI.Threshold = 100 }},
		{"zero stoch period", func(c *Config) { c.Strategy.Stochastics.KPeriod = 0 }},
		{"stoch threshold out of range", func(c *Config) { c.Strategy.Stochastics.Threshold = 0 }},
		{"macd fast not below slow", func(c *Config) { c.Strategy.MACD.Fast = 26 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCacheTTLFallback(t *testing.T) {
	c := CacheConfig{
		TTLMinutes:        map[string]int{"1d": 240},
		DefaultTTLMinutes: 60,
	}
	if got := c.TTL("1d"); got != 240*time.Minute {
		t.Errorf("listed interval: got %v", got)
	}
	if got := c.TTL("15m"); got != 60*time.Minute {
		t.Errorf("unlisted interval must fall back to default: got %v", got)
	}
}

func TestScannerDurations(t *testing.T) {
	c := ScannerConfig{DispatchDelayMS: 250, FetchTimeoutSec: 5}
	if got := c.DispatchDelay(); got != 250*time.Millisecond {
		t.Errorf("DispatchDelay: got %v", got)
	}
	if got := c.FetchTimeout(); got != 5*time.Second {
		t.Errorf("FetchTimeout: got %v", got)
	}
}
