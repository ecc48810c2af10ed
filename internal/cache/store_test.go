package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/MikeDesj/FinanceX/internal/config"
	"github.com/MikeDesj/FinanceX/internal/provider"
)

func newTestStore(t *testing.T, enabled bool) *Store {
	t.Helper()
	cfg := config.CacheConfig{
		Enabled:           enabled,
		Directory:         t.TempDir(),
		TTLMinutes:        map[string]int{"1d": 240, "1h": 30},
		DefaultTTLMinutes: 60,
	}
	s, err := NewStore(cfg, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestStore_RoundTrip(t *testing.T) {
	s := newTestStore(t, true)
	series := provider.GenerateSeries("AAPL", "1d", 150, 30)

	if ok := s.Set("AAPL", "1d", series); !ok {
		t.Fatal("Set returned false")
	}
	got := s.Get("AAPL", "1d")
	if got == nil {
		t.Fatal("Get returned nil immediately after Set")
	}
	if len(got.Bars) != len(series.Bars) {
		t.Fatalf("expected %d bars, got %d", len(series.Bars), len(got.Bars))
	}
	for i := range got.Bars {
		if got.Bars[i].Close != series.Bars[i].Close {
			t.Fatalf("bar %d close mismatch: %.4f vs %.4f", i, got.Bars[i].Close, series.Bars[i].Close)
		}
		if got.Bars[i].Time.Unix() != series.Bars[i].Time.Unix() {
			t.Fatalf("bar %d timestamp mismatch", i)
		}
	}
}

func TestStore_FreshnessBoundary(t *testing.T) {
	s := newTestStore(t, true)
	s.Set("AAPL", "1h", provider.GenerateSeries("AAPL", "1h", 100, 10))

	if !s.IsFresh("AAPL", "1h") {
		t.Fatal("entry should be fresh right after write")
	}

	// Backdate the file to exactly the TTL: the entry must read stale.
	path := filepath.Join(s.dir, "AAPL_1h.parquet")
	stale := time.Now().Add(-30 * time.Minute)
	if err := os.Chtimes(path, stale, stale); err != nil {
		t.Fatalf("Chtimes: %v", err)
	}
	if s.IsFresh("AAPL", "1h") {
		t.Error("entry at the TTL boundary must be stale")
	}
	if s.Get("AAPL", "1h") != nil {
		t.Error("Get must miss on a stale entry")
	}
}

func TestStore_TTLPerInterval(t *testing.T) {
	s := newTestStore(t, true)
	if got := s.TTL("1d"); got != 240*time.Minute {
		t.Errorf("expected 4h TTL for 1d, got %v", got)
	}
	if got := s.TTL("15m"); got != 60*time.Minute {
		t.Errorf("expected fallback TTL for unlisted interval, got %v", got)
	}
}

func TestStore_Disabled(t *testing.T) {
	s := newTestStore(t, false)
	series := provider.GenerateSeries("AAPL", "1d", 100, 10)

	if s.Set("AAPL", "1d", series) {
		t.Error("Set must fail when caching is disabled")
	}
	if s.IsFresh("AAPL", "1d") {
		t.Error("IsFresh must be false when caching is disabled")
	}
	if s.Get("AAPL", "1d") != nil {
		t.Error("Get must miss when caching is disabled")
	}
}

func TestStore_CorruptFileIsMiss(t *testing.T) {
	s := newTestStore(t, true)
	path := filepath.Join(s.dir, "AAPL_1d.parquet")
	if err := os.WriteFile(path, []byte("not parquet"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if got := s.Get("AAPL", "1d"); got != nil {
		t.Error("corrupt cache file must behave as a miss, not an error")
	}
}

func TestStore_SymbolSanitization(t *testing.T) {
	s := newTestStore(t, true)
	s.Set("brk.b", "1d", provider.GenerateSeries("BRK.B", "1d", 300, 10))

	if _, err := os.Stat(filepath.Join(s.dir, "BRK_B_1d.parquet")); err != nil {
		t.Errorf("expected sanitized filename BRK_B_1d.parquet: %v", err)
	}
	if s.Get("BRK.B", "1d") == nil {
		t.Error("sanitized keys must be read back under the original symbol")
	}
}

func TestStore_NoTempFileLeftBehind(t *testing.T) {
	s := newTestStore(t, true)
	s.Set("AAPL", "1d", provider.GenerateSeries("AAPL", "1d", 100, 10))

	matches, _ := filepath.Glob(filepath.Join(s.dir, "*.tmp"))
	if len(matches) != 0 {
		t.Errorf("temporary files left in cache dir: %v", matches)
	}
}

func TestStore_Invalidate(t *testing.T) {
	s := newTestStore(t, true)
	series := provider.GenerateSeries("X", "1d", 100, 10)
	s.Set("AAPL", "1d", series)
	s.Set("AAPL", "1h", series)
	s.Set("MSFT", "1d", series)

	if err := s.Invalidate("AAPL", ""); err != nil {
		t.Fatalf("Invalidate(symbol): %v", err)
	}
	if s.IsFresh("AAPL", "1d") || s.IsFresh("AAPL", "1h") {
		t.Error("all AAPL entries should be gone")
	}
	if !s.IsFresh("MSFT", "1d") {
		t.Error("MSFT entry should survive AAPL invalidation")
	}

	s.Set("AAPL", "1d", series)
	if err := s.Invalidate("", "1d"); err != nil {
		t.Fatalf("Invalidate(interval): %v", err)
	}
	if s.IsFresh("AAPL", "1d") || s.IsFresh("MSFT", "1d") {
		t.Error("all 1d entries should be gone")
	}

	s.Set("AAPL", "1d", series)
	s.Set("MSFT", "1h", series)
	if err := s.Invalidate("", ""); err != nil {
		t.Fatalf("Invalidate(all): %v", err)
	}
	if st := s.Stats(); st.Files != 0 {
		t.Errorf("expected empty store after full invalidation, %d files remain", st.Files)
	}
}

func TestStore_Stats(t *testing.T) {
	s := newTestStore(t, true)
	st := s.Stats()
	if st.Files != 0 || st.SizeBytes != 0 {
		t.Fatalf("fresh store should be empty, got %+v", st)
	}

	s.Set("AAPL", "1d", provider.GenerateSeries("AAPL", "1d", 100, 20))
	s.Set("MSFT", "1d", provider.GenerateSeries("MSFT", "1d", 300, 20))

	st = s.Stats()
	if st.Files != 2 {
		t.Errorf("expected 2 files, got %d", st.Files)
	}
	if st.SizeBytes == 0 {
		t.Error("expected non-zero size")
	}
}

func TestStore_SetReplacesEntry(t *testing.T) {
	s := newTestStore(t, true)
	s.Set("AAPL", "1d", provider.GenerateSeries("AAPL", "1d", 100, 10))
	s.Set("AAPL", "1d", provider.GenerateSeries("AAPL", "1d", 200, 25))

	got := s.Get("AAPL", "1d")
	if got == nil {
		t.Fatal("expected entry after rewrite")
	}
	if len(got.Bars) != 25 {
		t.Errorf("expected the newer series (25 bars), got %d", len(got.Bars))
	}
	if st := s.Stats(); st.Files != 1 {
		t.Errorf("rewrite must not create a second entry, got %d files", st.Files)
	}
}

func TestSanitizeSymbol(t *testing.T) {
	tests := []struct{ in, want string }{
		{"aapl", "AAPL"},
		{"brk.b", "BRK_B"},
		{"eur/usd", "EUR_USD"},
	}
	for _, tt := range tests {
		if got := sanitizeSymbol(tt.in); got != tt.want {
			t.Errorf("sanitizeSymbol(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
