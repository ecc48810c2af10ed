// Package universe resolves named symbol lists: built-in index presets and
// custom YAML watchlists.
package universe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// ErrUnknownUniverse marks a universe name that resolves to neither a
// preset nor a watchlist file. Resolution failure aborts a scan before it
// starts.
var ErrUnknownUniverse = errors.New("unknown universe")

// Representative large-cap samples; a full membership list would come from
// a paid data source.
var presets = map[string][]string{
	"sp500": {
		"AAPL", "MSFT", "AMZN", "NVDA", "GOOGL", "META", "GOOG", "BRK.B",
		"UNH", "XOM", "LLY", "JPM", "JNJ", "V", "PG", "MA", "AVGO", "HD",
		"CVX", "MRK", "ABBV", "COST", "PEP", "KO", "ADBE", "WMT", "MCD",
		"CSCO", "CRM", "BAC", "PFE", "ACN", "TMO", "NFLX", "AMD", "LIN",
		"ORCL", "ABT", "DHR", "DIS", "CMCSA", "VZ", "INTC", "WFC", "PM",
		"NEE", "TXN", "RTX", "UPS", "HON",
	},
	"nasdaq100": {
		"AAPL", "MSFT", "AMZN", "NVDA", "GOOGL", "META", "GOOG", "AVGO",
		"TSLA", "ADBE", "COST", "PEP", "CSCO", "NFLX", "AMD", "CMCSA",
		"INTC", "TMUS", "TXN", "QCOM", "AMGN", "HON", "INTU", "AMAT",
		"ISRG", "BKNG", "SBUX", "MDLZ", "GILD", "ADI",
	},
	"dow30": {
		"AAPL", "AMGN", "AXP", "BA", "CAT", "CRM", "CSCO", "CVX", "DIS",
		"DOW", "GS", "HD", "HON", "IBM", "INTC", "JNJ", "JPM", "KO",
		"MCD", "MMM", "MRK", "MSFT", "NKE", "PG", "TRV", "UNH", "V",
		"VZ", "WBA", "WMT",
	},
}

// Watchlist is the YAML layout of a custom symbol list.
type Watchlist struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Tickers     []string `yaml:"tickers"`
}

// Manager resolves universe names to symbol lists.
type Manager struct {
	defaultName  string
	watchlistDir string
	log          zerolog.Logger
}

// NewManager creates a Manager. defaultName is used when Symbols is called
// with an empty name.
func NewManager(defaultName, watchlistDir string, log zerolog.Logger) *Manager {
	return &Manager{
		defaultName:  defaultName,
		watchlistDir: watchlistDir,
		log:          log.With().Str("component", "universe").Logger(),
	}
}

// Symbols returns the ordered ticker list for a universe. An empty list is
// valid; an unresolvable name is not.
func (m *Manager) Symbols(name string) ([]string, error) {
	if name == "" {
		name = m.defaultName
	}
	key := strings.ToLower(name)

	if tickers, ok := presets[key]; ok {
		out := make([]string, len(tickers))
		copy(out, tickers)
		return out, nil
	}
	return m.loadWatchlist(name)
}

func (m *Manager) watchlistPath(name string) string {
	if strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml") {
		return name
	}
	return filepath.Join(m.watchlistDir, strings.ToLower(name)+".yaml")
}

func (m *Manager) loadWatchlist(name string) ([]string, error) {
	path := m.watchlistPath(name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("universe %q: %w", name, ErrUnknownUniverse)
		}
		return nil, fmt.Errorf("read watchlist %s: %w", path, err)
	}

	var wl Watchlist
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("parse watchlist %s: %w", path, err)
	}

	tickers := make([]string, len(wl.Tickers))
	for i, t := range wl.Tickers {
		tickers[i] = strings.ToUpper(strings.TrimSpace(t))
	}
	m.log.Debug().Str("watchlist", wl.Name).Int("tickers", len(tickers)).Msg("loaded watchlist")
	return tickers, nil
}

// Save writes a custom watchlist into the watchlist directory and returns
// its path.
func (m *Manager) Save(name, description string, tickers []string) (string, error) {
	if err := os.MkdirAll(m.watchlistDir, 0o755); err != nil {
		return "", fmt.Errorf("create watchlist dir: %w", err)
	}

	wl := Watchlist{Name: name, Description: description}
	for _, t := range tickers {
		wl.Tickers = append(wl.Tickers, strings.ToUpper(strings.TrimSpace(t)))
	}

	data, err := yaml.Marshal(&wl)
	if err != nil {
		return "", fmt.Errorf("encode watchlist: %w", err)
	}

	filename := strings.ReplaceAll(strings.ToLower(name), " ", "_") + ".yaml"
	path := filepath.Join(m.watchlistDir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write watchlist: %w", err)
	}
	m.log.Info().Str("name", name).Int("tickers", len(wl.Tickers)).Str("path", path).Msg("saved watchlist")
	return path, nil
}

// Info describes one available universe.
type Info struct {
	Name  string
	Type  string // "preset" or "custom"
	Count int
	Path  string
}

// List returns all presets plus every readable watchlist file.
func (m *Manager) List() []Info {
	infos := []Info{
		{Name: "sp500", Type: "preset", Count: len(presets["sp500"])},
		{Name: "nasdaq100", Type: "preset", Count: len(presets["nasdaq100"])},
		{Name: "dow30", Type: "preset", Count: len(presets["dow30"])},
	}

	matches, err := filepath.Glob(filepath.Join(m.watchlistDir, "*.yaml"))
	if err != nil {
		return infos
	}
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var wl Watchlist
		if err := yaml.Unmarshal(data, &wl); err != nil {
			continue
		}
		name := wl.Name
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(path), ".yaml")
		}
		infos = append(infos, Info{Name: name, Type: "custom", Count: len(wl.Tickers), Path: path})
	}
	return infos
}
