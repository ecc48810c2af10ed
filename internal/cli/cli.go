// Package cli wires the command tree: scan, analyze, daemon, cache and
// universe management.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/MikeDesj/FinanceX/internal/cache"
	"github.com/MikeDesj/FinanceX/internal/config"
	"github.com/MikeDesj/FinanceX/internal/metrics"
	"github.com/MikeDesj/FinanceX/internal/provider"
	"github.com/MikeDesj/FinanceX/internal/scanner"
	"github.com/MikeDesj/FinanceX/internal/strategy"
	"github.com/MikeDesj/FinanceX/internal/universe"
)

const version = "0.3.0"

// app holds state shared by all commands, built once in the persistent
// pre-run so configuration errors fail fast.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd creates the financex command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "financex",
		Short:         "Concurrent market scanner with TTL caching and PowerX-style signals",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().String("config", "configs/config.yaml", "path to config file")

	root.AddCommand(newScanCmd(a))
	root.AddCommand(newAnalyzeCmd(a))
	root.AddCommand(newDaemonCmd(a))
	root.AddCommand(newCacheCmd(a))
	root.AddCommand(newUniverseCmd(a))
	root.AddCommand(newVersionCmd())

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if v := os.Getenv("FINANCEX_CONFIG"); v != "" && !cmd.Flags().Changed("config") {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	a.cfg = cfg
	a.log = newLogger(cfg)
	return nil
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	var out io.Writer = os.Stderr
	if cfg.Logging.Format == "console" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// pipeline bundles the components a scan needs.
type pipeline struct {
	store   *cache.Store
	scanner *scanner.Scanner
	engine  *strategy.Engine
}

// buildPipeline assembles the scan pipeline. rec may be nil for headless
// one-shot commands.
func (a *app) buildPipeline(noCache bool, rec *metrics.Recorder) (*pipeline, error) {
	cacheCfg := a.cfg.Cache
	if noCache {
		cacheCfg.Enabled = false
	}
	store, err := cache.NewStore(cacheCfg, rec, a.log)
	if err != nil {
		return nil, err
	}

	prov := provider.NewYahooProvider(a.cfg.Proxy)
	universes := universe.NewManager(a.cfg.Universe.Default, a.cfg.Universe.WatchlistDir, a.log)
	sc := scanner.New(prov, store, universes, a.cfg.Scanner, a.cfg.Data.LookbackDays, rec, a.log)

	return &pipeline{
		store:   store,
		scanner: sc,
		engine:  strategy.NewEngine(a.cfg.Strategy),
	}, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("financex v%s\n", version)
		},
	}
}
