// Package scheduler runs the scan pipeline on a cron schedule for daemon
// deployments.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/MikeDesj/FinanceX/internal/metrics"
	"github.com/MikeDesj/FinanceX/internal/model"
	"github.com/MikeDesj/FinanceX/internal/scanner"
	"github.com/MikeDesj/FinanceX/internal/strategy"
)

// Scheduler manages the periodic scan job.
type Scheduler struct {
	cron     *cron.Cron
	scanner  *scanner.Scanner
	engine   *strategy.Engine
	rec      *metrics.Recorder
	universe string
	interval string
	ctx      context.Context
	log      zerolog.Logger
}

// New creates a Scheduler scanning the given universe at the given bar
// interval.
func New(ctx context.Context, sc *scanner.Scanner, eng *strategy.Engine,
	rec *metrics.Recorder, universeName, interval string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		scanner:  sc,
		engine:   eng,
		rec:      rec,
		universe: universeName,
		interval: interval,
		ctx:      ctx,
		log:      log.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds the scan job under the given cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runScan); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Str("universe", s.universe).Msg("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info().Msg("scheduler stopped")
}

// RunScanNow executes the scan job immediately (manual trigger / run on
// start).
func (s *Scheduler) RunScanNow() {
	s.runScan()
}

func (s *Scheduler) runScan() {
	s.log.Info().Str("universe", s.universe).Msg("running scheduled scan")

	results, err := s.scanner.ScanUniverse(s.ctx, s.universe, s.interval, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("scheduled scan aborted")
		return
	}

	signals := s.engine.EvaluateBatch(results)

	counts := map[model.SignalType]int{}
	for _, sig := range signals {
		counts[sig.Signal.Type]++
		s.rec.SignalEvaluated(string(sig.Signal.Type))
		if sig.Signal.Type == model.SignalBuy || sig.Signal.Type == model.SignalSell {
			s.log.Info().
				Str("symbol", sig.Symbol).
				Str("signal", string(sig.Signal.Type)).
				Float64("strength", sig.Signal.Strength).
				Str("reason", sig.Signal.Reason).
				Msg("directional signal")
		}
	}

	s.log.Info().
		Int("buy", counts[model.SignalBuy]).
		Int("sell", counts[model.SignalSell]).
		Int("neutral", counts[model.SignalNeutral]).
		Int("error", counts[model.SignalError]).
		Msg("scheduled scan complete")
}
