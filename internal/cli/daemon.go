package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MikeDesj/FinanceX/internal/metrics"
	"github.com/MikeDesj/FinanceX/internal/scheduler"
)

func newDaemonCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run scheduled scans until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			var rec *metrics.Recorder
			if a.cfg.Metrics.Enabled {
				rec = metrics.New()
			}

			p, err := a.buildPipeline(false, rec)
			if err != nil {
				return err
			}

			sched := scheduler.New(ctx, p.scanner, p.engine, rec,
				a.cfg.Universe.Default, a.cfg.Data.Interval, a.log)
			if err := sched.Register(a.cfg.Schedule.ScanCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			if a.cfg.Metrics.Enabled {
				mux := http.NewServeMux()
				mux.Handle("/metrics", metrics.Handler())
				srv := &http.Server{Addr: a.cfg.Metrics.Addr, Handler: mux}
				go func() {
					if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						a.log.Error().Err(err).Msg("metrics server stopped")
					}
				}()
				defer srv.Close()
				a.log.Info().Str("addr", a.cfg.Metrics.Addr).Msg("metrics server listening")
			}

			if os.Getenv("RUN_ON_START") == "true" {
				a.log.Info().Msg("RUN_ON_START enabled, scanning now")
				go sched.RunScanNow()
			}

			a.log.Info().Str("cron", a.cfg.Schedule.ScanCron).Msg("daemon running, press Ctrl+C to stop")

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			<-sigCh

			a.log.Info().Msg("shutdown signal received, stopping")
			cancel()
			return nil
		},
	}
}
