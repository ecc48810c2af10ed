package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/MikeDesj/FinanceX/internal/provider"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze SYMBOL",
		Short: "Fetch one symbol and print its indicators and signal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := provider.NormalizeSymbol(args[0])
			interval, _ := cmd.Flags().GetString("interval")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			if interval == "" {
				interval = a.cfg.Data.Interval
			}

			p, err := a.buildPipeline(noCache, nil)
			if err != nil {
				return err
			}

			results := p.scanner.ScanSymbols(cmd.Context(), []string{symbol}, interval, nil)
			r := results[0]
			if r.Err != nil {
				return r.Err
			}

			sig := p.engine.Analyze(r.Series)
			last, _ := r.Series.Last()

			fmt.Printf("%s (%s, %d bars, last close %.2f @ %s)\n\n",
				symbol, interval, len(r.Series.Bars), last.Close, last.Time.Format("2006-01-02"))
			fmt.Printf("  RSI          %s\n", fmtVal(sig.RSI))
			fmt.Printf("  Stoch %%D     %s\n", fmtVal(sig.StochD))
			fmt.Printf("  MACD         %s\n", fmtVal(sig.MACD))
			fmt.Printf("  MACD signal  %s\n", fmtVal(sig.MACDSignal))
			fmt.Printf("\n  Signal: %s", sig.Type)
			if sig.Strength > 0 {
				fmt.Printf(" (strength %.0f)", sig.Strength)
			}
			fmt.Printf("\n  Reason: %s\n", sig.Reason)
			return nil
		},
	}

	cmd.Flags().String("interval", "", "bar interval (default from config)")
	cmd.Flags().Bool("no-cache", false, "bypass the series cache")
	return cmd
}

func fmtVal(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f", v)
}
