package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MikeDesj/FinanceX/internal/model"
)

func newScanCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a universe and print trade signals",
		RunE: func(cmd *cobra.Command, args []string) error {
			universeName, _ := cmd.Flags().GetString("universe")
			symbolsFlag, _ := cmd.Flags().GetString("symbols")
			interval, _ := cmd.Flags().GetString("interval")
			noCache, _ := cmd.Flags().GetBool("no-cache")
			minStrength, _ := cmd.Flags().GetFloat64("min-strength")
			quiet, _ := cmd.Flags().GetBool("quiet")

			if interval == "" {
				interval = a.cfg.Data.Interval
			}

			p, err := a.buildPipeline(noCache, nil)
			if err != nil {
				return err
			}

			var progress func(done, total int)
			if !quiet {
				progress = func(done, total int) {
					fmt.Fprintf(os.Stderr, "\rscanning %d/%d", done, total)
					if done == total {
						fmt.Fprintln(os.Stderr)
					}
				}
			}

			var results []model.ScanResult
			if symbolsFlag != "" {
				symbols := splitSymbols(symbolsFlag)
				results = p.scanner.ScanSymbols(cmd.Context(), symbols, interval, progress)
			} else {
				results, err = p.scanner.ScanUniverse(cmd.Context(), universeName, interval, progress)
				if err != nil {
					return err
				}
			}

			signals := p.engine.EvaluateBatch(results)
			printSignals(signals, minStrength)
			return nil
		},
	}

	cmd.Flags().String("universe", "", "universe to scan (default from config)")
	cmd.Flags().String("symbols", "", "comma-separated symbols, overrides --universe")
	cmd.Flags().String("interval", "", "bar interval (default from config)")
	cmd.Flags().Bool("no-cache", false, "bypass the series cache")
	cmd.Flags().Float64("min-strength", 0, "only print directional signals at least this strong")
	cmd.Flags().Bool("quiet", false, "suppress progress output")
	return cmd
}

func splitSymbols(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, strings.ToUpper(t))
		}
	}
	return out
}

// printSignals renders batch results sorted by symbol; the scan itself
// completes in arbitrary order.
func printSignals(signals []model.SymbolSignal, minStrength float64) {
	sort.Slice(signals, func(i, j int) bool { return signals[i].Symbol < signals[j].Symbol })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tSIGNAL\tSTRENGTH\tRSI\tSTOCH\tREASON")
	shown := 0
	for _, s := range signals {
		sig := s.Signal
		if minStrength > 0 && sig.Type != model.SignalError && !sig.Actionable(minStrength) {
			continue
		}
		switch sig.Type {
		case model.SignalError:
			fmt.Fprintf(w, "%s\t%s\t-\t-\t-\t%s\n", s.Symbol, sig.Type, sig.Reason)
		case model.SignalNeutral:
			fmt.Fprintf(w, "%s\t%s\t-\t%.1f\t%.1f\t%s\n", s.Symbol, sig.Type, sig.RSI, sig.StochD, sig.Reason)
		default:
			fmt.Fprintf(w, "%s\t%s\t%.0f\t%.1f\t%.1f\t%s\n",
				s.Symbol, sig.Type, sig.Strength, sig.RSI, sig.StochD, sig.Reason)
		}
		shown++
	}
	w.Flush()
	fmt.Printf("\n%d of %d symbols shown\n", shown, len(signals))
}
