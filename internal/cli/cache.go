package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MikeDesj/FinanceX/internal/cache"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the series cache",
	}

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show cache file count and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cache.NewStore(a.cfg.Cache, nil, a.log)
			if err != nil {
				return err
			}
			st := store.Stats()
			fmt.Printf("enabled:   %v\n", st.Enabled)
			fmt.Printf("directory: %s\n", st.Directory)
			fmt.Printf("files:     %d\n", st.Files)
			fmt.Printf("size:      %.2f MB\n", float64(st.SizeBytes)/(1024*1024))
			return nil
		},
	}

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Delete cached entries (all by default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol, _ := cmd.Flags().GetString("symbol")
			interval, _ := cmd.Flags().GetString("interval")

			store, err := cache.NewStore(a.cfg.Cache, nil, a.log)
			if err != nil {
				return err
			}
			if err := store.Invalidate(symbol, interval); err != nil {
				return err
			}
			fmt.Println("cache cleared")
			return nil
		},
	}
	clear.Flags().String("symbol", "", "only clear entries for this symbol")
	clear.Flags().String("interval", "", "only clear entries for this interval")

	cmd.AddCommand(stats, clear)
	return cmd
}
