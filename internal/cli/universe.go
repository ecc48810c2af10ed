package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/MikeDesj/FinanceX/internal/universe"
)

func newUniverseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "universe",
		Short: "List and inspect symbol universes",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List presets and custom watchlists",
		Run: func(cmd *cobra.Command, args []string) {
			m := universe.NewManager(a.cfg.Universe.Default, a.cfg.Universe.WatchlistDir, a.log)
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTYPE\tSYMBOLS")
			for _, info := range m.List() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", info.Name, info.Type, info.Count)
			}
			w.Flush()
		},
	}

	show := &cobra.Command{
		Use:   "show NAME",
		Short: "Print the symbols of a universe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := universe.NewManager(a.cfg.Universe.Default, a.cfg.Universe.WatchlistDir, a.log)
			symbols, err := m.Symbols(args[0])
			if err != nil {
				return err
			}
			for _, s := range symbols {
				fmt.Println(s)
			}
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}
