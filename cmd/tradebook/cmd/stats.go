package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/capital"
	"github.com/rustyeddy/tradebook/journal"
	"github.com/rustyeddy/tradebook/trade"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Replay the journal against a compounding balance",
	Long: `Replay resolved trades in time order against a starting balance and
report total profit, total loss, profit factor and the per-trade ledger.

Examples:
  tradebook stats
  tradebook stats --capital 5000 --from 2024-01-01 --to 2024-04-01
  tradebook stats --json`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var statsOpts struct {
	capital float64
	from    string
	to      string
	json    bool
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().Float64Var(&statsOpts.capital, "capital", 0, "initial capital (defaults to account.initial_capital)")
	statsCmd.Flags().StringVar(&statsOpts.from, "from", "", "only trades at or after this date")
	statsCmd.Flags().StringVar(&statsOpts.to, "to", "", "only trades before this date")
	statsCmd.Flags().BoolVar(&statsOpts.json, "json", false, "print the result as JSON")
}

func runStats(cmd *cobra.Command, args []string) error {
	ev, err := openEnv()
	if err != nil {
		return err
	}
	defer ev.Close()

	start := time.Unix(0, 0).UTC()
	end := time.Date(9999, 1, 1, 0, 0, 0, 0, time.UTC)
	if statsOpts.from != "" {
		t, ok := trade.ParseTime(statsOpts.from)
		if !ok {
			return fmt.Errorf("from: unrecognised date %q", statsOpts.from)
		}
		start = t
	}
	if statsOpts.to != "" {
		t, ok := trade.ParseTime(statsOpts.to)
		if !ok {
			return fmt.Errorf("to: unrecognised date %q", statsOpts.to)
		}
		end = t
	}

	var entries []journal.Entry
	if statsOpts.from != "" || statsOpts.to != "" {
		entries, err = ev.store.ListTradesBetween(cmd.Context(), ev.user, start, end)
	} else {
		entries, err = ev.store.ListTrades(cmd.Context(), ev.user)
	}
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	initial := ev.cfg.Account.InitialCapital
	if statsOpts.capital != 0 {
		initial = statsOpts.capital
	}

	sim := capital.NewSimulator(ev.log.Named("capital"))
	res := sim.Run(journal.Records(entries, ev.cfg.Risk.DefaultIsPercentage), initial)

	if statsOpts.json {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	capital.PrintResult(cmd.OutOrStdout(), res)
	return nil
}
