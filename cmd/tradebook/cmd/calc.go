package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradebook/internal/numeric"
	"github.com/rustyeddy/tradebook/journal"
	"github.com/rustyeddy/tradebook/pips"
	"github.com/rustyeddy/tradebook/pnl"
	"github.com/rustyeddy/tradebook/trade"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Pip and P/L calculators",
	Long: `Quick calculators that do not touch the journal.

Examples:
  tradebook calc pips --position long --entry 1.1000 --tp 1.1050 --sl 1.0950 --outcome profit
  tradebook calc pnl --pips 50 --lot 1 --risk 2% --outcome profit`,
}

var calcPipsCmd = &cobra.Command{
	Use:   "pips",
	Short: "Pip distance for a leg",
	Args:  cobra.NoArgs,
	RunE:  runCalcPips,
}

var calcPnlCmd = &cobra.Command{
	Use:   "pnl",
	Short: "Money result for a pip distance",
	Args:  cobra.NoArgs,
	RunE:  runCalcPnl,
}

var calcOpts struct {
	position string
	entry    string
	tp       string
	sl       string
	outcome  string

	pips string
	lot  string
	risk string
}

func init() {
	rootCmd.AddCommand(calcCmd)
	calcCmd.AddCommand(calcPipsCmd)
	calcCmd.AddCommand(calcPnlCmd)

	calcCmd.PersistentFlags().StringVar(&calcOpts.outcome, "outcome", "", "profit, loss or unset")

	f := calcPipsCmd.Flags()
	f.StringVar(&calcOpts.position, "position", "LONG", "LONG or SHORT")
	f.StringVar(&calcOpts.entry, "entry", "", "entry price")
	f.StringVar(&calcOpts.tp, "tp", "", "take-profit price")
	f.StringVar(&calcOpts.sl, "sl", "", "stop-loss price")

	f = calcPnlCmd.Flags()
	f.StringVar(&calcOpts.pips, "pips", "", "pip distance")
	f.StringVar(&calcOpts.lot, "lot", "", "lot size")
	f.StringVar(&calcOpts.risk, "risk", "", `risk, e.g. "2%" or "50$"`)
}

func runCalcPips(cmd *cobra.Command, args []string) error {
	pos, ok := trade.ParsePosition(calcOpts.position)
	if !ok {
		return fmt.Errorf("unknown position %q", calcOpts.position)
	}
	out, ok := trade.ParseOutcome(calcOpts.outcome)
	if !ok {
		return fmt.Errorf("unknown outcome %q", calcOpts.outcome)
	}

	entry := numeric.Value(journal.ParseNumber(calcOpts.entry))
	tp := numeric.Value(journal.ParseNumber(calcOpts.tp))
	sl := numeric.Value(journal.ParseNumber(calcOpts.sl))

	w := cmd.OutOrStdout()
	if d, ok := pips.StopLossDistance(entry, sl, pos); ok {
		fmt.Fprintf(w, "Stop distance:   %.1f pips\n", d)
	}
	if d, ok := pips.TakeProfitDistance(entry, tp, pos); ok {
		fmt.Fprintf(w, "Target distance: %.1f pips\n", d)
	}
	if rr, ok := pips.RewardRisk(entry, tp, sl, pos); ok {
		fmt.Fprintf(w, "Reward/risk:     %.2f\n", rr)
	}
	if d, ok := pips.Calculate(entry, tp, sl, pos, out); ok {
		fmt.Fprintf(w, "Result:          %s pips\n", pips.Format(d))
	} else {
		fmt.Fprintln(w, "Result:          n/a")
	}
	return nil
}

func runCalcPnl(cmd *cobra.Command, args []string) error {
	out, ok := trade.ParseOutcome(calcOpts.outcome)
	if !ok {
		return fmt.Errorf("unknown outcome %q", calcOpts.outcome)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	isPct := pnl.InferRiskIsPercentage(calcOpts.risk, cfg.Risk.DefaultIsPercentage)

	v, ok := pnl.Calculate(pnl.Input{
		Pips:           numeric.Value(journal.ParseNumber(calcOpts.pips)),
		LotSize:        numeric.Value(journal.ParseNumber(calcOpts.lot)),
		Risk:           numeric.Value(journal.ParseNumber(calcOpts.risk)),
		Outcome:        out,
		RiskIsAbsolute: !isPct,
	})

	w := cmd.OutOrStdout()
	if !ok {
		fmt.Fprintln(w, "P/L: n/a")
		return nil
	}
	fmt.Fprintf(w, "P/L: %s\n", pnl.Format(v))
	return nil
}
