package capital

import (
	"fmt"
	"io"
	"time"
)

// PrintResult writes a plain-text summary of a replay.
func PrintResult(w io.Writer, r Result) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Capital Replay")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", r.Trades())
	fmt.Fprintf(w, "Wins:          %d\n", r.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", r.Losses)
	fmt.Fprintf(w, "Skipped:       %d\n", len(r.Skipped))
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", r.WinRate())

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Account Performance")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start Capital: %.2f\n", r.InitialCapital)
	fmt.Fprintf(w, "End Capital:   %.2f\n", r.FinalCapital)
	fmt.Fprintf(w, "Total Profit:  %.2f\n", r.TotalProfit)
	fmt.Fprintf(w, "Total Loss:    %.2f\n", r.TotalLoss)
	fmt.Fprintf(w, "Net P/L:       %.2f\n", r.NetPL)
	fmt.Fprintf(w, "Return:        %.2f%%\n", r.ReturnPct)
	if r.ProfitFactor != nil {
		fmt.Fprintf(w, "Profit Factor: %.2f\n", *r.ProfitFactor)
	} else {
		fmt.Fprintln(w, "Profit Factor: n/a (no losses)")
	}
	if r.MaxDrawdownPct > 0 {
		fmt.Fprintf(w, "Max Drawdown:  %.2f%%\n", r.MaxDrawdownPct)
	}

	if len(r.Steps) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Ledger")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, s := range r.Steps {
			fmt.Fprintf(w, "%s  %-6s  %-26s  risk %10.2f  %+12.2f  -> %12.2f\n",
				s.Time.Format(time.DateOnly), s.Outcome, s.TradeID, s.RiskAmount, s.Delta, s.Capital)
		}
	}

	if len(r.Skipped) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Skipped")
		fmt.Fprintln(w, "--------------------------------------------------")
		for _, s := range r.Skipped {
			fmt.Fprintf(w, "- %s: %s\n", s.TradeID, s.Reason)
		}
	}

	fmt.Fprintln(w)
}
