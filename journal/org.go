package journal

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/tradebook/pips"
	"github.com/rustyeddy/tradebook/pnl"
)

// FormatTradeOrg renders an entry and its evaluation as an Org-mode block.
// Structured facts live in the PROPERTIES drawer; each leg becomes a table row.
func FormatTradeOrg(e Entry, s pnl.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Trade: %s (%s)\n", orDash(e.Instrument), shortID(e.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", e.ID)
	fmt.Fprintf(&b, ":INSTRUMENT: %s\n", e.Instrument)
	if at, ok := e.Times().ResolveTime(); ok {
		fmt.Fprintf(&b, ":TIME: %s\n", at.Format("2006-01-02T15:04:05Z07:00"))
	}
	fmt.Fprintf(&b, ":OUTCOME: %s\n", orDash(e.Outcome))
	fmt.Fprintf(&b, ":LOT_SIZE: %s\n", orDash(e.LotSize))
	if s.OverallPips != nil {
		fmt.Fprintf(&b, ":PIPS: %s\n", pips.Format(*s.OverallPips))
	}
	if s.OverallPnl != nil {
		fmt.Fprintf(&b, ":PNL: %s\n", pnl.Format(*s.OverallPnl))
	}
	b.WriteString(":END:\n")

	if len(e.Legs) > 0 {
		b.WriteString("\n| # | Position | Entry | SL | TP | Risk | Pips | P/L |\n")
		b.WriteString("|---+----------+-------+----+----+------+------+-----|\n")
		for i, l := range e.Legs {
			var p, m string
			if i < len(s.Legs) {
				if v := s.Legs[i].PipDistance; v != nil {
					p = pips.Format(*v)
				}
				if v := s.Legs[i].Pnl; v != nil {
					m = pnl.Format(*v)
				}
			}
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s | %s | %s |\n",
				i+1, l.Position, l.EntryPrice, l.StopLossPrice, l.TakeProfitPrice, l.Risk, p, m)
		}
	}

	if e.Notes != "" {
		b.WriteString("\n*** Notes\n")
		b.WriteString(e.Notes)
		b.WriteString("\n")
	}
	return b.String()
}

// FormatTradesOrg renders multiple entries separated by blank lines.
func FormatTradesOrg(entries []Entry, summaries []pnl.Summary) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		var s pnl.Summary
		if i < len(summaries) {
			s = summaries[i]
		}
		b.WriteString(FormatTradeOrg(e, s))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
