// Package pnl turns pip distances into monetary results.
package pnl

import (
	"strings"

	"github.com/rustyeddy/tradebook/internal/numeric"
	"github.com/rustyeddy/tradebook/pips"
	"github.com/rustyeddy/tradebook/trade"
)

// Places is the rounding precision for money.
const Places = 2

// Input describes one P/L calculation. Risk is read as a percentage unless
// RiskIsAbsolute is set, so the zero value matches the journal default.
type Input struct {
	Pips           float64
	LotSize        float64
	Risk           float64
	Outcome        trade.Outcome
	RiskIsAbsolute bool
}

// Calculate returns Pips * LotSize * multiplier rounded to cents, where the
// multiplier is Risk/100 for percentage risk and Risk otherwise. When an
// outcome is given the pip sign is forced first, as pips.ApplyOutcome does,
// which also rounds the pips to 0.1. Without an outcome the pips are used as
// given, so 33.33 pips prices differently with and without an outcome.
// ok is false for non-finite input or a non-finite result.
func Calculate(in Input) (float64, bool) {
	if !numeric.Finite(in.Pips) || !numeric.Finite(in.LotSize) || !numeric.Finite(in.Risk) {
		return 0, false
	}

	eff := in.Pips
	if in.Outcome.Resolved() {
		eff, _ = pips.ApplyOutcome(in.Pips, in.Outcome)
	}

	mult := in.Risk / 100
	if in.RiskIsAbsolute {
		mult = in.Risk
	}

	res := numeric.Round(eff*in.LotSize*mult, Places)
	if !numeric.Finite(res) {
		return 0, false
	}
	return res, true
}

// Overall sums the finite P/L values in order. ok is false only when nothing
// was summed.
func Overall(values []*float64) (float64, bool) {
	sum, ok := numeric.SumFinite(values)
	if !ok {
		return 0, false
	}
	return numeric.Round(sum, Places), true
}

// Format renders money as "+1.00", "−2.50" or "0.00". Non-finite input
// renders as "".
func Format(value float64) string {
	return numeric.FormatSigned(value, Places, "0.00")
}

var currencySymbols = []string{"€", "$", "£", "¥"}

// InferRiskIsPercentage guesses how a user typed a risk value: "2%" is a
// percentage, "50$" or "50 €" is an absolute amount. Anything else yields def.
func InferRiskIsPercentage(raw string, def bool) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return def
	}
	if strings.Contains(s, "%") {
		return true
	}
	for _, sym := range currencySymbols {
		if strings.HasSuffix(s, sym) {
			return false
		}
	}
	return def
}
