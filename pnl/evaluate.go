package pnl

import (
	"github.com/rustyeddy/tradebook/internal/numeric"
	"github.com/rustyeddy/tradebook/pips"
	"github.com/rustyeddy/tradebook/trade"
)

// LegResult is the derived view of one leg. Nil means the value could not be
// computed.
type LegResult struct {
	PipDistance *float64 `json:"pip_distance"`
	Pnl         *float64 `json:"pnl"`
}

// Summary aggregates a trade's legs.
type Summary struct {
	Legs        []LegResult `json:"legs"`
	OverallPips *float64    `json:"overall_pips"`
	OverallPnl  *float64    `json:"overall_pnl"`
}

// EvaluateLeg prices a leg and converts the pip distance into money.
func EvaluateLeg(leg trade.Leg, lotSize, risk float64, riskIsPercentage bool) LegResult {
	d, ok := pips.Calculate(
		numeric.Value(leg.EntryPrice),
		numeric.Value(leg.TakeProfitPrice),
		numeric.Value(leg.StopLossPrice),
		leg.Position,
		leg.Outcome,
	)
	if !ok {
		return LegResult{}
	}
	return withPnl(d, leg.Outcome, lotSize, risk, riskIsPercentage)
}

func withPnl(d float64, out trade.Outcome, lotSize, risk float64, riskIsPercentage bool) LegResult {
	res := LegResult{PipDistance: numeric.Ptr(d)}
	v, ok := Calculate(Input{
		Pips:           d,
		LotSize:        lotSize,
		Risk:           risk,
		Outcome:        out,
		RiskIsAbsolute: !riskIsPercentage,
	})
	if ok {
		res.Pnl = numeric.Ptr(v)
	}
	return res
}

// EvaluateTrade evaluates every leg of r. A leg whose prices cannot be priced
// falls back to the stored pips at the same index, signed by the leg outcome
// (or the trade outcome when the leg has none). Records without legs are
// evaluated from their stored pips alone.
func EvaluateTrade(r trade.Record, defaultRiskIsPercentage bool) Summary {
	n := len(r.Legs)
	if n == 0 {
		n = len(r.Pips)
	}

	lot := numeric.Value(r.LotSize)
	s := Summary{Legs: make([]LegResult, n)}
	for i := 0; i < n; i++ {
		risk := at(r.Risk, i)
		isPct := r.RiskIsPercentageAt(i, defaultRiskIsPercentage)

		out := r.Outcome
		if i < len(r.Legs) {
			leg := r.Legs[i]
			if leg.Outcome.Resolved() {
				out = leg.Outcome
			}
			leg.Outcome = out
			if res := EvaluateLeg(leg, lot, risk, isPct); res.PipDistance != nil {
				s.Legs[i] = res
				continue
			}
		}

		stored := at(r.Pips, i)
		if d, ok := pips.ApplyOutcome(stored, out); ok {
			s.Legs[i] = withPnl(d, out, lot, risk, isPct)
		}
	}

	pipVals := make([]*float64, n)
	pnlVals := make([]*float64, n)
	for i, l := range s.Legs {
		pipVals[i], pnlVals[i] = l.PipDistance, l.Pnl
	}
	if v, ok := pips.Overall(pipVals); ok {
		s.OverallPips = numeric.Ptr(v)
	}
	if v, ok := Overall(pnlVals); ok {
		s.OverallPnl = numeric.Ptr(v)
	}
	return s
}

// at returns values[i], or NaN when i is out of range or the entry is nil.
func at(values []*float64, i int) float64 {
	if i < 0 || i >= len(values) {
		return numeric.Value(nil)
	}
	return numeric.Value(values[i])
}
