package journal

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradebook/internal/numeric"
	"github.com/rustyeddy/tradebook/pips"
	"github.com/rustyeddy/tradebook/pnl"
	"github.com/rustyeddy/tradebook/trade"
)

var numberNoise = strings.NewReplacer("−", "-", "%", "", "€", "", "$", "", "£", "", "¥", "", " ", "", " ", "")

// ParseNumber reads a user-typed number such as "1.1050", "2%", "50 €" or
// "1,5", or the "−3.2" the formatters produce. It returns nil for empty or
// unparseable input.
func ParseNumber(s string) *float64 {
	s = numberNoise.Replace(strings.TrimSpace(s))
	if s == "" {
		return nil
	}
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	v := d.InexactFloat64()
	if !numeric.Finite(v) {
		return nil
	}
	return &v
}

// Record parses e into the typed form used by the calculators. Numbers are
// parsed here and nowhere else. Unparseable values become nil, and unknown
// position or outcome strings are kept as invalid values so the calculators
// reject them.
func (e Entry) Record(defaultRiskIsPercentage bool) trade.Record {
	r := e.Times()
	r.ID = e.ID
	r.Outcome = parseOutcome(e.Outcome)
	r.LotSize = ParseNumber(e.LotSize)

	for _, l := range e.Legs {
		r.Legs = append(r.Legs, trade.Leg{
			EntryPrice:      ParseNumber(l.EntryPrice),
			StopLossPrice:   ParseNumber(l.StopLossPrice),
			TakeProfitPrice: ParseNumber(l.TakeProfitPrice),
			Position:        parsePosition(l.Position),
			Outcome:         parseOutcome(l.Outcome),
		})
		r.Risk = append(r.Risk, ParseNumber(l.Risk))
		r.RiskIsPercentage = append(r.RiskIsPercentage, pnl.InferRiskIsPercentage(l.Risk, defaultRiskIsPercentage))
		r.Pips = append(r.Pips, ParseNumber(l.Pips))
	}
	return r
}

// Records parses a batch of entries.
func Records(entries []Entry, defaultRiskIsPercentage bool) []trade.Record {
	out := make([]trade.Record, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Record(defaultRiskIsPercentage))
	}
	return out
}

// FillPips stores the computed pip distance on every leg that has none.
// Legs inherit the trade outcome when their own is unset.
func (e *Entry) FillPips() {
	tradeOut := parseOutcome(e.Outcome)
	for i := range e.Legs {
		l := &e.Legs[i]
		if ParseNumber(l.Pips) != nil {
			continue
		}
		out := parseOutcome(l.Outcome)
		if !out.Resolved() {
			out = tradeOut
		}
		d, ok := pips.Calculate(
			numeric.Value(ParseNumber(l.EntryPrice)),
			numeric.Value(ParseNumber(l.TakeProfitPrice)),
			numeric.Value(ParseNumber(l.StopLossPrice)),
			parsePosition(l.Position),
			out,
		)
		if ok {
			l.Pips = decimal.NewFromFloat(d).StringFixed(pips.Places)
		}
	}
}

func parseOutcome(s string) trade.Outcome {
	if o, ok := trade.ParseOutcome(s); ok {
		return o
	}
	return trade.Outcome(s)
}

func parsePosition(s string) trade.Position {
	if p, ok := trade.ParsePosition(s); ok {
		return p
	}
	return trade.Position(s)
}
