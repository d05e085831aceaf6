// Package pips converts entry and exit prices into signed pip distances.
//
// The pip scale is fixed at 1/10000 of the quote price, which is right for
// 4-decimal quotes such as EUR/USD. Pairs quoted to 2 decimals (USD/JPY) are
// not special-cased and come out 100x too large.
package pips

import (
	"math"

	"github.com/rustyeddy/tradebook/internal/numeric"
	"github.com/rustyeddy/tradebook/trade"
)

// Scale converts a price difference into pips.
const Scale = 10000.0

// Places is the rounding precision for pip values.
const Places = 1

// Calculate returns the pip distance between entry and the exit selected by
// outcome: take-profit for a profit, stop-loss for a loss. The result is
// negative for a loss and positive otherwise. ok is false when the outcome is
// unset, position or outcome is invalid, or a required price is not finite.
func Calculate(entry, takeProfit, stopLoss float64, pos trade.Position, out trade.Outcome) (float64, bool) {
	if !pos.Valid() {
		return 0, false
	}

	var exit float64
	switch out {
	case trade.Profit:
		exit = takeProfit
	case trade.Loss:
		exit = stopLoss
	default:
		return 0, false
	}
	if !numeric.Finite(entry) || !numeric.Finite(exit) {
		return 0, false
	}

	dist := numeric.Round(math.Abs(exit-entry)*Scale, Places)
	if out == trade.Loss {
		return -dist, true
	}
	return dist, true
}

// StopLossDistance is the distance from entry to the stop in pips. It is
// positive when the stop sits on the losing side of entry (below for LONG,
// above for SHORT) and negative when it is misplaced.
func StopLossDistance(entry, stopLoss float64, pos trade.Position) (float64, bool) {
	return directional(stopLoss, entry, pos)
}

// TakeProfitDistance is the distance from entry to the target in pips,
// positive when the target sits on the winning side of entry.
func TakeProfitDistance(entry, takeProfit float64, pos trade.Position) (float64, bool) {
	return directional(entry, takeProfit, pos)
}

// directional returns (hi-lo) for LONG and (lo-hi) for SHORT, in pips.
func directional(lo, hi float64, pos trade.Position) (float64, bool) {
	if !numeric.Finite(lo) || !numeric.Finite(hi) {
		return 0, false
	}
	var d float64
	switch pos {
	case trade.Long:
		d = hi - lo
	case trade.Short:
		d = lo - hi
	default:
		return 0, false
	}
	return numeric.Round(d*Scale, Places), true
}

// RewardRisk is the target distance divided by the stop distance, rounded to
// two places. ok is false when either distance is missing or the stop distance
// is not positive.
func RewardRisk(entry, takeProfit, stopLoss float64, pos trade.Position) (float64, bool) {
	reward, ok := TakeProfitDistance(entry, takeProfit, pos)
	if !ok {
		return 0, false
	}
	risk, ok := StopLossDistance(entry, stopLoss, pos)
	if !ok || risk <= 0 {
		return 0, false
	}
	return numeric.Round(reward/risk, 2), true
}

// ApplyOutcome forces the sign of an already computed pip value: positive for
// a profit, negative for a loss, unchanged otherwise. Applying the same
// outcome twice gives the same result.
func ApplyOutcome(value float64, out trade.Outcome) (float64, bool) {
	if !numeric.Finite(value) {
		return 0, false
	}
	switch out {
	case trade.Profit:
		value = math.Abs(value)
	case trade.Loss:
		value = -math.Abs(value)
	}
	return numeric.Round(value, Places), true
}

// Overall sums the finite values in order, ignoring nil and non-finite
// entries. ok is false only when nothing was summed.
func Overall(values []*float64) (float64, bool) {
	sum, ok := numeric.SumFinite(values)
	if !ok {
		return 0, false
	}
	return numeric.Round(sum, Places), true
}

// Format renders a pip value as "+12.5", "−3.2" or "0". Non-finite input
// renders as "".
func Format(value float64) string {
	return numeric.FormatSigned(value, Places, "0")
}
