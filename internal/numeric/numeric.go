// Package numeric holds the rounding, summing and display helpers shared by
// the pip and P/L calculators.
package numeric

import (
	"math"
	"strconv"
)

// Minus is the display glyph for negative values (U+2212).
const Minus = "−"

// Finite reports whether x is neither NaN nor ±Inf.
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// Value dereferences p, returning NaN when p is nil.
func Value(p *float64) float64 {
	if p == nil {
		return math.NaN()
	}
	return *p
}

// Ptr returns a pointer to x.
func Ptr(x float64) *float64 {
	return &x
}

// Round rounds x to the given number of decimal places with ties going
// toward +Inf, so Round(-3.25, 1) == -3.2 and Round(3.25, 1) == 3.3.
// Negative zero is normalised to zero.
func Round(x float64, places int) float64 {
	if !Finite(x) {
		return x
	}
	f := math.Pow(10, float64(places))
	r := math.Floor(x*f+0.5) / f
	if r == 0 {
		return 0
	}
	return r
}

// SumFinite adds the finite entries of values in slice order. nil and
// non-finite entries are skipped. ok is false only when no entry was finite.
func SumFinite(values []*float64) (sum float64, ok bool) {
	for _, v := range values {
		if v == nil || !Finite(*v) {
			continue
		}
		sum += *v
		ok = true
	}
	return sum, ok
}

// FirstFinite returns the first finite entry of values.
func FirstFinite(values []*float64) (float64, bool) {
	for _, v := range values {
		if v != nil && Finite(*v) {
			return *v, true
		}
	}
	return 0, false
}

// FormatSigned renders x rounded to places decimals with a leading '+' for
// positive values and U+2212 for negative ones. An exact zero renders as zero,
// which is passed in by the caller ("0" for pips, "0.00" for money). Non-finite
// input renders as the empty string.
func FormatSigned(x float64, places int, zero string) string {
	if !Finite(x) {
		return ""
	}
	r := Round(x, places)
	if r == 0 {
		return zero
	}
	s := strconv.FormatFloat(math.Abs(r), 'f', places, 64)
	if r < 0 {
		return Minus + s
	}
	return "+" + s
}
