package pnl

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tradebook/internal/numeric"
	"github.com/rustyeddy/tradebook/trade"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Input
		want float64
		ok   bool
	}{
		{"percent_profit", Input{Pips: 50, LotSize: 1, Risk: 2, Outcome: trade.Profit}, 1.00, true},
		{"percent_loss_forces_sign", Input{Pips: 50, LotSize: 1, Risk: 2, Outcome: trade.Loss}, -1.00, true},
		{"profit_forces_positive", Input{Pips: -50, LotSize: 1, Risk: 2, Outcome: trade.Profit}, 1.00, true},
		{"no_outcome_keeps_sign", Input{Pips: -50, LotSize: 1, Risk: 2}, -1.00, true},
		{"absolute_risk", Input{Pips: 20, LotSize: 0.5, Risk: 10, RiskIsAbsolute: true}, 100.00, true},
		{"rounds_to_cents", Input{Pips: 33.3, LotSize: 1, Risk: 1}, 0.33, true},
		{"zero_not_negative", Input{Pips: 0, LotSize: 1, Risk: 1, Outcome: trade.Loss}, 0, true},
		{"nan_pips", Input{Pips: math.NaN(), LotSize: 1, Risk: 1}, 0, false},
		{"inf_lot", Input{Pips: 1, LotSize: math.Inf(1), Risk: 1}, 0, false},
		{"nan_risk", Input{Pips: 1, LotSize: 1, Risk: math.NaN()}, 0, false},
		{"overflow", Input{Pips: math.MaxFloat64, LotSize: math.MaxFloat64, Risk: 100}, 0, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Calculate(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
			if tt.want == 0 {
				assert.False(t, math.Signbit(got))
			}
		})
	}
}

func TestCalculateNegativeResultSign(t *testing.T) {
	t.Parallel()

	got, ok := Calculate(Input{Pips: 30, LotSize: 2, Risk: 1, Outcome: trade.Loss})
	assert.True(t, ok)
	assert.Equal(t, -0.6, got)
}

func TestCalculateRoundsPipsOnlyWithOutcome(t *testing.T) {
	t.Parallel()

	in := Input{Pips: 33.33, LotSize: 1, Risk: 1, RiskIsAbsolute: true}

	v, ok := Calculate(in)
	assert.True(t, ok)
	assert.InDelta(t, 33.33, v, 1e-9)

	in.Outcome = trade.Profit
	v, ok = Calculate(in)
	assert.True(t, ok)
	assert.InDelta(t, 33.3, v, 1e-9)
}

func TestOverall(t *testing.T) {
	t.Parallel()

	p := numeric.Ptr
	sum, ok := Overall([]*float64{p(1.25), nil, p(-0.5), p(math.NaN())})
	assert.True(t, ok)
	assert.Equal(t, 0.75, sum)

	_, ok = Overall(nil)
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.00", Format(0))
	assert.Equal(t, "+1.00", Format(1))
	assert.Equal(t, "−2.50", Format(-2.5))
	assert.Equal(t, "+0.01", Format(0.005))
	assert.Equal(t, "", Format(math.Inf(-1)))
}

func TestInferRiskIsPercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		def  bool
		want bool
	}{
		{"2%", false, true},
		{" 1.5 % ", false, true},
		{"50$", true, false},
		{"50 €", true, false},
		{"10£", true, false},
		{"1000¥", true, false},
		{"2", true, true},
		{"2", false, false},
		{"", false, false},
		{"   ", true, true},
		{"$50", true, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, InferRiskIsPercentage(tt.raw, tt.def), "%q def=%v", tt.raw, tt.def)
	}
}
