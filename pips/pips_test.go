package pips

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tradebook/internal/numeric"
	"github.com/rustyeddy/tradebook/trade"
)

func TestCalculate(t *testing.T) {
	t.Parallel()

	nan := math.NaN()

	tests := []struct {
		name  string
		entry float64
		tp    float64
		sl    float64
		pos   trade.Position
		out   trade.Outcome
		want  float64
		ok    bool
	}{
		{"long_profit", 1.1000, 1.1050, 1.0950, trade.Long, trade.Profit, 50.0, true},
		{"long_loss", 1.1000, 1.1050, 1.0950, trade.Long, trade.Loss, -50.0, true},
		{"short_profit", 1.1000, 1.0920, 1.1030, trade.Short, trade.Profit, 80.0, true},
		{"short_loss", 1.1000, 1.0920, 1.1030, trade.Short, trade.Loss, -30.0, true},
		{"rounds_to_tenth", 1.10000, 1.10123, 1.0950, trade.Long, trade.Profit, 12.3, true},
		{"unset", 1.1000, 1.1050, 1.0950, trade.Long, trade.Unset, 0, false},
		{"invalid_outcome", 1.1000, 1.1050, 1.0950, trade.Long, trade.Outcome("be"), 0, false},
		{"invalid_position", 1.1000, 1.1050, 1.0950, trade.Position(""), trade.Profit, 0, false},
		{"missing_entry", nan, 1.1050, 1.0950, trade.Long, trade.Profit, 0, false},
		{"missing_tp_on_profit", 1.1000, nan, 1.0950, trade.Long, trade.Profit, 0, false},
		{"missing_tp_on_loss_ok", 1.1000, nan, 1.0950, trade.Long, trade.Loss, -50.0, true},
		{"infinite_sl", 1.1000, 1.1050, math.Inf(1), trade.Long, trade.Loss, 0, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Calculate(tt.entry, tt.tp, tt.sl, tt.pos, tt.out)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestCalculateLossSignIgnoresPlacement(t *testing.T) {
	t.Parallel()

	// A stop placed above a long entry still reports a negative loss.
	got, ok := Calculate(1.1000, 1.1050, 1.1020, trade.Long, trade.Loss)
	assert.True(t, ok)
	assert.InDelta(t, -20.0, got, 1e-9)
}

func TestDistances(t *testing.T) {
	t.Parallel()

	d, ok := StopLossDistance(1.1000, 1.0980, trade.Long)
	assert.True(t, ok)
	assert.InDelta(t, 20.0, d, 1e-9)

	d, ok = TakeProfitDistance(1.1000, 1.1040, trade.Long)
	assert.True(t, ok)
	assert.InDelta(t, 40.0, d, 1e-9)

	d, ok = StopLossDistance(1.1000, 1.1020, trade.Short)
	assert.True(t, ok)
	assert.InDelta(t, 20.0, d, 1e-9)

	d, ok = TakeProfitDistance(1.1000, 1.0960, trade.Short)
	assert.True(t, ok)
	assert.InDelta(t, 40.0, d, 1e-9)

	d, ok = TakeProfitDistance(1.1000, 1.0960, trade.Long)
	assert.True(t, ok)
	assert.InDelta(t, -40.0, d, 1e-9)

	_, ok = StopLossDistance(math.NaN(), 1.0980, trade.Long)
	assert.False(t, ok)
	_, ok = TakeProfitDistance(1.1, 1.2, trade.Position("x"))
	assert.False(t, ok)
}

func TestRewardRisk(t *testing.T) {
	t.Parallel()

	rr, ok := RewardRisk(1.1000, 1.1040, 1.0980, trade.Long)
	assert.True(t, ok)
	assert.InDelta(t, 2.0, rr, 1e-9)

	rr, ok = RewardRisk(1.1000, 1.0970, 1.1020, trade.Short)
	assert.True(t, ok)
	assert.InDelta(t, 1.5, rr, 1e-9)

	// stop on the wrong side of entry
	_, ok = RewardRisk(1.1000, 1.1040, 1.1020, trade.Long)
	assert.False(t, ok)

	_, ok = RewardRisk(1.1000, math.NaN(), 1.0980, trade.Long)
	assert.False(t, ok)
}

func TestApplyOutcome(t *testing.T) {
	t.Parallel()

	v, ok := ApplyOutcome(12, trade.Loss)
	assert.True(t, ok)
	assert.Equal(t, -12.0, v)

	again, ok := ApplyOutcome(v, trade.Loss)
	assert.True(t, ok)
	assert.Equal(t, v, again)

	v, _ = ApplyOutcome(-7.25, trade.Profit)
	assert.Equal(t, 7.3, v)

	v, _ = ApplyOutcome(-7.25, trade.Unset)
	assert.Equal(t, -7.2, v)

	_, ok = ApplyOutcome(math.NaN(), trade.Profit)
	assert.False(t, ok)
}

func TestOverall(t *testing.T) {
	t.Parallel()

	p := numeric.Ptr
	sum, ok := Overall([]*float64{p(10), nil, p(-5), p(math.NaN()), p(20)})
	assert.True(t, ok)
	assert.Equal(t, 25.0, sum)

	reordered, ok := Overall([]*float64{p(20), p(-5), p(10)})
	assert.True(t, ok)
	assert.Equal(t, sum, reordered)

	_, ok = Overall([]*float64{nil, p(math.Inf(-1))})
	assert.False(t, ok)
}

func TestFormat(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0", Format(0))
	assert.Equal(t, "−3.2", Format(-3.25))
	assert.Equal(t, "+50.0", Format(50))
	assert.Equal(t, "+0.1", Format(0.05))
	assert.Equal(t, "", Format(math.NaN()))
}
