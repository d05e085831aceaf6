package numeric

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		x      float64
		places int
		want   float64
	}{
		{"positive_tie_up", 3.25, 1, 3.3},
		{"negative_tie_toward_pos_inf", -3.25, 1, -3.2},
		{"two_places", 1.005, 2, 1.0}, // 1.005 is 1.00499.. in binary
		{"already_round", 50, 1, 50},
		{"small_negative_to_zero", -0.04, 1, 0},
		{"money", 12.346, 2, 12.35},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, Round(tt.x, tt.places), 1e-12)
		})
	}
}

func TestRoundNormalisesNegativeZero(t *testing.T) {
	t.Parallel()

	r := Round(-0.001, 2)
	assert.False(t, math.Signbit(r))
}

func TestSumFinite(t *testing.T) {
	t.Parallel()

	sum, ok := SumFinite([]*float64{Ptr(10), nil, Ptr(-5), Ptr(math.NaN()), Ptr(20), Ptr(math.Inf(1))})
	assert.True(t, ok)
	assert.InDelta(t, 25.0, sum, 1e-12)

	_, ok = SumFinite([]*float64{nil, Ptr(math.NaN())})
	assert.False(t, ok)

	_, ok = SumFinite(nil)
	assert.False(t, ok)

	sum, ok = SumFinite([]*float64{Ptr(0)})
	assert.True(t, ok)
	assert.Equal(t, 0.0, sum)
}

func TestFirstFinite(t *testing.T) {
	t.Parallel()

	v, ok := FirstFinite([]*float64{nil, Ptr(math.Inf(-1)), Ptr(2), Ptr(3)})
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)

	_, ok = FirstFinite([]*float64{nil})
	assert.False(t, ok)
}

func TestFormatSigned(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "+50.0", FormatSigned(50, 1, "0"))
	assert.Equal(t, "−3.2", FormatSigned(-3.25, 1, "0"))
	assert.Equal(t, "0", FormatSigned(0, 1, "0"))
	assert.Equal(t, "0", FormatSigned(-0.04, 1, "0"))
	assert.Equal(t, "0.00", FormatSigned(0, 2, "0.00"))
	assert.Equal(t, "+1.00", FormatSigned(1, 2, "0.00"))
	assert.Equal(t, "", FormatSigned(math.NaN(), 1, "0"))
	assert.Equal(t, "", FormatSigned(math.Inf(1), 2, "0.00"))
}
