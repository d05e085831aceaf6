package trade

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	t.Parallel()

	p, ok := ParsePosition(" long ")
	assert.True(t, ok)
	assert.Equal(t, Long, p)

	p, ok = ParsePosition("Sell")
	assert.True(t, ok)
	assert.Equal(t, Short, p)

	_, ok = ParsePosition("sideways")
	assert.False(t, ok)
	assert.False(t, Position("flat").Valid())
}

func TestParseOutcome(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Outcome
		ok   bool
	}{
		{"", Unset, true},
		{"PROFIT", Profit, true},
		{"loss", Loss, true},
		{"tp", Profit, true},
		{"breakeven", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseOutcome(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
	assert.True(t, Profit.Resolved())
	assert.False(t, Unset.Resolved())
}

func TestResolveTimeOrder(t *testing.T) {
	t.Parallel()

	r := Record{
		Date:      "not a date",
		OpenTime:  "2024-03-01T10:00:00Z",
		CloseTime: "2024-03-02T10:00:00Z",
		CreatedAt: "2024-03-03",
	}
	got, ok := r.ResolveTime()
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)))

	r.Date = "2024-02-28"
	got, ok = r.ResolveTime()
	require.True(t, ok)
	assert.True(t, got.Equal(time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)))
}

func TestResolveTimeFallsBackToEpoch(t *testing.T) {
	t.Parallel()

	got, ok := Record{Date: "??", CreatedAt: ""}.ResolveTime()
	assert.False(t, ok)
	assert.Equal(t, int64(0), got.Unix())
}

func TestParseTimeLayouts(t *testing.T) {
	t.Parallel()

	for _, s := range []string{
		"2024-01-02T03:04:05.123Z",
		"2024-01-02T03:04:05+02:00",
		"2024-01-02T03:04:05",
		"2024-01-02T03:04",
		"2024-01-02 03:04:05",
		"2024-01-02",
	} {
		_, ok := ParseTime(s)
		assert.True(t, ok, s)
	}
}

func TestRiskIsPercentageAt(t *testing.T) {
	t.Parallel()

	r := Record{RiskIsPercentage: []bool{false}}
	assert.False(t, r.RiskIsPercentageAt(0, true))
	assert.True(t, r.RiskIsPercentageAt(1, true))
	assert.True(t, r.RiskIsPercentageAt(-1, true))
}
