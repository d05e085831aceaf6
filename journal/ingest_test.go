package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradebook/trade"
)

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1.1050", 1.105, true},
		{" 2% ", 2, true},
		{"50 €", 50, true},
		{"$12.5", 12.5, true},
		{"1,5", 1.5, true},
		{"−3.2", -3.2, true},
		{"-0.75", -0.75, true},
		{"1e2", 100, true},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"1,000.5", 0, false},
	}
	for _, tt := range tests {
		got := ParseNumber(tt.in)
		if !tt.ok {
			assert.Nil(t, got, tt.in)
			continue
		}
		require.NotNil(t, got, tt.in)
		assert.InDelta(t, tt.want, *got, 1e-12, tt.in)
	}
}

func TestEntryRecord(t *testing.T) {
	t.Parallel()

	e := sampleEntry("T1", "alice", "2024-01-02")
	e.Legs = append(e.Legs, Leg{Position: "sideways", Outcome: "maybe", Risk: "lots"})

	r := e.Record(true)
	assert.Equal(t, "T1", r.ID)
	assert.Equal(t, "2024-01-02", r.Date)
	assert.Equal(t, trade.Profit, r.Outcome)
	require.NotNil(t, r.LotSize)
	assert.Equal(t, 1.0, *r.LotSize)

	require.Len(t, r.Legs, 3)
	assert.Equal(t, trade.Long, r.Legs[0].Position)
	assert.Equal(t, trade.Unset, r.Legs[0].Outcome)
	assert.Equal(t, trade.Loss, r.Legs[1].Outcome)
	assert.False(t, r.Legs[2].Position.Valid())
	assert.False(t, r.Legs[2].Outcome.Valid())

	require.Len(t, r.Risk, 3)
	assert.Equal(t, 2.0, *r.Risk[0])
	assert.Equal(t, 10.0, *r.Risk[1])
	assert.Nil(t, r.Risk[2])
	assert.Equal(t, []bool{true, false, true}, r.RiskIsPercentage)

	require.Len(t, r.Pips, 3)
	assert.Equal(t, 50.0, *r.Pips[0])
	assert.Nil(t, r.Pips[1])
}

func TestRecordsDefaultRiskReading(t *testing.T) {
	t.Parallel()

	entries := []Entry{{ID: "a", Legs: []Leg{{Risk: "2"}}}}
	assert.Equal(t, []bool{false}, Records(entries, false)[0].RiskIsPercentage)
	assert.Equal(t, []bool{true}, Records(entries, true)[0].RiskIsPercentage)
}

func TestFillPips(t *testing.T) {
	t.Parallel()

	e := Entry{
		Outcome: "profit",
		Legs: []Leg{
			{EntryPrice: "1.1000", StopLossPrice: "1.0950", TakeProfitPrice: "1.1050", Position: "long"},
			{EntryPrice: "1.1000", StopLossPrice: "1.0950", TakeProfitPrice: "1.1050", Position: "long", Outcome: "loss"},
			{EntryPrice: "1.1000", Position: "long", Pips: "12.5"},
			{EntryPrice: "", Position: "long"},
		},
	}
	e.FillPips()

	assert.Equal(t, "50.0", e.Legs[0].Pips)
	assert.Equal(t, "-50.0", e.Legs[1].Pips)
	assert.Equal(t, "12.5", e.Legs[2].Pips)
	assert.Equal(t, "", e.Legs[3].Pips)
}
