package journal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tradebook/pnl"
)

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	e := sampleEntry("01HQXYZABCDEFGHJKMNPQRSTVW", "alice", "2024-03-15T10:30:45Z")
	s := pnl.EvaluateTrade(e.Record(true), true)

	result := FormatTradeOrg(e, s)

	assert.Contains(t, result, "** Trade: EUR_USD (01HQXYZA)")
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":ID: 01HQXYZABCDEFGHJKMNPQRSTVW")
	assert.Contains(t, result, ":TIME: 2024-03-15T10:30:45Z")
	assert.Contains(t, result, ":OUTCOME: profit")
	assert.Contains(t, result, ":LOT_SIZE: 1")
	assert.Contains(t, result, ":PIPS: +30.0")
	assert.Contains(t, result, ":PNL: −199.00")
	assert.Contains(t, result, ":END:")
	assert.Contains(t, result, "| 1 | LONG | 1.1000 | 1.0950 | 1.1050 | 2% | +50.0 | +1.00 |")
	assert.Contains(t, result, "| 2 | LONG | 1.1000 | 1.0980 | 1.1100 | 10$ | −20.0 | −200.00 |")
	assert.Contains(t, result, "*** Notes\nbreakout")
}

func TestFormatTradeOrgSparse(t *testing.T) {
	t.Parallel()

	result := FormatTradeOrg(Entry{ID: "short"}, pnl.Summary{})

	assert.Contains(t, result, "** Trade: - (short)")
	assert.Contains(t, result, ":OUTCOME: -")
	assert.NotContains(t, result, ":TIME:")
	assert.NotContains(t, result, ":PIPS:")
	assert.NotContains(t, result, "| #")
	assert.NotContains(t, result, "*** Notes")
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	entries := []Entry{{ID: "one"}, {ID: "two"}}
	result := FormatTradesOrg(entries, nil)

	assert.Equal(t, 2, strings.Count(result, "** Trade:"))
	assert.Empty(t, FormatTradesOrg(nil, nil))
}
