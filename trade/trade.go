// Package trade defines the journal's trade model: legs priced against a
// stop-loss and take-profit, and the records consumed by the capital
// simulation.
package trade

import (
	"strings"
	"time"
)

type Position string

const (
	Long  Position = "LONG"
	Short Position = "SHORT"
)

func (p Position) Valid() bool {
	return p == Long || p == Short
}

// ParsePosition accepts any case of "long"/"short" (and "buy"/"sell").
func ParsePosition(s string) (Position, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LONG", "BUY":
		return Long, true
	case "SHORT", "SELL":
		return Short, true
	}
	return "", false
}

type Outcome string

const (
	Unset  Outcome = "unset"
	Profit Outcome = "profit"
	Loss   Outcome = "loss"
)

func (o Outcome) Valid() bool {
	return o == Unset || o == Profit || o == Loss
}

// Resolved reports whether the outcome is profit or loss.
func (o Outcome) Resolved() bool {
	return o == Profit || o == Loss
}

// ParseOutcome maps free-form input to an Outcome. Empty input is Unset.
func ParseOutcome(s string) (Outcome, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unset", "open":
		return Unset, true
	case "profit", "win", "tp":
		return Profit, true
	case "loss", "lose", "sl":
		return Loss, true
	}
	return "", false
}

// Leg is one priced scenario within a trade. Nil prices are missing.
type Leg struct {
	EntryPrice      *float64 `json:"entry_price"`
	StopLossPrice   *float64 `json:"stop_loss_price"`
	TakeProfitPrice *float64 `json:"take_profit_price"`
	Position        Position `json:"position"`
	Outcome         Outcome  `json:"outcome"`
}

// Record is a trade as consumed by the capital simulation. Risk, RiskIsPercentage
// and Pips are per-leg and index-aligned with Legs when legs are present.
type Record struct {
	ID string `json:"id"`

	// Timestamp candidates, tried in this order by ResolveTime.
	Date      string `json:"date,omitempty"`
	OpenTime  string `json:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`

	Outcome          Outcome    `json:"outcome"`
	Risk             []*float64 `json:"risk"`
	RiskIsPercentage []bool     `json:"risk_is_percentage,omitempty"`
	Pips             []*float64 `json:"pips"`
	LotSize          *float64   `json:"lot_size"`

	Legs []Leg `json:"legs,omitempty"`
}

// RiskIsPercentageAt returns how the risk entry at i should be read,
// falling back to def when unknown.
func (r Record) RiskIsPercentageAt(i int, def bool) bool {
	if i >= 0 && i < len(r.RiskIsPercentage) {
		return r.RiskIsPercentage[i]
	}
	return def
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime parses s with the layouts accepted for trade timestamps.
// Layouts without a zone are read as UTC.
func ParseTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ResolveTime returns the first of Date, OpenTime, CloseTime and CreatedAt
// that parses. When none does it returns the Unix epoch and false.
func (r Record) ResolveTime() (time.Time, bool) {
	for _, c := range []string{r.Date, r.OpenTime, r.CloseTime, r.CreatedAt} {
		if t, ok := ParseTime(c); ok {
			return t, true
		}
	}
	return time.Unix(0, 0).UTC(), false
}
