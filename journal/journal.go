// Package journal stores trades the way the journal app persists them:
// numeric fields are kept as the strings the user typed. Entry.Record is the
// one place those strings are parsed.
package journal

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("trade not found")

// Entry is a stored trade.
type Entry struct {
	ID         string `json:"id"`
	UserID     string `json:"user_id"`
	Instrument string `json:"instrument"`

	Date      string `json:"date,omitempty"`
	OpenTime  string `json:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`

	Outcome string `json:"outcome"`
	LotSize string `json:"lot_size"`
	Notes   string `json:"notes,omitempty"`

	Legs []Leg `json:"legs"`
}

// Leg is a stored trade leg. Risk keeps any "%" or currency suffix so the
// percentage/absolute reading can be inferred later.
type Leg struct {
	EntryPrice      string `json:"entry_price"`
	StopLossPrice   string `json:"stop_loss_price"`
	TakeProfitPrice string `json:"take_profit_price"`
	Position        string `json:"position"`
	Outcome         string `json:"outcome"`
	Risk            string `json:"risk"`
	Pips            string `json:"pips"`
}

// Store is the persistence boundary used by the CLI and the API.
type Store interface {
	SaveTrade(ctx context.Context, e Entry) error
	GetTrade(ctx context.Context, userID, tradeID string) (Entry, error)
	ListTrades(ctx context.Context, userID string) ([]Entry, error)
	ListTradesBetween(ctx context.Context, userID string, start, end time.Time) ([]Entry, error)
	DeleteTrade(ctx context.Context, userID, tradeID string) error
	Close() error
}
