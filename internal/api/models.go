package api

import (
	"github.com/rustyeddy/tradebook/journal"
	"github.com/rustyeddy/tradebook/pnl"
)

// TradeView is a stored trade with its derived pips and P/L.
type TradeView struct {
	journal.Entry
	Summary pnl.Summary `json:"summary"`
}

// PipsRequest is the body of POST /calc/pips. Missing prices are null.
type PipsRequest struct {
	EntryPrice      *float64 `json:"entry_price"`
	TakeProfitPrice *float64 `json:"take_profit_price"`
	StopLossPrice   *float64 `json:"stop_loss_price"`
	Position        string   `json:"position" binding:"required"`
	Outcome         string   `json:"outcome"`
}

type PipsResponse struct {
	Pips               *float64 `json:"pips"`
	Formatted          string   `json:"formatted"`
	StopLossDistance   *float64 `json:"stop_loss_distance"`
	TakeProfitDistance *float64 `json:"take_profit_distance"`
	RewardRisk         *float64 `json:"reward_risk"`
}

// PnlRequest is the body of POST /calc/pnl. Risk is a string so "2%" and
// "50$" carry their meaning.
type PnlRequest struct {
	Pips    *float64 `json:"pips"`
	LotSize *float64 `json:"lot_size"`
	Risk    string   `json:"risk"`
	Outcome string   `json:"outcome"`
}

type PnlResponse struct {
	Pnl              *float64 `json:"pnl"`
	Formatted        string   `json:"formatted"`
	RiskIsPercentage bool     `json:"risk_is_percentage"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
