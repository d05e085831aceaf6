package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/tradebook/trade"
)

const tradeColumns = `id, user_id, instrument, date, open_time, close_time, created_at, outcome, lot_size, notes`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var e Entry
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Instrument,
		&e.Date,
		&e.OpenTime,
		&e.CloseTime,
		&e.CreatedAt,
		&e.Outcome,
		&e.LotSize,
		&e.Notes,
	)
	return e, err
}

// GetTrade returns a single trade owned by userID.
func (j *SQLite) GetTrade(ctx context.Context, userID, tradeID string) (Entry, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE id = ? AND user_id = ?`, tradeID, userID)

	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
		}
		return Entry{}, err
	}

	legs, err := j.legs(ctx, []string{e.ID})
	if err != nil {
		return Entry{}, err
	}
	e.Legs = legs[e.ID]
	return e, nil
}

// ListTrades returns every trade owned by userID ordered by created_at, with
// trades stamped at the same instant kept in insertion order.
func (j *SQLite) ListTrades(ctx context.Context, userID string) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trades
		WHERE user_id = ?
		ORDER BY created_at ASC, rowid ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	var ids []string
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	legs, err := j.legs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Legs = legs[out[i].ID]
	}
	return out, nil
}

// ListTradesBetween returns trades whose resolved time is within [start, end).
// Dates are stored as typed, so the filter runs after loading.
func (j *SQLite) ListTradesBetween(ctx context.Context, userID string, start, end time.Time) ([]Entry, error) {
	all, err := j.ListTrades(ctx, userID)
	if err != nil {
		return nil, err
	}

	var out []Entry
	for _, e := range all {
		at, ok := e.Times().ResolveTime()
		if !ok {
			continue
		}
		if !at.Before(start) && at.Before(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (j *SQLite) legs(ctx context.Context, tradeIDs []string) (map[string][]Leg, error) {
	out := make(map[string][]Leg, len(tradeIDs))
	if len(tradeIDs) == 0 {
		return out, nil
	}

	stmt, err := j.db.PrepareContext(ctx, `
		SELECT entry_price, stop_loss_price, take_profit_price, position, outcome, risk, pips
		FROM legs
		WHERE trade_id = ?
		ORDER BY idx ASC`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	for _, tid := range tradeIDs {
		rows, err := stmt.QueryContext(ctx, tid)
		if err != nil {
			return nil, err
		}
		for rows.Next() {
			var l Leg
			if err := rows.Scan(
				&l.EntryPrice,
				&l.StopLossPrice,
				&l.TakeProfitPrice,
				&l.Position,
				&l.Outcome,
				&l.Risk,
				&l.Pips,
			); err != nil {
				rows.Close()
				return nil, err
			}
			out[tid] = append(out[tid], l)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Times returns a Record carrying only e's timestamp candidates.
func (e Entry) Times() trade.Record {
	return trade.Record{
		Date:      e.Date,
		OpenTime:  e.OpenTime,
		CloseTime: e.CloseTime,
		CreatedAt: e.CreatedAt,
	}
}
