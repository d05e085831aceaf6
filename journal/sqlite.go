package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/tradebook/internal/id"
)

// createdAtLayout is fixed width so created_at sorts correctly as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

type SQLite struct {
	db  *sql.DB
	now func() time.Time
}

var _ Store = (*SQLite)(nil)

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db, now: time.Now}, nil
}

// SaveTrade inserts e or updates it in place, replacing its legs. A missing ID
// is minted and a missing CreatedAt is stamped with the current time. Updates
// keep the trade's original position in ListTrades.
func (j *SQLite) SaveTrade(ctx context.Context, e Entry) error {
	if e.UserID == "" {
		return errors.New("save trade: user id is required")
	}
	if e.CreatedAt == "" {
		e.CreatedAt = j.now().UTC().Format(createdAtLayout)
	}
	if e.ID == "" {
		e.ID = id.New()
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var owner string
	err = tx.QueryRowContext(ctx, `SELECT user_id FROM trades WHERE id = ?`, e.ID).Scan(&owner)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return err
	case owner != e.UserID:
		return fmt.Errorf("save trade %q: owned by another user", e.ID)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO trades
		(id, user_id, instrument, date, open_time, close_time, created_at, outcome, lot_size, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			instrument = excluded.instrument,
			date = excluded.date,
			open_time = excluded.open_time,
			close_time = excluded.close_time,
			created_at = excluded.created_at,
			outcome = excluded.outcome,
			lot_size = excluded.lot_size,
			notes = excluded.notes`,
		e.ID, e.UserID, e.Instrument, e.Date, e.OpenTime, e.CloseTime,
		e.CreatedAt, e.Outcome, e.LotSize, e.Notes,
	)
	if err != nil {
		return fmt.Errorf("upsert trade: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM legs WHERE trade_id = ?`, e.ID); err != nil {
		return err
	}
	for i, l := range e.Legs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO legs
			(trade_id, idx, entry_price, stop_loss_price, take_profit_price, position, outcome, risk, pips)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, i, l.EntryPrice, l.StopLossPrice, l.TakeProfitPrice,
			l.Position, l.Outcome, l.Risk, l.Pips,
		)
		if err != nil {
			return fmt.Errorf("insert leg %d: %w", i, err)
		}
	}

	return tx.Commit()
}

func (j *SQLite) DeleteTrade(ctx context.Context, userID, tradeID string) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM trades WHERE id = ? AND user_id = ?`, tradeID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("delete %q: %w", tradeID, ErrNotFound)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM legs WHERE trade_id = ?`, tradeID); err != nil {
		return err
	}
	return tx.Commit()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
