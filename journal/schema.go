package journal

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	instrument TEXT NOT NULL DEFAULT '',
	date TEXT NOT NULL DEFAULT '',
	open_time TEXT NOT NULL DEFAULT '',
	close_time TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL DEFAULT '',
	lot_size TEXT NOT NULL DEFAULT '',
	notes TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS legs (
	trade_id TEXT NOT NULL,
	idx INTEGER NOT NULL,
	entry_price TEXT NOT NULL DEFAULT '',
	stop_loss_price TEXT NOT NULL DEFAULT '',
	take_profit_price TEXT NOT NULL DEFAULT '',
	position TEXT NOT NULL DEFAULT '',
	outcome TEXT NOT NULL DEFAULT '',
	risk TEXT NOT NULL DEFAULT '',
	pips TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (trade_id, idx)
);

CREATE INDEX IF NOT EXISTS idx_trades_user ON trades(user_id, created_at);
`
