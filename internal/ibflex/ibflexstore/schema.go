// Copyright 2026 Peter Edge
//
// All rights reserved.

package ibflexstore

// Schema is the SQLite schema. Every statement is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS imports (
	import_id       TEXT PRIMARY KEY,
	source          TEXT NOT NULL,
	imported_at_ms  INTEGER NOT NULL,
	statement_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS statements (
	import_id         TEXT NOT NULL REFERENCES imports(import_id),
	statement_index   INTEGER NOT NULL,
	account_id        TEXT NOT NULL,
	from_date         TEXT,
	to_date           TEXT,
	when_generated_ms INTEGER,
	PRIMARY KEY (import_id, statement_index)
);

CREATE TABLE IF NOT EXISTS trades (
	account_id             TEXT NOT NULL,
	execution_id           TEXT NOT NULL,
	import_id              TEXT NOT NULL REFERENCES imports(import_id),
	asset_category         TEXT,
	commission             REAL NOT NULL,
	commission_currency    TEXT,
	conid                  INTEGER NOT NULL,
	currency               TEXT NOT NULL,
	execution_exchange     TEXT NOT NULL,
	execution_timestamp_ms INTEGER NOT NULL,
	listing_exchange       TEXT NOT NULL,
	open_close_indicator   TEXT NOT NULL,
	order_id               TEXT NOT NULL,
	order_type             TEXT NOT NULL,
	price                  REAL NOT NULL,
	quantity               REAL NOT NULL,
	side                   TEXT NOT NULL,
	symbol                 TEXT NOT NULL,
	trade_id               TEXT,
	proceeds               REAL,
	net_cash               REAL,
	fifo_pnl_realized      REAL,
	PRIMARY KEY (account_id, execution_id)
);

CREATE INDEX IF NOT EXISTS trades_execution_timestamp_ms ON trades (account_id, execution_timestamp_ms);

CREATE TABLE IF NOT EXISTS open_positions (
	import_id           TEXT NOT NULL REFERENCES imports(import_id),
	account_id          TEXT NOT NULL,
	conid               INTEGER NOT NULL,
	symbol              TEXT NOT NULL,
	asset_category      TEXT NOT NULL,
	currency            TEXT NOT NULL,
	side                TEXT NOT NULL,
	quantity            REAL NOT NULL,
	mark_price          REAL NOT NULL,
	position_value      REAL NOT NULL,
	cost_basis_price    REAL NOT NULL,
	fifo_pnl_unrealized REAL NOT NULL,
	timestamp_ms        INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS cash_reports (
	import_id           TEXT NOT NULL REFERENCES imports(import_id),
	account_id          TEXT NOT NULL,
	currency            TEXT NOT NULL,
	start_timestamp_ms  INTEGER NOT NULL,
	end_timestamp_ms    INTEGER NOT NULL,
	starting_cash       REAL NOT NULL,
	ending_cash         REAL NOT NULL,
	ending_settled_cash REAL NOT NULL
);
`
