// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package ibflexstore stores decoded statements in SQLite.
//
// Each call to Import is recorded under a ULID. Trades are keyed by account
// and execution ID, so importing overlapping statements does not duplicate
// trades. Open positions and cash reports are snapshots and are stored per import.
package ibflexstore

import (
	"context"
	cryptorand "crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/bufdev/ibflex/internal/pkg/ibkrflexstatement"
	_ "github.com/mattn/go-sqlite3"
	"github.com/oklog/ulid/v2"
)

// Import is a recorded call to Store.Import.
type Import struct {
	ID             ulid.ULID
	Source         string
	ImportedAt     time.Time
	StatementCount int
}

// Store is a SQLite statement store.
type Store struct {
	logger *slog.Logger
	db     *sql.DB

	lock    sync.Mutex
	entropy io.Reader
}

// Open opens the SQLite database at path, creating it and its schema if needed.
func Open(logger *slog.Logger, path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// A single connection serializes writers and keeps in-memory databases shared.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(Schema); err != nil {
		return nil, errors.Join(fmt.Errorf("creating schema: %w", err), db.Close())
	}
	return &Store{
		logger:  logger,
		db:      db,
		entropy: ulid.Monotonic(cryptorand.Reader, 0),
	}, nil
}

// Import stores the statements in one transaction and returns the ID of the import.
//
// The source describes where the statements came from, such as a file path.
func (s *Store) Import(ctx context.Context, source string, statements []*ibkrflexstatement.Statement) (_ ulid.ULID, retErr error) {
	now := time.Now()
	importID, err := s.newID(now)
	if err != nil {
		return ulid.ULID{}, err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ulid.ULID{}, err
	}
	defer func() {
		if retErr != nil {
			retErr = errors.Join(retErr, tx.Rollback())
		}
	}()
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO imports (import_id, source, imported_at_ms, statement_count) VALUES (?, ?, ?, ?)`,
		importID.String(), source, now.UnixMilli(), len(statements),
	); err != nil {
		return ulid.ULID{}, fmt.Errorf("inserting import: %w", err)
	}
	var newTradeCount int64
	for i, statement := range statements {
		count, err := insertStatement(ctx, tx, importID.String(), i, statement)
		if err != nil {
			return ulid.ULID{}, fmt.Errorf("inserting statement %d: %w", i+1, err)
		}
		newTradeCount += count
	}
	if err := tx.Commit(); err != nil {
		return ulid.ULID{}, err
	}
	s.logger.Info(
		"statements imported",
		"import_id", importID.String(),
		"source", source,
		"statements", len(statements),
		"new_trades", newTradeCount,
	)
	return importID, nil
}

// ListImports returns all imports, oldest first.
func (s *Store) ListImports(ctx context.Context) ([]*Import, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT import_id, source, imported_at_ms, statement_count FROM imports ORDER BY import_id`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var imports []*Import
	for rows.Next() {
		var (
			importID       string
			source         string
			importedAtMS   int64
			statementCount int
		)
		if err := rows.Scan(&importID, &source, &importedAtMS, &statementCount); err != nil {
			return nil, err
		}
		id, err := ulid.ParseStrict(importID)
		if err != nil {
			return nil, fmt.Errorf("invalid import ID %q: %w", importID, err)
		}
		imports = append(
			imports,
			&Import{
				ID:             id,
				Source:         source,
				ImportedAt:     time.UnixMilli(importedAtMS),
				StatementCount: statementCount,
			},
		)
	}
	return imports, rows.Err()
}

// ListTrades returns the trades of the account ordered by execution time.
func (s *Store) ListTrades(ctx context.Context, accountID string) ([]*ibkrflexstatement.Trade, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+tradeColumns+` FROM trades WHERE account_id = ? ORDER BY execution_timestamp_ms, execution_id`,
		accountID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var trades []*ibkrflexstatement.Trade
	for rows.Next() {
		trade, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		trades = append(trades, trade)
	}
	return trades, rows.Err()
}

// CountOpenPositions returns the number of open position snapshots stored for the import.
func (s *Store) CountOpenPositions(ctx context.Context, importID ulid.ULID) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM open_positions WHERE import_id = ?`, importID.String())
}

// CountCashReports returns the number of cash reports stored for the import.
func (s *Store) CountCashReports(ctx context.Context, importID ulid.ULID) (int, error) {
	return s.count(ctx, `SELECT COUNT(*) FROM cash_reports WHERE import_id = ?`, importID.String())
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// *** PRIVATE ***

func (s *Store) newID(now time.Time) (ulid.ULID, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	return ulid.New(ulid.Timestamp(now), s.entropy)
}

func (s *Store) count(ctx context.Context, query string, args ...any) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
