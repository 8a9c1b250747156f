// Copyright 2026 Peter Edge
//
// All rights reserved.

package ibflexstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/bufdev/ibflex/internal/pkg/ibkrflexstatement"
)

const tradeColumns = `account_id, execution_id, asset_category, commission, commission_currency, conid,
	currency, execution_exchange, execution_timestamp_ms, listing_exchange, open_close_indicator,
	order_id, order_type, price, quantity, side, symbol, trade_id, proceeds, net_cash, fifo_pnl_realized`

// insertStatement inserts the records of a statement and returns the number of
// trades that were not already stored.
func insertStatement(ctx context.Context, tx *sql.Tx, importID string, index int, statement *ibkrflexstatement.Statement) (int64, error) {
	accountID := statement.AccountInformation.AccountID
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO statements (import_id, statement_index, account_id, from_date, to_date, when_generated_ms)
		VALUES (?, ?, ?, ?, ?, ?)`,
		importID, index, accountID,
		nullString(statement.FromDate), nullString(statement.ToDate), nullInt64(statement.WhenGeneratedMillis),
	); err != nil {
		return 0, err
	}
	var newTradeCount int64
	for _, trade := range statement.Trades {
		result, err := tx.ExecContext(
			ctx,
			`INSERT OR IGNORE INTO trades (import_id, `+tradeColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			importID,
			trade.AccountID,
			trade.ExecutionID,
			nullString(trade.AssetCategory),
			trade.Commission,
			nullString(trade.CommissionCurrency),
			trade.Conid,
			trade.Currency.String(),
			trade.ExecutionExchange,
			trade.ExecutionTimestampMillis,
			trade.ListingExchange,
			trade.OpenCloseIndicator.String(),
			trade.OrderID,
			trade.OrderType.String(),
			trade.Price,
			trade.Quantity,
			trade.Side.String(),
			trade.Symbol,
			nullString(trade.TradeID),
			nullFloat64(trade.Proceeds),
			nullFloat64(trade.NetCash),
			nullFloat64(trade.FifoPnlRealized),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting trade %s: %w", trade.ExecutionID, err)
		}
		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return 0, err
		}
		newTradeCount += rowsAffected
	}
	for _, openPosition := range statement.OpenPositions {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO open_positions (import_id, account_id, conid, symbol, asset_category, currency, side,
				quantity, mark_price, position_value, cost_basis_price, fifo_pnl_unrealized, timestamp_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			importID,
			openPosition.AccountID,
			openPosition.Conid,
			openPosition.Symbol,
			string(openPosition.AssetCategory),
			openPosition.Currency.String(),
			openPosition.Side.String(),
			openPosition.Quantity,
			openPosition.MarkPrice,
			openPosition.PositionValue,
			openPosition.CostBasisPrice,
			openPosition.FifoPnlUnrealized,
			openPosition.TimestampMillis,
		); err != nil {
			return 0, fmt.Errorf("inserting open position %s: %w", openPosition.Symbol, err)
		}
	}
	for _, cashReport := range statement.CashReports {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO cash_reports (import_id, account_id, currency, start_timestamp_ms, end_timestamp_ms,
				starting_cash, ending_cash, ending_settled_cash)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			importID,
			cashReport.AccountID,
			cashReport.Currency.String(),
			cashReport.StartTimestampMillis,
			cashReport.EndTimestampMillis,
			cashReport.StartingCash,
			cashReport.EndingCash,
			cashReport.EndingSettledCash,
		); err != nil {
			return 0, fmt.Errorf("inserting cash report %s: %w", cashReport.Currency, err)
		}
	}
	return newTradeCount, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(row scanner) (*ibkrflexstatement.Trade, error) {
	var (
		trade              ibkrflexstatement.Trade
		assetCategory      sql.NullString
		commissionCurrency sql.NullString
		currency           string
		openCloseIndicator string
		orderType          string
		side               string
		tradeID            sql.NullString
		proceeds           sql.NullFloat64
		netCash            sql.NullFloat64
		fifoPnlRealized    sql.NullFloat64
	)
	if err := row.Scan(
		&trade.AccountID,
		&trade.ExecutionID,
		&assetCategory,
		&trade.Commission,
		&commissionCurrency,
		&trade.Conid,
		&currency,
		&trade.ExecutionExchange,
		&trade.ExecutionTimestampMillis,
		&trade.ListingExchange,
		&openCloseIndicator,
		&trade.OrderID,
		&orderType,
		&trade.Price,
		&trade.Quantity,
		&side,
		&trade.Symbol,
		&tradeID,
		&proceeds,
		&netCash,
		&fifoPnlRealized,
	); err != nil {
		return nil, err
	}
	var err error
	trade.AssetCategory = stringPointer(assetCategory)
	if trade.Currency, err = ibkrflexstatement.ParseCurrency(currency); err != nil {
		return nil, err
	}
	trade.CommissionCurrency = stringPointer(commissionCurrency)
	if trade.OpenCloseIndicator, err = ibkrflexstatement.ParseOpenCloseIndicator(openCloseIndicator); err != nil {
		return nil, err
	}
	if trade.OrderType, err = ibkrflexstatement.ParseOrderType(orderType); err != nil {
		return nil, err
	}
	if trade.Side, err = ibkrflexstatement.ParseTradeSide(side); err != nil {
		return nil, err
	}
	trade.TradeID = stringPointer(tradeID)
	trade.Proceeds = float64Pointer(proceeds)
	trade.NetCash = float64Pointer(netCash)
	trade.FifoPnlRealized = float64Pointer(fifoPnlRealized)
	return &trade, nil
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

func nullFloat64(value *float64) sql.NullFloat64 {
	if value == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *value, Valid: true}
}

func nullInt64(value *int64) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *value, Valid: true}
}

func stringPointer(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}

func float64Pointer(value sql.NullFloat64) *float64 {
	if !value.Valid {
		return nil
	}
	return &value.Float64
}
