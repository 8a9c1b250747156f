// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package ibflexsummary computes per-statement totals.
//
// Totals are accumulated as decimals so that summing many statement values
// does not accumulate binary floating-point error.
package ibflexsummary

import (
	"github.com/bufdev/ibflex/internal/pkg/ibkrflexstatement"
	"github.com/shopspring/decimal"
)

// Summary holds the totals of a single statement.
type Summary struct {
	AccountID string `json:"account_id"`
	// FromDate and ToDate are the statement period, empty if the statement header omits them.
	FromDate string `json:"from_date,omitempty"`
	ToDate   string `json:"to_date,omitempty"`

	TradeCount int `json:"trade_count"`
	// BuyNotional is the sum of quantity times price over buy trades.
	BuyNotional decimal.Decimal `json:"buy_notional"`
	// SellNotional is the sum of the absolute quantity times price over sell trades.
	SellNotional decimal.Decimal `json:"sell_notional"`
	// Commissions is the sum of trade commissions. Charged commissions are negative.
	Commissions decimal.Decimal `json:"commissions"`

	OpenPositionCount int             `json:"open_position_count"`
	PositionValue     decimal.Decimal `json:"position_value"`
	UnrealizedPnl     decimal.Decimal `json:"unrealized_pnl"`

	// RealizedPnl and TotalFifoPnl are from the account-level FIFO performance
	// summary row. They are nil if the statement has no such row.
	RealizedPnl  *decimal.Decimal `json:"realized_pnl,omitempty"`
	TotalFifoPnl *decimal.Decimal `json:"total_fifo_pnl,omitempty"`

	// EndingCash is the ending cash of each cash report, in document order.
	EndingCash []*CurrencyAmount `json:"ending_cash"`
}

// CurrencyAmount is an amount in a currency.
type CurrencyAmount struct {
	Currency ibkrflexstatement.Currency `json:"currency"`
	Amount   decimal.Decimal            `json:"amount"`
}

// Summarize computes the Summary of a statement.
func Summarize(statement *ibkrflexstatement.Statement) *Summary {
	summary := &Summary{
		AccountID:         statement.AccountInformation.AccountID,
		FromDate:          stringValue(statement.FromDate),
		ToDate:            stringValue(statement.ToDate),
		TradeCount:        len(statement.Trades),
		BuyNotional:       decimal.Zero,
		SellNotional:      decimal.Zero,
		Commissions:       decimal.Zero,
		OpenPositionCount: len(statement.OpenPositions),
		PositionValue:     decimal.Zero,
		UnrealizedPnl:     decimal.Zero,
		EndingCash:        make([]*CurrencyAmount, 0, len(statement.CashReports)),
	}
	for _, trade := range statement.Trades {
		notional := decimal.NewFromFloat(trade.Quantity).Mul(decimal.NewFromFloat(trade.Price)).Abs()
		switch trade.Side {
		case ibkrflexstatement.TradeSideBuy:
			summary.BuyNotional = summary.BuyNotional.Add(notional)
		case ibkrflexstatement.TradeSideSell:
			summary.SellNotional = summary.SellNotional.Add(notional)
		}
		summary.Commissions = summary.Commissions.Add(decimal.NewFromFloat(trade.Commission))
	}
	for _, openPosition := range statement.OpenPositions {
		summary.PositionValue = summary.PositionValue.Add(decimal.NewFromFloat(openPosition.PositionValue))
		summary.UnrealizedPnl = summary.UnrealizedPnl.Add(decimal.NewFromFloat(openPosition.FifoPnlUnrealized))
	}
	for _, fifoPerformanceSummary := range statement.FIFOPerformanceSummaries {
		if !fifoPerformanceSummary.IsAggregate() {
			continue
		}
		realizedPnl := decimal.NewFromFloat(fifoPerformanceSummary.TotalRealizedPnl)
		totalFifoPnl := decimal.NewFromFloat(fifoPerformanceSummary.TotalFifoPnl)
		summary.RealizedPnl = &realizedPnl
		summary.TotalFifoPnl = &totalFifoPnl
	}
	for _, cashReport := range statement.CashReports {
		summary.EndingCash = append(
			summary.EndingCash,
			&CurrencyAmount{
				Currency: cashReport.Currency,
				Amount:   decimal.NewFromFloat(cashReport.EndingCash),
			},
		)
	}
	return summary
}

// SummarizeAll computes the Summary of each statement, in order.
func SummarizeAll(statements []*ibkrflexstatement.Statement) []*Summary {
	summaries := make([]*Summary, 0, len(statements))
	for _, statement := range statements {
		summaries = append(summaries, Summarize(statement))
	}
	return summaries
}

// *** PRIVATE ***

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
