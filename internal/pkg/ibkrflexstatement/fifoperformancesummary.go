// Copyright 2026 Peter Edge
//
// All rights reserved.

package ibkrflexstatement

import "github.com/bufdev/ibflex/internal/pkg/xmltree"

// FIFOPerformanceSummary is the realized and unrealized profit and loss for one
// underlying under first-in-first-out lot accounting.
//
// A statement also carries one row with blank instrument fields that holds the
// totals across all underlyings. Its Symbol, Conid, ListingExchange, and
// AssetCategory are nil.
type FIFOPerformanceSummary struct {
	AccountID string `json:"account_id"`
	// TimestampMillis is the close of the report date.
	TimestampMillis int64 `json:"timestamp_ms"`

	Symbol          *string `json:"symbol,omitempty"`
	Conid           *uint32 `json:"conid,omitempty"`
	ListingExchange *string `json:"listing_exchange,omitempty"`
	// AssetCategory is the assetCategory attribute as reported.
	AssetCategory *string `json:"asset_category,omitempty"`

	RealizedSTProfit   float64 `json:"realized_st_profit"`
	RealizedSTLoss     float64 `json:"realized_st_loss"`
	UnrealizedSTProfit float64 `json:"unrealized_st_profit"`
	UnrealizedSTLoss   float64 `json:"unrealized_st_loss"`

	RealizedLTProfit   float64 `json:"realized_lt_profit"`
	RealizedLTLoss     float64 `json:"realized_lt_loss"`
	UnrealizedLTProfit float64 `json:"unrealized_lt_profit"`
	UnrealizedLTLoss   float64 `json:"unrealized_lt_loss"`

	TotalRealizedPnl float64 `json:"total_realized_pnl"`
	TotalFifoPnl     float64 `json:"total_fifo_pnl"`
}

// IsAggregate returns true if the row is the total across all underlyings.
func (f *FIFOPerformanceSummary) IsAggregate() bool {
	return f.Symbol == nil && f.Conid == nil && f.ListingExchange == nil && f.AssetCategory == nil
}

func decodeFIFOPerformanceSummary(element *xmltree.Element, decodeContext *decodeContext) (*FIFOPerformanceSummary, error) {
	r := newFieldReader(RecordKindFIFOPerformanceSummary, element, decodeContext)
	fifoPerformanceSummary := &FIFOPerformanceSummary{
		AccountID:       r.requiredString("accountId"),
		TimestampMillis: r.closeInstant("reportDate"),

		Symbol:          r.optionalString("symbol"),
		Conid:           r.optionalUint32("conid"),
		ListingExchange: r.optionalString("listingExchange"),
		AssetCategory:   r.optionalString("assetCategory"),

		RealizedSTProfit:   r.requiredFloat64("realizedSTProfit"),
		RealizedSTLoss:     r.requiredFloat64("realizedSTLoss"),
		UnrealizedSTProfit: r.requiredFloat64("unrealizedSTProfit"),
		UnrealizedSTLoss:   r.requiredFloat64("unrealizedSTLoss"),

		RealizedLTProfit:   r.requiredFloat64("realizedLTProfit"),
		RealizedLTLoss:     r.requiredFloat64("realizedLTLoss"),
		UnrealizedLTProfit: r.requiredFloat64("unrealizedLTProfit"),
		UnrealizedLTLoss:   r.requiredFloat64("unrealizedLTLoss"),

		TotalRealizedPnl: r.requiredFloat64("totalRealizedPnl"),
		TotalFifoPnl:     r.requiredFloat64("totalFifoPnl"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return fifoPerformanceSummary, nil
}
