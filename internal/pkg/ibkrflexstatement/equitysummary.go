// Copyright 2026 Peter Edge
//
// All rights reserved.

package ibkrflexstatement

import "github.com/bufdev/ibflex/internal/pkg/xmltree"

// EquitySummary is the account equity in base currency for one report date.
type EquitySummary struct {
	AccountID string   `json:"account_id"`
	Currency  Currency `json:"currency"`
	// TimestampMillis is the close of the report date.
	TimestampMillis int64 `json:"timestamp_ms"`

	Cash      float64 `json:"cash"`
	CashLong  float64 `json:"cash_long"`
	CashShort float64 `json:"cash_short"`

	InterestAccruals      float64 `json:"interest_accruals"`
	InterestAccrualsLong  float64 `json:"interest_accruals_long"`
	InterestAccrualsShort float64 `json:"interest_accruals_short"`

	Stock      float64 `json:"stock"`
	StockLong  float64 `json:"stock_long"`
	StockShort float64 `json:"stock_short"`

	Total      *float64 `json:"total,omitempty"`
	TotalLong  *float64 `json:"total_long,omitempty"`
	TotalShort *float64 `json:"total_short,omitempty"`
}

func decodeEquitySummary(element *xmltree.Element, decodeContext *decodeContext) (*EquitySummary, error) {
	r := newFieldReader(RecordKindEquitySummary, element, decodeContext)
	equitySummary := &EquitySummary{
		AccountID:       r.requiredString("accountId"),
		Currency:        r.currency("currency"),
		TimestampMillis: r.closeInstant("reportDate"),

		Cash:      r.requiredFloat64("cash"),
		CashLong:  r.requiredFloat64("cashLong"),
		CashShort: r.requiredFloat64("cashShort"),

		InterestAccruals:      r.requiredFloat64("interestAccruals"),
		InterestAccrualsLong:  r.requiredFloat64("interestAccrualsLong"),
		InterestAccrualsShort: r.requiredFloat64("interestAccrualsShort"),

		Stock:      r.requiredFloat64("stock"),
		StockLong:  r.requiredFloat64("stockLong"),
		StockShort: r.requiredFloat64("stockShort"),

		Total:      r.optionalFloat64("total"),
		TotalLong:  r.optionalFloat64("totalLong"),
		TotalShort: r.optionalFloat64("totalShort"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return equitySummary, nil
}
