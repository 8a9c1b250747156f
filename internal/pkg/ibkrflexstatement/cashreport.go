// Copyright 2026 Peter Edge
//
// All rights reserved.

package ibkrflexstatement

import "github.com/bufdev/ibflex/internal/pkg/xmltree"

// CashReport is one currency line of the cash report.
//
// Statements from different periods and query configurations differ in which
// fields they carry. Month-to-date and year-to-date figures are absent from
// some statements, and net trades are reported either as one combined figure
// or split into purchases and sales. All of these are optional.
type CashReport struct {
	AccountID string   `json:"account_id"`
	Currency  Currency `json:"currency"`
	// StartTimestampMillis is the first millisecond of the reporting period,
	// one millisecond after the close of the day before fromDate.
	StartTimestampMillis int64 `json:"start_timestamp_ms"`
	// EndTimestampMillis is the close of toDate.
	EndTimestampMillis int64 `json:"end_timestamp_ms"`

	StartingCash      float64 `json:"starting_cash"`
	EndingCash        float64 `json:"ending_cash"`
	EndingSettledCash float64 `json:"ending_settled_cash"`

	NetTrades          *float64 `json:"net_trades,omitempty"`
	NetTradesPurchases *float64 `json:"net_trades_purchases,omitempty"`
	NetTradesSales     *float64 `json:"net_trades_sales,omitempty"`

	Commissions    float64  `json:"commissions"`
	CommissionsMTD *float64 `json:"commissions_mtd,omitempty"`
	CommissionsYTD *float64 `json:"commissions_ytd,omitempty"`

	OtherFees    float64  `json:"other_fees"`
	OtherFeesMTD *float64 `json:"other_fees_mtd,omitempty"`
	OtherFeesYTD *float64 `json:"other_fees_ytd,omitempty"`

	Dividends    float64  `json:"dividends"`
	DividendsMTD *float64 `json:"dividends_mtd,omitempty"`
	DividendsYTD *float64 `json:"dividends_ytd,omitempty"`

	// Interest is the brokerInterest attribute.
	Interest    float64  `json:"interest"`
	InterestMTD *float64 `json:"interest_mtd,omitempty"`
	InterestYTD *float64 `json:"interest_ytd,omitempty"`

	Deposits    float64  `json:"deposits"`
	DepositsMTD *float64 `json:"deposits_mtd,omitempty"`
	DepositsYTD *float64 `json:"deposits_ytd,omitempty"`

	Withdrawals    float64  `json:"withdrawals"`
	WithdrawalsMTD *float64 `json:"withdrawals_mtd,omitempty"`
	WithdrawalsYTD *float64 `json:"withdrawals_ytd,omitempty"`

	OtherIncome    *float64 `json:"other_income,omitempty"`
	OtherIncomeMTD *float64 `json:"other_income_mtd,omitempty"`
	OtherIncomeYTD *float64 `json:"other_income_ytd,omitempty"`

	BrokerFees    *float64 `json:"broker_fees,omitempty"`
	BrokerFeesMTD *float64 `json:"broker_fees_mtd,omitempty"`
	BrokerFeesYTD *float64 `json:"broker_fees_ytd,omitempty"`
}

func decodeCashReport(element *xmltree.Element, decodeContext *decodeContext) (*CashReport, error) {
	r := newFieldReader(RecordKindCashReport, element, decodeContext)
	cashReport := &CashReport{
		AccountID:            r.requiredString("accountId"),
		Currency:             r.currency("currency"),
		StartTimestampMillis: r.periodStart("fromDate"),
		EndTimestampMillis:   r.closeInstant("toDate"),

		StartingCash:      r.requiredFloat64("startingCash"),
		EndingCash:        r.requiredFloat64("endingCash"),
		EndingSettledCash: r.requiredFloat64("endingSettledCash"),

		NetTrades:          r.optionalFloat64("netTrades"),
		NetTradesPurchases: r.optionalFloat64("netTradesPurchases"),
		NetTradesSales:     r.optionalFloat64("netTradesSales"),

		Commissions:    r.requiredFloat64("commissions"),
		CommissionsMTD: r.optionalFloat64("commissionsMTD"),
		CommissionsYTD: r.optionalFloat64("commissionsYTD"),

		OtherFees:    r.requiredFloat64("otherFees"),
		OtherFeesMTD: r.optionalFloat64("otherFeesMTD"),
		OtherFeesYTD: r.optionalFloat64("otherFeesYTD"),

		Dividends:    r.requiredFloat64("dividends"),
		DividendsMTD: r.optionalFloat64("dividendsMTD"),
		DividendsYTD: r.optionalFloat64("dividendsYTD"),

		Interest:    r.requiredFloat64("brokerInterest"),
		InterestMTD: r.optionalFloat64("brokerInterestMTD"),
		InterestYTD: r.optionalFloat64("brokerInterestYTD"),

		Deposits:    r.requiredFloat64("deposits"),
		DepositsMTD: r.optionalFloat64("depositsMTD"),
		DepositsYTD: r.optionalFloat64("depositsYTD"),

		Withdrawals:    r.requiredFloat64("withdrawals"),
		WithdrawalsMTD: r.optionalFloat64("withdrawalsMTD"),
		WithdrawalsYTD: r.optionalFloat64("withdrawalsYTD"),

		OtherIncome:    r.optionalFloat64("otherIncome"),
		OtherIncomeMTD: r.optionalFloat64("otherIncomeMTD"),
		OtherIncomeYTD: r.optionalFloat64("otherIncomeYTD"),

		BrokerFees:    r.optionalFloat64("brokerFees"),
		BrokerFeesMTD: r.optionalFloat64("brokerFeesMTD"),
		BrokerFeesYTD: r.optionalFloat64("brokerFeesYTD"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return cashReport, nil
}
