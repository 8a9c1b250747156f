// Copyright 2026 Peter Edge
//
// All rights reserved.

package ibkrflexstatement

import "github.com/bufdev/ibflex/internal/pkg/xmltree"

// Trade is one trade execution.
type Trade struct {
	AccountID string `json:"account_id"`
	// AssetCategory is the assetCategory attribute as reported, such as "STK" or "OPT".
	AssetCategory *string `json:"asset_category,omitempty"`
	// Commission is the ibCommission attribute. Commissions charged are negative.
	Commission float64 `json:"commission"`
	// CommissionCurrency is the ibCommissionCurrency attribute as reported.
	CommissionCurrency *string  `json:"commission_currency,omitempty"`
	Conid              uint32   `json:"conid"`
	Currency           Currency `json:"currency"`
	// ExecutionExchange is the exchange attribute, the venue the trade executed on.
	ExecutionExchange string `json:"execution_exchange"`
	// ExecutionID is the ibExecID attribute.
	ExecutionID string `json:"execution_id"`
	// ExecutionTimestampMillis is the dateTime attribute.
	ExecutionTimestampMillis int64              `json:"execution_timestamp_ms"`
	ListingExchange          string             `json:"listing_exchange"`
	OpenCloseIndicator       OpenCloseIndicator `json:"open_close_indicator"`
	// OrderID is the brokerageOrderID attribute.
	OrderID   string    `json:"order_id"`
	OrderType OrderType `json:"order_type"`
	// Price is the tradePrice attribute.
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	// Side is the buySell attribute.
	Side   TradeSide `json:"side"`
	Symbol string    `json:"symbol"`

	TradeID         *string  `json:"trade_id,omitempty"`
	Proceeds        *float64 `json:"proceeds,omitempty"`
	NetCash         *float64 `json:"net_cash,omitempty"`
	FifoPnlRealized *float64 `json:"fifo_pnl_realized,omitempty"`
}

func decodeTrade(element *xmltree.Element, decodeContext *decodeContext) (*Trade, error) {
	r := newFieldReader(RecordKindTrade, element, decodeContext)
	trade := &Trade{
		AccountID:                r.requiredString("accountId"),
		AssetCategory:            r.optionalString("assetCategory"),
		Commission:               r.requiredFloat64("ibCommission"),
		CommissionCurrency:       r.optionalString("ibCommissionCurrency"),
		Conid:                    r.requiredUint32("conid"),
		Currency:                 r.currency("currency"),
		ExecutionExchange:        r.requiredString("exchange"),
		ExecutionID:              r.requiredString("ibExecID"),
		ExecutionTimestampMillis: r.executionInstant("dateTime"),
		ListingExchange:          r.requiredString("listingExchange"),
		OpenCloseIndicator:       r.openCloseIndicator("openCloseIndicator"),
		OrderID:                  r.requiredString("brokerageOrderID"),
		OrderType:                r.orderType("orderType"),
		Price:                    r.requiredFloat64("tradePrice"),
		Quantity:                 r.requiredFloat64("quantity"),
		Side:                     r.tradeSide("buySell"),
		Symbol:                   r.requiredString("symbol"),
		TradeID:                  r.optionalString("tradeID"),
		Proceeds:                 r.optionalFloat64("proceeds"),
		NetCash:                  r.optionalFloat64("netCash"),
		FifoPnlRealized:          r.optionalFloat64("fifoPnlRealized"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return trade, nil
}
