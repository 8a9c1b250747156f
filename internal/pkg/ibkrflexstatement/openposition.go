// Copyright 2026 Peter Edge
//
// All rights reserved.

package ibkrflexstatement

import "github.com/bufdev/ibflex/internal/pkg/xmltree"

// OpenPosition is a position held at the end of the report date.
type OpenPosition struct {
	AccountID         string        `json:"account_id"`
	AssetCategory     AssetCategory `json:"asset_category"`
	Conid             uint32        `json:"conid"`
	CostBasisPrice    float64       `json:"cost_basis_price"`
	Currency          Currency      `json:"currency"`
	FifoPnlUnrealized float64       `json:"fifo_pnl_unrealized"`
	ListingExchange   string        `json:"listing_exchange"`
	MarkPrice         float64       `json:"mark_price"`
	// Quantity is the position attribute. It is negative for short positions.
	Quantity      float64      `json:"quantity"`
	PositionValue float64      `json:"position_value"`
	Side          PositionSide `json:"side"`
	Symbol        string       `json:"symbol"`
	// TimestampMillis is the close of the report date.
	TimestampMillis int64    `json:"timestamp_ms"`
	OpenPrice       *float64 `json:"open_price,omitempty"`
	PercentOfNAV    *float64 `json:"percent_of_nav,omitempty"`
}

func decodeOpenPosition(element *xmltree.Element, decodeContext *decodeContext) (*OpenPosition, error) {
	r := newFieldReader(RecordKindOpenPosition, element, decodeContext)
	openPosition := &OpenPosition{
		AccountID:         r.requiredString("accountId"),
		AssetCategory:     r.assetCategory("assetCategory"),
		Conid:             r.requiredUint32("conid"),
		CostBasisPrice:    r.requiredFloat64("costBasisPrice"),
		Currency:          r.currency("currency"),
		FifoPnlUnrealized: r.requiredFloat64("fifoPnlUnrealized"),
		ListingExchange:   r.requiredString("listingExchange"),
		MarkPrice:         r.requiredFloat64("markPrice"),
		Quantity:          r.requiredFloat64("position"),
		PositionValue:     r.requiredFloat64("positionValue"),
		Side:              r.positionSide("side"),
		Symbol:            r.requiredString("symbol"),
		TimestampMillis:   r.closeInstant("reportDate"),
		OpenPrice:         r.optionalFloat64("openPrice"),
		PercentOfNAV:      r.optionalFloat64("percentOfNAV"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return openPosition, nil
}
