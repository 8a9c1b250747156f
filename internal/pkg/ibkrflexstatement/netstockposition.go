// Copyright 2026 Peter Edge
//
// All rights reserved.

package ibkrflexstatement

import "github.com/bufdev/ibflex/internal/pkg/xmltree"

// NetStockPosition is the net share count held for one instrument.
type NetStockPosition struct {
	AccountID       string        `json:"account_id"`
	AssetCategory   AssetCategory `json:"asset_category"`
	Conid           uint32        `json:"conid"`
	Currency        Currency      `json:"currency"`
	ListingExchange string        `json:"listing_exchange"`
	NetShares       float64       `json:"net_shares"`
	Symbol          string        `json:"symbol"`
}

func decodeNetStockPosition(element *xmltree.Element, decodeContext *decodeContext) (*NetStockPosition, error) {
	r := newFieldReader(RecordKindNetStockPosition, element, decodeContext)
	netStockPosition := &NetStockPosition{
		AccountID:       r.requiredString("accountId"),
		AssetCategory:   r.assetCategory("assetCategory"),
		Conid:           r.requiredUint32("conid"),
		Currency:        r.currency("currency"),
		ListingExchange: r.requiredString("listingExchange"),
		NetShares:       r.requiredFloat64("netShares"),
		Symbol:          r.requiredString("symbol"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return netStockPosition, nil
}
