// Copyright 2026 Peter Edge
//
// All rights reserved.

package ibkrflexstatement

import "github.com/bufdev/ibflex/internal/pkg/xmltree"

// AccountInformation identifies the account a statement belongs to.
type AccountInformation struct {
	AccountID    string  `json:"account_id"`
	AccountType  *string `json:"account_type,omitempty"`
	CustomerType *string `json:"customer_type,omitempty"`
}

func decodeAccountInformation(element *xmltree.Element, decodeContext *decodeContext) (*AccountInformation, error) {
	r := newFieldReader(RecordKindAccountInformation, element, decodeContext)
	accountInformation := &AccountInformation{
		AccountID:    r.requiredString("accountId"),
		AccountType:  r.optionalString("accountType"),
		CustomerType: r.optionalString("customerType"),
	}
	if r.err != nil {
		return nil, r.err
	}
	return accountInformation, nil
}
