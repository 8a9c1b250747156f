// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package ibkrflexstatement decodes IBKR Flex Query XML statements into typed records.
//
// A Flex Query response contains one FlexStatement element per account and
// reporting period. Each statement holds exactly one AccountInformation element
// and any number of records of the kinds listed by RecordKind, all of which
// carry their data as flat string attributes.
//
// Decoding is strict. Every required attribute must be present and parse, and
// every enumerated attribute must hold a recognized tag. The first failure
// aborts the whole document; no partial statements are returned.
//
// Optional attributes decode to nil pointers when absent or blank, never to zero.
//
// Timestamps are epoch milliseconds. Report dates are converted to the
// trading-day close (20:00 America/New_York by default), and trade execution
// times are converted using a timezone abbreviation table.
package ibkrflexstatement

// RecordKind is a kind of record in a Flex statement.
type RecordKind int

const (
	// RecordKindStatement is the FlexStatement element itself, decoded for its header attributes.
	RecordKindStatement RecordKind = iota + 1
	// RecordKindAccountInformation is the account identity, exactly one per statement.
	RecordKindAccountInformation
	// RecordKindCashReport is one currency line of the cash report.
	RecordKindCashReport
	// RecordKindEquitySummary is one report date of the equity summary in base currency.
	RecordKindEquitySummary
	// RecordKindFIFOPerformanceSummary is one underlying of the FIFO performance summary.
	RecordKindFIFOPerformanceSummary
	// RecordKindNetStockPosition is one net stock position.
	RecordKindNetStockPosition
	// RecordKindOpenPosition is one open position.
	RecordKindOpenPosition
	// RecordKindTrade is one trade execution.
	RecordKindTrade
)

// String returns the XML element name of the record kind.
func (r RecordKind) String() string {
	if info, ok := recordKindToInfo[r]; ok {
		return info.elementName
	}
	return "RecordKind(unknown)"
}

// ContainerName returns the name of the section element that the records of
// this kind are grouped in, or empty if the records appear directly in the statement.
func (r RecordKind) ContainerName() string {
	return recordKindToInfo[r].containerName
}

// Statement is one decoded FlexStatement.
type Statement struct {
	// AccountID is the accountId attribute of the FlexStatement element, if present.
	AccountID *string `json:"account_id,omitempty"`
	// FromDate is the first date of the reporting period as reported, if present.
	FromDate *string `json:"from_date,omitempty"`
	// ToDate is the last date of the reporting period as reported, if present.
	ToDate *string `json:"to_date,omitempty"`
	// Period is the named reporting period, such as "LastBusinessDay", if present.
	Period *string `json:"period,omitempty"`
	// WhenGenerated is the whenGenerated attribute as reported, if present.
	WhenGenerated *string `json:"when_generated,omitempty"`
	// WhenGeneratedMillis is WhenGenerated resolved with the abbreviation table.
	// It is nil if WhenGenerated is absent or does not resolve.
	WhenGeneratedMillis *int64 `json:"when_generated_ms,omitempty"`

	AccountInformation       *AccountInformation       `json:"account_information"`
	CashReports              []*CashReport             `json:"cash_reports"`
	EquitySummaries          []*EquitySummary          `json:"equity_summaries"`
	FIFOPerformanceSummaries []*FIFOPerformanceSummary `json:"fifo_performance_summaries"`
	NetStockPositions        []*NetStockPosition       `json:"net_stock_positions"`
	OpenPositions            []*OpenPosition           `json:"open_positions"`
	Trades                   []*Trade                  `json:"trades"`
}

// *** PRIVATE ***

const flexStatementElementName = "FlexStatement"

type recordKindInfo struct {
	elementName   string
	containerName string
}

var recordKindToInfo = map[RecordKind]recordKindInfo{
	RecordKindStatement: {
		elementName: flexStatementElementName,
	},
	RecordKindAccountInformation: {
		elementName: "AccountInformation",
	},
	RecordKindCashReport: {
		elementName:   "CashReportCurrency",
		containerName: "CashReport",
	},
	RecordKindEquitySummary: {
		elementName:   "EquitySummaryByReportDateInBase",
		containerName: "EquitySummaryInBase",
	},
	RecordKindFIFOPerformanceSummary: {
		elementName:   "FIFOPerformanceSummaryUnderlying",
		containerName: "FIFOPerformanceSummaryInBase",
	},
	RecordKindNetStockPosition: {
		elementName:   "NetStockPosition",
		containerName: "NetStockPositionSummary",
	},
	RecordKindOpenPosition: {
		elementName:   "OpenPosition",
		containerName: "OpenPositions",
	},
	RecordKindTrade: {
		elementName:   "Trade",
		containerName: "Trades",
	},
}
