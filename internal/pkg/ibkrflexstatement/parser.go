// Copyright 2026 Peter Edge
//
// All rights reserved.

package ibkrflexstatement

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/bufdev/ibflex/internal/pkg/tradingtime"
	"github.com/bufdev/ibflex/internal/pkg/xmltree"
)

// Parser decodes Flex Query responses into Statements.
//
// A Parser is immutable after construction and safe for concurrent use.
type Parser struct {
	logger        *slog.Logger
	decodeContext *decodeContext
}

// ParserOption is a functional option for configuring the Parser.
type ParserOption func(*parserOptions)

// ParserWithLogger sets the logger. Unrecognized statement sections are logged at debug level.
//
// The default discards all output.
func ParserWithLogger(logger *slog.Logger) ParserOption {
	return func(parserOptions *parserOptions) {
		parserOptions.logger = logger
	}
}

// ParserWithAbbreviationTable sets the table used to resolve the timezone
// abbreviations of execution times.
//
// The default is tradingtime.DefaultAbbreviationTable.
func ParserWithAbbreviationTable(abbreviationTable tradingtime.AbbreviationTable) ParserOption {
	return func(parserOptions *parserOptions) {
		parserOptions.abbreviationTable = &abbreviationTable
	}
}

// ParserWithAssetCategorySet sets the recognized asset categories.
//
// The default is DefaultAssetCategorySet.
func ParserWithAssetCategorySet(assetCategorySet AssetCategorySet) ParserOption {
	return func(parserOptions *parserOptions) {
		parserOptions.assetCategorySet = &assetCategorySet
	}
}

// ParserWithReferenceLocation sets the location that report dates close in.
//
// The default is tradingtime.ReferenceTimezone.
func ParserWithReferenceLocation(referenceLocation *time.Location) ParserOption {
	return func(parserOptions *parserOptions) {
		parserOptions.referenceLocation = referenceLocation
	}
}

// ParserWithCloseHour sets the wall-clock hour that report dates close at.
//
// The default is tradingtime.DefaultCloseHour.
func ParserWithCloseHour(closeHour int) ParserOption {
	return func(parserOptions *parserOptions) {
		parserOptions.closeHour = &closeHour
	}
}

// NewParser returns a new Parser.
func NewParser(options ...ParserOption) (*Parser, error) {
	parserOptions := newParserOptions()
	for _, option := range options {
		option(parserOptions)
	}
	referenceLocation := parserOptions.referenceLocation
	if referenceLocation == nil {
		var err error
		referenceLocation, err = tradingtime.LoadReferenceLocation()
		if err != nil {
			return nil, fmt.Errorf("loading reference timezone: %w", err)
		}
	}
	closeHour := tradingtime.DefaultCloseHour
	if parserOptions.closeHour != nil {
		closeHour = *parserOptions.closeHour
		if closeHour < 0 || closeHour > 23 {
			return nil, fmt.Errorf("close hour must be between 0 and 23, got %d", closeHour)
		}
	}
	var abbreviationTable tradingtime.AbbreviationTable
	if parserOptions.abbreviationTable != nil {
		abbreviationTable = *parserOptions.abbreviationTable
	} else {
		var err error
		abbreviationTable, err = tradingtime.DefaultAbbreviationTable()
		if err != nil {
			return nil, err
		}
	}
	assetCategorySet := DefaultAssetCategorySet()
	if parserOptions.assetCategorySet != nil {
		assetCategorySet = *parserOptions.assetCategorySet
	}
	logger := parserOptions.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{
		logger: logger,
		decodeContext: &decodeContext{
			referenceLocation: referenceLocation,
			closeHour:         closeHour,
			abbreviationTable: abbreviationTable,
			assetCategorySet:  assetCategorySet,
		},
	}, nil
}

// Parse decodes every FlexStatement in the XML document.
//
// Statements are returned in document order. If any statement fails to decode,
// no statements are returned.
func (p *Parser) Parse(data []byte) ([]*Statement, error) {
	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return p.ParseDocument(root)
}

// ParseReader decodes every FlexStatement in the XML document read from reader.
func (p *Parser) ParseReader(reader io.Reader) ([]*Statement, error) {
	root, err := xmltree.ParseReader(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return p.ParseDocument(root)
}

// ParseDocument decodes every FlexStatement in an already-parsed document.
//
// The root itself is decoded if it is a FlexStatement.
func (p *Parser) ParseDocument(root *xmltree.Element) ([]*Statement, error) {
	statementElements := root.Descendants(flexStatementElementName)
	if root.Name() == flexStatementElementName {
		statementElements = append([]*xmltree.Element{root}, statementElements...)
	}
	statements := make([]*Statement, 0, len(statementElements))
	for i, statementElement := range statementElements {
		statement, err := p.parseStatement(statementElement)
		if err != nil {
			return nil, fmt.Errorf("decoding statement %d: %w", i+1, err)
		}
		statements = append(statements, statement)
	}
	return statements, nil
}

// *** PRIVATE ***

type parserOptions struct {
	logger            *slog.Logger
	abbreviationTable *tradingtime.AbbreviationTable
	assetCategorySet  *AssetCategorySet
	referenceLocation *time.Location
	closeHour         *int
}

func newParserOptions() *parserOptions {
	return &parserOptions{}
}

func (p *Parser) parseStatement(element *xmltree.Element) (*Statement, error) {
	r := newFieldReader(RecordKindStatement, element, p.decodeContext)
	statement := &Statement{
		AccountID:           r.optionalString("accountId"),
		FromDate:            r.optionalString("fromDate"),
		ToDate:              r.optionalString("toDate"),
		Period:              r.optionalString("period"),
		WhenGenerated:       r.optionalString("whenGenerated"),
		WhenGeneratedMillis: r.resolvedExecutionInstant("whenGenerated"),
	}
	if r.err != nil {
		return nil, r.err
	}
	accountInformationElements := element.Descendants(RecordKindAccountInformation.String())
	switch len(accountInformationElements) {
	case 0:
		return nil, &StatementStructureError{Reason: "no account information sections found"}
	case 1:
	default:
		return nil, &StatementStructureError{Reason: "multiple account information sections found"}
	}
	accountInformation, err := decodeAccountInformation(accountInformationElements[0], p.decodeContext)
	if err != nil {
		return nil, err
	}
	statement.AccountInformation = accountInformation
	if statement.CashReports, err = decodeAll(element, RecordKindCashReport, p.decodeContext, decodeCashReport); err != nil {
		return nil, err
	}
	if statement.EquitySummaries, err = decodeAll(element, RecordKindEquitySummary, p.decodeContext, decodeEquitySummary); err != nil {
		return nil, err
	}
	if statement.FIFOPerformanceSummaries, err = decodeAll(element, RecordKindFIFOPerformanceSummary, p.decodeContext, decodeFIFOPerformanceSummary); err != nil {
		return nil, err
	}
	if statement.NetStockPositions, err = decodeAll(element, RecordKindNetStockPosition, p.decodeContext, decodeNetStockPosition); err != nil {
		return nil, err
	}
	if statement.OpenPositions, err = decodeAll(element, RecordKindOpenPosition, p.decodeContext, decodeOpenPosition); err != nil {
		return nil, err
	}
	if statement.Trades, err = decodeAll(element, RecordKindTrade, p.decodeContext, decodeTrade); err != nil {
		return nil, err
	}
	p.logUnrecognizedSections(element)
	return statement, nil
}

// logUnrecognizedSections logs the direct children of a statement that are not
// the container of any decoded record kind. Unrecognized sections are skipped.
func (p *Parser) logUnrecognizedSections(element *xmltree.Element) {
	for _, child := range element.Children() {
		if _, ok := recognizedSectionNames[child.Name()]; !ok {
			p.logger.Debug("skipping unrecognized statement section", "section", child.Name())
		}
	}
}

// decodeAll decodes every descendant of element for the record kind, in document order.
func decodeAll[R any](
	element *xmltree.Element,
	recordKind RecordKind,
	decodeContext *decodeContext,
	decode func(*xmltree.Element, *decodeContext) (*R, error),
) ([]*R, error) {
	recordElements := element.Descendants(recordKind.String())
	records := make([]*R, 0, len(recordElements))
	for _, recordElement := range recordElements {
		record, err := decode(recordElement, decodeContext)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

var recognizedSectionNames = func() map[string]struct{} {
	recognizedSectionNames := make(map[string]struct{})
	for recordKind, info := range recordKindToInfo {
		if recordKind == RecordKindStatement {
			continue
		}
		name := info.containerName
		if name == "" {
			name = info.elementName
		}
		recognizedSectionNames[name] = struct{}{}
	}
	return recognizedSectionNames
}()
