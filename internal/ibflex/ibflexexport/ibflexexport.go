// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package ibflexexport exports decoded statements as newline-separated JSON.
//
// Records are grouped by account and written one file per record kind:
//
//	<dir>/<account>/account_information.json
//	<dir>/<account>/cash_reports.json
//	<dir>/<account>/equity_summaries.json
//	<dir>/<account>/fifo_performance_summaries.json
//	<dir>/<account>/net_stock_positions.json
//	<dir>/<account>/open_positions.json
//	<dir>/<account>/trades.json
//
// Each line is a JSON object with snake_case keys. Enumerations are written as
// their statement tags and absent optional values are omitted.
package ibflexexport

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/bufdev/ibflex/internal/pkg/ibkrflexstatement"
	"github.com/bufdev/ibflex/internal/pkg/protoio"
	"google.golang.org/protobuf/types/known/structpb"
)

// FileNames are the names of the files written for each account, in write order.
var FileNames = []string{
	accountInformationFileName,
	cashReportsFileName,
	equitySummariesFileName,
	fifoPerformanceSummariesFileName,
	netStockPositionsFileName,
	openPositionsFileName,
	tradesFileName,
}

// Export writes the records of the statements under dirPath and returns the
// paths of the written files.
//
// Statements for the same account are merged in order. Files are written for
// every record kind, even if there are no records of that kind.
func Export(logger *slog.Logger, dirPath string, statements []*ibkrflexstatement.Statement) ([]string, error) {
	accountIDToRecords := make(map[string]*accountRecords)
	for _, statement := range statements {
		accountID := statement.AccountInformation.AccountID
		if !filepath.IsLocal(accountID) || filepath.Base(accountID) != accountID {
			return nil, fmt.Errorf("account ID %q cannot be used as a directory name", accountID)
		}
		records, ok := accountIDToRecords[accountID]
		if !ok {
			records = newAccountRecords()
			accountIDToRecords[accountID] = records
		}
		if err := records.add(statement); err != nil {
			return nil, fmt.Errorf("converting records for account %s: %w", accountID, err)
		}
	}
	var filePaths []string
	for _, accountID := range slices.Sorted(maps.Keys(accountIDToRecords)) {
		accountDirPath := filepath.Join(dirPath, accountID)
		if err := os.MkdirAll(accountDirPath, 0o755); err != nil {
			return nil, fmt.Errorf("creating account directory: %w", err)
		}
		records := accountIDToRecords[accountID]
		for _, fileName := range FileNames {
			filePath := filepath.Join(accountDirPath, fileName)
			messages := records.fileNameToMessages[fileName]
			if err := protoio.WriteMessagesJSONFile(filePath, messages...); err != nil {
				return nil, fmt.Errorf("writing %s: %w", filePath, err)
			}
			logger.Info("records exported", "account_id", accountID, "count", len(messages), "path", filePath)
			filePaths = append(filePaths, filePath)
		}
	}
	return filePaths, nil
}

// ReadFile reads the records of an exported file.
func ReadFile(filePath string) ([]*structpb.Struct, error) {
	return protoio.ReadMessagesJSONFile(filePath, newStruct)
}

// RecordToStruct converts a record to a Struct with the same keys and values
// as the record's JSON encoding.
func RecordToStruct(record any) (*structpb.Struct, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return structpb.NewStruct(fields)
}

// *** PRIVATE ***

const (
	accountInformationFileName       = "account_information.json"
	cashReportsFileName              = "cash_reports.json"
	equitySummariesFileName          = "equity_summaries.json"
	fifoPerformanceSummariesFileName = "fifo_performance_summaries.json"
	netStockPositionsFileName        = "net_stock_positions.json"
	openPositionsFileName            = "open_positions.json"
	tradesFileName                   = "trades.json"
)

type accountRecords struct {
	fileNameToMessages map[string][]*structpb.Struct
}

func newAccountRecords() *accountRecords {
	return &accountRecords{
		fileNameToMessages: make(map[string][]*structpb.Struct),
	}
}

func (a *accountRecords) add(statement *ibkrflexstatement.Statement) error {
	if err := addRecords(a, accountInformationFileName, []*ibkrflexstatement.AccountInformation{statement.AccountInformation}); err != nil {
		return err
	}
	if err := addRecords(a, cashReportsFileName, statement.CashReports); err != nil {
		return err
	}
	if err := addRecords(a, equitySummariesFileName, statement.EquitySummaries); err != nil {
		return err
	}
	if err := addRecords(a, fifoPerformanceSummariesFileName, statement.FIFOPerformanceSummaries); err != nil {
		return err
	}
	if err := addRecords(a, netStockPositionsFileName, statement.NetStockPositions); err != nil {
		return err
	}
	if err := addRecords(a, openPositionsFileName, statement.OpenPositions); err != nil {
		return err
	}
	return addRecords(a, tradesFileName, statement.Trades)
}

func addRecords[R any](a *accountRecords, fileName string, records []*R) error {
	for _, record := range records {
		message, err := RecordToStruct(record)
		if err != nil {
			return err
		}
		a.fileNameToMessages[fileName] = append(a.fileNameToMessages[fileName], message)
	}
	return nil
}

func newStruct() *structpb.Struct {
	return &structpb.Struct{}
}
