// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package ibflexdownload provides the download orchestrator for Flex statements.
package ibflexdownload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bufdev/ibflex/internal/ibflex/ibflexconfig"
	"github.com/bufdev/ibflex/internal/pkg/ibkrflexquery"
	"github.com/bufdev/ibflex/internal/pkg/ibkrflexstatement"
	"github.com/bufdev/ibflex/internal/standard/xos"
	"github.com/bufdev/ibflex/internal/standard/xtime"
)

// Downloader is the interface for downloading Flex statements.
type Downloader interface {
	// Download fetches a Flex statement via the Flex Query API, decodes it, and
	// writes the raw XML to outputFilePath.
	//
	// Pass zero-value dates to use the query's default period.
	// Nothing is written if the statement does not decode.
	Download(ctx context.Context, outputFilePath string, fromDate xtime.Date, toDate xtime.Date) ([]*ibkrflexstatement.Statement, error)
}

// NewDownloader creates a new Downloader with all required dependencies.
// The ibkrToken is the Flex Web Service token from the IBKR_TOKEN environment variable.
func NewDownloader(
	logger *slog.Logger,
	ibkrToken string,
	config *ibflexconfig.Config,
	flexQueryClient ibkrflexquery.Client,
	parser *ibkrflexstatement.Parser,
) Downloader {
	return &downloader{
		logger:          logger,
		ibkrToken:       ibkrToken,
		config:          config,
		flexQueryClient: flexQueryClient,
		parser:          parser,
	}
}

// *** PRIVATE ***

type downloader struct {
	logger          *slog.Logger
	ibkrToken       string
	config          *ibflexconfig.Config
	flexQueryClient ibkrflexquery.Client
	parser          *ibkrflexstatement.Parser
}

func (d *downloader) Download(
	ctx context.Context,
	outputFilePath string,
	fromDate xtime.Date,
	toDate xtime.Date,
) ([]*ibkrflexstatement.Statement, error) {
	if d.config.IBKRQueryID == "" {
		return nil, errors.New("ibkr.query_id must be set in the configuration file to download statements")
	}
	d.logger.Info("downloading flex query statement", "query_id", d.config.IBKRQueryID)
	data, err := d.flexQueryClient.Download(ctx, d.ibkrToken, d.config.IBKRQueryID, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("downloading flex query: %w", err)
	}
	d.logger.Info("flex query statement downloaded", "bytes", len(data))
	statements, err := d.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("decoding downloaded statement: %w", err)
	}
	for _, statement := range statements {
		d.logger.Info(
			"statement decoded",
			"account_id", statement.AccountInformation.AccountID,
			"trades", len(statement.Trades),
			"open_positions", len(statement.OpenPositions),
			"cash_reports", len(statement.CashReports),
		)
	}
	if err := xos.WriteFileAtomic(outputFilePath, data, 0o600); err != nil {
		return nil, fmt.Errorf("writing statement: %w", err)
	}
	d.logger.Info("download complete", "statements", len(statements), "path", outputFilePath)
	return statements, nil
}
