// Copyright 2026 Peter Edge
//
// All rights reserved.

package ibflexdownload

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bufdev/ibflex/internal/ibflex/ibflexconfig"
	"github.com/bufdev/ibflex/internal/pkg/ibkrflexstatement"
	"github.com/bufdev/ibflex/internal/standard/xtime"
	"github.com/stretchr/testify/require"
)

const testStatement = `<FlexQueryResponse><FlexStatements count="1"><FlexStatement accountId="U1">` +
	`<AccountInformation accountId="U1" />` +
	`<OpenPositions><OpenPosition accountId="U1" currency="USD" assetCategory="STK" symbol="GRPN" conid="426480582" ` +
	`listingExchange="NASDAQ" reportDate="2025-04-25" position="3000" markPrice="19.89" positionValue="59670" ` +
	`costBasisPrice="20.153441225" fifoPnlUnrealized="-790.323674" side="Long" /></OpenPositions>` +
	`</FlexStatement></FlexStatements></FlexQueryResponse>`

func TestDownload(t *testing.T) {
	t.Parallel()
	client := &fakeClient{data: []byte(testStatement)}
	downloader := newTestDownloader(t, client, "123")
	outputFilePath := filepath.Join(t.TempDir(), "statements", "latest.xml")
	fromDate := xtime.Date{Year: 2025, Month: time.April, Day: 1}
	toDate := xtime.Date{Year: 2025, Month: time.April, Day: 25}
	statements, err := downloader.Download(context.Background(), outputFilePath, fromDate, toDate)
	require.NoError(t, err)
	require.Len(t, statements, 1)
	require.Len(t, statements[0].OpenPositions, 1)
	require.Equal(t, "token", client.token)
	require.Equal(t, "123", client.queryID)
	require.Equal(t, fromDate, client.fromDate)
	require.Equal(t, toDate, client.toDate)
	data, err := os.ReadFile(outputFilePath)
	require.NoError(t, err)
	require.Equal(t, testStatement, string(data))
}

func TestDownloadDoesNotWriteUndecodableStatement(t *testing.T) {
	t.Parallel()
	// No AccountInformation.
	client := &fakeClient{data: []byte(`<FlexQueryResponse><FlexStatements count="1"><FlexStatement /></FlexStatements></FlexQueryResponse>`)}
	downloader := newTestDownloader(t, client, "123")
	outputFilePath := filepath.Join(t.TempDir(), "latest.xml")
	_, err := downloader.Download(context.Background(), outputFilePath, xtime.Date{}, xtime.Date{})
	var statementStructureError *ibkrflexstatement.StatementStructureError
	require.True(t, errors.As(err, &statementStructureError))
	_, err = os.Stat(outputFilePath)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDownloadErrors(t *testing.T) {
	t.Parallel()
	outputFilePath := filepath.Join(t.TempDir(), "latest.xml")

	_, err := newTestDownloader(t, &fakeClient{}, "").Download(context.Background(), outputFilePath, xtime.Date{}, xtime.Date{})
	require.ErrorContains(t, err, "ibkr.query_id")

	clientErr := errors.New("token has expired")
	_, err = newTestDownloader(t, &fakeClient{err: clientErr}, "123").Download(context.Background(), outputFilePath, xtime.Date{}, xtime.Date{})
	require.ErrorIs(t, err, clientErr)
	_, err = os.Stat(outputFilePath)
	require.ErrorIs(t, err, os.ErrNotExist)
}

type fakeClient struct {
	data []byte
	err  error

	token    string
	queryID  string
	fromDate xtime.Date
	toDate   xtime.Date
}

func (c *fakeClient) Download(_ context.Context, token string, queryID string, fromDate xtime.Date, toDate xtime.Date) ([]byte, error) {
	c.token = token
	c.queryID = queryID
	c.fromDate = fromDate
	c.toDate = toDate
	return c.data, c.err
}

func newTestDownloader(t *testing.T, client *fakeClient, queryID string) Downloader {
	t.Helper()
	config, err := ibflexconfig.DefaultConfig()
	require.NoError(t, err)
	config.IBKRQueryID = queryID
	logger := slog.New(slog.DiscardHandler)
	parser, err := config.NewParser(logger)
	require.NoError(t, err)
	return NewDownloader(logger, "token", config, client, parser)
}
