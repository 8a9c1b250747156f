// Copyright 2026 Peter Edge
//
// All rights reserved.

package ibflexconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bufdev/ibflex/internal/pkg/ibkrflexstatement"
	"github.com/bufdev/ibflex/internal/pkg/tradingtime"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	t.Parallel()
	config, err := ReadConfig("testdata/config.yaml")
	require.NoError(t, err)
	require.Equal(t, "123456", config.IBKRQueryID)
	require.Equal(t, []string{"CET", "EDT", "EST"}, config.AbbreviationTable.Abbreviations())
	loc, ok := config.AbbreviationTable.Lookup("CET")
	require.True(t, ok)
	require.Equal(t, "Europe/Berlin", loc.String())
	require.Equal(t, []string{"OPT", "STK"}, config.AssetCategorySet.Tags())
	require.Equal(t, 16, config.CloseHour)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	config, err := DefaultConfig()
	require.NoError(t, err)
	require.Empty(t, config.IBKRQueryID)
	require.Equal(t, []string{"EDT", "EST"}, config.AbbreviationTable.Abbreviations())
	require.Equal(t, ibkrflexstatement.DefaultAssetCategorySet().Tags(), config.AssetCategorySet.Tags())
	require.Equal(t, tradingtime.DefaultCloseHour, config.CloseHour)
}

func TestNewConfigErrors(t *testing.T) {
	t.Parallel()
	for _, test := range []struct {
		desc           string
		externalConfig ExternalConfig
		wantErr        string
	}{
		{
			desc:           "missing version",
			externalConfig: ExternalConfig{},
			wantErr:        `unsupported config version ""`,
		},
		{
			desc:           "unknown timezone",
			externalConfig: ExternalConfig{Version: "v1", Timezones: map[string]string{"XST": "Nowhere/Special"}},
			wantErr:        "invalid timezones",
		},
		{
			desc:           "empty timezone",
			externalConfig: ExternalConfig{Version: "v1", Timezones: map[string]string{"EST": ""}},
			wantErr:        "invalid timezones",
		},
		{
			desc:           "duplicate asset category",
			externalConfig: ExternalConfig{Version: "v1", AssetCategories: []string{"STK", "STK"}},
			wantErr:        "invalid asset_categories",
		},
		{
			desc:           "close hour out of range",
			externalConfig: ExternalConfig{Version: "v1", CloseHour: ptr(24)},
			wantErr:        "close_hour must be between 0 and 23",
		},
	} {
		_, err := NewConfig(test.externalConfig)
		require.ErrorContains(t, err, test.wantErr, test.desc)
	}
	config, err := NewConfig(ExternalConfig{Version: "v1", CloseHour: ptr(0)})
	require.NoError(t, err)
	require.Zero(t, config.CloseHour)
}

func TestInitConfig(t *testing.T) {
	t.Parallel()
	filePath := filepath.Join(t.TempDir(), "nested", ConfigFileName)
	createdFilePath, err := InitConfig(filePath)
	require.NoError(t, err)
	require.Equal(t, filePath, createdFilePath)
	// The template is a valid configuration.
	require.NoError(t, ValidateConfigFile(filePath))
	config, err := ReadConfig(filePath)
	require.NoError(t, err)
	require.Equal(t, tradingtime.DefaultCloseHour, config.CloseHour)
	_, err = InitConfig(filePath)
	require.ErrorContains(t, err, "already exists")
}

func TestReadConfigErrors(t *testing.T) {
	t.Parallel()
	dirPath := t.TempDir()

	_, err := ReadConfig(filepath.Join(dirPath, "missing.yaml"))
	require.ErrorContains(t, err, "ibflex config init")

	unknownFieldFilePath := filepath.Join(dirPath, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknownFieldFilePath, []byte("version: v1\nsymbols: []\n"), 0o644))
	err = ValidateConfigFile(unknownFieldFilePath)
	require.ErrorContains(t, err, "could not unmarshal as YAML")

	invalidFilePath := filepath.Join(dirPath, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalidFilePath, []byte("version: v2\n"), 0o644))
	err = ValidateConfigFile(invalidFilePath)
	require.ErrorContains(t, err, "unsupported config version")
}

func TestReadConfigOrDefault(t *testing.T) {
	t.Parallel()
	config, err := ReadConfigOrDefault(filepath.Join(t.TempDir(), ConfigFileName))
	require.NoError(t, err)
	require.Equal(t, tradingtime.DefaultCloseHour, config.CloseHour)
	config, err = ReadConfigOrDefault("testdata/config.yaml")
	require.NoError(t, err)
	require.Equal(t, 16, config.CloseHour)
}

func TestConfigNewParser(t *testing.T) {
	t.Parallel()
	config, err := ReadConfig("testdata/config.yaml")
	require.NoError(t, err)
	parser, err := config.NewParser(nil)
	require.NoError(t, err)
	statements, err := parser.Parse(
		[]byte(`<FlexStatement><AccountInformation accountId="U1" /><Trades>` +
			`<Trade accountId="U1" assetCategory="OPT" ibCommission="-1" conid="1" currency="USD" exchange="CBOE" ` +
			`ibExecID="e" dateTime="2025-04-25;16:19:55 CET" listingExchange="CBOE" openCloseIndicator="O" ` +
			`brokerageOrderID="o" orderType="LMT" tradePrice="1.5" quantity="1" buySell="BUY" symbol="X" />` +
			`</Trades></FlexStatement>`),
	)
	require.NoError(t, err)
	require.Len(t, statements, 1)
	// 2025-04-25T16:19:55+02:00
	require.Equal(t, int64(1745590795000), statements[0].Trades[0].ExecutionTimestampMillis)
}

func ptr[T any](value T) *T {
	return &value
}
