// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package ibflexconfig provides configuration parsing and validation for ibflex.
//
// Configuration is stored at ~/.config/ibflex/config.yaml by default, or at any
// path passed with --config.
package ibflexconfig

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bufdev/ibflex/internal/pkg/ibkrflexstatement"
	"github.com/bufdev/ibflex/internal/pkg/tradingtime"
	"github.com/bufdev/ibflex/internal/standard/xos"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the configuration file within the config directory.
const ConfigFileName = "config.yaml"

// configTemplate is the default configuration file template with comments.
// yaml.v3 does not preserve comments, so we hardcode the template string.
const configTemplate = `# The configuration file version.
#
# Required. The only current valid version is v1.
version: v1
# IBKR Flex Query configuration.
#
# Required for "ibflex download". Create a Flex Query at https://www.interactivebrokers.com
# under Performance & Reports > Flex Queries. Include the Account Information,
# Cash Report, Equity Summary, FIFO Performance Summary, Net Stock Position,
# Open Positions, and Trades sections.
#
# The Flex Web Service token must be set via the IBKR_TOKEN environment variable.
ibkr:
  # The Flex Query ID (visible next to your query name in the IBKR portal).
  query_id: ""
# Timezone abbreviations that may appear in execution times, mapped to IANA
# timezone names.
#
# Optional. Defaults to EST and EDT mapped to America/New_York.
# timezones:
#   EST: America/New_York
#   EDT: America/New_York
#   CET: Europe/Berlin
# The asset categories that statements may contain.
#
# Optional. Defaults to STK and CRYPTO.
# asset_categories:
#   - STK
#   - CRYPTO
# The hour of the trading-day close in America/New_York, used to timestamp
# report dates.
#
# Optional. Defaults to 20.
# close_hour: 20
`

// ExternalConfig is the YAML-serializable configuration file structure.
type ExternalConfig struct {
	// Version is the configuration file version (must be "v1").
	Version string `yaml:"version"`
	// IBKR holds the Interactive Brokers Flex Query configuration.
	IBKR ExternalIBKRConfig `yaml:"ibkr"`
	// Timezones maps timezone abbreviations to IANA timezone names.
	Timezones map[string]string `yaml:"timezones"`
	// AssetCategories is the list of recognized asset category tags.
	AssetCategories []string `yaml:"asset_categories"`
	// CloseHour is the hour of the trading-day close. Nil means the default.
	CloseHour *int `yaml:"close_hour"`
}

// ExternalIBKRConfig holds IBKR-specific configuration.
type ExternalIBKRConfig struct {
	// QueryID is the Flex Query ID.
	QueryID string `yaml:"query_id"`
}

// Config is the validated runtime configuration derived from the config file.
type Config struct {
	// IBKRQueryID is the Flex Query ID. Empty if not configured.
	IBKRQueryID string
	// AbbreviationTable resolves the timezone abbreviations of execution times.
	AbbreviationTable tradingtime.AbbreviationTable
	// AssetCategorySet is the set of recognized asset categories.
	AssetCategorySet ibkrflexstatement.AssetCategorySet
	// CloseHour is the hour of the trading-day close.
	CloseHour int
}

// NewConfig validates an ExternalConfig and returns a runtime Config.
func NewConfig(externalConfig ExternalConfig) (*Config, error) {
	if externalConfig.Version != "v1" {
		return nil, fmt.Errorf("unsupported config version %q, must be v1", externalConfig.Version)
	}
	timezones := externalConfig.Timezones
	if len(timezones) == 0 {
		timezones = tradingtime.DefaultAbbreviationTimezones()
	}
	abbreviationTable, err := tradingtime.NewAbbreviationTable(timezones)
	if err != nil {
		return nil, fmt.Errorf("invalid timezones: %w", err)
	}
	assetCategorySet := ibkrflexstatement.DefaultAssetCategorySet()
	if len(externalConfig.AssetCategories) > 0 {
		assetCategorySet, err = ibkrflexstatement.NewAssetCategorySet(externalConfig.AssetCategories...)
		if err != nil {
			return nil, fmt.Errorf("invalid asset_categories: %w", err)
		}
	}
	closeHour := tradingtime.DefaultCloseHour
	if externalConfig.CloseHour != nil {
		closeHour = *externalConfig.CloseHour
		if closeHour < 0 || closeHour > 23 {
			return nil, fmt.Errorf("close_hour must be between 0 and 23, got %d", closeHour)
		}
	}
	return &Config{
		IBKRQueryID:       externalConfig.IBKR.QueryID,
		AbbreviationTable: abbreviationTable,
		AssetCategorySet:  assetCategorySet,
		CloseHour:         closeHour,
	}, nil
}

// DefaultConfig returns the Config used when no configuration file exists.
func DefaultConfig() (*Config, error) {
	return NewConfig(ExternalConfig{Version: "v1"})
}

// NewParser returns a statement Parser configured from the Config.
func (c *Config) NewParser(logger *slog.Logger) (*ibkrflexstatement.Parser, error) {
	return ibkrflexstatement.NewParser(
		ibkrflexstatement.ParserWithLogger(logger),
		ibkrflexstatement.ParserWithAbbreviationTable(c.AbbreviationTable),
		ibkrflexstatement.ParserWithAssetCategorySet(c.AssetCategorySet),
		ibkrflexstatement.ParserWithCloseHour(c.CloseHour),
	)
}

// DefaultConfigFilePath returns the path to the configuration file within the given config directory.
func DefaultConfigFilePath(configDirPath string) string {
	return filepath.Join(configDirPath, ConfigFileName)
}

// ReadConfig reads and validates the configuration file at the given path.
// Returns a clear error message directing users to run "ibflex config init" if the file is missing.
func ReadConfig(filePath string) (*Config, error) {
	filePath, err := xos.ExpandHome(filePath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("configuration file not found at %s, run \"ibflex config init\" to create one", filePath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	var externalConfig ExternalConfig
	if err := unmarshalYAMLStrict(data, &externalConfig); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", filePath, err)
	}
	config, err := NewConfig(externalConfig)
	if err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", filePath, err)
	}
	return config, nil
}

// ReadConfigOrDefault reads the configuration file at the given path, or
// returns DefaultConfig if the file does not exist.
func ReadConfigOrDefault(filePath string) (*Config, error) {
	expandedFilePath, err := xos.ExpandHome(filePath)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(expandedFilePath); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig()
	}
	return ReadConfig(expandedFilePath)
}

// InitConfig creates a new configuration file with a documented template.
// Creates the parent directory if it does not exist.
// Returns the path to the created file, or an error if the file already exists.
func InitConfig(filePath string) (string, error) {
	filePath, err := xos.ExpandHome(filePath)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(filePath); err == nil {
		return "", fmt.Errorf("configuration file already exists: %s", filePath)
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(filePath, []byte(configTemplate), 0o644); err != nil {
		return "", err
	}
	return filePath, nil
}

// ValidateConfigFile reads and validates the configuration file at the given path.
func ValidateConfigFile(filePath string) error {
	_, err := ReadConfig(filePath)
	return err
}

// *** PRIVATE ***

// unmarshalYAMLStrict unmarshals the data as YAML with strict field checking.
// If the data length is 0, this is a no-op.
func unmarshalYAMLStrict(data []byte, v any) error {
	if len(data) == 0 {
		return nil
	}
	yamlDecoder := yaml.NewDecoder(bytes.NewReader(data))
	// Reject unknown fields.
	yamlDecoder.KnownFields(true)
	if err := yamlDecoder.Decode(v); err != nil {
		return fmt.Errorf("could not unmarshal as YAML: %w", err)
	}
	return nil
}
