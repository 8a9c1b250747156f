// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package ibflexcmd provides shared wiring for ibflex commands: reading the
// config, decoding statement files, and constructing the downloader.
package ibflexcmd

import (
	"errors"
	"fmt"
	"os"

	"buf.build/go/app/appext"
	"github.com/bufdev/ibflex/internal/ibflex/ibflexconfig"
	"github.com/bufdev/ibflex/internal/ibflex/ibflexdownload"
	"github.com/bufdev/ibflex/internal/pkg/ibkrflexquery"
	"github.com/bufdev/ibflex/internal/pkg/ibkrflexstatement"
	"github.com/bufdev/ibflex/internal/standard/xos"
	"github.com/spf13/pflag"
)

const (
	// ConfigFlagName is the flag name for the configuration file path.
	ConfigFlagName = "config"
	// FormatFlagName is the flag name for the output format.
	FormatFlagName = "format"

	// ibkrTokenEnvVar is the environment variable name for the IBKR Flex Web Service token.
	ibkrTokenEnvVar = "IBKR_TOKEN"
)

// BindConfigFlag binds the --config flag to configFilePath.
func BindConfigFlag(flagSet *pflag.FlagSet, configFilePath *string) {
	flagSet.StringVar(
		configFilePath,
		ConfigFlagName,
		"",
		"The configuration file path (default: config.yaml in the ibflex config directory)",
	)
}

// BindFormatFlag binds the --format flag to format.
func BindFormatFlag(flagSet *pflag.FlagSet, format *string) {
	flagSet.StringVar(format, FormatFlagName, "table", "Output format (table, csv, json)")
}

// ConfigFilePath returns the configuration file path for the --config flag value.
func ConfigFilePath(container appext.Container, configFlagValue string) string {
	if configFlagValue != "" {
		return configFlagValue
	}
	return ibflexconfig.DefaultConfigFilePath(container.ConfigDirPath())
}

// ReadConfig reads the configuration file for the --config flag value.
//
// If the flag is not set and the default configuration file does not exist,
// the default configuration is returned. An explicitly named file must exist.
func ReadConfig(container appext.Container, configFlagValue string) (*ibflexconfig.Config, error) {
	if configFlagValue != "" {
		return ibflexconfig.ReadConfig(configFlagValue)
	}
	return ibflexconfig.ReadConfigOrDefault(ConfigFilePath(container, configFlagValue))
}

// ReadStatements decodes the statement file at filePath with a parser built
// from the configuration.
func ReadStatements(container appext.Container, configFlagValue string, filePath string) ([]*ibkrflexstatement.Statement, error) {
	config, err := ReadConfig(container, configFlagValue)
	if err != nil {
		return nil, err
	}
	parser, err := config.NewParser(container.Logger())
	if err != nil {
		return nil, err
	}
	filePath, err = xos.ExpandHome(filePath)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	statements, err := parser.ParseReader(file)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	return statements, nil
}

// NewDownloader constructs a Downloader from the appext container by reading the
// config file, extracting the IBKR token from the environment, and creating the
// Flex Query client.
func NewDownloader(container appext.Container, configFlagValue string) (ibflexdownload.Downloader, error) {
	config, err := ibflexconfig.ReadConfig(ConfigFilePath(container, configFlagValue))
	if err != nil {
		return nil, err
	}
	ibkrToken := container.Env(ibkrTokenEnvVar)
	if ibkrToken == "" {
		return nil, errors.New("IBKR_TOKEN environment variable is required, set it to your IBKR Flex Web Service token (see \"ibflex --help\" for details)")
	}
	logger := container.Logger()
	parser, err := config.NewParser(logger)
	if err != nil {
		return nil, err
	}
	flexQueryClient := ibkrflexquery.NewClient(logger)
	return ibflexdownload.NewDownloader(logger, ibkrToken, config, flexQueryClient, parser), nil
}
