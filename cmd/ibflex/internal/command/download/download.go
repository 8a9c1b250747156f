// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package download implements the "download" command.
package download

import (
	"context"
	"fmt"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/ibflex/cmd/ibflex/internal/ibflexcmd"
	"github.com/bufdev/ibflex/internal/standard/xtime"
	"github.com/spf13/pflag"
)

const (
	outputFlagName = "output"
	fromFlagName   = "from"
	toFlagName     = "to"
)

// NewCommand returns a new download command that downloads a Flex Query statement.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "Download a Flex Query statement via the Flex Web Service",
		Long: `Download a Flex Query statement via the Flex Web Service.

The IBKR_TOKEN environment variable must be set to the Flex Web Service token,
and ibkr.query_id must be set in the configuration file. The statement is
decoded before it is written, so an undecodable statement is never saved.

If --from and --to are not set, the period configured on the Flex Query is used.`,
		Args: appcmd.NoArgs,
		Run: builder.NewRunFunc(
			func(ctx context.Context, container appext.Container) error {
				return run(ctx, container, flags)
			},
		),
		BindFlags: flags.Bind,
	}
}

type flags struct {
	Config string
	Output string
	From   string
	To     string
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	ibflexcmd.BindConfigFlag(flagSet, &f.Config)
	flagSet.StringVarP(&f.Output, outputFlagName, "o", "", "The file to write the statement XML to (required)")
	flagSet.StringVar(&f.From, fromFlagName, "", "The first date of the statement period, in YYYY-MM-DD format")
	flagSet.StringVar(&f.To, toFlagName, "", "The last date of the statement period, in YYYY-MM-DD format")
}

func run(ctx context.Context, container appext.Container, flags *flags) error {
	if flags.Output == "" {
		return appcmd.NewInvalidArgumentErrorf("--%s is required", outputFlagName)
	}
	fromDate, err := parseDateFlag(fromFlagName, flags.From)
	if err != nil {
		return err
	}
	toDate, err := parseDateFlag(toFlagName, flags.To)
	if err != nil {
		return err
	}
	if fromDate.IsZero() != toDate.IsZero() {
		return appcmd.NewInvalidArgumentErrorf("--%s and --%s must be set together", fromFlagName, toFlagName)
	}
	downloader, err := ibflexcmd.NewDownloader(container, flags.Config)
	if err != nil {
		return err
	}
	statements, err := downloader.Download(ctx, flags.Output, fromDate, toDate)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(container.Stdout(), "wrote %d statement(s) to %s\n", len(statements), flags.Output)
	return err
}

func parseDateFlag(flagName string, value string) (xtime.Date, error) {
	if value == "" {
		return xtime.Date{}, nil
	}
	date, err := xtime.ParseDate(value)
	if err != nil {
		return xtime.Date{}, appcmd.NewInvalidArgumentErrorf("invalid --%s: %v", flagName, err)
	}
	return date, nil
}
