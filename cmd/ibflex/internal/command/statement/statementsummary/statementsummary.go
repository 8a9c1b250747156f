// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package statementsummary implements the "statement summary" command.
package statementsummary

import (
	"context"
	"strconv"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/ibflex/cmd/ibflex/internal/ibflexcmd"
	"github.com/bufdev/ibflex/internal/ibflex/ibflexsummary"
	"github.com/bufdev/ibflex/internal/pkg/cliio"
	"github.com/spf13/pflag"
)

// NewCommand returns a new statement summary command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name + " <file>",
		Short: "Print the totals of each statement in a statement file",
		Args:  appcmd.ExactArgs(1),
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
	Format string
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	ibflexcmd.BindConfigFlag(flagSet, &f.Config)
	ibflexcmd.BindFormatFlag(flagSet, &f.Format)
}

func run(_ context.Context, container appext.Container, flags *flags) error {
	format, err := cliio.ParseFormat(flags.Format)
	if err != nil {
		return appcmd.NewInvalidArgumentError(err.Error())
	}
	statements, err := ibflexcmd.ReadStatements(container, flags.Config, container.Arg(0))
	if err != nil {
		return err
	}
	summaries := ibflexsummary.SummarizeAll(statements)
	table := cliio.Table{
		Headers: []string{"ACCOUNT", "FROM", "TO", "TRADES", "BUY", "SELL", "COMMISSIONS", "POSITIONS", "VALUE", "UNREALIZED"},
	}
	for _, summary := range summaries {
		table.Rows = append(table.Rows, []string{
			summary.AccountID,
			summary.FromDate,
			summary.ToDate,
			strconv.Itoa(summary.TradeCount),
			summary.BuyNotional.StringFixed(2),
			summary.SellNotional.StringFixed(2),
			summary.Commissions.StringFixed(2),
			strconv.Itoa(summary.OpenPositionCount),
			summary.PositionValue.StringFixed(2),
			summary.UnrealizedPnl.StringFixed(2),
		})
	}
	return cliio.Write(container.Stdout(), format, table, summaries)
}
