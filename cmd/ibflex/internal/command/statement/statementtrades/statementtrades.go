// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package statementtrades implements the "statement trades" command.
package statementtrades

import (
	"context"
	"strconv"
	"time"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/ibflex/cmd/ibflex/internal/ibflexcmd"
	"github.com/bufdev/ibflex/internal/pkg/cliio"
	"github.com/bufdev/ibflex/internal/pkg/ibkrflexstatement"
	"github.com/spf13/pflag"
)

const symbolFlagName = "symbol"

// NewCommand returns a new statement trades command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name + " <file>",
		Short: "List the trades in a statement file",
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
	Symbol string
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	ibflexcmd.BindConfigFlag(flagSet, &f.Config)
	ibflexcmd.BindFormatFlag(flagSet, &f.Format)
	flagSet.StringVar(&f.Symbol, symbolFlagName, "", "Only list trades for this symbol")
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
	var trades []*ibkrflexstatement.Trade
	for _, statement := range statements {
		for _, trade := range statement.Trades {
			if flags.Symbol != "" && trade.Symbol != flags.Symbol {
				continue
			}
			trades = append(trades, trade)
		}
	}
	table := cliio.Table{
		Headers: []string{"ACCOUNT", "TIME", "SYMBOL", "SIDE", "QUANTITY", "PRICE", "CURRENCY", "COMMISSION", "EXECUTION ID"},
	}
	for _, trade := range trades {
		table.Rows = append(table.Rows, []string{
			trade.AccountID,
			time.UnixMilli(trade.ExecutionTimestampMillis).UTC().Format(time.RFC3339),
			trade.Symbol,
			trade.Side.String(),
			formatFloat(trade.Quantity),
			formatFloat(trade.Price),
			trade.Currency.String(),
			formatFloat(trade.Commission),
			trade.ExecutionID,
		})
	}
	return cliio.Write(container.Stdout(), format, table, trades)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
