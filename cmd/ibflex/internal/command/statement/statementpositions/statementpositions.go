// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package statementpositions implements the "statement positions" command.
package statementpositions

import (
	"context"
	"strconv"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/ibflex/cmd/ibflex/internal/ibflexcmd"
	"github.com/bufdev/ibflex/internal/pkg/cliio"
	"github.com/bufdev/ibflex/internal/pkg/ibkrflexstatement"
	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"
)

// NewCommand returns a new statement positions command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name + " <file>",
		Short: "List the open positions in a statement file",
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
	var openPositions []*ibkrflexstatement.OpenPosition
	for _, statement := range statements {
		openPositions = append(openPositions, statement.OpenPositions...)
	}
	table := cliio.Table{
		Headers: []string{"ACCOUNT", "SYMBOL", "SIDE", "QUANTITY", "MARK", "VALUE", "CURRENCY", "UNREALIZED"},
	}
	// Totals mix currencies, so they are only shown when every position is in one currency.
	totalValue := decimal.Zero
	totalUnrealized := decimal.Zero
	currencies := make(map[ibkrflexstatement.Currency]struct{})
	for _, openPosition := range openPositions {
		table.Rows = append(table.Rows, []string{
			openPosition.AccountID,
			openPosition.Symbol,
			openPosition.Side.String(),
			formatFloat(openPosition.Quantity),
			formatFloat(openPosition.MarkPrice),
			formatFloat(openPosition.PositionValue),
			openPosition.Currency.String(),
			formatFloat(openPosition.FifoPnlUnrealized),
		})
		totalValue = totalValue.Add(decimal.NewFromFloat(openPosition.PositionValue))
		totalUnrealized = totalUnrealized.Add(decimal.NewFromFloat(openPosition.FifoPnlUnrealized))
		currencies[openPosition.Currency] = struct{}{}
	}
	if len(currencies) == 1 {
		table.Totals = []string{"TOTAL", "", "", "", "", totalValue.StringFixed(2), openPositions[0].Currency.String(), totalUnrealized.StringFixed(2)}
	}
	return cliio.Write(container.Stdout(), format, table, openPositions)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
