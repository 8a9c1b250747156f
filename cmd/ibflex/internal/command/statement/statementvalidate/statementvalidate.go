// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package statementvalidate implements the "statement validate" command.
package statementvalidate

import (
	"context"
	"fmt"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/ibflex/cmd/ibflex/internal/ibflexcmd"
	"github.com/spf13/pflag"
)

// NewCommand returns a new statement validate command that decodes a statement
// file and reports the first decode failure.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name + " <file>",
		Short: "Decode a statement file and report any error",
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
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	ibflexcmd.BindConfigFlag(flagSet, &f.Config)
}

func run(_ context.Context, container appext.Container, flags *flags) error {
	statements, err := ibflexcmd.ReadStatements(container, flags.Config, container.Arg(0))
	if err != nil {
		return err
	}
	for _, statement := range statements {
		if _, err := fmt.Fprintf(
			container.Stdout(),
			"%s: %d trades, %d open positions, %d cash reports\n",
			statement.AccountInformation.AccountID,
			len(statement.Trades),
			len(statement.OpenPositions),
			len(statement.CashReports),
		); err != nil {
			return err
		}
	}
	return nil
}
