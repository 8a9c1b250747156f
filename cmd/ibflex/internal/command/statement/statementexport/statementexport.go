// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package statementexport implements the "statement export" command.
package statementexport

import (
	"context"
	"fmt"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/ibflex/cmd/ibflex/internal/ibflexcmd"
	"github.com/bufdev/ibflex/internal/ibflex/ibflexexport"
	"github.com/spf13/pflag"
)

const dirFlagName = "dir"

// NewCommand returns a new statement export command that writes the records of
// a statement file as newline-delimited JSON, one directory per account.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name + " <file>",
		Short: "Export the records of a statement file as newline-delimited JSON",
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
	Dir    string
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	ibflexcmd.BindConfigFlag(flagSet, &f.Config)
	flagSet.StringVar(&f.Dir, dirFlagName, ".", "The directory to write account directories to")
}

func run(_ context.Context, container appext.Container, flags *flags) error {
	statements, err := ibflexcmd.ReadStatements(container, flags.Config, container.Arg(0))
	if err != nil {
		return err
	}
	filePaths, err := ibflexexport.Export(container.Logger(), flags.Dir, statements)
	if err != nil {
		return err
	}
	for _, filePath := range filePaths {
		if _, err := fmt.Fprintln(container.Stdout(), filePath); err != nil {
			return err
		}
	}
	return nil
}
