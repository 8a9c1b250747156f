// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package statementimport implements the "statement import" command.
package statementimport

import (
	"context"
	"errors"
	"fmt"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/ibflex/cmd/ibflex/internal/ibflexcmd"
	"github.com/bufdev/ibflex/internal/ibflex/ibflexstore"
	"github.com/bufdev/ibflex/internal/standard/xos"
	"github.com/spf13/pflag"
)

const dbFlagName = "db"

// NewCommand returns a new statement import command that loads a statement file
// into a SQLite database.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name + " <file>",
		Short: "Import the records of a statement file into a SQLite database",
		Long: `Import the records of a statement file into a SQLite database.

The database is created if it does not exist. Trades already imported from an
overlapping statement are skipped by execution ID.`,
		Args: appcmd.ExactArgs(1),
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
	DB     string
}

func newFlags() *flags {
	return &flags{}
}

// Bind registers the flag definitions with the given flag set.
func (f *flags) Bind(flagSet *pflag.FlagSet) {
	ibflexcmd.BindConfigFlag(flagSet, &f.Config)
	flagSet.StringVar(&f.DB, dbFlagName, "", "The SQLite database file (required)")
}

func run(ctx context.Context, container appext.Container, flags *flags) (retErr error) {
	if flags.DB == "" {
		return appcmd.NewInvalidArgumentErrorf("--%s is required", dbFlagName)
	}
	filePath := container.Arg(0)
	statements, err := ibflexcmd.ReadStatements(container, flags.Config, filePath)
	if err != nil {
		return err
	}
	dbPath, err := xos.ExpandHome(flags.DB)
	if err != nil {
		return err
	}
	store, err := ibflexstore.Open(container.Logger(), dbPath)
	if err != nil {
		return err
	}
	defer func() {
		retErr = errors.Join(retErr, store.Close())
	}()
	importID, err := store.Import(ctx, filePath, statements)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(container.Stdout(), "%s\n", importID)
	return err
}
