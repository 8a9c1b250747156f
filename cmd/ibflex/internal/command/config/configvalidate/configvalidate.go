// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package configvalidate implements the "config validate" command.
package configvalidate

import (
	"context"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/ibflex/cmd/ibflex/internal/ibflexcmd"
	"github.com/bufdev/ibflex/internal/ibflex/ibflexconfig"
	"github.com/spf13/pflag"
)

// NewCommand returns a new config validate command.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	flags := newFlags()
	return &appcmd.Command{
		Use:   name,
		Short: "Validate the configuration file",
		Args:  appcmd.NoArgs,
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
	filePath := ibflexcmd.ConfigFilePath(container, flags.Config)
	if err := ibflexconfig.ValidateConfigFile(filePath); err != nil {
		return err
	}
	container.Logger().Info("configuration is valid", "path", filePath)
	return nil
}
