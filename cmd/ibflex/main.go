// Copyright 2026 Peter Edge
//
// All rights reserved.

package main

import (
	"context"

	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/ibflex/cmd/ibflex/internal/command/config"
	"github.com/bufdev/ibflex/cmd/ibflex/internal/command/download"
	"github.com/bufdev/ibflex/cmd/ibflex/internal/command/statement"
)

func main() {
	appcmd.Main(context.Background(), newRootCommand("ibflex"))
}

// newRootCommand creates the root ibflex command with all sub-commands.
func newRootCommand(name string) *appcmd.Command {
	builder := appext.NewBuilder(name)
	return &appcmd.Command{
		Use:                 name,
		Short:               "Decode Interactive Brokers Flex Query statements",
		BindPersistentFlags: builder.BindRoot,
		SubCommands: []*appcmd.Command{
			config.NewCommand("config", builder),
			download.NewCommand("download", builder),
			statement.NewCommand("statement", builder),
		},
	}
}
