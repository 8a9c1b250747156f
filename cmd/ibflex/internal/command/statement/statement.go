// Copyright 2026 Peter Edge
//
// All rights reserved.

// Package statement implements the "statement" command group.
package statement

import (
	"buf.build/go/app/appcmd"
	"buf.build/go/app/appext"
	"github.com/bufdev/ibflex/cmd/ibflex/internal/command/statement/statementexport"
	"github.com/bufdev/ibflex/cmd/ibflex/internal/command/statement/statementimport"
	"github.com/bufdev/ibflex/cmd/ibflex/internal/command/statement/statementpositions"
	"github.com/bufdev/ibflex/cmd/ibflex/internal/command/statement/statementsummary"
	"github.com/bufdev/ibflex/cmd/ibflex/internal/command/statement/statementtrades"
	"github.com/bufdev/ibflex/cmd/ibflex/internal/command/statement/statementvalidate"
)

// NewCommand returns a new statement command group.
func NewCommand(name string, builder appext.SubCommandBuilder) *appcmd.Command {
	return &appcmd.Command{
		Use:   name,
		Short: "Decode Flex Query statement files",
		SubCommands: []*appcmd.Command{
			statementexport.NewCommand("export", builder),
			statementimport.NewCommand("import", builder),
			statementpositions.NewCommand("positions", builder),
			statementsummary.NewCommand("summary", builder),
			statementtrades.NewCommand("trades", builder),
			statementvalidate.NewCommand("validate", builder),
		},
	}
}
