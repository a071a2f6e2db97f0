package main

import (
	"github.com/spf13/cobra"

	"github.com/nvandessel/beliefsim/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-serve",
		Short: "Start the MCP server (stdio transport)",
		Long: `Start an MCP server exposing beliefsim's scenario tools over stdio:
beliefsim_validate, beliefsim_run, and beliefsim_generate. Intended to
be launched by an MCP client, not interactively.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			server := mcp.NewServer(&mcp.Config{
				Name:    "beliefsim",
				Version: version,
			})
			return server.Run(cmd.Context())
		},
	}
}
