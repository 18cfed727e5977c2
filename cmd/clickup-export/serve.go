package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/gorewood/clickup-export/internal/config"
	exportmcp "github.com/gorewood/clickup-export/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run clickup-export as a Model Context Protocol (MCP) server over stdio.

This exposes doc export as MCP tools that any MCP-capable agent
environment can use.

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "clickup-export": {
        "command": "clickup-export",
        "args": ["serve"],
        "env": {"CLICKUP_API_TOKEN": "pk_..."}
      }
    }
  }

Available tools: export_doc, export_pages`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.Load(config.Flags{})
			if err != nil {
				return err
			}
			server := exportmcp.NewServer(buildVersion(), settings, serverFetcher(settings))
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

// serverFetcher returns a ClickUp client, or nil when no API key is set.
func serverFetcher(settings config.Settings) exportmcp.Fetcher {
	if settings.APIKey == "" {
		return nil
	}
	fetcher, err := newClickUpFetcher(settings)
	if err != nil {
		return nil
	}
	return fetcher
}
