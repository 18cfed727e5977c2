// Package mcp provides a Model Context Protocol server for clickup-export.
// It exposes doc export as MCP tools that any MCP-capable agent can use.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/clickup-export/internal/config"
)

// Fetcher fetches the raw page array of a ClickUp doc.
type Fetcher interface {
	GetDocPages(ctx context.Context, workspaceID, docID string) ([]byte, error)
}

// NewServer creates an MCP server with all export tools registered.
// settings supplies defaults for tool arguments. fetcher may be nil when no
// API key is configured; export_doc then fails and export_pages still works.
func NewServer(version string, settings config.Settings, fetcher Fetcher) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "clickup-export",
		Version: version,
	}, nil)
	registerTools(server, settings, fetcher)
	return server
}

func boolPtr(b bool) *bool {
	return &b
}

// writeAnnotations returns annotations for tools that write files.
// Re-running an export overwrites the same files.
func writeAnnotations(openWorld bool) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		DestructiveHint: boolPtr(true),
		IdempotentHint:  true,
		OpenWorldHint:   boolPtr(openWorld),
	}
}

// registerTools adds all export tools to the server.
func registerTools(server *mcp.Server, settings config.Settings, fetcher Fetcher) {
	mcp.AddTool(server, &mcp.Tool{
		Name: "export_doc",
		Description: "Fetch a ClickUp doc with all nested pages and write it to a directory as Markdown files " +
			"with .meta.json sidecars. Returns counts of pages, files and directories written.",
		Annotations: writeAnnotations(true),
	}, handleExportDoc(settings, fetcher))

	mcp.AddTool(server, &mcp.Tool{
		Name: "export_pages",
		Description: "Write a JSON array of page objects (id, name, content, pages) to a directory as Markdown " +
			"files with .meta.json sidecars, without contacting ClickUp.",
		Annotations: writeAnnotations(false),
	}, handleExportPages(settings))
}
