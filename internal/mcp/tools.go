package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/gorewood/clickup-export/internal/config"
	"github.com/gorewood/clickup-export/internal/export"
	"github.com/gorewood/clickup-export/internal/output"
	"github.com/gorewood/clickup-export/internal/page"
)

// ExportOutput is the output of both export tools.
type ExportOutput struct {
	OutputDir     string `json:"output_dir"     jsonschema:"directory the doc was written to"`
	Pages         int    `json:"pages"          jsonschema:"number of pages visited"`
	MarkdownFiles int    `json:"markdown_files" jsonschema:"number of .md files written"`
	MetadataFiles int    `json:"metadata_files" jsonschema:"number of .meta.json files written"`
	Directories   int    `json:"directories"    jsonschema:"number of page directories created"`
	Collisions    int    `json:"collisions"     jsonschema:"number of sibling pages that exported under an already used name"`
}

// --- export_doc tool ---

// ExportDocInput is the input for the export_doc tool.
type ExportDocInput struct {
	WorkspaceID string `json:"workspace_id"           jsonschema:"ClickUp workspace id (required)"`
	DocID       string `json:"doc_id"                 jsonschema:"ClickUp doc id (required)"`
	OutputDir   string `json:"output_dir,omitempty"   jsonschema:"output directory; defaults to the configured one"`
	OnCollision string `json:"on_collision,omitempty" jsonschema:"overwrite (default) or fail when sibling pages share a file name"`
}

func handleExportDoc(defaults config.Settings, fetcher Fetcher) mcp.ToolHandlerFor[ExportDocInput, ExportOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ExportDocInput) (*mcp.CallToolResult, ExportOutput, error) {
		if fetcher == nil {
			return nil, ExportOutput{}, errors.New(
				"no ClickUp API key configured; set CLICKUP_API_TOKEN before starting the server")
		}

		settings := defaults
		settings.WorkspaceID = input.WorkspaceID
		settings.DocID = input.DocID
		applyOutputInput(&settings, input.OutputDir, input.OnCollision)
		if err := settings.Validate(); err != nil {
			return nil, ExportOutput{}, toolError(err)
		}

		data, err := fetcher.GetDocPages(ctx, settings.WorkspaceID, settings.DocID)
		if err != nil {
			return nil, ExportOutput{}, toolError(err)
		}

		return exportData(data, settings)
	}
}

// --- export_pages tool ---

// ExportPagesInput is the input for the export_pages tool.
type ExportPagesInput struct {
	PagesJSON   string `json:"pages_json"             jsonschema:"JSON array of page objects, as returned by the ClickUp docs API (required)"`
	OutputDir   string `json:"output_dir"             jsonschema:"output directory (required)"`
	OnCollision string `json:"on_collision,omitempty" jsonschema:"overwrite (default) or fail when sibling pages share a file name"`
}

func handleExportPages(defaults config.Settings) mcp.ToolHandlerFor[ExportPagesInput, ExportOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input ExportPagesInput) (*mcp.CallToolResult, ExportOutput, error) {
		if input.OutputDir == "" {
			return nil, ExportOutput{}, errors.New("output_dir is required")
		}

		settings := defaults
		applyOutputInput(&settings, input.OutputDir, input.OnCollision)
		if err := settings.ValidateOutput(); err != nil {
			return nil, ExportOutput{}, toolError(err)
		}

		return exportData([]byte(input.PagesJSON), settings)
	}
}

// --- shared ---

func applyOutputInput(settings *config.Settings, outputDir, onCollision string) {
	if outputDir != "" {
		settings.OutputDir = outputDir
	}
	if onCollision != "" {
		settings.OnCollision = onCollision
	}
}

// exportData validates a raw page array and exports it.
func exportData(data []byte, settings config.Settings) (*mcp.CallToolResult, ExportOutput, error) {
	pages, err := page.Parse(data)
	if err != nil {
		return nil, ExportOutput{}, toolError(err)
	}

	policy, err := export.ParseCollisionPolicy(settings.OnCollision)
	if err != nil {
		return nil, ExportOutput{}, toolError(err)
	}

	result, err := export.New(export.WithCollisionPolicy(policy)).ExportTree(pages, settings.OutputDir)
	if err != nil {
		return nil, ExportOutput{}, toolError(err)
	}

	return nil, ExportOutput{
		OutputDir:     settings.OutputDir,
		Pages:         result.Pages,
		MarkdownFiles: result.MarkdownFiles,
		MetadataFiles: result.MetadataFiles,
		Directories:   result.Directories,
		Collisions:    result.Collisions,
	}, nil
}

// toolError puts the cause of an exit error into the message the agent sees.
func toolError(err error) error {
	var exitErr *output.ExitError
	if errors.As(err, &exitErr) && exitErr.Cause != nil {
		return fmt.Errorf("%s: %w", exitErr.Message, exitErr.Cause)
	}
	return err
}
