package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gorewood/clickup-export/internal/clickup"
	"github.com/gorewood/clickup-export/internal/config"
	"github.com/gorewood/clickup-export/internal/export"
	"github.com/gorewood/clickup-export/internal/output"
	"github.com/gorewood/clickup-export/internal/page"
)

// docFetcher fetches the raw page array of a doc.
type docFetcher interface {
	GetDocPages(ctx context.Context, workspaceID, docID string) ([]byte, error)
}

// fetcherFactory builds a docFetcher from validated settings.
type fetcherFactory func(settings config.Settings) (docFetcher, error)

// newClickUpFetcher returns a ClickUp API client for settings.
func newClickUpFetcher(settings config.Settings) (docFetcher, error) {
	client, err := clickup.New(settings.APIKey,
		clickup.WithBaseURL(settings.APIURL),
		clickup.WithTimeout(settings.Timeout))
	if err != nil {
		return nil, err
	}
	return client, nil
}

// exportFlags holds the root command flags.
type exportFlags struct {
	apiKey      string
	workspaceID string
	docID       string
	outputDir   string
	onCollision string
	saveRaw     string
	verbose     bool
}

func (f exportFlags) config() config.Flags {
	return config.Flags{
		APIKey:      f.apiKey,
		WorkspaceID: f.workspaceID,
		DocID:       f.docID,
		OutputDir:   f.outputDir,
		OnCollision: f.onCollision,
	}
}

// addExportFlags registers the export flags on the root command.
func addExportFlags(cmd *cobra.Command, flags *exportFlags) {
	cmd.Flags().StringVarP(&flags.apiKey, "apiKey", "k", "", "ClickUp API key (default: $CLICKUP_API_TOKEN)")
	cmd.Flags().StringVarP(&flags.workspaceID, "workspaceId", "w", "", "ClickUp workspace id (default: $CLICKUP_WORKSPACE_ID)")
	cmd.Flags().StringVarP(&flags.docID, "docId", "d", "", "ClickUp doc id")
	cmd.Flags().StringVarP(&flags.outputDir, "outputDir", "o", "", "Output directory (default: "+config.DefaultOutputDir+")")
	cmd.Flags().StringVar(&flags.onCollision, "on-collision", "", "When sibling pages share a file name: overwrite or fail (default: overwrite)")
	cmd.Flags().StringVar(&flags.saveRaw, "save-raw", "", "Also save the fetched page JSON to this file")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Print every file and directory as it is created")
}

// runExport fetches a doc from ClickUp and exports it.
func runExport(cmd *cobra.Command, newFetcher fetcherFactory, flags exportFlags) error {
	printer := newPrinter(cmd)

	settings, err := loadSettings(flags.config(), config.Settings.Validate)
	if err != nil {
		printer.Error(err)
		return err
	}

	fetcher, err := newFetcher(settings)
	if err != nil {
		printer.Error(err)
		return err
	}

	if flags.verbose {
		printer.Progress("Fetching doc %s from workspace %s", settings.DocID, settings.WorkspaceID)
	}
	data, err := fetcher.GetDocPages(cmd.Context(), settings.WorkspaceID, settings.DocID)
	if err != nil {
		printer.Error(err)
		return err
	}

	if flags.saveRaw != "" {
		if err := os.WriteFile(flags.saveRaw, data, 0o600); err != nil {
			err = output.NewSystemErrorWithCause("failed to save raw response to "+flags.saveRaw, err)
			printer.Error(err)
			return err
		}
		if flags.verbose {
			printer.Progress("Saved raw response: %s", flags.saveRaw)
		}
	}

	return exportData(printer, data, settings, flags.verbose)
}

// loadSettings resolves settings from flags, environment and config file and
// checks them before any network or filesystem work.
func loadSettings(flags config.Flags, validate func(config.Settings) error) (config.Settings, error) {
	settings, err := config.Load(flags)
	if err != nil {
		return config.Settings{}, err
	}
	if err := validate(settings); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

// exportData validates a raw page array, exports it and prints the summary.
func exportData(printer *output.Printer, data []byte, settings config.Settings, verbose bool) error {
	pages, err := parsePages(data)
	if err != nil {
		printer.Error(err)
		return err
	}

	policy, err := export.ParseCollisionPolicy(settings.OnCollision)
	if err != nil {
		printer.Error(err)
		return err
	}

	exporter := export.New(
		export.WithCollisionPolicy(policy),
		export.WithObserver(progressObserver(printer, policy, verbose)),
	)
	result, err := exporter.ExportTree(pages, settings.OutputDir)
	if err != nil {
		printer.Error(err)
		return err
	}

	return printSummary(printer, result, settings.OutputDir)
}

// parsePages decodes a page array, mapping validation failures to user errors.
func parsePages(data []byte) ([]*page.Page, error) {
	pages, err := page.Parse(data)
	if err == nil {
		return pages, nil
	}

	var validationErr *page.ValidationError
	if errors.As(err, &validationErr) {
		return nil, output.NewUserErrorWithCause("invalid page input", validationErr)
	}
	return nil, output.NewSystemErrorWithCause("failed to read page input", err)
}

// progressObserver renders export events. Collisions are warned about in
// human mode; file and directory events are shown only with --verbose.
func progressObserver(printer *output.Printer, policy export.CollisionPolicy, verbose bool) export.Observer {
	return func(ev export.Event) {
		switch ev.Kind {
		case export.EventCollision:
			if policy == export.CollisionOverwrite && !printer.IsJSON() {
				printer.Warn("page %s overwrites page %s at %s", ev.Page.ID, ev.PreviousID, ev.Path)
			}
		case export.EventMarkdown:
			if verbose {
				printer.Progress("Created file: %s", ev.Path)
			}
		case export.EventMetadata:
			if verbose {
				printer.Progress("Created metadata file: %s", ev.Path)
			}
		case export.EventDirectory:
			if verbose {
				printer.Progress("Created directory: %s", ev.Path)
			}
		}
	}
}

// exportSummary is the JSON result of an export.
type exportSummary struct {
	Status    string `json:"status"`
	OutputDir string `json:"output_dir"`
	export.Result
}

// printSummary prints the export result.
func printSummary(printer *output.Printer, result *export.Result, outputDir string) error {
	if printer.IsJSON() {
		return printer.WriteJSON(exportSummary{
			Status:    "ok",
			OutputDir: outputDir,
			Result:    *result,
		})
	}

	if err := printer.Success(map[string]any{
		"message": fmt.Sprintf("Export complete! Files saved in: %s", outputDir),
	}); err != nil {
		return err
	}
	printer.KeyValue("Pages", strconv.Itoa(result.Pages))
	printer.KeyValue("Markdown files", strconv.Itoa(result.MarkdownFiles))
	printer.KeyValue("Metadata files", strconv.Itoa(result.MetadataFiles))
	printer.KeyValue("Directories", strconv.Itoa(result.Directories))
	if result.Collisions > 0 {
		printer.KeyValue("Name collisions", strconv.Itoa(result.Collisions))
	}
	return nil
}
