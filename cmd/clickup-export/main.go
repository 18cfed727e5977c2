// Package main provides the entry point for the clickup-export CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/clickup-export/internal/config"
	"github.com/gorewood/clickup-export/internal/envfile"
	"github.com/gorewood/clickup-export/internal/output"
)

// Build info set via ldflags at build time by goreleaser.
// Example: go build -ldflags "-X main.version=1.0.0 -X main.commit=abc123 -X main.date=2024-01-01"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// useColor applies the --color flag to TTY detection on stdout.
func useColor(cmd *cobra.Command) bool {
	mode := "auto"
	if flag := cmd.Root().PersistentFlags().Lookup("color"); flag != nil {
		mode = flag.Value.String()
	}
	return output.ResolveColorMode(mode, output.IsTTY(cmd.OutOrStdout()))
}

// newPrinter builds the printer for a command: results on stdout, errors,
// warnings and progress on stderr.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), useColor(cmd)).
		WithStderr(cmd.ErrOrStderr())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	code := run()
	os.Exit(code)
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command, which performs the export.
func newRootCmd() *cobra.Command {
	return newRootCmdInternal(newClickUpFetcher)
}

// newRootCmdInternal creates the root command with an injectable ClickUp
// fetcher factory.
func newRootCmdInternal(newFetcher fetcherFactory) *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "clickup-export",
		Short: "Export a ClickUp doc as Markdown files",
		Long: `clickup-export - Export a ClickUp doc and all of its nested pages to disk.

Every page with content becomes <name>.md (the content, verbatim) plus
<name>.meta.json (every page field except the child pages). Pages with
children get a <name>/ directory holding their children.

Examples:
  clickup-export -w 9012345 -d abc-123                 # uses CLICKUP_API_TOKEN
  clickup-export -k pk_123 -w 9012345 -d abc-123 -o ./docs
  clickup-export -w 9012345 -d abc-123 --save-raw doc.json
  clickup-export convert doc.json -o ./docs            # re-export a saved doc offline`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, newFetcher, flags)
		},
	}

	// Environment variables always take precedence over env file values.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		loadEnvFiles()
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")
	addExportFlags(cmd, &flags)

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// loadEnvFiles loads env files in priority order. First match for each
// variable wins.
//
// Resolution order:
//  1. $CWD/.env.local
//  2. $CWD/.env
//  3. ~/.config/clickup-export/env
func loadEnvFiles() {
	_ = envfile.Load(config.EnvFilePaths()...)
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "export", Title: "Export Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newConvertCmd(), "export")
	addGroupedCommand(cmd, newServeCmd(), "agent")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
