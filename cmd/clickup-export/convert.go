package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gorewood/clickup-export/internal/config"
	"github.com/gorewood/clickup-export/internal/output"
)

// convertFlags holds flags for the convert command.
type convertFlags struct {
	outputDir   string
	onCollision string
	verbose     bool
}

// newConvertCmd creates the convert command.
func newConvertCmd() *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert <file.json>",
		Short: "Export a saved page array without contacting ClickUp",
		Long: `Export a page array previously saved with --save-raw (or fetched by other
means) without contacting ClickUp. Use - to read from stdin.

Examples:
  clickup-export convert doc.json
  clickup-export convert doc.json -o ./docs --on-collision fail
  curl ... | clickup-export convert - -o ./docs`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.outputDir, "outputDir", "o", "", "Output directory (default: "+config.DefaultOutputDir+")")
	cmd.Flags().StringVar(&flags.onCollision, "on-collision", "", "When sibling pages share a file name: overwrite or fail (default: overwrite)")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Print every file and directory as it is created")

	return cmd
}

// runConvert exports the page array in path ("-" for stdin).
func runConvert(cmd *cobra.Command, path string, flags convertFlags) error {
	printer := newPrinter(cmd)

	settings, err := loadSettings(config.Flags{
		OutputDir:   flags.outputDir,
		OnCollision: flags.onCollision,
	}, config.Settings.ValidateOutput)
	if err != nil {
		printer.Error(err)
		return err
	}

	data, err := readInput(cmd, path)
	if err != nil {
		printer.Error(err)
		return err
	}

	return exportData(printer, data, settings, flags.verbose)
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, output.NewSystemErrorWithCause("failed to read stdin", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, output.NewUserErrorWithCause("input file not found: "+path, err)
	}
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to read "+path, err)
	}
	return data, nil
}
