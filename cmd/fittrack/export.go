// ABOUTME: CLI commands for exporting and importing FitTrack data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/fittrack/internal/models"
	"github.com/harperreed/fittrack/internal/storage"
)

var (
	exportOutput string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export your data",
	Long: `Export the profile, workouts and quiz answers. The PIN is never exported.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export (human-readable)
  markdown   Markdown table of workouts

EXAMPLES:

  fittrack export json -o backup.json
  fittrack export markdown --since 2024-01-01`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error

		switch args[0] {
		case "json":
			data, err = storage.ExportJSON(fitApp.Store)
		case "yaml":
			data, err = storage.ExportYAML(fitApp.Store)
		case "markdown":
			var since *models.Date
			if exportSince != "" {
				d, perr := models.ParseDate(exportSince)
				if perr != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
				since = &d
			}
			var md string
			md, err = storage.ExportMarkdown(fitApp.Store, since)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", args[0])
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import workouts and quiz answers from a JSON export",
	Long: `Import workouts and quiz answers from a JSON export.

Workouts keep their IDs, so importing the same file twice replaces rather
than duplicates. The account in the file is ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		sum, err := fitApp.Import(raw)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		if err := fitApp.SyncStreak(); err != nil {
			return err
		}
		color.Green("✓ Imported %d workouts and %d quiz answers from %s", sum.Workouts, sum.QuizAnswers, args[0])
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include workouts since date (markdown, YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
