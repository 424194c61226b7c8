// ABOUTME: CLI commands for export, import, reset and demo data.
// ABOUTME: Export writes JSON, YAML or Markdown; import replaces state from a JSON backup.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/storage"
	"github.com/harperreed/fitness/internal/tracker"
	"github.com/spf13/cobra"
)

var (
	exportOutput string

	importRebuildWeekly bool

	resetYes bool
	demoYes  bool
)

// confirmInput is where confirmation prompts read from.
var confirmInput io.Reader = os.Stdin

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export fitness data",
	Long: `Export fitness data in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export grouped for reading
  markdown   Markdown tables (for notes and sharing)

EXAMPLES:

  fitness export json                  # Print JSON to stdout
  fitness export json -o backup.json   # Save to file
  fitness export yaml`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		state := trk.Snapshot()
		now := timeNow()

		var data []byte
		var err error
		switch args[0] {
		case "json":
			data, err = storage.ExportJSON(&state, now)
		case "yaml":
			data, err = storage.ExportYAML(&state, now)
		case "markdown", "md":
			data = []byte(storage.ExportMarkdown(&state, now))
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
		fmt.Println(string(data))
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import fitness data from a JSON backup",
	Long: `Import fitness data from a file written by 'fitness export json'.

The backup replaces all current activities, goals, stats and weekly totals.
With --rebuild-weekly the weekly totals are recomputed from the imported
activities instead of taken from the backup.

EXAMPLES:

  fitness import backup.json
  fitness import backup.json --rebuild-weekly`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		state, err := storage.ImportJSON(data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		trk.Replace(state)
		if importRebuildWeekly {
			trk.RebuildWeekly()
		}
		color.Green("✓ Imported %d activities and %d goals from %s",
			len(state.Activities), len(state.Goals), args[0])
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all fitness data",
	Long: `Delete all activities, goals, body stats and weekly totals from storage.

The next run starts from an empty tracker with default body stats.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !resetYes && !confirm("This will DELETE all fitness data. Continue? [y/N]: ") {
			fmt.Println("Canceled.")
			return nil
		}

		if err := storage.Reset(repo); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}
		// Nothing left to save; the deleted records are the new state.
		dirty.Store(false)

		color.Green("✓ All fitness data deleted")
		return nil
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Load sample data",
	Long: `Replace the current data with a small sample dataset: three goals and
four activities over the last three days.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(trk.Activities()) > 0 || len(trk.Goals()) > 0 {
			if !demoYes && !confirm("This will REPLACE your current data with demo data. Continue? [y/N]: ") {
				fmt.Println("Canceled.")
				return nil
			}
		}

		trk.Replace(tracker.DemoState(timeNow()))
		color.Green("✓ Loaded demo data")
		fmt.Println("  Try: fitness dashboard")
		return nil
	},
}

func confirm(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(confirmInput)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	importCmd.Flags().BoolVar(&importRebuildWeekly, "rebuild-weekly", false, "recompute weekly totals from the imported activities")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip confirmation")
	demoCmd.Flags().BoolVarP(&demoYes, "yes", "y", false, "skip confirmation")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(demoCmd)
}
