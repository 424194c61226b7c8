// ABOUTME: CLI command for moving fitness data between storage backends.
// ABOUTME: Copies the four state records from one backend to another.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/config"
	"github.com/harperreed/fitness/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateForce  bool
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between storage backends",
	Long: `Copy fitness data from one storage backend to another.

BACKENDS:

  sqlite   ~/.local/share/fitness/fitness.db (default)
  badger   ~/.local/share/fitness/badger/
  file     ~/.local/share/fitness/records/*.json
  charm    Charm KV with cloud sync

The destination must be empty unless --force is given. After migrating,
set "backend" in ~/.config/fitness/config.json (or FITNESS_BACKEND) to
start using the new backend.

EXAMPLES:

  fitness migrate --from sqlite --to badger --dry-run
  fitness migrate --from sqlite --to charm
  fitness migrate --from file --to sqlite --force`,
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == "" {
			migrateFrom = cfg.GetBackend()
		}
		for _, b := range []string{migrateFrom, migrateTo} {
			if !config.IsValidBackend(b) {
				return fmt.Errorf("unknown backend %q (use %s)", b, strings.Join(config.Backends, ", "))
			}
		}
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are both %s", migrateFrom)
		}

		// Opening a directory backend creates it; refuse to migrate from nothing.
		if path := cfg.BackendPath(migrateFrom); path != "" && migrateFrom != config.BackendSQLite {
			nonEmpty, err := storage.IsDirNonEmpty(path)
			if err != nil {
				return err
			}
			if !nonEmpty {
				return fmt.Errorf("no %s data found at %s", migrateFrom, path)
			}
		}

		src, err := cfg.OpenBackend(migrateFrom)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", migrateFrom, err)
		}
		defer src.Close()

		has, err := storage.HasState(src)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", migrateFrom, err)
		}
		if !has {
			return fmt.Errorf("no fitness data in %s", migrateFrom)
		}

		if migrateDryRun {
			state, err := storage.LoadState(src, nil)
			if err != nil {
				return fmt.Errorf("failed to load %s: %w", migrateFrom, err)
			}
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Printf("Would copy %d activities and %d goals from %s to %s\n",
				len(state.Activities), len(state.Goals), migrateFrom, migrateTo)
			return nil
		}

		dst, err := cfg.OpenBackend(migrateTo)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", migrateTo, err)
		}
		defer dst.Close()

		if !migrateForce {
			exists, err := storage.HasState(dst)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", migrateTo, err)
			}
			if exists {
				return fmt.Errorf("%s already has fitness data (use --force to overwrite)", migrateTo)
			}
		}

		summary, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("migrated", "from", migrateFrom, "to", migrateTo, "records", len(summary.Copied))

		color.Green("✓ Migrated %s → %s", migrateFrom, migrateTo)
		fmt.Printf("  Records copied: %s\n", strings.Join(summary.Copied, ", "))
		if len(summary.Missing) > 0 {
			fmt.Printf("  Not present in source: %s\n", strings.Join(summary.Missing, ", "))
		}
		fmt.Printf("\nSet \"backend\": %q in %s to switch.\n", migrateTo, config.GetConfigPath())
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "source backend (default: configured backend)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "overwrite data already in the destination")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	_ = migrateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(migrateCmd)
}
