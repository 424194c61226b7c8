// ABOUTME: CLI commands for Charm-based sync.
// ABOUTME: Supports link, unlink, status, repair, reset, and wipe operations.
package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/charm/kv"
	"github.com/fatih/color"
	"github.com/harperreed/fitness/internal/charm"
	"github.com/harperreed/fitness/internal/config"
	"github.com/harperreed/fitness/internal/storage"
	"github.com/spf13/cobra"
)

var syncRepairForce bool

var syncCmd = &cobra.Command{
	Use:     "sync",
	Aliases: []string{"s"},
	Short:   "Sync fitness data across devices",
	Long: `Sync fitness data across devices using Charm Cloud.

Sync applies to the charm backend. Your data is E2E encrypted with your
SSH key before upload.

GETTING STARTED:

  1. Link your device (creates/uses SSH key automatically):
     fitness sync link

  2. Switch to the charm backend, copying your local data:
     fitness migrate --to charm
     and set "backend": "charm" in ~/.config/fitness/config.json

  3. Check sync status:
     fitness sync status

COMMANDS:

  link        Link this device to your Charm account
  unlink      Disconnect this device from Charm
  status      Show sync status and account info
  repair      Repair database corruption (checkpoints WAL, removes SHM, vacuums)
  reset       Reset local data and restore from cloud (destructive)
  wipe        Delete cloud and local data (destructive)`,
}

var syncLinkCmd = &cobra.Command{
	Use:         "link",
	Short:       "Link this device to Charm",
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := charm.ConfigureHost(cfg.CharmHost); err != nil {
			return err
		}
		if err := runCharm("link"); err != nil {
			return fmt.Errorf("failed to link: %w\n\nMake sure 'charm' CLI is installed: go install github.com/charmbracelet/charm@latest", err)
		}
		color.Green("\n✓ Device linked to Charm")

		if cfg.GetBackend() != config.BackendCharm {
			fmt.Println("Your data is stored locally. Run 'fitness migrate --to charm' to sync it.")
			return nil
		}

		c, err := charm.Open(charm.Options{Host: cfg.CharmHost})
		if err != nil {
			color.Yellow("⚠ Initial sync failed: %v", err)
			return nil
		}
		defer c.Close()
		if err := c.Sync(); err != nil {
			color.Yellow("⚠ Initial sync failed: %v", err)
		} else {
			color.Green("✓ Initial sync complete")
		}
		return nil
	},
}

var syncUnlinkCmd = &cobra.Command{
	Use:         "unlink",
	Short:       "Disconnect from Charm",
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := charm.ConfigureHost(cfg.CharmHost); err != nil {
			return err
		}
		if err := runCharm("unlink"); err != nil {
			return fmt.Errorf("failed to unlink: %w", err)
		}
		color.Green("✓ Device unlinked from Charm")
		fmt.Println("Your local fitness data is preserved.")
		return nil
	},
}

var syncStatusCmd = &cobra.Command{
	Use:         "status",
	Short:       "Show sync status",
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := charm.ConfigureHost(cfg.CharmHost); err != nil {
			return err
		}

		fmt.Println("Backend:", cfg.GetBackend())
		fmt.Println("Server: ", os.Getenv("CHARM_HOST"))

		id, err := charm.AccountID()
		if err != nil {
			color.Yellow("Not linked to Charm")
			fmt.Println("\nRun 'fitness sync link' to connect to Charm.")
			return nil
		}
		fmt.Println("Charm ID:", id)

		if cfg.GetBackend() != config.BackendCharm {
			return nil
		}

		c, err := charm.Open(charm.Options{Host: cfg.CharmHost})
		if err != nil {
			return fmt.Errorf("failed to open charm storage: %w", err)
		}
		defer c.Close()

		state, err := storage.LoadState(c, nil)
		if err != nil {
			return fmt.Errorf("failed to load state: %w", err)
		}

		color.Green("✓ Connected to Charm")
		if c.IsReadOnly() {
			color.Yellow("  Read-only: another process holds the database")
		}
		fmt.Printf("  Activities: %d\n", len(state.Activities))
		fmt.Printf("  Goals: %d\n", len(state.Goals))
		return nil
	},
}

var syncWipeCmd = &cobra.Command{
	Use:         "wipe",
	Short:       "Delete all cloud and local data",
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("This will PERMANENTLY DELETE all cloud backups and local fitness data.")
		fmt.Print("Type 'wipe' to confirm: ")
		var answer string
		_, _ = fmt.Fscanln(confirmInput, &answer)
		if answer != "wipe" {
			fmt.Println("Canceled.")
			return nil
		}

		if err := charm.ConfigureHost(cfg.CharmHost); err != nil {
			return err
		}
		result, err := kv.Wipe(charm.DefaultDBName)
		if err != nil {
			return fmt.Errorf("wipe failed: %w", err)
		}

		color.Green("✓ Data wiped successfully")
		fmt.Printf("  Cloud backups deleted: %d\n", result.CloudBackupsDeleted)
		fmt.Printf("  Local files deleted: %d\n", result.LocalFilesDeleted)
		return nil
	},
}

var syncRepairCmd = &cobra.Command{
	Use:         "repair",
	Short:       "Repair database corruption",
	Annotations: map[string]string{skipStore: "true"},
	Long: `Repair database corruption by checkpointing WAL, removing SHM files, checking integrity, and vacuuming.

Use this when you encounter database lock errors or corruption.
Run with --force to attempt recovery even if integrity checks fail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := charm.ConfigureHost(cfg.CharmHost); err != nil {
			return err
		}

		fmt.Println("Repairing fitness database...")
		result, err := kv.Repair(charm.DefaultDBName, syncRepairForce)

		if result.WalCheckpointed {
			color.Green("  ✓ WAL checkpointed")
		}
		if result.ShmRemoved {
			color.Green("  ✓ SHM file removed")
		}
		if result.IntegrityOK {
			color.Green("  ✓ Integrity check passed")
		} else {
			color.Red("  ✗ Integrity check failed")
		}
		if result.Vacuumed {
			color.Green("  ✓ Database vacuumed")
		}

		if err != nil {
			if !syncRepairForce {
				color.Yellow("\nRun with --force to attempt recovery.")
			}
			return fmt.Errorf("repair failed: %w", err)
		}

		color.Green("\n✓ Repair complete")
		return nil
	},
}

var syncResetCmd = &cobra.Command{
	Use:         "reset",
	Short:       "Reset local data and restore from cloud",
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm("This will DELETE all local fitness data and restore from cloud.\nContinue? [y/N]: ") {
			fmt.Println("Canceled.")
			return nil
		}

		if err := charm.ConfigureHost(cfg.CharmHost); err != nil {
			return err
		}
		if err := kv.Reset(charm.DefaultDBName); err != nil {
			return fmt.Errorf("reset failed: %w", err)
		}

		color.Green("✓ Local data reset and restored from cloud")
		return nil
	},
}

func runCharm(arg string) error {
	c := exec.Command("charm", arg)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

func init() {
	syncRepairCmd.Flags().BoolVar(&syncRepairForce, "force", false, "attempt recovery even if integrity checks fail")

	syncCmd.AddCommand(syncLinkCmd)
	syncCmd.AddCommand(syncUnlinkCmd)
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncRepairCmd)
	syncCmd.AddCommand(syncResetCmd)
	syncCmd.AddCommand(syncWipeCmd)
	rootCmd.AddCommand(syncCmd)
}
