// ABOUTME: CLI command for copying data between storage backends.
// ABOUTME: Moves every stored blob from one backend to another.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/fittrack/internal/storage"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data between storage backends",
	Long: `Copy all FitTrack data from one storage backend to another.

BACKENDS:

  sqlite   ~/.local/share/fittrack/fittrack.db (default)
  badger   ~/.local/share/fittrack/badger/
  charm    Charm KV, synced across devices

The destination must be empty unless --force is given. Afterwards set
"backend" in ~/.config/fittrack/config.json to the new backend.

USAGE:

  fittrack migrate --from charm --to sqlite --dry-run
  fittrack migrate --from charm --to sqlite`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if migrateFrom == migrateTo {
			return fmt.Errorf("source and destination are both %s", migrateFrom)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		srcCfg, dstCfg := *cfg, *cfg
		srcCfg.Backend, dstCfg.Backend = migrateFrom, migrateTo

		src, err := srcCfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("open %s: %w", migrateFrom, err)
		}
		defer src.Close()

		keys, err := src.Keys("")
		if err != nil {
			return fmt.Errorf("list %s: %w", migrateFrom, err)
		}
		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Fprintf(cmd.OutOrStdout(), "Would copy %d entries from %s to %s\n", len(keys), migrateFrom, migrateTo)
			return nil
		}

		dst, err := dstCfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("open %s: %w", migrateTo, err)
		}
		defer dst.Close()

		empty, err := storage.IsEmpty(dst)
		if err != nil {
			return err
		}
		if !empty && !migrateForce {
			return fmt.Errorf("%s already holds data (use --force to overwrite matching entries)", migrateTo)
		}

		sum, err := storage.MigrateData(src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		color.Green("✓ Copied %d entries (%d workouts) from %s to %s", sum.Blobs, sum.Workouts, migrateFrom, migrateTo)
		return nil
	},
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "charm", "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "sqlite", "destination backend")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "write into a non-empty destination")
	rootCmd.AddCommand(migrateCmd)
}
