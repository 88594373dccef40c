package main

import (
	"github.com/spf13/cobra"

	"switchyard.app/platform/core/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(cmd, db.MigrateUp)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigration(cmd, db.MigrateDown)
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied and pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return db.MigrationStatus(cmd.Context(), cfg.DB.DSN, cmd.OutOrStdout())
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runMigration(cmd *cobra.Command, dir db.MigrationDirection) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := db.Migrate(cmd.Context(), cfg.DB.DSN, dir); err != nil {
		return err
	}
	cmd.Printf("migrations %s complete\n", dir)
	return nil
}
