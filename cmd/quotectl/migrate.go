package main

import (
	"fmt"

	"quote-service/internal/config"
	"quote-service/internal/database/postgres"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var migrateFlags struct {
	steps int
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the quote service database schema",
	Long: `Apply or roll back the embedded schema migrations.

Connection settings come from the same POSTGRES_* environment variables the
service reads. The database must already exist.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sqlx.DB) error {
			if err := postgres.MigrateUp(db.DB); err != nil {
				return err
			}
			return printVersion(cmd, db)
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations (all of them unless --steps is set)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sqlx.DB) error {
			if err := postgres.MigrateDown(db.DB, migrateFlags.steps); err != nil {
				return err
			}
			return printVersion(cmd, db)
		})
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(db *sqlx.DB) error {
			return printVersion(cmd, db)
		})
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)

	migrateDownCmd.Flags().IntVar(&migrateFlags.steps, "steps", 0, "number of migrations to roll back, 0 for all")
}

func withDB(fn func(db *sqlx.DB) error) error {
	cfg := config.New().PostgresCfg
	db, err := postgres.Connect(postgres.DSN(cfg, cfg.DBname))
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func printVersion(cmd *cobra.Command, db *sqlx.DB) error {
	version, dirty, err := postgres.MigrationVersion(db.DB)
	if err != nil {
		return err
	}
	if dirty {
		fmt.Fprintf(cmd.OutOrStdout(), "schema version %d (dirty)\n", version)
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", version)
	return nil
}
