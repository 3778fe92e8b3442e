package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/paysnap/internal/cli"
	"github.com/Veraticus/paysnap/internal/common"
	"github.com/Veraticus/paysnap/internal/storage"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long: `Initialize or update the ledger schema to the latest version.

Every other command migrates on open; this command exists to do it
explicitly or to inspect the current version with --status.`,
		Args: cobra.NoArgs,
		RunE: runMigrate,
	}

	cmd.Flags().Bool("status", false, "Show current schema version without applying changes")

	return cmd
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	status, _ := cmd.Flags().GetBool("status")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if status {
		current, err := store.SchemaVersion(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s\n  database: %s\n  current:  %d\n  latest:   %d\n",
			cli.FormatTitle("Schema status"), cfg.Database.Path, current, storage.ExpectedSchemaVersion)
		return nil
	}

	common.LogInfo("Running database migrations", common.Fields{"database": cfg.Database.Path})
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	fmt.Fprintln(out, cli.FormatSuccess("Database migrations completed"))
	return nil
}
