package main

import (
	"github.com/fekuna/kitmed-catalog-service/internal/pkg/database/postgres"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Args:  cobra.NoArgs,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, err := openDB(cfg, appLogger)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := postgres.Migrate(cmd.Context(), db)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		appLogger.Info("Schema is up to date")
		return nil
	}
	appLogger.Info("Migrations applied", zap.Strings("versions", applied))
	return nil
}
