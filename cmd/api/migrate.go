package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/agate-ltd/agency-crm/internal/config"
	"github.com/agate-ltd/agency-crm/internal/persistence"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "apply the embedded schema migrations",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "roll back the latest migration")
}

func runMigration(_ *cobra.Command, _ []string) error {
	cfg, logger, err := bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	if cfg.Store.Driver == config.StoreDriverSQLite {
		lite, err := persistence.NewSQLite(cfg.Store.SQLitePath, logger)
		if err != nil {
			return err
		}
		lite.Close()
		logger.Info("sqlite schema is created automatically", zap.String("path", cfg.Store.SQLitePath))
		return nil
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return err
	}
	defer pg.Close()

	return persistence.RunMigrations(ctx, pg.Pool, migrateRollback, logger)
}
