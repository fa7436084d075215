package main

import (
	"fmt"
	"log/slog"

	"github.com/go-extras/cobraflags"
	"github.com/spf13/cobra"

	"github.com/inmohub/listings/shared/db"
)

func newMigrateCommand(envFile cobraflags.Flag) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(envFile, "8080")
			if err != nil {
				return err
			}
			database, err := db.NewDB(cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close(database)

			if err := db.Migrate(database); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			slog.Info("database migrated")
			return nil
		},
	}
}
