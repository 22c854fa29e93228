package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yukikurage/team-work-tracker/internal/database"
)

func makeMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}

			db, err := e.connect()
			if err != nil {
				return err
			}

			if err := database.Migrate(db, e.log); err != nil {
				return err
			}

			e.log.Info("Migrated database", zap.String("driver", e.cfg.Database.Driver))
			return nil
		},
	}
}
