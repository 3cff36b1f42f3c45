package main

import (
	"github.com/deppfellow/catalog/internal/database"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, loggerService, err := loadConfig()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		if err := database.Migrate(cmd.Context(), log, cfg); err != nil {
			return errors.Wrap(err, "failed to migrate database")
		}
		return nil
	},
}
