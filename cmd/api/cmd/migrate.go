package cmd

import (
	"github.com/jointoit/events-api/pkg/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, log, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		if err := database.RunMigrations(db); err != nil {
			return err
		}
		log.Info("migrations applied")
		return nil
	},
}
