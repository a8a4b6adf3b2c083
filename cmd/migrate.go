package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sellfast/marketplace/internal/gateways/database"
	"github.com/sellfast/marketplace/internal/logger"
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "create tables and indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		db, err := database.New(ctx, cfg.DB)
		if err != nil {
			logger.LogError("Failed to connect to database", err)
			return err
		}
		defer db.Close()

		if err := db.InitializeSchema(ctx); err != nil {
			logger.LogError("Migration failed", err)
			return err
		}

		logger.LogSystem("Migration completed successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCMD)
}
