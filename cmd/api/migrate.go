package main

import (
	"fmt"

	"wtms/internal/repository"
	"wtms/pkg/database"
	"wtms/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var dropTables bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database tables (use --drop to reset them first)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadConfig()
		db, err := database.ConnectDB(contextOrBackground(cmd), cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		if dropTables {
			if err := repository.DeleteAllTable(db); err != nil {
				return err
			}
		}
		if err := repository.CreateTableIfNotExists(db); err != nil {
			return err
		}
		logger.SystemLogger.Info("Migration finished", zap.Bool("dropped", dropTables))
		fmt.Println("migration finished")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&dropTables, "drop", false, "drop all tables before creating them")
}
