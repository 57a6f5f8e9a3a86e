package main

import (
	"fmt"
	"os"

	"wtms/configs"
	"wtms/pkg/logger"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:          "wtms",
	Short:        "Worker task management API",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadConfig()
		if err := logger.InitLoggers(cfg.LogDir); err != nil {
			return fmt.Errorf("init loggers: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		logger.SyncLoggers()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to a .env file (default: ./.env)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(assignCmd)
}

func loadConfig() configs.Config {
	if envFile != "" {
		return configs.LoadConfig(envFile)
	}
	return configs.LoadConfig()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
