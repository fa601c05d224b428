package main

import (
	"fmt"

	"bill_tracker/internal/config"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyConfigLogLevel(cfg.LogLevel)

		store, err := config.OpenStore(cmdContext(cmd), cfg.Database)
		if err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		if err := store.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
		log.Info("database schema is up to date", "driver", cfg.Database.Driver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
