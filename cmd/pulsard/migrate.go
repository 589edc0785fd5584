package main

import (
	"github.com/spf13/cobra"

	"github.com/GushALKDev/solana-pulsar-dao/internal/database"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/logger"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer closeDatabase(db)

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	logger.WithFields(map[string]interface{}{
		"dialect": cfg.Database.Dialect,
	}).Info("Schema migrated")
	return nil
}
