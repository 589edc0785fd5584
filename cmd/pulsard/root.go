package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/GushALKDev/solana-pulsar-dao/internal/config"
	"github.com/GushALKDev/solana-pulsar-dao/internal/database"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/logger"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pulsard",
	Short: "Token-weighted governance engine",
	Long: `pulsard runs the Pulsar governance engine: proposals, quadratic
token-weighted voting, single-level delegation and treasury escrow.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	defaultPath := os.Getenv("CONFIG_PATH")
	if defaultPath == "" {
		defaultPath = "config/config.yaml"
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultPath, "Path to the YAML config file")
}

func loadConfig(cmd *cobra.Command, args []string) error {
	// A local .env only seeds the environment; real variables win.
	if _, err := os.Stat(".env"); err == nil {
		_ = godotenv.Load(".env")
	}

	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	}); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	return nil
}

func openDatabase() (*gorm.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func closeDatabase(db *gorm.DB) {
	if err := database.Close(db); err != nil {
		logger.Error("Failed to close database:", err)
	}
}
