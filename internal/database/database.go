// Package database opens the governance store and migrates its schema.
package database

import (
	"fmt"
	stdlog "log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/GushALKDev/solana-pulsar-dao/internal/config"
	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
)

func gormConfig() *gorm.Config {
	// Silent: repositories report their own failures through pkg/logger.
	newLogger := logger.New(
		stdlog.New(os.Stdout, "", stdlog.LstdFlags),
		logger.Config{
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
	return &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	}
}

// Open connects to the configured dialect and applies the pool settings.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Dialect {
	case "mysql":
		dialector = mysql.Open(cfg.DSN())
	case "postgres":
		dialector = postgres.Open(cfg.DSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN())
	default:
		return nil, fmt.Errorf("unsupported database dialect: %s", cfg.Dialect)
	}

	db, err := gorm.Open(dialector, gormConfig())
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	maxOpen := cfg.MaxOpenConns
	if cfg.Dialect == "sqlite" {
		// One writer at a time; also keeps an in-memory database alive.
		maxOpen = 1
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	if cfg.ConnMaxLifetime > 0 && cfg.Dialect != "sqlite" {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	return db, nil
}

var memoryNames = strings.NewReplacer("/", "_", " ", "_", "?", "_", "&", "_")

// OpenMemory returns a migrated in-memory SQLite database private to name.
func OpenMemory(name string) (*gorm.DB, error) {
	db, err := Open(config.DatabaseConfig{
		Dialect:      "sqlite",
		Path:         fmt.Sprintf("file:%s?mode=memory&cache=shared", memoryNames.Replace(name)),
		MaxIdleConns: 1,
	})
	if err != nil {
		return nil, err
	}
	if err := AutoMigrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate creates or updates every governance table.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.GlobalConfig{},
		&models.Proposal{},
		&models.VoterRecord{},
		&models.StakePosition{},
		&models.DelegateProfile{},
		&models.DelegationRecord{},
		&models.UserStats{},
		&models.TreasuryEscrow{},
		&models.UserBalance{},
		&models.BalanceHistory{},
		&models.TallyAudit{},
	)
}
