package repository

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
)

type ConfigRepository struct {
	db   *gorm.DB
	lock bool
}

func NewConfigRepository(db *gorm.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// Get returns the singleton config, or nil before genesis.
func (r *ConfigRepository) Get(ctx context.Context) (*models.GlobalConfig, error) {
	var cfg models.GlobalConfig
	err := reader(r.db, ctx, r.lock).
		Where("id = ?", models.GlobalConfigID).
		First(&cfg).Error

	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *ConfigRepository) Create(ctx context.Context, cfg *models.GlobalConfig) error {
	cfg.ID = models.GlobalConfigID
	err := r.db.WithContext(ctx).Create(cfg).Error
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Wrap(errors.ErrAlreadyInitialized, err)
	}
	return err
}

func (r *ConfigRepository) Update(ctx context.Context, cfg *models.GlobalConfig) error {
	return updateVersioned(r.db.WithContext(ctx), cfg, &cfg.Version)
}
