package repository

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
)

type StakeRepository struct {
	db   *gorm.DB
	lock bool
}

func NewStakeRepository(db *gorm.DB) *StakeRepository {
	return &StakeRepository{db: db}
}

func (r *StakeRepository) Get(ctx context.Context, owner string) (*models.StakePosition, error) {
	var pos models.StakePosition
	err := reader(r.db, ctx, r.lock).
		Where("owner = ?", owner).
		First(&pos).Error

	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

func (r *StakeRepository) Create(ctx context.Context, pos *models.StakePosition) error {
	return translate(r.db.WithContext(ctx).Create(pos).Error)
}

func (r *StakeRepository) Update(ctx context.Context, pos *models.StakePosition) error {
	return updateVersioned(r.db.WithContext(ctx), pos, &pos.Version)
}
