package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
)

type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

func (r *HistoryRepository) Create(ctx context.Context, history *models.BalanceHistory) error {
	return translate(r.db.WithContext(ctx).Create(history).Error)
}

func (r *HistoryRepository) GetByUser(ctx context.Context, tokenID, userAddress string, limit int) ([]models.BalanceHistory, error) {
	var histories []models.BalanceHistory
	query := r.db.WithContext(ctx).
		Where("token_id = ? AND user_address = ?", tokenID, userAddress).
		Order("timestamp DESC").
		Order("id DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&histories).Error
	return histories, err
}

// GetByReference returns both legs of a transfer, or the single leg of a mint.
func (r *HistoryRepository) GetByReference(ctx context.Context, reference string) ([]models.BalanceHistory, error) {
	var histories []models.BalanceHistory
	err := r.db.WithContext(ctx).
		Where("reference = ?", reference).
		Order("id ASC").
		Find(&histories).Error
	return histories, err
}

func (r *HistoryRepository) GetRecent(ctx context.Context, tokenID string, limit int) ([]models.BalanceHistory, error) {
	var histories []models.BalanceHistory
	if limit <= 0 {
		limit = 10
	}
	err := r.db.WithContext(ctx).
		Where("token_id = ?", tokenID).
		Order("id DESC").
		Limit(limit).
		Find(&histories).Error
	return histories, err
}
