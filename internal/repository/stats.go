package repository

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
)

type StatsRepository struct {
	db   *gorm.DB
	lock bool
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) GetByUser(ctx context.Context, user string) (*models.UserStats, error) {
	var stats models.UserStats
	err := reader(r.db, ctx, r.lock).
		Where("user_address = ?", user).
		First(&stats).Error

	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Save creates or overwrites the counters of stats.User.
func (r *StatsRepository) Save(ctx context.Context, stats *models.UserStats) error {
	result := r.db.WithContext(ctx).
		Where("user_address = ?", stats.User).
		Assign(map[string]interface{}{
			"vote_count":     stats.VoteCount,
			"last_vote_time": stats.LastVoteTime,
			"score":          stats.Score,
			"badge_claimed":  stats.BadgeClaimed,
		}).
		FirstOrCreate(stats)
	return translate(result.Error)
}

// TopByScore returns the highest scores, ties broken by earliest last vote.
func (r *StatsRepository) TopByScore(ctx context.Context, limit int) ([]models.UserStats, error) {
	var stats []models.UserStats
	err := r.db.WithContext(ctx).
		Order("score DESC").
		Order("last_vote_time ASC").
		Limit(limit).
		Find(&stats).Error
	return stats, err
}

func (r *StatsRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UserStats{}).
		Count(&count).Error
	return count, err
}
