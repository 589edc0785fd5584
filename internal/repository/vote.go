package repository

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
)

type VoteRepository struct {
	db   *gorm.DB
	lock bool
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

// Get returns the (proposal, voter) record or nil when none was ever created.
func (r *VoteRepository) Get(ctx context.Context, proposalNumber uint64, voter string) (*models.VoterRecord, error) {
	var rec models.VoterRecord
	err := reader(r.db, ctx, r.lock).
		Where("proposal_number = ? AND voter = ?", proposalNumber, voter).
		First(&rec).Error

	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Save creates rec on first write and otherwise updates it under its version.
func (r *VoteRepository) Save(ctx context.Context, rec *models.VoterRecord) error {
	if rec.ID == 0 {
		return translate(r.db.WithContext(ctx).Create(rec).Error)
	}
	return updateVersioned(r.db.WithContext(ctx), rec, &rec.Version)
}

// ListVoted returns the records currently counted in proposalNumber's tallies.
func (r *VoteRepository) ListVoted(ctx context.Context, proposalNumber uint64) ([]models.VoterRecord, error) {
	var records []models.VoterRecord
	err := r.db.WithContext(ctx).
		Where("proposal_number = ? AND voted = ?", proposalNumber, true).
		Order("id ASC").
		Find(&records).Error
	return records, err
}
