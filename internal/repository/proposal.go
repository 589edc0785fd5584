package repository

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
)

type ProposalRepository struct {
	db   *gorm.DB
	lock bool
}

func NewProposalRepository(db *gorm.DB) *ProposalRepository {
	return &ProposalRepository{db: db}
}

func (r *ProposalRepository) Create(ctx context.Context, p *models.Proposal) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *ProposalRepository) GetByNumber(ctx context.Context, number uint64) (*models.Proposal, error) {
	var p models.Proposal
	err := reader(r.db, ctx, r.lock).
		Where("number = ?", number).
		First(&p).Error

	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Update persists tallies and flags with a version check.
func (r *ProposalRepository) Update(ctx context.Context, p *models.Proposal) error {
	return updateVersioned(r.db.WithContext(ctx), p, &p.Version)
}

// List returns proposals newest first.
func (r *ProposalRepository) List(ctx context.Context, offset, limit int) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.WithContext(ctx).
		Order("number DESC").
		Offset(offset).
		Limit(limit).
		Find(&proposals).Error
	return proposals, err
}

func (r *ProposalRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Proposal{}).
		Count(&count).Error
	return count, err
}

func (r *ProposalRepository) ListActive(ctx context.Context) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("number ASC").
		Find(&proposals).Error
	return proposals, err
}
