package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, audit *models.TallyAudit) error {
	return r.db.WithContext(ctx).Create(audit).Error
}

func (r *AuditRepository) GetByProposal(ctx context.Context, proposalNumber uint64, limit int) ([]models.TallyAudit, error) {
	var audits []models.TallyAudit
	query := r.db.WithContext(ctx).
		Where("proposal_number = ?", proposalNumber).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&audits).Error
	return audits, err
}

func (r *AuditRepository) GetRecent(ctx context.Context, limit int) ([]models.TallyAudit, error) {
	var audits []models.TallyAudit
	if limit <= 0 {
		limit = 20
	}
	err := r.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Find(&audits).Error
	return audits, err
}
