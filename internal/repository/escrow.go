package repository

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
)

type EscrowRepository struct {
	db   *gorm.DB
	lock bool
}

func NewEscrowRepository(db *gorm.DB) *EscrowRepository {
	return &EscrowRepository{db: db}
}

func (r *EscrowRepository) Create(ctx context.Context, escrow *models.TreasuryEscrow) error {
	return translate(r.db.WithContext(ctx).Create(escrow).Error)
}

func (r *EscrowRepository) GetByProposal(ctx context.Context, number uint64) (*models.TreasuryEscrow, error) {
	var escrow models.TreasuryEscrow
	err := reader(r.db, ctx, r.lock).
		Where("proposal_number = ?", number).
		First(&escrow).Error

	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &escrow, nil
}

func (r *EscrowRepository) UpdateBalance(ctx context.Context, escrow *models.TreasuryEscrow) error {
	return r.db.WithContext(ctx).
		Model(escrow).
		Update("balance", escrow.Balance).Error
}
