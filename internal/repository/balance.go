package repository

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/GushALKDev/solana-pulsar-dao/internal/governance"
	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
)

// LedgerRepository is the custody ledger: one balance row per (token, account)
// and a history row for every movement. Balance writes compare against the
// value read, so two movements racing on one account cannot both apply.
type LedgerRepository struct {
	db      *gorm.DB
	lock    bool
	history *HistoryRepository
}

func NewLedgerRepository(db *gorm.DB) *LedgerRepository {
	return &LedgerRepository{db: db, history: NewHistoryRepository(db)}
}

func (r *LedgerRepository) getRow(ctx context.Context, tokenID, account string) (*models.UserBalance, error) {
	var balance models.UserBalance
	err := reader(r.db, ctx, r.lock).
		Where("token_id = ? AND user_address = ?", tokenID, account).
		First(&balance).Error

	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// GetBalance returns the account's balance; unknown accounts hold zero.
func (r *LedgerRepository) GetBalance(ctx context.Context, tokenID, account string) (uint64, error) {
	row, err := r.getRow(ctx, tokenID, account)
	if err != nil || row == nil {
		return 0, err
	}
	return row.Balance, nil
}

// Transfer moves amount from one account to another and returns the history
// reference shared by both legs. Callers run it inside a Store transaction.
func (r *LedgerRepository) Transfer(ctx context.Context, tokenID, from, to string, amount uint64, timestamp int64) (string, error) {
	if amount == 0 {
		return "", errors.ErrInvalidAmount
	}
	if from == to {
		balance, err := r.GetBalance(ctx, tokenID, from)
		if err != nil {
			return "", err
		}
		if balance < amount {
			return "", errors.ErrInsufficientBalance
		}
		return "", nil
	}

	reference := uuid.NewString()
	if err := r.debit(ctx, tokenID, from, to, amount, reference, timestamp); err != nil {
		return "", err
	}
	if err := r.credit(ctx, tokenID, to, from, amount, models.ChangeTypeTransferIn, reference, timestamp); err != nil {
		return "", err
	}
	return reference, nil
}

// Mint credits amount to an account out of thin air.
func (r *LedgerRepository) Mint(ctx context.Context, tokenID, to string, amount uint64, timestamp int64) (string, error) {
	if amount == 0 {
		return "", errors.ErrInvalidAmount
	}
	reference := uuid.NewString()
	if err := r.credit(ctx, tokenID, to, "", amount, models.ChangeTypeMint, reference, timestamp); err != nil {
		return "", err
	}
	return reference, nil
}

func (r *LedgerRepository) debit(ctx context.Context, tokenID, account, counterparty string, amount uint64, reference string, timestamp int64) error {
	row, err := r.getRow(ctx, tokenID, account)
	if err != nil {
		return err
	}
	if row == nil || row.Balance < amount {
		return errors.ErrInsufficientBalance
	}

	before := row.Balance
	after := before - amount
	if err := r.swap(ctx, row.ID, before, after); err != nil {
		return err
	}

	return r.history.Create(ctx, &models.BalanceHistory{
		TokenID:       tokenID,
		UserAddress:   account,
		Counterparty:  counterparty,
		BalanceBefore: before,
		BalanceAfter:  after,
		ChangeAmount:  amount,
		ChangeType:    models.ChangeTypeTransferOut,
		Reference:     reference,
		Timestamp:     timestamp,
	})
}

func (r *LedgerRepository) credit(ctx context.Context, tokenID, account, counterparty string, amount uint64, changeType models.ChangeType, reference string, timestamp int64) error {
	row, err := r.getRow(ctx, tokenID, account)
	if err != nil {
		return err
	}

	var before uint64
	if row == nil {
		row = &models.UserBalance{
			TokenID:     tokenID,
			UserAddress: account,
			Balance:     amount,
		}
		if err := translate(r.db.WithContext(ctx).Create(row).Error); err != nil {
			return err
		}
	} else {
		before = row.Balance
		if err := r.swap(ctx, row.ID, before, governance.CheckedAdd(before, amount)); err != nil {
			return err
		}
	}

	return r.history.Create(ctx, &models.BalanceHistory{
		TokenID:       tokenID,
		UserAddress:   account,
		Counterparty:  counterparty,
		BalanceBefore: before,
		BalanceAfter:  before + amount,
		ChangeAmount:  amount,
		ChangeType:    changeType,
		Reference:     reference,
		Timestamp:     timestamp,
	})
}

func (r *LedgerRepository) swap(ctx context.Context, id, before, after uint64) error {
	result := r.db.WithContext(ctx).
		Model(&models.UserBalance{}).
		Where("id = ? AND balance = ?", id, before).
		Update("balance", after)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrConcurrentUpdate
	}
	return nil
}
