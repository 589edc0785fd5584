package repository

import (
	"context"
	stderrors "errors"

	"gorm.io/gorm"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
)

type DelegationRepository struct {
	db   *gorm.DB
	lock bool
}

func NewDelegationRepository(db *gorm.DB) *DelegationRepository {
	return &DelegationRepository{db: db}
}

func (r *DelegationRepository) GetProfile(ctx context.Context, delegate string) (*models.DelegateProfile, error) {
	var profile models.DelegateProfile
	err := reader(r.db, ctx, r.lock).
		Where("delegate = ?", delegate).
		First(&profile).Error

	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpsertProfile creates the profile or overwrites its authority and flag.
func (r *DelegationRepository) UpsertProfile(ctx context.Context, profile *models.DelegateProfile) error {
	result := r.db.WithContext(ctx).
		Where("delegate = ?", profile.Delegate).
		Assign(map[string]interface{}{
			"authority": profile.Authority,
			"is_active": profile.IsActive,
		}).
		FirstOrCreate(profile)
	return translate(result.Error)
}

func (r *DelegationRepository) DeleteProfile(ctx context.Context, delegate string) error {
	result := r.db.WithContext(ctx).
		Where("delegate = ?", delegate).
		Delete(&models.DelegateProfile{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrDelegateNotFound
	}
	return nil
}

// GetRecord returns delegator's outgoing edge, or nil.
func (r *DelegationRepository) GetRecord(ctx context.Context, delegator string) (*models.DelegationRecord, error) {
	var record models.DelegationRecord
	err := reader(r.db, ctx, r.lock).
		Where("delegator = ?", delegator).
		First(&record).Error

	if stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// UpsertRecord creates or retargets delegator's single outgoing edge.
func (r *DelegationRepository) UpsertRecord(ctx context.Context, record *models.DelegationRecord) error {
	result := r.db.WithContext(ctx).
		Where("delegator = ?", record.Delegator).
		Assign(map[string]interface{}{
			"delegate_target": record.DelegateTarget,
		}).
		FirstOrCreate(record)
	return translate(result.Error)
}

func (r *DelegationRepository) DeleteRecord(ctx context.Context, delegator string) error {
	result := r.db.WithContext(ctx).
		Where("delegator = ?", delegator).
		Delete(&models.DelegationRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.ErrDelegationNotFound
	}
	return nil
}

func (r *DelegationRepository) CountDelegators(ctx context.Context, delegate string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DelegationRecord{}).
		Where("delegate_target = ?", delegate).
		Count(&count).Error
	return count, err
}
