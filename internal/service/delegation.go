package service

import (
	"context"

	"github.com/GushALKDev/solana-pulsar-dao/internal/governance"
	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/internal/repository"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/logger"
)

// DelegationService keeps the delegation graph at depth one: each operation
// looks only at the caller's immediate neighbour.
type DelegationService struct {
	store *repository.Store
}

func NewDelegationService(store *repository.Store) *DelegationService {
	return &DelegationService{store: store}
}

// DelegateView is a delegate profile plus the number of delegators pointing
// at it.
type DelegateView struct {
	models.DelegateProfile
	Delegators int64 `json:"delegators"`
}

func (s *DelegationService) RegisterDelegate(ctx context.Context, admin, target string) (*models.DelegateProfile, error) {
	admin, err := identity(admin)
	if err != nil {
		return nil, err
	}
	target, err = identity(target)
	if err != nil {
		return nil, err
	}

	profile := governance.NewDelegateProfile(target)
	err = run(ctx, s.store, func(tx *repository.Store) error {
		cfg, err := loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		outgoing, err := tx.Delegations.GetRecord(ctx, target)
		if err != nil {
			return err
		}
		if err := governance.CheckRegisterDelegate(cfg, admin, outgoing); err != nil {
			return err
		}
		return tx.Delegations.UpsertProfile(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"delegate": target,
	}).Info("Delegate registered")

	return profile, nil
}

func (s *DelegationService) RemoveDelegate(ctx context.Context, admin, target string) error {
	admin, err := identity(admin)
	if err != nil {
		return err
	}
	target, err = identity(target)
	if err != nil {
		return err
	}

	err = run(ctx, s.store, func(tx *repository.Store) error {
		cfg, err := loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		if err := governance.RequireAdmin(cfg, admin); err != nil {
			return err
		}
		return tx.Delegations.DeleteProfile(ctx, target)
	})
	if err != nil {
		return err
	}

	logger.WithFields(map[string]interface{}{
		"delegate": target,
	}).Info("Delegate removed")

	return nil
}

// DelegateVote points user's voting rights at target. The target's own
// registration is checked when it votes.
func (s *DelegationService) DelegateVote(ctx context.Context, user, target string) (*models.DelegationRecord, error) {
	user, err := identity(user)
	if err != nil {
		return nil, err
	}
	target, err = identity(target)
	if err != nil {
		return nil, err
	}

	record := &models.DelegationRecord{Delegator: user, DelegateTarget: target}
	err = run(ctx, s.store, func(tx *repository.Store) error {
		ownProfile, err := tx.Delegations.GetProfile(ctx, user)
		if err != nil {
			return err
		}
		if err := governance.CheckDelegateVote(user, target, ownProfile); err != nil {
			return err
		}
		return tx.Delegations.UpsertRecord(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"delegator": user,
		"delegate":  target,
	}).Info("Vote delegated")

	return record, nil
}

func (s *DelegationService) RevokeDelegation(ctx context.Context, user string) error {
	user, err := identity(user)
	if err != nil {
		return err
	}

	err = run(ctx, s.store, func(tx *repository.Store) error {
		return tx.Delegations.DeleteRecord(ctx, user)
	})
	if err != nil {
		return err
	}

	logger.WithFields(map[string]interface{}{
		"delegator": user,
	}).Info("Delegation revoked")

	return nil
}

func (s *DelegationService) GetDelegation(ctx context.Context, user string) (*models.DelegationRecord, error) {
	user, err := identity(user)
	if err != nil {
		return nil, err
	}
	record, err := s.store.Delegations.GetRecord(ctx, user)
	if err != nil {
		return nil, storeErr(err)
	}
	if record == nil {
		return nil, errors.ErrDelegationNotFound
	}
	return record, nil
}

func (s *DelegationService) GetDelegate(ctx context.Context, delegate string) (*DelegateView, error) {
	delegate, err := identity(delegate)
	if err != nil {
		return nil, err
	}
	profile, err := s.store.Delegations.GetProfile(ctx, delegate)
	if err != nil {
		return nil, storeErr(err)
	}
	if profile == nil {
		return nil, errors.ErrDelegateNotFound
	}
	count, err := s.store.Delegations.CountDelegators(ctx, delegate)
	if err != nil {
		return nil, storeErr(err)
	}
	return &DelegateView{DelegateProfile: *profile, Delegators: count}, nil
}
