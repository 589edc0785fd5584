package service

import (
	"context"

	"github.com/GushALKDev/solana-pulsar-dao/internal/governance"
	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/internal/repository"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/logger"
)

// StakeService owns time-locked stake positions. Staked tokens sit in the
// token's derived vault account.
type StakeService struct {
	store    *repository.Store
	clock    Clock
	lockUnit int64
}

func NewStakeService(store *repository.Store, clock Clock, lockUnitSeconds int64) *StakeService {
	return &StakeService{store: store, clock: clock, lockUnit: lockUnitSeconds}
}

func (s *StakeService) OpenPosition(ctx context.Context, owner string) (*models.StakePosition, error) {
	owner, err := identity(owner)
	if err != nil {
		return nil, err
	}

	pos := governance.NewStakePosition(owner)
	err = run(ctx, s.store, func(tx *repository.Store) error {
		existing, err := tx.Stakes.Get(ctx, owner)
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.ErrPositionExists
		}
		return tx.Stakes.Create(ctx, pos)
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"owner": owner,
	}).Info("Stake position opened")

	return pos, nil
}

// Deposit locks amount for lockDuration. The duration and amount are checked
// before any token moves.
func (s *StakeService) Deposit(ctx context.Context, owner string, amount uint64, lockDuration int64) (*models.StakePosition, error) {
	owner, err := identity(owner)
	if err != nil {
		return nil, err
	}

	var pos *models.StakePosition
	err = run(ctx, s.store, func(tx *repository.Store) error {
		cfg, err := loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		pos, err = tx.Stakes.Get(ctx, owner)
		if err != nil {
			return err
		}
		if pos == nil {
			return errors.ErrPositionNotFound
		}

		if err := governance.ApplyDeposit(pos, amount, lockDuration, s.clock.Now(), s.lockUnit); err != nil {
			return err
		}
		vault := governance.VaultAccount(cfg.TokenID).Hex()
		if _, err := tx.Ledger.Transfer(ctx, cfg.TokenID, owner, vault, amount, s.clock.Now()); err != nil {
			return err
		}
		return tx.Stakes.Update(ctx, pos)
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"owner":         owner,
		"amount":        amount,
		"staked_amount": pos.StakedAmount,
		"lock_duration": lockDuration,
		"lock_end_time": pos.LockEndTime,
		"multiplier":    pos.Multiplier,
	}).Info("Tokens staked")

	return pos, nil
}

// Unstake returns the whole position to the owner once its lock has ended.
func (s *StakeService) Unstake(ctx context.Context, owner string) (uint64, error) {
	owner, err := identity(owner)
	if err != nil {
		return 0, err
	}

	var amount uint64
	err = run(ctx, s.store, func(tx *repository.Store) error {
		cfg, err := loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		pos, err := tx.Stakes.Get(ctx, owner)
		if err != nil {
			return err
		}
		if pos == nil {
			return errors.ErrPositionNotFound
		}

		amount, err = governance.CheckUnstake(pos, s.clock.Now())
		if err != nil {
			return err
		}
		vault := governance.VaultAccount(cfg.TokenID).Hex()
		if _, err := tx.Ledger.Transfer(ctx, cfg.TokenID, vault, owner, amount, s.clock.Now()); err != nil {
			return err
		}
		governance.ApplyUnstake(pos)
		return tx.Stakes.Update(ctx, pos)
	})
	if err != nil {
		return 0, err
	}

	logger.WithFields(map[string]interface{}{
		"owner":  owner,
		"amount": amount,
	}).Info("Tokens unstaked")

	return amount, nil
}

// GetStake returns owner's position; owners who never staked read as an empty
// position with multiplier 1.
func (s *StakeService) GetStake(ctx context.Context, owner string) (*models.StakePosition, error) {
	owner, err := identity(owner)
	if err != nil {
		return nil, err
	}
	pos, err := s.store.Stakes.Get(ctx, owner)
	if err != nil {
		return nil, storeErr(err)
	}
	if pos == nil {
		return governance.NewStakePosition(owner), nil
	}
	return pos, nil
}
