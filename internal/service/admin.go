package service

import (
	"context"

	"github.com/GushALKDev/solana-pulsar-dao/internal/governance"
	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/internal/repository"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/logger"
)

type AdminService struct {
	store *repository.Store
	clock Clock
}

func NewAdminService(store *repository.Store, clock Clock) *AdminService {
	return &AdminService{store: store, clock: clock}
}

// Initialize creates the singleton config with the breaker enabled.
func (s *AdminService) Initialize(ctx context.Context, admin, tokenID string) (*models.GlobalConfig, error) {
	admin, err := identity(admin)
	if err != nil {
		return nil, err
	}
	if tokenID == "" {
		return nil, errors.ErrInvalidToken
	}

	cfg := &models.GlobalConfig{
		Admin:         admin,
		TokenID:       tokenID,
		SystemEnabled: true,
	}
	err = run(ctx, s.store, func(tx *repository.Store) error {
		existing, err := tx.Config.Get(ctx)
		if err != nil {
			return err
		}
		if existing != nil {
			return errors.ErrAlreadyInitialized
		}
		return tx.Config.Create(ctx, cfg)
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"admin":    admin,
		"token_id": tokenID,
	}).Info("Governance initialized")

	return cfg, nil
}

// ToggleCircuitBreaker flips system_enabled and returns the new value.
func (s *AdminService) ToggleCircuitBreaker(ctx context.Context, admin string) (bool, error) {
	admin, err := identity(admin)
	if err != nil {
		return false, err
	}

	var enabled bool
	err = run(ctx, s.store, func(tx *repository.Store) error {
		cfg, err := loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		if err := governance.RequireAdmin(cfg, admin); err != nil {
			return err
		}
		cfg.SystemEnabled = !cfg.SystemEnabled
		enabled = cfg.SystemEnabled
		return tx.Config.Update(ctx, cfg)
	})
	if err != nil {
		return false, err
	}

	logger.WithFields(map[string]interface{}{
		"admin":          admin,
		"system_enabled": enabled,
	}).Info("Circuit breaker toggled")

	return enabled, nil
}

func (s *AdminService) GetConfig(ctx context.Context) (*models.GlobalConfig, error) {
	cfg, err := s.store.Config.Get(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	if cfg == nil {
		return nil, errors.ErrNotInitialized
	}
	return cfg, nil
}

// Mint credits governance tokens to an account. Admin only.
func (s *AdminService) Mint(ctx context.Context, admin, to string, amount uint64) (string, error) {
	admin, err := identity(admin)
	if err != nil {
		return "", err
	}
	to, err = identity(to)
	if err != nil {
		return "", err
	}

	var reference string
	err = run(ctx, s.store, func(tx *repository.Store) error {
		cfg, err := loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		if err := governance.RequireAdmin(cfg, admin); err != nil {
			return err
		}
		reference, err = tx.Ledger.Mint(ctx, cfg.TokenID, to, amount, s.clock.Now())
		return err
	})
	if err != nil {
		return "", err
	}

	logger.WithFields(map[string]interface{}{
		"to":        to,
		"amount":    amount,
		"reference": reference,
	}).Info("Tokens minted")

	return reference, nil
}
