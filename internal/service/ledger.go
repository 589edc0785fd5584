package service

import (
	"context"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/internal/repository"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/logger"
)

// LedgerService exposes the custody ledger for the configured token.
type LedgerService struct {
	store *repository.Store
	clock Clock
}

func NewLedgerService(store *repository.Store, clock Clock) *LedgerService {
	return &LedgerService{store: store, clock: clock}
}

// Balance returns account's liquid balance. Derived vault and escrow accounts
// are accepted as well.
func (s *LedgerService) Balance(ctx context.Context, account string) (uint64, error) {
	account, err := identity(account)
	if err != nil {
		return 0, err
	}

	var balance uint64
	err = run(ctx, s.store, func(tx *repository.Store) error {
		cfg, err := loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		balance, err = tx.Ledger.GetBalance(ctx, cfg.TokenID, account)
		return err
	})
	return balance, err
}

func (s *LedgerService) History(ctx context.Context, account string, limit int) ([]models.BalanceHistory, error) {
	account, err := identity(account)
	if err != nil {
		return nil, err
	}

	var histories []models.BalanceHistory
	err = run(ctx, s.store, func(tx *repository.Store) error {
		cfg, err := loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		histories, err = tx.History.GetByUser(ctx, cfg.TokenID, account, limit)
		return err
	})
	return histories, err
}

// Transfer moves liquid tokens between two holders.
func (s *LedgerService) Transfer(ctx context.Context, from, to string, amount uint64) (string, error) {
	from, err := identity(from)
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
		reference, err = tx.Ledger.Transfer(ctx, cfg.TokenID, from, to, amount, s.clock.Now())
		return err
	})
	if err != nil {
		return "", err
	}

	logger.WithFields(map[string]interface{}{
		"from":      from,
		"to":        to,
		"amount":    amount,
		"reference": reference,
	}).Info("Tokens transferred")

	return reference, nil
}
