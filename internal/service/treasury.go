package service

import (
	"context"

	"github.com/GushALKDev/solana-pulsar-dao/internal/governance"
	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/internal/repository"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/logger"
)

// TreasuryService settles treasury proposals. Execute and reclaim share the
// proposal's executed flag, so at most one of them ever drains an escrow.
type TreasuryService struct {
	store *repository.Store
	clock Clock
}

func NewTreasuryService(store *repository.Store, clock Clock) *TreasuryService {
	return &TreasuryService{store: store, clock: clock}
}

// Settlement describes a drained escrow.
type Settlement struct {
	ProposalNumber uint64 `json:"proposal_number"`
	Recipient      string `json:"recipient"`
	Amount         uint64 `json:"amount"`
	Reference      string `json:"reference"`
}

// Execute releases a passed proposal's escrow to destination once the
// timelock has elapsed. Anyone may call it; destination must match the stored
// one.
func (s *TreasuryService) Execute(ctx context.Context, caller string, number uint64, destination string) (*Settlement, error) {
	caller, err := identity(caller)
	if err != nil {
		return nil, err
	}
	destination, err = identity(destination)
	if err != nil {
		return nil, err
	}

	settlement, err := s.settle(ctx, number, func(p *models.Proposal, now int64) (string, error) {
		if err := governance.CheckExecute(p, destination, now); err != nil {
			return "", err
		}
		return p.TransferDestination, nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"event":       "ProposalExecuted",
		"proposal":    number,
		"executor":    caller,
		"destination": settlement.Recipient,
		"amount":      settlement.Amount,
		"reference":   settlement.Reference,
	}).Info("Treasury proposal executed")

	return settlement, nil
}

// Reclaim returns a failed proposal's escrow to its author.
func (s *TreasuryService) Reclaim(ctx context.Context, author string, number uint64) (*Settlement, error) {
	author, err := identity(author)
	if err != nil {
		return nil, err
	}

	settlement, err := s.settle(ctx, number, func(p *models.Proposal, now int64) (string, error) {
		if err := governance.CheckReclaim(p, author, now); err != nil {
			return "", err
		}
		return p.Author, nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"event":     "ProposalFundsReclaimed",
		"proposal":  number,
		"author":    author,
		"amount":    settlement.Amount,
		"reference": settlement.Reference,
	}).Info("Treasury funds reclaimed")

	return settlement, nil
}

// settle runs check, drains the escrow to the recipient it returns, and
// closes the proposal, all in one transaction.
func (s *TreasuryService) settle(ctx context.Context, number uint64, check func(p *models.Proposal, now int64) (string, error)) (*Settlement, error) {
	settlement := &Settlement{ProposalNumber: number}
	err := run(ctx, s.store, func(tx *repository.Store) error {
		cfg, err := loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		p, err := loadProposal(ctx, tx, number)
		if err != nil {
			return err
		}
		recipient, err := check(p, s.clock.Now())
		if err != nil {
			return err
		}
		escrow, err := tx.Escrows.GetByProposal(ctx, number)
		if err != nil {
			return err
		}
		if escrow == nil {
			return errors.ErrNotTreasuryProposal
		}

		amount := governance.Settle(p, escrow)
		if amount > 0 {
			settlement.Reference, err = tx.Ledger.Transfer(ctx, cfg.TokenID, escrow.Account, recipient, amount, s.clock.Now())
			if err != nil {
				return err
			}
		}
		if err := tx.Escrows.UpdateBalance(ctx, escrow); err != nil {
			return err
		}
		settlement.Recipient = recipient
		settlement.Amount = amount
		return tx.Proposals.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return settlement, nil
}
