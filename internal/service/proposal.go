package service

import (
	"context"

	"github.com/GushALKDev/solana-pulsar-dao/internal/governance"
	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/internal/repository"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/logger"
)

type ProposalService struct {
	store *repository.Store
	clock Clock
}

func NewProposalService(store *repository.Store, clock Clock) *ProposalService {
	return &ProposalService{store: store, clock: clock}
}

// ProposalView is a proposal with its lifecycle status evaluated at read time.
type ProposalView struct {
	models.Proposal
	Status governance.Status `json:"status"`
}

func (s *ProposalService) view(p *models.Proposal) *ProposalView {
	return &ProposalView{Proposal: *p, Status: governance.StatusAt(p, s.clock.Now())}
}

func (s *ProposalService) CreateProposal(ctx context.Context, author, title, description string, deadline int64) (*ProposalView, error) {
	author, err := identity(author)
	if err != nil {
		return nil, err
	}

	var p *models.Proposal
	err = run(ctx, s.store, func(tx *repository.Store) error {
		cfg, err := loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		p, err = governance.NewProposal(cfg, governance.ProposalDraft{
			Author:      author,
			Title:       title,
			Description: description,
			Deadline:    deadline,
		})
		if err != nil {
			return err
		}
		if err := tx.Config.Update(ctx, cfg); err != nil {
			return err
		}
		return tx.Proposals.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"proposal": p.Number,
		"author":   author,
		"deadline": deadline,
	}).Info("Proposal created")

	return s.view(p), nil
}

// TreasuryDraft is the caller input for a treasury transfer proposal.
type TreasuryDraft struct {
	Title           string
	Description     string
	Deadline        int64
	Amount          uint64
	Destination     string
	TimelockSeconds int64
}

// CreateTreasuryProposal escrows Amount from the author in the same unit of
// work that creates the proposal.
func (s *ProposalService) CreateTreasuryProposal(ctx context.Context, author string, d TreasuryDraft) (*ProposalView, error) {
	author, err := identity(author)
	if err != nil {
		return nil, err
	}
	destination, err := identity(d.Destination)
	if err != nil {
		return nil, err
	}

	var p *models.Proposal
	var escrow *models.TreasuryEscrow
	err = run(ctx, s.store, func(tx *repository.Store) error {
		cfg, err := loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		p, err = governance.NewTreasuryProposal(cfg, governance.ProposalDraft{
			Author:              author,
			Title:               d.Title,
			Description:         d.Description,
			Deadline:            d.Deadline,
			TransferAmount:      d.Amount,
			TransferDestination: destination,
			TimelockSeconds:     d.TimelockSeconds,
		})
		if err != nil {
			return err
		}
		if err := tx.Config.Update(ctx, cfg); err != nil {
			return err
		}

		escrow = &models.TreasuryEscrow{
			ProposalNumber: p.Number,
			Account:        governance.EscrowAccount(p.Number).Hex(),
			Balance:        d.Amount,
		}
		if _, err := tx.Ledger.Transfer(ctx, cfg.TokenID, author, escrow.Account, d.Amount, s.clock.Now()); err != nil {
			return err
		}
		if err := tx.Escrows.Create(ctx, escrow); err != nil {
			return err
		}
		return tx.Proposals.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"proposal":    p.Number,
		"author":      author,
		"amount":      d.Amount,
		"destination": destination,
		"escrow":      escrow.Account,
		"timelock":    d.TimelockSeconds,
	}).Info("Treasury proposal created")

	return s.view(p), nil
}

func (s *ProposalService) GetProposal(ctx context.Context, number uint64) (*ProposalView, error) {
	var p *models.Proposal
	err := run(ctx, s.store, func(tx *repository.Store) error {
		var err error
		p, err = loadProposal(ctx, tx, number)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.view(p), nil
}

// ListProposals returns a page of proposals, newest first, and the total count.
func (s *ProposalService) ListProposals(ctx context.Context, offset, limit int) ([]ProposalView, int64, error) {
	proposals, err := s.store.Proposals.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, storeErr(err)
	}
	total, err := s.store.Proposals.Count(ctx)
	if err != nil {
		return nil, 0, storeErr(err)
	}

	views := make([]ProposalView, 0, len(proposals))
	for i := range proposals {
		views = append(views, *s.view(&proposals[i]))
	}
	return views, total, nil
}

func (s *ProposalService) GetEscrow(ctx context.Context, number uint64) (*models.TreasuryEscrow, error) {
	var escrow *models.TreasuryEscrow
	err := run(ctx, s.store, func(tx *repository.Store) error {
		p, err := loadProposal(ctx, tx, number)
		if err != nil {
			return err
		}
		if p.Kind != models.ProposalKindTreasuryTransfer {
			return errors.ErrNotTreasuryProposal
		}
		escrow, err = tx.Escrows.GetByProposal(ctx, number)
		return err
	})
	return escrow, err
}
