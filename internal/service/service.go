package service

import (
	"context"

	"github.com/GushALKDev/solana-pulsar-dao/internal/config"
	"github.com/GushALKDev/solana-pulsar-dao/internal/governance"
	"github.com/GushALKDev/solana-pulsar-dao/internal/leaderboard"
	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/internal/repository"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
)

// Services is every governance entry point over one store.
type Services struct {
	Admin      *AdminService
	Ledger     *LedgerService
	Stake      *StakeService
	Delegation *DelegationService
	Proposal   *ProposalService
	Vote       *VoteService
	Treasury   *TreasuryService
	Audit      *AuditService
}

func New(store *repository.Store, clock Clock, board leaderboard.Board, cfg config.GovernanceConfig) *Services {
	if clock == nil {
		clock = SystemClock{}
	}
	if board == nil {
		board = leaderboard.NewDBBoard(store.Stats)
	}
	lockUnit := cfg.LockUnitSeconds
	if lockUnit <= 0 {
		lockUnit = 1
	}

	return &Services{
		Admin:      NewAdminService(store, clock),
		Ledger:     NewLedgerService(store, clock),
		Stake:      NewStakeService(store, clock, lockUnit),
		Delegation: NewDelegationService(store),
		Proposal:   NewProposalService(store, clock),
		Vote:       NewVoteService(store, clock, board, cfg.ScorePerVote),
		Treasury:   NewTreasuryService(store, clock),
		Audit:      NewAuditService(store),
	}
}

// run executes fn in one store transaction. Failures that are not governance
// errors are wrapped as store errors.
func run(ctx context.Context, store *repository.Store, fn func(tx *repository.Store) error) error {
	err := store.Transaction(ctx, fn)
	if err == nil || errors.CodeOf(err) != "" {
		return err
	}
	return errors.New(errors.ErrStore, "store operation failed", err)
}

func storeErr(err error) error {
	if err == nil || errors.CodeOf(err) != "" {
		return err
	}
	return errors.New(errors.ErrStore, "store operation failed", err)
}

// identity normalises a caller-supplied address to its checksummed form.
func identity(s string) (string, error) {
	addr, err := governance.ParseIdentity(s)
	if err != nil {
		return "", err
	}
	return addr.Hex(), nil
}

func loadConfig(ctx context.Context, tx *repository.Store) (*models.GlobalConfig, error) {
	cfg, err := tx.Config.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, errors.ErrNotInitialized
	}
	return cfg, nil
}

func loadProposal(ctx context.Context, tx *repository.Store, number uint64) (*models.Proposal, error) {
	p, err := tx.Proposals.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, errors.ErrProposalNotFound
	}
	return p, nil
}
