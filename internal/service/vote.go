package service

import (
	"context"

	"github.com/GushALKDev/solana-pulsar-dao/internal/governance"
	"github.com/GushALKDev/solana-pulsar-dao/internal/leaderboard"
	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/internal/repository"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/logger"
)

const defaultScorePerVote uint64 = 10

// VoteService owns per-(proposal, voter) records and keeps each proposal's
// tallies equal to the sum of its counted records.
type VoteService struct {
	store        *repository.Store
	clock        Clock
	board        leaderboard.Board
	scorePerVote uint64
}

func NewVoteService(store *repository.Store, clock Clock, board leaderboard.Board, scorePerVote uint64) *VoteService {
	if scorePerVote == 0 {
		scorePerVote = defaultScorePerVote
	}
	return &VoteService{
		store:        store,
		clock:        clock,
		board:        board,
		scorePerVote: scorePerVote,
	}
}

// PowerBreakdown is a voting power computation and its inputs.
type PowerBreakdown struct {
	Holder       string `json:"holder"`
	Liquid       uint64 `json:"liquid"`
	StakedAmount uint64 `json:"staked_amount"`
	Multiplier   uint64 `json:"multiplier"`
	LockDuration int64  `json:"lock_duration"`
	Power        uint64 `json:"power"`
}

func powerOf(ctx context.Context, tx *repository.Store, tokenID, holder string) (*PowerBreakdown, error) {
	liquid, err := tx.Ledger.GetBalance(ctx, tokenID, holder)
	if err != nil {
		return nil, err
	}
	pos, err := tx.Stakes.Get(ctx, holder)
	if err != nil {
		return nil, err
	}

	staked, multiplier := governance.StakeTerms(pos)
	power, err := governance.Power(liquid, staked, multiplier)
	if err != nil {
		return nil, err
	}

	b := &PowerBreakdown{
		Holder:       holder,
		Liquid:       liquid,
		StakedAmount: staked,
		Multiplier:   multiplier,
		Power:        power,
	}
	if pos != nil {
		b.LockDuration = pos.OriginalLockDuration
	}
	return b, nil
}

// cast applies one ballot inside tx. actor is credited with the vote; holder
// owns the record and supplies the balances.
func (s *VoteService) cast(ctx context.Context, tx *repository.Store, p *models.Proposal, tokenID, actor, holder string, yes, byProxy bool) (*castResult, error) {
	power, err := powerOf(ctx, tx, tokenID, holder)
	if err != nil {
		return nil, err
	}
	existing, err := tx.Votes.Get(ctx, p.Number, holder)
	if err != nil {
		return nil, err
	}

	rec, err := governance.ApplyBallot(p, existing, governance.Ballot{
		Voter:        holder,
		Yes:          yes,
		Power:        power.Power,
		StakedAmount: power.StakedAmount,
		ByProxy:      byProxy,
	})
	if err != nil {
		return nil, err
	}
	if err := tx.Votes.Save(ctx, rec); err != nil {
		return nil, err
	}
	if err := tx.Proposals.Update(ctx, p); err != nil {
		return nil, err
	}

	stats, err := tx.Stats.GetByUser(ctx, actor)
	if err != nil {
		return nil, err
	}
	stats = governance.CreditVote(stats, actor, s.clock.Now(), s.scorePerVote)
	if err := tx.Stats.Save(ctx, stats); err != nil {
		return nil, err
	}

	return &castResult{record: rec, power: power, stats: stats}, nil
}

type castResult struct {
	record *models.VoterRecord
	power  *PowerBreakdown
	stats  *models.UserStats
}

// emit logs the VoteCast event and refreshes the leaderboard after commit.
func (s *VoteService) emit(ctx context.Context, number uint64, actor string, res *castResult) {
	logger.WithFields(map[string]interface{}{
		"event":         "VoteCast",
		"proposal":      number,
		"voter":         res.record.Voter,
		"actor":         actor,
		"vote":          res.record.Vote,
		"by_proxy":      res.record.VotedByProxy,
		"staked_amount": res.power.StakedAmount,
		"lock_duration": res.power.LockDuration,
		"multiplier":    res.power.Multiplier,
		"power":         res.power.Power,
	}).Info("Vote cast")

	if err := s.board.Record(ctx, res.stats.User, res.stats.Score); err != nil {
		logger.WithFields(map[string]interface{}{
			"user":  res.stats.User,
			"error": err,
		}).Warn("Failed to update leaderboard")
	}
}

func (s *VoteService) openProposal(ctx context.Context, tx *repository.Store, number uint64) (*models.GlobalConfig, *models.Proposal, error) {
	cfg, err := loadConfig(ctx, tx)
	if err != nil {
		return nil, nil, err
	}
	if err := governance.RequireEnabled(cfg); err != nil {
		return nil, nil, err
	}
	p, err := loadProposal(ctx, tx, number)
	if err != nil {
		return nil, nil, err
	}
	if err := governance.RequireOpen(p, s.clock.Now()); err != nil {
		return nil, nil, err
	}
	return cfg, p, nil
}

// Vote casts or switches voter's own vote. Holders who delegated cannot vote
// directly.
func (s *VoteService) Vote(ctx context.Context, voter string, number uint64, yes bool) (*models.VoterRecord, error) {
	voter, err := identity(voter)
	if err != nil {
		return nil, err
	}

	var res *castResult
	err = run(ctx, s.store, func(tx *repository.Store) error {
		cfg, p, err := s.openProposal(ctx, tx, number)
		if err != nil {
			return err
		}
		// Checked before the delegation: a delegator whose vote was cast by
		// proxy gets ProxyVoteLocked here, otherwise DelegatorsCannotVote.
		existing, err := tx.Votes.Get(ctx, number, voter)
		if err != nil {
			return err
		}
		if existing != nil && existing.Voted && existing.VotedByProxy {
			return errors.ErrProxyVoteLocked
		}
		outgoing, err := tx.Delegations.GetRecord(ctx, voter)
		if err != nil {
			return err
		}
		if outgoing != nil {
			return errors.ErrDelegatorsCannotVote
		}
		res, err = s.cast(ctx, tx, p, cfg.TokenID, voter, voter, yes, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, number, voter, res)
	return res.record, nil
}

// WithdrawVote removes voter's direct vote from the tallies.
func (s *VoteService) WithdrawVote(ctx context.Context, voter string, number uint64) error {
	voter, err := identity(voter)
	if err != nil {
		return err
	}
	return s.withdraw(ctx, number, voter, voter, false)
}

// VoteAsProxy casts for delegator using delegator's balances. The record is
// locked against the delegator until the proxy withdraws it.
func (s *VoteService) VoteAsProxy(ctx context.Context, proxy string, number uint64, delegator string, yes bool) (*models.VoterRecord, error) {
	proxy, err := identity(proxy)
	if err != nil {
		return nil, err
	}
	delegator, err = identity(delegator)
	if err != nil {
		return nil, err
	}

	var res *castResult
	err = run(ctx, s.store, func(tx *repository.Store) error {
		cfg, p, err := s.openProposal(ctx, tx, number)
		if err != nil {
			return err
		}
		if err := s.checkProxy(ctx, tx, proxy, delegator); err != nil {
			return err
		}
		res, err = s.cast(ctx, tx, p, cfg.TokenID, proxy, delegator, yes, true)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.emit(ctx, number, proxy, res)
	return res.record, nil
}

func (s *VoteService) WithdrawAsProxy(ctx context.Context, proxy string, number uint64, delegator string) error {
	proxy, err := identity(proxy)
	if err != nil {
		return err
	}
	delegator, err = identity(delegator)
	if err != nil {
		return err
	}
	return s.withdraw(ctx, number, proxy, delegator, true)
}

func (s *VoteService) checkProxy(ctx context.Context, tx *repository.Store, proxy, delegator string) error {
	profile, err := tx.Delegations.GetProfile(ctx, proxy)
	if err != nil {
		return err
	}
	record, err := tx.Delegations.GetRecord(ctx, delegator)
	if err != nil {
		return err
	}
	return governance.CheckProxyAuthority(proxy, delegator, profile, record)
}

func (s *VoteService) withdraw(ctx context.Context, number uint64, actor, holder string, byProxy bool) error {
	var power uint64
	err := run(ctx, s.store, func(tx *repository.Store) error {
		_, p, err := s.openProposal(ctx, tx, number)
		if err != nil {
			return err
		}
		if byProxy {
			if err := s.checkProxy(ctx, tx, actor, holder); err != nil {
				return err
			}
		}
		rec, err := tx.Votes.Get(ctx, number, holder)
		if err != nil {
			return err
		}
		if rec != nil {
			power = rec.VotingPower
		}
		if err := governance.ApplyWithdrawal(p, rec, byProxy); err != nil {
			return err
		}
		if err := tx.Votes.Save(ctx, rec); err != nil {
			return err
		}
		return tx.Proposals.Update(ctx, p)
	})
	if err != nil {
		return err
	}

	logger.WithFields(map[string]interface{}{
		"proposal": number,
		"voter":    holder,
		"actor":    actor,
		"by_proxy": byProxy,
		"power":    power,
	}).Info("Vote withdrawn")

	return nil
}

func (s *VoteService) GetVote(ctx context.Context, number uint64, voter string) (*models.VoterRecord, error) {
	voter, err := identity(voter)
	if err != nil {
		return nil, err
	}
	rec, err := s.store.Votes.Get(ctx, number, voter)
	if err != nil {
		return nil, storeErr(err)
	}
	if rec == nil {
		return nil, errors.ErrVoteNotFound
	}
	return rec, nil
}

// VotingPower previews the power holder would cast right now.
func (s *VoteService) VotingPower(ctx context.Context, holder string) (*PowerBreakdown, error) {
	holder, err := identity(holder)
	if err != nil {
		return nil, err
	}

	var power *PowerBreakdown
	err = run(ctx, s.store, func(tx *repository.Store) error {
		cfg, err := loadConfig(ctx, tx)
		if err != nil {
			return err
		}
		power, err = powerOf(ctx, tx, cfg.TokenID, holder)
		return err
	})
	return power, err
}

// GetUserStats returns user's counters; users who never voted read as zero.
func (s *VoteService) GetUserStats(ctx context.Context, user string) (*models.UserStats, error) {
	user, err := identity(user)
	if err != nil {
		return nil, err
	}
	stats, err := s.store.Stats.GetByUser(ctx, user)
	if err != nil {
		return nil, storeErr(err)
	}
	if stats == nil {
		return &models.UserStats{User: user}, nil
	}
	return stats, nil
}

func (s *VoteService) Leaderboard(ctx context.Context, limit int) ([]leaderboard.Entry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	entries, err := s.board.Top(ctx, limit)
	return entries, storeErr(err)
}
