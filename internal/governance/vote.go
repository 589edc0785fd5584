package governance

import (
	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
)

// Ballot is one cast: who the record belongs to, the choice, and the weight
// computed from that holder's balances.
type Ballot struct {
	Voter        string
	Yes          bool
	Power        uint64
	StakedAmount uint64
	ByProxy      bool
}

func addTally(p *models.Proposal, yes bool, power uint64) {
	if yes {
		p.Yes = CheckedAdd(p.Yes, power)
	} else {
		p.No = CheckedAdd(p.No, power)
	}
}

func subTally(p *models.Proposal, yes bool, power uint64) {
	if yes {
		p.Yes = CheckedSub(p.Yes, power)
	} else {
		p.No = CheckedSub(p.No, power)
	}
}

// ApplyBallot records b on p. rec is the existing (proposal, voter) record or
// nil; the returned record is the one to persist.
//
// A record that is not currently voted is treated as a fresh cast whatever its
// history. A voted record may only switch sides, and a direct cast may not
// touch a proxy-cast record.
func ApplyBallot(p *models.Proposal, rec *models.VoterRecord, b Ballot) (*models.VoterRecord, error) {
	if rec == nil {
		rec = &models.VoterRecord{
			ProposalNumber: p.Number,
			Voter:          b.Voter,
		}
	}

	if rec.Voted {
		if rec.VotedByProxy && !b.ByProxy {
			return nil, errors.ErrProxyVoteLocked
		}
		if rec.Vote == b.Yes {
			return nil, errors.ErrAlreadyVoted
		}
		subTally(p, rec.Vote, rec.VotingPower)
	}
	addTally(p, b.Yes, b.Power)

	rec.Vote = b.Yes
	rec.Voted = true
	rec.VotingPower = b.Power
	rec.StakedAmount = b.StakedAmount
	rec.VotedByProxy = b.ByProxy
	return rec, nil
}

// ApplyWithdrawal removes rec's weight from p. byProxy selects the proxy path,
// which may clear a proxy lock; the direct path may not.
func ApplyWithdrawal(p *models.Proposal, rec *models.VoterRecord, byProxy bool) error {
	if rec == nil || !rec.Voted {
		return errors.ErrNoActiveVote
	}
	if rec.VotedByProxy && !byProxy {
		return errors.ErrProxyVoteLocked
	}

	subTally(p, rec.Vote, rec.VotingPower)
	rec.Voted = false
	rec.VotingPower = 0
	rec.VotedByProxy = false
	return nil
}

// CreditVote updates the acting user's stats; stats may be nil on first vote.
func CreditVote(stats *models.UserStats, user string, now int64, score uint64) *models.UserStats {
	if stats == nil {
		stats = &models.UserStats{User: user}
	}
	stats.VoteCount = CheckedAdd(stats.VoteCount, 1)
	stats.LastVoteTime = now
	stats.Score = CheckedAdd(stats.Score, score)
	return stats
}
