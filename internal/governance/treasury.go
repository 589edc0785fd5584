package governance

import (
	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
)

// CheckExecute validates releasing p's escrow to destination. Anyone may call.
func CheckExecute(p *models.Proposal, destination string, now int64) error {
	if p.Kind != models.ProposalKindTreasuryTransfer {
		return errors.ErrNotTreasuryProposal
	}
	if p.Executed {
		return errors.ErrAlreadyExecuted
	}
	if now <= p.Deadline {
		return errors.ErrProposalNotEnded
	}
	if now < CheckedAddInt64(p.Deadline, p.TimelockSeconds) {
		return errors.ErrTimelockNotPassed
	}
	if p.Yes <= p.No {
		return errors.ErrProposalNotPassed
	}
	if destination != p.TransferDestination {
		return errors.ErrUnauthorized
	}
	return nil
}

// CheckReclaim validates returning p's escrow to its author.
func CheckReclaim(p *models.Proposal, caller string, now int64) error {
	if p.Kind != models.ProposalKindTreasuryTransfer {
		return errors.ErrNotTreasuryProposal
	}
	if p.Executed {
		return errors.ErrAlreadyExecuted
	}
	if caller != p.Author {
		return errors.ErrUnauthorized
	}
	if now <= p.Deadline {
		return errors.ErrProposalNotEnded
	}
	if p.No < p.Yes {
		return errors.ErrProposalPassed
	}
	return nil
}

// Settle closes p and drains escrow. Both terminal transitions share it.
func Settle(p *models.Proposal, escrow *models.TreasuryEscrow) uint64 {
	amount := escrow.Balance
	escrow.Balance = 0
	p.Executed = true
	p.IsActive = false
	return amount
}
