package governance

import (
	"math"
	"unicode/utf8"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

type Status string

const (
	StatusActive    Status = "active"
	StatusPassed    Status = "passed"
	StatusFailed    Status = "failed"
	StatusExecuted  Status = "executed"
	StatusReclaimed Status = "reclaimed"
)

func RequireEnabled(cfg *models.GlobalConfig) error {
	if !cfg.SystemEnabled {
		return errors.ErrCircuitBreakerTripped
	}
	return nil
}

// ProposalDraft carries caller input for a new proposal.
type ProposalDraft struct {
	Author              string
	Title               string
	Description         string
	Deadline            int64
	TransferAmount      uint64
	TransferDestination string
	TimelockSeconds     int64
}

func validateText(d ProposalDraft) error {
	if d.Title == "" || utf8.RuneCountInString(d.Title) > MaxTitleLength {
		return errors.ErrInvalidProposal
	}
	if utf8.RuneCountInString(d.Description) > MaxDescriptionLength {
		return errors.ErrInvalidProposal
	}
	return nil
}

// NewProposal allocates the next sequence number from cfg and returns a
// standard proposal with zeroed tallies.
func NewProposal(cfg *models.GlobalConfig, d ProposalDraft) (*models.Proposal, error) {
	if err := RequireEnabled(cfg); err != nil {
		return nil, err
	}
	if err := validateText(d); err != nil {
		return nil, err
	}

	cfg.ProposalCount = CheckedAdd(cfg.ProposalCount, 1)
	return &models.Proposal{
		Number:              cfg.ProposalCount,
		Author:              d.Author,
		Title:               d.Title,
		Description:         d.Description,
		Deadline:            d.Deadline,
		IsActive:            true,
		Kind:                models.ProposalKindStandard,
		TransferDestination: d.Author,
	}, nil
}

// NewTreasuryProposal is NewProposal for a treasury transfer. The caller must
// escrow TransferAmount in the same unit of work.
func NewTreasuryProposal(cfg *models.GlobalConfig, d ProposalDraft) (*models.Proposal, error) {
	if err := RequireEnabled(cfg); err != nil {
		return nil, err
	}
	if d.TransferAmount == 0 {
		return nil, errors.ErrInvalidAmount
	}
	if d.TimelockSeconds < 0 || d.TransferDestination == "" {
		return nil, errors.ErrInvalidProposal
	}
	// The release time must be representable.
	if d.Deadline > math.MaxInt64-d.TimelockSeconds {
		return nil, errors.ErrInvalidProposal
	}
	if err := validateText(d); err != nil {
		return nil, err
	}

	cfg.ProposalCount = CheckedAdd(cfg.ProposalCount, 1)
	return &models.Proposal{
		Number:              cfg.ProposalCount,
		Author:              d.Author,
		Title:               d.Title,
		Description:         d.Description,
		Deadline:            d.Deadline,
		IsActive:            true,
		Kind:                models.ProposalKindTreasuryTransfer,
		TransferAmount:      d.TransferAmount,
		TransferDestination: d.TransferDestination,
		TimelockSeconds:     d.TimelockSeconds,
	}, nil
}

// RequireOpen checks that p still accepts votes at now.
func RequireOpen(p *models.Proposal, now int64) error {
	if !p.IsActive {
		return errors.ErrProposalNotActive
	}
	if now > p.Deadline {
		return errors.ErrProposalExpired
	}
	return nil
}

// StatusAt derives the lifecycle state of p. Executed and reclaimed share the
// executed flag and are told apart by the frozen tallies.
func StatusAt(p *models.Proposal, now int64) Status {
	if p.Executed {
		if p.Yes > p.No {
			return StatusExecuted
		}
		return StatusReclaimed
	}
	if p.IsActive && now <= p.Deadline {
		return StatusActive
	}
	if p.Yes > p.No {
		return StatusPassed
	}
	return StatusFailed
}
