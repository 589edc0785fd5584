package governance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
)

func treasuryProposal(yes, no uint64) *models.Proposal {
	return &models.Proposal{
		Number:              4,
		Author:              "author",
		Kind:                models.ProposalKindTreasuryTransfer,
		IsActive:            true,
		Deadline:            1000,
		TimelockSeconds:     3600,
		TransferAmount:      500,
		TransferDestination: "dest",
		Yes:                 yes,
		No:                  no,
	}
}

func TestCheckExecute(t *testing.T) {
	tests := []struct {
		name string
		p    *models.Proposal
		dest string
		now  int64
		want error
	}{
		{"standard proposal", &models.Proposal{Kind: models.ProposalKindStandard}, "dest", 9999, errors.ErrNotTreasuryProposal},
		{"before deadline", treasuryProposal(10, 0), "dest", 1000, errors.ErrProposalNotEnded},
		{"inside timelock", treasuryProposal(10, 0), "dest", 1001, errors.ErrTimelockNotPassed},
		{"tie does not pass", treasuryProposal(5, 5), "dest", 4600, errors.ErrProposalNotPassed},
		{"substituted destination", treasuryProposal(10, 0), "mallory", 4600, errors.ErrUnauthorized},
		{"ready", treasuryProposal(10, 0), "dest", 4600, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckExecute(tt.p, tt.dest, tt.now)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTimelockOverflow(t *testing.T) {
	cfg := &models.GlobalConfig{SystemEnabled: true}
	draft := ProposalDraft{
		Author:              "author",
		Title:               "Grant",
		Deadline:            2000,
		TransferAmount:      400,
		TransferDestination: "dest",
		TimelockSeconds:     math.MaxInt64,
	}

	_, err := NewTreasuryProposal(cfg, draft)
	assert.ErrorIs(t, err, errors.ErrInvalidProposal)
	assert.Equal(t, uint64(0), cfg.ProposalCount)

	draft.TimelockSeconds = math.MaxInt64 - draft.Deadline
	p, err := NewTreasuryProposal(cfg, draft)
	require.NoError(t, err)
	assert.ErrorIs(t, CheckExecute(p, "dest", 2001), errors.ErrTimelockNotPassed)

	// A stored window that cannot be represented never opens.
	p.Yes = 10
	p.TimelockSeconds = math.MaxInt64
	assert.PanicsWithValue(t, ErrArithmeticOverflow, func() { CheckExecute(p, "dest", 2001) })
}

func TestCheckReclaim(t *testing.T) {
	assert.ErrorIs(t, CheckReclaim(treasuryProposal(0, 0), "someone", 2000), errors.ErrUnauthorized)
	assert.ErrorIs(t, CheckReclaim(treasuryProposal(0, 0), "author", 1000), errors.ErrProposalNotEnded)
	assert.ErrorIs(t, CheckReclaim(treasuryProposal(3, 2), "author", 2000), errors.ErrProposalPassed)
	assert.NoError(t, CheckReclaim(treasuryProposal(2, 2), "author", 1001))
}

func TestSettleIsAbsorbing(t *testing.T) {
	p := treasuryProposal(10, 0)
	escrow := &models.TreasuryEscrow{ProposalNumber: 4, Balance: 500}

	require.NoError(t, CheckExecute(p, "dest", 4600))
	assert.Equal(t, uint64(500), Settle(p, escrow))
	assert.Equal(t, uint64(0), escrow.Balance)
	assert.False(t, p.IsActive)

	assert.ErrorIs(t, CheckExecute(p, "dest", 4600), errors.ErrAlreadyExecuted)
	assert.ErrorIs(t, CheckReclaim(p, "author", 4600), errors.ErrAlreadyExecuted)
	assert.Equal(t, StatusExecuted, StatusAt(p, 4600))
}

func TestStatusAt(t *testing.T) {
	p := treasuryProposal(1, 2)
	assert.Equal(t, StatusActive, StatusAt(p, 1000))
	assert.Equal(t, StatusFailed, StatusAt(p, 1001))
	p.Yes = 3
	assert.Equal(t, StatusPassed, StatusAt(p, 1001))
}
