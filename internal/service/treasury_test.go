package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GushALKDev/solana-pulsar-dao/internal/governance"
	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
)

func (e *testEnv) treasuryProposal(t *testing.T, amount uint64, deadline, timelock int64) uint64 {
	t.Helper()
	p, err := e.svc.Proposal.CreateTreasuryProposal(e.ctx, alice, TreasuryDraft{
		Title:           "Grant",
		Description:     "Fund the indexer",
		Deadline:        deadline,
		Amount:          amount,
		Destination:     dest,
		TimelockSeconds: timelock,
	})
	require.NoError(t, err)
	return p.Number
}

func TestCreateTreasuryProposal(t *testing.T) {
	t.Run("escrows the amount", func(t *testing.T) {
		e := newEnv(t)
		e.mint(t, alice, 1000)
		number := e.treasuryProposal(t, 400, 2000, 3600)

		p := e.proposal(t, number)
		assert.Equal(t, models.ProposalKindTreasuryTransfer, p.Kind)
		assert.Equal(t, dest, p.TransferDestination)
		assert.Equal(t, uint64(400), p.TransferAmount)

		escrow, err := e.svc.Proposal.GetEscrow(e.ctx, number)
		require.NoError(t, err)
		assert.Equal(t, governance.EscrowAccount(number).Hex(), escrow.Account)
		assert.Equal(t, uint64(400), escrow.Balance)
		assert.Equal(t, uint64(400), e.balance(t, escrow.Account))
		assert.Equal(t, uint64(600), e.balance(t, alice))
	})

	t.Run("insufficient funds roll back the counter", func(t *testing.T) {
		e := newEnv(t)
		e.mint(t, alice, 100)
		_, err := e.svc.Proposal.CreateTreasuryProposal(e.ctx, alice, TreasuryDraft{
			Title: "Grant", Deadline: 2000, Amount: 101, Destination: dest,
		})
		assert.ErrorIs(t, err, errors.ErrInsufficientBalance)

		cfg, err := e.svc.Admin.GetConfig(e.ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), cfg.ProposalCount)
		assert.Equal(t, uint64(100), e.balance(t, alice))
	})

	t.Run("zero amount", func(t *testing.T) {
		e := newEnv(t)
		e.mint(t, alice, 100)
		_, err := e.svc.Proposal.CreateTreasuryProposal(e.ctx, alice, TreasuryDraft{
			Title: "Grant", Deadline: 2000, Amount: 0, Destination: dest,
		})
		assert.ErrorIs(t, err, errors.ErrInvalidAmount)
	})

	t.Run("unrepresentable release time", func(t *testing.T) {
		e := newEnv(t)
		e.mint(t, alice, 1000)
		_, err := e.svc.Proposal.CreateTreasuryProposal(e.ctx, alice, TreasuryDraft{
			Title: "Grant", Deadline: 2000, Amount: 400, Destination: dest, TimelockSeconds: math.MaxInt64,
		})
		assert.ErrorIs(t, err, errors.ErrInvalidProposal)

		cfg, err := e.svc.Admin.GetConfig(e.ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), cfg.ProposalCount)
		assert.Equal(t, uint64(1000), e.balance(t, alice))
	})

	t.Run("standard proposal has no escrow", func(t *testing.T) {
		e := newEnv(t)
		number := e.standardProposal(t, 2000)
		_, err := e.svc.Proposal.GetEscrow(e.ctx, number)
		assert.ErrorIs(t, err, errors.ErrNotTreasuryProposal)
	})
}

func TestExecuteAfterTimelock(t *testing.T) {
	e := newEnv(t)
	e.mint(t, alice, 1000)
	e.mint(t, bob, 100)
	number := e.treasuryProposal(t, 500, 2000, 3600)

	_, err := e.svc.Vote.Vote(e.ctx, bob, number, true)
	require.NoError(t, err)

	e.clock.Set(2000)
	_, err = e.svc.Treasury.Execute(e.ctx, carol, number, dest)
	assert.ErrorIs(t, err, errors.ErrProposalNotEnded)

	e.clock.Set(2001)
	_, err = e.svc.Treasury.Execute(e.ctx, carol, number, dest)
	assert.ErrorIs(t, err, errors.ErrTimelockNotPassed)

	e.clock.Set(5601)
	_, err = e.svc.Treasury.Execute(e.ctx, carol, number, carol)
	assert.ErrorIs(t, err, errors.ErrUnauthorized)

	settlement, err := e.svc.Treasury.Execute(e.ctx, carol, number, dest)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), settlement.Amount)
	assert.Equal(t, dest, settlement.Recipient)
	assert.NotEmpty(t, settlement.Reference)

	assert.Equal(t, uint64(500), e.balance(t, dest))
	assert.Equal(t, uint64(0), e.balance(t, governance.EscrowAccount(number).Hex()))

	p := e.proposal(t, number)
	assert.True(t, p.Executed)
	assert.False(t, p.IsActive)
	assert.Equal(t, governance.StatusExecuted, p.Status)

	_, err = e.svc.Treasury.Execute(e.ctx, carol, number, dest)
	assert.ErrorIs(t, err, errors.ErrAlreadyExecuted)
	_, err = e.svc.Treasury.Reclaim(e.ctx, alice, number)
	assert.ErrorIs(t, err, errors.ErrAlreadyExecuted)

	history, err := e.store.History.GetByReference(e.ctx, settlement.Reference)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestExecuteIgnoresCircuitBreaker(t *testing.T) {
	e := newEnv(t)
	e.mint(t, alice, 1000)
	e.mint(t, bob, 100)
	number := e.treasuryProposal(t, 500, 2000, 0)
	_, err := e.svc.Vote.Vote(e.ctx, bob, number, true)
	require.NoError(t, err)

	_, err = e.svc.Admin.ToggleCircuitBreaker(e.ctx, admin)
	require.NoError(t, err)

	e.clock.Set(2001)
	_, err = e.svc.Treasury.Execute(e.ctx, carol, number, dest)
	require.NoError(t, err)
}

func TestExecuteRejectsFailedProposal(t *testing.T) {
	e := newEnv(t)
	e.mint(t, alice, 1000)
	number := e.treasuryProposal(t, 500, 2000, 0)

	e.clock.Set(2001)
	_, err := e.svc.Treasury.Execute(e.ctx, carol, number, dest)
	assert.ErrorIs(t, err, errors.ErrProposalNotPassed)

	standard := e.standardProposal(t, 3000)
	e.clock.Set(3001)
	_, err = e.svc.Treasury.Execute(e.ctx, carol, standard, dest)
	assert.ErrorIs(t, err, errors.ErrNotTreasuryProposal)
	_, err = e.svc.Treasury.Reclaim(e.ctx, alice, standard)
	assert.ErrorIs(t, err, errors.ErrNotTreasuryProposal)

	_, err = e.svc.Treasury.Execute(e.ctx, carol, 99, dest)
	assert.ErrorIs(t, err, errors.ErrProposalNotFound)
}

func TestReclaim(t *testing.T) {
	t.Run("tie returns the funds", func(t *testing.T) {
		e := newEnv(t)
		e.mint(t, alice, 1000)
		e.mint(t, bob, 100)
		e.mint(t, carol, 100)
		number := e.treasuryProposal(t, 500, 2000, 3600)

		_, err := e.svc.Vote.Vote(e.ctx, bob, number, true)
		require.NoError(t, err)
		_, err = e.svc.Vote.Vote(e.ctx, carol, number, false)
		require.NoError(t, err)

		_, err = e.svc.Treasury.Reclaim(e.ctx, alice, number)
		assert.ErrorIs(t, err, errors.ErrProposalNotEnded)

		e.clock.Set(2001)
		_, err = e.svc.Treasury.Reclaim(e.ctx, bob, number)
		assert.ErrorIs(t, err, errors.ErrUnauthorized)

		settlement, err := e.svc.Treasury.Reclaim(e.ctx, alice, number)
		require.NoError(t, err)
		assert.Equal(t, alice, settlement.Recipient)
		assert.Equal(t, uint64(500), settlement.Amount)
		assert.Equal(t, uint64(1000), e.balance(t, alice))

		p := e.proposal(t, number)
		assert.Equal(t, governance.StatusReclaimed, p.Status)

		_, err = e.svc.Treasury.Execute(e.ctx, carol, number, dest)
		assert.ErrorIs(t, err, errors.ErrAlreadyExecuted)
	})

	t.Run("passed proposal keeps its escrow", func(t *testing.T) {
		e := newEnv(t)
		e.mint(t, alice, 1000)
		e.mint(t, bob, 100)
		number := e.treasuryProposal(t, 500, 2000, 3600)
		_, err := e.svc.Vote.Vote(e.ctx, bob, number, true)
		require.NoError(t, err)

		e.clock.Set(2001)
		_, err = e.svc.Treasury.Reclaim(e.ctx, alice, number)
		assert.ErrorIs(t, err, errors.ErrProposalPassed)
		assert.Equal(t, uint64(500), e.balance(t, governance.EscrowAccount(number).Hex()))
	})
}

func TestExecuteHonoursLongTimelock(t *testing.T) {
	e := newEnv(t)
	e.mint(t, alice, 1000)
	e.mint(t, bob, 100)
	number := e.treasuryProposal(t, 400, 2000, math.MaxInt64-2000)

	_, err := e.svc.Vote.Vote(e.ctx, bob, number, true)
	require.NoError(t, err)

	e.clock.Set(2001)
	_, err = e.svc.Treasury.Execute(e.ctx, carol, number, dest)
	assert.ErrorIs(t, err, errors.ErrTimelockNotPassed)
	assert.Equal(t, uint64(0), e.balance(t, dest))
	assert.Equal(t, uint64(400), e.balance(t, governance.EscrowAccount(number).Hex()))
}
