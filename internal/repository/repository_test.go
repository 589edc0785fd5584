package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GushALKDev/solana-pulsar-dao/internal/database"
	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
)

const token = "PLSR"

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return NewStore(db)
}

func TestLedger(t *testing.T) {
	ctx := context.Background()

	t.Run("mint then transfer", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.Ledger.Mint(ctx, token, "alice", 100, 1)
		require.NoError(t, err)

		ref, err := store.Ledger.Transfer(ctx, token, "alice", "bob", 40, 2)
		require.NoError(t, err)
		assert.NotEmpty(t, ref)

		alice, err := store.Ledger.GetBalance(ctx, token, "alice")
		require.NoError(t, err)
		bob, err := store.Ledger.GetBalance(ctx, token, "bob")
		require.NoError(t, err)
		assert.Equal(t, uint64(60), alice)
		assert.Equal(t, uint64(40), bob)

		legs, err := store.History.GetByReference(ctx, ref)
		require.NoError(t, err)
		require.Len(t, legs, 2)
		assert.Equal(t, models.ChangeTypeTransferOut, legs[0].ChangeType)
		assert.Equal(t, uint64(100), legs[0].BalanceBefore)
		assert.Equal(t, models.ChangeTypeTransferIn, legs[1].ChangeType)
		assert.Equal(t, "alice", legs[1].Counterparty)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.Ledger.Transfer(ctx, token, "alice", "bob", 1, 1)
		assert.ErrorIs(t, err, errors.ErrInsufficientBalance)

		_, err = store.Ledger.Mint(ctx, token, "alice", 5, 1)
		require.NoError(t, err)
		_, err = store.Ledger.Transfer(ctx, token, "alice", "bob", 6, 1)
		assert.ErrorIs(t, err, errors.ErrInsufficientBalance)
	})

	t.Run("zero amounts are rejected", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.Ledger.Mint(ctx, token, "alice", 0, 1)
		assert.ErrorIs(t, err, errors.ErrInvalidAmount)
		_, err = store.Ledger.Transfer(ctx, token, "alice", "bob", 0, 1)
		assert.ErrorIs(t, err, errors.ErrInvalidAmount)
	})

	t.Run("balances are per token", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.Ledger.Mint(ctx, "OTHER", "alice", 5, 1)
		require.NoError(t, err)

		balance, err := store.Ledger.GetBalance(ctx, token, "alice")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), balance)
	})
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Ledger.Mint(ctx, token, "alice", 10, 1)
	require.NoError(t, err)

	err = store.Transaction(ctx, func(tx *Store) error {
		if _, err := tx.Ledger.Transfer(ctx, token, "alice", "bob", 10, 2); err != nil {
			return err
		}
		return errors.ErrUnauthorized
	})
	assert.ErrorIs(t, err, errors.ErrUnauthorized)

	assert.Panics(t, func() {
		_ = store.Transaction(ctx, func(tx *Store) error {
			if _, err := tx.Ledger.Transfer(ctx, token, "alice", "bob", 10, 2); err != nil {
				return err
			}
			panic("boom")
		})
	})

	alice, err := store.Ledger.GetBalance(ctx, token, "alice")
	require.NoError(t, err)
	bob, err := store.Ledger.GetBalance(ctx, token, "bob")
	require.NoError(t, err)
	assert.Equal(t, uint64(10), alice)
	assert.Equal(t, uint64(0), bob)
}

func TestVersionedUpdate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Proposals.Create(ctx, &models.Proposal{Number: 1, Author: "alice", Title: "t", IsActive: true}))

	first, err := store.Proposals.GetByNumber(ctx, 1)
	require.NoError(t, err)
	stale, err := store.Proposals.GetByNumber(ctx, 1)
	require.NoError(t, err)

	first.Yes = 10
	require.NoError(t, store.Proposals.Update(ctx, first))
	assert.Equal(t, uint64(1), first.Version)

	stale.No = 5
	err = store.Proposals.Update(ctx, stale)
	assert.ErrorIs(t, err, errors.ErrConcurrentUpdate)
	assert.Equal(t, uint64(0), stale.Version)

	current, err := store.Proposals.GetByNumber(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), current.Yes)
	assert.Equal(t, uint64(0), current.No)

	err = store.Proposals.Create(ctx, &models.Proposal{Number: 1, Author: "bob", Title: "dup"})
	assert.ErrorIs(t, err, errors.ErrConcurrentUpdate)
}

func TestConfigRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	cfg, err := store.Config.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, cfg)

	require.NoError(t, store.Config.Create(ctx, &models.GlobalConfig{Admin: "admin", TokenID: token, SystemEnabled: true}))
	err = store.Config.Create(ctx, &models.GlobalConfig{Admin: "other", TokenID: token})
	assert.ErrorIs(t, err, errors.ErrAlreadyInitialized)

	cfg, err = store.Config.Get(ctx)
	require.NoError(t, err)
	cfg.SystemEnabled = false
	require.NoError(t, store.Config.Update(ctx, cfg))

	cfg, err = store.Config.Get(ctx)
	require.NoError(t, err)
	assert.False(t, cfg.SystemEnabled)
	assert.Equal(t, "admin", cfg.Admin)
}

func TestVoteRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	rec := &models.VoterRecord{ProposalNumber: 1, Voter: "alice", Vote: true, Voted: true, VotingPower: 10}
	require.NoError(t, store.Votes.Save(ctx, rec))
	require.NotZero(t, rec.ID)

	rec.Voted = false
	rec.VotingPower = 0
	require.NoError(t, store.Votes.Save(ctx, rec))

	require.NoError(t, store.Votes.Save(ctx, &models.VoterRecord{ProposalNumber: 1, Voter: "bob", Voted: true, VotingPower: 4}))

	voted, err := store.Votes.ListVoted(ctx, 1)
	require.NoError(t, err)
	require.Len(t, voted, 1)
	assert.Equal(t, "bob", voted[0].Voter)

	got, err := store.Votes.Get(ctx, 1, "alice")
	require.NoError(t, err)
	assert.False(t, got.Voted)
	assert.True(t, got.Vote)

	missing, err := store.Votes.Get(ctx, 2, "alice")
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = store.Votes.Save(ctx, &models.VoterRecord{ProposalNumber: 1, Voter: "bob"})
	assert.ErrorIs(t, err, errors.ErrConcurrentUpdate)
}

func TestDelegationRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Delegations.UpsertProfile(ctx, &models.DelegateProfile{Delegate: "bob", Authority: "bob", IsActive: true}))
	require.NoError(t, store.Delegations.UpsertProfile(ctx, &models.DelegateProfile{Delegate: "bob", Authority: "bob", IsActive: false}))

	profile, err := store.Delegations.GetProfile(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, profile.IsActive)

	require.NoError(t, store.Delegations.UpsertRecord(ctx, &models.DelegationRecord{Delegator: "alice", DelegateTarget: "bob"}))
	require.NoError(t, store.Delegations.UpsertRecord(ctx, &models.DelegationRecord{Delegator: "alice", DelegateTarget: "carol"}))

	record, err := store.Delegations.GetRecord(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "carol", record.DelegateTarget)

	count, err := store.Delegations.CountDelegators(ctx, "carol")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, store.Delegations.DeleteRecord(ctx, "alice"))
	assert.ErrorIs(t, store.Delegations.DeleteRecord(ctx, "alice"), errors.ErrDelegationNotFound)

	require.NoError(t, store.Delegations.DeleteProfile(ctx, "bob"))
	assert.ErrorIs(t, store.Delegations.DeleteProfile(ctx, "bob"), errors.ErrDelegateNotFound)
}

func TestStatsRepository(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Stats.Save(ctx, &models.UserStats{User: "alice", VoteCount: 1, Score: 10, LastVoteTime: 5}))
	require.NoError(t, store.Stats.Save(ctx, &models.UserStats{User: "bob", VoteCount: 3, Score: 30, LastVoteTime: 6}))
	require.NoError(t, store.Stats.Save(ctx, &models.UserStats{User: "alice", VoteCount: 4, Score: 40, LastVoteTime: 7}))

	top, err := store.Stats.TopByScore(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "alice", top[0].User)
	assert.Equal(t, uint64(40), top[0].Score)
	assert.Equal(t, "bob", top[1].User)
}
