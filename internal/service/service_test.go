package service

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/GushALKDev/solana-pulsar-dao/internal/config"
	"github.com/GushALKDev/solana-pulsar-dao/internal/database"
	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/internal/repository"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/logger"
)

const tokenID = "PLSR"

func addr(n byte) string {
	return common.BytesToAddress([]byte{n}).Hex()
}

var (
	admin = addr(0xa0)
	alice = addr(0x01)
	bob   = addr(0x02)
	carol = addr(0x03)
	dest  = addr(0x04)
)

type testEnv struct {
	ctx   context.Context
	store *repository.Store
	clock *ManualClock
	svc   *Services
}

func newUninitializedEnv(t *testing.T) *testEnv {
	t.Helper()
	logger.Discard()

	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })

	store := repository.NewStore(db)
	clock := NewManualClock(1000)
	return &testEnv{
		ctx:   context.Background(),
		store: store,
		clock: clock,
		svc:   New(store, clock, nil, config.GovernanceConfig{LockUnitSeconds: 1, ScorePerVote: 10}),
	}
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	e := newUninitializedEnv(t)
	_, err := e.svc.Admin.Initialize(e.ctx, admin, tokenID)
	require.NoError(t, err)
	return e
}

func (e *testEnv) mint(t *testing.T, to string, amount uint64) {
	t.Helper()
	_, err := e.svc.Admin.Mint(e.ctx, admin, to, amount)
	require.NoError(t, err)
}

func (e *testEnv) balance(t *testing.T, account string) uint64 {
	t.Helper()
	balance, err := e.store.Ledger.GetBalance(e.ctx, tokenID, account)
	require.NoError(t, err)
	return balance
}

func (e *testEnv) proposal(t *testing.T, number uint64) *ProposalView {
	t.Helper()
	p, err := e.svc.Proposal.GetProposal(e.ctx, number)
	require.NoError(t, err)
	return p
}

// standardProposal creates a proposal closing at deadline and returns its number.
func (e *testEnv) standardProposal(t *testing.T, deadline int64) uint64 {
	t.Helper()
	p, err := e.svc.Proposal.CreateProposal(e.ctx, alice, "Upgrade", "Raise the quorum display", deadline)
	require.NoError(t, err)
	return p.Number
}

func (e *testEnv) record(t *testing.T, number uint64, voter string) *models.VoterRecord {
	t.Helper()
	rec, err := e.store.Votes.Get(e.ctx, number, voter)
	require.NoError(t, err)
	require.NotNil(t, rec)
	return rec
}
