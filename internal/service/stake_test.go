package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GushALKDev/solana-pulsar-dao/internal/governance"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
)

func TestStakeLifecycle(t *testing.T) {
	e := newEnv(t)
	e.mint(t, alice, 1400)
	vault := governance.VaultAccount(tokenID).Hex()

	_, err := e.svc.Stake.Deposit(e.ctx, alice, 100, 30)
	assert.ErrorIs(t, err, errors.ErrPositionNotFound)

	_, err = e.svc.Stake.OpenPosition(e.ctx, alice)
	require.NoError(t, err)
	_, err = e.svc.Stake.OpenPosition(e.ctx, alice)
	assert.ErrorIs(t, err, errors.ErrPositionExists)

	pos, err := e.svc.Stake.Deposit(e.ctx, alice, 1000, 90)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), pos.StakedAmount)
	assert.Equal(t, uint64(3), pos.Multiplier)
	assert.Equal(t, int64(1090), pos.LockEndTime)
	assert.Equal(t, uint64(400), e.balance(t, alice))
	assert.Equal(t, uint64(1000), e.balance(t, vault))

	power, err := e.svc.Vote.VotingPower(e.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(113), power.Power)
	assert.Equal(t, int64(90), power.LockDuration)

	_, err = e.svc.Stake.Unstake(e.ctx, alice)
	assert.ErrorIs(t, err, errors.ErrTokensLocked)

	e.clock.Set(1090)
	amount, err := e.svc.Stake.Unstake(e.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), amount)
	assert.Equal(t, uint64(1400), e.balance(t, alice))
	assert.Equal(t, uint64(0), e.balance(t, vault))

	pos, err = e.svc.Stake.GetStake(e.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), pos.StakedAmount)
	assert.Equal(t, uint64(1), pos.Multiplier)
	assert.Equal(t, int64(0), pos.LockEndTime)

	_, err = e.svc.Stake.Unstake(e.ctx, alice)
	assert.ErrorIs(t, err, errors.ErrNoTokensToUnstake)
}

func TestDepositRejectionsLeavePositionUnchanged(t *testing.T) {
	e := newEnv(t)
	e.mint(t, alice, 500)
	_, err := e.svc.Stake.OpenPosition(e.ctx, alice)
	require.NoError(t, err)
	_, err = e.svc.Stake.Deposit(e.ctx, alice, 100, 180)
	require.NoError(t, err)

	before, err := e.svc.Stake.GetStake(e.ctx, alice)
	require.NoError(t, err)

	for _, duration := range []int64{0, 7, 60, 91, 365} {
		_, err := e.svc.Stake.Deposit(e.ctx, alice, 100, duration)
		assert.ErrorIs(t, err, errors.ErrInvalidLockDuration, "duration %d", duration)
	}
	_, err = e.svc.Stake.Deposit(e.ctx, alice, 0, 30)
	assert.ErrorIs(t, err, errors.ErrInvalidAmount)
	_, err = e.svc.Stake.Deposit(e.ctx, alice, 401, 30)
	assert.ErrorIs(t, err, errors.ErrInsufficientBalance)

	after, err := e.svc.Stake.GetStake(e.ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, before.StakedAmount, after.StakedAmount)
	assert.Equal(t, before.Multiplier, after.Multiplier)
	assert.Equal(t, before.LockEndTime, after.LockEndTime)
	assert.Equal(t, before.Version, after.Version)
	assert.Equal(t, uint64(400), e.balance(t, alice))
}

func TestRedepositOverwritesLock(t *testing.T) {
	e := newEnv(t)
	e.mint(t, alice, 500)
	_, err := e.svc.Stake.OpenPosition(e.ctx, alice)
	require.NoError(t, err)

	_, err = e.svc.Stake.Deposit(e.ctx, alice, 100, 360)
	require.NoError(t, err)
	e.clock.Advance(10)
	pos, err := e.svc.Stake.Deposit(e.ctx, alice, 100, 30)
	require.NoError(t, err)

	assert.Equal(t, uint64(200), pos.StakedAmount)
	assert.Equal(t, uint64(2), pos.Multiplier)
	assert.Equal(t, int64(1040), pos.LockEndTime)
}

func TestLockUnitScalesLockWindow(t *testing.T) {
	e := newEnv(t)
	e.svc.Stake = NewStakeService(e.store, e.clock, 86400)
	e.mint(t, alice, 100)
	_, err := e.svc.Stake.OpenPosition(e.ctx, alice)
	require.NoError(t, err)

	pos, err := e.svc.Stake.Deposit(e.ctx, alice, 100, 30)
	require.NoError(t, err)
	assert.Equal(t, int64(1000+30*86400), pos.LockEndTime)
}

func TestGetStakeWithoutPosition(t *testing.T) {
	e := newEnv(t)
	pos, err := e.svc.Stake.GetStake(e.ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, bob, pos.Owner)
	assert.Equal(t, uint64(0), pos.StakedAmount)
	assert.Equal(t, uint64(1), pos.Multiplier)
}
