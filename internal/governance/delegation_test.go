package governance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
)

func TestDelegationShape(t *testing.T) {
	cfg := &models.GlobalConfig{Admin: "admin"}

	t.Run("register", func(t *testing.T) {
		assert.ErrorIs(t, CheckRegisterDelegate(cfg, "bob", nil), errors.ErrUnauthorized)
		outgoing := &models.DelegationRecord{Delegator: "carol", DelegateTarget: "dave"}
		assert.ErrorIs(t, CheckRegisterDelegate(cfg, "admin", outgoing), errors.ErrDelegatorCannotBeDelegate)
		assert.NoError(t, CheckRegisterDelegate(cfg, "admin", nil))
	})

	t.Run("delegate", func(t *testing.T) {
		profile := NewDelegateProfile("bob")
		assert.ErrorIs(t, CheckDelegateVote("bob", "carol", profile), errors.ErrDelegateCannotDelegate)
		assert.ErrorIs(t, CheckDelegateVote("alice", "alice", nil), errors.ErrDelegationLoop)
		assert.NoError(t, CheckDelegateVote("alice", "unregistered", nil))
	})

	t.Run("proxy authority", func(t *testing.T) {
		profile := NewDelegateProfile("bob")
		record := &models.DelegationRecord{Delegator: "alice", DelegateTarget: "bob"}

		assert.NoError(t, CheckProxyAuthority("bob", "alice", profile, record))
		assert.ErrorIs(t, CheckProxyAuthority("bob", "alice", nil, record), errors.ErrInvalidDelegate)
		assert.ErrorIs(t, CheckProxyAuthority("bob", "alice", profile, nil), errors.ErrUnauthorized)

		other := &models.DelegationRecord{Delegator: "alice", DelegateTarget: "eve"}
		assert.ErrorIs(t, CheckProxyAuthority("bob", "alice", profile, other), errors.ErrUnauthorized)

		inactive := NewDelegateProfile("bob")
		inactive.IsActive = false
		assert.ErrorIs(t, CheckProxyAuthority("bob", "alice", inactive, record), errors.ErrInvalidDelegate)
	})
}

func TestDerivedAccounts(t *testing.T) {
	assert.Equal(t, EscrowAccount(1), EscrowAccount(1))
	assert.NotEqual(t, EscrowAccount(1), EscrowAccount(2))
	assert.NotEqual(t, VaultAccount("PLSR"), VaultAccount("OTHER"))

	_, err := ParseIdentity("not-an-address")
	assert.ErrorIs(t, err, errors.ErrInvalidIdentity)
	_, err = ParseIdentity("0x0000000000000000000000000000000000000000")
	assert.ErrorIs(t, err, errors.ErrInvalidIdentity)

	addr, err := ParseIdentity(" 0x00000000000000000000000000000000000000aa ")
	assert.NoError(t, err)
	assert.True(t, strings.EqualFold("0x00000000000000000000000000000000000000aa", addr.Hex()))
}
