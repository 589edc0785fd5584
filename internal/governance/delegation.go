package governance

import (
	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
)

// Delegation depth is capped at one. Each check below looks only at the
// caller's immediate neighbour.

func RequireAdmin(cfg *models.GlobalConfig, caller string) error {
	if cfg.Admin != caller {
		return errors.ErrUnauthorized
	}
	return nil
}

// CheckRegisterDelegate rejects targets that currently delegate to someone.
func CheckRegisterDelegate(cfg *models.GlobalConfig, admin string, outgoing *models.DelegationRecord) error {
	if err := RequireAdmin(cfg, admin); err != nil {
		return err
	}
	if outgoing != nil {
		return errors.ErrDelegatorCannotBeDelegate
	}
	return nil
}

func NewDelegateProfile(target string) *models.DelegateProfile {
	return &models.DelegateProfile{
		Delegate:  target,
		Authority: target,
		IsActive:  true,
	}
}

// CheckDelegateVote rejects registered delegates and self-delegation. The
// target's own registration is checked when it votes, not here.
func CheckDelegateVote(user, target string, ownProfile *models.DelegateProfile) error {
	if ownProfile != nil && ownProfile.IsActive {
		return errors.ErrDelegateCannotDelegate
	}
	if user == target {
		return errors.ErrDelegationLoop
	}
	return nil
}

// CheckProxyAuthority verifies that proxy is an active delegate acting for
// itself and that delegator points at it.
func CheckProxyAuthority(proxy, delegator string, profile *models.DelegateProfile, record *models.DelegationRecord) error {
	if profile == nil || !profile.IsActive {
		return errors.ErrInvalidDelegate
	}
	if profile.Authority != proxy {
		return errors.ErrUnauthorized
	}
	if record == nil || record.Delegator != delegator || record.DelegateTarget != proxy {
		return errors.ErrUnauthorized
	}
	return nil
}
