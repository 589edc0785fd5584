package governance

import (
	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
)

const UnstakedMultiplier uint64 = 1

var lockMultipliers = map[int64]uint64{
	30:  2,
	90:  3,
	180: 4,
	360: 5,
}

// MultiplierFor maps a lock duration to its multiplier. Only exact table
// entries are accepted.
func MultiplierFor(lockDuration int64) (uint64, error) {
	m, ok := lockMultipliers[lockDuration]
	if !ok {
		return 0, errors.ErrInvalidLockDuration
	}
	return m, nil
}

// LockDurations lists the accepted durations in ascending order.
func LockDurations() []int64 {
	return []int64{30, 90, 180, 360}
}

func NewStakePosition(owner string) *models.StakePosition {
	return &models.StakePosition{
		Owner:      owner,
		Multiplier: UnstakedMultiplier,
	}
}

// ApplyDeposit validates a deposit and, only when valid, adds amount to the
// position and overwrites its lock window. unitSeconds scales lockDuration.
func ApplyDeposit(pos *models.StakePosition, amount uint64, lockDuration, now, unitSeconds int64) error {
	if amount == 0 {
		return errors.ErrInvalidAmount
	}
	multiplier, err := MultiplierFor(lockDuration)
	if err != nil {
		return err
	}

	staked := CheckedAdd(pos.StakedAmount, amount)
	lockEnd := CheckedAddInt64(now, CheckedMulInt64(lockDuration, unitSeconds))

	pos.StakedAmount = staked
	pos.LockEndTime = lockEnd
	pos.OriginalLockDuration = lockDuration
	pos.Multiplier = multiplier
	return nil
}

// CheckUnstake returns the amount to release.
func CheckUnstake(pos *models.StakePosition, now int64) (uint64, error) {
	if now < pos.LockEndTime {
		return 0, errors.ErrTokensLocked
	}
	if pos.StakedAmount == 0 {
		return 0, errors.ErrNoTokensToUnstake
	}
	return pos.StakedAmount, nil
}

func ApplyUnstake(pos *models.StakePosition) {
	pos.StakedAmount = 0
	pos.Multiplier = UnstakedMultiplier
	pos.LockEndTime = 0
}
