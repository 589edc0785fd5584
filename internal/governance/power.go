package governance

import (
	"math"

	"github.com/GushALKDev/solana-pulsar-dao/internal/models"
	"github.com/GushALKDev/solana-pulsar-dao/pkg/errors"
)

// IntSqrt returns floor(sqrt(n)) exactly for every uint64.
func IntSqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}
	r := uint64(math.Sqrt(float64(n)))
	for r > n/r {
		r--
	}
	for r+1 <= n/(r+1) {
		r++
	}
	return r
}

// Power computes quadratic voting weight:
// floor(sqrt(liquid)) + floor(sqrt(staked)) * multiplier.
func Power(liquid, staked, multiplier uint64) (uint64, error) {
	stakedPower := CheckedMul(IntSqrt(staked), multiplier)
	total := CheckedAdd(IntSqrt(liquid), stakedPower)
	if total == 0 {
		return 0, errors.ErrNoVotingPower
	}
	return total, nil
}

// StakeTerms returns the staked amount and multiplier of a position. A missing
// position counts as nothing staked with multiplier 1.
func StakeTerms(pos *models.StakePosition) (staked, multiplier uint64) {
	if pos == nil {
		return 0, UnstakedMultiplier
	}
	if pos.Multiplier == 0 {
		return pos.StakedAmount, UnstakedMultiplier
	}
	return pos.StakedAmount, pos.Multiplier
}

// PositionPower is Power over a liquid balance and an optional stake position.
func PositionPower(liquid uint64, pos *models.StakePosition) (uint64, error) {
	staked, multiplier := StakeTerms(pos)
	return Power(liquid, staked, multiplier)
}
