package governance

import (
	stderrors "errors"
	"math"
	"math/bits"
)

// ErrArithmeticOverflow is the panic value raised when a tally, amount or
// counter leaves the uint64 range. It signals a broken invariant, not bad input.
var ErrArithmeticOverflow = stderrors.New("arithmetic overflow")

func CheckedAdd(a, b uint64) uint64 {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		panic(ErrArithmeticOverflow)
	}
	return sum
}

func CheckedSub(a, b uint64) uint64 {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		panic(ErrArithmeticOverflow)
	}
	return diff
}

func CheckedMul(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		panic(ErrArithmeticOverflow)
	}
	return lo
}

// CheckedAddInt64 adds two timestamps or durations, panicking on wrap.
func CheckedAddInt64(a, b int64) int64 {
	sum := a + b
	if (b > 0 && sum < a) || (b < 0 && sum > a) {
		panic(ErrArithmeticOverflow)
	}
	return sum
}

func CheckedMulInt64(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	product := a * b
	if product/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		panic(ErrArithmeticOverflow)
	}
	return product
}
