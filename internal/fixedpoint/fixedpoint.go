package fixedpoint

import (
	"errors"
	"math/bits"

	"github.com/holiman/uint256"
)

var (
	// ErrOverflow is returned whenever a checked operation would wrap.
	ErrOverflow = errors.New("arithmetic overflow")
	// ErrDivisionByZero is returned when a divisor is zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// rewardScale is 10^24, the scale of the reward-per-share accumulator.
var rewardScale = uint256.MustFromDecimal("1000000000000000000000000")

// RewardScale returns a fresh copy of the accumulator scale.
func RewardScale() *uint256.Int {
	return new(uint256.Int).Set(rewardScale)
}

func Add(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).AddOverflow(x, y)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

func Sub(x, y *uint256.Int) (*uint256.Int, error) {
	z, underflow := new(uint256.Int).SubOverflow(x, y)
	if underflow {
		return nil, ErrOverflow
	}
	return z, nil
}

func Mul(x, y *uint256.Int) (*uint256.Int, error) {
	z, overflow := new(uint256.Int).MulOverflow(x, y)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

func Div(x, y *uint256.Int) (*uint256.Int, error) {
	if y.IsZero() {
		return nil, ErrDivisionByZero
	}
	return new(uint256.Int).Div(x, y), nil
}

// MulDiv computes x*y/d with a 512-bit intermediate product, so the
// multiplication never loses precision. It fails only if the quotient
// itself does not fit in 256 bits.
func MulDiv(x, y, d *uint256.Int) (*uint256.Int, error) {
	if d.IsZero() {
		return nil, ErrDivisionByZero
	}
	z, overflow := new(uint256.Int).MulDivOverflow(x, y, d)
	if overflow {
		return nil, ErrOverflow
	}
	return z, nil
}

// ToUint64 narrows x, failing if it does not fit.
func ToUint64(x *uint256.Int) (uint64, error) {
	if !x.IsUint64() {
		return 0, ErrOverflow
	}
	return x.Uint64(), nil
}

func AddUint64(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

func SubUint64(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrOverflow
	}
	return diff, nil
}

func MulUint64(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrOverflow
	}
	return lo, nil
}

// MulDivUint64 computes a*b/d with a 128-bit intermediate.
func MulDivUint64(a, b, d uint64) (uint64, error) {
	if d == 0 {
		return 0, ErrDivisionByZero
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= d {
		return 0, ErrOverflow
	}
	quo, _ := bits.Div64(hi, lo, d)
	return quo, nil
}

// AddSeconds adds a duration in seconds to a unix timestamp.
func AddSeconds(ts int64, seconds uint64) (int64, error) {
	if seconds > uint64(1<<63-1) {
		return 0, ErrOverflow
	}
	d := int64(seconds)
	if ts > 0 && d > (1<<63-1)-ts {
		return 0, ErrOverflow
	}
	return ts + d, nil
}
