package fixedpoint_test

import (
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoints/staking-ledger/internal/fixedpoint"
)

func TestCheckedUint256(t *testing.T) {
	maxU256 := new(uint256.Int).SetAllOne()

	t.Run("add overflow", func(t *testing.T) {
		_, err := fixedpoint.Add(maxU256, uint256.NewInt(1))
		require.ErrorIs(t, err, fixedpoint.ErrOverflow)
	})
	t.Run("sub underflow", func(t *testing.T) {
		_, err := fixedpoint.Sub(uint256.NewInt(1), uint256.NewInt(2))
		require.ErrorIs(t, err, fixedpoint.ErrOverflow)
	})
	t.Run("mul overflow", func(t *testing.T) {
		_, err := fixedpoint.Mul(maxU256, uint256.NewInt(2))
		require.ErrorIs(t, err, fixedpoint.ErrOverflow)
	})
	t.Run("div by zero", func(t *testing.T) {
		_, err := fixedpoint.Div(uint256.NewInt(1), new(uint256.Int))
		require.ErrorIs(t, err, fixedpoint.ErrDivisionByZero)
	})
	t.Run("muldiv keeps the wide intermediate", func(t *testing.T) {
		// max * 2 / 4 overflows a plain multiply but the quotient fits
		z, err := fixedpoint.MulDiv(maxU256, uint256.NewInt(2), uint256.NewInt(4))
		require.NoError(t, err)
		expected := new(uint256.Int).Rsh(maxU256, 1)
		assert.Equal(t, expected, z)
	})
	t.Run("muldiv quotient overflow", func(t *testing.T) {
		_, err := fixedpoint.MulDiv(maxU256, uint256.NewInt(2), uint256.NewInt(1))
		require.ErrorIs(t, err, fixedpoint.ErrOverflow)
	})
	t.Run("narrowing", func(t *testing.T) {
		_, err := fixedpoint.ToUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 64))
		require.ErrorIs(t, err, fixedpoint.ErrOverflow)

		v, err := fixedpoint.ToUint64(uint256.NewInt(42))
		require.NoError(t, err)
		assert.Equal(t, uint64(42), v)
	})
}

func TestCheckedUint64(t *testing.T) {
	_, err := fixedpoint.AddUint64(math.MaxUint64, 1)
	require.ErrorIs(t, err, fixedpoint.ErrOverflow)

	_, err = fixedpoint.SubUint64(0, 1)
	require.ErrorIs(t, err, fixedpoint.ErrOverflow)

	_, err = fixedpoint.MulUint64(math.MaxUint64, 2)
	require.ErrorIs(t, err, fixedpoint.ErrOverflow)

	v, err := fixedpoint.MulDivUint64(math.MaxUint64, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, uint64(13835058055282163711), v)

	_, err = fixedpoint.MulDivUint64(1, 1, 0)
	require.ErrorIs(t, err, fixedpoint.ErrDivisionByZero)

	_, err = fixedpoint.AddSeconds(math.MaxInt64, 1)
	require.ErrorIs(t, err, fixedpoint.ErrOverflow)

	ts, err := fixedpoint.AddSeconds(1_000, 864_000)
	require.NoError(t, err)
	assert.Equal(t, int64(865_000), ts)
}

func TestPayoutRoundTrip(t *testing.T) {
	divisors := []uint64{1, 2, 4, 5, 8, 10, 16, 25, 1_000, 1_000_000_000}
	for i := 0; i < 50; i++ {
		amount := gofakeit.Uint64() % 1_000_000_000_000
		for _, d := range divisors {
			p := fixedpoint.NewPayout(amount)
			require.NoError(t, p.DivUint64(d))
			require.NoError(t, p.MulUint64(d))

			whole, err := p.Whole()
			require.NoError(t, err)
			assert.Equal(t, amount, whole)
			assert.Zero(t, p.Remainder())
		}
	}
}

func TestPayoutFractions(t *testing.T) {
	t.Run("small per-second emission", func(t *testing.T) {
		p := fixedpoint.NewPayout(5_000)
		require.NoError(t, p.DivUint64(315_360_000))
		assert.Equal(t, "158548959918822", p.Raw().Dec())

		whole, err := p.Whole()
		require.NoError(t, err)
		assert.Zero(t, whole)
	})

	t.Run("large per-second emission", func(t *testing.T) {
		p := fixedpoint.NewPayout(5_000_000_000)
		require.NoError(t, p.DivUint64(315_360_000))
		assert.Equal(t, "158548959918822932521", p.Raw().Dec())

		whole, err := p.Whole()
		require.NoError(t, err)
		assert.Equal(t, uint64(15), whole)
		assert.Equal(t, uint64(8548959918822932521), p.Remainder())
		assert.Equal(t, "15.8548959918822932521", p.String())

		p.ClearWhole()
		whole, err = p.Whole()
		require.NoError(t, err)
		assert.Zero(t, whole)
		assert.Equal(t, uint64(8548959918822932521), p.Remainder())
	})

	t.Run("dust accumulates into whole units", func(t *testing.T) {
		half := fixedpoint.NewPayout(1)
		require.NoError(t, half.DivUint64(2))

		var total fixedpoint.Payout
		require.NoError(t, total.Add(half))
		require.NoError(t, total.Add(half))
		whole, err := total.Whole()
		require.NoError(t, err)
		assert.Equal(t, uint64(1), whole)
		assert.Zero(t, total.Remainder())
	})

	t.Run("division by zero", func(t *testing.T) {
		p := fixedpoint.NewPayout(1)
		require.ErrorIs(t, p.DivUint64(0), fixedpoint.ErrDivisionByZero)
	})

	t.Run("whole overflow", func(t *testing.T) {
		p := fixedpoint.NewPayout(math.MaxUint64)
		require.NoError(t, p.MulUint64(2))
		_, err := p.Whole()
		require.ErrorIs(t, err, fixedpoint.ErrOverflow)
	})
}
