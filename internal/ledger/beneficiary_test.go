package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeneficiarySettle(t *testing.T) {
	t.Run("first settlement only takes the debt", func(t *testing.T) {
		b := NewBeneficiary("alice")
		pending, err := b.Settle(1_000, scaled(5))
		require.NoError(t, err)
		assert.Zero(t, pending)
		assert.Equal(t, uint64(1_000), b.Staked)
		assert.Equal(t, uint64(5_000), b.RewardDebt)
		assert.Zero(t, b.Holding)
	})

	t.Run("accrued reward moves into holding", func(t *testing.T) {
		b := NewBeneficiary("alice")
		_, err := b.Settle(1_000, scaled(5))
		require.NoError(t, err)

		pending, err := b.Settle(400, scaled(8))
		require.NoError(t, err)
		assert.Equal(t, uint64(3_000), pending)
		assert.Equal(t, uint64(3_000), b.Holding)
		assert.Equal(t, uint64(400), b.Staked)
		assert.Equal(t, uint64(3_200), b.RewardDebt)
	})

	t.Run("settling twice is idempotent", func(t *testing.T) {
		b := NewBeneficiary("alice")
		_, err := b.Settle(1_000, scaled(5))
		require.NoError(t, err)
		_, err = b.Settle(1_000, scaled(9))
		require.NoError(t, err)
		after := b

		pending, err := b.Settle(1_000, scaled(9))
		require.NoError(t, err)
		assert.Zero(t, pending)
		assert.Equal(t, after, b)
	})

	t.Run("stale accumulator is rejected without changes", func(t *testing.T) {
		b := NewBeneficiary("alice")
		_, err := b.Settle(1_000, scaled(9))
		require.NoError(t, err)
		before := b

		_, err = b.Settle(2_000, scaled(5))
		require.ErrorIs(t, err, ErrStaleAccumulator)
		assert.Equal(t, before, b)
	})
}

func TestBeneficiaryPendingReward(t *testing.T) {
	b := NewBeneficiary("alice")
	_, err := b.Settle(1_000, scaled(5))
	require.NoError(t, err)
	_, err = b.Settle(1_000, scaled(7))
	require.NoError(t, err)

	harvestable, err := b.PendingReward(scaled(10))
	require.NoError(t, err)
	assert.Equal(t, uint64(5_000), harvestable)

	assert.Equal(t, uint64(2_000), b.TakeHolding())
	assert.Zero(t, b.Holding)
}
