package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zoints/staking-ledger/internal/db"
	"github.com/zoints/staking-ledger/tests/mocks"
)

func TestCalculateAndUpdateStats(t *testing.T) {
	ctx := t.Context()

	t.Run("pool not initialized", func(t *testing.T) {
		dbClient := mocks.NewDbInterface(t)
		dbClient.On("CalculatePositionStats", mock.Anything).Return(&db.PositionStats{}, nil)
		dbClient.On("GetPool", mock.Anything).Return(nil, &db.NotFoundError{Key: "pool"})
		env := newTestService(t, dbClient)

		require.NoError(t, env.srv.calculateAndUpdateStats(ctx))
	})

	t.Run("records positions and pool", func(t *testing.T) {
		store := newMemoryStore()
		env := newTestService(t, store)
		env.bootstrap(t)
		seedUnbonding(store, "staker-2", 1_000, testStartTime, testStartTime)

		require.NoError(t, env.srv.calculateAndUpdateStats(ctx))

		stats, err := store.CalculatePositionStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(1), stats.ActivePositions)
		assert.Equal(t, uint64(1), stats.PendingWithdrawals)
	})

	t.Run("stats query fails", func(t *testing.T) {
		dbClient := mocks.NewDbInterface(t)
		dbClient.On("CalculatePositionStats", mock.Anything).Return(nil, errors.New("cursor killed"))
		env := newTestService(t, dbClient)

		require.Error(t, env.srv.calculateAndUpdateStats(ctx))
	})
}
