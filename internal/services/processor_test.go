package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/zoints/staking-ledger/consumer"
	"github.com/zoints/staking-ledger/internal/db"
	"github.com/zoints/staking-ledger/internal/db/model"
	"github.com/zoints/staking-ledger/internal/ledger"
	"github.com/zoints/staking-ledger/internal/types"
	"github.com/zoints/staking-ledger/tests/mocks"
	"github.com/zoints/staking-ledger/testutil"
)

// failingCommitStore rejects every settlement.
type failingCommitStore struct {
	*memoryStore
	err error
}

func (f *failingCommitStore) CommitSettlement(ctx context.Context, settlement *db.Settlement) error {
	return f.err
}

func kindsOf(docs []model.DisbursementDocument) []types.DirectiveKind {
	kinds := make([]types.DirectiveKind, len(docs))
	for i, d := range docs {
		kinds[i] = d.Kind
	}
	return kinds
}

func TestProcessCommand_Lifecycle(t *testing.T) {
	ctx := t.Context()
	internalCtx := mock.Anything

	store := newMemoryStore()
	env := newTestService(t, store)
	env.bootstrap(t)

	env.verifier.On("VerifyAssociated", internalCtx, testStaker, testAsset).Return(uint64(10_000), nil)
	env.verifier.On("VerifyAssociated", internalCtx, testOwner, testAsset).Return(uint64(0), nil)

	positionID := model.StakePositionID(testEndpoint, testStaker)
	unbondingDuration := int64(ledger.DefaultUnbondingDuration)

	t.Run("stake collects the deposit", func(t *testing.T) {
		perr := env.srv.ProcessCommand(ctx, "stake-1", ledger.Stake{
			Endpoint: testEndpoint,
			Staker:   testStaker,
			Amount:   5_000,
		})
		require.Nil(t, perr)

		require.Len(t, store.disbursements, 1)
		collect := store.disbursements[0]
		assert.Equal(t, types.DirectiveCollectStake, collect.Kind)
		assert.Equal(t, testStaker, collect.Principal)
		assert.Equal(t, testAsset, collect.Asset)
		assert.Equal(t, uint64(5_000), collect.Amount)
		assert.Equal(t, "stake-1", collect.CommandID)

		assert.Equal(t, uint64(5_000), store.pool.TotalStake)
		assert.Equal(t, uint64(5_000), store.endpoints[testEndpoint].TotalStake)
		assert.Equal(t, uint64(5_000), store.positions[positionID].TotalStake)

		// 45/45/5/5 split with the owner as primary
		assert.Equal(t, uint64(2_250), store.beneficiaries[testStaker].Staked)
		assert.Equal(t, uint64(2_250), store.beneficiaries[testOwner].Staked)
		assert.Equal(t, uint64(250), store.beneficiaries[testSecondary].Staked)
		assert.Equal(t, uint64(250), store.beneficiaries[testFeeRecipient].Staked)
	})

	t.Run("unstake pays rewards and starts unbonding", func(t *testing.T) {
		env.clock.Advance(int64(ledger.SecondsPerPeriod))

		perr := env.srv.ProcessCommand(ctx, "unstake-1", ledger.Unstake{
			Endpoint: testEndpoint,
			Staker:   testStaker,
			Amount:   1_000,
		})
		require.Nil(t, perr)

		require.Len(t, store.disbursements, 2)
		reward := store.disbursements[1]
		assert.Equal(t, types.DirectiveDisburseReward, reward.Kind)
		assert.Equal(t, testStaker, reward.Principal)
		// 45% of a full period's emission
		assert.InDelta(t, 405_000_000_000, float64(reward.Amount), 1)

		position := store.positions[positionID]
		assert.Equal(t, types.StatePendingWithdrawal, position.State)
		assert.Equal(t, uint64(4_000), position.TotalStake)
		assert.Equal(t, uint64(1_000), position.UnbondingAmount)

		timelock, ok := store.timelocks[positionID]
		require.True(t, ok)
		assert.Equal(t, env.clock.now+unbondingDuration, timelock.ReadyTime)
		assert.Equal(t, uint64(1_000), timelock.Amount)
	})

	t.Run("withdraw before the unbonding period is rejected", func(t *testing.T) {
		perr := env.srv.ProcessCommand(ctx, "withdraw-early", ledger.WithdrawUnbond{
			Endpoint: testEndpoint,
			Staker:   testStaker,
		})
		require.NotNil(t, perr)
		assert.Equal(t, http.StatusBadRequest, perr.StatusCode)
		assert.ErrorIs(t, perr, ledger.ErrUnbondingNotElapsed)
		assert.Len(t, store.disbursements, 2)
	})

	t.Run("withdraw releases the unbonded stake", func(t *testing.T) {
		env.clock.Advance(unbondingDuration)

		perr := env.srv.ProcessCommand(ctx, "withdraw-1", ledger.WithdrawUnbond{
			Endpoint: testEndpoint,
			Staker:   testStaker,
		})
		require.Nil(t, perr)

		require.Len(t, store.disbursements, 3)
		unbonded := store.disbursements[2]
		assert.Equal(t, types.DirectiveDisburseUnbonded, unbonded.Kind)
		assert.Equal(t, uint64(1_000), unbonded.Amount)

		position := store.positions[positionID]
		assert.Equal(t, types.StateActive, position.State)
		assert.Zero(t, position.UnbondingAmount)
		assert.NotContains(t, store.timelocks, positionID)
	})

	t.Run("claim pays the endpoint owner", func(t *testing.T) {
		perr := env.srv.ProcessCommand(ctx, "claim-1", ledger.ClaimReward{Authority: testOwner})
		require.Nil(t, perr)

		require.Len(t, store.disbursements, 4)
		claimed := store.disbursements[3]
		assert.Equal(t, types.DirectiveDisburseReward, claimed.Kind)
		assert.Equal(t, testOwner, claimed.Principal)
		assert.Greater(t, claimed.Amount, uint64(405_000_000_000))
		assert.Zero(t, store.beneficiaries[testOwner].Holding)
	})

	assert.Equal(t, []types.DirectiveKind{
		types.DirectiveCollectStake,
		types.DirectiveDisburseReward,
		types.DirectiveDisburseUnbonded,
		types.DirectiveDisburseReward,
	}, kindsOf(store.disbursements))
}

func TestProcessCommand_AppliedOnce(t *testing.T) {
	ctx := t.Context()

	store := newMemoryStore()
	env := newTestService(t, store)
	env.bootstrap(t)
	env.verifier.On("VerifyAssociated", mock.Anything, testStaker, testAsset).Return(uint64(10_000), nil)

	amount := testutil.RandomAmount(ledger.DefaultMinimumStake, 10_000)
	stake := ledger.Stake{Endpoint: testEndpoint, Staker: testStaker, Amount: amount}
	require.Nil(t, env.srv.ProcessCommand(ctx, "stake-1", stake))
	require.Nil(t, env.srv.ProcessCommand(ctx, "stake-1", stake))

	assert.Len(t, store.disbursements, 1)
	assert.Equal(t, amount, store.positions[model.StakePositionID(testEndpoint, testStaker)].TotalStake)
}

func TestProcessCommand_UnexecutedCollections(t *testing.T) {
	ctx := t.Context()
	internalCtx := mock.Anything

	store := newMemoryStore()
	env := newTestService(t, store)
	env.bootstrap(t)

	// the executor has not collected anything yet, so the reported balance
	// stays at 1500 for both stakes
	env.verifier.On("VerifyAssociated", internalCtx, testStaker, testAsset).Return(uint64(1_500), nil).Times(2)
	positionID := model.StakePositionID(testEndpoint, testStaker)
	stake := func(amount uint64) ledger.Stake {
		return ledger.Stake{Endpoint: testEndpoint, Staker: testStaker, Amount: amount}
	}

	require.Nil(t, env.srv.ProcessCommand(ctx, "stake-1", stake(1_000)))

	perr := env.srv.ProcessCommand(ctx, "stake-2", stake(1_000))
	require.NotNil(t, perr)
	assert.Equal(t, http.StatusBadRequest, perr.StatusCode)
	assert.ErrorIs(t, perr, ledger.ErrInsufficientBalance)
	assert.Equal(t, uint64(1_000), store.positions[positionID].TotalStake)
	assert.Equal(t, uint64(1_000), store.pool.TotalStake)
	require.Len(t, store.disbursements, 1)

	// once the collection is confirmed the balance no longer includes it
	collection := store.disbursements[0]
	require.Equal(t, types.DirectiveCollectStake, collection.Kind)
	require.NoError(t, store.MarkDisbursementExecuted(ctx, collection.ID, testStartTime))
	env.verifier.On("VerifyAssociated", internalCtx, testStaker, testAsset).Return(uint64(500), nil).Once()

	require.Nil(t, env.srv.ProcessCommand(ctx, "stake-3", stake(500)))
	assert.Equal(t, uint64(1_500), store.positions[positionID].TotalStake)
}

func TestProcessCommand_Rejections(t *testing.T) {
	ctx := t.Context()

	t.Run("insufficient balance", func(t *testing.T) {
		store := newMemoryStore()
		env := newTestService(t, store)
		env.bootstrap(t)
		env.verifier.On("VerifyAssociated", mock.Anything, testStaker, testAsset).Return(uint64(100), nil)

		perr := env.srv.ProcessCommand(ctx, "stake-1", ledger.Stake{
			Endpoint: testEndpoint,
			Staker:   testStaker,
			Amount:   5_000,
		})
		require.NotNil(t, perr)
		assert.Equal(t, http.StatusBadRequest, perr.StatusCode)
		assert.Equal(t, types.ValidationError, perr.ErrorCode)
		assert.ErrorIs(t, perr, ledger.ErrInsufficientBalance)
		assert.False(t, perr.IsRetryable())

		assert.Empty(t, store.disbursements)
		assert.NotContains(t, store.processed, "stake-1")
	})

	t.Run("account not associated", func(t *testing.T) {
		store := newMemoryStore()
		env := newTestService(t, store)
		env.bootstrap(t)
		env.verifier.On("VerifyAssociated", mock.Anything, testStaker, testAsset).
			Return(uint64(0), fmt.Errorf("%w: %s", ledger.ErrAccountNotAssociated, testStaker))

		perr := env.srv.ProcessCommand(ctx, "harvest-1", ledger.Harvest{
			Endpoint: testEndpoint,
			Staker:   testStaker,
		})
		require.NotNil(t, perr)
		assert.Equal(t, http.StatusBadRequest, perr.StatusCode)
		assert.ErrorIs(t, perr, ledger.ErrAccountNotAssociated)
	})

	t.Run("account service unavailable", func(t *testing.T) {
		store := newMemoryStore()
		env := newTestService(t, store)
		env.bootstrap(t)
		env.verifier.On("VerifyAssociated", mock.Anything, testStaker, testAsset).
			Return(uint64(0), errors.New("connection refused"))

		perr := env.srv.ProcessCommand(ctx, "harvest-1", ledger.Harvest{
			Endpoint: testEndpoint,
			Staker:   testStaker,
		})
		require.NotNil(t, perr)
		assert.Equal(t, http.StatusServiceUnavailable, perr.StatusCode)
		assert.Equal(t, types.ServiceUnavailable, perr.ErrorCode)
		assert.True(t, perr.IsRetryable())
	})

	t.Run("unknown position", func(t *testing.T) {
		store := newMemoryStore()
		env := newTestService(t, store)
		env.bootstrap(t)
		env.verifier.On("VerifyAssociated", mock.Anything, "someone-else", testAsset).Return(uint64(10_000), nil)

		perr := env.srv.ProcessCommand(ctx, "stake-1", ledger.Stake{
			Endpoint: testEndpoint,
			Staker:   "someone-else",
			Amount:   5_000,
		})
		require.NotNil(t, perr)
		assert.Equal(t, http.StatusNotFound, perr.StatusCode)
		assert.ErrorIs(t, perr, ledger.ErrPositionNotInitialized)
	})

	t.Run("pool initialized twice", func(t *testing.T) {
		store := newMemoryStore()
		env := newTestService(t, store)
		env.bootstrap(t)

		perr := env.srv.ProcessCommand(ctx, "init-pool-2", ledger.InitializePool{
			Asset:     testAsset,
			Authority: testAuthority,
		})
		require.NotNil(t, perr)
		assert.Equal(t, http.StatusBadRequest, perr.StatusCode)
		assert.ErrorIs(t, perr, ledger.ErrAlreadyInitialized)
	})

	t.Run("store unavailable", func(t *testing.T) {
		dbClient := mocks.NewDbInterface(t)
		dbClient.On("GetPool", mock.Anything).Return(nil, errors.New("server selection timeout"))
		env := newTestService(t, dbClient)

		perr := env.srv.ProcessCommand(ctx, "claim-1", ledger.ClaimReward{Authority: testOwner})
		require.NotNil(t, perr)
		assert.Equal(t, http.StatusInternalServerError, perr.StatusCode)
		assert.True(t, perr.IsRetryable())
	})

	t.Run("commit failure", func(t *testing.T) {
		store := &failingCommitStore{memoryStore: newMemoryStore(), err: errors.New("write conflict")}
		env := newTestService(t, store)

		perr := env.srv.ProcessCommand(ctx, "init-pool", ledger.InitializePool{
			Asset:     testAsset,
			Authority: testAuthority,
		})
		require.NotNil(t, perr)
		assert.Equal(t, http.StatusInternalServerError, perr.StatusCode)
		assert.True(t, perr.IsRetryable())
		assert.Nil(t, store.pool)
	})
}

func TestHandleDelivery(t *testing.T) {
	ctx := t.Context()

	tests := []struct {
		name     string
		body     string
		store    func(t *testing.T) db.DbInterface
		expected string
	}{
		{
			name: "valid command is acked",
			body: `{"id":"cmd-1","type":"INITIALIZE_POOL","asset":"ZEE","authority":"pool-authority"}`,
			store: func(t *testing.T) db.DbInterface {
				return newMemoryStore()
			},
			expected: "ack",
		},
		{
			name: "malformed message is dropped",
			body: `{"id":`,
			store: func(t *testing.T) db.DbInterface {
				return newMemoryStore()
			},
			expected: "drop",
		},
		{
			name: "invalid command is dropped",
			body: `{"id":"cmd-2","type":"UNSTAKE","endpoint":"endpoint-1","staker":"staker-1","amount":0}`,
			store: func(t *testing.T) db.DbInterface {
				return newMemoryStore()
			},
			expected: "drop",
		},
		{
			name: "rejected command is dropped",
			body: `{"id":"cmd-3","type":"REGISTER_ENDPOINT","endpoint":"endpoint-1","owner":"endpoint-owner"}`,
			store: func(t *testing.T) db.DbInterface {
				return newMemoryStore()
			},
			expected: "drop",
		},
		{
			name: "store failure is retried",
			body: `{"id":"cmd-4","type":"CLAIM","authority":"endpoint-owner"}`,
			store: func(t *testing.T) db.DbInterface {
				dbClient := mocks.NewDbInterface(t)
				dbClient.On("GetPool", mock.Anything).Return(nil, errors.New("connection reset"))
				return dbClient
			},
			expected: "retry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestService(t, tt.store(t))

			delivery, outcome := testDelivery(tt.body)
			env.srv.handleDelivery(ctx, delivery)
			assert.Equal(t, tt.expected, *outcome)
		})
	}
}

func TestStartCommandProcessor(t *testing.T) {
	ctx := t.Context()

	store := newMemoryStore()
	env := newTestService(t, store)

	deliveries := make(chan consumer.Delivery, 1)
	env.commands.On("ReceiveCommands", mock.Anything).Return((<-chan consumer.Delivery)(deliveries), nil)

	delivery, outcome := testDelivery(`{"id":"cmd-1","type":"INITIALIZE_POOL","asset":"ZEE","authority":"pool-authority"}`)
	deliveries <- delivery
	close(deliveries)

	env.srv.StartCommandProcessor(ctx)
	env.srv.Wait()

	assert.Equal(t, "ack", *outcome)
	require.NotNil(t, store.pool)
	assert.Equal(t, testAsset, store.pool.Asset)
}
