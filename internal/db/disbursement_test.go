//go:build integration

package db_test

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoints/staking-ledger/internal/db"
	"github.com/zoints/staking-ledger/internal/db/model"
	"github.com/zoints/staking-ledger/internal/ledger"
	"github.com/zoints/staking-ledger/internal/types"
)

func TestDisbursements(t *testing.T) {
	ctx := context.Background()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	t.Run("no documents", func(t *testing.T) {
		docs, err := testDB.FindPendingDisbursements(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, docs)

		count, err := testDB.CountPendingDisbursements(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
	t.Run("ordered by commit then sequence", func(t *testing.T) {
		reward := ledger.Directive{Kind: types.DirectiveDisburseReward, Principal: "staker", Asset: "ZEE", Amount: 5}
		collect := ledger.Directive{Kind: types.DirectiveCollectStake, Principal: "staker", Asset: "ZEE", Amount: 1_000}

		later := processed(types.CommandStake)
		earlier := processed(types.CommandStake)

		require.NoError(t, testDB.CommitSettlement(ctx, &db.Settlement{
			Command: later,
			Disbursements: []*model.DisbursementDocument{
				model.NewDisbursementDocument(uuid.NewString(), later.ID, 0, reward, 20),
			},
		}))
		require.NoError(t, testDB.CommitSettlement(ctx, &db.Settlement{
			Command: earlier,
			Disbursements: []*model.DisbursementDocument{
				model.NewDisbursementDocument(uuid.NewString(), earlier.ID, 0, reward, 10),
				model.NewDisbursementDocument(uuid.NewString(), earlier.ID, 1, collect, 10),
			},
		}))

		docs, err := testDB.FindPendingDisbursements(ctx, 10)
		require.NoError(t, err)
		require.Len(t, docs, 3)
		assert.Equal(t, earlier.ID, docs[0].CommandID)
		assert.Equal(t, types.DirectiveDisburseReward, docs[0].Kind)
		assert.Equal(t, types.DirectiveCollectStake, docs[1].Kind)
		assert.Equal(t, later.ID, docs[2].CommandID)

		limited, err := testDB.FindPendingDisbursements(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)

		count, err := testDB.CountPendingDisbursements(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(3), count)

		require.NoError(t, testDB.MarkDisbursementPublished(ctx, docs[0].ID, 30))

		// publishing twice is reported
		err = testDB.MarkDisbursementPublished(ctx, docs[0].ID, 31)
		assert.True(t, db.IsNotFoundError(err))

		count, err = testDB.CountPendingDisbursements(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestOutstandingCollections(t *testing.T) {
	ctx := context.Background()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	collect := func(principal string, amount uint64) ledger.Directive {
		return ledger.Directive{Kind: types.DirectiveCollectStake, Principal: principal, Asset: "ZEE", Amount: amount}
	}
	cmd := processed(types.CommandStake)
	docs := []*model.DisbursementDocument{
		model.NewDisbursementDocument(uuid.NewString(), cmd.ID, 0, collect("staker", 1_000), 10),
		model.NewDisbursementDocument(uuid.NewString(), cmd.ID, 1, collect("staker", 400), 10),
		model.NewDisbursementDocument(uuid.NewString(), cmd.ID, 2, collect("staker", 250), 10),
		model.NewDisbursementDocument(uuid.NewString(), cmd.ID, 3, collect("other", 7), 10),
		model.NewDisbursementDocument(uuid.NewString(), cmd.ID, 4,
			ledger.Directive{Kind: types.DirectiveDisburseReward, Principal: "staker", Asset: "ZEE", Amount: 99}, 10),
	}
	require.NoError(t, testDB.CommitSettlement(ctx, &db.Settlement{Command: cmd, Disbursements: docs}))

	total, err := testDB.SumOutstandingCollections(ctx, "staker", "ZEE")
	require.NoError(t, err)
	assert.Equal(t, uint64(1_650), total)

	// published collections stay outstanding until executed
	require.NoError(t, testDB.MarkDisbursementPublished(ctx, docs[0].ID, 20))
	require.NoError(t, testDB.MarkDisbursementExecuted(ctx, docs[1].ID, 21))

	total, err = testDB.SumOutstandingCollections(ctx, "staker", "ZEE")
	require.NoError(t, err)
	assert.Equal(t, uint64(1_250), total)

	err = testDB.MarkDisbursementExecuted(ctx, docs[1].ID, 22)
	assert.True(t, db.IsNotFoundError(err))

	total, err = testDB.SumOutstandingCollections(ctx, "nobody", "ZEE")
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestDisbursementAmountAboveInt64(t *testing.T) {
	ctx := context.Background()
	t.Cleanup(func() {
		resetDatabase(t)
	})

	cmd := processed(types.CommandClaim)
	huge := model.NewDisbursementDocument(uuid.NewString(), cmd.ID, 0, ledger.Directive{
		Kind: types.DirectiveDisburseReward, Principal: "authority", Asset: "ZEE", Amount: math.MaxUint64,
	}, 10)
	require.NoError(t, testDB.CommitSettlement(ctx, &db.Settlement{
		Command:       cmd,
		Disbursements: []*model.DisbursementDocument{huge},
	}))

	docs, err := testDB.FindPendingDisbursements(ctx, 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, uint64(math.MaxUint64), docs[0].Amount)
}
