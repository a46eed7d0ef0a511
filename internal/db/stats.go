package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/zoints/staking-ledger/internal/db/model"
	"github.com/zoints/staking-ledger/internal/types"
)

type PositionStats struct {
	ActivePositions    uint64
	PendingWithdrawals uint64
	TotalStake         uint64
	TotalUnbonding     uint64
}

// CalculatePositionStats aggregates stake position totals grouped by state
func (db *Database) CalculatePositionStats(ctx context.Context) (*PositionStats, error) {
	pipeline := bson.A{
		bson.M{
			"$group": bson.M{
				"_id":             "$state",
				"count":           bson.M{"$sum": 1},
				"total_stake":     bson.M{"$sum": bson.M{"$toDecimal": "$total_stake"}},
				"total_unbonding": bson.M{"$sum": bson.M{"$toDecimal": "$unbonding_amount"}},
			},
		},
	}

	cursor, err := db.collection(model.StakePositionCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		State          types.PositionState `bson:"_id"`
		Count          uint64              `bson:"count"`
		TotalStake     uint64              `bson:"total_stake"`
		TotalUnbonding uint64              `bson:"total_unbonding"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	stats := &PositionStats{}
	for _, r := range results {
		switch r.State {
		case types.StateActive:
			stats.ActivePositions += r.Count
		case types.StatePendingWithdrawal:
			stats.PendingWithdrawals += r.Count
		}
		stats.TotalStake += r.TotalStake
		stats.TotalUnbonding += r.TotalUnbonding
	}

	return stats, nil
}
