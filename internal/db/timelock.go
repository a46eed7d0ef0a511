package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zoints/staking-ledger/internal/db/model"
)

func (db *Database) FindReadyUnbondings(
	ctx context.Context, now int64, limit int64,
) ([]model.UnbondingTimeLockDocument, error) {
	filter := bson.M{"ready_time": bson.M{"$lte": now}}
	opts := options.Find().
		SetSort(bson.D{{Key: "ready_time", Value: 1}}).
		SetLimit(limit)

	cursor, err := db.collection(model.UnbondingTimeLockCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []model.UnbondingTimeLockDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

// DeleteUnbondingTimeLock removes the timelock only if it still has
// readyTime. A timelock restarted in the meantime is kept.
func (db *Database) DeleteUnbondingTimeLock(ctx context.Context, positionID string, readyTime int64) error {
	filter := bson.M{"_id": positionID, "ready_time": readyTime}

	result, err := db.collection(model.UnbondingTimeLockCollection).DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete unbonding timelock of position %v: %w", positionID, err)
	}

	if result.DeletedCount == 0 {
		return &NotFoundError{
			Key:     positionID,
			Message: "no unbonding timelock found with the given ready time",
		}
	}

	return nil
}
