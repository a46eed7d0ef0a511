package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zoints/staking-ledger/internal/db/model"
	"github.com/zoints/staking-ledger/internal/types"
)

// FindPendingDisbursements returns unpublished outbox entries in the order
// they were committed.
func (db *Database) FindPendingDisbursements(ctx context.Context, limit int64) ([]model.DisbursementDocument, error) {
	filter := bson.M{"state": types.DisbursementPending.String()}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "command_id", Value: 1}, {Key: "sequence", Value: 1}}).
		SetLimit(limit)

	cursor, err := db.collection(model.DisbursementCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []model.DisbursementDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}

func (db *Database) MarkDisbursementPublished(ctx context.Context, id string, publishedAt int64) error {
	filter := bson.M{
		"_id":   id,
		"state": types.DisbursementPending.String(),
	}
	update := bson.M{
		"$set": bson.M{
			"state":        types.DisbursementPublished.String(),
			"published_at": publishedAt,
		},
	}

	res, err := db.collection(model.DisbursementCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     id,
			Message: "pending disbursement not found",
		}
	}

	return nil
}

func (db *Database) CountPendingDisbursements(ctx context.Context) (int64, error) {
	return db.collection(model.DisbursementCollection).
		CountDocuments(ctx, bson.M{"state": types.DisbursementPending.String()})
}

func (db *Database) MarkDisbursementExecuted(ctx context.Context, id string, executedAt int64) error {
	filter := bson.M{
		"_id":   id,
		"state": bson.M{"$in": types.OutstandingDisbursementStates()},
	}
	update := bson.M{
		"$set": bson.M{
			"state":       types.DisbursementExecuted.String(),
			"executed_at": executedAt,
		},
	}

	res, err := db.collection(model.DisbursementCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     id,
			Message: "outstanding disbursement not found",
		}
	}

	return nil
}

func (db *Database) SumOutstandingCollections(ctx context.Context, principal, asset string) (uint64, error) {
	pipeline := bson.A{
		bson.M{
			"$match": bson.M{
				"kind":      types.DirectiveCollectStake.String(),
				"principal": principal,
				"asset":     asset,
				"state":     bson.M{"$in": types.OutstandingDisbursementStates()},
			},
		},
		bson.M{
			"$group": bson.M{
				"_id":   nil,
				"total": bson.M{"$sum": bson.M{"$toDecimal": "$amount"}},
			},
		},
	}

	cursor, err := db.collection(model.DisbursementCollection).Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		Total uint64 `bson:"total"`
	}
	if err := cursor.All(ctx, &results); err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, nil
	}

	return results[0].Total, nil
}
