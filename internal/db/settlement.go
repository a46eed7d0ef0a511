package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zoints/staking-ledger/internal/db/model"
)

// Settlement is the set of documents one command produces. Nil documents
// are left as they are.
type Settlement struct {
	Command       model.ProcessedCommandDocument
	Pool          *model.PoolDocument
	Endpoint      *model.EndpointDocument
	Position      *model.StakePositionDocument
	Beneficiaries []*model.BeneficiaryDocument
	Disbursements []*model.DisbursementDocument
	// TimeLock is upserted by position id.
	TimeLock *model.UnbondingTimeLockDocument
	// ClearTimeLock removes the timelock of the settled position.
	ClearTimeLock bool
}

func (db *Database) CommitSettlement(ctx context.Context, settlement *Settlement) error {
	session, err := db.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, db.writeSettlement(sessCtx, settlement)
	})
	return err
}

func (db *Database) writeSettlement(ctx context.Context, s *Settlement) error {
	_, err := db.collection(model.ProcessedCommandCollection).InsertOne(ctx, s.Command)
	if err != nil {
		return asDuplicateKeyError(err, s.Command.ID, "command already processed")
	}

	upsert := options.Replace().SetUpsert(true)

	if s.Pool != nil {
		if _, err := db.collection(model.PoolCollection).
			ReplaceOne(ctx, bson.M{"_id": s.Pool.ID}, s.Pool, upsert); err != nil {
			return fmt.Errorf("failed to write pool: %w", err)
		}
	}

	if s.Endpoint != nil {
		if _, err := db.collection(model.EndpointCollection).
			ReplaceOne(ctx, bson.M{"_id": s.Endpoint.ID}, s.Endpoint, upsert); err != nil {
			return fmt.Errorf("failed to write endpoint %s: %w", s.Endpoint.ID, err)
		}
	}

	if s.Position != nil {
		if _, err := db.collection(model.StakePositionCollection).
			ReplaceOne(ctx, bson.M{"_id": s.Position.ID}, s.Position, upsert); err != nil {
			return fmt.Errorf("failed to write stake position %s: %w", s.Position.ID, err)
		}
	}

	for _, b := range s.Beneficiaries {
		if _, err := db.collection(model.BeneficiaryCollection).
			ReplaceOne(ctx, bson.M{"_id": b.Authority}, b, upsert); err != nil {
			return fmt.Errorf("failed to write beneficiary %s: %w", b.Authority, err)
		}
	}

	if len(s.Disbursements) > 0 {
		docs := make([]interface{}, len(s.Disbursements))
		for i, d := range s.Disbursements {
			docs[i] = d
		}
		if _, err := db.collection(model.DisbursementCollection).InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to write disbursements: %w", err)
		}
	}

	if s.TimeLock != nil {
		if _, err := db.collection(model.UnbondingTimeLockCollection).
			ReplaceOne(ctx, bson.M{"_id": s.TimeLock.PositionID}, s.TimeLock, upsert); err != nil {
			return fmt.Errorf("failed to write unbonding timelock: %w", err)
		}
	} else if s.ClearTimeLock && s.Position != nil {
		if _, err := db.collection(model.UnbondingTimeLockCollection).
			DeleteOne(ctx, bson.M{"_id": s.Position.ID}); err != nil {
			return fmt.Errorf("failed to clear unbonding timelock: %w", err)
		}
	}

	return nil
}
