package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/zoints/staking-ledger/internal/db/model"
)

func (db *Database) GetPool(ctx context.Context) (*model.PoolDocument, error) {
	var doc model.PoolDocument
	err := db.collection(model.PoolCollection).
		FindOne(ctx, bson.M{"_id": model.PoolDocumentID}).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     model.PoolDocumentID,
				Message: "pool is not initialized",
			}
		}
		return nil, err
	}

	return &doc, nil
}

func (db *Database) GetEndpoint(ctx context.Context, id string) (*model.EndpointDocument, error) {
	var doc model.EndpointDocument
	err := db.collection(model.EndpointCollection).
		FindOne(ctx, bson.M{"_id": id}).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     id,
				Message: "endpoint not found",
			}
		}
		return nil, err
	}

	return &doc, nil
}

func (db *Database) GetStakePosition(
	ctx context.Context, endpoint, staker string,
) (*model.StakePositionDocument, error) {
	id := model.StakePositionID(endpoint, staker)

	var doc model.StakePositionDocument
	err := db.collection(model.StakePositionCollection).
		FindOne(ctx, bson.M{"_id": id}).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     id,
				Message: "stake position not found",
			}
		}
		return nil, err
	}

	return &doc, nil
}

func (db *Database) GetBeneficiary(ctx context.Context, authority string) (*model.BeneficiaryDocument, error) {
	var doc model.BeneficiaryDocument
	err := db.collection(model.BeneficiaryCollection).
		FindOne(ctx, bson.M{"_id": authority}).
		Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     authority,
				Message: "beneficiary not found",
			}
		}
		return nil, err
	}

	return &doc, nil
}

func (db *Database) GetBeneficiaries(
	ctx context.Context, authorities []string,
) ([]*model.BeneficiaryDocument, error) {
	if len(authorities) == 0 {
		return nil, nil
	}

	cursor, err := db.collection(model.BeneficiaryCollection).
		Find(ctx, bson.M{"_id": bson.M{"$in": authorities}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []*model.BeneficiaryDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	return docs, nil
}
