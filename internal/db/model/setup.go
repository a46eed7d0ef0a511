package model

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zoints/staking-ledger/internal/config"
)

const (
	PoolCollection              = "pool"
	EndpointCollection          = "endpoint"
	StakePositionCollection     = "stake_position"
	BeneficiaryCollection       = "beneficiary"
	DisbursementCollection      = "disbursement"
	UnbondingTimeLockCollection = "unbonding_timelock"
	ProcessedCommandCollection  = "processed_command"
)

type index struct {
	Keys   bson.D
	Unique bool
}

var collections = map[string][]index{
	PoolCollection:     nil,
	EndpointCollection: nil,
	StakePositionCollection: {
		{Keys: bson.D{{Key: "staker", Value: 1}}},
		{Keys: bson.D{{Key: "endpoint", Value: 1}, {Key: "staker", Value: 1}}, Unique: true},
	},
	BeneficiaryCollection: nil,
	DisbursementCollection: {
		{Keys: bson.D{{Key: "state", Value: 1}, {Key: "created_at", Value: 1}, {Key: "sequence", Value: 1}}},
		{Keys: bson.D{{Key: "principal", Value: 1}, {Key: "kind", Value: 1}, {Key: "state", Value: 1}}},
	},
	UnbondingTimeLockCollection: {
		{Keys: bson.D{{Key: "ready_time", Value: 1}}},
	},
	ProcessedCommandCollection: nil,
}

// Setup creates the collections and their indexes. It is safe to run on an
// already initialized database.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	clientOps := options.Client().ApplyURI(cfg.Address)
	if cfg.Username != "" {
		clientOps.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}
	if cfg.ReplicaSet != "" {
		clientOps.SetReplicaSet(cfg.ReplicaSet)
	}
	if cfg.DirectConnection {
		clientOps.SetDirect(true)
	}

	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}

	// Create a context with timeout
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Access a database and create collections.
	database := client.Database(cfg.DbName)

	// Create collections.
	for collection := range collections {
		createCollection(ctx, database, collection)
	}

	for name, idxs := range collections {
		for _, idx := range idxs {
			if err := createIndex(ctx, database, name, idx); err != nil {
				return err
			}
		}
	}

	log.Info().Msg("Collections and Indexes created successfully.")
	return client.Disconnect(ctx)
}

func createCollection(ctx context.Context, database *mongo.Database, collectionName string) {
	if err := database.CreateCollection(ctx, collectionName); err != nil {
		log.Debug().Msg(fmt.Sprintf("Failed to create collection: %s, maybe already exists. info: %s", collectionName, err))
		return
	}

	log.Debug().Msg(fmt.Sprintf("Collection created successfully: %s", collectionName))
}

func createIndex(ctx context.Context, database *mongo.Database, collectionName string, idx index) error {
	index := mongo.IndexModel{
		Keys:    idx.Keys,
		Options: options.Index().SetUnique(idx.Unique),
	}

	if _, err := database.Collection(collectionName).Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create index on collection %s: %w", collectionName, err)
	}

	log.Debug().Msg(fmt.Sprintf("Index created successfully on collection: %s", collectionName))
	return nil
}
