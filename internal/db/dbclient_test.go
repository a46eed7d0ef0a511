//go:build integration

package db_test

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/zoints/staking-ledger/internal/config"
	"github.com/zoints/staking-ledger/internal/db"
	"github.com/zoints/staking-ledger/internal/db/model"
	"github.com/zoints/staking-ledger/pkg"
	"github.com/zoints/staking-ledger/testutil"
)

const (
	mongoDatabase   = "test-database"
	mongoReplicaSet = "rs0"

	// this version corresponds to docker tag for mongodb
	// it should be in sync with mongo version used in production
	defaultMongoVersion = "7.0.5"
)

var (
	testDB     *db.Database
	testClient *mongo.Client
)

func TestMain(m *testing.M) {
	// first setup container with MongoDb
	dbConfig, cleanup, err := setupMongoContainer()
	if err != nil {
		log.Fatalf("failed to setup mongo container: %v", err)
	}

	// apply migrations
	err = model.Setup(context.Background(), dbConfig)
	if err != nil {
		cleanup()
		log.Fatalf("failed to init mongo database: %v", err)
	}

	// using config from container mongo initialize client used in tests
	testDB, err = setupClient(dbConfig)
	if err != nil {
		cleanup()
		log.Fatalf("failed to setup client: %v", err)
	}

	testClient, err = mongo.Connect(context.Background(),
		options.Client().ApplyURI(dbConfig.Address).SetDirect(true))
	if err != nil {
		cleanup()
		log.Fatalf("failed to setup raw client: %v", err)
	}

	// integration tests run on this line
	code := m.Run()
	cleanup()

	os.Exit(code)
}

// setupMongoContainer starts a single node replica set, transactions are not
// available on a standalone server. It returns db credentials through
// config.DbConfig and a cleanup function that MUST be called in the end
func setupMongoContainer() (*config.DbConfig, func(), error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, nil, err
	}

	// there can be only 1 container with the same name, so we add
	// random string in the end in case there is still old container running
	containerName := "mongo-integration-tests-db-" + testutil.RandomPrincipal()
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       containerName,
		Repository: "mongo",
		Tag:        pkg.Getenv("MONGO_TEST_VERSION", defaultMongoVersion),
		Cmd:        []string{"--replSet", mongoReplicaSet, "--bind_ip_all"},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		err := pool.Purge(resource)
		if err != nil {
			log.Fatalf("failed to purge resource: %v", err)
		}
	}

	initiate := fmt.Sprintf(
		"rs.initiate({_id: %q, members: [{_id: 0, host: 'localhost:27017'}]})", mongoReplicaSet,
	)
	err = pool.Retry(func() error {
		code, err := resource.Exec([]string{"mongosh", "--quiet", "--eval", initiate}, dockertest.ExecOptions{})
		if err != nil {
			return err
		}
		if code != 0 {
			return fmt.Errorf("rs.initiate exited with code %d", code)
		}
		return nil
	})
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	// get host port (randomly chosen) that is mapped to mongo port inside container
	hostPort := resource.GetPort("27017/tcp")

	return &config.DbConfig{
		DbName:           mongoDatabase,
		Address:          fmt.Sprintf("mongodb://localhost:%s/", hostPort),
		DirectConnection: true,
	}, cleanup, nil
}

func setupClient(cfg *config.DbConfig) (*db.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.New(ctx, *cfg)
	if err != nil {
		return nil, err
	}

	// wait for the node to be elected primary
	return database, database.Ping(ctx)
}

// resetDatabase removes every document while keeping collections and indexes
func resetDatabase(t *testing.T) {
	ctx := context.Background()
	database := testClient.Database(mongoDatabase)

	names, err := database.ListCollectionNames(ctx, bson.M{})
	require.NoError(t, err)

	for _, name := range names {
		_, err := database.Collection(name).DeleteMany(ctx, bson.M{})
		require.NoError(t, err)
	}
}
