package db

import (
	"context"

	"github.com/zoints/staking-ledger/internal/db/model"
)

type DbInterface interface {
	Ping(ctx context.Context) error

	GetPool(ctx context.Context) (*model.PoolDocument, error)
	GetEndpoint(ctx context.Context, id string) (*model.EndpointDocument, error)
	GetStakePosition(ctx context.Context, endpoint, staker string) (*model.StakePositionDocument, error)
	GetBeneficiary(ctx context.Context, authority string) (*model.BeneficiaryDocument, error)
	// GetBeneficiaries returns the beneficiaries that exist among authorities.
	GetBeneficiaries(ctx context.Context, authorities []string) ([]*model.BeneficiaryDocument, error)

	// CommitSettlement writes every document of a settlement in a single
	// transaction. A command that was already committed yields a
	// DuplicateKeyError and changes nothing.
	CommitSettlement(ctx context.Context, settlement *Settlement) error

	FindPendingDisbursements(ctx context.Context, limit int64) ([]model.DisbursementDocument, error)
	MarkDisbursementPublished(ctx context.Context, id string, publishedAt int64) error
	CountPendingDisbursements(ctx context.Context) (int64, error)
	// MarkDisbursementExecuted records the executor's confirmation of a
	// pending or published disbursement.
	MarkDisbursementExecuted(ctx context.Context, id string, executedAt int64) error
	// SumOutstandingCollections totals the stake collections from principal
	// in asset that are committed but not confirmed as executed.
	SumOutstandingCollections(ctx context.Context, principal, asset string) (uint64, error)

	FindReadyUnbondings(ctx context.Context, now int64, limit int64) ([]model.UnbondingTimeLockDocument, error)
	DeleteUnbondingTimeLock(ctx context.Context, positionID string, readyTime int64) error

	CalculatePositionStats(ctx context.Context) (*PositionStats, error)
}
