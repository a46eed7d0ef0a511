package db

import (
	"context"
	"time"

	"github.com/zoints/staking-ledger/internal/db/model"
	"github.com/zoints/staking-ledger/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) GetPool(ctx context.Context) (result *model.PoolDocument, err error) {
	//nolint:errcheck
	d.run("GetPool", func() error {
		result, err = d.db.GetPool(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) GetEndpoint(ctx context.Context, id string) (result *model.EndpointDocument, err error) {
	//nolint:errcheck
	d.run("GetEndpoint", func() error {
		result, err = d.db.GetEndpoint(ctx, id)
		return err
	})
	return
}

func (d *DbWithMetrics) GetStakePosition(ctx context.Context, endpoint, staker string) (result *model.StakePositionDocument, err error) {
	//nolint:errcheck
	d.run("GetStakePosition", func() error {
		result, err = d.db.GetStakePosition(ctx, endpoint, staker)
		return err
	})
	return
}

func (d *DbWithMetrics) GetBeneficiary(ctx context.Context, authority string) (result *model.BeneficiaryDocument, err error) {
	//nolint:errcheck
	d.run("GetBeneficiary", func() error {
		result, err = d.db.GetBeneficiary(ctx, authority)
		return err
	})
	return
}

func (d *DbWithMetrics) GetBeneficiaries(ctx context.Context, authorities []string) (result []*model.BeneficiaryDocument, err error) {
	//nolint:errcheck
	d.run("GetBeneficiaries", func() error {
		result, err = d.db.GetBeneficiaries(ctx, authorities)
		return err
	})
	return
}

func (d *DbWithMetrics) CommitSettlement(ctx context.Context, settlement *Settlement) error {
	return d.run("CommitSettlement", func() error {
		return d.db.CommitSettlement(ctx, settlement)
	})
}

func (d *DbWithMetrics) FindPendingDisbursements(ctx context.Context, limit int64) (result []model.DisbursementDocument, err error) {
	//nolint:errcheck
	d.run("FindPendingDisbursements", func() error {
		result, err = d.db.FindPendingDisbursements(ctx, limit)
		return err
	})
	return
}

func (d *DbWithMetrics) MarkDisbursementPublished(ctx context.Context, id string, publishedAt int64) error {
	return d.run("MarkDisbursementPublished", func() error {
		return d.db.MarkDisbursementPublished(ctx, id, publishedAt)
	})
}

func (d *DbWithMetrics) MarkDisbursementExecuted(ctx context.Context, id string, executedAt int64) error {
	return d.run("MarkDisbursementExecuted", func() error {
		return d.db.MarkDisbursementExecuted(ctx, id, executedAt)
	})
}

func (d *DbWithMetrics) SumOutstandingCollections(ctx context.Context, principal, asset string) (result uint64, err error) {
	//nolint:errcheck
	d.run("SumOutstandingCollections", func() error {
		result, err = d.db.SumOutstandingCollections(ctx, principal, asset)
		return err
	})
	return
}

func (d *DbWithMetrics) CountPendingDisbursements(ctx context.Context) (result int64, err error) {
	//nolint:errcheck
	d.run("CountPendingDisbursements", func() error {
		result, err = d.db.CountPendingDisbursements(ctx)
		return err
	})
	return
}

func (d *DbWithMetrics) FindReadyUnbondings(ctx context.Context, now int64, limit int64) (result []model.UnbondingTimeLockDocument, err error) {
	//nolint:errcheck
	d.run("FindReadyUnbondings", func() error {
		result, err = d.db.FindReadyUnbondings(ctx, now, limit)
		return err
	})
	return
}

func (d *DbWithMetrics) DeleteUnbondingTimeLock(ctx context.Context, positionID string, readyTime int64) error {
	return d.run("DeleteUnbondingTimeLock", func() error {
		return d.db.DeleteUnbondingTimeLock(ctx, positionID, readyTime)
	})
}

func (d *DbWithMetrics) CalculatePositionStats(ctx context.Context) (result *PositionStats, err error) {
	//nolint:errcheck
	d.run("CalculatePositionStats", func() error {
		result, err = d.db.CalculatePositionStats(ctx)
		return err
	})
	return
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and an error if any. It returns the error from the lambda function for convenience
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}

var _ DbInterface = (*DbWithMetrics)(nil)
