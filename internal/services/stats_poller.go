package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/zoints/staking-ledger/internal/db"
	"github.com/zoints/staking-ledger/internal/fixedpoint"
	"github.com/zoints/staking-ledger/internal/observability/metrics"
	"github.com/zoints/staking-ledger/internal/types"
	"github.com/zoints/staking-ledger/internal/utils/poller"
)

// StartStatsPoller starts the stats polling service
func (s *Service) StartStatsPoller(ctx context.Context) {
	statsPoller := poller.NewPoller(
		"stats",
		s.cfg.Poller.StatsPollingInterval,
		s.calculateAndUpdateStats,
	)
	s.wg.Go(func() { statsPoller.Start(ctx) })
}

// calculateAndUpdateStats refreshes position and pool gauges
func (s *Service) calculateAndUpdateStats(ctx context.Context) error {
	log := log.Ctx(ctx)

	stats, err := s.db.CalculatePositionStats(ctx)
	if err != nil {
		return fmt.Errorf("failed to calculate position stats: %w", err)
	}
	metrics.RecordPositionsCount(types.StateActive.String(), stats.ActivePositions)
	metrics.RecordPositionsCount(types.StatePendingWithdrawal.String(), stats.PendingWithdrawals)

	poolDoc, err := s.db.GetPool(ctx)
	if err != nil {
		if db.IsNotFoundError(err) {
			log.Debug().Msg("pool is not initialized, skipping pool stats")
			return nil
		}
		return fmt.Errorf("failed to get pool: %w", err)
	}

	pool, err := poolDoc.ToPool()
	if err != nil {
		return fmt.Errorf("failed to decode pool: %w", err)
	}

	rewardPerShare := pool.RewardPerShare.Float64() / fixedpoint.RewardScale().Float64()
	metrics.RecordPoolState(pool.TotalStake, pool.Emission.CurrentEmission, rewardPerShare)

	log.Debug().
		Uint64("active_positions", stats.ActivePositions).
		Uint64("pending_withdrawals", stats.PendingWithdrawals).
		Uint64("total_stake", pool.TotalStake).
		Msg("Updated staking stats")

	return nil
}
