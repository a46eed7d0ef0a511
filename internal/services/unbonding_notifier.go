package services

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/zoints/staking-ledger/consumer"
	"github.com/zoints/staking-ledger/internal/db"
	"github.com/zoints/staking-ledger/internal/observability/metrics"
	"github.com/zoints/staking-ledger/internal/types"
	"github.com/zoints/staking-ledger/internal/utils/poller"
)

func (s *Service) StartUnbondingNotifier(ctx context.Context) {
	notifierPoller := poller.NewPoller(
		"unbonding_notifier",
		s.cfg.Poller.UnbondingCheckerPollingInterval,
		s.checkUnbondings,
	)
	s.wg.Go(func() { notifierPoller.Start(ctx) })
}

func (s *Service) checkUnbondings(ctx context.Context) error {
	now := s.now().Unix()

	ready, err := s.db.FindReadyUnbondings(ctx, now, s.cfg.Poller.UnbondingReadyPositionsLimit)
	if err != nil {
		return fmt.Errorf("failed to find ready unbondings: %w", err)
	}
	metrics.RecordReadyUnbondingsCount(len(ready))

	for _, tlDoc := range ready {
		position, err := s.db.GetStakePosition(ctx, tlDoc.Endpoint, tlDoc.Staker)
		if err != nil && !db.IsNotFoundError(err) {
			return fmt.Errorf("failed to get stake position %s: %w", tlDoc.PositionID, err)
		}

		// Handle already withdrawn buckets
		if position == nil || !slices.Contains(types.QualifiedStatesForWithdrawUnbond(), position.State) {
			log.Ctx(ctx).Debug().
				Str("position", tlDoc.PositionID).
				Msg("unbonding bucket already withdrawn, removing timelock")
			if err := s.deleteTimeLock(ctx, tlDoc.PositionID, tlDoc.ReadyTime); err != nil {
				return err
			}
			continue
		}

		// Skip if the bucket was restarted after the timelock was read
		if position.UnbondingReadyTime != tlDoc.ReadyTime {
			log.Ctx(ctx).Debug().
				Str("position", tlDoc.PositionID).
				Int64("timelock_ready_time", tlDoc.ReadyTime).
				Int64("position_ready_time", position.UnbondingReadyTime).
				Msg("skipping timelock, unbonding was restarted")
			continue
		}

		notice := &consumer.UnbondingNotice{
			Endpoint:  position.Endpoint,
			Staker:    position.Staker,
			Amount:    position.UnbondingAmount,
			ReadyTime: position.UnbondingReadyTime,
		}
		if err := s.disbursements.PushUnbondingNotice(ctx, notice); err != nil {
			return fmt.Errorf("failed to publish unbonding notice for %s: %w", tlDoc.PositionID, err)
		}

		if err := s.deleteTimeLock(ctx, tlDoc.PositionID, tlDoc.ReadyTime); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) deleteTimeLock(ctx context.Context, positionID string, readyTime int64) error {
	err := s.db.DeleteUnbondingTimeLock(ctx, positionID, readyTime)
	if err != nil && !db.IsNotFoundError(err) {
		return fmt.Errorf("failed to delete unbonding timelock %s: %w", positionID, err)
	}
	return nil
}
