package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zoints/staking-ledger/consumer"
	"github.com/zoints/staking-ledger/internal/db"
	"github.com/zoints/staking-ledger/internal/ledger"
	"github.com/zoints/staking-ledger/internal/observability/metrics"
	"github.com/zoints/staking-ledger/internal/observability/tracing"
	"github.com/zoints/staking-ledger/internal/queue"
	"github.com/zoints/staking-ledger/internal/types"
)

// StartCommandProcessor drains the command queue with a single worker, so
// settlements never run concurrently.
func (s *Service) StartCommandProcessor(ctx context.Context) {
	s.wg.Go(func() {
		deliveries, err := s.commands.ReceiveCommands(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to receive staking commands")
		}

		log.Info().Msg("command processor started")
		for delivery := range deliveries {
			s.handleDelivery(ctx, delivery)
		}
		log.Info().Msg("command processor stopped")
	})
}

func (s *Service) handleDelivery(ctx context.Context, delivery consumer.Delivery) {
	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	msg, err := queue.DecodeCommandMessage(delivery.Body)
	if err != nil {
		log.Error().Err(err).Str("message_id", delivery.MessageID).Msg("invalid command message")
		if err := delivery.Drop(); err != nil {
			log.Error().Err(err).Msg("failed to drop command message")
		}
		return
	}

	cmd, err := msg.ToCommand()
	if err != nil {
		log.Error().Err(err).Str("command_id", msg.ID).Msg("invalid command")
		if err := delivery.Drop(); err != nil {
			log.Error().Err(err).Msg("failed to drop command message")
		}
		return
	}

	ctx = tracing.InjectCommand(ctx, msg.ID, cmd.Type().String())
	log = zerolog.Ctx(ctx)

	processCtx, cancel := context.WithTimeout(ctx, s.cfg.Queue.QueueProcessingTimeout)
	defer cancel()

	var ack func() error
	switch perr := s.ProcessCommand(processCtx, msg.ID, cmd); {
	case perr == nil:
		ack = delivery.Ack
	case perr.IsRetryable():
		log.Warn().Err(perr).
			Int32("attempts", delivery.Attempts).
			Msg("command processing failed, will retry")
		ack = delivery.Retry
	default:
		log.Error().Err(perr).
			Stringer("error_code", perr.ErrorCode).
			Msg("command rejected")
		ack = delivery.Drop
	}

	if err := ack(); err != nil {
		log.Error().Err(err).Msg("failed to settle command message")
	}
}

// ProcessCommand settles cmd against the stored ledger and commits the
// result together with its disbursements. A command id that was already
// committed is accepted without being applied again.
func (s *Service) ProcessCommand(ctx context.Context, commandID string, cmd ledger.Command) (perr *types.Error) {
	startTime := time.Now()
	defer func() {
		metrics.RecordCommandProcessingDuration(time.Since(startTime), cmd.Type().String(), perr != nil)
	}()

	now := s.now().Unix()

	state, perr := s.loadState(ctx, cmd)
	if perr != nil {
		return perr
	}

	if perr := s.verifyAccounts(ctx, cmd, &state); perr != nil {
		return perr
	}

	outcome, err := s.settler.Dispatch(cmd, state, now)
	if err != nil {
		return toServiceError(fmt.Errorf("failed to settle %s: %w", cmd.Type(), err))
	}

	settlement, err := newSettlement(commandID, cmd, state, outcome, now)
	if err != nil {
		return types.NewInternalServiceError(err)
	}

	if err := s.db.CommitSettlement(ctx, settlement); err != nil {
		if db.IsDuplicateKeyError(err) {
			log.Ctx(ctx).Info().
				Str("command_id", commandID).
				Msg("command already processed, skipping")
			return nil
		}
		return types.NewError(
			http.StatusInternalServerError,
			types.InternalServiceError,
			fmt.Errorf("failed to commit %s settlement: %w", cmd.Type(), err),
		)
	}

	for _, d := range outcome.Directives {
		metrics.IncDirectives(d.Kind.String())
	}

	log.Ctx(ctx).Debug().
		Str("command_id", commandID).
		Stringer("command_type", cmd.Type()).
		Int("directives", len(outcome.Directives)).
		Msg("command settled")

	return nil
}

// verifyAccounts checks that the principal receiving transfers has an
// account for the pool asset. For deposits it also reads the staker's
// spendable balance, net of stake collections not yet executed.
func (s *Service) verifyAccounts(ctx context.Context, cmd ledger.Command, state *ledger.SettlementState) *types.Error {
	if state.Pool == nil {
		return nil
	}

	var principal string
	switch c := cmd.(type) {
	case ledger.Stake:
		principal = c.Staker
	case ledger.Unstake:
		principal = c.Staker
	case ledger.Harvest:
		principal = c.Staker
	case ledger.WithdrawUnbond:
		principal = c.Staker
	case ledger.ClaimReward:
		principal = c.Authority
	default:
		return nil
	}

	balance, err := s.verifier.VerifyAssociated(ctx, principal, state.Pool.Asset)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotAssociated) {
			return types.NewValidationFailedError(err)
		}
		return types.NewError(
			http.StatusServiceUnavailable,
			types.ServiceUnavailable,
			fmt.Errorf("failed to verify account of %s: %w", principal, err),
		)
	}

	if _, ok := cmd.(ledger.Stake); ok {
		// collections already committed are still part of the reported
		// balance until the executor confirms them
		outstanding, err := s.db.SumOutstandingCollections(ctx, principal, state.Pool.Asset)
		if err != nil {
			return storeError("outstanding collections", err)
		}
		state.StakerBalance = balance - min(balance, outstanding)
	}
	return nil
}

func toServiceError(err error) *types.Error {
	switch {
	case ledger.IsValidationError(err):
		return types.NewValidationFailedError(err)
	case ledger.IsNotFoundError(err):
		return types.NewNotFoundError(err)
	default:
		return types.NewInternalServiceError(err)
	}
}
