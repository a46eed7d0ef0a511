package services

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/zoints/staking-ledger/consumer"
	"github.com/zoints/staking-ledger/internal/db"
	"github.com/zoints/staking-ledger/internal/observability/tracing"
)

// StartReceiptProcessor marks disbursements executed as the transfer
// executor confirms them. Confirmed collections stop counting against the
// staker's spendable balance.
func (s *Service) StartReceiptProcessor(ctx context.Context) {
	s.wg.Go(func() {
		deliveries, err := s.commands.ReceiveReceipts(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to receive disbursement receipts")
		}

		log.Info().Msg("receipt processor started")
		for delivery := range deliveries {
			s.handleReceipt(ctx, delivery)
		}
		log.Info().Msg("receipt processor stopped")
	})
}

func (s *Service) handleReceipt(ctx context.Context, delivery consumer.Delivery) {
	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	var receipt consumer.DisbursementReceipt
	if err := json.Unmarshal(delivery.Body, &receipt); err != nil || receipt.ID == "" {
		if err == nil {
			err = errors.New("receipt without disbursement id")
		}
		log.Error().Err(err).Str("message_id", delivery.MessageID).Msg("invalid disbursement receipt")
		if err := delivery.Drop(); err != nil {
			log.Error().Err(err).Msg("failed to drop disbursement receipt")
		}
		return
	}

	executedAt := receipt.ExecutedAt
	if executedAt == 0 {
		executedAt = s.now().Unix()
	}

	ack := delivery.Ack
	err := s.db.MarkDisbursementExecuted(ctx, receipt.ID, executedAt)
	switch {
	case err == nil:
	case db.IsNotFoundError(err):
		log.Warn().Str("disbursement_id", receipt.ID).Msg("receipt for unknown or already executed disbursement")
	default:
		log.Warn().Err(err).
			Str("disbursement_id", receipt.ID).
			Int32("attempts", delivery.Attempts).
			Msg("failed to record disbursement receipt, will retry")
		ack = delivery.Retry
	}

	if err := ack(); err != nil {
		log.Error().Err(err).Str("disbursement_id", receipt.ID).Msg("failed to settle receipt message")
	}
}
