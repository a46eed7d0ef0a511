package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/zoints/staking-ledger/consumer"
	"github.com/zoints/staking-ledger/internal/db"
	"github.com/zoints/staking-ledger/internal/db/model"
	"github.com/zoints/staking-ledger/internal/observability/metrics"
	"github.com/zoints/staking-ledger/internal/utils/poller"
)

func (s *Service) StartOutboxPublisher(ctx context.Context) {
	outboxPoller := poller.NewPoller(
		"outbox",
		s.cfg.Poller.OutboxPollingInterval,
		s.publishPendingDisbursements,
	)
	s.wg.Go(func() { outboxPoller.Start(ctx) })
}

// publishPendingDisbursements hands committed directives to the transfer
// executor in commit order. It stops at the first failure so a later
// directive is never published ahead of an earlier one.
func (s *Service) publishPendingDisbursements(ctx context.Context) error {
	docs, err := s.db.FindPendingDisbursements(ctx, s.cfg.Poller.OutboxBatchSize)
	if err != nil {
		return fmt.Errorf("failed to find pending disbursements: %w", err)
	}

	for _, doc := range docs {
		if err := s.disbursements.PushDisbursement(ctx, toDisbursement(doc)); err != nil {
			return fmt.Errorf("failed to publish disbursement %s: %w", doc.ID, err)
		}

		err := s.db.MarkDisbursementPublished(ctx, doc.ID, s.now().Unix())
		if err != nil && !db.IsNotFoundError(err) {
			return fmt.Errorf("failed to mark disbursement %s as published: %w", doc.ID, err)
		}

		log.Ctx(ctx).Debug().
			Str("disbursement_id", doc.ID).
			Str("command_id", doc.CommandID).
			Stringer("kind", doc.Kind).
			Uint64("amount", doc.Amount).
			Msg("disbursement published")
	}

	count, err := s.db.CountPendingDisbursements(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pending disbursements: %w", err)
	}
	metrics.RecordPendingDisbursements(count)

	return nil
}

func toDisbursement(doc model.DisbursementDocument) *consumer.Disbursement {
	return &consumer.Disbursement{
		ID:        doc.ID,
		CommandID: doc.CommandID,
		Sequence:  doc.Sequence,
		Kind:      doc.Kind.String(),
		Principal: doc.Principal,
		Asset:     doc.Asset,
		Amount:    doc.Amount,
		CreatedAt: doc.CreatedAt,
	}
}
