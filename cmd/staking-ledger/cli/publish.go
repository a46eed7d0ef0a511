package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.uber.org/zap"

	"github.com/zoints/staking-ledger/internal/config"
	"github.com/zoints/staking-ledger/internal/ledger"
	"github.com/zoints/staking-ledger/internal/queue"
)

// publishCommand enqueues cmd for the running server and returns the
// command id it was published under.
func publishCommand(ctx context.Context, cmd ledger.Command) (string, error) {
	cfg, err := config.New(GetConfigPath())
	if err != nil {
		return "", err
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		return "", fmt.Errorf("failed to create zap logger: %w", err)
	}
	defer zapLogger.Sync() //nolint:errcheck

	qm, err := queue.NewQueueManager(&cfg.Queue, zapLogger)
	if err != nil {
		return "", err
	}
	defer func() {
		if err := qm.Stop(); err != nil {
			log.Error().Err(err).Msg("error while stopping queue manager")
		}
	}()
	if err := qm.Start(); err != nil {
		return "", err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate command id: %w", err)
	}
	msg, err := queue.NewCommandMessage(id.String(), cmd)
	if err != nil {
		return "", err
	}
	if _, err := msg.ToCommand(); err != nil {
		return "", err
	}

	if err := qm.PushCommand(ctx, msg); err != nil {
		return "", err
	}
	return msg.ID, nil
}
