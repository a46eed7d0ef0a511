package config

import (
	"errors"
	"time"
)

const (
	defaultStatsPollingInterval = 5 * time.Minute
	defaultOutboxBatchSize      = 100
)

type PollerConfig struct {
	OutboxPollingInterval           time.Duration `mapstructure:"outbox-polling-interval"`
	OutboxBatchSize                 int64         `mapstructure:"outbox-batch-size"`
	UnbondingCheckerPollingInterval time.Duration `mapstructure:"unbonding-checker-polling-interval"`
	UnbondingReadyPositionsLimit    int64         `mapstructure:"unbonding-ready-positions-limit"`
	StatsPollingInterval            time.Duration `mapstructure:"stats-polling-interval"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.OutboxPollingInterval <= 0 {
		return errors.New("outbox-polling-interval must be positive")
	}

	if cfg.UnbondingCheckerPollingInterval <= 0 {
		return errors.New("unbonding-checker-polling-interval must be positive")
	}

	if cfg.UnbondingReadyPositionsLimit <= 0 {
		return errors.New("unbonding-ready-positions-limit must be positive")
	}

	if cfg.OutboxBatchSize <= 0 {
		cfg.OutboxBatchSize = defaultOutboxBatchSize
	}

	if cfg.StatsPollingInterval <= 0 {
		cfg.StatsPollingInterval = defaultStatsPollingInterval
	}

	return nil
}
