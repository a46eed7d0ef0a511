package config

import (
	"errors"
	"time"
)

// TransferConfig points at the token transfer service that verifies
// associated accounts and reports balances.
type TransferConfig struct {
	URL           string        `mapstructure:"url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
}

func (cfg *TransferConfig) Validate() error {
	if cfg.URL == "" {
		return errors.New("transfer service url must be set")
	}

	if cfg.Timeout <= 0 {
		return errors.New("transfer service timeout must be positive")
	}

	if cfg.MaxRetryTimes == 0 {
		return errors.New("transfer service max-retry-times must be positive")
	}

	if cfg.RetryInterval <= 0 {
		return errors.New("transfer service retry-interval must be positive")
	}

	return nil
}
