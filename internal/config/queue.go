package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	ClassicQueueType = "classic"
	QuorumQueueType  = "quorum"
)

type QueueConfig struct {
	QueueUser              string        `mapstructure:"queue_user"`
	QueuePassword          string        `mapstructure:"queue_password"`
	Url                    string        `mapstructure:"url"`
	QueueProcessingTimeout time.Duration `mapstructure:"processing_timeout"`
	MsgMaxRetryAttempts    int32         `mapstructure:"msg_max_retry_attempts"`
	ReQueueDelayTime       time.Duration `mapstructure:"requeue_delay_time"`
	QueueType              string        `mapstructure:"queue_type"`
	PublishMaxRetryTimes   uint          `mapstructure:"publish_max_retry_times"`
	PublishRetryInterval   time.Duration `mapstructure:"publish_retry_interval"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.QueueUser == "" {
		return errors.New("missing queue user")
	}

	if cfg.QueuePassword == "" {
		return errors.New("missing queue password")
	}

	if cfg.Url == "" {
		return errors.New("missing queue url")
	}

	if cfg.QueueProcessingTimeout <= 0 {
		return errors.New("invalid queue processing timeout")
	}

	if cfg.MsgMaxRetryAttempts <= 0 {
		return errors.New("invalid queue message max retry attempts")
	}

	if cfg.ReQueueDelayTime <= 0 {
		return errors.New("invalid requeue delay time")
	}

	if cfg.QueueType != ClassicQueueType && cfg.QueueType != QuorumQueueType {
		return fmt.Errorf("invalid queue type %q, must be %s or %s", cfg.QueueType, ClassicQueueType, QuorumQueueType)
	}

	if cfg.PublishMaxRetryTimes == 0 {
		cfg.PublishMaxRetryTimes = 3
	}

	if cfg.PublishRetryInterval <= 0 {
		cfg.PublishRetryInterval = 500 * time.Millisecond
	}

	return nil
}
