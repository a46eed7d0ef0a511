package poller

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zoints/staking-ledger/internal/observability/metrics"
)

// Poller runs pollMethod on a fixed interval. Runs never overlap: a slow poll
// delays the next tick.
type Poller struct {
	name       string
	interval   time.Duration
	quit       chan struct{}
	stopOnce   sync.Once
	pollMethod func(ctx context.Context) error
}

func NewPoller(name string, interval time.Duration, pollMethod func(ctx context.Context) error) *Poller {
	return &Poller{
		name:       name,
		interval:   interval,
		quit:       make(chan struct{}),
		pollMethod: pollMethod,
	}
}

// Start blocks until ctx is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	logger := log.Ctx(ctx).With().Str("poller", p.name).Logger()
	ctx = logger.WithContext(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	logger.Info().Dur("interval", p.interval).Msg("poller started")
	for {
		select {
		case <-ticker.C:
			p.poll(ctx)
		case <-ctx.Done():
			logger.Info().Msg("poller stopped due to context cancellation")
			return
		case <-p.quit:
			logger.Info().Msg("poller stopped")
			return
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	started := time.Now()
	err := p.pollMethod(ctx)
	metrics.ObservePoll(p.name, started, err)

	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("poll failed")
	}
}

// Stop is safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
}
