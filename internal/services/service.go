package services

import (
	"context"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/zoints/staking-ledger/consumer"
	"github.com/zoints/staking-ledger/internal/config"
	"github.com/zoints/staking-ledger/internal/db"
	"github.com/zoints/staking-ledger/internal/ledger"
)

type Service struct {
	cfg           *config.Config
	db            db.DbInterface
	settler       *ledger.Settler
	verifier      ledger.AccountVerifier
	commands      consumer.CommandSource
	disbursements consumer.DisbursementConsumer

	now func() time.Time
	wg  conc.WaitGroup
}

func NewService(
	cfg *config.Config,
	db db.DbInterface,
	settler *ledger.Settler,
	verifier ledger.AccountVerifier,
	commands consumer.CommandSource,
	disbursements consumer.DisbursementConsumer,
) *Service {
	return &Service{
		cfg:           cfg,
		db:            db,
		settler:       settler,
		verifier:      verifier,
		commands:      commands,
		disbursements: disbursements,
		now:           time.Now,
	}
}

// Start runs the command processor and the background pollers until ctx is
// done. Only the command processor writes ledger state.
func (s *Service) Start(ctx context.Context) {
	s.StartOutboxPublisher(ctx)
	s.StartUnbondingNotifier(ctx)
	s.StartStatsPoller(ctx)
	s.StartReceiptProcessor(ctx)
	s.StartCommandProcessor(ctx)
}

// Wait blocks until every goroutine started by Start has returned.
func (s *Service) Wait() {
	s.wg.Wait()
}
