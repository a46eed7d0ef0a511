package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zoints/staking-ledger/internal/api"
	"github.com/zoints/staking-ledger/internal/clients/transferclient"
	"github.com/zoints/staking-ledger/internal/config"
	"github.com/zoints/staking-ledger/internal/db"
	dbmodel "github.com/zoints/staking-ledger/internal/db/model"
	"github.com/zoints/staking-ledger/internal/ledger"
	"github.com/zoints/staking-ledger/internal/observability/metrics"
	"github.com/zoints/staking-ledger/internal/observability/tracing"
	"github.com/zoints/staking-ledger/internal/queue"
	"github.com/zoints/staking-ledger/internal/services"
)

func StartServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start-server",
		Short: "Starts the staking ledger server",
		Args:  cobra.ExactArgs(0),
		RunE:  startServer,
	}

	return cmd
}

func startServer(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ctx = tracing.InjectTraceID(ctx)
	log := log.Ctx(ctx)

	// load config
	cfgPath := GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	settler, err := ledger.NewSettler(cfg.Staking.ToParams())
	if err != nil {
		log.Fatal().Err(err).Msg("invalid staking parameters")
	}

	err = dbmodel.Setup(ctx, &cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up staking db model")
	}

	// create new db client
	var dbClient db.DbInterface
	dbClient, err = db.New(ctx, cfg.Db)
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating db client")
	}
	dbClient = db.NewDbWithMetrics(dbClient)

	// Create a basic zap logger
	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatal().Err(err).Msg("error while creating zap logger")
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			log.Error().Err(err).Msg("error while syncing zap logger")
		}
	}()

	qm, err := queue.NewQueueManager(&cfg.Queue, zapLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize queue manager")
	}
	defer func() {
		if err := qm.Stop(); err != nil {
			log.Error().Err(err).Msg("error while stopping queue manager")
		}
	}()
	if err := qm.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to declare queues")
	}

	var transferClient transferclient.TransferInterface
	transferClient = transferclient.NewClient(&cfg.Transfer)
	transferClient = transferclient.NewTransferClientWithMetrics(transferClient)

	// initialize metrics with the metrics port from config
	metricsPort := cfg.Metrics.GetMetricsPort()
	metrics.Init(metricsPort)

	service := services.NewService(cfg, dbClient, settler, transferClient, qm, qm)
	service.Start(ctx)

	server := api.New(&cfg.Server, dbClient, qm)
	if err := server.Start(ctx); err != nil {
		log.Error().Err(err).Msg("api server stopped")
	}

	service.Wait()
	log.Info().Msg("staking ledger stopped")
	return nil
}
