package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                           sync.Once
	metricsRouter                  *chi.Mux
	transferClientLatency          *prometheus.HistogramVec
	queueSendErrorCounter          prometheus.Counter
	clientRequestDurationHistogram *prometheus.HistogramVec
	pollerDurationHistogram        *prometheus.HistogramVec
	pollerLastSuccessGauge         *prometheus.GaugeVec
	commandProcessingDuration      *prometheus.HistogramVec
	directivesCounter              *prometheus.CounterVec
	poolTotalStakeGauge            prometheus.Gauge
	poolCurrentEmissionGauge       prometheus.Gauge
	poolRewardPerShareGauge        prometheus.Gauge
	pendingDisbursementsGauge      prometheus.Gauge
	readyUnbondingsGauge           prometheus.Gauge
	positionsGauge                 *prometheus.GaugeVec
	dbLatency                      *prometheus.HistogramVec
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	// client requests are the ones sending to other service
	clientRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"baseurl", "method", "path", "status"},
	)

	transferClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transfer_client_latency_seconds",
			Help:    "Histogram of transfer service client durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	// add a counter for the number of errors from the fail to push message into queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	pollerLastSuccessGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "poller_last_success_timestamp_seconds",
			Help: "Unix time of the last poll that completed without error.",
		},
		[]string{"type"},
	)

	commandProcessingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "command_processing_duration_seconds",
			Help:    "Staking command processing duration in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"command_type", "status"},
	)

	directivesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "settlement_directives_total",
			Help: "Number of transfer directives produced by settlements",
		},
		[]string{"kind"},
	)

	poolTotalStakeGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pool_total_stake",
			Help: "Total stake held by the pool",
		},
	)

	poolCurrentEmissionGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pool_current_emission",
			Help: "Emission per period currently in force",
		},
	)

	poolRewardPerShareGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pool_reward_per_share",
			Help: "Reward per share accumulator, approximated as float",
		},
	)

	pendingDisbursementsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pending_disbursements_count",
			Help: "Number of disbursements not yet published",
		},
	)

	readyUnbondingsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "ready_unbondings_count",
			Help: "Number of unbonding buckets that became withdrawable",
		},
	)

	positionsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "stake_positions_count",
			Help: "Number of stake positions by state",
		},
		[]string{"state"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	prometheus.MustRegister(
		transferClientLatency,
		queueSendErrorCounter,
		clientRequestDurationHistogram,
		pollerDurationHistogram,
		pollerLastSuccessGauge,
		commandProcessingDuration,
		directivesCounter,
		poolTotalStakeGauge,
		poolCurrentEmissionGauge,
		poolRewardPerShareGauge,
		pendingDisbursementsGauge,
		readyUnbondingsGauge,
		positionsGauge,
		dbLatency,
	)
}

func RecordTransferClientLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	transferClientLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	dbLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordCommandProcessingDuration(d time.Duration, commandType string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	commandProcessingDuration.WithLabelValues(commandType, status.String()).Observe(d.Seconds())
}

func IncDirectives(kind string) {
	directivesCounter.WithLabelValues(kind).Inc()
}

func RecordPoolState(totalStake, currentEmission uint64, rewardPerShare float64) {
	poolTotalStakeGauge.Set(float64(totalStake))
	poolCurrentEmissionGauge.Set(float64(currentEmission))
	poolRewardPerShareGauge.Set(rewardPerShare)
}

func RecordPendingDisbursements(count int64) {
	pendingDisbursementsGauge.Set(float64(count))
}

func RecordReadyUnbondingsCount(count int) {
	readyUnbondingsGauge.Set(float64(count))
}

func RecordPositionsCount(state string, count uint64) {
	positionsGauge.WithLabelValues(state).Set(float64(count))
}

// StartClientRequestDurationTimer starts a timer to measure outgoing client request duration.
func StartClientRequestDurationTimer(baseUrl, method, path string) func(statusCode int) {
	startTime := time.Now()
	return func(statusCode int) {
		duration := time.Since(startTime).Seconds()
		clientRequestDurationHistogram.WithLabelValues(
			baseUrl,
			method,
			path,
			fmt.Sprintf("%d", statusCode),
		).Observe(duration)
	}
}

func RecordQueueSendError() {
	queueSendErrorCounter.Inc()
}
