package transferclient

import (
	"context"
	"time"

	"github.com/zoints/staking-ledger/internal/observability/metrics"
	"github.com/zoints/staking-ledger/internal/utils"
)

type transferClientWithMetrics struct {
	client TransferInterface
}

func NewTransferClientWithMetrics(client TransferInterface) *transferClientWithMetrics {
	return &transferClientWithMetrics{client: client}
}

func (t *transferClientWithMetrics) VerifyAssociated(ctx context.Context, principal, asset string) (uint64, error) {
	return runTransferClientMethodWithMetrics(func() (uint64, error) {
		return t.client.VerifyAssociated(ctx, principal, asset)
	})
}

// runTransferClientMethodWithMetrics labels the latency with the name of
// the calling method
func runTransferClientMethodWithMetrics[T any](f func() (T, error)) (T, error) {
	method := utils.GetFunctionName(1)

	startTime := time.Now()
	result, err := f()
	duration := time.Since(startTime)

	metrics.RecordTransferClientLatency(duration, method, err != nil)
	return result, err
}
