package consumer

import "context"

// Disbursement is a transfer directive handed to the transfer executor.
// Disbursements sharing CommandID must be executed in Sequence order.
type Disbursement struct {
	ID        string `json:"id"`
	CommandID string `json:"command_id"`
	Sequence  int    `json:"sequence"`
	Kind      string `json:"kind"`
	Principal string `json:"principal"`
	Asset     string `json:"asset"`
	Amount    uint64 `json:"amount"`
	CreatedAt int64  `json:"created_at"`
}

// UnbondingNotice tells a staker that the unbonding bucket of a position
// can be withdrawn.
type UnbondingNotice struct {
	Endpoint  string `json:"endpoint"`
	Staker    string `json:"staker"`
	Amount    uint64 `json:"amount"`
	ReadyTime int64  `json:"ready_time"`
}

//go:generate mockery --name=DisbursementConsumer --output=../tests/mocks --outpkg=mocks --filename=mock_disbursement_consumer.go
type DisbursementConsumer interface {
	Start() error
	PushDisbursement(ctx context.Context, d *Disbursement) error
	PushUnbondingNotice(ctx context.Context, n *UnbondingNotice) error
	Stop() error
}
