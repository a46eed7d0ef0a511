package consumer

import "context"

// Delivery is one message taken from a consumed queue. Exactly one of Ack,
// Retry or Drop must be called.
type Delivery struct {
	MessageID string
	Body      []byte
	// Attempts counts previous failed processing attempts.
	Attempts int32

	Ack func() error
	// Retry puts the message back to be processed again later.
	Retry func() error
	// Drop discards a message that can never be processed.
	Drop func() error
}

//go:generate mockery --name=CommandSource --output=../tests/mocks --outpkg=mocks --filename=mock_command_source.go
type CommandSource interface {
	ReceiveCommands(ctx context.Context) (<-chan Delivery, error)
	// ReceiveReceipts delivers DisbursementReceipt messages.
	ReceiveReceipts(ctx context.Context) (<-chan Delivery, error)
}

// DisbursementReceipt is the transfer executor's confirmation that a
// disbursement was executed.
type DisbursementReceipt struct {
	ID         string `json:"id"`
	ExecutedAt int64  `json:"executed_at"`
}
