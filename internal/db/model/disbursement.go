package model

import (
	"github.com/zoints/staking-ledger/internal/ledger"
	"github.com/zoints/staking-ledger/internal/types"
)

// DisbursementDocument is an outbox entry for a transfer directive. Entries
// of one command share CommandID and are ordered by Sequence.
type DisbursementDocument struct {
	ID          string                  `bson:"_id"`
	CommandID   string                  `bson:"command_id"`
	Sequence    int                     `bson:"sequence"`
	Kind        types.DirectiveKind     `bson:"kind"`
	Principal   string                  `bson:"principal"`
	Asset       string                  `bson:"asset"`
	Amount      uint64                  `bson:"amount"`
	State       types.DisbursementState `bson:"state"`
	CreatedAt   int64                   `bson:"created_at"`
	PublishedAt int64                   `bson:"published_at,omitempty"`
	ExecutedAt  int64                   `bson:"executed_at,omitempty"`
}

func NewDisbursementDocument(id, commandID string, sequence int, d ledger.Directive, createdAt int64) *DisbursementDocument {
	return &DisbursementDocument{
		ID:        id,
		CommandID: commandID,
		Sequence:  sequence,
		Kind:      d.Kind,
		Principal: d.Principal,
		Asset:     d.Asset,
		Amount:    d.Amount,
		State:     types.DisbursementPending,
		CreatedAt: createdAt,
	}
}
