package model

import "github.com/zoints/staking-ledger/internal/ledger"

type EndpointDocument struct {
	ID           string `bson:"_id"`
	Owner        string `bson:"owner"`
	CreationTime int64  `bson:"creation_time"`
	TotalStake   uint64 `bson:"total_stake"`
	Primary      string `bson:"primary"`
	Secondary    string `bson:"secondary,omitempty"`
}

func FromEndpoint(e *ledger.Endpoint) *EndpointDocument {
	return &EndpointDocument{
		ID:           e.ID,
		Owner:        e.Owner,
		CreationTime: e.CreationTime,
		TotalStake:   e.TotalStake,
		Primary:      e.Primary,
		Secondary:    e.Secondary,
	}
}

func (d *EndpointDocument) ToEndpoint() *ledger.Endpoint {
	return &ledger.Endpoint{
		ID:           d.ID,
		Owner:        d.Owner,
		CreationTime: d.CreationTime,
		TotalStake:   d.TotalStake,
		Primary:      d.Primary,
		Secondary:    d.Secondary,
	}
}
