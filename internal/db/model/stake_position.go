package model

import (
	"github.com/zoints/staking-ledger/internal/ledger"
	"github.com/zoints/staking-ledger/internal/types"
)

type StakePositionDocument struct {
	ID                 string              `bson:"_id"`
	Endpoint           string              `bson:"endpoint"`
	Staker             string              `bson:"staker"`
	State              types.PositionState `bson:"state"`
	TotalStake         uint64              `bson:"total_stake"`
	CreationTime       int64               `bson:"creation_time"`
	UnbondingAmount    uint64              `bson:"unbonding_amount"`
	UnbondingReadyTime int64               `bson:"unbonding_ready_time"`
}

// StakePositionID is the _id of the position of staker through endpoint.
func StakePositionID(endpoint, staker string) string {
	return endpoint + ":" + staker
}

func FromStakePosition(p *ledger.StakePosition) *StakePositionDocument {
	return &StakePositionDocument{
		ID:                 StakePositionID(p.Endpoint, p.Staker),
		Endpoint:           p.Endpoint,
		Staker:             p.Staker,
		State:              p.State(),
		TotalStake:         p.TotalStake,
		CreationTime:       p.CreationTime,
		UnbondingAmount:    p.UnbondingAmount,
		UnbondingReadyTime: p.UnbondingReadyTime,
	}
}

func (d *StakePositionDocument) ToStakePosition() *ledger.StakePosition {
	return &ledger.StakePosition{
		Endpoint:           d.Endpoint,
		Staker:             d.Staker,
		TotalStake:         d.TotalStake,
		CreationTime:       d.CreationTime,
		UnbondingAmount:    d.UnbondingAmount,
		UnbondingReadyTime: d.UnbondingReadyTime,
	}
}
