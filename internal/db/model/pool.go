package model

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/zoints/staking-ledger/internal/fixedpoint"
	"github.com/zoints/staking-ledger/internal/ledger"
)

// PoolDocumentID is the _id of the single pool document.
const PoolDocumentID = "pool"

// PoolDocument stores 256-bit values as decimal strings.
type PoolDocument struct {
	ID                     string `bson:"_id"`
	Asset                  string `bson:"asset"`
	Authority              string `bson:"authority"`
	FeeRecipient           string `bson:"fee_recipient"`
	StartTime              int64  `bson:"start_time"`
	UnbondingDuration      uint64 `bson:"unbonding_duration"`
	TotalStake             uint64 `bson:"total_stake"`
	RewardPerShare         string `bson:"reward_per_share"`
	LastRewardTime         int64  `bson:"last_reward_time"`
	InitialEmission        uint64 `bson:"initial_emission"`
	CurrentEmission        uint64 `bson:"current_emission"`
	NextEmissionChangeTime int64  `bson:"next_emission_change_time"`
	EmissionPeriod         uint64 `bson:"emission_period"`
	DecayNumerator         uint64 `bson:"decay_numerator"`
	DecayDenominator       uint64 `bson:"decay_denominator"`
	Emitted                string `bson:"emitted"`
}

func FromPool(pool *ledger.Pool) *PoolDocument {
	return &PoolDocument{
		ID:                     PoolDocumentID,
		Asset:                  pool.Asset,
		Authority:              pool.Authority,
		FeeRecipient:           pool.FeeRecipient,
		StartTime:              pool.StartTime,
		UnbondingDuration:      pool.UnbondingDuration,
		TotalStake:             pool.TotalStake,
		RewardPerShare:         pool.RewardPerShare.Dec(),
		LastRewardTime:         pool.LastRewardTime,
		InitialEmission:        pool.Emission.InitialEmission,
		CurrentEmission:        pool.Emission.CurrentEmission,
		NextEmissionChangeTime: pool.Emission.NextChangeTime,
		EmissionPeriod:         pool.Emission.Period,
		DecayNumerator:         pool.Emission.DecayNumerator,
		DecayDenominator:       pool.Emission.DecayDenominator,
		Emitted:                pool.Emitted.Raw().Dec(),
	}
}

func (d *PoolDocument) ToPool() (*ledger.Pool, error) {
	rewardPerShare, err := uint256.FromDecimal(d.RewardPerShare)
	if err != nil {
		return nil, fmt.Errorf("invalid reward per share %q: %w", d.RewardPerShare, err)
	}
	emitted, err := uint256.FromDecimal(d.Emitted)
	if err != nil {
		return nil, fmt.Errorf("invalid emitted amount %q: %w", d.Emitted, err)
	}

	pool := &ledger.Pool{
		Asset:             d.Asset,
		Authority:         d.Authority,
		FeeRecipient:      d.FeeRecipient,
		StartTime:         d.StartTime,
		UnbondingDuration: d.UnbondingDuration,
		TotalStake:        d.TotalStake,
		LastRewardTime:    d.LastRewardTime,
		Emission: ledger.EmissionSchedule{
			InitialEmission:  d.InitialEmission,
			CurrentEmission:  d.CurrentEmission,
			NextChangeTime:   d.NextEmissionChangeTime,
			Period:           d.EmissionPeriod,
			DecayNumerator:   d.DecayNumerator,
			DecayDenominator: d.DecayDenominator,
		},
		Emitted: fixedpoint.PayoutFromRaw(emitted),
	}
	pool.RewardPerShare.Set(rewardPerShare)
	return pool, nil
}
