package ledger

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/zoints/staking-ledger/internal/fixedpoint"
)

// Beneficiary is a principal's share of the pool. RewardDebt is the holding
// value of Staked at the accumulator value of the last settlement, so the
// difference to the current value is what accrued since.
type Beneficiary struct {
	Authority  string
	Staked     uint64
	RewardDebt uint64
	// Holding is realized reward that has not been disbursed yet.
	Holding uint64
}

func NewBeneficiary(authority string) Beneficiary {
	return Beneficiary{Authority: authority}
}

// Settle realizes the reward accrued since the last settlement into Holding
// and re-bases the debt on newStaked. Nothing is modified on error.
func (b *Beneficiary) Settle(newStaked uint64, rewardPerShare *uint256.Int) (uint64, error) {
	pending, err := b.pending(rewardPerShare)
	if err != nil {
		return 0, err
	}
	debt, err := HoldingValue(newStaked, rewardPerShare)
	if err != nil {
		return 0, fmt.Errorf("failed to compute reward debt: %w", err)
	}
	holding, err := fixedpoint.AddUint64(b.Holding, pending)
	if err != nil {
		return 0, fmt.Errorf("failed to realize pending reward: %w", err)
	}

	b.Staked = newStaked
	b.RewardDebt = debt
	b.Holding = holding
	return pending, nil
}

// PendingReward is the amount a claim at rewardPerShare would disburse.
func (b Beneficiary) PendingReward(rewardPerShare *uint256.Int) (uint64, error) {
	pending, err := b.pending(rewardPerShare)
	if err != nil {
		return 0, err
	}
	return fixedpoint.AddUint64(b.Holding, pending)
}

// TakeHolding zeroes the holding and returns what it contained.
func (b *Beneficiary) TakeHolding() uint64 {
	amount := b.Holding
	b.Holding = 0
	return amount
}

func (b Beneficiary) pending(rewardPerShare *uint256.Int) (uint64, error) {
	value, err := HoldingValue(b.Staked, rewardPerShare)
	if err != nil {
		return 0, fmt.Errorf("failed to compute holding value: %w", err)
	}
	if value < b.RewardDebt {
		return 0, fmt.Errorf("%w: holding value %d is below reward debt %d of %s",
			ErrStaleAccumulator, value, b.RewardDebt, b.Authority)
	}
	return value - b.RewardDebt, nil
}
