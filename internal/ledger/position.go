package ledger

import (
	"fmt"

	"github.com/zoints/staking-ledger/internal/fixedpoint"
	"github.com/zoints/staking-ledger/internal/types"
)

// StakePosition is one staker's stake through one endpoint. Amounts being
// unbonded share a single bucket and a single ready time.
type StakePosition struct {
	Endpoint           string
	Staker             string
	TotalStake         uint64
	CreationTime       int64
	UnbondingAmount    uint64
	UnbondingReadyTime int64
}

func NewStakePosition(endpoint, staker string, now int64) StakePosition {
	return StakePosition{
		Endpoint:     endpoint,
		Staker:       staker,
		CreationTime: now,
	}
}

func (p StakePosition) State() types.PositionState {
	if p.UnbondingAmount > 0 {
		return types.StatePendingWithdrawal
	}
	return types.StateActive
}

// IsWithdrawable reports whether the unbonding bucket can be withdrawn at now.
func (p StakePosition) IsWithdrawable(now int64) bool {
	return p.UnbondingAmount > 0 && now >= p.UnbondingReadyTime
}

// WithdrawUnbonded empties the unbonding bucket once its ready time has
// passed and returns the amount to release.
func WithdrawUnbonded(position StakePosition, now int64) (StakePosition, uint64, error) {
	if position.UnbondingAmount == 0 {
		return position, 0, ErrNothingToWithdraw
	}
	if now < position.UnbondingReadyTime {
		return position, 0, fmt.Errorf("%w: ready at %d, now %d",
			ErrUnbondingNotElapsed, position.UnbondingReadyTime, now)
	}

	amount := position.UnbondingAmount
	position.UnbondingAmount = 0
	position.UnbondingReadyTime = 0
	return position, amount, nil
}

// beginUnbonding moves amount into the bucket and restarts its timer.
func (p *StakePosition) beginUnbonding(amount uint64, duration uint64, now int64) error {
	bucket, err := fixedpoint.AddUint64(p.UnbondingAmount, amount)
	if err != nil {
		return fmt.Errorf("failed to grow unbonding bucket: %w", err)
	}
	ready, err := fixedpoint.AddSeconds(now, duration)
	if err != nil {
		return fmt.Errorf("failed to compute unbonding ready time: %w", err)
	}
	p.UnbondingAmount = bucket
	p.UnbondingReadyTime = ready
	return nil
}

// Endpoint is the target a stake is made through. It names the primary and
// the optional secondary beneficiaries of every stake pointing at it.
type Endpoint struct {
	ID           string
	Owner        string
	CreationTime int64
	TotalStake   uint64
	Primary      string
	Secondary    string
}
