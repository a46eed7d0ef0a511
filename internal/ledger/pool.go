package ledger

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/zoints/staking-ledger/internal/fixedpoint"
)

const (
	// SecondsPerPeriod is the length of one emission period (365 days).
	SecondsPerPeriod uint64 = 31_536_000
	// DefaultMinimumStake is the smallest non-zero stake a position may hold.
	DefaultMinimumStake uint64 = 1_000
	// DefaultUnbondingDuration is ten days in seconds.
	DefaultUnbondingDuration uint64 = 864_000
)

// EmissionSchedule is the amount of reward released per period and the
// decay applied to it each time a period boundary is crossed.
type EmissionSchedule struct {
	InitialEmission  uint64
	CurrentEmission  uint64
	NextChangeTime   int64
	Period           uint64
	DecayNumerator   uint64
	DecayDenominator uint64
}

func (e EmissionSchedule) Validate() error {
	if e.Period == 0 {
		return fmt.Errorf("%w: emission period must be positive", ErrInvalidCommand)
	}
	if e.DecayDenominator == 0 {
		return fmt.Errorf("%w: decay denominator must be positive", ErrInvalidCommand)
	}
	if e.DecayNumerator > e.DecayDenominator {
		return fmt.Errorf("%w: decay ratio must not exceed one", ErrInvalidCommand)
	}
	return nil
}

// Pool is the single shared staking pool and its reward accumulator.
type Pool struct {
	Asset             string
	Authority         string
	FeeRecipient      string
	StartTime         int64
	UnbondingDuration uint64

	TotalStake     uint64
	RewardPerShare uint256.Int
	LastRewardTime int64
	Emission       EmissionSchedule
	// Emitted is the exact amount released by the schedule so far.
	Emitted fixedpoint.Payout
}

type PoolParams struct {
	Asset             string
	Authority         string
	FeeRecipient      string
	StartTime         int64
	UnbondingDuration uint64
	InitialEmission   uint64
	Period            uint64
	DecayNumerator    uint64
	DecayDenominator  uint64
}

// NewPool creates a pool that starts accruing at params.StartTime.
func NewPool(params PoolParams) (Pool, error) {
	schedule := EmissionSchedule{
		InitialEmission:  params.InitialEmission,
		CurrentEmission:  params.InitialEmission,
		Period:           params.Period,
		DecayNumerator:   params.DecayNumerator,
		DecayDenominator: params.DecayDenominator,
	}
	if err := schedule.Validate(); err != nil {
		return Pool{}, err
	}
	if params.Asset == "" || params.Authority == "" {
		return Pool{}, fmt.Errorf("%w: pool asset and authority are required", ErrInvalidCommand)
	}
	next, err := fixedpoint.AddSeconds(params.StartTime, params.Period)
	if err != nil {
		return Pool{}, err
	}
	schedule.NextChangeTime = next

	return Pool{
		Asset:             params.Asset,
		Authority:         params.Authority,
		FeeRecipient:      params.FeeRecipient,
		StartTime:         params.StartTime,
		UnbondingDuration: params.UnbondingDuration,
		LastRewardTime:    params.StartTime,
		Emission:          schedule,
	}, nil
}

// Advance brings the accumulator up to now. Period boundaries crossed on the
// way are accrued at the emission in force before the boundary, then the
// emission decays. The pool is left untouched if any step fails.
func (p *Pool) Advance(now int64) error {
	if now <= p.LastRewardTime {
		return nil
	}

	next := *p
	for now >= next.Emission.NextChangeTime {
		if err := next.accrue(next.Emission.NextChangeTime); err != nil {
			return err
		}

		changeTime, err := fixedpoint.AddSeconds(next.Emission.NextChangeTime, next.Emission.Period)
		if err != nil {
			return fmt.Errorf("failed to move emission change time: %w", err)
		}
		emission, err := fixedpoint.MulDivUint64(
			next.Emission.CurrentEmission,
			next.Emission.DecayNumerator,
			next.Emission.DecayDenominator,
		)
		if err != nil {
			return fmt.Errorf("failed to decay emission: %w", err)
		}
		next.Emission.NextChangeTime = changeTime
		next.Emission.CurrentEmission = emission
	}

	if err := next.accrue(now); err != nil {
		return err
	}
	next.LastRewardTime = now

	*p = next
	return nil
}

// PreviewRewardPerShare returns the accumulator value Advance(now) would
// produce.
func (p Pool) PreviewRewardPerShare(now int64) (*uint256.Int, error) {
	if err := p.Advance(now); err != nil {
		return nil, err
	}
	return new(uint256.Int).Set(&p.RewardPerShare), nil
}

// accrue credits the interval [LastRewardTime, until) at the current emission.
func (p *Pool) accrue(until int64) error {
	if until <= p.LastRewardTime {
		return nil
	}
	elapsed := uint64(until - p.LastRewardTime)

	emitted := fixedpoint.NewPayout(p.Emission.CurrentEmission)
	if err := emitted.MulUint64(elapsed); err != nil {
		return fmt.Errorf("failed to compute emitted amount: %w", err)
	}
	if err := emitted.DivUint64(p.Emission.Period); err != nil {
		return fmt.Errorf("failed to compute emitted amount: %w", err)
	}
	if err := p.Emitted.Add(emitted); err != nil {
		return fmt.Errorf("failed to tally emitted amount: %w", err)
	}

	if p.TotalStake > 0 {
		numerator, err := fixedpoint.Mul(fixedpoint.RewardScale(), uint256.NewInt(p.Emission.CurrentEmission))
		if err != nil {
			return fmt.Errorf("failed to scale emission: %w", err)
		}
		denominator, err := fixedpoint.Mul(uint256.NewInt(p.Emission.Period), uint256.NewInt(p.TotalStake))
		if err != nil {
			return fmt.Errorf("failed to compute accrual denominator: %w", err)
		}
		increase, err := fixedpoint.MulDiv(numerator, uint256.NewInt(elapsed), denominator)
		if err != nil {
			return fmt.Errorf("failed to compute reward per share increase: %w", err)
		}
		rps, err := fixedpoint.Add(&p.RewardPerShare, increase)
		if err != nil {
			return fmt.Errorf("failed to accumulate reward per share: %w", err)
		}
		p.RewardPerShare.Set(rps)
	}

	p.LastRewardTime = until
	return nil
}

// HoldingValue is staked × rewardPerShare / SCALE.
func HoldingValue(staked uint64, rewardPerShare *uint256.Int) (uint64, error) {
	value, err := fixedpoint.MulDiv(uint256.NewInt(staked), rewardPerShare, fixedpoint.RewardScale())
	if err != nil {
		return 0, err
	}
	return fixedpoint.ToUint64(value)
}
