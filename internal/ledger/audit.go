package ledger

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/zoints/staking-ledger/internal/fixedpoint"
)

// EmissionAudit compares the pool's emitted tally with a replay of its
// emission schedule from the start time.
type EmissionAudit struct {
	Now             int64
	StartTime       int64
	CurrentEmission uint64
	NextChangeTime  int64
	RewardPerShare  *uint256.Int
	// MaxPayout is the most the schedule could have released by Now.
	MaxPayout fixedpoint.Payout
	Emitted   fixedpoint.Payout
}

// Consistent reports whether the pool never released more than its
// schedule allows. Accruing in several intervals truncates each interval,
// so Emitted may trail MaxPayout by sub-unit dust.
func (a EmissionAudit) Consistent() bool {
	return !a.Emitted.Raw().Gt(a.MaxPayout.Raw())
}

func AuditEmission(pool Pool, now int64) (EmissionAudit, error) {
	replay, err := NewPool(PoolParams{
		Asset:            pool.Asset,
		Authority:        pool.Authority,
		StartTime:        pool.StartTime,
		InitialEmission:  pool.Emission.InitialEmission,
		Period:           pool.Emission.Period,
		DecayNumerator:   pool.Emission.DecayNumerator,
		DecayDenominator: pool.Emission.DecayDenominator,
	})
	if err != nil {
		return EmissionAudit{}, fmt.Errorf("failed to rebuild schedule: %w", err)
	}
	if err := replay.Advance(now); err != nil {
		return EmissionAudit{}, fmt.Errorf("failed to replay schedule: %w", err)
	}
	if err := pool.Advance(now); err != nil {
		return EmissionAudit{}, fmt.Errorf("failed to advance pool: %w", err)
	}

	return EmissionAudit{
		Now:             now,
		StartTime:       pool.StartTime,
		CurrentEmission: pool.Emission.CurrentEmission,
		NextChangeTime:  pool.Emission.NextChangeTime,
		RewardPerShare:  new(uint256.Int).Set(&pool.RewardPerShare),
		MaxPayout:       replay.Emitted,
		Emitted:         pool.Emitted,
	}, nil
}

// BeneficiaryAudit is the step by step computation of what a beneficiary
// could claim at Now.
type BeneficiaryAudit struct {
	Authority      string
	Now            int64
	Staked         uint64
	RewardPerShare *uint256.Int
	HoldingValue   uint64
	RewardDebt     uint64
	Pending        uint64
	Holding        uint64
	Harvestable    uint64
}

func AuditBeneficiary(beneficiary Beneficiary, pool Pool, now int64) (BeneficiaryAudit, error) {
	rewardPerShare, err := pool.PreviewRewardPerShare(now)
	if err != nil {
		return BeneficiaryAudit{}, fmt.Errorf("failed to preview reward per share: %w", err)
	}
	value, err := HoldingValue(beneficiary.Staked, rewardPerShare)
	if err != nil {
		return BeneficiaryAudit{}, fmt.Errorf("failed to compute holding value: %w", err)
	}
	pending, err := beneficiary.pending(rewardPerShare)
	if err != nil {
		return BeneficiaryAudit{}, err
	}
	harvestable, err := fixedpoint.AddUint64(beneficiary.Holding, pending)
	if err != nil {
		return BeneficiaryAudit{}, err
	}

	return BeneficiaryAudit{
		Authority:      beneficiary.Authority,
		Now:            now,
		Staked:         beneficiary.Staked,
		RewardPerShare: rewardPerShare,
		HoldingValue:   value,
		RewardDebt:     beneficiary.RewardDebt,
		Pending:        pending,
		Holding:        beneficiary.Holding,
		Harvestable:    harvestable,
	}, nil
}
