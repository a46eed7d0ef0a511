package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/zoints/staking-ledger/internal/ledger"
	"github.com/zoints/staking-ledger/internal/types"
)

type ShareConfig struct {
	Role   string `mapstructure:"role"`
	Weight uint64 `mapstructure:"weight"`
}

// StakingConfig holds the ledger constants. Split weights are in basis
// points and must add up to 10000. An empty split means the default
// 45/45/5/5 policy.
type StakingConfig struct {
	MinimumStake      uint64        `mapstructure:"minimum-stake"`
	UnbondingDuration time.Duration `mapstructure:"unbonding-duration"`
	InitialEmission   uint64        `mapstructure:"initial-emission"`
	EmissionPeriod    time.Duration `mapstructure:"emission-period"`
	DecayNumerator    uint64        `mapstructure:"decay-numerator"`
	DecayDenominator  uint64        `mapstructure:"decay-denominator"`
	Split             []ShareConfig `mapstructure:"split"`
	PrimaryRole       string        `mapstructure:"primary-role"`
}

func (cfg *StakingConfig) Validate() error {
	if cfg.MinimumStake == 0 {
		return errors.New("minimum-stake must be positive")
	}

	if cfg.UnbondingDuration < time.Second {
		return errors.New("unbonding-duration must be at least one second")
	}

	if cfg.EmissionPeriod < time.Second {
		return errors.New("emission-period must be at least one second")
	}

	if cfg.DecayDenominator == 0 {
		return errors.New("decay-denominator must be positive")
	}

	if cfg.DecayNumerator > cfg.DecayDenominator {
		return errors.New("decay-numerator must not exceed decay-denominator")
	}

	if err := cfg.SplitPolicy().Validate(); err != nil {
		return fmt.Errorf("invalid split: %w", err)
	}

	return nil
}

func (cfg *StakingConfig) SplitPolicy() ledger.SplitPolicy {
	if len(cfg.Split) == 0 {
		return ledger.DefaultSplitPolicy()
	}

	policy := ledger.SplitPolicy{
		Primary: types.RoleStaker,
	}
	if cfg.PrimaryRole != "" {
		policy.Primary = types.BeneficiaryRole(cfg.PrimaryRole)
	}
	for _, share := range cfg.Split {
		policy.Shares = append(policy.Shares, ledger.ShareWeight{
			Role:   types.BeneficiaryRole(share.Role),
			Weight: share.Weight,
		})
	}
	return policy
}

func (cfg *StakingConfig) ToParams() ledger.Params {
	return ledger.Params{
		MinimumStake:      cfg.MinimumStake,
		UnbondingDuration: uint64(cfg.UnbondingDuration / time.Second),
		Split:             cfg.SplitPolicy(),
		Emission: ledger.EmissionParams{
			InitialEmission:  cfg.InitialEmission,
			Period:           uint64(cfg.EmissionPeriod / time.Second),
			DecayNumerator:   cfg.DecayNumerator,
			DecayDenominator: cfg.DecayDenominator,
		},
	}
}
