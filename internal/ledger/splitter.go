package ledger

import (
	"fmt"

	"github.com/zoints/staking-ledger/internal/fixedpoint"
	"github.com/zoints/staking-ledger/internal/types"
)

// TotalWeight is the sum of all share weights in a policy, in basis points.
const TotalWeight uint64 = 10_000

type ShareWeight struct {
	Role   types.BeneficiaryRole
	Weight uint64
}

// SplitPolicy fans a stake out to several beneficiary roles. The primary
// role absorbs all rounding dust.
type SplitPolicy struct {
	Shares  []ShareWeight
	Primary types.BeneficiaryRole
}

// Shares maps each role to its part of a split amount.
type Shares map[types.BeneficiaryRole]uint64

// DefaultSplitPolicy is staker 45%, primary 45%, secondary 5%, fee 5%.
func DefaultSplitPolicy() SplitPolicy {
	return SplitPolicy{
		Shares: []ShareWeight{
			{Role: types.RoleStaker, Weight: 4_500},
			{Role: types.RolePrimary, Weight: 4_500},
			{Role: types.RoleSecondary, Weight: 500},
			{Role: types.RoleFee, Weight: 500},
		},
		Primary: types.RoleStaker,
	}
}

// ThreeWaySplitPolicy is staker 47.5%, primary 47.5%, secondary 5%.
func ThreeWaySplitPolicy() SplitPolicy {
	return SplitPolicy{
		Shares: []ShareWeight{
			{Role: types.RoleStaker, Weight: 4_750},
			{Role: types.RolePrimary, Weight: 4_750},
			{Role: types.RoleSecondary, Weight: 500},
		},
		Primary: types.RoleStaker,
	}
}

func (p SplitPolicy) Validate() error {
	if len(p.Shares) == 0 {
		return fmt.Errorf("%w: no shares", ErrInvalidSplitPolicy)
	}

	seen := make(map[types.BeneficiaryRole]bool, len(p.Shares))
	var total uint64
	primaryWeight := uint64(0)
	for _, share := range p.Shares {
		if !share.Role.IsValid() {
			return fmt.Errorf("%w: unknown role %q", ErrInvalidSplitPolicy, share.Role)
		}
		if seen[share.Role] {
			return fmt.Errorf("%w: duplicate role %s", ErrInvalidSplitPolicy, share.Role)
		}
		seen[share.Role] = true
		if share.Weight > TotalWeight {
			return fmt.Errorf("%w: weight %d of %s exceeds %d", ErrInvalidSplitPolicy, share.Weight, share.Role, TotalWeight)
		}
		total += share.Weight
		if share.Role == p.Primary {
			primaryWeight = share.Weight
		}
	}

	if total != TotalWeight {
		return fmt.Errorf("%w: weights sum to %d, expected %d", ErrInvalidSplitPolicy, total, TotalWeight)
	}
	if !seen[types.RoleStaker] {
		return fmt.Errorf("%w: staker share is required", ErrInvalidSplitPolicy)
	}
	if !seen[p.Primary] {
		return fmt.Errorf("%w: primary role %s has no share", ErrInvalidSplitPolicy, p.Primary)
	}
	if primaryWeight == 0 {
		return fmt.Errorf("%w: primary role %s has zero weight", ErrInvalidSplitPolicy, p.Primary)
	}
	return nil
}

// Split divides amount between the policy's roles. Non-primary shares are
// peeled off the running remainder in reverse declaration order, each
// proportional to its weight among the weights not yet peeled, and the
// primary role receives what is left. The parts always sum to amount and
// each part is non-decreasing in amount.
func (p SplitPolicy) Split(amount uint64) (Shares, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	shares := make(Shares, len(p.Shares))
	remaining := amount
	remainingWeight := TotalWeight
	for i := len(p.Shares) - 1; i >= 0; i-- {
		share := p.Shares[i]
		if share.Role == p.Primary {
			continue
		}
		part, err := fixedpoint.MulDivUint64(remaining, share.Weight, remainingWeight)
		if err != nil {
			return nil, err
		}
		shares[share.Role] = part
		remaining -= part
		remainingWeight -= share.Weight
	}
	shares[p.Primary] = remaining

	return shares, nil
}

// Fold moves the share of role from into role into. It is used when no
// principal exists for a role.
func (s Shares) Fold(into, from types.BeneficiaryRole) {
	if into == from {
		return
	}
	amount, ok := s[from]
	if !ok {
		return
	}
	s[into] += amount
	delete(s, from)
}

// Total is the sum of all parts.
func (s Shares) Total() uint64 {
	var total uint64
	for _, v := range s {
		total += v
	}
	return total
}
