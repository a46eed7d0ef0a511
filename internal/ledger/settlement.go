package ledger

import (
	"fmt"
	"maps"

	"github.com/zoints/staking-ledger/internal/fixedpoint"
	"github.com/zoints/staking-ledger/internal/types"
)

type EmissionParams struct {
	InitialEmission  uint64
	Period           uint64
	DecayNumerator   uint64
	DecayDenominator uint64
}

// Params are the deployment constants every settlement runs with.
type Params struct {
	MinimumStake      uint64
	UnbondingDuration uint64
	Split             SplitPolicy
	Emission          EmissionParams
}

func DefaultParams() Params {
	return Params{
		MinimumStake:      DefaultMinimumStake,
		UnbondingDuration: DefaultUnbondingDuration,
		Split:             DefaultSplitPolicy(),
		Emission: EmissionParams{
			InitialEmission:  900_000_000_000,
			Period:           SecondsPerPeriod,
			DecayNumerator:   3,
			DecayDenominator: 4,
		},
	}
}

// SettlementState is everything a single settlement reads and writes.
// Entities that do not exist yet are nil. Beneficiaries are keyed by
// authority; missing ones are created on first reference.
type SettlementState struct {
	Pool          *Pool
	Endpoint      *Endpoint
	Position      *StakePosition
	Beneficiaries map[string]Beneficiary
	// StakerBalance is the staker's spendable balance of the pool asset.
	StakerBalance uint64
}

func (s SettlementState) clone() SettlementState {
	c := SettlementState{StakerBalance: s.StakerBalance}
	if s.Pool != nil {
		pool := *s.Pool
		c.Pool = &pool
	}
	if s.Endpoint != nil {
		endpoint := *s.Endpoint
		c.Endpoint = &endpoint
	}
	if s.Position != nil {
		position := *s.Position
		c.Position = &position
	}
	c.Beneficiaries = maps.Clone(s.Beneficiaries)
	if c.Beneficiaries == nil {
		c.Beneficiaries = make(map[string]Beneficiary)
	}
	return c
}

// Directive is a transfer the settlement requires. Directives of one outcome
// must be executed in order.
type Directive struct {
	Kind      types.DirectiveKind
	Principal string
	Asset     string
	Amount    uint64
}

type Outcome struct {
	State      SettlementState
	Directives []Directive
}

type Settler struct {
	params Params
}

func NewSettler(params Params) (*Settler, error) {
	if err := params.Split.Validate(); err != nil {
		return nil, err
	}
	if params.MinimumStake == 0 {
		return nil, fmt.Errorf("%w: minimum stake must be positive", ErrInvalidCommand)
	}
	return &Settler{params: params}, nil
}

func (s *Settler) Params() Params {
	return s.params
}

// Deposit adds amount to the position. The staker's realized reward is paid
// out before the stake is collected, so it may be re-staked.
func (s *Settler) Deposit(state SettlementState, amount uint64, now int64) (Outcome, error) {
	if amount == 0 {
		return Outcome{}, fmt.Errorf("%w: deposit amount must be positive", ErrInvalidAmount)
	}
	if err := requireStakeState(state); err != nil {
		return Outcome{}, err
	}

	oldStake := state.Position.TotalStake
	newStake, err := fixedpoint.AddUint64(oldStake, amount)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to grow stake: %w", err)
	}
	if newStake < s.params.MinimumStake {
		return Outcome{}, fmt.Errorf("%w: %d < %d", ErrBelowMinimumStake, newStake, s.params.MinimumStake)
	}

	st := state.clone()
	if err := st.Pool.Advance(now); err != nil {
		return Outcome{}, fmt.Errorf("failed to advance pool: %w", err)
	}
	if err := s.rebalance(&st, oldStake, newStake); err != nil {
		return Outcome{}, err
	}

	staker := st.Beneficiaries[st.Position.Staker]
	spendable, err := fixedpoint.AddUint64(st.StakerBalance, staker.Holding)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to compute spendable balance: %w", err)
	}
	if spendable < amount {
		return Outcome{}, fmt.Errorf("%w: have %d, need %d", ErrInsufficientBalance, spendable, amount)
	}

	directives := s.disburseHolding(&st, st.Position.Staker)
	directives = append(directives, Directive{
		Kind:      types.DirectiveCollectStake,
		Principal: st.Position.Staker,
		Asset:     st.Pool.Asset,
		Amount:    amount,
	})

	endpointStake, err := fixedpoint.AddUint64(st.Endpoint.TotalStake, amount)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to grow endpoint stake: %w", err)
	}
	st.Endpoint.TotalStake = endpointStake
	st.Position.TotalStake = newStake
	st.StakerBalance = spendable - amount

	return Outcome{State: st, Directives: directives}, nil
}

// Unstake moves amount from the position into its unbonding bucket. The
// bucket's ready time restarts for the whole bucket.
func (s *Settler) Unstake(state SettlementState, amount uint64, now int64) (Outcome, error) {
	if amount == 0 {
		return Outcome{}, fmt.Errorf("%w: unstake amount must be positive", ErrInvalidAmount)
	}
	if err := requireStakeState(state); err != nil {
		return Outcome{}, err
	}

	oldStake := state.Position.TotalStake
	if amount > oldStake {
		return Outcome{}, fmt.Errorf("%w: %d > %d", ErrWithdrawingTooMuch, amount, oldStake)
	}
	newStake := oldStake - amount
	if newStake > 0 && newStake < s.params.MinimumStake {
		return Outcome{}, fmt.Errorf("%w: remaining %d < %d", ErrBelowMinimumStake, newStake, s.params.MinimumStake)
	}

	st := state.clone()
	if err := st.Pool.Advance(now); err != nil {
		return Outcome{}, fmt.Errorf("failed to advance pool: %w", err)
	}
	if err := s.rebalance(&st, oldStake, newStake); err != nil {
		return Outcome{}, err
	}
	directives := s.disburseHolding(&st, st.Position.Staker)

	if err := st.Position.beginUnbonding(amount, st.Pool.UnbondingDuration, now); err != nil {
		return Outcome{}, err
	}
	endpointStake, err := fixedpoint.SubUint64(st.Endpoint.TotalStake, amount)
	if err != nil {
		return Outcome{}, fmt.Errorf("failed to shrink endpoint stake: %w", err)
	}
	st.Endpoint.TotalStake = endpointStake
	st.Position.TotalStake = newStake

	return Outcome{State: st, Directives: directives}, nil
}

// Harvest settles the position without changing its stake and pays out the
// staker's holding.
func (s *Settler) Harvest(state SettlementState, now int64) (Outcome, error) {
	if err := requireStakeState(state); err != nil {
		return Outcome{}, err
	}

	st := state.clone()
	if err := st.Pool.Advance(now); err != nil {
		return Outcome{}, fmt.Errorf("failed to advance pool: %w", err)
	}
	stake := st.Position.TotalStake
	if err := s.rebalance(&st, stake, stake); err != nil {
		return Outcome{}, err
	}
	directives := s.disburseHolding(&st, st.Position.Staker)

	return Outcome{State: st, Directives: directives}, nil
}

// Claim realizes and pays out everything the beneficiary has accrued. It
// returns the updated beneficiary and pool and the amount to disburse.
func Claim(beneficiary Beneficiary, pool Pool, now int64) (Beneficiary, Pool, uint64, error) {
	if err := pool.Advance(now); err != nil {
		return beneficiary, pool, 0, fmt.Errorf("failed to advance pool: %w", err)
	}
	if _, err := beneficiary.Settle(beneficiary.Staked, &pool.RewardPerShare); err != nil {
		return beneficiary, pool, 0, err
	}
	return beneficiary, pool, beneficiary.TakeHolding(), nil
}

// rebalance re-splits the position from oldStake to newStake and settles
// every beneficiary the split maps to. A principal holding several roles is
// settled once with the sum of its parts.
func (s *Settler) rebalance(st *SettlementState, oldStake, newStake uint64) error {
	principals, err := s.principals(st)
	if err != nil {
		return err
	}
	oldShares, err := s.split(oldStake, principals)
	if err != nil {
		return fmt.Errorf("failed to split stake: %w", err)
	}
	newShares, err := s.split(newStake, principals)
	if err != nil {
		return fmt.Errorf("failed to split stake: %w", err)
	}

	var order []string
	oldBy := make(map[string]uint64)
	newBy := make(map[string]uint64)
	for _, share := range s.params.Split.Shares {
		authority, ok := principals[share.Role]
		if !ok {
			continue
		}
		if _, seen := oldBy[authority]; !seen {
			order = append(order, authority)
		}
		oldBy[authority] += oldShares[share.Role]
		newBy[authority] += newShares[share.Role]
	}

	rewardPerShare := &st.Pool.RewardPerShare
	for _, authority := range order {
		beneficiary, ok := st.Beneficiaries[authority]
		if !ok {
			beneficiary = NewBeneficiary(authority)
		}
		staked, err := fixedpoint.AddUint64(beneficiary.Staked, newBy[authority])
		if err != nil {
			return fmt.Errorf("failed to grow stake of %s: %w", authority, err)
		}
		staked, err = fixedpoint.SubUint64(staked, oldBy[authority])
		if err != nil {
			return fmt.Errorf("stake of %s is below its share: %w", authority, err)
		}
		if _, err := beneficiary.Settle(staked, rewardPerShare); err != nil {
			return fmt.Errorf("failed to settle %s: %w", authority, err)
		}
		st.Beneficiaries[authority] = beneficiary
	}

	total, err := fixedpoint.AddUint64(st.Pool.TotalStake, newStake)
	if err != nil {
		return fmt.Errorf("failed to grow pool stake: %w", err)
	}
	total, err = fixedpoint.SubUint64(total, oldStake)
	if err != nil {
		return fmt.Errorf("pool stake is below position stake: %w", err)
	}
	st.Pool.TotalStake = total
	return nil
}

// split applies the policy and folds the parts of roles without a principal
// into the primary role.
func (s *Settler) split(amount uint64, principals map[types.BeneficiaryRole]string) (Shares, error) {
	shares, err := s.params.Split.Split(amount)
	if err != nil {
		return nil, err
	}
	for _, share := range s.params.Split.Shares {
		if _, ok := principals[share.Role]; !ok {
			shares.Fold(s.params.Split.Primary, share.Role)
		}
	}
	return shares, nil
}

func (s *Settler) principals(st *SettlementState) (map[types.BeneficiaryRole]string, error) {
	candidates := map[types.BeneficiaryRole]string{
		types.RoleStaker:    st.Position.Staker,
		types.RolePrimary:   st.Endpoint.Primary,
		types.RoleSecondary: st.Endpoint.Secondary,
		types.RoleFee:       st.Pool.FeeRecipient,
	}
	principals := make(map[types.BeneficiaryRole]string, len(candidates))
	for role, authority := range candidates {
		if authority != "" {
			principals[role] = authority
		}
	}
	if _, ok := principals[s.params.Split.Primary]; !ok {
		return nil, fmt.Errorf("%w: no principal for primary role %s", ErrInvalidSplitPolicy, s.params.Split.Primary)
	}
	return principals, nil
}

func (s *Settler) disburseHolding(st *SettlementState, authority string) []Directive {
	beneficiary, ok := st.Beneficiaries[authority]
	if !ok {
		return nil
	}
	amount := beneficiary.TakeHolding()
	st.Beneficiaries[authority] = beneficiary
	if amount == 0 {
		return nil
	}
	return []Directive{{
		Kind:      types.DirectiveDisburseReward,
		Principal: authority,
		Asset:     st.Pool.Asset,
		Amount:    amount,
	}}
}

func requireStakeState(state SettlementState) error {
	if state.Pool == nil {
		return ErrPoolNotInitialized
	}
	if state.Endpoint == nil {
		return ErrEndpointNotFound
	}
	if state.Position == nil {
		return ErrPositionNotInitialized
	}
	if state.Position.Endpoint != state.Endpoint.ID {
		return fmt.Errorf("%w: position endpoint %s does not match %s",
			ErrInvalidCommand, state.Position.Endpoint, state.Endpoint.ID)
	}
	return nil
}
