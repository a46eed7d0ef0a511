package ledger

import (
	"fmt"

	"github.com/zoints/staking-ledger/internal/types"
)

// Command is one of the ledger operations. The set is closed: only types in
// this package implement it.
type Command interface {
	Type() types.CommandType
	command()
}

type InitializePool struct {
	Asset             string
	Authority         string
	FeeRecipient      string
	StartTime         int64
	UnbondingDuration uint64
}

type RegisterEndpoint struct {
	ID        string
	Owner     string
	Primary   string
	Secondary string
}

type InitializeStake struct {
	Endpoint string
	Staker   string
}

type Stake struct {
	Endpoint string
	Staker   string
	Amount   uint64
}

type Unstake struct {
	Endpoint string
	Staker   string
	Amount   uint64
}

type Harvest struct {
	Endpoint string
	Staker   string
}

type WithdrawUnbond struct {
	Endpoint string
	Staker   string
}

type ClaimReward struct {
	Authority string
}

func (InitializePool) Type() types.CommandType   { return types.CommandInitializePool }
func (RegisterEndpoint) Type() types.CommandType { return types.CommandRegisterEndpoint }
func (InitializeStake) Type() types.CommandType  { return types.CommandInitializeStake }
func (Stake) Type() types.CommandType            { return types.CommandStake }
func (Unstake) Type() types.CommandType          { return types.CommandUnstake }
func (Harvest) Type() types.CommandType          { return types.CommandHarvest }
func (WithdrawUnbond) Type() types.CommandType   { return types.CommandWithdrawUnbond }
func (ClaimReward) Type() types.CommandType      { return types.CommandClaim }

func (InitializePool) command()   {}
func (RegisterEndpoint) command() {}
func (InitializeStake) command()  {}
func (Stake) command()            {}
func (Unstake) command()          {}
func (Harvest) command()          {}
func (WithdrawUnbond) command()   {}
func (ClaimReward) command()      {}

// Dispatch runs cmd against state. The returned outcome holds the complete
// new state and must be persisted as a whole, or not at all.
func (s *Settler) Dispatch(cmd Command, state SettlementState, now int64) (Outcome, error) {
	switch c := cmd.(type) {
	case InitializePool:
		return s.initializePool(c, state, now)
	case RegisterEndpoint:
		return registerEndpoint(c, state, now)
	case InitializeStake:
		return initializeStake(c, state, now)
	case Stake:
		if err := matchPosition(state, c.Endpoint, c.Staker); err != nil {
			return Outcome{}, err
		}
		return s.Deposit(state, c.Amount, now)
	case Unstake:
		if err := matchPosition(state, c.Endpoint, c.Staker); err != nil {
			return Outcome{}, err
		}
		return s.Unstake(state, c.Amount, now)
	case Harvest:
		if err := matchPosition(state, c.Endpoint, c.Staker); err != nil {
			return Outcome{}, err
		}
		return s.Harvest(state, now)
	case WithdrawUnbond:
		if err := matchPosition(state, c.Endpoint, c.Staker); err != nil {
			return Outcome{}, err
		}
		return withdrawUnbond(state, now)
	case ClaimReward:
		return claim(c, state, now)
	default:
		return Outcome{}, fmt.Errorf("%w: unsupported command %T", ErrInvalidCommand, cmd)
	}
}

func (s *Settler) initializePool(c InitializePool, state SettlementState, now int64) (Outcome, error) {
	if state.Pool != nil {
		return Outcome{}, fmt.Errorf("%w: pool", ErrAlreadyInitialized)
	}
	startTime := c.StartTime
	if startTime == 0 {
		startTime = now
	}
	unbonding := c.UnbondingDuration
	if unbonding == 0 {
		unbonding = s.params.UnbondingDuration
	}

	pool, err := NewPool(PoolParams{
		Asset:             c.Asset,
		Authority:         c.Authority,
		FeeRecipient:      c.FeeRecipient,
		StartTime:         startTime,
		UnbondingDuration: unbonding,
		InitialEmission:   s.params.Emission.InitialEmission,
		Period:            s.params.Emission.Period,
		DecayNumerator:    s.params.Emission.DecayNumerator,
		DecayDenominator:  s.params.Emission.DecayDenominator,
	})
	if err != nil {
		return Outcome{}, err
	}

	st := state.clone()
	st.Pool = &pool
	return Outcome{State: st}, nil
}

func registerEndpoint(c RegisterEndpoint, state SettlementState, now int64) (Outcome, error) {
	if state.Pool == nil {
		return Outcome{}, ErrPoolNotInitialized
	}
	if state.Endpoint != nil {
		return Outcome{}, fmt.Errorf("%w: endpoint %s", ErrAlreadyInitialized, c.ID)
	}
	if c.ID == "" || c.Owner == "" {
		return Outcome{}, fmt.Errorf("%w: endpoint id and owner are required", ErrInvalidCommand)
	}
	primary := c.Primary
	if primary == "" {
		primary = c.Owner
	}

	st := state.clone()
	st.Endpoint = &Endpoint{
		ID:           c.ID,
		Owner:        c.Owner,
		CreationTime: now,
		Primary:      primary,
		Secondary:    c.Secondary,
	}
	return Outcome{State: st}, nil
}

func initializeStake(c InitializeStake, state SettlementState, now int64) (Outcome, error) {
	if state.Pool == nil {
		return Outcome{}, ErrPoolNotInitialized
	}
	if state.Endpoint == nil || state.Endpoint.ID != c.Endpoint {
		return Outcome{}, fmt.Errorf("%w: %s", ErrEndpointNotFound, c.Endpoint)
	}
	if state.Position != nil {
		return Outcome{}, fmt.Errorf("%w: position %s/%s", ErrAlreadyInitialized, c.Endpoint, c.Staker)
	}
	if c.Staker == "" {
		return Outcome{}, fmt.Errorf("%w: staker is required", ErrInvalidCommand)
	}

	st := state.clone()
	position := NewStakePosition(c.Endpoint, c.Staker, now)
	st.Position = &position
	return Outcome{State: st}, nil
}

func withdrawUnbond(state SettlementState, now int64) (Outcome, error) {
	if state.Pool == nil {
		return Outcome{}, ErrPoolNotInitialized
	}
	if state.Position == nil {
		return Outcome{}, ErrPositionNotInitialized
	}

	position, amount, err := WithdrawUnbonded(*state.Position, now)
	if err != nil {
		return Outcome{}, err
	}

	st := state.clone()
	st.Position = &position
	return Outcome{
		State: st,
		Directives: []Directive{{
			Kind:      types.DirectiveDisburseUnbonded,
			Principal: position.Staker,
			Asset:     st.Pool.Asset,
			Amount:    amount,
		}},
	}, nil
}

func claim(c ClaimReward, state SettlementState, now int64) (Outcome, error) {
	if state.Pool == nil {
		return Outcome{}, ErrPoolNotInitialized
	}
	beneficiary, ok := state.Beneficiaries[c.Authority]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownBeneficiary, c.Authority)
	}

	beneficiary, pool, amount, err := Claim(beneficiary, *state.Pool, now)
	if err != nil {
		return Outcome{}, err
	}

	st := state.clone()
	st.Pool = &pool
	st.Beneficiaries[c.Authority] = beneficiary

	var directives []Directive
	if amount > 0 {
		directives = append(directives, Directive{
			Kind:      types.DirectiveDisburseReward,
			Principal: c.Authority,
			Asset:     pool.Asset,
			Amount:    amount,
		})
	}
	return Outcome{State: st, Directives: directives}, nil
}

func matchPosition(state SettlementState, endpoint, staker string) error {
	if state.Position == nil {
		return fmt.Errorf("%w: %s/%s", ErrPositionNotInitialized, endpoint, staker)
	}
	if state.Position.Endpoint != endpoint || state.Position.Staker != staker {
		return fmt.Errorf("%w: loaded position %s/%s does not match %s/%s", ErrInvalidCommand,
			state.Position.Endpoint, state.Position.Staker, endpoint, staker)
	}
	return nil
}
