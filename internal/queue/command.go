package queue

import (
	"encoding/json"
	"fmt"

	"github.com/zoints/staking-ledger/internal/ledger"
	"github.com/zoints/staking-ledger/internal/types"
	"github.com/zoints/staking-ledger/pkg"
)

// CommandMessage is the wire form of a ledger command. Only the fields of
// the given Type are read.
type CommandMessage struct {
	ID   string            `json:"id"`
	Type types.CommandType `json:"type"`

	Asset             string `json:"asset,omitempty"`
	Authority         string `json:"authority,omitempty"`
	FeeRecipient      string `json:"fee_recipient,omitempty"`
	StartTime         int64  `json:"start_time,omitempty"`
	UnbondingDuration uint64 `json:"unbonding_duration,omitempty"`

	Endpoint  string `json:"endpoint,omitempty"`
	Owner     string `json:"owner,omitempty"`
	Primary   string `json:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty"`
	Staker    string `json:"staker,omitempty"`

	// Amount is signed for STAKE: positive deposits, negative unstakes and
	// zero harvests.
	Amount int64 `json:"amount"`
}

func DecodeCommandMessage(body []byte) (*CommandMessage, error) {
	var msg CommandMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("%w: malformed command message: %w", ledger.ErrInvalidCommand, err)
	}
	if msg.ID == "" {
		return nil, fmt.Errorf("%w: command id is required", ledger.ErrInvalidCommand)
	}
	return &msg, nil
}

// ToCommand validates the message and converts it into a ledger command.
func (m *CommandMessage) ToCommand() (ledger.Command, error) {
	switch m.Type {
	case types.CommandInitializePool:
		if err := validatePrincipals(m.Asset, m.Authority); err != nil {
			return nil, err
		}
		if m.FeeRecipient != "" {
			if err := validatePrincipals(m.FeeRecipient); err != nil {
				return nil, err
			}
		}
		return ledger.InitializePool{
			Asset:             m.Asset,
			Authority:         m.Authority,
			FeeRecipient:      m.FeeRecipient,
			StartTime:         m.StartTime,
			UnbondingDuration: m.UnbondingDuration,
		}, nil
	case types.CommandRegisterEndpoint:
		if err := validatePrincipals(m.Endpoint, m.Owner); err != nil {
			return nil, err
		}
		for _, optional := range []string{m.Primary, m.Secondary} {
			if optional == "" {
				continue
			}
			if err := validatePrincipals(optional); err != nil {
				return nil, err
			}
		}
		return ledger.RegisterEndpoint{
			ID:        m.Endpoint,
			Owner:     m.Owner,
			Primary:   m.Primary,
			Secondary: m.Secondary,
		}, nil
	case types.CommandClaim:
		if err := validatePrincipals(m.Authority); err != nil {
			return nil, err
		}
		return ledger.ClaimReward{Authority: m.Authority}, nil
	}

	if err := validatePrincipals(m.Endpoint, m.Staker); err != nil {
		return nil, err
	}

	switch m.Type {
	case types.CommandInitializeStake:
		return ledger.InitializeStake{Endpoint: m.Endpoint, Staker: m.Staker}, nil
	case types.CommandStake:
		switch {
		case m.Amount > 0:
			return ledger.Stake{Endpoint: m.Endpoint, Staker: m.Staker, Amount: uint64(m.Amount)}, nil
		case m.Amount < 0:
			return ledger.Unstake{Endpoint: m.Endpoint, Staker: m.Staker, Amount: magnitude(m.Amount)}, nil
		default:
			return ledger.Harvest{Endpoint: m.Endpoint, Staker: m.Staker}, nil
		}
	case types.CommandUnstake:
		if m.Amount <= 0 {
			return nil, fmt.Errorf("%w: unstake amount must be positive", ledger.ErrInvalidAmount)
		}
		return ledger.Unstake{Endpoint: m.Endpoint, Staker: m.Staker, Amount: uint64(m.Amount)}, nil
	case types.CommandHarvest:
		return ledger.Harvest{Endpoint: m.Endpoint, Staker: m.Staker}, nil
	case types.CommandWithdrawUnbond:
		return ledger.WithdrawUnbond{Endpoint: m.Endpoint, Staker: m.Staker}, nil
	default:
		return nil, fmt.Errorf("%w: unknown command type %q", ledger.ErrInvalidCommand, m.Type)
	}
}

// NewCommandMessage is the inverse of ToCommand. Stake, Unstake and Harvest
// keep their own types.
func NewCommandMessage(id string, cmd ledger.Command) (*CommandMessage, error) {
	msg := &CommandMessage{ID: id, Type: cmd.Type()}

	switch c := cmd.(type) {
	case ledger.InitializePool:
		msg.Asset = c.Asset
		msg.Authority = c.Authority
		msg.FeeRecipient = c.FeeRecipient
		msg.StartTime = c.StartTime
		msg.UnbondingDuration = c.UnbondingDuration
	case ledger.RegisterEndpoint:
		msg.Endpoint = c.ID
		msg.Owner = c.Owner
		msg.Primary = c.Primary
		msg.Secondary = c.Secondary
	case ledger.InitializeStake:
		msg.Endpoint, msg.Staker = c.Endpoint, c.Staker
	case ledger.Stake:
		msg.Endpoint, msg.Staker = c.Endpoint, c.Staker
		amount, err := signedAmount(c.Amount)
		if err != nil {
			return nil, err
		}
		msg.Amount = amount
	case ledger.Unstake:
		msg.Endpoint, msg.Staker = c.Endpoint, c.Staker
		amount, err := signedAmount(c.Amount)
		if err != nil {
			return nil, err
		}
		msg.Amount = amount
	case ledger.Harvest:
		msg.Endpoint, msg.Staker = c.Endpoint, c.Staker
	case ledger.WithdrawUnbond:
		msg.Endpoint, msg.Staker = c.Endpoint, c.Staker
	case ledger.ClaimReward:
		msg.Authority = c.Authority
	default:
		return nil, fmt.Errorf("%w: unsupported command %T", ledger.ErrInvalidCommand, cmd)
	}

	return msg, nil
}

func validatePrincipals(addresses ...string) error {
	for _, address := range addresses {
		if err := pkg.ValidatePrincipal(address); err != nil {
			return fmt.Errorf("%w: %w", ledger.ErrInvalidCommand, err)
		}
	}
	return nil
}

// magnitude returns |v| for negative v without overflowing on MinInt64.
func magnitude(v int64) uint64 {
	return uint64(-(v + 1)) + 1
}

func signedAmount(amount uint64) (int64, error) {
	if amount > 1<<63-1 {
		return 0, fmt.Errorf("%w: amount %d does not fit a message", ledger.ErrInvalidAmount, amount)
	}
	return int64(amount), nil
}
