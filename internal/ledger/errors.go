package ledger

import (
	"errors"

	"github.com/zoints/staking-ledger/internal/fixedpoint"
)

var (
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrBelowMinimumStake   = errors.New("stake below minimum")
	ErrWithdrawingTooMuch  = errors.New("withdrawing more than staked")
	ErrNothingToWithdraw   = errors.New("nothing to withdraw")
	ErrUnbondingNotElapsed = errors.New("unbonding period has not elapsed")
	ErrArithmeticOverflow  = fixedpoint.ErrOverflow

	// ErrStaleAccumulator means a beneficiary was settled against a reward per
	// share lower than the one its debt was taken at.
	ErrStaleAccumulator       = errors.New("reward accumulator is stale")
	ErrInvalidSplitPolicy     = errors.New("invalid split policy")
	ErrPositionNotInitialized = errors.New("stake position not initialized")
	ErrUnknownBeneficiary     = errors.New("unknown beneficiary")
	ErrInvalidAmount          = errors.New("invalid amount")

	ErrPoolNotInitialized = errors.New("pool not initialized")
	ErrEndpointNotFound   = errors.New("endpoint not found")
	ErrAlreadyInitialized = errors.New("already initialized")
	ErrInvalidCommand     = errors.New("invalid command")

	// ErrAccountNotAssociated means a principal has no account for the pool
	// asset to send or receive transfers with.
	ErrAccountNotAssociated = errors.New("account not associated with asset")
)

// IsValidationError reports whether err is caused by the command itself
// rather than by the ledger or the store.
func IsValidationError(err error) bool {
	for _, target := range []error{
		ErrInsufficientBalance,
		ErrBelowMinimumStake,
		ErrWithdrawingTooMuch,
		ErrNothingToWithdraw,
		ErrUnbondingNotElapsed,
		ErrInvalidAmount,
		ErrAlreadyInitialized,
		ErrInvalidCommand,
		ErrAccountNotAssociated,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFoundError reports whether err is caused by a missing ledger entity.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrPositionNotInitialized) ||
		errors.Is(err, ErrUnknownBeneficiary) ||
		errors.Is(err, ErrPoolNotInitialized) ||
		errors.Is(err, ErrEndpointNotFound)
}
