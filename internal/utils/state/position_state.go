package state

import (
	"slices"

	"github.com/zoints/staking-ledger/internal/types"
)

// positionStateChangeMap maps the current state of a stake position to the
// states a single settlement may leave it in
var positionStateChangeMap = map[types.PositionState][]types.PositionState{
	types.StateUninitialized: {
		types.StateActive,
	},
	types.StateActive: {
		types.StateActive,
		types.StatePendingWithdrawal,
	},
	types.StatePendingWithdrawal: {
		types.StateActive,
		types.StatePendingWithdrawal,
	},
}

func IsQualifiedStateForPositionStateChange(
	currentState types.PositionState, newState types.PositionState,
) bool {
	qualifiedStates, ok := positionStateChangeMap[currentState]
	if !ok {
		return false
	}
	return slices.Contains(qualifiedStates, newState)
}
