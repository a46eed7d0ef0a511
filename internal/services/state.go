package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/zoints/staking-ledger/internal/db"
	"github.com/zoints/staking-ledger/internal/db/model"
	"github.com/zoints/staking-ledger/internal/ledger"
	"github.com/zoints/staking-ledger/internal/types"
	"github.com/zoints/staking-ledger/internal/utils"
	stateutils "github.com/zoints/staking-ledger/internal/utils/state"
)

// commandTarget names the entities a command reads.
type commandTarget struct {
	endpoint  string
	staker    string
	authority string
}

func targetOf(cmd ledger.Command) commandTarget {
	switch c := cmd.(type) {
	case ledger.RegisterEndpoint:
		return commandTarget{endpoint: c.ID}
	case ledger.InitializeStake:
		return commandTarget{endpoint: c.Endpoint, staker: c.Staker}
	case ledger.Stake:
		return commandTarget{endpoint: c.Endpoint, staker: c.Staker}
	case ledger.Unstake:
		return commandTarget{endpoint: c.Endpoint, staker: c.Staker}
	case ledger.Harvest:
		return commandTarget{endpoint: c.Endpoint, staker: c.Staker}
	case ledger.WithdrawUnbond:
		return commandTarget{endpoint: c.Endpoint, staker: c.Staker}
	case ledger.ClaimReward:
		return commandTarget{authority: c.Authority}
	default:
		return commandTarget{}
	}
}

// loadState reads everything cmd may settle. Entities that do not exist are
// left nil for the ledger to reject or create.
func (s *Service) loadState(ctx context.Context, cmd ledger.Command) (ledger.SettlementState, *types.Error) {
	state := ledger.SettlementState{Beneficiaries: make(map[string]ledger.Beneficiary)}
	target := targetOf(cmd)

	poolDoc, err := s.db.GetPool(ctx)
	if err != nil && !db.IsNotFoundError(err) {
		return state, storeError("pool", err)
	}
	if poolDoc != nil {
		pool, err := poolDoc.ToPool()
		if err != nil {
			return state, types.NewInternalServiceError(err)
		}
		state.Pool = pool
	}

	if target.endpoint != "" {
		endpointDoc, err := s.db.GetEndpoint(ctx, target.endpoint)
		if err != nil && !db.IsNotFoundError(err) {
			return state, storeError("endpoint", err)
		}
		if endpointDoc != nil {
			state.Endpoint = endpointDoc.ToEndpoint()
		}
	}

	if target.endpoint != "" && target.staker != "" {
		positionDoc, err := s.db.GetStakePosition(ctx, target.endpoint, target.staker)
		if err != nil && !db.IsNotFoundError(err) {
			return state, storeError("stake position", err)
		}
		if positionDoc != nil {
			state.Position = positionDoc.ToStakePosition()
		}
	}

	authorities := []string{target.authority, target.staker}
	if state.Endpoint != nil {
		authorities = append(authorities, state.Endpoint.Primary, state.Endpoint.Secondary)
	}
	if state.Pool != nil {
		authorities = append(authorities, state.Pool.FeeRecipient)
	}
	authorities = utils.Dedup(nonEmpty(authorities))

	beneficiaryDocs, err := s.db.GetBeneficiaries(ctx, authorities)
	if err != nil {
		return state, storeError("beneficiaries", err)
	}
	for _, doc := range beneficiaryDocs {
		state.Beneficiaries[doc.Authority] = doc.ToBeneficiary()
	}

	return state, nil
}

func nonEmpty(values []string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}

func storeError(entity string, err error) *types.Error {
	return types.NewError(
		http.StatusInternalServerError,
		types.InternalServiceError,
		fmt.Errorf("failed to load %s: %w", entity, err),
	)
}

// newSettlement converts an outcome into the documents to commit. Only
// beneficiaries that changed are written.
func newSettlement(
	commandID string, cmd ledger.Command, before ledger.SettlementState, outcome ledger.Outcome, now int64,
) (*db.Settlement, error) {
	after := outcome.State
	settlement := &db.Settlement{
		Command: model.ProcessedCommandDocument{
			ID:          commandID,
			Type:        cmd.Type().String(),
			ProcessedAt: now,
		},
	}

	if after.Pool != nil {
		settlement.Pool = model.FromPool(after.Pool)
	}
	if after.Endpoint != nil {
		settlement.Endpoint = model.FromEndpoint(after.Endpoint)
	}
	if after.Position != nil {
		current := types.StateUninitialized
		if before.Position != nil {
			current = before.Position.State()
		}
		if !stateutils.IsQualifiedStateForPositionStateChange(current, after.Position.State()) {
			return nil, fmt.Errorf("invalid stake position state change from %s to %s",
				current, after.Position.State())
		}
		settlement.Position = model.FromStakePosition(after.Position)
		settlement.TimeLock, settlement.ClearTimeLock = timeLockChange(before.Position, after.Position)
	}

	for authority, beneficiary := range after.Beneficiaries {
		if previous, ok := before.Beneficiaries[authority]; ok && previous == beneficiary {
			continue
		}
		settlement.Beneficiaries = append(settlement.Beneficiaries, model.FromBeneficiary(beneficiary))
	}

	for i, directive := range outcome.Directives {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate disbursement id: %w", err)
		}
		settlement.Disbursements = append(
			settlement.Disbursements,
			model.NewDisbursementDocument(id.String(), commandID, i, directive, now),
		)
	}

	return settlement, nil
}

// timeLockChange tracks the unbonding bucket of a position: a new or
// restarted bucket gets a timelock, an emptied one loses it.
func timeLockChange(before, after *ledger.StakePosition) (*model.UnbondingTimeLockDocument, bool) {
	if after.UnbondingAmount == 0 {
		return nil, before != nil && before.UnbondingAmount > 0
	}
	if before != nil &&
		before.UnbondingAmount == after.UnbondingAmount &&
		before.UnbondingReadyTime == after.UnbondingReadyTime {
		return nil, false
	}
	return model.NewUnbondingTimeLockDocument(
		after.Endpoint, after.Staker, after.UnbondingAmount, after.UnbondingReadyTime,
	), false
}
