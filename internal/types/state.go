package types

// Enum values for StakePosition state
type PositionState string

const (
	StateUninitialized     PositionState = "UNINITIALIZED"
	StateActive            PositionState = "ACTIVE"
	StatePendingWithdrawal PositionState = "PENDING_WITHDRAWAL"
)

func (s PositionState) String() string {
	return string(s)
}

// QualifiedStatesForWithdrawUnbond returns the qualified current states for
// withdrawing the unbonding bucket
func QualifiedStatesForWithdrawUnbond() []PositionState {
	return []PositionState{StatePendingWithdrawal}
}

// BeneficiaryRole is the part a principal plays in a single stake.
type BeneficiaryRole string

const (
	RoleStaker    BeneficiaryRole = "STAKER"
	RolePrimary   BeneficiaryRole = "PRIMARY"
	RoleSecondary BeneficiaryRole = "SECONDARY"
	RoleFee       BeneficiaryRole = "FEE"
)

func (r BeneficiaryRole) String() string {
	return string(r)
}

func (r BeneficiaryRole) IsValid() bool {
	switch r {
	case RoleStaker, RolePrimary, RoleSecondary, RoleFee:
		return true
	default:
		return false
	}
}

// DirectiveKind describes the transfer a settlement asks the disbursement
// port to execute.
type DirectiveKind string

const (
	DirectiveDisburseReward   DirectiveKind = "DISBURSE_REWARD"
	DirectiveCollectStake     DirectiveKind = "COLLECT_STAKE"
	DirectiveDisburseUnbonded DirectiveKind = "DISBURSE_UNBONDED"
)

func (k DirectiveKind) String() string {
	return string(k)
}

// DisbursementState tracks an outbox entry.
type DisbursementState string

const (
	DisbursementPending   DisbursementState = "PENDING"
	DisbursementPublished DisbursementState = "PUBLISHED"
	// DisbursementExecuted is set once the transfer executor confirms the
	// transfer went through.
	DisbursementExecuted DisbursementState = "EXECUTED"
)

// OutstandingDisbursementStates are the states of a disbursement whose
// transfer has not been confirmed yet.
func OutstandingDisbursementStates() []DisbursementState {
	return []DisbursementState{DisbursementPending, DisbursementPublished}
}

func (s DisbursementState) String() string {
	return string(s)
}
