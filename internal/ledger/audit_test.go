package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditEmission(t *testing.T) {
	settler := newTestSettler(t)
	outcome, err := settler.Deposit(newTestState(t), 1_000, 12_345)
	require.NoError(t, err)
	outcome, err = settler.Harvest(outcome.State, 7_777_777)
	require.NoError(t, err)

	audit, err := AuditEmission(*outcome.State.Pool, int64(SecondsPerPeriod))
	require.NoError(t, err)
	assert.True(t, audit.Consistent())

	whole, err := audit.MaxPayout.Whole()
	require.NoError(t, err)
	assert.Equal(t, testEmission, whole)
	assert.Equal(t, testEmission*3/4, audit.CurrentEmission)

	overpaid := *outcome.State.Pool
	require.NoError(t, overpaid.Emitted.Add(overpaid.Emitted))
	audit, err = AuditEmission(overpaid, int64(SecondsPerPeriod))
	require.NoError(t, err)
	assert.False(t, audit.Consistent())
}

func TestAuditBeneficiary(t *testing.T) {
	settler := newTestSettler(t)
	outcome, err := settler.Deposit(newTestState(t), 1_000, 0)
	require.NoError(t, err)
	state := outcome.State
	now := int64(SecondsPerPeriod)

	audit, err := AuditBeneficiary(state.Beneficiaries[testPrimary], *state.Pool, now)
	require.NoError(t, err)
	assert.Equal(t, uint64(450), audit.Staked)
	assert.Zero(t, audit.RewardDebt)
	assert.Equal(t, uint64(405_000_000_000), audit.HoldingValue)
	assert.Equal(t, uint64(405_000_000_000), audit.Pending)
	assert.Equal(t, uint64(405_000_000_000), audit.Harvestable)

	_, _, claimed, err := Claim(state.Beneficiaries[testPrimary], *state.Pool, now)
	require.NoError(t, err)
	assert.Equal(t, audit.Harvestable, claimed)
}
