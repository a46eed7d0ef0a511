package model

import "github.com/zoints/staking-ledger/internal/ledger"

type BeneficiaryDocument struct {
	Authority  string `bson:"_id"`
	Staked     uint64 `bson:"staked"`
	RewardDebt uint64 `bson:"reward_debt"`
	Holding    uint64 `bson:"holding"`
}

func FromBeneficiary(b ledger.Beneficiary) *BeneficiaryDocument {
	return &BeneficiaryDocument{
		Authority:  b.Authority,
		Staked:     b.Staked,
		RewardDebt: b.RewardDebt,
		Holding:    b.Holding,
	}
}

func (d *BeneficiaryDocument) ToBeneficiary() ledger.Beneficiary {
	return ledger.Beneficiary{
		Authority:  d.Authority,
		Staked:     d.Staked,
		RewardDebt: d.RewardDebt,
		Holding:    d.Holding,
	}
}
