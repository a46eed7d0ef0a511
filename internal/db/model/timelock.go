package model

// UnbondingTimeLockDocument marks a position whose unbonding bucket becomes
// withdrawable at ReadyTime.
type UnbondingTimeLockDocument struct {
	PositionID string `bson:"_id"` // Primary key
	Endpoint   string `bson:"endpoint"`
	Staker     string `bson:"staker"`
	Amount     uint64 `bson:"amount"`
	ReadyTime  int64  `bson:"ready_time"`
}

func NewUnbondingTimeLockDocument(endpoint, staker string, amount uint64, readyTime int64) *UnbondingTimeLockDocument {
	return &UnbondingTimeLockDocument{
		PositionID: StakePositionID(endpoint, staker),
		Endpoint:   endpoint,
		Staker:     staker,
		Amount:     amount,
		ReadyTime:  readyTime,
	}
}

// ProcessedCommandDocument records a command that has been applied, so a
// redelivered command is not applied twice.
type ProcessedCommandDocument struct {
	ID          string `bson:"_id"`
	Type        string `bson:"type"`
	ProcessedAt int64  `bson:"processed_at"`
}
