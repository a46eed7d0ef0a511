package types

type CommandType string

const (
	CommandInitializePool   CommandType = "INITIALIZE_POOL"
	CommandRegisterEndpoint CommandType = "REGISTER_ENDPOINT"
	CommandInitializeStake  CommandType = "INITIALIZE_STAKE"
	CommandStake            CommandType = "STAKE"
	CommandUnstake          CommandType = "UNSTAKE"
	CommandHarvest          CommandType = "HARVEST"
	CommandWithdrawUnbond   CommandType = "WITHDRAW_UNBOND"
	CommandClaim            CommandType = "CLAIM"
)

func (t CommandType) String() string {
	return string(t)
}
