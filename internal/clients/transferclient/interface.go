package transferclient

import "github.com/zoints/staking-ledger/internal/ledger"

// TransferInterface is the associated account lookup of the token transfer
// service.
type TransferInterface interface {
	ledger.AccountVerifier
}
