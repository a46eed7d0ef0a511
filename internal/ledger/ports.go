package ledger

import "context"

// AccountVerifier resolves the account a principal holds for an asset.
//
//go:generate mockery --name=AccountVerifier --output=../../tests/mocks --outpkg=mocks --filename=mock_account_verifier.go
type AccountVerifier interface {
	// VerifyAssociated returns the spendable balance of principal's account
	// for asset, or ErrAccountNotAssociated if there is none.
	VerifyAssociated(ctx context.Context, principal, asset string) (uint64, error)
}
