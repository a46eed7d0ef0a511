package testutil

import (
	"strings"

	"github.com/brianvoe/gofakeit/v7"
)

// RandomPrincipal returns a random principal name that passes
// pkg.ValidatePrincipal.
func RandomPrincipal() string {
	return strings.ToLower(gofakeit.LetterN(4)) + "-" + gofakeit.DigitN(6)
}

// RandomAmount returns a random token amount in [minAmount, maxAmount].
func RandomAmount(minAmount, maxAmount uint64) uint64 {
	return minAmount + gofakeit.Uint64()%(maxAmount-minAmount+1)
}
