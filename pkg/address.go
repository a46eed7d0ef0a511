package pkg

import (
	"fmt"
	"regexp"
)

const maxPrincipalLength = 128

var principalPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// ValidatePrincipal checks that address can be used as an account, endpoint
// or asset identifier. Identifiers are joined with ':' in storage keys, so
// the separator is not allowed.
func ValidatePrincipal(address string) error {
	if address == "" {
		return fmt.Errorf("empty address")
	}
	if len(address) > maxPrincipalLength {
		return fmt.Errorf("address longer than %d characters", maxPrincipalLength)
	}
	if !principalPattern.MatchString(address) {
		return fmt.Errorf("address %q contains invalid characters", address)
	}
	return nil
}
