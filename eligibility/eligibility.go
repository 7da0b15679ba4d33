// Package eligibility derives which network-gated wallet actions are
// available for an address. All functions are pure: they are recomputed from
// the current network identifier and certification snapshot on every render
// and never cache or fail. Missing data simply yields false.
package eligibility

import (
	"strings"

	"wallet-account-tui/store"
)

// Network identifiers with special handling. No other identifier is treated
// specially.
const (
	MainNetworkID  = "1"
	KovanNetworkID = "42"
)

const smsCertificationPrefix = "smsverification"

// IsKovan reports whether the given network is the Kovan test network.
func IsKovan(networkID string) bool {
	return networkID == KovanNetworkID
}

// IsMainnet reports whether the given network is the production network.
func IsMainnet(networkID string) bool {
	return networkID == MainNetworkID
}

// IsSmsCertified reports whether the address holds at least one certification
// whose name starts with "smsverification".
func IsSmsCertified(certifications map[string][]store.Certification, address string) bool {
	for _, c := range certifications[strings.ToLower(address)] {
		if strings.HasPrefix(c.Name, smsCertificationPrefix) {
			return true
		}
	}
	return false
}

// IsFaucetEligible reports whether the faucet action is available: always on
// Kovan, and on mainnet only for SMS-certified addresses.
func IsFaucetEligible(networkID string, certifications map[string][]store.Certification, address string) bool {
	if IsKovan(networkID) {
		return true
	}
	return IsMainnet(networkID) && IsSmsCertified(certifications, address)
}

// IsVerifiable reports whether the SMS-verification flow can be started;
// the verification contracts are deployed on mainnet only.
func IsVerifiable(networkID string) bool {
	return IsMainnet(networkID)
}
