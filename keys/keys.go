// Package keys wraps the local encrypted key store. Export, password change
// and deletion all operate on the keystore JSON files under the configured
// directory; hardware accounts have no entry here and fail at this boundary.
package keys

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
)

// Store is a thin facade over go-ethereum's keystore addressed by hex
// address strings.
type Store struct {
	ks *keystore.KeyStore
}

// Open creates or opens a key store rooted at dir with standard scrypt
// parameters.
func Open(dir string) *Store {
	return open(dir, keystore.StandardScryptN, keystore.StandardScryptP)
}

func open(dir string, scryptN, scryptP int) *Store {
	return &Store{ks: keystore.NewKeyStore(dir, scryptN, scryptP)}
}

func (s *Store) find(address string) (accounts.Account, error) {
	if !common.IsHexAddress(address) {
		return accounts.Account{}, fmt.Errorf("keys: %q is not a valid address", address)
	}
	return s.ks.Find(accounts.Account{Address: common.HexToAddress(address)})
}

// Has reports whether a local key exists for the address.
func (s *Store) Has(address string) bool {
	if !common.IsHexAddress(address) {
		return false
	}
	return s.ks.HasAddress(common.HexToAddress(address))
}

// NewAccount generates a key encrypted with password and returns its address.
func (s *Store) NewAccount(password string) (string, error) {
	a, err := s.ks.NewAccount(password)
	if err != nil {
		return "", fmt.Errorf("keys: create account: %w", err)
	}
	return a.Address.Hex(), nil
}

// Export returns the keystore JSON for the address, re-encrypted with the
// same password it was unlocked with.
func (s *Store) Export(address, password string) ([]byte, error) {
	a, err := s.find(address)
	if err != nil {
		return nil, fmt.Errorf("keys: export %s: %w", address, err)
	}
	blob, err := s.ks.Export(a, password, password)
	if err != nil {
		return nil, fmt.Errorf("keys: export %s: %w", address, err)
	}
	return blob, nil
}

// Update changes the password protecting the address's key.
func (s *Store) Update(address, oldPassword, newPassword string) error {
	a, err := s.find(address)
	if err != nil {
		return fmt.Errorf("keys: update %s: %w", address, err)
	}
	if err := s.ks.Update(a, oldPassword, newPassword); err != nil {
		return fmt.Errorf("keys: update %s: %w", address, err)
	}
	return nil
}

// Delete destroys the key for the address. This is irreversible; the caller
// is expected to have confirmed with the user and to hold the right password.
func (s *Store) Delete(address, password string) error {
	a, err := s.find(address)
	if err != nil {
		return fmt.Errorf("keys: delete %s: %w", address, err)
	}
	if err := s.ks.Delete(a, password); err != nil {
		return fmt.Errorf("keys: delete %s: %w", address, err)
	}
	return nil
}
