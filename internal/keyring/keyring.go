// Package keyring caches vault master passwords in the OS keyring,
// keyed by the vault ID kept in the side-store.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

const serviceName = "passlock"

var ErrNotStored = errors.New("no password stored in keyring")

// Save stores password for vaultID
func Save(vaultID string, password []byte) error {
	if vaultID == "" {
		return fmt.Errorf("keyring: empty vault ID")
	}
	if err := keyring.Set(serviceName, vaultID, string(password)); err != nil {
		return fmt.Errorf("keyring: save: %w", err)
	}
	return nil
}

// Load returns the cached password for vaultID as a fresh byte slice.
// The caller is responsible for clearing it.
func Load(vaultID string) ([]byte, error) {
	if vaultID == "" {
		return nil, ErrNotStored
	}
	secret, err := keyring.Get(serviceName, vaultID)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNotStored
		}
		return nil, fmt.Errorf("keyring: load: %w", err)
	}
	return []byte(secret), nil
}

// Delete removes the cached password; a missing entry is not an error
func Delete(vaultID string) error {
	err := keyring.Delete(serviceName, vaultID)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("keyring: delete: %w", err)
	}
	return nil
}

// Has checks if a password is stored for vaultID
func Has(vaultID string) bool {
	_, err := keyring.Get(serviceName, vaultID)
	return err == nil
}
