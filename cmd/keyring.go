package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rokybeast/passlock/internal/core"
	"github.com/rokybeast/passlock/internal/crypto"
	"github.com/rokybeast/passlock/internal/keyring"
)

// KeyringSave saves the password to the OS keyring
func KeyringSave(ctx context.Context, opts Options) {
	s := Setup(opts)
	defer s.Close()

	// Prompt for password
	password := core.PasswordFromEnv()
	if password == nil {
		var err error
		password, err = core.ReadPassword("Master password: ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
	}
	defer crypto.ClearBytes(password)

	// Verify password is correct
	if err := s.Passlock.VerifyPassword(password); err != nil {
		HandleError(err)
	}

	// Get vault ID (create if not exists)
	vaultID, err := s.Passlock.GetOrCreateVaultID()
	if err != nil {
		HandleError(err)
	}

	if err := keyring.Save(vaultID, password); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to save to keyring: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Password saved to keyring")
}

// KeyringDelete removes the password from the OS keyring
func KeyringDelete(ctx context.Context, opts Options) {
	s := Setup(opts)
	defer s.Close()

	vaultID, err := s.Passlock.GetVaultID()
	if err != nil || !keyring.Has(vaultID) {
		fmt.Println("No password stored in keyring")
		return
	}

	if err := keyring.Delete(vaultID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	fmt.Println("Password removed from keyring")
}

// KeyringStatus checks if a password is stored in the keyring
func KeyringStatus(ctx context.Context, opts Options) {
	s := Setup(opts)
	defer s.Close()

	vaultID, err := s.Passlock.GetVaultID()
	if err != nil {
		fmt.Println("Password: not stored")
		return
	}

	if keyring.Has(vaultID) {
		fmt.Println("Password: stored in keyring")
	} else {
		fmt.Println("Password: not stored")
	}
}
