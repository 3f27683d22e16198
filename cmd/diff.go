package cmd

import (
	"context"
	"fmt"

	"github.com/rokybeast/passlock/internal/crypto"
)

// Diff compares a snapshot (0 = newest) with the current vault.
// Passwords are never printed.
func Diff(ctx context.Context, opts Options, id uint64) {
	s := Setup(opts)
	defer s.Close()

	// Get password
	password := s.GetPasswordOrExit("Master password: ")
	defer crypto.ClearBytes(password)

	out, err := s.Passlock.Diff(ctx, password, id)
	if err != nil {
		HandleError(err)
	}

	if out == "" {
		fmt.Println("No changes")
		return
	}
	fmt.Print(out)
}
