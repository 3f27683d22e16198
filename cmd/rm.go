package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rokybeast/passlock/internal/crypto"
)

// Remove removes entries from the vault
func Remove(ctx context.Context, opts Options, refs []string) {
	if len(refs) == 0 {
		fmt.Fprintf(os.Stderr, "Error: rm requires at least one entry argument\n")
		fmt.Fprintf(os.Stderr, "Usage: passlock rm <name|id> [name|id...]\n")
		os.Exit(1)
	}

	s := Setup(opts)
	defer s.Close()

	password := s.GetPasswordOrExit("Master password: ")
	defer crypto.ClearBytes(password)

	for _, ref := range refs {
		e, err := s.Passlock.RemoveEntry(ctx, password, ref)
		if err != nil {
			HandleError(err)
		}
		fmt.Printf("✓ Removed %s\n", e.Name)
	}
}
