package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rokybeast/passlock/internal/core"
	"github.com/rokybeast/passlock/internal/crypto"
)

// Init creates a new empty vault
func Init(ctx context.Context, opts Options) {
	s := Setup(opts)
	defer s.Close()

	// Read password (env var or prompt with confirmation)
	password, err := GetPasswordForInit()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	defer crypto.ClearBytes(password)

	if strength := core.RateStrength(string(password)); strength.Label == "Weak" {
		fmt.Fprintf(os.Stderr, "warning: weak master password\n")
		for _, hint := range strength.Feedback {
			fmt.Fprintf(os.Stderr, "  - %s\n", hint)
		}
	}

	if err := s.Passlock.Init(ctx, password); err != nil {
		HandleError(err)
	}

	fmt.Printf("✓ Initialized %s\n", s.Passlock.Path())
	s.WarnGitExposure()
}
