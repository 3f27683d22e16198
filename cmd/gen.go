package cmd

import (
	"fmt"
	"os"

	"github.com/rokybeast/passlock/internal/core"
)

// Generate prints a random password and its strength rating.
// It does not touch the vault.
func Generate(length int) {
	pw, err := core.GeneratePassword(length)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	fmt.Println(pw)
	fmt.Fprintf(os.Stderr, "strength: %s\n", core.RateStrength(pw).Label)
}
