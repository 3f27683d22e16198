package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rokybeast/passlock/internal/core"
	"github.com/rokybeast/passlock/internal/crypto"
	"github.com/rokybeast/passlock/internal/vault"
)

// EntryFields are the entry attributes settable from the command line
type EntryFields struct {
	Username string
	URL      string
	Notes    string
	Tags     string
	Generate bool
	Length   int
}

// Add stores a new entry. The entry password is generated or prompted for.
func Add(ctx context.Context, opts Options, name string, fields EntryFields) {
	if strings.TrimSpace(name) == "" {
		fmt.Fprintf(os.Stderr, "Error: add requires an entry name\n")
		fmt.Fprintf(os.Stderr, "Usage: passlock add [flags] <name>\n")
		os.Exit(1)
	}

	s := Setup(opts)
	defer s.Close()

	secret, generated := entrySecret(fields, name, fields.Username)

	password := s.GetPasswordOrExit("Master password: ")
	defer crypto.ClearBytes(password)

	e, err := s.Passlock.AddEntry(ctx, password, vault.Entry{
		Name:     name,
		Username: fields.Username,
		Password: secret,
		URL:      fields.URL,
		Notes:    fields.Notes,
		Tags:     splitTags(fields.Tags),
	})
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("✓ Added %s (%s)\n", e.Name, e.ID)
	if generated {
		fmt.Printf("  generated password: %s\n", secret)
	}
}

// entrySecret generates a password or prompts for one. An empty prompt
// answer falls back to generation.
func entrySecret(fields EntryFields, userInputs ...string) (string, bool) {
	if !fields.Generate {
		secret, err := core.ReadPassword("Entry password (empty to generate): ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %s\n", err)
			os.Exit(1)
		}
		if len(secret) > 0 {
			defer crypto.ClearBytes(secret)
			if strength := core.RateStrength(string(secret), userInputs...); strength.Label == "Weak" {
				fmt.Fprintf(os.Stderr, "warning: weak entry password\n")
			}
			return string(secret), false
		}
	}

	length := fields.Length
	if length == 0 {
		length = core.DefaultGenLen
	}
	secret, err := core.GeneratePassword(length)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return secret, true
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
