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

// EditFields holds the changes requested by the edit command. Nil pointers
// leave the field untouched.
type EditFields struct {
	Name        *string
	Username    *string
	URL         *string
	Notes       *string
	Tags        *string
	NewPassword bool
	Generate    bool
	Length      int
}

// Edit changes fields of an existing entry
func Edit(ctx context.Context, opts Options, ref string, fields EditFields) {
	if ref == "" {
		fmt.Fprintf(os.Stderr, "Error: edit requires an entry name or ID\n")
		os.Exit(1)
	}

	s := Setup(opts)
	defer s.Close()

	var secret string
	var generated bool
	if fields.NewPassword || fields.Generate {
		secret, generated = entrySecret(EntryFields{Generate: fields.Generate, Length: fields.Length}, ref)
	}

	password := s.GetPasswordOrExit("Master password: ")
	defer crypto.ClearBytes(password)

	e, err := s.Passlock.EditEntry(ctx, password, ref, func(e *vault.Entry) {
		if fields.Name != nil && strings.TrimSpace(*fields.Name) != "" {
			e.Name = strings.TrimSpace(*fields.Name)
		}
		if fields.Username != nil {
			e.Username = *fields.Username
		}
		if fields.URL != nil {
			e.URL = *fields.URL
		}
		if fields.Notes != nil {
			e.Notes = *fields.Notes
		}
		if fields.Tags != nil {
			e.Tags = splitTags(*fields.Tags)
		}
		if secret != "" {
			e.Password = secret
		}
	})
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("✓ Updated %s\n", e.Name)
	if generated {
		fmt.Printf("  generated password: %s\n", secret)
	}
	if secret != "" {
		fmt.Printf("  strength: %s\n", core.RateStrength(secret, e.Name, e.Username).Label)
	}
}
