package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rokybeast/passlock/internal/crypto"
	"github.com/rokybeast/passlock/internal/vault"
)

const masked = "********"

// Show prints one entry. The password is masked unless reveal is set.
func Show(ctx context.Context, opts Options, ref string, reveal bool) {
	if ref == "" {
		fmt.Fprintf(os.Stderr, "Error: show requires an entry name or ID\n")
		os.Exit(1)
	}

	s := Setup(opts)
	defer s.Close()

	password := s.GetPasswordOrExit("Master password: ")
	defer crypto.ClearBytes(password)

	e, err := s.Passlock.GetEntry(ctx, password, ref)
	if err != nil {
		HandleError(err)
	}
	printEntry(e, reveal)
}

func printEntry(e vault.Entry, reveal bool) {
	fmt.Printf("Name:     %s\n", e.Name)
	fmt.Printf("ID:       %s\n", e.ID)
	if e.Username != "" {
		fmt.Printf("Username: %s\n", e.Username)
	}
	if reveal {
		fmt.Printf("Password: %s\n", e.Password)
	} else {
		fmt.Printf("Password: %s\n", masked)
	}
	if e.URL != "" {
		fmt.Printf("URL:      %s\n", e.URL)
	}
	if len(e.Tags) > 0 {
		fmt.Printf("Tags:     %s\n", strings.Join(e.Tags, ", "))
	}
	fmt.Printf("Created:  %s\n", e.Created.Local().Format(time.DateTime))
	fmt.Printf("Modified: %s\n", e.Modified.Local().Format(time.DateTime))
	if e.Notes != "" {
		fmt.Println("Notes:")
		for _, line := range strings.Split(e.Notes, "\n") {
			fmt.Printf("  %s\n", line)
		}
	}
}
