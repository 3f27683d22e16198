package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rokybeast/passlock/internal/crypto"
)

// History lists previous passwords of an entry, newest first
func History(ctx context.Context, opts Options, ref string, reveal bool) {
	if ref == "" {
		fmt.Fprintf(os.Stderr, "Error: history requires an entry name or ID\n")
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

	if len(e.History) == 0 {
		fmt.Printf("%s has no password history\n", e.Name)
		return
	}

	fmt.Printf("Password history for %s:\n", e.Name)
	for i, h := range e.History {
		value := masked
		if reveal {
			value = h.Password
		}
		fmt.Printf("  %2d  %s  %s\n", i+1, h.Changed.Local().Format(time.DateTime), value)
	}
}
