package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rokybeast/passlock/internal/crypto"
)

// Verify checks that the vault opens with the master password and that
// its contents decode
func Verify(ctx context.Context, opts Options) {
	s := Setup(opts)
	defer s.Close()

	password := s.GetPasswordOrExit("Master password: ")
	defer crypto.ClearBytes(password)

	v, err := s.Passlock.Open(ctx, password)
	if err != nil {
		HandleError(err)
	}
	info, err := s.Passlock.Info(ctx)
	if err != nil {
		HandleError(err)
	}

	fmt.Printf("✓ Vault OK: %d entries\n", len(v.Entries))
	fmt.Printf("  cipher:    %s\n", info.Cipher)
	fmt.Printf("  created:   %s\n", info.Created.Local().Format(time.DateTime))
	fmt.Printf("  snapshots: %d\n", info.Snapshots)
	if info.Cipher != s.Config.Cipher && s.Config.Cipher != "" {
		fmt.Printf("  note: config asks for %s; it applies to new vaults only\n", s.Config.Cipher)
	}
	s.WarnGitExposure()
}
