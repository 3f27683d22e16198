package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rokybeast/passlock/internal/crypto"
)

// Snapshots lists previous vault versions kept in the side-store.
// Does not require a password.
func Snapshots(ctx context.Context, opts Options) {
	s := Setup(opts)
	defer s.Close()

	snaps, err := s.Passlock.Snapshots(ctx)
	if err != nil {
		HandleError(err)
	}

	if len(snaps) == 0 {
		fmt.Println("No snapshots")
		return
	}

	fmt.Printf("Snapshots (%d, newest first):\n", len(snaps))
	for _, snap := range snaps {
		fmt.Printf("  %4d  %s  %s\n", snap.ID, snap.Time.Local().Format(time.DateTime), formatSize(int64(snap.Size)))
	}
}

// Restore replaces the vault with a snapshot (0 = newest). The current
// vault is kept as a snapshot itself, so a restore can be undone.
func Restore(ctx context.Context, opts Options, id uint64) {
	s := Setup(opts)
	defer s.Close()

	password := s.GetPasswordOrExit("Master password: ")
	defer crypto.ClearBytes(password)

	if err := s.Passlock.Restore(ctx, password, id); err != nil {
		HandleError(err)
	}

	if id == 0 {
		fmt.Println("✓ Restored latest snapshot")
	} else {
		fmt.Printf("✓ Restored snapshot %d\n", id)
	}
}
