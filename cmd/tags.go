package cmd

import (
	"context"
	"fmt"

	"github.com/rokybeast/passlock/internal/crypto"
)

// Tags lists tags in use with their entry counts, most used first
func Tags(ctx context.Context, opts Options) {
	s := Setup(opts)
	defer s.Close()

	password := s.GetPasswordOrExit("Master password: ")
	defer crypto.ClearBytes(password)

	tags, err := s.Passlock.Tags(ctx, password)
	if err != nil {
		HandleError(err)
	}

	if len(tags) == 0 {
		fmt.Println("No tags")
		return
	}
	for _, t := range tags {
		fmt.Printf("  %4d  %s\n", t.Count, t.Tag)
	}
}
