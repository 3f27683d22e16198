package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/rokybeast/passlock/internal/crypto"
	"github.com/rokybeast/passlock/internal/vault"
)

// ListFilter selects entries for List. URL wins over Tag, Tag over Query.
type ListFilter struct {
	Query string
	URL   string
	Tag   string
}

// List prints matching entries without their passwords
func List(ctx context.Context, opts Options, filter ListFilter) {
	s := Setup(opts)
	defer s.Close()

	password := s.GetPasswordOrExit("Master password: ")
	defer crypto.ClearBytes(password)

	var entries []vault.Entry
	var err error
	query := filter.Query
	switch {
	case filter.URL != "":
		entries, err = s.Passlock.MatchURL(ctx, password, filter.URL)
		query = filter.URL
	case filter.Tag != "":
		entries, err = s.Passlock.ListTag(ctx, password, filter.Tag)
		query = "tag:" + filter.Tag
	default:
		entries, err = s.Passlock.List(ctx, password, query)
	}
	if err != nil {
		HandleError(err)
	}

	if len(entries) == 0 {
		if query != "" {
			fmt.Printf("No entries match %q\n", query)
		} else {
			fmt.Println("Vault is empty")
		}
		return
	}

	fmt.Printf("Entries (%d):\n", len(entries))
	for _, e := range entries {
		line := fmt.Sprintf("  %s  %s", shortID(e.ID), e.Name)
		if e.Username != "" {
			line += fmt.Sprintf(" (%s)", e.Username)
		}
		if len(e.Tags) > 0 {
			line += " [" + strings.Join(e.Tags, ", ") + "]"
		}
		fmt.Println(line)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
