package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/rokybeast/passlock/internal/vault"
)

// RenderListing renders entries one field per line for diffing.
// Passwords are never rendered, only whether they differ from history.
func RenderListing(v *vault.Vault) string {
	var b strings.Builder
	for _, e := range v.Entries {
		fmt.Fprintf(&b, "[%s] %s\n", e.ID, e.Name)
		fmt.Fprintf(&b, "  username: %s\n", e.Username)
		if e.URL != "" {
			fmt.Fprintf(&b, "  url: %s\n", e.URL)
		}
		if e.Notes != "" {
			for _, line := range strings.Split(e.Notes, "\n") {
				fmt.Fprintf(&b, "  notes: %s\n", line)
			}
		}
		if len(e.Tags) > 0 {
			fmt.Fprintf(&b, "  tags: %s\n", strings.Join(e.Tags, ", "))
		}
		fmt.Fprintf(&b, "  password: set, %d previous\n", len(e.History))
		fmt.Fprintf(&b, "  modified: %s\n", e.Modified.Format(time.RFC3339))
	}
	return b.String()
}

// LineDiff returns a line-oriented diff of two texts, prefixing removed
// lines with "- ", added with "+ " and unchanged with "  ". Returns an empty
// string when the texts are identical.
func LineDiff(before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var out strings.Builder
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			out.WriteString(prefix)
			out.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				out.WriteString("\n")
			}
		}
	}
	return out.String()
}

// Diff compares snapshot id (0 = newest) with the current vault.
// Returns an empty string when nothing changed.
func (p *Passlock) Diff(ctx context.Context, password []byte, id uint64) (string, error) {
	current, err := p.Open(ctx, password)
	if err != nil {
		return "", err
	}
	previous, err := p.OpenSnapshot(ctx, password, id)
	if err != nil {
		return "", err
	}
	return LineDiff(RenderListing(previous), RenderListing(current)), nil
}
