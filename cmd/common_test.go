package cmd

import (
	"fmt"
	"strings"
	"testing"

	"github.com/rokybeast/passlock/internal/container"
	"github.com/rokybeast/passlock/internal/core"
	"github.com/rokybeast/passlock/internal/engine"
	"github.com/rokybeast/passlock/internal/vault"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{core.ErrNotInitialized, "passlock init"},
		{engine.ErrWrongPassword, "wrong password or corrupted vault"},
		{fmt.Errorf("open: %w", engine.ErrWrongPassword), "wrong password or corrupted vault"},
		{container.ErrFormat, "not a passlock vault"},
		{engine.ErrDeserialization, "unreadable"},
		{fmt.Errorf("%w: x", vault.ErrEntryNotFound), "no such entry"},
		{fmt.Errorf("%w: rot13", core.ErrCipherMismatch), "cannot open the cipher recorded"},
		{core.ErrPasswordMismatch, "do not match"},
		{fmt.Errorf("boom"), "Error: boom"},
	}
	for _, tt := range tests {
		if got := ErrorMessage(tt.err); !strings.Contains(got, tt.want) {
			t.Errorf("ErrorMessage(%v) = %q, want it to contain %q", tt.err, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := map[int64]string{
		0:               "0 bytes",
		1023:            "1023 bytes",
		1536:            "1.5 KB",
		3 * 1024 * 1024: "3.0 MB",
	}
	for in, want := range tests {
		if got := formatSize(in); got != want {
			t.Errorf("formatSize(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestSplitTags(t *testing.T) {
	if got := splitTags(""); got != nil {
		t.Errorf("splitTags(\"\") = %v, want nil", got)
	}
	if got := splitTags("a,b"); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("splitTags(\"a,b\") = %v", got)
	}
}
