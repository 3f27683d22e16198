package keyring

import (
	"errors"
	"testing"

	"github.com/zalando/go-keyring"
)

func TestSaveLoadDelete(t *testing.T) {
	keyring.MockInit()

	if Has("vault-1") {
		t.Fatal("fresh keyring should be empty")
	}
	if _, err := Load("vault-1"); !errors.Is(err, ErrNotStored) {
		t.Fatalf("Load err = %v, want ErrNotStored", err)
	}

	if err := Save("vault-1", []byte("correct horse")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load("vault-1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(got) != "correct horse" {
		t.Errorf("Load = %q, want %q", got, "correct horse")
	}
	if !Has("vault-1") || Has("vault-2") {
		t.Error("Has reports the wrong vault")
	}

	if err := Delete("vault-1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := Delete("vault-1"); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}
	if Has("vault-1") {
		t.Error("password still present after Delete")
	}
}

func TestEmptyVaultID(t *testing.T) {
	keyring.MockInit()

	if err := Save("", []byte("pw")); err == nil {
		t.Error("Save with empty vault ID should fail")
	}
	if _, err := Load(""); !errors.Is(err, ErrNotStored) {
		t.Errorf("Load err = %v, want ErrNotStored", err)
	}
}
