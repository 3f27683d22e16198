package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteReadContainer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "vault")

	ok, err := Exists(path)
	if err != nil || ok {
		t.Fatalf("Exists before write = %v, %v", ok, err)
	}
	if _, err := ReadContainer(path); !errors.Is(err, ErrVaultNotFound) {
		t.Errorf("ReadContainer err = %v, want ErrVaultNotFound", err)
	}

	if err := WriteContainer(path, []byte("first")); err != nil {
		t.Fatalf("WriteContainer failed: %v", err)
	}
	if err := WriteContainer(path, []byte("second")); err != nil {
		t.Fatalf("WriteContainer failed: %v", err)
	}

	data, err := ReadContainer(path)
	if err != nil {
		t.Fatalf("ReadContainer failed: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want second", data)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != FilePermSecure {
		t.Errorf("mode = %v, want %v", info.Mode().Perm(), os.FileMode(FilePermSecure))
	}

	// no temp files left behind
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("expected only the vault file, found %d entries", len(entries))
	}

	ok, err = Exists(path)
	if err != nil || !ok {
		t.Errorf("Exists after write = %v, %v", ok, err)
	}
}

func TestExistsRejectsDirectory(t *testing.T) {
	if _, err := Exists(t.TempDir()); err == nil {
		t.Error("Exists should fail for a directory")
	}
}
