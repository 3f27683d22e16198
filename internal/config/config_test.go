package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rokybeast/passlock/internal/crypto"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	t.Setenv(EnvConfig, filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv(EnvVault, "")
	t.Setenv(EnvLogLevel, "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "vault_path: /tmp/v.vault\ncipher: xchacha20-poly1305\nhistory_limit: 3\nsnapshot_limit: 0\nuse_keyring: false\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))

	t.Setenv(EnvConfig, path)
	t.Setenv(EnvVault, "")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/v.vault", cfg.VaultPath)
	require.Equal(t, crypto.CipherXChaCha20Poly1305, cfg.Cipher)
	require.Equal(t, 3, cfg.HistoryLimit)
	require.Equal(t, 0, cfg.SnapshotLimit)
	require.False(t, cfg.UseKeyring)
	require.Equal(t, "debug", cfg.LogLevel)

	t.Setenv(EnvVault, filepath.Join(dir, "other.vault"))
	cfg, err = Load()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "other.vault"), cfg.VaultPath)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Cipher = "des"
	require.ErrorIs(t, cfg.Validate(), crypto.ErrUnknownCipher)

	cfg = Default()
	cfg.HistoryLimit = -1
	require.Error(t, cfg.Validate())

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("history_limit: [1"), 0600))
	_, err := LoadFile(path)
	require.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	cfg := Default()
	cfg.SnapshotLimit = 9

	require.NoError(t, Save(path, cfg))
	got, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}
