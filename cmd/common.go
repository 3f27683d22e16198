package cmd

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/rokybeast/passlock/internal/config"
	"github.com/rokybeast/passlock/internal/container"
	"github.com/rokybeast/passlock/internal/core"
	"github.com/rokybeast/passlock/internal/crypto"
	"github.com/rokybeast/passlock/internal/engine"
	"github.com/rokybeast/passlock/internal/git"
	"github.com/rokybeast/passlock/internal/keyring"
	"github.com/rokybeast/passlock/internal/logging"
	"github.com/rokybeast/passlock/internal/storage"
	"github.com/rokybeast/passlock/internal/vault"
)

// Options are the flags shared by every command
type Options struct {
	Vault string
}

// Session bundles what a command needs to talk to the vault
type Session struct {
	Config   config.Config
	Log      *zap.Logger
	Passlock *core.Passlock
}

// Setup loads config, builds the logger and opens the vault handle.
// It exits on error.
func Setup(opts Options) *Session {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	if opts.Vault != "" {
		cfg.VaultPath = opts.Vault
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	backend, err := crypto.NewCipherBackend(cfg.Cipher)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	pl := core.New(cfg.VaultPath,
		core.WithEngine(engine.New(engine.WithBackend(backend))),
		core.WithHistoryLimit(cfg.HistoryLimit),
		core.WithSnapshotLimit(cfg.SnapshotLimit),
		core.WithLogger(log),
	)
	return &Session{Config: cfg, Log: log, Passlock: pl}
}

// Close flushes the logger
func (s *Session) Close() {
	_ = s.Log.Sync()
}

// WarnGitExposure prints a warning for each vault file that git could pick up
func (s *Session) WarnGitExposure() {
	path := s.Passlock.Path()
	status, err := git.Check(path, storage.SideStorePath(path))
	if err != nil {
		s.Log.Debug("git check failed", zap.Error(err))
		return
	}
	for _, w := range status.Warnings() {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w)
	}
}

// GetPassword retrieves the master password from the environment, the
// OS keyring or a prompt, in that order. A keyring password that no longer
// opens the vault is discarded and the user is prompted instead.
// The caller is responsible for calling crypto.ClearBytes on the returned password
func (s *Session) GetPassword(prompt string) ([]byte, error) {
	// Try environment variable first
	if password := core.PasswordFromEnv(); password != nil {
		return password, nil
	}

	if s.Config.UseKeyring {
		if password, ok := s.keyringPassword(); ok {
			return password, nil
		}
	}

	password, err := core.ReadPassword(prompt)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return password, nil
}

func (s *Session) keyringPassword() ([]byte, bool) {
	vaultID, err := s.Passlock.GetVaultID()
	if err != nil {
		return nil, false
	}
	password, err := keyring.Load(vaultID)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotStored) {
			s.Log.Debug("keyring unavailable", zap.Error(err))
		}
		return nil, false
	}

	if err := s.Passlock.VerifyPassword(password); err != nil {
		crypto.ClearBytes(password)
		if errors.Is(err, engine.ErrWrongPassword) {
			s.Log.Warn("stale keyring password removed")
			_ = keyring.Delete(vaultID)
		}
		return nil, false
	}
	return password, true
}

// GetPasswordOrExit is like GetPassword but exits on error
func (s *Session) GetPasswordOrExit(prompt string) []byte {
	password, err := s.GetPassword(prompt)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	return password
}

// GetPasswordForInit retrieves password for init command
// Checks environment variable first, then prompts with confirmation
func GetPasswordForInit() ([]byte, error) {
	if password := core.PasswordFromEnv(); password != nil {
		return password, nil
	}
	return core.ReadPasswordConfirm("New master password: ")
}

// HandleError prints a user-facing message for err and exits
func HandleError(err error) {
	fmt.Fprintln(os.Stderr, ErrorMessage(err))
	os.Exit(1)
}

// ErrorMessage maps known errors to user-facing text
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrNotInitialized):
		return "Error: passlock vault not found\nRun 'passlock init' first"
	case errors.Is(err, core.ErrAlreadyExists):
		return "Error: a vault already exists at this path"
	case errors.Is(err, core.ErrPasswordRequired):
		return "Error: password required"
	case errors.Is(err, core.ErrPasswordMismatch):
		return "Error: passwords do not match"
	case errors.Is(err, core.ErrCipherMismatch):
		return fmt.Sprintf("Error: %s\nThis build cannot open the cipher recorded for the vault", err)
	case errors.Is(err, engine.ErrWrongPassword):
		return "Error: wrong password or corrupted vault"
	case errors.Is(err, container.ErrFormat):
		return "Error: file is not a passlock vault (too short)"
	case errors.Is(err, engine.ErrDeserialization):
		return "Error: vault decrypted but its contents are unreadable"
	case errors.Is(err, crypto.ErrKeyDerivation):
		return fmt.Sprintf("Error: key derivation failed: %s", err)
	case errors.Is(err, vault.ErrEntryNotFound):
		return "Error: no such entry\nUse 'passlock ls' to list entries"
	case errors.Is(err, vault.ErrAmbiguousName):
		return "Error: several entries share this name, use the entry ID"
	case errors.Is(err, vault.ErrInvalidURL):
		return "Error: not a valid URL or host name"
	case errors.Is(err, storage.ErrSnapshotNotFound):
		return "Error: no such snapshot\nUse 'passlock snapshots' to list them"
	default:
		return fmt.Sprintf("Error: %s", err)
	}
}

func formatSize(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case size >= GB:
		return fmt.Sprintf("%.1f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.1f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.1f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d bytes", size)
	}
}
