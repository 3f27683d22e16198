// Package config loads passlock settings from a YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rokybeast/passlock/internal/crypto"
)

// Environment variables
const (
	EnvConfig   = "PASSLOCK_CONFIG"
	EnvVault    = "PASSLOCK_VAULT"
	EnvPassword = "PASSLOCK_PASSWORD"
	EnvLogLevel = "PASSLOCK_LOG_LEVEL"
)

const (
	DefaultVaultFile     = ".passlock.vault"
	DefaultHistoryLimit  = 10
	DefaultSnapshotLimit = 5
	DefaultLogLevel      = "warn"
)

// Config is the on-disk configuration
type Config struct {
	VaultPath     string `yaml:"vault_path"`
	Cipher        string `yaml:"cipher"`
	HistoryLimit  int    `yaml:"history_limit"`
	SnapshotLimit int    `yaml:"snapshot_limit"`
	UseKeyring    bool   `yaml:"use_keyring"`
	LogLevel      string `yaml:"log_level"`
}

// Default returns the built-in configuration
func Default() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		VaultPath:     filepath.Join(home, DefaultVaultFile),
		Cipher:        crypto.CipherAESGCM,
		HistoryLimit:  DefaultHistoryLimit,
		SnapshotLimit: DefaultSnapshotLimit,
		UseKeyring:    true,
		LogLevel:      DefaultLogLevel,
	}
}

// DefaultPath returns ~/.config/passlock/config.yaml (or the platform equivalent)
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "passlock", "config.yaml")
}

// Load reads the config file named by PASSLOCK_CONFIG, or DefaultPath,
// and applies environment overrides. A missing file yields defaults.
func Load() (Config, error) {
	path := os.Getenv(EnvConfig)
	if path == "" {
		path = DefaultPath()
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return cfg, err
	}
	cfg.applyEnv()
	return cfg, cfg.Validate()
}

// LoadFile reads path over the defaults without environment overrides
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.VaultPath = expandHome(cfg.VaultPath)
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvVault); v != "" {
		c.VaultPath = expandHome(v)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks values that would otherwise fail late
func (c Config) Validate() error {
	if c.VaultPath == "" {
		return fmt.Errorf("config: vault_path is empty")
	}
	if _, err := crypto.NewCipherBackend(c.Cipher); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("config: history_limit must not be negative")
	}
	if c.SnapshotLimit < 0 {
		return fmt.Errorf("config: snapshot_limit must not be negative")
	}
	return nil
}

// Save writes c to path in YAML
func Save(path string, c Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}
