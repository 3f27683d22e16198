package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	SaltSize = 16 // Salt size in bytes
	KeySize  = 32 // 256-bit key for either cipher

	DefaultTime    = 2         // Argon2id passes
	DefaultMemory  = 64 * 1024 // Argon2id memory in KiB (64 MiB)
	DefaultThreads = 1         // Argon2id lanes
)

var ErrKeyDerivation = errors.New("key derivation failed")

// Params are the Argon2id cost parameters.
type Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
}

// DefaultParams matches libsodium's crypto_pwhash interactive limits.
func DefaultParams() Params {
	return Params{
		Time:    DefaultTime,
		Memory:  DefaultMemory,
		Threads: DefaultThreads,
	}
}

// Validate rejects parameters argon2 would silently clamp.
func (p Params) Validate() error {
	if p.Time == 0 {
		return fmt.Errorf("%w: time must be positive", ErrKeyDerivation)
	}
	if p.Threads == 0 {
		return fmt.Errorf("%w: parallelism must be positive", ErrKeyDerivation)
	}
	if p.Memory < 8*uint32(p.Threads) {
		return fmt.Errorf("%w: memory must be at least %d KiB", ErrKeyDerivation, 8*uint32(p.Threads))
	}
	return nil
}

// KDF derives master keys from passwords
type KDF struct {
	Params Params
}

// NewKDF creates a KDF with the given parameters
func NewKDF(p Params) (*KDF, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &KDF{Params: p}, nil
}

// DeriveKey derives a KeySize-byte key from password and salt.
// Equal inputs always give an equal key. The caller owns the returned
// buffer and must Destroy it.
func (k *KDF) DeriveKey(password, salt []byte) (*SecureBuffer, error) {
	if err := k.Params.Validate(); err != nil {
		return nil, err
	}
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", ErrKeyDerivation, SaltSize, len(salt))
	}
	if len(password) == 0 {
		return nil, fmt.Errorf("%w: empty password", ErrKeyDerivation)
	}

	key := argon2.IDKey(password, salt, k.Params.Time, k.Params.Memory, k.Params.Threads, KeySize)
	return WrapSecureBuffer(key), nil
}
