package engine

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rokybeast/passlock/internal/container"
	"github.com/rokybeast/passlock/internal/crypto"
	"github.com/rokybeast/passlock/internal/vault"
)

var (
	ErrFormat          = container.ErrFormat
	ErrWrongPassword   = errors.New("wrong password or corrupted data")
	ErrKeyDerivation   = crypto.ErrKeyDerivation
	ErrDeserialization = errors.New("vault contents are corrupt")
	ErrEncryption      = errors.New("encryption failed")
)

// KeyDeriver turns a password and salt into a master key
type KeyDeriver interface {
	DeriveKey(password, salt []byte) (*crypto.SecureBuffer, error)
}

// Engine composes key derivation, the AEAD backend and the container codec
type Engine struct {
	kdf     KeyDeriver
	backend crypto.CipherBackend
}

// Option configures an Engine
type Option func(*Engine)

// WithBackend replaces the default AES-256-GCM backend
func WithBackend(b crypto.CipherBackend) Option {
	return func(e *Engine) {
		e.backend = b
	}
}

// WithKeyDeriver replaces the default Argon2id deriver
func WithKeyDeriver(k KeyDeriver) Option {
	return func(e *Engine) {
		e.kdf = k
	}
}

// WithParams uses Argon2id with the given parameters
func WithParams(p crypto.Params) Option {
	return func(e *Engine) {
		e.kdf = &crypto.KDF{Params: p}
	}
}

// New creates an Engine. Without options it uses Argon2id with
// crypto.DefaultParams and AES-256-GCM.
func New(opts ...Option) *Engine {
	e := &Engine{
		kdf:     &crypto.KDF{Params: crypto.DefaultParams()},
		backend: crypto.AESGCM{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Backend returns the cipher backend in use
func (e *Engine) Backend() crypto.CipherBackend {
	return e.backend
}

// Using returns an Engine that shares e's key deriver but seals with b
func (e *Engine) Using(b crypto.CipherBackend) *Engine {
	return &Engine{kdf: e.kdf, backend: b}
}

// Seal serializes v and encrypts it under a key derived from password and
// v.Salt. It returns the full container for the caller to persist.
func (e *Engine) Seal(v *vault.Vault, password []byte) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil vault", ErrEncryption)
	}
	if len(v.Salt) != container.SaltSize {
		return nil, fmt.Errorf("%w: vault salt must be %d bytes", ErrKeyDerivation, container.SaltSize)
	}

	plaintext, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
	}
	pt := crypto.WrapSecureBuffer(plaintext)
	defer pt.Destroy()

	sealed, err := e.sealPayload(pt.Bytes(), password, v.Salt)
	if err != nil {
		return nil, err
	}

	return container.Encode(v.Salt, sealed)
}

// Open decodes a container, decrypts it with a key derived from password
// and the stored salt, and rebuilds the vault.
func (e *Engine) Open(data, password []byte) (*vault.Vault, error) {
	salt, sealed, err := container.Decode(data)
	if err != nil {
		return nil, err
	}

	plaintext, err := e.openPayload(sealed, password, salt)
	if err != nil {
		return nil, err
	}
	pt := crypto.WrapSecureBuffer(plaintext)
	defer pt.Destroy()

	var v vault.Vault
	if err := json.Unmarshal(pt.Bytes(), &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDeserialization, err)
	}
	// the container's salt is authoritative; a mismatch means the plaintext
	// was not produced for this container
	if !crypto.ConstantTimeCompare(v.Salt, salt) {
		return nil, fmt.Errorf("%w: embedded salt does not match container", ErrDeserialization)
	}

	return &v, nil
}

// Verify checks that password opens data without returning the vault.
func (e *Engine) Verify(data, password []byte) error {
	salt, sealed, err := container.Decode(data)
	if err != nil {
		return err
	}
	plaintext, err := e.openPayload(sealed, password, salt)
	if err != nil {
		return err
	}
	crypto.ClearBytes(plaintext)
	return nil
}

func (e *Engine) sealPayload(plaintext, password, salt []byte) ([]byte, error) {
	key, err := e.deriveKey(password, salt)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	sealed, err := e.backend.Seal(plaintext, key.Bytes())
	key.Destroy()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryption, err)
	}
	return sealed, nil
}

func (e *Engine) openPayload(sealed, password, salt []byte) ([]byte, error) {
	if len(sealed) < e.backend.Overhead() {
		return nil, fmt.Errorf("%w: sealed payload too short", ErrFormat)
	}

	key, err := e.deriveKey(password, salt)
	if err != nil {
		return nil, err
	}
	defer key.Destroy()

	plaintext, err := e.backend.Open(sealed, key.Bytes())
	key.Destroy()
	switch {
	case err == nil:
		return plaintext, nil
	case errors.Is(err, crypto.ErrInvalidCiphertext):
		return nil, fmt.Errorf("%w: sealed payload too short", ErrFormat)
	default:
		// no detail: every failure here must look the same to the caller
		return nil, ErrWrongPassword
	}
}

func (e *Engine) deriveKey(password, salt []byte) (*crypto.SecureBuffer, error) {
	key, err := e.kdf.DeriveKey(password, salt)
	if err != nil {
		if errors.Is(err, ErrKeyDerivation) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	return key, nil
}
