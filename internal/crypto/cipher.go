package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	NonceSize = 12 // GCM nonce size
	TagSize   = 16 // AEAD authentication tag size
)

// Cipher names as stored in configuration
const (
	CipherAESGCM            = "aes-256-gcm"
	CipherXChaCha20Poly1305 = "xchacha20-poly1305"
)

var (
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
	ErrAuthFailed        = errors.New("authentication failed")
	ErrInvalidKeyLength  = errors.New("invalid key length")
	ErrUnknownCipher     = errors.New("unknown cipher")
)

// CipherBackend seals and opens self-contained blobs of the form
// nonce||ciphertext||tag. No associated data is bound.
type CipherBackend interface {
	Name() string
	Overhead() int
	Seal(plaintext, key []byte) ([]byte, error)
	Open(blob, key []byte) ([]byte, error)
}

// NewCipherBackend returns the backend registered under name.
// An empty name selects AES-256-GCM.
func NewCipherBackend(name string) (CipherBackend, error) {
	switch name {
	case "", CipherAESGCM:
		return AESGCM{}, nil
	case CipherXChaCha20Poly1305:
		return XChaCha20Poly1305{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCipher, name)
	}
}

// AESGCM is AES-256-GCM with a 12-byte random nonce prefix
type AESGCM struct{}

func (AESGCM) Name() string { return CipherAESGCM }
func (AESGCM) Overhead() int { return NonceSize + TagSize }

func (AESGCM) aead(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidKeyLength
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// Seal encrypts plaintext using AES-256-GCM
func (c AESGCM) Seal(plaintext, key []byte) ([]byte, error) {
	gcm, err := c.aead(key)
	if err != nil {
		return nil, err
	}
	return sealWithNonce(gcm, plaintext)
}

// Open decrypts a blob produced by Seal
func (c AESGCM) Open(blob, key []byte) ([]byte, error) {
	gcm, err := c.aead(key)
	if err != nil {
		return nil, err
	}
	return openWithNonce(gcm, blob)
}

// XChaCha20Poly1305 uses a 24-byte random nonce prefix
type XChaCha20Poly1305 struct{}

func (XChaCha20Poly1305) Name() string { return CipherXChaCha20Poly1305 }
func (XChaCha20Poly1305) Overhead() int { return chacha20poly1305.NonceSizeX + chacha20poly1305.Overhead }

func (XChaCha20Poly1305) aead(key []byte) (cipher.AEAD, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, ErrInvalidKeyLength
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create XChaCha20-Poly1305: %w", err)
	}
	return aead, nil
}

// Seal encrypts plaintext using XChaCha20-Poly1305
func (c XChaCha20Poly1305) Seal(plaintext, key []byte) ([]byte, error) {
	aead, err := c.aead(key)
	if err != nil {
		return nil, err
	}
	return sealWithNonce(aead, plaintext)
}

// Open decrypts a blob produced by Seal
func (c XChaCha20Poly1305) Open(blob, key []byte) ([]byte, error) {
	aead, err := c.aead(key)
	if err != nil {
		return nil, err
	}
	return openWithNonce(aead, blob)
}

func sealWithNonce(aead cipher.AEAD, plaintext []byte) ([]byte, error) {
	nonceSize := aead.NonceSize()
	nonce, err := GenerateRandom(nonceSize)
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal appends to the nonce, so the result is nonce||ciphertext||tag
	out := make([]byte, nonceSize, nonceSize+len(plaintext)+aead.Overhead())
	copy(out, nonce)
	return aead.Seal(out, nonce, plaintext, nil), nil
}

func openWithNonce(aead cipher.AEAD, blob []byte) ([]byte, error) {
	nonceSize := aead.NonceSize()
	if len(blob) < nonceSize+aead.Overhead() {
		return nil, ErrInvalidCiphertext
	}

	plaintext, err := aead.Open(nil, blob[:nonceSize], blob[nonceSize:], nil)
	if err != nil {
		return nil, ErrAuthFailed
	}
	return plaintext, nil
}
