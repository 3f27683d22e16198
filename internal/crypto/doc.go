// Package crypto provides the cryptographic primitives for passlock.
//
// Key derivation uses Argon2id with:
//   - 16-byte random salt (stored unencrypted in the container)
//   - time=2, memory=64 MiB, parallelism=1 (libsodium "interactive" limits)
//   - 32-byte output
//
// Encryption goes through a CipherBackend. Two are provided:
//   - AES-256-GCM: 12-byte nonce, 16-byte tag (default)
//   - XChaCha20-Poly1305: 24-byte nonce, 16-byte tag
//
// Every Seal draws a fresh random nonce and returns nonce||ciphertext||tag.
//
// Memory safety:
//   - Derived keys and plaintext live in a SecureBuffer
//   - SecureBuffer.Destroy() zeroes the bytes and is safe to call more than once
package crypto
