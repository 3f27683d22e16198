// Package engine seals a vault into container bytes and opens it again.
//
// Save: Vault -> JSON -> Argon2id(password, vault.Salt) -> AEAD seal -> salt||sealed
// Load: the same steps in reverse.
//
// The engine does no I/O and holds no mutable state, so one Engine can be
// used from several goroutines. Each call derives its own key into a
// SecureBuffer that is destroyed before the call returns.
//
// Errors are classified as:
//   - ErrFormat: the container is structurally broken
//   - ErrWrongPassword: authentication failed (wrong password or tampered data)
//   - ErrKeyDerivation: bad salt, empty password or bad KDF parameters
//   - ErrDeserialization: decryption succeeded but the content is not a vault
package engine
