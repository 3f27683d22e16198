// Package storage persists passlock vaults.
//
// The vault itself is a single container file, replaced atomically
// (temp file in the same directory, fsync, rename) and only after sealing
// succeeded, so a failed save leaves the previous file intact.
//
// Alongside it lives a BBolt side-store (<vault>.db) with two buckets:
//   - config: vault ID (keyring lookup key) and creation time (unencrypted)
//   - snapshots: previous containers, keyed by big-endian unix nanoseconds
//
// Snapshots are sealed containers, so no plaintext reaches the side-store.
package storage
