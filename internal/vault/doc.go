// Package vault holds the plaintext model that passlock seals to disk.
//
// A Vault is an ordered list of entries plus the salt it was created with.
// Entry IDs are random UUIDs, assigned once by Add and never changed.
// Password changes made through Update are kept in a bounded history.
package vault
