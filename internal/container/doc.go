// Package container frames a sealed vault for storage on disk.
//
// Layout (bit-exact, no separators, no text encoding):
//
//	[16-byte salt][sealed payload: nonce || ciphertext || tag]
//
// The salt width is fixed, so no length prefix is needed: the sealed payload
// is the rest of the buffer. There is no magic number or version byte.
// Changing this layout requires an explicit migration step.
package container
