package container

import (
	"errors"
	"fmt"

	"github.com/rokybeast/passlock/internal/crypto"
)

// SaltSize is the width of the leading salt field
const SaltSize = crypto.SaltSize

var ErrFormat = errors.New("malformed vault container")

// Encode concatenates salt and sealed. The result shares no memory with
// its inputs.
func Encode(salt, sealed []byte) ([]byte, error) {
	if len(salt) != SaltSize {
		return nil, fmt.Errorf("%w: salt must be %d bytes, got %d", ErrFormat, SaltSize, len(salt))
	}

	out := make([]byte, SaltSize+len(sealed))
	copy(out, salt)
	copy(out[SaltSize:], sealed)
	return out, nil
}

// Decode splits a container into salt and sealed payload. Both returned
// slices are copies.
func Decode(data []byte) (salt, sealed []byte, err error) {
	if len(data) < SaltSize {
		return nil, nil, fmt.Errorf("%w: %d bytes is shorter than the %d-byte salt", ErrFormat, len(data), SaltSize)
	}

	salt = append([]byte(nil), data[:SaltSize]...)
	sealed = append([]byte(nil), data[SaltSize:]...)
	return salt, sealed, nil
}
