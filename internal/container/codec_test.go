package container

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncodeDecode(t *testing.T) {
	salt := bytes.Repeat([]byte{0xAB}, SaltSize)
	sealed := []byte("nonce-ciphertext-tag")

	data, err := Encode(salt, sealed)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if len(data) != SaltSize+len(sealed) {
		t.Fatalf("len = %d, want %d", len(data), SaltSize+len(sealed))
	}
	if !bytes.Equal(data[:SaltSize], salt) || !bytes.Equal(data[SaltSize:], sealed) {
		t.Fatalf("layout mismatch: %x", data)
	}

	gotSalt, gotSealed, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !bytes.Equal(gotSalt, salt) {
		t.Errorf("salt = %x, want %x", gotSalt, salt)
	}
	if !bytes.Equal(gotSealed, sealed) {
		t.Errorf("sealed = %q, want %q", gotSealed, sealed)
	}

	// decoded slices must not alias the input
	data[0] ^= 0xFF
	data[len(data)-1] ^= 0xFF
	if gotSalt[0] != 0xAB || gotSealed[len(gotSealed)-1] != 'g' {
		t.Error("Decode() results alias the input buffer")
	}
}

func TestDecodeShortInput(t *testing.T) {
	for _, n := range []int{0, 1, SaltSize - 1} {
		if _, _, err := Decode(make([]byte, n)); !errors.Is(err, ErrFormat) {
			t.Errorf("Decode(%d bytes) error = %v, want ErrFormat", n, err)
		}
	}

	// exactly the salt is structurally valid; the cipher rejects the empty payload
	salt, sealed, err := Decode(make([]byte, SaltSize))
	if err != nil {
		t.Fatalf("Decode(salt only) error = %v", err)
	}
	if len(salt) != SaltSize || len(sealed) != 0 {
		t.Errorf("Decode(salt only) = %d/%d bytes", len(salt), len(sealed))
	}
}

func TestEncodeRejectsBadSalt(t *testing.T) {
	if _, err := Encode(make([]byte, SaltSize+1), nil); !errors.Is(err, ErrFormat) {
		t.Errorf("Encode() error = %v, want ErrFormat", err)
	}
}
