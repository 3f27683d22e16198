package crypto

import (
	"bytes"
	"errors"
	"testing"
)

// fastParams keeps Argon2id cheap in tests
var fastParams = Params{Time: 1, Memory: 64, Threads: 1}

func testKey(t *testing.T) []byte {
	t.Helper()
	key, err := GenerateRandom(KeySize)
	if err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return key
}

func TestDeriveKeyDeterministic(t *testing.T) {
	kdf, err := NewKDF(fastParams)
	if err != nil {
		t.Fatalf("NewKDF() error = %v", err)
	}
	salt, err := NewSalt()
	if err != nil {
		t.Fatalf("NewSalt() error = %v", err)
	}

	k1, err := kdf.DeriveKey([]byte("correct horse"), salt)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	defer k1.Destroy()
	k2, err := kdf.DeriveKey([]byte("correct horse"), salt)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	defer k2.Destroy()

	if k1.Len() != KeySize {
		t.Errorf("key length = %d, want %d", k1.Len(), KeySize)
	}
	if !bytes.Equal(k1.Bytes(), k2.Bytes()) {
		t.Error("DeriveKey() with same inputs should produce identical keys")
	}

	other, err := kdf.DeriveKey([]byte("wrong horse"), salt)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	defer other.Destroy()
	if bytes.Equal(k1.Bytes(), other.Bytes()) {
		t.Error("DeriveKey() with different password should produce different key")
	}

	salt2, _ := NewSalt()
	otherSalt, err := kdf.DeriveKey([]byte("correct horse"), salt2)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	defer otherSalt.Destroy()
	if bytes.Equal(k1.Bytes(), otherSalt.Bytes()) {
		t.Error("DeriveKey() with different salt should produce different key")
	}
}

func TestDeriveKeyRejectsBadInput(t *testing.T) {
	kdf, err := NewKDF(fastParams)
	if err != nil {
		t.Fatalf("NewKDF() error = %v", err)
	}

	tests := []struct {
		name     string
		password []byte
		salt     []byte
	}{
		{"short salt", []byte("pw"), make([]byte, 8)},
		{"long salt", []byte("pw"), make([]byte, 32)},
		{"nil salt", []byte("pw"), nil},
		{"empty password", nil, make([]byte, SaltSize)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := kdf.DeriveKey(tt.password, tt.salt)
			if !errors.Is(err, ErrKeyDerivation) {
				t.Errorf("DeriveKey() error = %v, want ErrKeyDerivation", err)
			}
			if key != nil {
				t.Error("DeriveKey() should not return a key on error")
			}
		})
	}
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name string
		p    Params
		ok   bool
	}{
		{"defaults", DefaultParams(), true},
		{"zero time", Params{Time: 0, Memory: 64, Threads: 1}, false},
		{"zero threads", Params{Time: 1, Memory: 64, Threads: 0}, false},
		{"memory below floor", Params{Time: 1, Memory: 15, Threads: 2}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.ok && err != nil {
				t.Errorf("Validate() error = %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrKeyDerivation) {
				t.Errorf("Validate() error = %v, want ErrKeyDerivation", err)
			}
		})
	}

	if _, err := NewKDF(Params{}); err == nil {
		t.Error("NewKDF() should reject zero params")
	}
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.Time != 2 || p.Memory != 64*1024 || p.Threads != 1 {
		t.Errorf("DefaultParams() = %+v, want time=2 memory=65536 threads=1", p)
	}
}

func TestBackendsRoundTrip(t *testing.T) {
	for _, name := range []string{CipherAESGCM, CipherXChaCha20Poly1305} {
		t.Run(name, func(t *testing.T) {
			backend, err := NewCipherBackend(name)
			if err != nil {
				t.Fatalf("NewCipherBackend() error = %v", err)
			}
			key := testKey(t)
			plaintext := []byte(`{"entries":[]}`)

			blob, err := backend.Seal(plaintext, key)
			if err != nil {
				t.Fatalf("Seal() error = %v", err)
			}
			if len(blob) != len(plaintext)+backend.Overhead() {
				t.Errorf("blob length = %d, want %d", len(blob), len(plaintext)+backend.Overhead())
			}

			got, err := backend.Open(blob, key)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if !bytes.Equal(got, plaintext) {
				t.Errorf("Open() = %q, want %q", got, plaintext)
			}

			blob2, err := backend.Seal(plaintext, key)
			if err != nil {
				t.Fatalf("Seal() error = %v", err)
			}
			if bytes.Equal(blob, blob2) {
				t.Error("two Seal() calls should use different nonces")
			}
		})
	}
}

func TestBackendsDetectTampering(t *testing.T) {
	for _, name := range []string{CipherAESGCM, CipherXChaCha20Poly1305} {
		t.Run(name, func(t *testing.T) {
			backend, _ := NewCipherBackend(name)
			key := testKey(t)
			blob, err := backend.Seal([]byte("secret"), key)
			if err != nil {
				t.Fatalf("Seal() error = %v", err)
			}

			for i := range blob {
				tampered := append([]byte(nil), blob...)
				tampered[i] ^= 0x01
				if _, err := backend.Open(tampered, key); !errors.Is(err, ErrAuthFailed) {
					t.Fatalf("byte %d flipped: Open() error = %v, want ErrAuthFailed", i, err)
				}
			}

			if _, err := backend.Open(blob, testKey(t)); !errors.Is(err, ErrAuthFailed) {
				t.Errorf("wrong key: Open() error = %v, want ErrAuthFailed", err)
			}
			if _, err := backend.Open(blob[:backend.Overhead()-1], key); !errors.Is(err, ErrInvalidCiphertext) {
				t.Errorf("short blob: Open() error = %v, want ErrInvalidCiphertext", err)
			}
		})
	}
}

func TestBackendsRejectBadKey(t *testing.T) {
	for _, backend := range []CipherBackend{AESGCM{}, XChaCha20Poly1305{}} {
		if _, err := backend.Seal([]byte("x"), make([]byte, 16)); !errors.Is(err, ErrInvalidKeyLength) {
			t.Errorf("%s: Seal() error = %v, want ErrInvalidKeyLength", backend.Name(), err)
		}
	}
	if _, err := NewCipherBackend("rot13"); !errors.Is(err, ErrUnknownCipher) {
		t.Errorf("NewCipherBackend() error = %v, want ErrUnknownCipher", err)
	}
}

func TestSecureBufferDestroy(t *testing.T) {
	raw := []byte{1, 2, 3, 4}
	buf := WrapSecureBuffer(raw)
	if buf.Len() != 4 || buf.Destroyed() {
		t.Fatalf("fresh buffer: len=%d destroyed=%v", buf.Len(), buf.Destroyed())
	}

	buf.Destroy()
	if !bytes.Equal(raw, make([]byte, 4)) {
		t.Errorf("backing array not zeroed: %v", raw)
	}
	if buf.Bytes() != nil || buf.Len() != 0 || !buf.Destroyed() {
		t.Error("destroyed buffer should expose nothing")
	}

	// second Destroy is a no-op
	buf.Destroy()

	var nilBuf *SecureBuffer
	nilBuf.Destroy()
}

func TestClearBytes(t *testing.T) {
	b := []byte("hunter2")
	ClearBytes(b)
	for i, c := range b {
		if c != 0 {
			t.Fatalf("byte %d = %d, want 0", i, c)
		}
	}
}
