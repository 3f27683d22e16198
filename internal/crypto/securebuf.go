package crypto

import (
	"sync"

	"github.com/awnumar/memguard"
)

// SecureBuffer owns a sensitive byte slice and zeroes it on Destroy.
// The zero value is an empty, already destroyed buffer.
type SecureBuffer struct {
	mu        sync.Mutex
	data      []byte
	destroyed bool
}

// WrapSecureBuffer takes ownership of b. The caller must not keep using b
// after Destroy.
func WrapSecureBuffer(b []byte) *SecureBuffer {
	return &SecureBuffer{data: b}
}

// Bytes returns the underlying slice, or nil once destroyed.
func (s *SecureBuffer) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return nil
	}
	return s.data
}

// Len returns the buffer size, 0 after Destroy.
func (s *SecureBuffer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return 0
	}
	return len(s.data)
}

// Destroyed reports whether Destroy has run.
func (s *SecureBuffer) Destroyed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.destroyed || s.data == nil
}

// Destroy zeroes the buffer. Safe to call repeatedly, typically via defer.
func (s *SecureBuffer) Destroy() {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.destroyed {
		return
	}
	ClearBytes(s.data)
	s.data = nil
	s.destroyed = true
}

// ClearBytes securely clears a byte slice
func ClearBytes(b []byte) {
	memguard.WipeBytes(b)
}
