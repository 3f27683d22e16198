package core

import (
	"strings"
	"testing"
)

func TestGeneratePasswordLength(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, MinGeneratedLen},
		{-5, MinGeneratedLen},
		{16, 16},
		{1000, MaxGeneratedLen},
	}
	for _, tt := range tests {
		pw, err := GeneratePassword(tt.in)
		if err != nil {
			t.Fatalf("GeneratePassword(%d) failed: %v", tt.in, err)
		}
		if len(pw) != tt.want {
			t.Errorf("GeneratePassword(%d) length = %d, want %d", tt.in, len(pw), tt.want)
		}
		for _, c := range pw {
			if !strings.ContainsRune(GeneratedAlphabet, c) {
				t.Errorf("unexpected character %q", c)
			}
		}
	}

	a, _ := GeneratePassword(32)
	b, _ := GeneratePassword(32)
	if a == b {
		t.Error("two generated passwords should differ")
	}
}

func TestRateStrength(t *testing.T) {
	for _, pw := range []string{"", "password", "abc123"} {
		s := RateStrength(pw)
		if s.Label != "Weak" {
			t.Errorf("RateStrength(%q) = %s (score %d), want Weak", pw, s.Label, s.Score)
		}
		if len(s.Feedback) == 0 {
			t.Errorf("RateStrength(%q) should give feedback", pw)
		}
	}

	generated, err := GeneratePassword(32)
	if err != nil {
		t.Fatalf("GeneratePassword failed: %v", err)
	}
	if s := RateStrength(generated); s.Label != "Strong" {
		t.Errorf("generated password rated %s (score %d), want Strong", s.Label, s.Score)
	}
}
