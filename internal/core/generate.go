package core

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"

	"github.com/nbutton23/zxcvbn-go"
)

const (
	GeneratedAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"
	MinGeneratedLen   = 4
	MaxGeneratedLen   = 128
	DefaultGenLen     = 20
)

// GeneratePassword returns a random password drawn uniformly from
// GeneratedAlphabet. length is clamped to [MinGeneratedLen, MaxGeneratedLen].
func GeneratePassword(length int) (string, error) {
	if length < MinGeneratedLen {
		length = MinGeneratedLen
	}
	if length > MaxGeneratedLen {
		length = MaxGeneratedLen
	}

	limit := big.NewInt(int64(len(GeneratedAlphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		out[i] = GeneratedAlphabet[n.Int64()]
	}
	return string(out), nil
}

// Strength is a password rating. Score runs from 0 to 4.
type Strength struct {
	Score     int
	Label     string
	CrackTime string
	Feedback  []string
}

var strengthLabels = [...]string{"Weak", "Weak", "Fair", "Good", "Strong"}

// RateStrength estimates how hard pw is to guess with zxcvbn. userInputs
// (entry name, username, ...) count as known words.
func RateStrength(pw string, userInputs ...string) Strength {
	if pw == "" {
		return Strength{Label: strengthLabels[0], Feedback: []string{"Password is empty"}}
	}

	m := zxcvbn.PasswordStrength(pw, userInputs)
	score := m.Score
	if score < 0 {
		score = 0
	}
	if score >= len(strengthLabels) {
		score = len(strengthLabels) - 1
	}

	s := Strength{
		Score:     score,
		Label:     strengthLabels[score],
		CrackTime: m.CrackTimeDisplay,
	}
	if score >= 3 {
		return s
	}

	if len([]rune(pw)) < 12 {
		s.Feedback = append(s.Feedback, "Use at least 12 characters")
	}
	hints := []struct {
		has  func(rune) bool
		hint string
	}{
		{unicode.IsUpper, "Add uppercase letters"},
		{unicode.IsDigit, "Add numbers"},
		{func(r rune) bool { return unicode.IsPunct(r) || unicode.IsSymbol(r) }, "Add special characters"},
	}
	for _, h := range hints {
		if strings.IndexFunc(pw, h.has) < 0 {
			s.Feedback = append(s.Feedback, h.hint)
		}
	}
	return s
}
