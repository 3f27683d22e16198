package core

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/rokybeast/passlock/internal/config"
	"github.com/rokybeast/passlock/internal/crypto"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// Prompter asks for secrets on out and reads them from in. Echo is turned
// off when in is a terminal; otherwise one line is read per secret so
// passwords can be piped in.
type Prompter struct {
	in  io.Reader
	out io.Writer
	r   *bufio.Reader
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

var stdPrompter = NewPrompter(os.Stdin, os.Stderr)

// ReadPassword prompts for a secret on stderr and reads it from stdin
func ReadPassword(prompt string) ([]byte, error) {
	return stdPrompter.Secret(prompt)
}

// ReadPasswordConfirm prompts twice on stderr for a new secret
func ReadPasswordConfirm(prompt string) ([]byte, error) {
	return stdPrompter.NewSecret(prompt)
}

// Secret reads one secret. The trailing newline is not part of it.
func (p *Prompter) Secret(prompt string) ([]byte, error) {
	fmt.Fprint(p.out, prompt)

	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return nil, fmt.Errorf("failed to read password: %w", err)
		}
		return secret, nil
	}

	if p.r == nil {
		p.r = bufio.NewReader(p.in)
	}
	line, err := p.r.ReadBytes('\n')
	if err != nil && (!errors.Is(err, io.EOF) || len(line) == 0) {
		crypto.ClearBytes(line)
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	return bytes.TrimRight(line, "\r\n"), nil
}

// NewSecret reads a secret and its confirmation. Both must match and be
// non-empty.
func (p *Prompter) NewSecret(prompt string) ([]byte, error) {
	first, err := p.Secret(prompt)
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(first)

	second, err := p.Secret("Confirm password: ")
	if err != nil {
		return nil, err
	}
	defer crypto.ClearBytes(second)

	if !crypto.ConstantTimeCompare(first, second) {
		return nil, ErrPasswordMismatch
	}
	if len(first) == 0 {
		return nil, ErrPasswordRequired
	}
	return bytes.Clone(first), nil
}

// PasswordFromEnv returns a copy of PASSLOCK_PASSWORD, nil when unset
func PasswordFromEnv() []byte {
	if pw := os.Getenv(config.EnvPassword); pw != "" {
		return []byte(pw)
	}
	return nil
}
