package prompt

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"
)

// ErrNotInteractive is returned instead of prompting when stdin is not a
// terminal, e.g. in CI.
var ErrNotInteractive = errors.New("cannot prompt: stdin is not a terminal")

// Prompter asks questions through the bubbletea prompts of this package.
// Confirm questions default to yes.
type Prompter struct {
	// Interactive reports whether prompting is possible.
	Interactive func() bool
}

// NewPrompter returns a Prompter that refuses to prompt unless stdin is a
// terminal.
func NewPrompter() *Prompter {
	return &Prompter{Interactive: StdinIsTerminal}
}

// StdinIsTerminal reports whether stdin is attached to a terminal.
func StdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (p *Prompter) check() error {
	if p.Interactive != nil && !p.Interactive() {
		return ErrNotInteractive
	}
	return nil
}

// Select returns one of options.
func (p *Prompter) Select(ctx context.Context, message string, options []string) (string, error) {
	if err := p.check(); err != nil {
		return "", err
	}
	res, err := Select(ctx, message, options)
	if err != nil {
		return "", err
	}
	if res.Cancelled {
		return "", ErrCancelled
	}
	return res.Value, nil
}

// Confirm returns the yes/no answer.
func (p *Prompter) Confirm(ctx context.Context, message string) (bool, error) {
	if err := p.check(); err != nil {
		return false, err
	}
	res, err := Confirm(ctx, message, true)
	if err != nil {
		return false, err
	}
	if res.Cancelled {
		return false, ErrCancelled
	}
	return res.Confirmed, nil
}

// Input returns a validated free-text answer.
func (p *Prompter) Input(ctx context.Context, message, defaultValue string, validate func(string) error) (string, error) {
	if err := p.check(); err != nil {
		return "", err
	}
	res, err := TextInput(ctx, message, defaultValue, validate)
	if err != nil {
		return "", err
	}
	if res.Cancelled {
		return "", ErrCancelled
	}
	return res.Value, nil
}
