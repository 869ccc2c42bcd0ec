package prompt

import (
	"context"
	"errors"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
)

// ErrCancelled is returned when the user dismissed a prompt (esc, ctrl+c).
var ErrCancelled = errors.New("prompt cancelled")

// run shows model on stderr until it quits. Stdout stays free for
// command output.
func run(ctx context.Context, model tea.Model) (tea.Model, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
		tea.WithColorProfile(colorprofile.Detect(os.Stderr, os.Environ())),
	)
	return p.Run()
}
