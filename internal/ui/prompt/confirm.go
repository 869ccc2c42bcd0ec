package prompt

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/runios/internal/ui/styles"
)

// ConfirmResult holds the result of a confirmation prompt.
type ConfirmResult struct {
	Confirmed bool
	Cancelled bool
}

type confirmModel struct {
	prompt     string
	defaultYes bool
	confirmed  bool
	done       bool
	cancelled  bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "y", "Y":
			m.confirmed = true
			m.done = true
			return m, tea.Quit
		case "n", "N":
			m.confirmed = false
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "q", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "enter":
			m.confirmed = m.defaultYes
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) hint() string {
	if m.defaultYes {
		return "[Y/n]"
	}
	return "[y/N]"
}

func (m confirmModel) render() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s ", styles.Bold.Render(m.prompt), styles.MutedStyle.Render(m.hint()))
}

func (m confirmModel) View() tea.View {
	return tea.NewView(m.render())
}

// Confirm shows a yes/no prompt and returns the user's choice.
// Pressing enter without input answers defaultYes.
func Confirm(ctx context.Context, prompt string, defaultYes bool) (ConfirmResult, error) {
	final, err := run(ctx, confirmModel{prompt: prompt, defaultYes: defaultYes})
	if err != nil {
		return ConfirmResult{}, err
	}
	m := final.(confirmModel)
	return ConfirmResult{
		Confirmed: m.confirmed,
		Cancelled: m.cancelled,
	}, nil
}
