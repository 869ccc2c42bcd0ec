package prompt

import (
	"context"
	"fmt"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/raphi011/runios/internal/ui/styles"
)

// TextInputResult holds the result of a text input prompt.
type TextInputResult struct {
	Value     string
	Cancelled bool
}

type textInputModel struct {
	textInput    textinput.Model
	prompt       string
	defaultValue string
	validate     func(string) error
	err          error
	done         bool
	cancelled    bool
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

// value is the answer enter would submit.
func (m textInputModel) value() string {
	if v := m.textInput.Value(); v != "" {
		return v
	}
	return m.defaultValue
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			if m.validate != nil {
				if err := m.validate(m.value()); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.err = nil
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m textInputModel) render() string {
	if m.done {
		return ""
	}
	s := fmt.Sprintf("%s\n%s", styles.Bold.Render(m.prompt), m.textInput.View())
	if m.err != nil {
		s += "\n" + styles.ErrorStyle.Render(">> "+m.err.Error())
	}
	return s
}

func (m textInputModel) View() tea.View {
	return tea.NewView(m.render())
}

func newTextInputModel(prompt, defaultValue string, validate func(string) error) textInputModel {
	ti := textinput.New()
	ti.Placeholder = defaultValue
	ti.Focus()
	ti.CharLimit = 256
	ti.SetWidth(60)

	return textInputModel{
		textInput:    ti,
		prompt:       prompt,
		defaultValue: defaultValue,
		validate:     validate,
	}
}

// TextInput shows a text input prompt and returns the user's input. An
// empty answer submits defaultValue. When validate is set, enter is
// refused and the error shown until validate accepts the answer.
func TextInput(ctx context.Context, prompt, defaultValue string, validate func(string) error) (TextInputResult, error) {
	final, err := run(ctx, newTextInputModel(prompt, defaultValue, validate))
	if err != nil {
		return TextInputResult{}, err
	}
	m := final.(textInputModel)
	if m.cancelled {
		return TextInputResult{Cancelled: true}, nil
	}
	return TextInputResult{Value: m.value()}, nil
}
