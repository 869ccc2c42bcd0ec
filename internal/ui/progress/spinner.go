// Package progress provides progress indication for long-running
// operations whose duration is unknown, such as the filesystem search
// for development teams.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/mattn/go-isatty"

	"github.com/raphi011/runios/internal/ui/styles"
)

// messageUpdate is sent to update the spinner message
type messageUpdate string

// Spinner wraps a Bubbletea spinner for simple non-interactive use
type Spinner struct {
	out       io.Writer
	program   *tea.Program
	msgChan   chan string
	done      chan struct{}
	mu        sync.Mutex
	isRunning bool
	lastMsg   string
}

// spinnerModel is the internal Bubbletea model
type spinnerModel struct {
	spinner spinner.Model
	message string
	msgChan chan string
	quit    bool
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.waitForMessage())
}

func (m spinnerModel) waitForMessage() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.msgChan
		if !ok {
			return tea.Quit()
		}
		return messageUpdate(msg)
	}
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.quit {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case messageUpdate:
		m.message = string(msg)
		return m, m.waitForMessage()
	case tea.KeyPressMsg:
		// ctrl+c reaches the process as SIGINT once the program exits
		return m, tea.Quit
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m spinnerModel) render() string {
	if m.quit || m.message == "" {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.message)
}

func (m spinnerModel) View() tea.View {
	return tea.NewView(m.render())
}

// NewSpinner creates a new spinner with the given message that draws on
// stderr, keeping stdout clean for piping.
func NewSpinner(message string) *Spinner {
	return &Spinner{
		out:     os.Stderr,
		msgChan: make(chan string, 10),
		done:    make(chan struct{}),
		lastMsg: message,
	}
}

// Interactive reports whether stderr is a terminal a spinner can draw on.
func Interactive() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Start begins the spinner animation
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.PrimaryStyle

	model := spinnerModel{
		spinner: sp,
		message: s.lastMsg,
		msgChan: s.msgChan,
	}

	s.program = tea.NewProgram(model, tea.WithoutSignalHandler(), tea.WithOutput(s.out))
	s.isRunning = true

	go func() {
		_, _ = s.program.Run()
		close(s.done)
	}()
}

// UpdateMessage changes the spinner message
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		s.lastMsg = message
		return
	}

	// Drops the update when the channel is full.
	// Safe because channel close happens under same mutex
	select {
	case s.msgChan <- message:
	default:
	}
}

// Stop stops the spinner and clears the line
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	close(s.msgChan)
	s.mu.Unlock()

	if s.program != nil {
		s.program.Quit()
	}

	select {
	case <-s.done:
	case <-time.After(500 * time.Millisecond):
	}

	fmt.Fprint(s.out, "\r\033[K")
}

// While runs fn with a spinner showing message, when stderr is a terminal.
func While[T any](message string, fn func() (T, error)) (T, error) {
	if !Interactive() {
		return fn()
	}
	s := NewSpinner(message)
	s.Start()
	defer s.Stop()
	return fn()
}
