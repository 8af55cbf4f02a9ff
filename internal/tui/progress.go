// ABOUTME: Streaming progress indicator for an in-flight boost request
// ABOUTME: Shows spinner, elapsed time, and received chars; esc cancels the request

package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// progressDeltaMsg reports newly received response characters.
type progressDeltaMsg struct{ chars int }

// progressDoneMsg ends the program once the workflow has returned.
type progressDoneMsg struct{}

// progressModel renders one status line while the response streams.
// Implements tea.Model with value semantics.
type progressModel struct {
	spin      spinner.Model
	modelName string
	start     time.Time
	chars     int
	cancel    context.CancelFunc
	cancelled bool
}

func newProgressModel(modelName string, cancel context.CancelFunc) progressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)
	return progressModel{
		spin:      sp,
		modelName: modelName,
		start:     time.Now(),
		cancel:    cancel,
	}
}

func (m progressModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressDeltaMsg:
		m.chars += msg.chars
		return m, nil
	case progressDoneMsg:
		return m, tea.Quit
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			// Cancel once, then keep running until the workflow winds down
			// so the terminal is restored exactly once.
			if !m.cancelled && m.cancel != nil {
				m.cancel()
			}
			m.cancelled = true
			return m, nil
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	elapsed := time.Since(m.start).Round(100 * time.Millisecond)

	var b strings.Builder
	b.WriteString(m.spin.View())
	if m.cancelled {
		b.WriteString(styleError.Render("cancelling"))
	} else {
		b.WriteString("boosting with " + m.modelName)
	}
	b.WriteString(styleMuted.Render(fmt.Sprintf("  %s • %d chars", elapsed, m.chars)))
	b.WriteByte('\n')
	b.WriteString(styleHelp.Render("esc: cancel"))
	return b.String()
}

// Progress drives the indicator around a boost workflow running on another
// goroutine.
type Progress struct {
	program *tea.Program
}

// NewProgress builds the indicator. cancel fires when the user presses esc;
// the program keeps running until Finish so the in-flight request can wind
// down behind the spinner.
func NewProgress(modelName string, cancel context.CancelFunc) *Progress {
	p := tea.NewProgram(newProgressModel(modelName, cancel), tea.WithOutput(os.Stderr))
	return &Progress{program: p}
}

// Run blocks until Finish is called.
func (p *Progress) Run() error {
	if _, err := p.program.Run(); err != nil {
		return fmt.Errorf("progress ui: %w", err)
	}
	return nil
}

// AddChars reports received response characters. Callable from any goroutine.
func (p *Progress) AddChars(n int) {
	p.program.Send(progressDeltaMsg{chars: n})
}

// Finish stops the indicator.
func (p *Progress) Finish() {
	p.program.Send(progressDoneMsg{})
}
