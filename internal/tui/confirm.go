// ABOUTME: Bubble Tea yes/no confirmation prompt
// ABOUTME: y or enter accepts; n, esc, or ctrl+c declines

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel asks a single yes/no question.
// Implements tea.Model with value semantics.
type confirmModel struct {
	question string
	answer   bool
}

func newConfirmModel(question string) confirmModel {
	return confirmModel{question: question}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.answer = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.answer = false
			return m, tea.Quit
		case tea.KeyRunes:
			switch strings.ToLower(string(key.Runes)) {
			case "y":
				m.answer = true
				return m, tea.Quit
			case "n":
				m.answer = false
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(m.question))
	b.WriteByte('\n')
	b.WriteString(styleHelp.Render("y: yes • n: no"))
	return b.String()
}
