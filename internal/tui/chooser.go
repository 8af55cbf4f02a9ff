// ABOUTME: Bubble Tea model chooser with fuzzy filtering over discovered endpoints
// ABOUTME: Enter selects the highlighted model; esc dismisses with no choice

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/promptboost/promptboost/pkg/ai"
)

const chooserMaxRows = 12

// chooserModel is a filterable, scrollable model list.
// Implements tea.Model with value semantics.
type chooserModel struct {
	models    []ai.Model
	visible   []ai.Model
	input     textinput.Model
	selected  int
	scrollOff int
	width     int

	choice *ai.Model // set on enter; nil after dismissal
}

func newChooserModel(models []ai.Model) chooserModel {
	ti := textinput.New()
	ti.Placeholder = "type to filter"
	ti.Prompt = "/ "
	ti.Focus()

	m := chooserModel{models: models, input: ti}
	m.applyFilter()
	return m
}

// Init starts the filter input cursor blink.
func (m chooserModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles navigation, selection, dismissal, and filter edits.
func (m chooserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyUp:
			m.moveUp()
			return m, nil
		case tea.KeyDown:
			m.moveDown()
			return m, nil
		case tea.KeyEnter:
			if len(m.visible) > 0 {
				chosen := m.visible[m.selected]
				m.choice = &chosen
			}
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.choice = nil
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.selected = 0
		m.scrollOff = 0
		m.applyFilter()
	}
	return m, cmd
}

// View renders the filter input and the visible window of models.
func (m chooserModel) View() string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Select model"))
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	b.WriteByte('\n')

	if len(m.visible) == 0 {
		b.WriteString(styleMuted.Render("  no matching models"))
		b.WriteByte('\n')
	}

	end := min(m.scrollOff+chooserMaxRows, len(m.visible))
	for i := m.scrollOff; i < end; i++ {
		model := m.visible[i]
		line := fmt.Sprintf("  %s", formatModel(model))
		if m.width > 0 {
			line = truncate(line, m.width)
		}
		if i == m.selected {
			line = styleSelection.Render("> " + strings.TrimPrefix(line, "  "))
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString(styleHelp.Render("enter: select • esc: cancel"))
	return b.String()
}

// formatModel renders one list row; the ID is shown only when it adds
// information over the display name.
func formatModel(m ai.Model) string {
	if m.Name != "" && m.Name != m.ID {
		return fmt.Sprintf("%s (%s)", m.Name, m.ID)
	}
	return m.ID
}

func (m *chooserModel) moveUp() {
	if m.selected > 0 {
		m.selected--
		m.adjustScroll()
	}
}

func (m *chooserModel) moveDown() {
	if m.selected < len(m.visible)-1 {
		m.selected++
		m.adjustScroll()
	}
}

func (m *chooserModel) adjustScroll() {
	if m.selected < m.scrollOff {
		m.scrollOff = m.selected
	}
	if m.selected >= m.scrollOff+chooserMaxRows {
		m.scrollOff = m.selected - chooserMaxRows + 1
	}
}

func (m *chooserModel) applyFilter() {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.visible = make([]ai.Model, len(m.models))
		copy(m.visible, m.models)
		return
	}

	labels := make([]string, len(m.models))
	for i, model := range m.models {
		labels[i] = model.Name + " " + model.ID
	}
	matches := fuzzy.Find(query, labels)
	m.visible = make([]ai.Model, len(matches))
	for i, match := range matches {
		m.visible[i] = m.models[match.Index]
	}
}
