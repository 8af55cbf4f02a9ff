// ABOUTME: Lipgloss styles shared by the promptboost terminal components
// ABOUTME: Fixed palette; components render on stderr to keep stdout clean

package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorAccent = lipgloss.Color("212")
	colorMuted  = lipgloss.Color("241")
	colorError  = lipgloss.Color("196")

	styleTitle     = lipgloss.NewStyle().Bold(true)
	styleMuted     = lipgloss.NewStyle().Foreground(colorMuted)
	styleSelection = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	styleError     = lipgloss.NewStyle().Foreground(colorError)
	styleHelp      = lipgloss.NewStyle().Foreground(colorMuted)
)
