package views

import "github.com/charmbracelet/lipgloss"

var (
	QueryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	StatusActiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	StepDoneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	StepFailedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	TurnStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)
