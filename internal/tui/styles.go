package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFDC7F")).
			MarginBottom(1)

	taskStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#78B7D0"))
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Strikethrough(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFDC7F")).Bold(true)
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5A5F"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#FFDC7F")).
			Padding(0, 2).
			MarginTop(1)

	confirmStyle = modalStyle.BorderForeground(lipgloss.Color("#FF5A5F"))
)
