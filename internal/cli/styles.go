package cli

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4ECDC4"))

	// HeaderStyle renders table headers.
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ECDC4"))

	// WarningStyle formats advisories that do not block a command.
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFE66D"))

	// ErrorStyle formats field errors.
	ErrorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
