package tui

import "github.com/charmbracelet/lipgloss/v2"

// Theme centralizes Lip Gloss styles for the UI.
type Theme struct {
	Title     lipgloss.Style
	Recording lipgloss.Style
	Idle      lipgloss.Style
	Day       lipgloss.Style
	Count     lipgloss.Style
	Time      lipgloss.Style
	Selected  lipgloss.Style
	Faint     lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Recording: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		Idle:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Day:       lipgloss.NewStyle().Bold(true).Underline(true),
		Count:     lipgloss.NewStyle().Faint(true),
		Time:      lipgloss.NewStyle().Foreground(lipgloss.Color("81")),
		Selected:  lipgloss.NewStyle().Reverse(true),
		Faint:     lipgloss.NewStyle().Faint(true).Italic(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Help:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}
