package cli

import "github.com/charmbracelet/lipgloss"

// styles terminal text styles
type styles struct {
	Title   lipgloss.Style
	Heading lipgloss.Style
	Error   lipgloss.Style
	Hint    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
}

func newStyles() styles {
	return styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1565C0")),
		Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1976D2")).MarginTop(1),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C62828")),
		Hint:    lipgloss.NewStyle().Foreground(lipgloss.Color("#F9A825")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#2E7D32")),
	}
}
