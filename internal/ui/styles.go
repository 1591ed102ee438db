package ui

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used across views.
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Muted     lipgloss.Style
	Danger    lipgloss.Style
	Success   lipgloss.Style
	Selected  lipgloss.Style
	TableHead lipgloss.Style
	Toast     lipgloss.Style
	StatCard  lipgloss.Style
	FormLabel lipgloss.Style
	FormError lipgloss.Style
}

// DefaultStyles returns the default palette.
func DefaultStyles() Styles {
	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236")).Padding(0, 1),
		Muted:     lipgloss.NewStyle().Foreground(lipgloss.Color("243")),
		Danger:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Success:   lipgloss.NewStyle().Foreground(lipgloss.Color("84")),
		Selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("63")),
		TableHead: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111")),
		Toast:     lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("160")).Padding(0, 1),
		StatCard:  lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2).Margin(0, 1, 0, 0),
		FormLabel: lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color("111")),
		FormError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Italic(true),
	}
}
